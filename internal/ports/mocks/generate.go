//go:generate mockgen -source=../event_validator.go     -destination=./mock_event_validator.go     -package=mocks
//go:generate mockgen -source=../event_handler.go       -destination=./mock_event_handler.go       -package=mocks
//go:generate mockgen -source=../recent_events.go       -destination=./mock_recent_events.go       -package=mocks
//go:generate mockgen -source=../logger.go              -destination=./mock_logger.go              -package=mocks
//go:generate mockgen -source=../message_consumer.go    -destination=./mock_message_consumer.go    -package=mocks
//go:generate mockgen -source=../event_read_service.go  -destination=./mock_event_read_service.go  -package=mocks

package mocks
