//go:build integration

package kafka_test

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"

	cachemem "github.com/Gunvolt24/activity-consumer/internal/cache/memory"
	"github.com/Gunvolt24/activity-consumer/internal/domain"
	ikafka "github.com/Gunvolt24/activity-consumer/internal/kafka"
	"github.com/Gunvolt24/activity-consumer/internal/ports"
	"github.com/Gunvolt24/activity-consumer/internal/testutil"
	"github.com/Gunvolt24/activity-consumer/internal/usecase"
	"github.com/Gunvolt24/activity-consumer/pkg/logger"
	"github.com/Gunvolt24/activity-consumer/pkg/validate"
)

var reUnsafe = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

func safe(t *testing.T) string { return reUnsafe.ReplaceAllString(t.Name(), "-") }

// стандартная конфигурация консьюмера для интеграционных сценариев
func consumerConfig(kf *testutil.KafkaEnv, topic, group string) *ikafka.ConsumerConfig {
	return &ikafka.ConsumerConfig{
		Brokers:         kf.Brokers,
		Topic:           topic,
		GroupID:         group,
		AutoOffsetReset: "earliest",
		MaxRetries:      5,
		RetryDelay:      200 * time.Millisecond,
		PollTimeout:     300 * time.Millisecond,
	}
}

func startConsumer(t *testing.T, ctx context.Context, cfg *ikafka.ConsumerConfig, svc interface {
	ProcessFromMessage(ctx context.Context, raw []byte) error
}, logg ports.Logger) {
	t.Helper()
	consumer := ikafka.NewConsumer(cfg, ikafka.NewConnector(cfg, logg), svc, logg)
	t.Cleanup(func() { _ = consumer.Close() })
	go func() { _ = consumer.Run(ctx) }()
}

func newStack(t *testing.T) (context.Context, ports.Logger, *testutil.KafkaEnv, *cachemem.RecentEventsBuffer, *usecase.EventService) {
	t.Helper()

	// Длинный контекст — на контейнер
	ctxStart, cancelStart := context.WithTimeout(context.Background(), 2*time.Minute)
	t.Cleanup(cancelStart)

	kf, stopKF, err := testutil.StartKafkaTC(ctxStart, "events-itc")
	require.NoError(t, err)
	t.Cleanup(func() { _ = stopKF(context.Background()) })

	// Короткий контекст — сам тест
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	t.Cleanup(cancel)

	logg, closer, err := logger.New("development")
	require.NoError(t, err)
	t.Cleanup(func() { _ = closer() })

	recents := cachemem.NewRecentEventsBuffer(100)
	svc := usecase.NewEventService(validate.NewEventValidator(), usecase.NewLogHandler(logg), recents, logg)

	return ctx, logg, kf, recents, svc
}

func writeMsg(t *testing.T, ctx context.Context, brokers []string, topic string, payload []byte) {
	t.Helper()
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		RequiredAcks: kafka.RequireAll,
		Balancer:     &kafka.LeastBytes{},
	}
	defer w.Close()
	require.NoError(t, w.WriteMessages(ctx, kafka.Message{Value: payload}))
}

// waitForEvent — ждём появления события в буфере последних.
func waitForEvent(t *testing.T, ctx context.Context, recents *cachemem.RecentEventsBuffer, eventID string, timeout time.Duration) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for {
		for _, e := range recents.List(ctx, 0) {
			if e.EventID == eventID {
				return
			}
		}
		if time.Now().After(deadline) {
			t.Fatalf("event %s not processed in time", eventID)
		}
		time.Sleep(200 * time.Millisecond)
	}
}

func hasEvent(ctx context.Context, recents *cachemem.RecentEventsBuffer, eventID string) bool {
	for _, e := range recents.List(ctx, 0) {
		if e.EventID == eventID {
			return true
		}
	}
	return false
}

// 1) Валидное событие проходит весь путь: брокер → валидатор → обработчик → буфер.
func TestKafka_Valid_Processed_TC(t *testing.T) {
	ctx, logg, kf, recents, svc := newStack(t)

	topic, group := testutil.UniqueTopicAndGroup(kf.BaseTopic + "-" + safe(t))
	require.NoError(t, testutil.EnsureTopic(ctx, kf.Brokers[0], topic))

	runCtx, cancelRun := context.WithCancel(ctx)
	defer cancelRun()
	startConsumer(t, runCtx, consumerConfig(kf, topic, group), svc, logg)

	// даём консьюмеру присоединиться к группе/получить assignment
	time.Sleep(1500 * time.Millisecond)

	ev := testutil.MakeEvent()
	raw, _ := json.Marshal(ev)
	writeMsg(t, ctx, kf.Brokers, topic, raw)

	waitForEvent(t, ctx, recents, ev.EventID, 20*time.Second)
}

// 2) Не-JSON сообщение пропускается, валидное после него — обрабатывается.
func TestKafka_Skip_InvalidJSON_Then_ProcessValid_TC(t *testing.T) {
	ctx, logg, kf, recents, svc := newStack(t)

	topic, group := testutil.UniqueTopicAndGroup(kf.BaseTopic + "-invalid-json-" + safe(t))
	require.NoError(t, testutil.EnsureTopic(ctx, kf.Brokers[0], topic))

	runCtx, cancelRun := context.WithCancel(ctx)
	defer cancelRun()
	startConsumer(t, runCtx, consumerConfig(kf, topic, group), svc, logg)

	time.Sleep(1500 * time.Millisecond)

	// 1) Шлём мусор
	writeMsg(t, ctx, kf.Brokers, topic, []byte("not-a-json"))

	// 2) Шлём валидное событие
	ev := testutil.MakeEvent()
	raw, _ := json.Marshal(ev)
	writeMsg(t, ctx, kf.Brokers, topic, raw)

	// 3) Валидное дошло, мусор партицию не заблокировал
	waitForEvent(t, ctx, recents, ev.EventID, 20*time.Second)
	require.Equal(t, 1, recents.Len())
}

// 3) Событие без обязательного поля пропускается; следующее валидное — обрабатывается.
func TestKafka_Skip_ValidationError_Then_ProcessValid_TC(t *testing.T) {
	ctx, logg, kf, recents, svc := newStack(t)

	topic, group := testutil.UniqueTopicAndGroup(kf.BaseTopic + "-invalid-event-" + safe(t))
	require.NoError(t, testutil.EnsureTopic(ctx, kf.Brokers[0], topic))

	runCtx, cancelRun := context.WithCancel(ctx)
	defer cancelRun()
	startConsumer(t, runCtx, consumerConfig(kf, topic, group), svc, logg)

	time.Sleep(1500 * time.Millisecond)

	// 1) Конверт корректный, но user_id пуст => валидация свалится
	bad := testutil.MakeEvent(testutil.WithoutUser())
	braw, _ := json.Marshal(bad)
	writeMsg(t, ctx, kf.Brokers, topic, braw)

	// 2) Следом валидное
	ok := testutil.MakeEvent()
	oraw, _ := json.Marshal(ok)
	writeMsg(t, ctx, kf.Brokers, topic, oraw)

	waitForEvent(t, ctx, recents, ok.EventID, 20*time.Second)
	require.False(t, hasEvent(ctx, recents, bad.EventID))
}

// 4) AUTO_OFFSET_RESET=latest: сообщения, опубликованные до старта консьюмера, игнорируются.
func TestKafka_OffsetLatest_IgnoresOld_TC(t *testing.T) {
	ctx, logg, kf, recents, svc := newStack(t)

	topic, group := testutil.UniqueTopicAndGroup(kf.BaseTopic + "-latest-" + safe(t))
	require.NoError(t, testutil.EnsureTopic(ctx, kf.Brokers[0], topic))

	// 1) Публикуем "старое" ДО консьюмера
	old := testutil.MakeEvent()
	rold, _ := json.Marshal(old)
	writeMsg(t, ctx, kf.Brokers, topic, rold)

	// 2) Запускаем консьюмера с latest
	cfg := consumerConfig(kf, topic, group)
	cfg.AutoOffsetReset = "latest"

	runCtx, cancelRun := context.WithCancel(ctx)
	defer cancelRun()
	startConsumer(t, runCtx, cfg, svc, logg)

	// 3) Публикуем новое до появления в буфере — так гарантируем, что одно
	//    из сообщений окажется после базовой позиции чтения.
	newEv := testutil.MakeEvent()
	rnew, _ := json.Marshal(newEv)

	deadline := time.Now().Add(20 * time.Second)
	for {
		writeMsg(t, ctx, kf.Brokers, topic, rnew)
		if hasEvent(ctx, recents, newEv.EventID) {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("new event %s not processed in time", newEv.EventID)
		}
		time.Sleep(300 * time.Millisecond)
	}
	require.False(t, hasEvent(ctx, recents, old.EventID))
}

// сервис-заглушка: сбой обработки (не валидации) => оффсет не коммитится
type alwaysFailProcessor struct{}

func (alwaysFailProcessor) ProcessFromMessage(context.Context, []byte) error {
	return errors.New("handler unavailable")
}

// 5) At-least-once при ручном коммите: упавшее событие передоставляется
// после перезапуска консьюмера в той же группе.
func TestKafka_Redelivery_AfterRestart_NoCommit_TC(t *testing.T) {
	ctx, logg, kf, recents, svc := newStack(t)

	topic, group := testutil.UniqueTopicAndGroup(kf.BaseTopic + "-redelivery-" + safe(t))
	require.NoError(t, testutil.EnsureTopic(ctx, kf.Brokers[0], topic))

	ev := testutil.MakeEvent()
	raw, _ := json.Marshal(ev)
	writeMsg(t, ctx, kf.Brokers, topic, raw)

	// Фаза 1: обработчик всегда падает => оффсет НЕ коммитится
	cfg := consumerConfig(kf, topic, group)
	require.False(t, cfg.EnableAutoCommit)

	runCtx1, cancelRun1 := context.WithCancel(ctx)
	failing := ikafka.NewConsumer(cfg, ikafka.NewConnector(cfg, logg), alwaysFailProcessor{}, logg)
	go func() { _ = failing.Run(runCtx1) }()

	// Ждём, чтобы сообщение точно было прочитано и обработка упала
	time.Sleep(3 * time.Second)
	cancelRun1() // выходим без коммита
	require.NoError(t, failing.Close())

	// Фаза 2: нормальный сервис в той же группе — перехватываем некоммиченное
	runCtx2, cancelRun2 := context.WithCancel(ctx)
	defer cancelRun2()
	startConsumer(t, runCtx2, cfg, svc, logg)

	waitForEvent(t, ctx, recents, ev.EventID, 25*time.Second)
}

// 6) Порядок: буфер отдаёт события новыми вперёд после серии сообщений.
func TestKafka_RecentOrder_TC(t *testing.T) {
	ctx, logg, kf, recents, svc := newStack(t)

	topic, group := testutil.UniqueTopicAndGroup(kf.BaseTopic + "-order-" + safe(t))
	require.NoError(t, testutil.EnsureTopic(ctx, kf.Brokers[0], topic))

	runCtx, cancelRun := context.WithCancel(ctx)
	defer cancelRun()
	startConsumer(t, runCtx, consumerConfig(kf, topic, group), svc, logg)

	time.Sleep(1500 * time.Millisecond)

	first := testutil.MakeEvent(testutil.WithEventType("page_view"))
	second := testutil.MakeEvent(testutil.WithEventType("click"))
	for _, ev := range []domain.EnrichedEvent{first, second} {
		raw, _ := json.Marshal(ev)
		writeMsg(t, ctx, kf.Brokers, topic, raw)
	}

	waitForEvent(t, ctx, recents, second.EventID, 20*time.Second)
	waitForEvent(t, ctx, recents, first.EventID, 5*time.Second)

	got := recents.List(ctx, 2)
	require.Len(t, got, 2)
	require.Equal(t, second.EventID, got[0].EventID)
	require.Equal(t, first.EventID, got[1].EventID)
}
