package kafka

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestConnector(probe probeFunc, maxRetries int, delay time.Duration) *Connector {
	return &Connector{
		probe:      probe,
		log:        nopLogger{},
		maxRetries: maxRetries,
		retryDelay: delay,
	}
}

// Успех с третьей попытки: счётчик попыток обнуляется.
func TestConnect_SucceedsAfterFailures(t *testing.T) {
	t.Parallel()

	calls := 0
	probe := func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("broker unavailable")
		}
		return nil
	}

	c := newTestConnector(probe, 3, 0)
	if err := c.Connect(context.Background()); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if calls != 3 {
		t.Fatalf("probe calls: want 3, got %d", calls)
	}
	if c.State() != StateConnected {
		t.Fatalf("state: want connected, got %s", c.State())
	}
	if c.attempts != 0 {
		t.Fatalf("attempts must reset on success, got %d", c.attempts)
	}
}

// Бюджет из N попыток: ровно N вызовов probe и ErrConnectionExhausted.
func TestConnect_ExhaustsBudget(t *testing.T) {
	t.Parallel()

	calls := 0
	probe := func(context.Context) error {
		calls++
		return errors.New("broker unavailable")
	}

	c := newTestConnector(probe, 2, time.Millisecond)
	err := c.Connect(context.Background())
	if !errors.Is(err, ErrConnectionExhausted) {
		t.Fatalf("want ErrConnectionExhausted, got %v", err)
	}
	if calls != 2 {
		t.Fatalf("probe calls: want exactly 2, got %d", calls)
	}
	if c.State() != StateFailed {
		t.Fatalf("state: want failed, got %s", c.State())
	}
}

// Отмена контекста прерывает паузу между попытками.
func TestConnect_CanceledDuringDelay(t *testing.T) {
	t.Parallel()

	probe := func(context.Context) error { return errors.New("broker unavailable") }
	c := newTestConnector(probe, 5, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	err := c.Connect(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Fatalf("cancel must interrupt the delay, took %v", elapsed)
	}
	if c.State() != StateDisconnected {
		t.Fatalf("state: want disconnected, got %s", c.State())
	}
}

func TestMarkDisconnected(t *testing.T) {
	t.Parallel()

	c := newTestConnector(func(context.Context) error { return nil }, 1, 0)
	if err := c.Connect(context.Background()); err != nil {
		t.Fatalf("Connect: %v", err)
	}

	c.MarkDisconnected(context.Background(), errors.New("fetch: EOF"))
	if c.State() != StateFailed {
		t.Fatalf("state: want failed, got %s", c.State())
	}
}

func TestConnState_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		state ConnState
		want  string
	}{
		{StateDisconnected, "disconnected"},
		{StateConnecting, "connecting"},
		{StateConnected, "connected"},
		{StateFailed, "failed"},
		{ConnState(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Fatalf("%d: want %s, got %s", int(tt.state), tt.want, got)
		}
	}
}
