package eventbus

import (
	"PoundsBosses/internal/core/domain"
	"PoundsBosses/internal/core/ports"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

func TestInMemoryEventBus_DeliversToAllSubscribers(t *testing.T) {
	nopLogger := zerolog.Nop()
	bus := NewInMemoryEventBus(&nopLogger)

	var wg sync.WaitGroup
	wg.Add(2)
	var mu sync.Mutex
	var got []ports.Event

	handler := func(ctx context.Context, event ports.Event) error {
		mu.Lock()
		got = append(got, event)
		mu.Unlock()
		wg.Done()
		return nil
	}
	bus.Subscribe(domain.TopicWithdrawalRequested, handler)
	bus.Subscribe(domain.TopicWithdrawalRequested, handler)

	payload := domain.WithdrawalRequestedEvent{
		UserID: "user_2abcDEF",
		Amount: decimal.NewFromInt(2000),
	}
	if err := bus.Publish(context.Background(), domain.TopicWithdrawalRequested, payload); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("handlers were not invoked within 1s")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(got) != 2 {
		t.Fatalf("got %d deliveries, want 2", len(got))
	}
	for _, event := range got {
		if event.Topic != domain.TopicWithdrawalRequested {
			t.Errorf("topic mismatch: got %s", event.Topic)
		}
		ev, ok := event.Payload.(domain.WithdrawalRequestedEvent)
		if !ok {
			t.Fatalf("payload has type %T", event.Payload)
		}
		if ev.UserID != "user_2abcDEF" {
			t.Errorf("payload UserID mismatch: got %s", ev.UserID)
		}
	}
}

func TestInMemoryEventBus_NoSubscribersIsNotAnError(t *testing.T) {
	nopLogger := zerolog.Nop()
	bus := NewInMemoryEventBus(&nopLogger)

	if err := bus.Publish(context.Background(), domain.TopicAccountFunded, struct{}{}); err != nil {
		t.Fatalf("Publish with no subscribers failed: %v", err)
	}
}

func TestInMemoryEventBus_TopicsAreIsolated(t *testing.T) {
	nopLogger := zerolog.Nop()
	bus := NewInMemoryEventBus(&nopLogger)

	delivered := make(chan string, 2)
	bus.Subscribe(domain.TopicAccountFunded, func(ctx context.Context, event ports.Event) error {
		delivered <- event.Topic
		return nil
	})

	if err := bus.Publish(context.Background(), domain.TopicWithdrawalRequested, struct{}{}); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}
	if err := bus.Publish(context.Background(), domain.TopicAccountFunded, struct{}{}); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	select {
	case topic := <-delivered:
		if topic != domain.TopicAccountFunded {
			t.Errorf("handler received wrong topic: %s", topic)
		}
	case <-time.After(time.Second):
		t.Fatalf("handler was not invoked within 1s")
	}

	select {
	case topic := <-delivered:
		t.Fatalf("handler received an extra delivery for topic %s", topic)
	case <-time.After(50 * time.Millisecond):
	}
}
