package events

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestDispatcherDeliversToAllHandlers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var calls int
	d.Subscribe(EventLoginFailed, func(_ context.Context, _ Event) error {
		calls++
		return errors.New("handler failure")
	})
	d.Subscribe(EventLoginFailed, func(_ context.Context, _ Event) error {
		calls++
		return nil
	})
	d.Subscribe(EventLoginSucceeded, func(_ context.Context, _ Event) error {
		t.Error("handler for different event type invoked")
		return nil
	})

	err := d.Publish(context.Background(), Event{
		ID:        "e1",
		Type:      EventLoginFailed,
		Email:     "a@example.com",
		Timestamp: time.Now(),
	})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if calls != 2 {
		t.Fatalf("calls = %d, want 2 (errors must not stop delivery)", calls)
	}
}
