package hub

import (
	"testing"
	"time"
)

func TestPublishReachesAllSubscribers(t *testing.T) {
	h := New()
	sub1 := h.Subscribe()
	sub2 := h.Subscribe()

	h.Publish(Snapshot{TotalLines: 42})

	for i, sub := range []<-chan Snapshot{sub1, sub2} {
		select {
		case s := <-sub:
			if s.TotalLines != 42 {
				t.Errorf("sub%d: expected 42 lines, got %d", i+1, s.TotalLines)
			}
		case <-time.After(1 * time.Second):
			t.Fatalf("sub%d: timed out", i+1)
		}
	}
}

func TestSlowSubscriberDropsSnapshots(t *testing.T) {
	h := New()
	_ = h.Subscribe() // never read

	for i := 0; i < subscriberBuffer+10; i++ {
		h.Publish(Snapshot{TotalLines: i})
	}

	if h.Dropped() == 0 {
		t.Error("expected dropped snapshots for slow subscriber, got 0")
	}
}

func TestUnsubscribe(t *testing.T) {
	h := New()
	sub := h.Subscribe()
	h.Unsubscribe(sub)

	// The channel must be closed.
	if _, ok := <-sub; ok {
		t.Error("expected closed channel after Unsubscribe")
	}

	// Publishing after unsubscribe must not panic.
	h.Publish(Snapshot{})
}

func TestCloseStopsPublishing(t *testing.T) {
	h := New()
	sub := h.Subscribe()
	h.Close()

	if _, ok := <-sub; ok {
		t.Error("expected closed subscriber channel after Close")
	}
	h.Publish(Snapshot{}) // no-op, must not panic
}
