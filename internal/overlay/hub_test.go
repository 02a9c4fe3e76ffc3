package overlay

import (
	"testing"
	"time"

	"chickenescape/internal/sim"
)

func drain(ch <-chan sim.Snapshot) []sim.Snapshot {
	var out []sim.Snapshot
	for {
		select {
		case s := <-ch:
			out = append(out, s)
		default:
			return out
		}
	}
}

func TestHubThrottlesButForwardsPhaseChanges(t *testing.T) {
	h := NewHub(10)
	clock := time.Unix(0, 0)
	h.now = func() time.Time { return clock }
	_, ch := h.Register()

	h.Publish(sim.Snapshot{Phase: "playing", Score: 1})
	clock = clock.Add(10 * time.Millisecond)
	h.Publish(sim.Snapshot{Phase: "playing", Score: 2}) // throttled
	clock = clock.Add(10 * time.Millisecond)
	h.Publish(sim.Snapshot{Phase: "gameOver", Score: 2}) // phase change
	clock = clock.Add(200 * time.Millisecond)
	h.Publish(sim.Snapshot{Phase: "gameOver", Score: 3})

	got := drain(ch)
	if len(got) != 3 {
		t.Fatalf("delivered %d snapshots, want 3: %+v", len(got), got)
	}
	if got[0].Score != 1 || got[1].Phase != "gameOver" || got[2].Score != 3 {
		t.Fatalf("delivered %+v", got)
	}

	latest, ok := h.Latest()
	if !ok || latest.Score != 3 {
		t.Fatalf("latest = %+v, %v", latest, ok)
	}
}

func TestHubRegisterQueuesLatest(t *testing.T) {
	h := NewHub(0)
	if _, ok := h.Latest(); ok {
		t.Fatalf("latest before any publish")
	}
	h.Publish(sim.Snapshot{Phase: "ready"})

	_, ch := h.Register()
	got := drain(ch)
	if len(got) != 1 || got[0].Phase != "ready" {
		t.Fatalf("new subscriber got %+v", got)
	}
}

func TestHubUnregisterClosesChannel(t *testing.T) {
	h := NewHub(0)
	id, ch := h.Register()
	if h.SubscriberCount() != 1 {
		t.Fatalf("count = %d, want 1", h.SubscriberCount())
	}
	h.Unregister(id)
	h.Unregister(id)
	if _, ok := <-ch; ok {
		t.Fatalf("channel still open")
	}
	if h.SubscriberCount() != 0 {
		t.Fatalf("count = %d, want 0", h.SubscriberCount())
	}
}

func TestHubDropsWhenSubscriberIsSlow(t *testing.T) {
	h := NewHub(0)
	_, ch := h.Register()
	for i := 0; i < 500; i++ {
		h.Publish(sim.Snapshot{Phase: "playing", Score: i})
	}
	if n := len(drain(ch)); n == 0 || n >= 500 {
		t.Fatalf("buffered %d snapshots", n)
	}
}
