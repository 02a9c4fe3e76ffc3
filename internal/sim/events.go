package sim

type EventType int

const (
	EventJump EventType = iota
	EventHit
	EventScore
	EventPhase
	EventFire
	EventBossHit
	EventVolley
)

// Event carries its type and one integer: the score, the new phase, the
// remaining health or the volley size.
type Event struct {
	Type EventType
	Data int
}

type EventHandler func(Event)

// EventBus delivers simulation events to host subscribers (audio, camera
// shake, overlay). Handlers run synchronously inside Step.
type EventBus struct {
	handlers map[EventType][]EventHandler
}

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[EventType][]EventHandler),
	}
}

func (eb *EventBus) Subscribe(t EventType, fn EventHandler) {
	eb.handlers[t] = append(eb.handlers[t], fn)
}

func (eb *EventBus) Emit(e Event) {
	for _, fn := range eb.handlers[e.Type] {
		fn(e)
	}
}
