package audit

import "log"

type Event struct {
	Action   string
	Entity   string
	EntityID string
	Metadata any
}

// Sink persists audit events. The gorm Logger is the production sink;
// tests plug in their own.
type Sink interface {
	Log(action, entity, entityID string, metadata any) error
}

type Dispatcher struct {
	sink  Sink
	queue chan Event
}

func NewDispatcher(sink Sink) *Dispatcher {
	d := &Dispatcher{
		sink:  sink,
		queue: make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.sink.Log(
			ev.Action,
			ev.Entity,
			ev.EntityID,
			ev.Metadata,
		); err != nil {
			log.Println("audit error:", err)
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		// full queue: drop the event, never stall a booking
		log.Println("audit queue full, dropping event")
	}
}
