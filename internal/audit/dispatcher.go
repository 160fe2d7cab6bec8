package audit

import (
	"context"
	"sync"

	"github.com/BruksfildServices01/salon-scheduler/pkg/logging"
)

const (
	ActionAppointmentCreated  = "appointment_created"
	ActionAppointmentUpdated  = "appointment_updated"
	ActionAppointmentConflict = "appointment_conflict"
	EntityAppointment         = "appointment"
)

type Event struct {
	CompanyID uint
	UserID    *uint
	Action    string
	Entity    string
	EntityID  *uint
	RequestID string
	Metadata  any
}

// Sink persists one event.
type Sink interface {
	Log(ctx context.Context, ev Event) error
}

type Dispatcher struct {
	sink   Sink
	logger *logging.Logger
	queue  chan Event
	wg     sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

func NewDispatcher(sink Sink, logger *logging.Logger) *Dispatcher {
	d := &Dispatcher{
		sink:   sink,
		logger: logger,
		queue:  make(chan Event, 100),
	}

	d.wg.Add(1)
	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for ev := range d.queue {
		if err := d.sink.Log(context.Background(), ev); err != nil {
			d.logger.Error("audit write failed", "action", ev.Action, "error", err)
		}
	}
}

// Dispatch never blocks the request: a full queue or a closed dispatcher
// drops the event.
func (d *Dispatcher) Dispatch(ev Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.logger.Warn("audit dispatcher closed, dropping event", "action", ev.Action)
		return
	}
	select {
	case d.queue <- ev:
	default:
		d.logger.Warn("audit queue full, dropping event", "action", ev.Action)
	}
}

// Close drains the queue and waits for the worker.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()
	d.wg.Wait()
}
