package ledger

import (
	"context"
	"sync"
	"time"

	"finmo/internal/amqp"
	"finmo/internal/log"
)

// Publisher sends change events to the feed.
type Publisher interface {
	PublishTransactionEvent(ctx context.Context, ev *amqp.TransactionEvent) error
}

const (
	notifyBuffer  = 64
	notifyTimeout = 10 * time.Second
)

// notifier publishes events in order on a single goroutine so callers never
// wait on the broker.
type notifier struct {
	pub    Publisher
	logger *log.Logger
	events chan *amqp.TransactionEvent
	done   chan struct{}
	once   sync.Once
}

func newNotifier(pub Publisher, logger *log.Logger) *notifier {
	n := &notifier{
		pub:    pub,
		logger: logger,
		events: make(chan *amqp.TransactionEvent, notifyBuffer),
		done:   make(chan struct{}),
	}
	go n.run()
	return n
}

func (n *notifier) run() {
	defer close(n.done)
	for ev := range n.events {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		if err := n.pub.PublishTransactionEvent(ctx, ev); err != nil {
			n.logger.WarnContext(ctx, "Failed to publish change event",
				log.FieldEvent, ev.Op,
				log.FieldTransactionID, ev.TransactionID,
				log.FieldError, err)
		}
		cancel()
	}
}

// send queues ev, dropping it when the queue is full.
func (n *notifier) send(ev *amqp.TransactionEvent) {
	select {
	case n.events <- ev:
	default:
		n.logger.Warn("Change event queue full, dropping event",
			log.FieldEvent, ev.Op,
			log.FieldTransactionID, ev.TransactionID)
	}
}

// close drains pending events and stops the goroutine.
func (n *notifier) close() {
	n.once.Do(func() {
		close(n.events)
		<-n.done
	})
}
