package relay

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Dispatcher sends notifications on background goroutines, detached from
// the request context, and only logs failures.
type Dispatcher struct {
	notifier Notifier
	log      *zap.Logger
	timeout  time.Duration
	wg       sync.WaitGroup
}

func NewDispatcher(n Notifier, log *zap.Logger, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Dispatcher{notifier: n, log: log, timeout: timeout}
}

func (d *Dispatcher) Fire(event Event, payload any) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer func() {
			if rec := recover(); rec != nil {
				d.log.Error("relay panic", zap.String("event", string(event)), zap.Any("panic", rec))
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		if err := d.notifier.Notify(ctx, event, payload); err != nil {
			d.log.Warn("relay notify failed", zap.String("event", string(event)), zap.Error(err))
			return
		}
		d.log.Debug("relay notified", zap.String("event", string(event)))
	}()
}

// Wait blocks until every fired notification has finished.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

func (d *Dispatcher) Close() error {
	d.Wait()
	return d.notifier.Close()
}
