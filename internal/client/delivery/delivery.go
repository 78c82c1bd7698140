// Package delivery hands one-time codes to an outbound channel (email in
// production, the log in development). The engine never waits on it.
package delivery

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/crownstore/internal/logging"
)

// Sender delivers otp to destination.
type Sender interface {
	Deliver(ctx context.Context, destination, otp string) error
}

const defaultSendTimeout = 10 * time.Second

// Dispatcher runs deliveries in the background and logs their failures.
type Dispatcher struct {
	sender  Sender
	log     logging.Logger
	timeout time.Duration
	wg      sync.WaitGroup
}

func NewDispatcher(sender Sender, log logging.Logger) *Dispatcher {
	if log == nil {
		log = logging.Nop()
	}
	return &Dispatcher{sender: sender, log: log, timeout: defaultSendTimeout}
}

// Dispatch returns immediately. The delivery outlives ctx cancellation but
// is bounded by the dispatcher timeout.
func (d *Dispatcher) Dispatch(ctx context.Context, destination, otp string) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)
		defer cancel()

		if err := d.sender.Deliver(sendCtx, destination, otp); err != nil {
			d.log.Error(sendCtx, "otp delivery failed", "destination", logging.MaskContact(destination), "error", err)
			return
		}
		d.log.Info(sendCtx, "otp delivered", "destination", logging.MaskContact(destination))
	}()
}

// Wait blocks until every dispatched delivery has finished.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// LogSender writes the code to the log. It stands in for a real channel
// during development.
type LogSender struct {
	log logging.Logger
}

func NewLogSender(log logging.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Deliver(ctx context.Context, destination, otp string) error {
	s.log.Info(ctx, "password reset code", "destination", logging.MaskContact(destination), "otp", otp)
	return nil
}
