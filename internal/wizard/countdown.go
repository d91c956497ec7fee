package wizard

import (
	"context"
	"time"
)

// countdown drives the PIX expiry display. At most one runs per session;
// starting a new one replaces the previous.
type countdown struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// StartPixCountdown ticks once per second with the remaining time and calls
// onExpire when it reaches zero. A countdown already in flight is cancelled
// first.
func (s *Session) StartPixCountdown(d time.Duration, onTick func(remaining time.Duration), onExpire func()) {
	s.countdownMu.Lock()
	defer s.countdownMu.Unlock()

	if s.countdown != nil {
		s.countdown.cancel()
		<-s.countdown.done
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := &countdown{cancel: cancel, done: make(chan struct{})}
	s.countdown = c

	go func() {
		defer close(c.done)
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()

		remaining := d
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				remaining -= time.Second
				if remaining <= 0 {
					if onTick != nil {
						onTick(0)
					}
					if onExpire != nil {
						onExpire()
					}
					return
				}
				if onTick != nil {
					onTick(remaining)
				}
			}
		}
	}()
}

// StopPixCountdown cancels the active countdown, if any, and waits for it to
// exit.
func (s *Session) StopPixCountdown() {
	s.countdownMu.Lock()
	defer s.countdownMu.Unlock()

	if s.countdown != nil {
		s.countdown.cancel()
		<-s.countdown.done
		s.countdown = nil
	}
}
