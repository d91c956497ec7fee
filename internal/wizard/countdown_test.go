package wizard

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestStartPixCountdown_ExpiresAndFiresCallback(t *testing.T) {
	s := newTestSession()

	expired := make(chan struct{})
	var ticks atomic.Int32

	s.StartPixCountdown(2*time.Second,
		func(remaining time.Duration) { ticks.Add(1) },
		func() { close(expired) },
	)

	select {
	case <-expired:
	case <-time.After(5 * time.Second):
		t.Fatal("countdown did not expire")
	}
	if ticks.Load() < 2 {
		t.Errorf("expected at least 2 ticks, got %d", ticks.Load())
	}
}

func TestStartPixCountdown_ReplacesActiveTimer(t *testing.T) {
	s := newTestSession()

	var firstExpired atomic.Bool
	s.StartPixCountdown(time.Second, nil, func() { firstExpired.Store(true) })

	// Replacing before expiry must cancel the first countdown.
	secondExpired := make(chan struct{})
	s.StartPixCountdown(2*time.Second, nil, func() { close(secondExpired) })

	select {
	case <-secondExpired:
	case <-time.After(5 * time.Second):
		t.Fatal("replacement countdown did not expire")
	}
	if firstExpired.Load() {
		t.Error("cancelled countdown still fired its expiry callback")
	}
}

func TestStopPixCountdown_IsIdempotent(t *testing.T) {
	s := newTestSession()
	s.StartPixCountdown(time.Minute, nil, nil)
	s.StopPixCountdown()
	s.StopPixCountdown() // no active timer, must not panic
}
