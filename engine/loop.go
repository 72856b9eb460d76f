package engine

import (
	"context"
	"sync"
	"time"
)

// Loop drives a Session from a clock whose cadence follows the round phase.
// Input goroutines call Send; everything else runs on the Run goroutine.
type Loop struct {
	session *Session
	render  func(Snapshot)

	mu    sync.Mutex // protects inbox
	inbox []Event

	quit     chan struct{}
	quitOnce sync.Once
}

// NewLoop binds a loop to session. render is called with a fresh snapshot
// once before the first tick and after every tick; it may be nil.
func NewLoop(session *Session, render func(Snapshot)) *Loop {
	return &Loop{
		session: session,
		render:  render,
		quit:    make(chan struct{}),
	}
}

// Session returns the driven session. Only safe to use from render or after
// Run has returned.
func (l *Loop) Session() *Session {
	return l.session
}

// Send queues ev for the next tick. A QuitSignal stops Run right away.
func (l *Loop) Send(ev Event) {
	if ev.Kind == QuitSignal {
		l.quitOnce.Do(func() { close(l.quit) })
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.inbox = append(l.inbox, ev)
}

func (l *Loop) drain() []Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	events := l.inbox
	l.inbox = nil
	return events
}

// Run ticks the session until quit or ctx is done. It returns nil on quit and
// ctx.Err() on cancellation; neither completes a pending tick.
func (l *Loop) Run(ctx context.Context) error {
	timer := time.NewTimer(l.session.Interval())
	defer timer.Stop()

	l.emit()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.quit:
			l.session.Apply(Quit())
			return nil
		case <-timer.C:
		}

		// quit may have raced the timer
		select {
		case <-l.quit:
			l.session.Apply(Quit())
			return nil
		default:
		}

		for _, ev := range l.drain() {
			l.session.Apply(ev)
		}
		l.session.Tick()
		l.emit()
		timer.Reset(l.session.Interval())
	}
}

func (l *Loop) emit() {
	if l.render != nil {
		l.render(l.session.Snapshot())
	}
}
