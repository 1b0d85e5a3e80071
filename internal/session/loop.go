package session

import (
	"context"
	"sync"
	"time"
)

// Loop serializes work onto one goroutine. Every Engine call and every
// deferred continuation goes through it, so game state is only touched by the
// goroutine running Run.
type Loop struct {
	tasks chan func()
	done  chan struct{}
	once  sync.Once

	mu     sync.Mutex
	timers map[*time.Timer]struct{}

	afterTask func()
}

// NewLoop creates a loop with room for backlog pending tasks
func NewLoop(backlog int) *Loop {
	return &Loop{
		tasks:  make(chan func(), backlog),
		done:   make(chan struct{}),
		timers: make(map[*time.Timer]struct{}),
	}
}

// AfterTask sets a function run after every task, such as a redraw. It must
// be called before Run.
func (l *Loop) AfterTask(fn func()) {
	l.afterTask = fn
}

// Post queues fn. It reports false if the loop has stopped.
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}

	select {
	case l.tasks <- fn:
		return true
	case <-l.done:
		return false
	}
}

// AfterFunc posts fn to the loop once d has elapsed
func (l *Loop) AfterFunc(d time.Duration, fn func()) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var t *time.Timer
	t = time.AfterFunc(d, func() {
		l.mu.Lock()
		delete(l.timers, t)
		l.mu.Unlock()
		l.Post(fn)
	})
	l.timers[t] = struct{}{}
}

// Run executes posted tasks until ctx is done or Stop is called
func (l *Loop) Run(ctx context.Context) error {
	defer l.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.done:
			return nil
		case fn := <-l.tasks:
			fn()
			if l.afterTask != nil {
				l.afterTask()
			}
		}
	}
}

// Stop ends Run and cancels pending timers
func (l *Loop) Stop() {
	l.once.Do(func() {
		close(l.done)

		l.mu.Lock()
		defer l.mu.Unlock()
		for t := range l.timers {
			t.Stop()
		}
		clear(l.timers)
	})
}
