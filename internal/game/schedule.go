package game

import "time"

// Scheduler runs deferred continuations.
//
// Continuations must be run on the same goroutine that drives the Engine, after
// the current event has been handled.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func())
}

// Notifier tells the user the game is over
type Notifier interface {
	Notify(message string)
}

// NotifierFunc adapts a function to a Notifier
type NotifierFunc func(message string)

func (f NotifierFunc) Notify(message string) {
	f(message)
}

// ManualScheduler queues continuations until Advance is called. It is used by
// tests and replays, where time does not pass on its own.
type ManualScheduler struct {
	now     time.Duration
	seq     int
	pending []pendingTask
}

type pendingTask struct {
	at  time.Duration
	seq int
	fn  func()
}

func (s *ManualScheduler) AfterFunc(d time.Duration, fn func()) {
	s.seq++
	s.pending = append(s.pending, pendingTask{at: s.now + d, seq: s.seq, fn: fn})
}

// Advance moves the clock forward and runs every continuation that is due, in
// order of due time then scheduling order.
func (s *ManualScheduler) Advance(d time.Duration) {
	target := s.now + d
	for {
		idx := -1
		for i, t := range s.pending {
			if t.at > target {
				continue
			}
			if idx < 0 || t.at < s.pending[idx].at || (t.at == s.pending[idx].at && t.seq < s.pending[idx].seq) {
				idx = i
			}
		}
		if idx < 0 {
			break
		}
		t := s.pending[idx]
		s.pending = append(s.pending[:idx], s.pending[idx+1:]...)
		if t.at > s.now {
			s.now = t.at
		}
		t.fn()
	}
	s.now = target
}

// Pending returns the number of queued continuations
func (s *ManualScheduler) Pending() int {
	return len(s.pending)
}
