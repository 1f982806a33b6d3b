package page

import (
	"sync"
	"time"
)

// SurpriseDuration is how long the icon stays surprised after a click.
const SurpriseDuration = 600 * time.Millisecond

// Surprise is a flag that sets on Trigger and clears itself after a delay.
// Triggering again while the flag is set restarts the delay, so exactly one
// clear happens, one full delay after the last trigger.
type Surprise struct {
	mu       sync.Mutex
	delay    time.Duration
	active   bool
	gen      uint64
	timer    *time.Timer
	disposed bool
	onChange func(active bool)
}

// NewSurprise creates a cleared flag. onChange, if non-nil, is called
// whenever the flag flips, in flip order. It runs under the flag's lock and
// must not call back into the Surprise.
func NewSurprise(delay time.Duration, onChange func(active bool)) *Surprise {
	return &Surprise{delay: delay, onChange: onChange}
}

// Trigger sets the flag and (re)arms the clear.
func (s *Surprise) Trigger() {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return
	}
	wasActive := s.active
	s.active = true
	s.gen++
	gen := s.gen
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, func() { s.expire(gen) })
	if !wasActive {
		s.notify(true)
	}
	s.mu.Unlock()
}

// expire clears the flag unless a later trigger superseded the timer that
// called it.
func (s *Surprise) expire(gen uint64) {
	s.mu.Lock()
	if s.disposed || gen != s.gen || !s.active {
		s.mu.Unlock()
		return
	}
	s.active = false
	s.timer = nil
	s.notify(false)
	s.mu.Unlock()
}

// Active reports the current flag.
func (s *Surprise) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Pending reports whether a clear is scheduled.
func (s *Surprise) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer != nil
}

// Dispose cancels a pending clear. Later triggers are ignored.
func (s *Surprise) Dispose() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disposed = true
	s.active = false
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Surprise) notify(active bool) {
	if s.onChange != nil {
		s.onChange(active)
	}
}
