package pipeline

import "time"

// Clock abstracts wall time and sleeping so retry backoff and inter-item
// delays are deterministic in tests.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type realClock struct{}

func (realClock) Now() time.Time        { return time.Now() }
func (realClock) Sleep(d time.Duration) { time.Sleep(d) }

// NewClock returns the wall clock.
func NewClock() Clock {
	return realClock{}
}
