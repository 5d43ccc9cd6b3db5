package matchcore

import "time"

// Clock abstracts wall-clock time so the day-order pruner can be driven
// deterministically in tests. Production wiring uses realClock; tests
// supply a fake advancing clock such as github.com/benbjohnson/clock's
// *clock.Mock, which already satisfies this interface structurally.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

// realClock is the production Clock, backed directly by the time package.
type realClock struct{}

func (realClock) Now() time.Time                         { return time.Now() }
func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }
