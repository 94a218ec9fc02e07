package analysis

import (
	"context"
	"time"
)

// Attempt describes one model call in a retry sequence
type Attempt struct {
	Number int
	// Delay is the wait before this attempt starts; zero for the first one
	Delay time.Duration
}

// Backoff is the retry policy for rate-limited model calls
type Backoff struct {
	MaxAttempts int
	Initial     time.Duration
}

// DefaultBackoff allows three attempts, waiting 1s then 2s between them
var DefaultBackoff = Backoff{MaxAttempts: 3, Initial: time.Second}

// Schedule yields the attempts of one retry sequence
type Schedule struct {
	policy  Backoff
	attempt int
	delay   time.Duration
}

// Start begins a new attempt sequence
func (b Backoff) Start() (*Schedule, Attempt) {
	if b.MaxAttempts < 1 {
		b.MaxAttempts = 1
	}
	s := &Schedule{policy: b, attempt: 1, delay: b.Initial}
	return s, Attempt{Number: 1}
}

// Retry returns the next attempt after a rate-limited one, or false once the budget is spent
// A positive hint replaces the pending delay; doubling continues from whichever delay was used
func (s *Schedule) Retry(hint time.Duration) (Attempt, bool) {
	if s.attempt >= s.policy.MaxAttempts {
		return Attempt{}, false
	}
	if hint > 0 {
		s.delay = hint
	}
	s.attempt++
	next := Attempt{Number: s.attempt, Delay: s.delay}
	s.delay *= 2
	return next, true
}

// Sleeper waits for d or until ctx is done
type Sleeper func(ctx context.Context, d time.Duration) error

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
