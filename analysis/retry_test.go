package analysis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resumeinsight/backend/gemini"
	"github.com/resumeinsight/backend/gemini/geminitest"
)

// recordingSleeper records requested delays without waiting.
type recordingSleeper struct {
	delays []time.Duration
}

func (r *recordingSleeper) sleep(ctx context.Context, d time.Duration) error {
	r.delays = append(r.delays, d)
	return ctx.Err()
}

func rateLimited(hint time.Duration) error {
	return &gemini.RateLimitedError{RetryAfter: hint, Err: assert.AnError}
}

func TestScheduleDoublesFromInitial(t *testing.T) {
	schedule, first := Backoff{MaxAttempts: 4, Initial: time.Second}.Start()
	assert.Equal(t, Attempt{Number: 1}, first)

	var delays []time.Duration
	for {
		next, ok := schedule.Retry(0)
		if !ok {
			break
		}
		delays = append(delays, next.Delay)
	}

	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}, delays)
}

func TestScheduleHintOverridesAndDoublingContinues(t *testing.T) {
	schedule, _ := Backoff{MaxAttempts: 3, Initial: time.Second}.Start()

	second, ok := schedule.Retry(7 * time.Second)
	require.True(t, ok)
	assert.Equal(t, Attempt{Number: 2, Delay: 7 * time.Second}, second)

	third, ok := schedule.Retry(0)
	require.True(t, ok)
	assert.Equal(t, Attempt{Number: 3, Delay: 14 * time.Second}, third)

	_, ok = schedule.Retry(0)
	assert.False(t, ok)
}

func TestScheduleSingleAttempt(t *testing.T) {
	schedule, _ := Backoff{MaxAttempts: 0, Initial: time.Second}.Start()

	_, ok := schedule.Retry(0)
	assert.False(t, ok)
}

func TestInvokeRetriesRateLimitsUpToBudget(t *testing.T) {
	gen := geminitest.NewGenerator(
		geminitest.Fail(rateLimited(0)),
		geminitest.Fail(rateLimited(0)),
		geminitest.Fail(rateLimited(0)),
		geminitest.Reply("never reached"),
	)
	sleeper := &recordingSleeper{}
	analyzer := NewAnalyzer(gen, nil, WithSleeper(sleeper.sleep))

	_, err := analyzer.Invoke(context.Background(), "prompt")

	_, limited := gemini.IsRateLimited(err)
	assert.True(t, limited)
	assert.Equal(t, 3, gen.Calls())
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, sleeper.delays)
}

func TestInvokeUsesServiceHint(t *testing.T) {
	gen := geminitest.NewGenerator(
		geminitest.Fail(rateLimited(30*time.Second)),
		geminitest.Fail(rateLimited(0)),
		geminitest.Reply(`{"skills": []}`),
	)
	sleeper := &recordingSleeper{}
	analyzer := NewAnalyzer(gen, nil, WithSleeper(sleeper.sleep))

	reply, err := analyzer.Invoke(context.Background(), "prompt")

	require.NoError(t, err)
	assert.Equal(t, `{"skills": []}`, reply)
	assert.Equal(t, []time.Duration{30 * time.Second, 60 * time.Second}, sleeper.delays)
}

func TestInvokeRecoversAfterOneRateLimit(t *testing.T) {
	gen := geminitest.NewGenerator(
		geminitest.Fail(rateLimited(0)),
		geminitest.Reply("ok"),
	)
	sleeper := &recordingSleeper{}
	analyzer := NewAnalyzer(gen, nil, WithSleeper(sleeper.sleep))

	reply, err := analyzer.Invoke(context.Background(), "prompt")

	require.NoError(t, err)
	assert.Equal(t, "ok", reply)
	assert.Equal(t, 2, gen.Calls())
	assert.Equal(t, []time.Duration{time.Second}, sleeper.delays)
}

func TestInvokeDoesNotRetryServiceErrors(t *testing.T) {
	gen := geminitest.NewGenerator(
		geminitest.Fail(&gemini.ServiceError{Message: "failed to generate content", Err: assert.AnError}),
		geminitest.Reply("never reached"),
	)
	sleeper := &recordingSleeper{}
	analyzer := NewAnalyzer(gen, nil, WithSleeper(sleeper.sleep))

	_, err := analyzer.Invoke(context.Background(), "prompt")

	require.Error(t, err)
	assert.Equal(t, 1, gen.Calls())
	assert.Empty(t, sleeper.delays)
}

func TestInvokeHonorsConfiguredBackoff(t *testing.T) {
	gen := geminitest.NewGenerator(
		geminitest.Fail(rateLimited(0)),
		geminitest.Fail(rateLimited(0)),
		geminitest.Fail(rateLimited(0)),
		geminitest.Fail(rateLimited(0)),
		geminitest.Fail(rateLimited(0)),
	)
	sleeper := &recordingSleeper{}
	analyzer := NewAnalyzer(gen, nil,
		WithSleeper(sleeper.sleep),
		WithBackoff(Backoff{MaxAttempts: 5, Initial: 500 * time.Millisecond}),
	)

	_, err := analyzer.Invoke(context.Background(), "prompt")

	require.Error(t, err)
	assert.Equal(t, 5, gen.Calls())
	assert.Equal(t, []time.Duration{
		500 * time.Millisecond, time.Second, 2 * time.Second, 4 * time.Second,
	}, sleeper.delays)
}

func TestInvokeStopsWhenContextCancelledDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	gen := geminitest.NewGenerator(
		geminitest.Fail(rateLimited(0)),
		geminitest.Reply("never reached"),
	)
	sleeper := func(ctx context.Context, d time.Duration) error {
		cancel()
		return ctx.Err()
	}
	analyzer := NewAnalyzer(gen, nil, WithSleeper(sleeper))

	_, err := analyzer.Invoke(ctx, "prompt")

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, gen.Calls())
}

func TestSleepContext(t *testing.T) {
	assert.NoError(t, sleepContext(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, sleepContext(ctx, time.Hour), context.Canceled)
}
