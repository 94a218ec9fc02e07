// Package analysis turns resume text into a structured evaluation using the generative model
package analysis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/resumeinsight/backend/gemini"
	"github.com/resumeinsight/backend/logger"
	"github.com/resumeinsight/backend/models"
	"github.com/resumeinsight/backend/utils"
)

// Recommendations placed in degraded results, one per failure category
const (
	RateLimitedRecommendation = "Rate limit exceeded. Please try again later or upgrade your Gemini API plan."
	ParseErrorRecommendation  = "JSON parsing error in AI response. Please try again."
	serviceErrorFormat        = "Error occurred during AI analysis: %v"
)

// ProfileSource resolves job profile keys for prompt construction
type ProfileSource interface {
	Lookup(id string) (models.JobProfile, bool)
}

// Analyzer calls the model with bounded retries and always produces a complete result
type Analyzer struct {
	generator gemini.Generator
	profiles  ProfileSource
	backoff   Backoff
	sleep     Sleeper
	logger    zerolog.Logger
}

// Option configures an Analyzer
type Option func(*Analyzer)

// WithBackoff sets the retry policy for rate-limited calls
func WithBackoff(b Backoff) Option {
	return func(a *Analyzer) { a.backoff = b }
}

// WithSleeper replaces the wait used between attempts
func WithSleeper(s Sleeper) Option {
	return func(a *Analyzer) { a.sleep = s }
}

// NewAnalyzer creates a new analyzer. profiles may be nil
func NewAnalyzer(generator gemini.Generator, profiles ProfileSource, opts ...Option) *Analyzer {
	a := &Analyzer{
		generator: generator,
		profiles:  profiles,
		backoff:   DefaultBackoff,
		sleep:     sleepContext,
		logger:    logger.Component("analyzer"),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Invoke sends the prompt, retrying rate-limited calls with exponential backoff
// It returns the raw reply, or the error of the last attempt
func (a *Analyzer) Invoke(ctx context.Context, prompt string) (string, error) {
	schedule, attempt := a.backoff.Start()

	for {
		reply, err := a.generator.Generate(ctx, prompt)
		if err == nil {
			return reply, nil
		}

		hint, limited := gemini.IsRateLimited(err)
		if !limited {
			a.logger.Error().Err(err).Int("attempt", attempt.Number).Msg("model call failed")
			return "", err
		}

		next, ok := schedule.Retry(hint)
		if !ok {
			a.logger.Error().Err(err).Int("attempt", attempt.Number).Msg("rate limit retries exhausted")
			return "", err
		}

		a.logger.Warn().
			Int("attempt", attempt.Number).
			Dur("delay", next.Delay).
			Dur("hint", hint).
			Msg("rate limited, backing off")

		if err := a.sleep(ctx, next.Delay); err != nil {
			return "", fmt.Errorf("backoff interrupted after attempt %d: %w", attempt.Number, err)
		}
		attempt = next
	}
}

// Analyze evaluates resume text, optionally against a job profile key
// Failures of the model path are reported inside the returned result
func (a *Analyzer) Analyze(ctx context.Context, resumeText, profileKey string) models.AnalysisResult {
	profile := a.resolve(profileKey)

	start := time.Now()
	reply, err := a.Invoke(ctx, BuildPrompt(resumeText, profile))
	if err != nil {
		return a.degraded(resumeText, err)
	}

	result, err := Normalize(reply)
	if err != nil {
		a.logger.Error().Err(err).Int("reply_len", len(reply)).Msg("could not parse model reply")
		return a.degraded(resumeText, err)
	}

	a.logger.Info().
		Str("profile", profileKey).
		Int("skills", len(result.Skills)).
		Float64("match_score", result.MatchScore).
		Dur("latency", time.Since(start)).
		Msg("resume analyzed")
	return result
}

// ProfileName returns the display name of a profile key, or "" when it is unknown
func (a *Analyzer) ProfileName(profileKey string) string {
	if profile := a.resolve(profileKey); profile != nil {
		return profile.Name
	}
	return ""
}

func (a *Analyzer) resolve(profileKey string) *models.JobProfile {
	if profileKey == "" || a.profiles == nil {
		return nil
	}
	profile, ok := a.profiles.Lookup(profileKey)
	if !ok {
		a.logger.Debug().Str("profile", profileKey).Msg("unknown job profile, analyzing without one")
		return nil
	}
	return &profile
}

// degraded builds the result returned when the model path failed
func (a *Analyzer) degraded(resumeText string, cause error) models.AnalysisResult {
	result := models.NewAnalysisResult()
	result.ContactInfo = utils.ExtractContacts(resumeText)
	result.Recommendations = []string{failureRecommendation(cause)}

	a.logger.Warn().Err(cause).Msg("returning fallback analysis")
	return result
}

func failureRecommendation(err error) string {
	if _, limited := gemini.IsRateLimited(err); limited {
		return RateLimitedRecommendation
	}
	if errors.Is(err, ErrParse) {
		return ParseErrorRecommendation
	}
	return fmt.Sprintf(serviceErrorFormat, err)
}
