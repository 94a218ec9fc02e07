// Package geminitest provides a scripted gemini.Generator for tests
package geminitest

import (
	"context"
	"errors"
	"sync"
)

// Step is one scripted outcome: a reply or an error
type Step struct {
	Reply string
	Err   error
}

// Reply scripts a successful call
func Reply(text string) Step { return Step{Reply: text} }

// Fail scripts a failed call
func Fail(err error) Step { return Step{Err: err} }

// ErrScriptExhausted is returned once every step has been consumed
var ErrScriptExhausted = errors.New("geminitest: no scripted response left")

// Generator replays its steps in order and records the prompts it received
type Generator struct {
	mu      sync.Mutex
	steps   []Step
	prompts []string
}

// NewGenerator creates a generator that replays steps in order
func NewGenerator(steps ...Step) *Generator {
	return &Generator{steps: steps}
}

// Generate returns the next scripted step
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.prompts = append(g.prompts, prompt)
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(g.steps) == 0 {
		return "", ErrScriptExhausted
	}
	step := g.steps[0]
	g.steps = g.steps[1:]
	return step.Reply, step.Err
}

// Calls returns how many times Generate was called
func (g *Generator) Calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.prompts)
}

// Prompts returns a copy of every prompt received
func (g *Generator) Prompts() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.prompts...)
}
