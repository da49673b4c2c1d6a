package main

import (
	"context"
	"errors"
	"iter"
)

// noUpstream backs a generator that only renders prompts.
type noUpstream struct{}

func (noUpstream) StreamPrompt(ctx context.Context, agentType string, prompt string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		yield("", errors.New("no upstream configured"))
	}
}
