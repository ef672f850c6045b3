// Package suggest asks an LLM for tag suggestions for memo content.
//
// This is a convenience feature, not a guaranteed subsystem: one best-effort
// call per invocation, no retry, and any failure yields an empty suggestion
// list instead of an error. Callers append the returned tags into memo
// content as literal #tag tokens so they flow back through the extractor on
// the next save; the suggester never writes into a memo's tags directly.
package suggest

import (
	"context"
	"log"
	"strings"

	"github.com/memobook/memobook/internal/llm"
)

// Suggester generates candidate tags for memo content.
type Suggester struct {
	gen llm.TextGenerator
}

// New creates a Suggester backed by the given text generator.
func New(gen llm.TextGenerator) *Suggester {
	return &Suggester{gen: gen}
}

// SuggestTags asks the model for up to 3 single-word tags for content.
// The response is parsed leniently: split on commas, trim whitespace,
// discard empty fragments. On any transport or service failure the error is
// swallowed and an empty slice is returned.
func (s *Suggester) SuggestTags(ctx context.Context, content string) []string {
	resp, err := s.gen.Complete(ctx, llm.SuggestTagsPrompt(content))
	if err != nil {
		log.Printf("suggest: tag suggestion failed: %v", err)
		return []string{}
	}
	return parseTags(resp)
}

// parseTags splits a comma-separated model response into tag candidates.
func parseTags(resp string) []string {
	parts := strings.Split(resp, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
