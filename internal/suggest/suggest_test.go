package suggest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeGenerator is a canned llm.TextGenerator.
type fakeGenerator struct {
	response string
	err      error
	prompt   string
}

func (f *fakeGenerator) Complete(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.response, f.err
}

func (f *fakeGenerator) GetModel() string { return "fake" }

func TestSuggestTagsParsesCommaSeparatedResponse(t *testing.T) {
	gen := &fakeGenerator{response: "groceries, shopping , food"}
	s := New(gen)

	got := s.SuggestTags(context.Background(), "buy milk and eggs")

	assert.Equal(t, []string{"groceries", "shopping", "food"}, got)
	assert.Contains(t, gen.prompt, "buy milk and eggs")
	assert.Contains(t, gen.prompt, "up to 3 relevant tags")
}

func TestSuggestTagsDiscardsEmptyFragments(t *testing.T) {
	gen := &fakeGenerator{response: "work,, ,deadline,"}
	s := New(gen)

	got := s.SuggestTags(context.Background(), "finish the report")

	assert.Equal(t, []string{"work", "deadline"}, got)
}

func TestSuggestTagsSwallowsFailures(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("connection refused")}
	s := New(gen)

	got := s.SuggestTags(context.Background(), "anything")

	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestSuggestTagsEmptyResponse(t *testing.T) {
	gen := &fakeGenerator{response: "   "}
	s := New(gen)

	assert.Empty(t, s.SuggestTags(context.Background(), "anything"))
}
