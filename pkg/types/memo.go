package types

import "time"

// Visibility controls how a memo is presented in the UI.
// It carries no access-control semantics.
type Visibility string

const (
	// VisibilityPublic is the default visibility for new memos.
	VisibilityPublic Visibility = "PUBLIC"

	// VisibilityPrivate marks a memo as private. Cosmetic only.
	VisibilityPrivate Visibility = "PRIVATE"
)

// Valid reports whether v is one of the known visibility values.
func (v Visibility) Valid() bool {
	return v == VisibilityPublic || v == VisibilityPrivate
}

// Memo represents a single user-authored note.
//
// Tags are derived from Content: the store recomputes them from the content
// on every create and update, and they are never settable independently.
type Memo struct {
	ID         string     `json:"id"`         // Unique identifier, immutable after creation
	Content    string     `json:"content"`    // Raw memo text; sole source of derived tags
	CreatedAt  time.Time  `json:"createdAt"`  // Creation timestamp; ordering key, immutable
	Tags       []string   `json:"tags"`       // Derived from Content, in order of appearance
	Visibility Visibility `json:"visibility"` // PUBLIC or PRIVATE, user-set
}

// Clone returns a deep copy of the memo. The store hands out clones so that
// callers can never mutate the collection behind its back.
func (m *Memo) Clone() *Memo {
	c := *m
	if m.Tags != nil {
		c.Tags = make([]string, len(m.Tags))
		copy(c.Tags, m.Tags)
	}
	return &c
}
