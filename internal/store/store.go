// Package store owns the in-memory memo collection and its persistence.
//
// The store is the sole writer of the durable layer: every successful
// mutation serializes the entire collection and writes it under a single
// fixed key. Tags are derived state — they are recomputed from content
// inside the mutation entry points and are never settable independently.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/memobook/memobook/internal/storage"
	"github.com/memobook/memobook/internal/tags"
	"github.com/memobook/memobook/pkg/types"
)

// StorageKey is the fixed key under which the memo collection is persisted.
const StorageKey = "memobook/memos"

// ErrNotFound indicates that no memo has the requested id.
var ErrNotFound = errors.New("memo not found")

// Store holds the memo collection in newest-first order and mediates all
// mutation. All methods are safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	memos []*types.Memo // newest-first
	kv    storage.KVStore
}

// New creates a Store backed by kv and loads the persisted collection.
//
// A missing key or unreadable snapshot is never fatal: the store logs the
// problem and falls back to a small fixed seed set, so a corrupt database
// degrades to a fresh-looking app instead of a crash.
func New(kv storage.KVStore) *Store {
	s := &Store{kv: kv}

	data, err := kv.Get(StorageKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Printf("store: failed to read persisted memos: %v, seeding defaults", err)
		}
		s.memos = seedMemos()
		return s
	}

	var memos []*types.Memo
	if err := json.Unmarshal(data, &memos); err != nil {
		log.Printf("store: persisted memos are corrupt: %v, seeding defaults", fmt.Errorf("%w: %v", storage.ErrCorrupt, err))
		s.memos = seedMemos()
		return s
	}

	// Re-derive tags on load so the invariant holds even if the snapshot
	// was written by an older version or edited by hand.
	for _, m := range memos {
		m.Tags = tags.Extract(m.Content)
		if !m.Visibility.Valid() {
			m.Visibility = types.VisibilityPublic
		}
	}
	s.memos = memos
	return s
}

// seedMemos returns the fixed fallback collection used when no usable
// snapshot exists.
func seedMemos() []*types.Memo {
	now := time.Now().UTC()
	first := &types.Memo{
		ID:         uuid.NewString(),
		Content:    "Welcome to #memobook! This is a lightweight note-taking app.",
		CreatedAt:  now,
		Visibility: types.VisibilityPublic,
	}
	second := &types.Memo{
		ID:         uuid.NewString(),
		Content:    "You can ask the AI assistant about your notes from the chat panel.",
		CreatedAt:  now.Add(-24 * time.Hour),
		Visibility: types.VisibilityPrivate,
	}
	first.Tags = tags.Extract(first.Content)
	second.Tags = tags.Extract(second.Content)
	return []*types.Memo{first, second}
}

// Create constructs a memo from content, prepends it to the collection
// (newest-first is the canonical order), and persists the snapshot.
func (s *Store) Create(content string) *types.Memo {
	s.mu.Lock()
	defer s.mu.Unlock()

	memo := &types.Memo{
		ID:         uuid.NewString(),
		Content:    content,
		CreatedAt:  time.Now().UTC(),
		Tags:       tags.Extract(content),
		Visibility: types.VisibilityPublic,
	}
	s.memos = append([]*types.Memo{memo}, s.memos...)
	s.persist()
	return memo.Clone()
}

// Update replaces the content of the memo with the given id and recomputes
// its tags. ID, creation time, and visibility are unchanged.
// Returns ErrNotFound if no memo has the id.
func (s *Store) Update(id, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	memo := s.find(id)
	if memo == nil {
		return ErrNotFound
	}
	memo.Content = content
	memo.Tags = tags.Extract(content)
	s.persist()
	return nil
}

// SetVisibility changes the visibility flag of the memo with the given id.
// Returns ErrNotFound if no memo has the id.
func (s *Store) SetVisibility(id string, v types.Visibility) error {
	if !v.Valid() {
		return fmt.Errorf("invalid visibility %q", v)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	memo := s.find(id)
	if memo == nil {
		return ErrNotFound
	}
	memo.Visibility = v
	s.persist()
	return nil
}

// Delete removes the memo with the given id. This is irreversible; callers
// are expected to confirm intent before invoking it.
// Returns ErrNotFound if no memo has the id.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, m := range s.memos {
		if m.ID == id {
			s.memos = append(s.memos[:i], s.memos[i+1:]...)
			s.persist()
			return nil
		}
	}
	return ErrNotFound
}

// Get returns a copy of the memo with the given id.
// Returns ErrNotFound if no memo has the id.
func (s *Store) Get(id string) (*types.Memo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	memo := s.find(id)
	if memo == nil {
		return nil, ErrNotFound
	}
	return memo.Clone(), nil
}

// List returns a snapshot of the collection in store order (newest-first).
// The returned memos are copies; filtering them never mutates the store.
func (s *Store) List() []*types.Memo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*types.Memo, len(s.memos))
	for i, m := range s.memos {
		out[i] = m.Clone()
	}
	return out
}

// find returns the live memo with the given id, or nil.
// Caller must hold s.mu.
func (s *Store) find(id string) *types.Memo {
	for _, m := range s.memos {
		if m.ID == id {
			return m
		}
	}
	return nil
}

// persist serializes the full collection and writes it to the durable
// layer. Write failures are logged, not propagated: the in-memory state
// stays authoritative for the session.
// Caller must hold s.mu.
func (s *Store) persist() {
	data, err := json.Marshal(s.memos)
	if err != nil {
		log.Printf("store: failed to serialize memos: %v", err)
		return
	}
	if err := s.kv.Set(StorageKey, data); err != nil {
		log.Printf("store: failed to persist memos: %v", err)
	}
}
