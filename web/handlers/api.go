// Package handlers provides HTTP handlers and middleware for the memobook
// web API.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/memobook/memobook/internal/store"
	"github.com/memobook/memobook/internal/suggest"
	"github.com/memobook/memobook/pkg/types"
)

// APIHandlers serves the memo CRUD and tag endpoints.
type APIHandlers struct {
	store     *store.Store
	suggester *suggest.Suggester
}

// NewAPIHandlers creates API handlers over the given store and suggester.
func NewAPIHandlers(s *store.Store, sg *suggest.Suggester) *APIHandlers {
	return &APIHandlers{store: s, suggester: sg}
}

// ListMemos handles GET /api/memos?q={search}&tag={tag}.
// Both filters are conjunctive; an empty query matches everything.
func (h *APIHandlers) ListMemos(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	tag := r.URL.Query().Get("tag")

	memos := store.Filter(h.store.List(), q, tag)
	respondJSON(w, http.StatusOK, MemoListResponse{Memos: memos, Total: len(memos)})
}

// GetMemo handles GET /api/memos/{id}.
func (h *APIHandlers) GetMemo(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "memo ID is required", nil)
		return
	}

	memo, err := h.store.Get(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusNotFound, "memo not found", err)
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to get memo", err)
		return
	}

	respondJSON(w, http.StatusOK, memo)
}

// CreateMemo handles POST /api/memos.
func (h *APIHandlers) CreateMemo(w http.ResponseWriter, r *http.Request) {
	var req CreateMemoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "failed to parse request body", err)
		return
	}

	if req.Content == "" {
		respondError(w, http.StatusBadRequest, "content is required", nil)
		return
	}

	memo := h.store.Create(req.Content)
	respondJSON(w, http.StatusCreated, memo)
}

// UpdateMemo handles PATCH /api/memos/{id}. Content and visibility may be
// updated independently; tags are re-derived from content by the store.
func (h *APIHandlers) UpdateMemo(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "memo ID is required", nil)
		return
	}

	var req UpdateMemoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "failed to parse request body", err)
		return
	}
	if req.Content == nil && req.Visibility == nil {
		respondError(w, http.StatusBadRequest, "nothing to update", nil)
		return
	}

	if req.Content != nil {
		if err := h.store.Update(id, *req.Content); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				respondError(w, http.StatusNotFound, "memo not found", err)
				return
			}
			respondError(w, http.StatusInternalServerError, "failed to update memo", err)
			return
		}
	}

	if req.Visibility != nil {
		if err := h.store.SetVisibility(id, types.Visibility(*req.Visibility)); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				respondError(w, http.StatusNotFound, "memo not found", err)
				return
			}
			respondError(w, http.StatusBadRequest, "invalid visibility", err)
			return
		}
	}

	memo, err := h.store.Get(id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to read memo", err)
		return
	}
	respondJSON(w, http.StatusOK, memo)
}

// DeleteMemo handles DELETE /api/memos/{id}. Deletion is irreversible; the
// UI confirms intent before calling this.
func (h *APIHandlers) DeleteMemo(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "memo ID is required", nil)
		return
	}

	if err := h.store.Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusNotFound, "memo not found", err)
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to delete memo", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListTags handles GET /api/tags. Counts cover all memos, not just the
// currently filtered set.
func (h *APIHandlers) ListTags(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, store.AllTags(h.store.List()))
}

// SuggestTags handles POST /api/memos/suggest-tags. A provider failure
// yields an empty tag list, never an error status.
func (h *APIHandlers) SuggestTags(w http.ResponseWriter, r *http.Request) {
	var req SuggestTagsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "failed to parse request body", err)
		return
	}
	if req.Content == "" {
		respondError(w, http.StatusBadRequest, "content is required", nil)
		return
	}

	tags := h.suggester.SuggestTags(r.Context(), req.Content)
	respondJSON(w, http.StatusOK, SuggestTagsResponse{Tags: tags})
}
