package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/memobook/memobook/pkg/types"
)

// ErrorResponse is the JSON body for error replies.
type ErrorResponse struct {
	Error   string                 `json:"error"`
	Code    string                 `json:"code"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// CreateMemoRequest is the body for POST /api/memos.
type CreateMemoRequest struct {
	Content string `json:"content"`
}

// UpdateMemoRequest is the body for PATCH /api/memos/{id}.
// Absent fields are left unchanged.
type UpdateMemoRequest struct {
	Content    *string `json:"content,omitempty"`
	Visibility *string `json:"visibility,omitempty"`
}

// MemoListResponse is the JSON response for GET /api/memos.
type MemoListResponse struct {
	Memos []*types.Memo `json:"memos"`
	Total int           `json:"total"`
}

// SuggestTagsRequest is the body for POST /api/memos/suggest-tags.
type SuggestTagsRequest struct {
	Content string `json:"content"`
}

// SuggestTagsResponse carries the suggested tags; empty when the model is
// unavailable.
type SuggestTagsResponse struct {
	Tags []string `json:"tags"`
}

// respondJSON writes data as a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Headers already sent; nothing to do but log.
		log.Printf("failed to encode JSON response: %v", err)
	}
}

// respondError writes an error response with the given status code.
func respondError(w http.ResponseWriter, statusCode int, message string, err error) {
	errResp := ErrorResponse{
		Error: message,
		Code:  http.StatusText(statusCode),
	}

	if err != nil {
		errResp.Details = map[string]interface{}{
			"error": err.Error(),
		}
	}

	respondJSON(w, statusCode, errResp)
}
