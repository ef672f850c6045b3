package store

import (
	"sort"
	"strings"

	"github.com/memobook/memobook/pkg/types"
)

// TagCount pairs a tag with the number of memos that carry it.
type TagCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Filter returns the memos whose content contains query as a
// case-insensitive substring and, when activeTag is non-empty, whose tags
// contain activeTag exactly (case-sensitive). Both conditions are
// conjunctive. An empty query matches everything. Order is preserved.
//
// Filter is a pure function of its inputs; callers recompute it on every
// change to the store, the query, or the active tag.
func Filter(memos []*types.Memo, query, activeTag string) []*types.Memo {
	needle := strings.ToLower(query)

	out := make([]*types.Memo, 0, len(memos))
	for _, m := range memos {
		if needle != "" && !strings.Contains(strings.ToLower(m.Content), needle) {
			continue
		}
		if activeTag != "" && !containsTag(m.Tags, activeTag) {
			continue
		}
		out = append(out, m)
	}
	return out
}

// AllTags returns the distinct tags across all memos in ascending
// lexicographic order, each paired with the number of memos containing it.
// A tag repeated within one memo's content counts that memo once.
func AllTags(memos []*types.Memo) []TagCount {
	counts := make(map[string]int)
	for _, m := range memos {
		seen := make(map[string]bool, len(m.Tags))
		for _, t := range m.Tags {
			if !seen[t] {
				seen[t] = true
				counts[t]++
			}
		}
	}

	out := make([]TagCount, 0, len(counts))
	for name, count := range counts {
		out = append(out, TagCount{Name: name, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ActiveMemo returns the memo matching the edit-target id, or nil when no
// edit is in progress or the id is absent.
func ActiveMemo(memos []*types.Memo, editID string) *types.Memo {
	if editID == "" {
		return nil
	}
	for _, m := range memos {
		if m.ID == editID {
			return m
		}
	}
	return nil
}

func containsTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
