package store

import (
	"reflect"
	"testing"

	"github.com/memobook/memobook/pkg/types"
)

func viewFixture() []*types.Memo {
	return []*types.Memo{
		{ID: "1", Content: "Buy Milk and bread", Tags: []string{"groceries"}},
		{ID: "2", Content: "milk the deadline for all it's worth", Tags: []string{"work", "eggs"}},
		{ID: "3", Content: "weekend plans", Tags: []string{"eggs"}},
	}
}

func TestFilterEmptyInputsReturnsAll(t *testing.T) {
	memos := viewFixture()

	got := Filter(memos, "", "")

	if len(got) != len(memos) {
		t.Fatalf("got %d memos, want %d", len(got), len(memos))
	}
	for i := range memos {
		if got[i].ID != memos[i].ID {
			t.Errorf("order changed at %d: got %q, want %q", i, got[i].ID, memos[i].ID)
		}
	}
}

func TestFilterSearchIsCaseInsensitive(t *testing.T) {
	got := Filter(viewFixture(), "milk", "")

	ids := memoIDs(got)
	if !reflect.DeepEqual(ids, []string{"1", "2"}) {
		t.Errorf("search 'milk': got %v, want [1 2]", ids)
	}
}

func TestFilterSearchAndTagAreConjunctive(t *testing.T) {
	got := Filter(viewFixture(), "milk", "eggs")

	ids := memoIDs(got)
	if !reflect.DeepEqual(ids, []string{"2"}) {
		t.Errorf("search 'milk' + tag 'eggs': got %v, want [2]", ids)
	}
}

func TestFilterTagMatchIsCaseSensitive(t *testing.T) {
	got := Filter(viewFixture(), "", "Eggs")

	if len(got) != 0 {
		t.Errorf("tag 'Eggs': got %d memos, want 0", len(got))
	}
}

func TestAllTags(t *testing.T) {
	memos := []*types.Memo{
		{ID: "1", Tags: []string{"a", "b"}},
		{ID: "2", Tags: []string{"b"}},
		{ID: "3", Tags: []string{}},
	}

	got := AllTags(memos)

	want := []TagCount{{Name: "a", Count: 1}, {Name: "b", Count: 2}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AllTags: got %v, want %v", got, want)
	}
}

func TestAllTagsCountsMemosNotOccurrences(t *testing.T) {
	// "milk" appears twice in one memo's content; that memo counts once.
	memos := []*types.Memo{
		{ID: "1", Tags: []string{"milk", "eggs", "milk"}},
		{ID: "2", Tags: []string{"milk"}},
	}

	got := AllTags(memos)

	want := []TagCount{{Name: "eggs", Count: 1}, {Name: "milk", Count: 2}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AllTags: got %v, want %v", got, want)
	}
}

func TestActiveMemo(t *testing.T) {
	memos := viewFixture()

	if m := ActiveMemo(memos, "2"); m == nil || m.ID != "2" {
		t.Errorf("ActiveMemo(2): got %v, want memo 2", m)
	}
	if m := ActiveMemo(memos, ""); m != nil {
		t.Errorf("ActiveMemo with no edit in progress: got %v, want nil", m)
	}
	if m := ActiveMemo(memos, "missing"); m != nil {
		t.Errorf("ActiveMemo with unknown id: got %v, want nil", m)
	}
}

func memoIDs(memos []*types.Memo) []string {
	ids := make([]string, len(memos))
	for i, m := range memos {
		ids[i] = m.ID
	}
	return ids
}
