package tags

import (
	"reflect"
	"testing"
)

func TestExtract(t *testing.T) {
	cases := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "duplicates preserved in order of appearance",
			text: "Buy #milk and #eggs, also #milk again",
			want: []string{"milk", "eggs", "milk"},
		},
		{
			name: "no tags",
			text: "plain text without markers",
			want: []string{},
		},
		{
			name: "empty input",
			text: "",
			want: []string{},
		},
		{
			name: "hash followed by space is not a tag",
			text: "price is # 100",
			want: []string{},
		},
		{
			name: "hash followed by punctuation is not a tag",
			text: "weird #! marker and #?",
			want: []string{},
		},
		{
			name: "digits and underscores are word characters",
			text: "#go1_24 release notes #v2",
			want: []string{"go1_24", "v2"},
		},
		{
			name: "tag at end of sentence stops at punctuation",
			text: "remember #groceries.",
			want: []string{"groceries"},
		},
		{
			name: "adjacent hashes",
			text: "##double",
			want: []string{"double"},
		},
		{
			name: "word characters are ASCII",
			text: "note #café and #日記",
			want: []string{"caf"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Extract(tc.text)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Extract(%q) = %v, want %v", tc.text, got, tc.want)
			}
		})
	}
}
