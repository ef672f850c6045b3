// Package tags extracts inline #tag markers from memo content.
package tags

import "regexp"

// tagPattern matches a hash sign immediately followed by one or more word
// characters (letters, digits, underscore). A hash followed by whitespace or
// punctuation is not a tag.
var tagPattern = regexp.MustCompile(`#(\w+)`)

// Extract scans text for #tag markers and returns the tag names (hash
// stripped) in left-to-right order of appearance. Duplicates are preserved;
// de-duplication, where wanted, is the aggregation layer's job.
func Extract(text string) []string {
	matches := tagPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return []string{}
	}

	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m[1])
	}
	return out
}
