package completer

import (
	"regexp"
	"sort"
	"strings"
)

// Completion is one ranked completion candidate. Start is the (negative)
// offset at which Text should be spliced into the input: the last -Start
// characters before the cursor are replaced.
type Completion struct {
	Text  string
	Start int
}

// lastWord extracts the word being completed at the end of text. Dot,
// parentheses, colon, comma and whitespace end a word; any other
// character (underscore, dollar, backslash, quotes) is part of it, so
// qualified references split at the dot and shell commands keep their
// backslash prefix.
func lastWord(text string) string {
	end := len(text)
	start := end
	for start > 0 && !isWordBoundary(text[start-1]) {
		start--
	}
	return text[start:end]
}

func isWordBoundary(b byte) bool {
	switch b {
	case '.', '(', ')', ':', ',', ';', ' ', '\t', '\n', '\r':
		return true
	}
	return false
}

// findMatches ranks collection against the last word of text.
//
// In fuzzy mode the word is matched as a subsequence: its characters must
// appear in order, with anything in between, and candidates are ranked by
// the length of the matched span, then by how early it starts. In
// non-fuzzy mode the word must appear as a contiguous substring, at
// offset zero when startOnly is set. Ties fall back to candidate order,
// which is lexicographic: the collection is sorted before scoring and the
// final sort is stable.
func findMatches(text string, collection []string, startOnly, fuzzy bool) []Completion {
	word := strings.ToLower(lastWord(text))

	sorted := append([]string(nil), collection...)
	sort.Strings(sorted)

	type scored struct {
		length int
		start  int
		text   string
	}
	var matches []scored

	if fuzzy {
		var pattern strings.Builder
		for _, r := range word {
			if pattern.Len() > 0 {
				pattern.WriteString(".*?")
			}
			pattern.WriteString(regexp.QuoteMeta(string(r)))
		}
		// QuoteMeta guarantees the pattern compiles.
		re := regexp.MustCompile(pattern.String())
		for _, item := range sorted {
			loc := re.FindStringIndex(strings.ToLower(item))
			if loc == nil {
				continue
			}
			matches = append(matches, scored{length: loc[1] - loc[0], start: loc[0], text: item})
		}
	} else {
		for _, item := range sorted {
			idx := strings.Index(strings.ToLower(item), word)
			if idx < 0 || (startOnly && idx != 0) {
				continue
			}
			matches = append(matches, scored{length: len(word), start: idx, text: item})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].length != matches[j].length {
			return matches[i].length < matches[j].length
		}
		return matches[i].start < matches[j].start
	})

	completions := make([]Completion, len(matches))
	for i, m := range matches {
		completions[i] = Completion{Text: m.text, Start: -len(word)}
	}
	return completions
}
