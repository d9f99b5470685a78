package shell

import (
	"strings"
	"unicode/utf8"

	"github.com/sqlsh-dev/sqlsh/pkg/completer"
)

// lineCompleter adapts the completion engine to readline's
// AutoCompleter. readline expects candidates as the text remaining
// after the word being completed, plus the length of that word.
type lineCompleter struct {
	shell *Shell
}

func (l *lineCompleter) Do(line []rune, pos int) ([][]rune, int) {
	pending := l.shell.pending()
	before := pending + string(line[:pos])
	full := pending + string(line)

	// With smart completion off the engine falls back to a global
	// prefix match; the classifier is skipped entirely so positions it
	// cannot type still complete.
	var suggestions []completer.Suggestion
	if l.shell.comp.SmartCompletion() {
		suggestions = l.shell.suggester.Suggest(full, before)
		if len(suggestions) == 0 {
			return nil, 0
		}
	}
	completions := l.shell.comp.Complete(before, suggestions)

	var out [][]rune
	length := 0
	for _, c := range completions {
		word := before[len(before)+c.Start:]
		text := []rune(c.Text)
		wordLen := utf8.RuneCountInString(word)
		if wordLen > len(text) || wordLen > pos {
			continue
		}
		// Fuzzy hits that do not share the typed prefix would splice
		// badly into the line; only offer prefix-compatible candidates
		// to readline.
		if !strings.EqualFold(string(text[:wordLen]), word) {
			continue
		}
		out = append(out, text[wordLen:])
		length = wordLen
	}
	return out, length
}
