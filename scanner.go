package langscan

import (
	"iter"
	"strings"
)

const (
	// emptyCall is a translation call without arguments. It is never treated as a marker.
	emptyCall = "__()"
	// underscoreMarker starts a __('text') call.
	underscoreMarker = "__("
	// langMarker starts a blade @lang('text') directive.
	langMarker = "@lang("
)

var (
	emptyCallRunes        = []rune(emptyCall)
	underscoreMarkerRunes = []rune(underscoreMarker)
	langMarkerRunes       = []rune(langMarker)
)

// Match is a literal found at a translation call site.
// Offsets are counted in code points, not bytes.
type Match struct {
	// Text is the literal, with concatenated fragments already joined.
	Text string
	// Offset is the position of the marker that started the call.
	Offset int
	// Next is the cursor to resume scanning from.
	Next int
}

// Literals returns every literal found in text, in source order and including duplicates.
func Literals(text string) []string {
	var literals []string
	for m := range Matches(text) {
		literals = append(literals, m.Text)
	}

	return literals
}

// Matches lazily yields the matches in text.
// The sequence is finite and can be ranged over more than once.
func Matches(text string) iter.Seq[Match] {
	return func(yield func(Match) bool) {
		runes := []rune(text)
		cursor := 0
		for cursor < len(runes) {
			m, ok := NextMatch(runes, cursor)
			if !ok {
				return
			}

			if !yield(m) {
				return
			}

			cursor = m.Next
		}
	}
}

// NextMatch finds the first translation call at or after cursor that has a non-empty literal argument.
// It returns false when the rest of text holds no more matches.
func NextMatch(text []rune, cursor int) (Match, bool) {
	for {
		ignoreAt, hasIgnore := indexFrom(text, emptyCallRunes, cursor)
		underscoreAt, hasUnderscore := indexFrom(text, underscoreMarkerRunes, cursor)
		langAt, hasLang := indexFrom(text, langMarkerRunes, cursor)

		// __() has no argument. It is skipped before any marker is selected, so an @lang( in front of
		// it is skipped along with it.
		if hasIgnore && hasUnderscore && ignoreAt == underscoreAt {
			cursor = ignoreAt + len(emptyCallRunes)
			continue
		}

		if !hasUnderscore && !hasLang {
			return Match{}, false
		}

		// Select the earliest marker. Both prefixes differ so they can never start at the same offset.
		start, markerLen := underscoreAt, len(underscoreMarkerRunes)
		if !hasUnderscore || (hasLang && langAt < underscoreAt) {
			start, markerLen = langAt, len(langMarkerRunes)
		}

		from := start + markerLen
		literal, end, ok := quotedLiteral(text, from)
		if !ok || literal == "" {
			// The marker is not followed by a string argument, e.g. it is part of a regular expression.
			// Skip only the marker.
			cursor = from
			continue
		}

		literal, next := concatenated(text, end, literal)

		return Match{Text: literal, Offset: start, Next: next}, true
	}
}

// quotedLiteral returns the first quoted literal at or after start and the offset of its closing quote.
// There is no literal when no quote follows, when the call closes before the first quote or when the
// literal is never terminated.
//
// A quote preceded by a backslash is treated as escaped. Only the directly preceding character is
// checked, so 'ends with \\' is read as an unterminated literal. Only \' is unescaped.
func quotedLiteral(text []rune, start int) (string, int, bool) {
	closeAt, hasClose := indexRuneFrom(text, ')', start)
	singleAt, hasSingle := indexRuneFrom(text, '\'', start)
	doubleAt, hasDouble := indexRuneFrom(text, '"', start)

	if !hasSingle && !hasDouble {
		return "", 0, false
	}

	openAt, quote := singleAt, '\''
	if !hasSingle || (hasDouble && doubleAt < singleAt) {
		openAt, quote = doubleAt, '"'
	}

	if hasClose && closeAt < openAt {
		return "", 0, false
	}

	from := openAt + 1
	for {
		end, ok := indexRuneFrom(text, quote, from)
		if !ok {
			return "", 0, false
		}

		if text[end-1] == '\\' {
			from = end + 1
			continue
		}

		raw := string(text[openAt+1 : end])

		return strings.ReplaceAll(raw, `\'`, `'`), end, true
	}
}

// concatenated walks the text after the closing quote at end and appends every literal joined with '.'.
// The walk stops at the first ')' or ','. It returns the joined literal and the resume cursor.
// A '.' that is not followed by a literal ends the scan of the whole text.
func concatenated(text []rune, end int, literal string) (string, int) {
	next := end + 1
	for i := end + 1; i < len(text); i++ {
		switch text[i] {
		case ')', ',':
			return literal, next
		case '.':
			part, partEnd, ok := quotedLiteral(text, i)
			if !ok {
				// Concatenation with something that is not a literal, e.g. a variable.
				// Nothing after it in the text is scanned.
				return literal, len(text)
			}

			literal += part
			i = partEnd
			next = partEnd
		}
	}

	return literal, len(text)
}

// indexFrom returns the offset of the first occurrence of pattern in text at or after from.
func indexFrom(text, pattern []rune, from int) (int, bool) {
	if from < 0 {
		from = 0
	}

	last := len(text) - len(pattern)
	for i := from; i <= last; i++ {
		if hasPrefixAt(text, pattern, i) {
			return i, true
		}
	}

	return 0, false
}

func indexRuneFrom(text []rune, r rune, from int) (int, bool) {
	for i := max(from, 0); i < len(text); i++ {
		if text[i] == r {
			return i, true
		}
	}

	return 0, false
}

func hasPrefixAt(text, prefix []rune, at int) bool {
	for j, r := range prefix {
		if text[at+j] != r {
			return false
		}
	}

	return true
}
