// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package markdown turns layout-preserving plain text into Markdown using
// line-level heuristics: short upper-case lines become level-2 headings,
// short lines without trailing punctuation become level-3 headings, and runs
// of blank lines collapse to one.
package markdown

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Kind classifies a stripped input line.
type Kind int

const (
	KindBlank Kind = iota
	KindHeading2
	KindHeading3
	KindPlain
)

func (k Kind) String() string {
	switch k {
	case KindBlank:
		return "blank"
	case KindHeading2:
		return "heading2"
	case KindHeading3:
		return "heading3"
	case KindPlain:
		return "plain"
	}
	return "unknown"
}

// Length windows are exclusive on both ends.
const (
	heading2MinExclusive = 3
	heading2MaxExclusive = 100
	heading3MinExclusive = 5
	heading3MaxExclusive = 80
)

// sentenceEnders are the trailing marks that keep a short line from being a
// level-3 heading.
const sentenceEnders = ".,;:!?"

var blankRun = regexp.MustCompile(`\n{3,}`)

// Format converts extracted text into a Markdown document. It never fails;
// empty input yields an empty document.
func Format(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))

	for _, line := range lines {
		stripped := strings.TrimFunc(line, isSpace)
		switch Classify(stripped) {
		case KindBlank:
			if len(out) > 0 && out[len(out)-1] != "" {
				out = append(out, "")
			}
		case KindHeading2:
			out = append(out, "## "+TitleCase(stripped))
		case KindHeading3:
			out = append(out, "### "+stripped)
		default:
			out = append(out, stripped)
		}
	}

	return CollapseBlankRuns(strings.Join(out, "\n"))
}

// Classify reports how a stripped line is rendered. Rules are tried in
// order: blank, level-2 heading, level-3 heading, plain.
func Classify(stripped string) Kind {
	if stripped == "" {
		return KindBlank
	}
	n := utf8.RuneCountInString(stripped)
	if IsUpper(stripped) && n > heading2MinExclusive && n < heading2MaxExclusive {
		return KindHeading2
	}
	if n > heading3MinExclusive && n < heading3MaxExclusive && !endsWithSentenceMark(stripped) {
		return KindHeading3
	}
	return KindPlain
}

// IsUpper reports whether s has at least one cased letter and no lower-case
// or title-case letters. Digits and punctuation are ignored.
func IsUpper(s string) bool {
	cased := false
	for _, r := range s {
		switch {
		case unicode.IsLower(r), unicode.IsTitle(r):
			return false
		case unicode.IsUpper(r):
			cased = true
		}
	}
	return cased
}

// TitleCase upper-cases the first letter of every whitespace-separated word
// and lower-cases the rest. Digits and punctuation before that letter are
// kept, so "(APPENDIX" becomes "(Appendix" and "2ND" becomes "2Nd".
// Whitespace between words is kept as is. Small words such as "of" or "the"
// are capitalized too.
func TitleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	wordStart := true
	for _, r := range s {
		switch {
		case isSpace(r):
			wordStart = true
			b.WriteRune(r)
		case wordStart && unicode.IsLetter(r):
			b.WriteRune(unicode.ToTitle(r))
			wordStart = false
		default:
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// isSpace reports whether r is stripped from line ends and separates words.
// The information separators U+001C..U+001F count as whitespace.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= '\x1c' && r <= '\x1f')
}

// CollapseBlankRuns replaces every run of three or more line breaks with
// exactly two. Applying it twice gives the same result as applying it once.
func CollapseBlankRuns(s string) string {
	return blankRun.ReplaceAllString(s, "\n\n")
}

func endsWithSentenceMark(s string) bool {
	r, _ := utf8.DecodeLastRuneInString(s)
	return strings.ContainsRune(sentenceEnders, r)
}
