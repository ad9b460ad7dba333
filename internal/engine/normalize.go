package engine

import (
	"regexp"
	"strings"
)

var (
	tagPattern      = regexp.MustCompile(`<[^>]+>`)
	horizWSPattern  = regexp.MustCompile(`[ \t]+`)
	blankRunPattern = regexp.MustCompile(`\n{3,}`)
)

var entityReplacer = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
	"&nbsp;", " ",
)

// Normalize prepares raw posting or resume text for extraction. It strips
// markup, normalizes line endings, collapses horizontal whitespace within
// each line and caps blank-line runs, but keeps the line structure intact
// because extraction is line-oriented. Normalize(Normalize(x)) == Normalize(x).
func Normalize(raw string) string {
	text := strings.ReplaceAll(raw, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = tagPattern.ReplaceAllString(text, " ")
	text = entityReplacer.Replace(text)
	text = stripControlChars(text)

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(horizWSPattern.ReplaceAllString(line, " "))
	}
	text = strings.Join(lines, "\n")
	text = blankRunPattern.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}

func stripControlChars(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
}

// Flatten produces the lowercase single-space view used for vocabulary
// matching and keyword counting.
func Flatten(text string) string {
	return strings.ToLower(strings.Join(strings.Fields(text), " "))
}

// wordPattern builds a case-insensitive whole-word pattern for term. The
// boundary assertions are applied only where the term starts or ends with a
// word character, so terms like "c++" and "node.js" still match.
func wordPattern(term string) *regexp.Regexp {
	pattern := `(?i)` + regexp.QuoteMeta(term)
	if isWordByte(term[0]) {
		pattern = `\b` + pattern
	}
	if isWordByte(term[len(term)-1]) {
		pattern += `\b`
	}
	return regexp.MustCompile(pattern)
}

func isWordByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}

// containsWord reports whether term occurs as a whole word in text,
// case-insensitively.
func containsWord(text, term string) bool {
	if term == "" {
		return false
	}
	return wordPattern(term).MatchString(text)
}

// countWord counts whole-word occurrences of term in text.
func countWord(text, term string) int {
	if term == "" {
		return 0
	}
	return len(wordPattern(term).FindAllStringIndex(text, -1))
}
