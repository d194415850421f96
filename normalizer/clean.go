package normalizer

import (
	"strings"
	"unicode"
)

var bracketStripper = strings.NewReplacer(
	"（", "", "）", "",
	"(", "", ")", "",
	"[", "", "]", "",
	"【", "", "】", "",
)

// cleanGradeText strips the configured noise keywords, removes bracket
// characters, folds separator characters to spaces and collapses whitespace.
func (r *Resolver) cleanGradeText(text string) string {
	if text == "" {
		return ""
	}
	cleaned := text
	for _, kw := range r.keywords {
		cleaned = removeToken(cleaned, kw)
	}
	cleaned = bracketStripper.Replace(cleaned)
	cleaned = strings.Map(func(c rune) rune {
		switch c {
		case '・', '／', '/', '-', '_':
			return ' '
		}
		return c
	}, cleaned)
	return strings.Join(strings.Fields(cleaned), " ")
}

// removeToken deletes case-insensitive occurrences of token that stand alone,
// i.e. are not embedded inside a longer run of letters or digits.
func removeToken(text, token string) string {
	target := []rune(strings.ToLower(token))
	if len(target) == 0 {
		return text
	}
	src := []rune(text)
	lower := []rune(strings.ToLower(text))
	if len(lower) != len(src) {
		// Case folding changed the rune count; match exactly instead.
		lower = src
	}
	out := make([]rune, 0, len(src))
	for i := 0; i < len(src); {
		if i+len(target) <= len(src) && runesEqual(lower[i:i+len(target)], target) && standalone(lower, i, i+len(target)) {
			i += len(target)
			continue
		}
		out = append(out, src[i])
		i++
	}
	return string(out)
}

func runesEqual(a, b []rune) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func standalone(text []rune, start, end int) bool {
	if start > 0 && isWordRune(text[start-1]) {
		return false
	}
	if end < len(text) && isWordRune(text[end]) {
		return false
	}
	return true
}

func isWordRune(c rune) bool {
	return unicode.IsLetter(c) || unicode.IsDigit(c) || c == '_'
}
