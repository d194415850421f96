package normalizer

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// coreRules is evaluated in order and the first matching rule wins; the slice
// order encodes rule precedence.
var coreRules = []struct {
	expr      *regexp.Regexp
	transform func(match []string) string
}{
	// Displacement-prefixed trim code: "2.0 RS" -> "RS".
	{
		regexp.MustCompile(`(?i)(\d+\.\d+)\s+(R[A-Z]+|[A-Z]+)`),
		func(m []string) string { return strings.ToUpper(m[2]) },
	},
	{
		regexp.MustCompile(`(?i)(HYBRID\s+[A-Z]+)`),
		func(m []string) string { return strings.ToUpper(m[1]) },
	},
	{
		regexp.MustCompile(`(?i)(Custom\s+[A-Z]+)`),
		func(m []string) string { return titleCaser.String(m[1]) },
	},
	// Standalone trim-code tokens. Boundaries are spelled out because kana
	// and kanji count as word characters here, which regexp's ASCII \b
	// would treat as breaks.
	{
		regexp.MustCompile(`(?i)(?:^|[^\p{L}\p{N}_])(R[A-Z]|GT|STI|EX|L|G|S|Z|X|RS)(?:$|[^\p{L}\p{N}_])`),
		func(m []string) string { return strings.ToUpper(m[1]) },
	},
	// Bare displacement such as "2.5L" or "1.8T".
	{
		regexp.MustCompile(`(?i)(?:^|[^\p{L}\p{N}_])(\d+\.\d+[LT]?)(?:$|[^\p{L}\p{N}_])`),
		func(m []string) string { return m[1] },
	},
}

var titleCaser = cases.Title(language.Und)

// specialGrades maps literal grade phrases to their normalized labels; the
// first phrase contained in the cleaned text wins.
var specialGrades = []struct {
	phrase string
	label  string
}{
	{"ハイパフォーマンス", "ハイパフォーマンス"},
	{"ハイ パフォーマンス", "ハイパフォーマンス"},
	{"スポーツ", "Sport"},
	{"ターボ", "ターボ"},
	{"モノトーン", "モノトーン"},
	{"2トーン", "2トーン"},
}

// extractCore pulls the core grade token out of the cleaned text. When a
// model-specific special pattern matches, its mapped label is returned with
// forced=true and no further extraction or list matching applies.
func (r *Resolver) extractCore(cleaned string, entry ModelEntry, known bool) (token string, forced bool) {
	if known {
		lower := strings.ToLower(cleaned)
		for _, sp := range entry.SpecialPatterns {
			if sp.Pattern != "" && strings.Contains(lower, strings.ToLower(sp.Pattern)) {
				return sp.Grade, true
			}
		}
	}
	for _, rule := range coreRules {
		if m := rule.expr.FindStringSubmatch(cleaned); m != nil {
			return rule.transform(m), false
		}
	}
	for _, sg := range specialGrades {
		if strings.Contains(cleaned, sg.phrase) {
			return sg.label, false
		}
	}
	if fields := strings.Fields(cleaned); len(fields) > 0 {
		return fields[0], false
	}
	return r.cfg.BaseGrade, false
}
