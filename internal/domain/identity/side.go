package identity

import "regexp"

var (
	frontPatterns = compileAll(frontKeywords)
	backPatterns  = compileAll(backKeywords)
)

func compileAll(exprs []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, expr := range exprs {
		out[i] = regexp.MustCompile(expr)
	}
	return out
}

// ClassifySide counts front and back keywords in folded text. A tie,
// including no keywords at all, is unknown.
func ClassifySide(folded string) Side {
	front := countMatches(frontPatterns, folded)
	back := countMatches(backPatterns, folded)
	switch {
	case front > back:
		return SideFront
	case back > front:
		return SideBack
	default:
		return SideUnknown
	}
}

func countMatches(patterns []*regexp.Regexp, text string) int {
	n := 0
	for _, p := range patterns {
		if p.MatchString(text) {
			n++
		}
	}
	return n
}

func classifySide(doc *document, r *Result) int {
	r.Side = ClassifySide(doc.folded)
	if r.Side == SideUnknown {
		r.Warnings = append(r.Warnings, WarningSideUndetermined)
	}
	return 0
}
