package identity

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const keptPunctuation = ".,#-/"

// normalize uppercases OCR text, turns noise characters into spaces and
// collapses whitespace inside each line. Blank lines are dropped so that
// line-based heuristics see only lines with content.
func normalize(text string) string {
	text = norm.NFC.String(strings.ReplaceAll(text, "\r\n", "\n"))
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		var b strings.Builder
		for _, r := range strings.ToUpper(line) {
			switch {
			case unicode.IsLetter(r), unicode.IsDigit(r), strings.ContainsRune(keptPunctuation, r):
				b.WriteRune(r)
			default:
				b.WriteByte(' ')
			}
		}
		if fields := strings.Fields(b.String()); len(fields) > 0 {
			out = append(out, strings.Join(fields, " "))
		}
	}
	return strings.Join(out, "\n")
}

// fold strips diacritics so that "SECCIÓN" and "SECCION" compare equal.
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// isLabel reports whether a folded line starts with a field label.
func isLabel(folded string) bool {
	first, _, _ := strings.Cut(folded, " ")
	for _, label := range fieldLabels {
		if first == label {
			return true
		}
	}
	return false
}
