package identity

import (
	"regexp"
	"strings"
	"unicode"
)

var nameLabelPattern = regexp.MustCompile(`\bNOMBRE\b[ .,-]*`)

const maxNameLines = 3

// extractName reads the value after the NOMBRE label. When the label stands
// alone on its line the name is taken from the lines that follow, up to the
// next field label. Tokens are assigned paternal surname, maternal surname,
// then given names, in the order they appear.
func extractName(doc *document, r *Result) int {
	var tokens []string
	for i, line := range doc.lines {
		loc := nameLabelPattern.FindStringIndex(line)
		if loc == nil {
			continue
		}
		tokens = nameTokens(line[loc[1]:])
		if len(tokens) == 0 {
			for j := i + 1; j < len(doc.lines) && j <= i+maxNameLines; j++ {
				if isLabel(doc.foldedLines[j]) {
					break
				}
				next := nameTokens(doc.lines[j])
				if len(next) == 0 {
					break
				}
				tokens = append(tokens, next...)
			}
		}
		if len(tokens) > 0 {
			break
		}
	}
	if len(tokens) == 0 {
		r.Warnings = append(r.Warnings, WarningNameNotFound)
		return 0
	}

	r.FullName = strings.Join(tokens, " ")
	r.PaternalSurname = tokens[0]
	if len(tokens) > 1 {
		r.MaternalSurname = tokens[1]
	}
	if len(tokens) > 2 {
		r.GivenNames = strings.Join(tokens[2:], " ")
	} else {
		r.Warnings = append(r.Warnings, WarningNameIncomplete)
	}
	return pointsName
}

// nameTokens returns the leading alphabetic words of s, stopping at the first
// field label or token containing anything but letters.
func nameTokens(s string) []string {
	var out []string
	for _, field := range strings.Fields(s) {
		word := strings.Trim(field, keptPunctuation)
		if word == "" || !allLetters(word) || isLabel(fold(word)) {
			break
		}
		out = append(out, word)
	}
	return out
}

func allLetters(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
