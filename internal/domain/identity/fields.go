package identity

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	electorKeyPattern  = regexp.MustCompile(`\b[A-Z]{6}\d{8}[A-Z]\d{3}\b`)
	ineNumber16Pattern = regexp.MustCompile(`\b\d{4} ?\d{4} ?\d{4} ?\d{4}\b`)
	ineNumber13Pattern = regexp.MustCompile(`\b\d{13}\b`)
	datePattern        = regexp.MustCompile(`\b(\d{1,2})[/.-](\d{1,2})[/.-](\d{4})\b`)
	labeledDatePattern = regexp.MustCompile(`\bNACIMIENTO\b[ .,:-]*(\d{1,2})[/.-](\d{1,2})[/.-](\d{4})\b`)
	sexLabelPattern    = regexp.MustCompile(`\bSEXO\b[ .,:-]*(H|M)\b`)
	validityPattern    = regexp.MustCompile(`\bVIGENCIA\b[ .,:-]*(?:HASTA )?(\d{4})(?: ?- ?(\d{4}))?\b`)
	sectionPattern     = regexp.MustCompile(`\bSECCION\b[ .,:-]*(\d{4})\b`)
)

const (
	minDocumentYear = 1900
	maxDocumentYear = 2100
	minValidityYear = 1990
	birthDateLayout = "2006-01-02"
)

func extractElectorKey(doc *document, r *Result) int {
	key := electorKeyPattern.FindString(doc.folded)
	if key == "" {
		r.Warnings = append(r.Warnings, WarningElectorKeyNotFound)
		return 0
	}
	r.ElectorKey = key
	return pointsElectorKey
}

func extractINENumber(doc *document, r *Result) int {
	if m := ineNumber16Pattern.FindString(doc.folded); m != "" {
		r.INENumber = strings.ReplaceAll(m, " ", "")
		return pointsINENumber
	}
	if m := ineNumber13Pattern.FindString(doc.folded); m != "" {
		r.INENumber = m
		return pointsINENumber
	}
	r.Warnings = append(r.Warnings, WarningINENumberNotFound)
	return 0
}

// extractBirthDate keeps a CURP-derived birth date and falls back to a date
// printed on the card. A labelled date that disagrees with the CURP is
// reported but does not replace it.
func extractBirthDate(doc *document, r *Result) int {
	labeled, hasLabeled := firstDate(labeledDatePattern, doc.folded)
	if r.BirthDate != "" {
		if hasLabeled && labeled.Format(birthDateLayout) != r.BirthDate {
			r.Warnings = append(r.Warnings, WarningBirthDateConflict)
		}
		return pointsBirthDate
	}
	if hasLabeled {
		r.BirthDate = labeled.Format(birthDateLayout)
		return pointsBirthDate
	}
	if date, ok := firstDate(datePattern, doc.folded); ok {
		r.BirthDate = date.Format(birthDateLayout)
		return pointsBirthDate
	}
	r.Warnings = append(r.Warnings, WarningBirthDateNotFound)
	return 0
}

// firstDate returns the first DD/MM/YYYY match that is a real calendar date
// within the accepted year range.
func firstDate(pattern *regexp.Regexp, text string) (time.Time, bool) {
	for _, m := range pattern.FindAllStringSubmatch(text, -1) {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if year < minDocumentYear || year > maxDocumentYear {
			continue
		}
		if t, ok := calendarDate(year, month, day); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

func extractValidityAndSection(doc *document, r *Result) int {
	if m := validityPattern.FindStringSubmatch(doc.folded); m != nil {
		raw := m[1]
		if m[2] != "" {
			raw = m[2]
		}
		if year, err := strconv.Atoi(raw); err == nil && year >= minValidityYear && year <= maxDocumentYear {
			r.ValidityYear = year
		}
	}
	if m := sectionPattern.FindStringSubmatch(doc.folded); m != nil {
		r.Section = m[1]
	}
	return 0
}
