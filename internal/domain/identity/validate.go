package identity

import (
	"strings"
	"time"
)

const (
	MatchCURP        = "curp"
	MatchName        = "name"
	MatchNamePartial = "name_partial"
	MatchBirthDate   = "birthDate"
)

var claimedDateLayouts = []string{
	birthDateLayout,
	"02/01/2006",
	"02-01-2006",
	"02.01.2006",
	time.RFC3339,
}

// ValidateAgainstUserInput compares extracted fields with what the user
// claims. Only fields present on both sides are compared. The result is valid
// when nothing mismatched and at least one field matched.
func ValidateAgainstUserInput(extracted Result, claimed Claimed) Validation {
	v := Validation{Matches: []string{}, Mismatches: []string{}}

	if curp := strings.TrimSpace(claimed.CURP); curp != "" && extracted.CURP != "" {
		if strings.EqualFold(curp, extracted.CURP) {
			v.Matches = append(v.Matches, MatchCURP)
		} else {
			v.Mismatches = append(v.Mismatches, MatchCURP)
		}
	}

	if strings.TrimSpace(claimed.Name) != "" && extracted.FullName != "" {
		switch overlap := tokenOverlap(claimed.Name, extracted.FullName); {
		case overlap >= 2:
			v.Matches = append(v.Matches, MatchName)
		case overlap == 1:
			v.Matches = append(v.Matches, MatchNamePartial)
		default:
			v.Mismatches = append(v.Mismatches, MatchName)
		}
	}

	if strings.TrimSpace(claimed.BirthDate) != "" && extracted.BirthDate != "" {
		if date, ok := parseClaimedDate(claimed.BirthDate); ok && date == extracted.BirthDate {
			v.Matches = append(v.Matches, MatchBirthDate)
		} else {
			v.Mismatches = append(v.Mismatches, MatchBirthDate)
		}
	}

	v.IsValid = len(v.Mismatches) == 0 && len(v.Matches) > 0
	return v
}

// tokenOverlap counts distinct claimed name tokens found in the extracted
// name, ignoring case and accents.
func tokenOverlap(claimed, extracted string) int {
	have := make(map[string]bool)
	for _, token := range strings.Fields(fold(strings.ToUpper(extracted))) {
		have[token] = true
	}
	seen := make(map[string]bool)
	n := 0
	for _, token := range strings.Fields(fold(strings.ToUpper(claimed))) {
		if have[token] && !seen[token] {
			n++
		}
		seen[token] = true
	}
	return n
}

func parseClaimedDate(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range claimedDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(birthDateLayout), true
		}
	}
	return "", false
}
