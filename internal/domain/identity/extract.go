package identity

import "strings"

type document struct {
	normalized  string
	folded      string
	lines       []string
	foldedLines []string
}

func newDocument(text string) *document {
	normalized := normalize(text)
	folded := fold(normalized)
	return &document{
		normalized:  normalized,
		folded:      folded,
		lines:       strings.Split(normalized, "\n"),
		foldedLines: strings.Split(folded, "\n"),
	}
}

// extractor fills part of a Result and returns the confidence points it
// earned.
type extractor func(doc *document, r *Result) int

// pipeline order matters: CURP-derived fields must be set before the birth
// date fallback runs.
var pipeline = []extractor{
	extractCURP,
	deriveFromCURP,
	extractElectorKey,
	extractINENumber,
	extractBirthDate,
	extractName,
	extractAddress,
	extractValidityAndSection,
	classifySide,
}

// ExtractIdentityFields reads an INE/IFE voter card from OCR text. It never
// fails: missing fields are left empty and described in Warnings.
func ExtractIdentityFields(text string) Result {
	doc := newDocument(text)
	r := Result{Warnings: []string{}, Side: SideUnknown}
	score := 0
	for _, step := range pipeline {
		score += step(doc, &r)
	}
	r.ConfidenceScore = clampScore(score)
	return r
}

func clampScore(score int) int {
	return max(0, min(score, maxConfidence))
}

func extractCURP(doc *document, r *Result) int {
	curp, valid, candidates := findCURP(doc.folded)
	if curp == "" {
		r.Warnings = append(r.Warnings, WarningCURPNotFound)
		return 0
	}
	r.CURP = curp
	r.CURPValid = valid
	if candidates > 1 {
		r.Warnings = append(r.Warnings, WarningMultipleCURPMatches)
	}
	if !valid {
		r.Warnings = append(r.Warnings, WarningCURPStructure)
		return pointsCURP - penaltyInvalidCURP
	}
	if !checkDigitMatches(curp) {
		r.Warnings = append(r.Warnings, WarningCURPCheckDigit)
	}
	return pointsCURP
}

// deriveFromCURP decodes birth date, sex and birth state whether or not the
// CURP passed structural validation. Sex falls back to the SEXO label.
func deriveFromCURP(doc *document, r *Result) int {
	points := 0
	if r.CURP != "" {
		if date, ok := BirthDateFromCURP(r.CURP); ok {
			r.BirthDate = date.Format(birthDateLayout)
		} else {
			r.Warnings = append(r.Warnings, WarningCURPBirthDate)
		}
		if sex, ok := SexFromCURP(r.CURP); ok {
			r.Sex = sex
		}
		if state, ok := BirthStateFromCURP(r.CURP); ok {
			r.BirthState = state
			points += pointsBirthState
		} else {
			r.Warnings = append(r.Warnings, WarningCURPState)
		}
	}
	if r.Sex == "" {
		if m := sexLabelPattern.FindStringSubmatch(doc.folded); m != nil {
			r.Sex = SexMale
			if m[1] == "M" {
				r.Sex = SexFemale
			}
		}
	}
	if r.Sex != "" {
		points += pointsSex
	}
	return points
}
