package identity

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	curpCandidatePattern = regexp.MustCompile(`\b[A-Z]{4}\d{6}[HM][A-Z]{5}[A-Z0-9]\d\b`)
	curpStrictPattern    = regexp.MustCompile(`^[A-Z][AEIOUX][A-Z]{2}\d{2}(0[1-9]|1[0-2])(0[1-9]|[12]\d|3[01])[HM](AS|BC|BS|CC|CL|CM|CS|CH|DF|DG|GT|GR|HG|JC|MC|MN|MS|NT|NL|OC|PL|QT|QR|SP|SL|SR|TC|TS|TL|VZ|YN|ZS|NE)[B-DF-HJ-NP-TV-Z]{3}[A-Z\d]\d$`)
)

const curpAlphabet = "0123456789ABCDEFGHIJKLMNÑOPQRSTUVWXYZ"

var curpValues = func() map[rune]int {
	values := make(map[rune]int)
	for i, r := range []rune(curpAlphabet) {
		values[r] = i
	}
	return values
}()

// findCURP returns the first candidate that passes structural validation, or
// the first candidate when none does.
func findCURP(text string) (curp string, valid bool, candidates int) {
	matches := curpCandidatePattern.FindAllString(text, -1)
	if len(matches) == 0 {
		return "", false, 0
	}
	for _, m := range matches {
		if ValidCURP(m) {
			return m, true, len(matches)
		}
	}
	return matches[0], false, len(matches)
}

// ValidCURP reports whether curp has the correct letter and digit layout, a
// plausible birth date and a known state code. The check digit is not part of
// structural validity.
func ValidCURP(curp string) bool {
	return curpStrictPattern.MatchString(strings.ToUpper(curp))
}

// CURPCheckDigit computes the verification digit for the first 17 characters.
func CURPCheckDigit(curp string) (int, error) {
	chars := []rune(strings.ToUpper(curp))
	if len(chars) < 17 {
		return 0, fmt.Errorf("%w: expected at least 17 characters", ErrInvalidCURP)
	}
	sum := 0
	for i, r := range chars[:17] {
		value, ok := curpValues[r]
		if !ok {
			return 0, fmt.Errorf("%w: unexpected character %q", ErrInvalidCURP, r)
		}
		sum += value * (18 - i)
	}
	return (10 - sum%10) % 10, nil
}

func checkDigitMatches(curp string) bool {
	digit, err := CURPCheckDigit(curp)
	if err != nil || len(curp) != 18 {
		return false
	}
	return int(curp[17]-'0') == digit
}

// BirthDateFromCURP decodes characters 5-10 as YYMMDD. Years 00-30 belong
// to the 2000s and 31-99 to the 1900s.
func BirthDateFromCURP(curp string) (time.Time, bool) {
	if len(curp) < 10 {
		return time.Time{}, false
	}
	yy, ok1 := twoDigits(curp[4:6])
	mm, ok2 := twoDigits(curp[6:8])
	dd, ok3 := twoDigits(curp[8:10])
	if !ok1 || !ok2 || !ok3 {
		return time.Time{}, false
	}
	year := 1900 + yy
	if yy <= 30 {
		year = 2000 + yy
	}
	return calendarDate(year, mm, dd)
}

func SexFromCURP(curp string) (Sex, bool) {
	if len(curp) < 11 {
		return "", false
	}
	switch curp[10] {
	case 'H':
		return SexMale, true
	case 'M':
		return SexFemale, true
	default:
		return "", false
	}
}

// BirthStateFromCURP looks up characters 12-13 in the state table.
func BirthStateFromCURP(curp string) (string, bool) {
	if len(curp) < 13 {
		return "", false
	}
	state, ok := stateCodes[curp[11:13]]
	return state, ok
}

func twoDigits(s string) (int, bool) {
	if len(s) != 2 || s[0] < '0' || s[0] > '9' || s[1] < '0' || s[1] > '9' {
		return 0, false
	}
	return int(s[0]-'0')*10 + int(s[1]-'0'), true
}

// calendarDate rejects dates that time.Date would silently normalize.
func calendarDate(year, month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}
