package identity

import (
	"regexp"
	"sort"
	"strings"
)

const streetPrefixes = `CALLE|AVENIDA|AV|CALZADA|CALZ|BOULEVARD|BLVD|PRIVADA|PRIV|CERRADA|CDA|ANDADOR|CARRETERA|CARR|PROLONGACION|PROL|C`

var (
	addressLabelPattern = regexp.MustCompile(`\bDOMICILIO\b[ .,-]*`)
	postalLabelPattern  = regexp.MustCompile(`\bC\.? ?P\.? ?(\d{5})\b`)
	postalPattern       = regexp.MustCompile(`\b\d{5}\b`)
	streetPattern       = regexp.MustCompile(`\b((?:` + streetPrefixes + `)\b\.? .+?) (?:(?:NUMERO|NUM|NO)\b\.?|#) ?(\d+[A-Z]?)(?: (?:INTERIOR|INT)\b\.? ?([A-Z0-9-]+))?`)
	streetBarePattern   = regexp.MustCompile(`^((?:` + streetPrefixes + `)\b\.? [A-Z0-9 .]+?) (\d+[A-Z]?)(?: (?:INTERIOR|INT)\b\.? ?([A-Z0-9-]+))?(?: |,|$)`)
	streetNumberPattern = regexp.MustCompile(`^([A-Z][A-Z0-9 .]*?) (?:(?:NUMERO|NUM|NO)\b\.?|#) ?(\d+[A-Z]?)(?: (?:INTERIOR|INT)\b\.? ?([A-Z0-9-]+))?`)
	colonyPattern       = regexp.MustCompile(`\b(?:COLONIA|FRACCIONAMIENTO|COL|FRACC)\b\.? ?(.+?)(?: C\.? ?P\b| \d{5}\b|,|$)`)
	municipalityPattern = regexp.MustCompile(`(?:\b(?:MUNICIPIO|MPIO|DELEGACION|ALCALDIA)\b\.?|\bDEL\.)(?: DE)? (.+?)(?:,| C\.? ?P\b| \d{5}\b|$)`)
	yearLabelPattern    = regexp.MustCompile(`\b(?:REGISTRO|VIGENCIA|EMISION|ANO)\b[ .:-]*$`)

	// addressPartPattern matches lines that name a part of the address itself.
	// Followed by a numeric code, as in "ESTADO 09 MUNICIPIO 015", the same
	// words are card fields and end the block.
	addressPartPattern = regexp.MustCompile(`^(?:MUNICIPIO|ESTADO|DELEGACION|ALCALDIA)\b\.?(?: DE)? [A-Z]`)
)

const maxAddressLines = 4

type stateMatcher struct {
	alias     string
	canonical string
	pattern   *regexp.Regexp
}

// stateMatchers are ordered longest alias first so that, among matches
// ending at the same place, "CIUDAD DE MEXICO" wins over "MEXICO".
var stateMatchers = func() []stateMatcher {
	out := make([]stateMatcher, 0, len(stateAliases))
	for alias, canonical := range stateAliases {
		out = append(out, stateMatcher{
			alias:     alias,
			canonical: canonical,
			pattern:   regexp.MustCompile(`(?:^|[^A-Z])` + regexp.QuoteMeta(alias) + `(?:[^A-Z]|$)`),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i].alias) != len(out[j].alias) {
			return len(out[i].alias) > len(out[j].alias)
		}
		return out[i].alias < out[j].alias
	})
	return out
}()

// ambiguousStateAliases also occur in card headers and are only trusted
// inside a labelled address block.
var ambiguousStateAliases = map[string]bool{"MEXICO": true}

func extractAddress(doc *document, r *Result) int {
	block, labelled := addressBlock(doc)
	addr := Address{}

	streetLine := findStreet(block, &addr, streetPattern, streetBarePattern)
	if streetLine < 0 && labelled {
		streetLine = findStreet(block, &addr, streetNumberPattern)
	}

	for _, line := range block {
		if m := colonyPattern.FindStringSubmatch(line); m != nil && addr.Neighborhood == "" {
			addr.Neighborhood = strings.Trim(m[1], " .,")
		}
		if m := municipalityPattern.FindStringSubmatch(line); m != nil && addr.Municipality == "" && hasLetter(m[1]) {
			addr.Municipality = strings.Trim(m[1], " .,")
		}
	}

	addr.PostalCode = postalCode(strings.Join(block, "\n"))

	// Streets are often named after states; only the rest of the block can
	// name the state.
	stateLines := block
	if streetLine >= 0 {
		stateLines = append([]string(nil), block...)
		stateLines[streetLine] = strings.Replace(stateLines[streetLine], addr.Street, "", 1)
	}
	addr.State = matchState(strings.Join(stateLines, "\n"), labelled)
	if addr.State != "" && addr.Municipality != "" {
		addr.Municipality = trimStateSuffix(addr.Municipality)
	}

	if addr.empty() {
		r.Warnings = append(r.Warnings, WarningAddressNotFound)
		return 0
	}
	addr.Full = composeAddress(addr)
	r.Address = &addr
	return pointsAddress
}

// findStreet fills the street fields from the first line any of patterns
// matches and returns that line's index, or -1.
func findStreet(block []string, addr *Address, patterns ...*regexp.Regexp) int {
	for i, line := range block {
		for _, pattern := range patterns {
			if m := pattern.FindStringSubmatch(line); m != nil {
				addr.Street, addr.ExteriorNumber, addr.InteriorNumber = strings.TrimSpace(m[1]), m[2], m[3]
				return i
			}
		}
	}
	return -1
}

// addressBlock returns the folded lines after the DOMICILIO label up to the
// next field label. Without a label the whole document is searched.
func addressBlock(doc *document) ([]string, bool) {
	for i, line := range doc.foldedLines {
		loc := addressLabelPattern.FindStringIndex(line)
		if loc == nil {
			continue
		}
		var block []string
		if rest := strings.TrimSpace(line[loc[1]:]); rest != "" {
			block = append(block, rest)
		}
		for j := i + 1; j < len(doc.foldedLines) && j <= i+maxAddressLines; j++ {
			if endsAddressBlock(doc.foldedLines[j]) {
				break
			}
			block = append(block, doc.foldedLines[j])
		}
		return block, true
	}
	return doc.foldedLines, false
}

func endsAddressBlock(folded string) bool {
	return isLabel(folded) && !addressPartPattern.MatchString(folded)
}

// postalCode prefers a C.P.-labelled code. Unlabelled five-digit tokens
// printed right after a year label (REGISTRO, VIGENCIA) are skipped.
func postalCode(text string) string {
	if m := postalLabelPattern.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	for _, loc := range postalPattern.FindAllStringIndex(text, -1) {
		if !followsYearLabel(text[:loc[0]]) {
			return text[loc[0]:loc[1]]
		}
	}
	return ""
}

func followsYearLabel(prefix string) bool {
	if i := strings.LastIndexByte(prefix, '\n'); i >= 0 {
		prefix = prefix[i+1:]
	}
	return yearLabelPattern.MatchString(prefix)
}

func hasLetter(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool { return r >= 'A' && r <= 'Z' }) >= 0
}

// matchState returns the state named closest to the end of text, where
// addresses print it. Overlapping names resolve to the longer one.
func matchState(text string, labelled bool) string {
	best, bestEnd := "", -1
	for _, m := range stateMatchers {
		if !labelled && ambiguousStateAliases[m.alias] {
			continue
		}
		locs := m.pattern.FindAllStringIndex(text, -1)
		if len(locs) == 0 {
			continue
		}
		if end := locs[len(locs)-1][1]; end > bestEnd {
			best, bestEnd = m.canonical, end
		}
	}
	return best
}

func trimStateSuffix(municipality string) string {
	for _, m := range stateMatchers {
		if trimmed, ok := strings.CutSuffix(municipality, " "+m.alias); ok {
			return strings.TrimRight(trimmed, " ,.")
		}
	}
	return municipality
}

func composeAddress(a Address) string {
	var parts []string
	street := a.Street
	if a.ExteriorNumber != "" {
		street = strings.TrimSpace(street + " #" + a.ExteriorNumber)
	}
	if a.InteriorNumber != "" {
		street += " INT " + a.InteriorNumber
	}
	if street != "" {
		parts = append(parts, street)
	}
	if a.Neighborhood != "" {
		parts = append(parts, "COL. "+a.Neighborhood)
	}
	if a.PostalCode != "" {
		parts = append(parts, "C.P. "+a.PostalCode)
	}
	if a.Municipality != "" {
		parts = append(parts, a.Municipality)
	}
	if a.State != "" {
		parts = append(parts, a.State)
	}
	return strings.Join(parts, ", ")
}
