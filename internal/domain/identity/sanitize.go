package identity

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// lineBreakTags mark where hOCR and plain HTML OCR output start a new line.
var lineBreakTags = regexp.MustCompile(`(?i)<br\s*/?>|</(?:p|div|li|tr|h[1-6])>|<span[^>]*class=["'][^"']*\bocr_line\b[^"']*["'][^>]*>`)

// textFromHOCR reduces hOCR or HTML OCR output to plain text with one OCR
// line per text line.
func textFromHOCR(policy *bluemonday.Policy, markup string) string {
	marked := lineBreakTags.ReplaceAllStringFunc(markup, func(tag string) string {
		return "\n" + tag
	})
	return html.UnescapeString(policy.Sanitize(marked))
}

func prepareText(policy *bluemonday.Policy, raw string, format Format) (string, error) {
	switch format {
	case "", FormatText:
	case FormatHOCR:
		raw = textFromHOCR(policy, raw)
	default:
		return "", ErrUnsupportedFormat
	}
	if strings.TrimSpace(raw) == "" {
		return "", ErrEmptyText
	}
	return raw, nil
}
