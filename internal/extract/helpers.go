package extract

import (
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"orderapi/internal/convert"
)

// dateLayout is the order-sheet date format, DD/MM/YYYY.
const dateLayout = "02/01/2006"

var postalCodeRe = regexp.MustCompile(`^\d{4,5}$`)

// FirstNonMatching returns the first non-empty cell text in the row that is
// not the given label. Order sheets repeat the row label in an arbitrary
// column, so position cannot be trusted.
func FirstNonMatching(row []convert.Cell, label string) string {
	for _, cell := range row {
		v := strings.TrimSpace(cell.Text)
		if v != "" && v != label {
			return v
		}
	}
	return ""
}

// FirstWord returns the leading token when it looks like a postal code
// (4-5 digits); otherwise the input is returned untouched. Postal code cells
// often carry the city after the code.
func FirstWord(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	if postalCodeRe.MatchString(fields[0]) {
		return fields[0]
	}
	return strings.TrimSpace(text)
}

// StripPrefixFold removes the prefix from the start of s, case-insensitively,
// and trims leftover leading whitespace. Cells frequently repeat their label
// ("Modelo: SEAT Ibiza") or the vehicle make inside the model.
func StripPrefixFold(prefix, s string) string {
	s = strings.TrimSpace(s)
	prefix = strings.TrimSpace(prefix)
	if prefix == "" || s == "" {
		return s
	}
	if len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix) {
		return strings.TrimLeft(s[len(prefix):], " \t")
	}
	return s
}

// FormatDate reformats any parseable date as DD/MM/YYYY. Unparseable input
// is returned as-is so the raw sheet value is preserved rather than lost.
func FormatDate(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	if t, err := time.Parse(dateLayout, value); err == nil {
		return t.Format(dateLayout)
	}
	t, err := dateparse.ParseAny(value)
	if err != nil {
		return value
	}
	return t.Format(dateLayout)
}

// ConcatTextsFrom joins the bodies of all text items starting at the given
// index, one per line.
func ConcatTextsFrom(c *convert.Content, start int) string {
	texts := c.Texts()
	if start < 0 || start >= len(texts) {
		return ""
	}
	var parts []string
	for _, t := range texts[start:] {
		if strings.TrimSpace(t.Body) != "" {
			parts = append(parts, t.Body)
		}
	}
	return strings.Join(parts, "\n")
}
