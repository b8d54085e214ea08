// Package dates normalizes the date spellings found in source documents
// to ISO calendar dates.
package dates

import (
	"strings"
	"time"
)

// ISO is the canonical output layout.
const ISO = "2006-01-02"

// layouts is tried in order; the first layout that parses wins. The order
// is part of the contract: ambiguous numeric dates such as "03/04/2024"
// resolve day-first because the European layout precedes the US one, not
// because the content was inspected.
var layouts = []string{
	"02.01.2006", // German: 22.05.2024
	"2006-01-02", // ISO
	"02/01/2006", // European
	"01/02/2006", // US
	"02-01-2006",
	"2006/01/02",
	"January 2, 2006",
	"2 January 2006",
}

// Normalize converts a date string in any known format to "YYYY-MM-DD".
// The second return is false when no layout matches or the input is empty.
func Normalize(text string) (string, bool) {
	s := strings.TrimSpace(text)
	if s == "" {
		return "", false
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(ISO), true
		}
	}
	return "", false
}

// IsISO reports whether s is already a valid canonical ISO calendar date.
// Used by the format rule family as a check independent of extraction-time
// normalization, since invoices may arrive as caller-supplied JSON.
func IsISO(s string) bool {
	t, err := time.Parse(ISO, s)
	if err != nil {
		return false
	}
	// time.Parse tolerates unpadded components; the canonical form does not.
	return t.Format(ISO) == s
}

// ParseISO parses a canonical ISO date. Callers that only need validity
// should use IsISO.
func ParseISO(s string) (time.Time, error) {
	return time.Parse(ISO, s)
}
