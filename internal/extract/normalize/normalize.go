// Package normalize converts raw OCR captures into typed values. All
// parsers are forgiving: OCR noise yields nil rather than an error.
package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var nonMoney = regexp.MustCompile(`[^\d.]`)

// Money parses an OCR money capture such as "£1,000,000", "250k" or
// "1.5m" into an absolute amount. Returns nil when nothing numeric
// survives cleanup.
func Money(value string) *float64 {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return nil
	}
	v = strings.ReplaceAll(v, ",", "")
	multiplier := 1.0
	if strings.Contains(v, "k") {
		multiplier = 1_000.0
		v = strings.ReplaceAll(v, "k", "")
	}
	if strings.Contains(v, "m") {
		multiplier = 1_000_000.0
		v = strings.ReplaceAll(v, "m", "")
	}
	v = strings.ReplaceAll(v, "£", "")
	v = nonMoney.ReplaceAllString(v, "")
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil
	}
	f *= multiplier
	return &f
}

var nonDigit = regexp.MustCompile(`[^\d]`)

// Int extracts the digits from a capture ("12 people" -> 12). Returns
// nil when the capture holds no digits.
func Int(value string) *int {
	digits := nonDigit.ReplaceAllString(value, "")
	if digits == "" {
		return nil
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return nil
	}
	return &n
}

// dateLayouts are the formats seen on UK proposal forms, day-first,
// plus ISO as produced by some OCR pipelines.
var dateLayouts = []string{
	"02/01/2006", "02-01-2006", "02.01.2006",
	"02/01/06", "02-01-06", "02.01.06",
	"2006-01-02",
}

// Date parses a capture into an ISO yyyy-mm-dd string. Returns nil when
// no known layout matches.
func Date(value string) *string {
	v := strings.TrimSpace(value)
	if v == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			iso := t.Format("2006-01-02")
			return &iso
		}
	}
	return nil
}
