package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"backend/models"
)

// thousands renders integers with grouping separators ("12,345").
var thousands = message.NewPrinter(language.Korean)

// dateLayouts are tried in order by ParseDate. Full-year layouts come first
// so "2025-01-02" is never consumed by a two-digit-year layout.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006.01.02",
	"2006-01-02 15:04:05",
	"2006년 1월 2일",
	time.RFC3339,
	"Jan 2, 2006",
	"01-02-06",
	"1/2/06 15:04",
}

// NormalizeText converts a raw cell to its canonical text form: surrounding
// whitespace stripped, absent cells as the empty string.
func NormalizeText(v string) string {
	return strings.TrimSpace(v)
}

// ParseDate best-effort parses a cell into its date component. Unparseable
// input yields nil, never an error. Numeric cells are treated as Excel
// serial dates, which is how unformatted date cells come back from the
// workbook reader.
func ParseDate(v string) *time.Time {
	s := strings.TrimSpace(v)
	if s == "" || strings.EqualFold(s, "nan") {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return dateOnly(t)
		}
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial >= 1 {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return dateOnly(t)
		}
	}
	return nil
}

func dateOnly(t time.Time) *time.Time {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &d
}

// DayOffset returns the signed day count d - today, comparing calendar
// dates only.
func DayOffset(d, today time.Time) int {
	du := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	tu := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	return int(du.Sub(tu).Hours() / 24)
}

// DescribeExpiry renders "label: -" for an absent date, "label: DATE (D-n)"
// for dates today or later and "label: DATE (D+n)" for past dates. Today is
// caller-supplied so the rendering is deterministic.
func DescribeExpiry(label string, d *time.Time, today time.Time) string {
	if d == nil {
		return label + ": -"
	}
	dd := DayOffset(*d, today)
	if dd >= 0 {
		return fmt.Sprintf("%s: %s (D-%d)", label, d.Format("2006-01-02"), dd)
	}
	return fmt.Sprintf("%s: %s (D+%d)", label, d.Format("2006-01-02"), -dd)
}

// TelLink builds a clickable tel: target with hyphens and spaces stripped.
func TelLink(phone string) string {
	return "tel:" + strings.NewReplacer("-", "", " ", "").Replace(strings.TrimSpace(phone))
}

var distanceTokens = []string{models.DistanceUnit}

var currencyTokens = []string{models.CurrencySuffix, "₩", "won", "krw"}

// ParseDistance parses a noisy distance cell ("12,345 KM", "12345km") into
// an integer kilometre magnitude with a canonical display. Non-numeric cells
// keep the trimmed original text as the display.
func ParseDistance(v string) models.Distance {
	magnitude, display, parsed := parseMagnitude(v, distanceTokens, models.DistanceUnit)
	return models.Distance{Magnitude: magnitude, Display: display, Parsed: parsed}
}

// ParseCurrency parses a noisy amount cell ("350,000원", "₩350000") the same
// way, with the currency suffix on the canonical display.
func ParseCurrency(v string) models.Currency {
	magnitude, display, parsed := parseMagnitude(v, currencyTokens, models.CurrencySuffix)
	return models.Currency{Magnitude: magnitude, Display: display, Parsed: parsed}
}

// parseMagnitude strips unit tokens (anywhere in the string, any letter
// case), grouping separators and internal whitespace, then parses the rest
// as a number truncated to an integer. On failure it returns the trimmed
// original text unchanged so re-formatting is idempotent.
func parseMagnitude(v string, tokens []string, suffix string) (int, string, bool) {
	s := strings.TrimSpace(v)
	if s == "" || strings.EqualFold(s, "nan") {
		return 0, "", false
	}
	cleaned := s
	for _, tok := range tokens {
		cleaned = stripTokenFold(cleaned, tok)
	}
	cleaned = strings.NewReplacer(",", "", " ", "", "\t", "").Replace(cleaned)
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, s, false
	}
	n := int(f)
	return n, thousands.Sprintf("%d", n) + suffix, true
}

// stripTokenFold removes every case-insensitive occurrence of token. The
// match walks s rune by rune; case folding can change a rune's byte length,
// so byte offsets into a lowered copy must never be used to slice s.
func stripTokenFold(s, token string) string {
	if token == "" {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); {
		if n := foldMatchLen(s[i:], token); n > 0 {
			i += n
			continue
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		b.WriteString(s[i : i+size])
		i += size
	}
	return b.String()
}

// foldMatchLen returns the byte length of the prefix of s that matches token
// under simple case folding, 0 when there is no match.
func foldMatchLen(s, token string) int {
	i := 0
	for _, tr := range token {
		r, size := utf8.DecodeRuneInString(s[i:])
		if size == 0 || unicode.ToLower(r) != unicode.ToLower(tr) {
			return 0
		}
		i += size
	}
	return i
}
