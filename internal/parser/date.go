package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Keyword removal patterns. Detection below is substring-based; removal is
// word-bounded, so a keyword embedded in a larger word still produces a date
// but is not stripped from the text.
var (
	reToday     = regexp.MustCompile(`(?i)\bhoje\b|\btoday\b`)
	reYesterday = regexp.MustCompile(`(?i)\bontem\b|\byesterday\b`)
	reTomorrow  = regexp.MustCompile(`(?i)\bamanhã\b|\btomorrow\b`)

	reDayMonth = regexp.MustCompile(`\b(\d{1,2})[/-](\d{1,2})\b`)
	reISODate  = regexp.MustCompile(`\b(\d{4})[/-](\d{1,2})[/-](\d{1,2})\b`)
)

// extractDate locates a single date expression in text. Exactly one of the
// five forms is attempted, in this order, regardless of textual position:
// hoje/today, ontem/yesterday, amanhã/tomorrow, day/month, ISO. On success it
// returns the date and the text with the matched fragment removed and
// trimmed; on failure the text comes back unchanged.
//
// Known quirk, kept on purpose: \b is ASCII-only, so the bounded removal
// pattern never matches "amanhã" (the trailing ã is not a word character).
// Tomorrow's date is still produced but the keyword stays in the text.
// Callers depend on the cleaned text as-is, so this is not "fixed" here.
func extractDate(text string, now time.Time) (time.Time, string, bool) {
	lower := strings.ToLower(text)

	if strings.Contains(lower, "hoje") || strings.Contains(lower, "today") {
		return now, removeFirst(text, reToday), true
	}
	if strings.Contains(lower, "ontem") || strings.Contains(lower, "yesterday") {
		return now.AddDate(0, 0, -1), removeFirst(text, reYesterday), true
	}
	if strings.Contains(lower, "amanhã") || strings.Contains(lower, "tomorrow") {
		return now.AddDate(0, 0, 1), removeFirst(text, reTomorrow), true
	}

	// Numeric day/month, current year. Out-of-range values reject the whole
	// extraction; there is no fall-through to the ISO form.
	if m := reDayMonth.FindStringSubmatchIndex(text); m != nil {
		day, _ := strconv.Atoi(text[m[2]:m[3]])
		month, _ := strconv.Atoi(text[m[4]:m[5]])
		if day < 1 || day > 31 || month < 1 || month > 12 {
			return time.Time{}, text, false
		}
		// time.Date normalizes day-in-month overflow (Feb 30 rolls into
		// March), matching the reference date construction.
		date := time.Date(now.Year(), time.Month(month), day, 0, 0, 0, 0, now.Location())
		return date, strings.TrimSpace(text[:m[0]] + text[m[1]:]), true
	}

	// ISO-looking match, then strict dash-only re-parse. A slash-separated
	// hit is detected but fails the re-parse and rejects the extraction.
	if m := reISODate.FindStringIndex(text); m != nil {
		date, err := time.Parse(dateLayout, text[m[0]:m[1]])
		if err != nil {
			return time.Time{}, text, false
		}
		return date, strings.TrimSpace(text[:m[0]] + text[m[1]:]), true
	}

	return time.Time{}, text, false
}

// removeFirst strips the first match of re from text and trims the result.
// With no match the text is returned trimmed but otherwise intact.
func removeFirst(text string, re *regexp.Regexp) string {
	if m := re.FindStringIndex(text); m != nil {
		text = text[:m[0]] + text[m[1]:]
	}
	return strings.TrimSpace(text)
}
