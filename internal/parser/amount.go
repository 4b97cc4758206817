package parser

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// amountPattern pairs a regexp with the capture groups used for removal and
// for the numeric value. spanGroup is the group stripped from the text
// (0 = whole match); valueGroup holds the digits.
type amountPattern struct {
	re         *regexp.Regexp
	spanGroup  int
	valueGroup int
}

// Amount patterns, in priority order. The first pattern that matches anywhere
// in the text wins, even if a later pattern would match earlier by position.
// The plain-dollar pattern guards against the "$" inside "R$" since RE2 has
// no lookbehind; the guard character stays in the text.
var amountPatterns = []amountPattern{
	{regexp.MustCompile(`(?:^|[^R])(\$\s?(\d+(?:[.,]\d{1,2})?))`), 1, 2}, // $50, $ 75.5
	{regexp.MustCompile(`R\$\s?(\d+(?:[.,]\d{1,2})?)`), 0, 1},           // R$120.50
	{regexp.MustCompile(`\b(\d+[.,]\d{1,2})\b`), 0, 1},                  // 50.99, 35,75
	{regexp.MustCompile(`\b(\d+)\b`), 0, 1},                             // 50
}

// extractAmount locates the first monetary amount in text. On success it
// returns the parsed value and the text with exactly the matched span
// removed (then trimmed). A pattern whose value is not finite and strictly
// positive is skipped and the next one tried.
//
// A leading minus sign is not part of any pattern: "-50" parses as 50 and the
// "-" stays in the text.
func extractAmount(text string) (float64, string, bool) {
	for _, p := range amountPatterns {
		m := p.re.FindStringSubmatchIndex(text)
		if m == nil {
			continue
		}
		vs, ve := m[2*p.valueGroup], m[2*p.valueGroup+1]
		raw := strings.ReplaceAll(text[vs:ve], ",", ".")
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsInf(value, 0) || math.IsNaN(value) || value <= 0 {
			continue
		}
		ss, se := m[2*p.spanGroup], m[2*p.spanGroup+1]
		clean := strings.TrimSpace(text[:ss] + text[se:])
		return value, clean, true
	}
	return 0, text, false
}
