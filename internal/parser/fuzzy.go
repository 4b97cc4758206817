package parser

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// matchReference finds the best reference for a single token. Three rules are
// tried in order, first success wins:
//
//  1. case-insensitive exact equality
//  2. case-insensitive substring (token anywhere inside the name)
//  3. smallest Levenshtein distance under a per-entity adaptive threshold
//
// The fuzzy threshold is max(3, floor(len(name)*0.3)), strict less-than, so
// longer names tolerate more edits. Distance ties keep the earlier entity in
// the list (the best is only replaced on a strictly smaller distance).
func matchReference(token string, refs []Reference) (Reference, bool) {
	for _, r := range refs {
		if strings.EqualFold(token, r.Name) {
			return r, true
		}
	}

	lowTok := strings.ToLower(token)
	for _, r := range refs {
		if strings.Contains(strings.ToLower(r.Name), lowTok) {
			return r, true
		}
	}

	var best Reference
	bestDist := -1
	for _, r := range refs {
		dist := levenshtein.ComputeDistance(lowTok, strings.ToLower(r.Name))
		limit := int(math.Floor(float64(utf8.RuneCountInString(r.Name)) * 0.3))
		if limit < 3 {
			limit = 3
		}
		if dist < limit && (bestDist < 0 || dist < bestDist) {
			best = r
			bestDist = dist
		}
	}
	if bestDist < 0 {
		return Reference{}, false
	}
	return best, true
}
