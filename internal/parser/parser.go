// Package parser turns one line of free-form text into a structured expense
// candidate. It extracts a monetary amount, a date expression, and fuzzy
// category/account references, in that fixed order; whatever tokens survive
// become the description.
//
// The pipeline never fails: missing pieces degrade to nil fields, the date
// defaults to today. Parsing is pure and re-entrant; reference lists are
// supplied fresh on every call and never retained.
package parser

import (
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Reference is a category or account supplied by the caller. Only ID and
// Name participate in matching; everything else about the entity is the
// caller's business.
type Reference struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ParsedExpense is the best-effort result of parsing one input line.
// Amount, CategoryID and AccountID are nil when nothing matched; Date is
// always a valid YYYY-MM-DD string. CategoryName/AccountName are set exactly
// when the corresponding ID is.
type ParsedExpense struct {
	Description  string   `json:"description"`
	Amount       *float64 `json:"amount"`
	Date         string   `json:"date"`
	CategoryID   *int64   `json:"categoryId"`
	AccountID    *int64   `json:"accountId"`
	CategoryName string   `json:"categoryName,omitempty"`
	AccountName  string   `json:"accountName,omitempty"`
}

// Parse parses raw against the given categories and accounts using the
// current wall clock for relative dates.
func Parse(raw string, categories, accounts []Reference) ParsedExpense {
	return ParseAt(raw, categories, accounts, time.Now())
}

// ParseAt is Parse with an explicit "now", for callers that need a frozen
// clock.
//
// Extraction order must not change: amount first, then date, then category,
// then account. A bare number consumed as an amount is never reconsidered as
// a date fragment, and vice versa.
func ParseAt(raw string, categories, accounts []Reference, now time.Time) ParsedExpense {
	working := strings.TrimSpace(raw)
	var out ParsedExpense

	if amount, clean, ok := extractAmount(working); ok {
		out.Amount = &amount
		working = clean
	}

	if date, clean, ok := extractDate(working, now); ok {
		out.Date = date.Format(dateLayout)
		working = clean
	} else {
		out.Date = now.Format(dateLayout)
	}

	tokens := strings.Fields(working)
	consumed := make([]bool, len(tokens))

	// One category match at most, scanning left to right.
	for i, tok := range tokens {
		if ref, ok := matchReference(tok, categories); ok {
			id := ref.ID
			out.CategoryID = &id
			out.CategoryName = ref.Name
			consumed[i] = true
			break
		}
	}

	// Same for accounts, restarting from the first unconsumed token.
	for i, tok := range tokens {
		if consumed[i] {
			continue
		}
		if ref, ok := matchReference(tok, accounts); ok {
			id := ref.ID
			out.AccountID = &id
			out.AccountName = ref.Name
			consumed[i] = true
			break
		}
	}

	remaining := make([]string, 0, len(tokens))
	for i, tok := range tokens {
		if !consumed[i] {
			remaining = append(remaining, tok)
		}
	}
	out.Description = strings.Join(remaining, " ")

	return out
}
