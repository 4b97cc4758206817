package parser

import (
	"reflect"
	"testing"
)

func float(v float64) *float64 { return &v }

func id(v int64) *int64 { return &v }

func TestParseAt(t *testing.T) {
	categories := []Reference{
		{ID: 1, Name: "Mercado"},
		{ID: 2, Name: "Transport"},
	}
	accounts := []Reference{
		{ID: 7, Name: "Nubank"},
		{ID: 8, Name: "Itaú"},
	}

	tests := []struct {
		name       string
		input      string
		categories []Reference
		accounts   []Reference
		want       ParsedExpense
	}{
		{
			name:  "bare amount",
			input: "50",
			want: ParsedExpense{
				Amount: float(50),
				Date:   "2025-11-23",
			},
		},
		{
			name:  "relative date only",
			input: "hoje",
			want: ParsedExpense{
				Date: "2025-11-23",
			},
		},
		{
			name:  "empty input defaults",
			input: "",
			want: ParsedExpense{
				Date: "2025-11-23",
			},
		},
		{
			// The amount extractor runs before the date extractor and grabs
			// the bare day, leaving an unmatchable "/11" fragment behind.
			name:  "day consumed as amount before date extraction",
			input: "compras 25/11",
			want: ParsedExpense{
				Amount:      float(25),
				Date:        "2025-11-23",
				Description: "compras /11",
			},
		},
		{
			name:  "out of range day consumed as amount",
			input: "compras 32/11",
			want: ParsedExpense{
				Amount:      float(32),
				Date:        "2025-11-23",
				Description: "compras /11",
			},
		},
		{
			name:       "category and amount",
			input:      "Transport $25",
			categories: categories,
			want: ParsedExpense{
				Amount:       float(25),
				Date:         "2025-11-23",
				CategoryID:   id(2),
				CategoryName: "Transport",
			},
		},
		{
			name:       "amount date category and account",
			input:      "mercado nubank 50 hoje",
			categories: categories,
			accounts:   accounts,
			want: ParsedExpense{
				Amount:       float(50),
				Date:         "2025-11-23",
				CategoryID:   id(1),
				CategoryName: "Mercado",
				AccountID:    id(7),
				AccountName:  "Nubank",
			},
		},
		{
			name:       "fuzzy category token",
			input:      "transprt 30",
			categories: categories,
			want: ParsedExpense{
				Amount:       float(30),
				Date:         "2025-11-23",
				CategoryID:   id(2),
				CategoryName: "Transport",
			},
		},
		{
			name:  "tomorrow keyword kept in description",
			input: "conta amanhã",
			want: ParsedExpense{
				Date:        "2025-11-24",
				Description: "conta amanhã",
			},
		},
		{
			name:  "leftover tokens joined with single spaces",
			input: "  pagar   luz    agora ",
			want: ParsedExpense{
				Date:        "2025-11-23",
				Description: "pagar luz agora",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseAt(tt.input, tt.categories, tt.accounts, frozenNow)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseAt(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseAtTokenConsumedOnce(t *testing.T) {
	// The same token index can never satisfy both the category and the
	// account scan.
	categories := []Reference{{ID: 1, Name: "Pix"}}
	accounts := []Reference{{ID: 2, Name: "Pix"}}

	got := ParseAt("pix 10", categories, accounts, frozenNow)

	if got.CategoryID == nil || *got.CategoryID != 1 {
		t.Fatalf("CategoryID = %v, want 1", got.CategoryID)
	}
	if got.AccountID != nil {
		t.Errorf("AccountID = %v, want nil (token already consumed)", *got.AccountID)
	}
	if got.Description != "" {
		t.Errorf("Description = %q, want empty", got.Description)
	}
}

func TestParseAtSingleCategoryMatch(t *testing.T) {
	// Only the first matching token is consumed even when several could
	// match; the rest flow into the description.
	categories := []Reference{{ID: 1, Name: "Mercado"}}

	got := ParseAt("mercado mercado 15", categories, nil, frozenNow)

	if got.CategoryID == nil || *got.CategoryID != 1 {
		t.Fatalf("CategoryID = %v, want 1", got.CategoryID)
	}
	if got.Description != "mercado" {
		t.Errorf("Description = %q, want %q", got.Description, "mercado")
	}
}

func TestParseAtDeterministic(t *testing.T) {
	categories := []Reference{{ID: 1, Name: "Mercado"}}
	accounts := []Reference{{ID: 7, Name: "Nubank"}}

	a := ParseAt("mercado nubank 50 hoje", categories, accounts, frozenNow)
	b := ParseAt("mercado nubank 50 hoje", categories, accounts, frozenNow)

	if !reflect.DeepEqual(a, b) {
		t.Errorf("identical inputs produced different results: %+v vs %+v", a, b)
	}
}

func TestParseInvariants(t *testing.T) {
	categories := []Reference{{ID: 1, Name: "Mercado"}}
	accounts := []Reference{{ID: 7, Name: "Nubank"}}

	inputs := []string{
		"", "50", "hoje", "mercado nubank 50 hoje", "conta amanhã",
		"compras 25/11", "R$120.50 conta ontem", "-10 estorno",
	}

	for _, input := range inputs {
		got := ParseAt(input, categories, accounts, frozenNow)

		if got.Date == "" {
			t.Errorf("ParseAt(%q): Date is empty", input)
		}
		if got.Amount != nil && *got.Amount <= 0 {
			t.Errorf("ParseAt(%q): Amount = %v, want > 0", input, *got.Amount)
		}
		if (got.CategoryID != nil) != (got.CategoryName != "") {
			t.Errorf("ParseAt(%q): CategoryName presence does not track CategoryID", input)
		}
		if (got.AccountID != nil) != (got.AccountName != "") {
			t.Errorf("ParseAt(%q): AccountName presence does not track AccountID", input)
		}
	}
}
