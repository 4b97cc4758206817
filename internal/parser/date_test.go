package parser

import (
	"testing"
	"time"
)

var frozenNow = time.Date(2025, time.November, 23, 12, 0, 0, 0, time.UTC)

func TestExtractDateRelativeKeywords(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantDate  string
		wantClean string
	}{
		{"hoje", "almoço hoje", "2025-11-23", "almoço"},
		{"today uppercase", "Today lunch", "2025-11-23", "lunch"},
		{"ontem", "ontem mercado", "2025-11-22", "mercado"},
		{"yesterday", "yesterday rent", "2025-11-22", "rent"},
		{"tomorrow", "tomorrow bill", "2025-11-24", "bill"},
		// The accented keyword is detected but the word-bounded removal never
		// matches it, so it stays in the cleaned text.
		{"amanhã keyword survives removal", "conta amanhã", "2025-11-24", "conta amanhã"},
		// Detection is substring-based, removal is word-bounded: an embedded
		// keyword still yields a date but is not stripped.
		{"embedded keyword", "hoje123 x", "2025-11-23", "hoje123 x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			date, clean, ok := extractDate(tt.input, frozenNow)
			if !ok {
				t.Fatal("expected a match")
			}
			if got := date.Format("2006-01-02"); got != tt.wantDate {
				t.Errorf("date = %s, want %s", got, tt.wantDate)
			}
			if clean != tt.wantClean {
				t.Errorf("clean = %q, want %q", clean, tt.wantClean)
			}
		})
	}
}

func TestExtractDateDayMonth(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantDate  string
		wantClean string
		wantOK    bool
	}{
		{
			name:      "slash separator",
			input:     "compras 25/11",
			wantDate:  "2025-11-25",
			wantClean: "compras",
			wantOK:    true,
		},
		{
			name:      "dash separator",
			input:     "25-11 feira",
			wantDate:  "2025-11-25",
			wantClean: "feira",
			wantOK:    true,
		},
		{
			name:   "day out of range rejects the extraction",
			input:  "compras 32/11",
			wantOK: false,
		},
		{
			name:   "month out of range rejects the extraction",
			input:  "conta 10/13",
			wantOK: false,
		},
		{
			name: "day overflow rolls into the next month",
			input:     "aluguel 30/02",
			wantDate:  "2025-03-02",
			wantClean: "aluguel",
			wantOK:    true,
		},
		{
			name:   "bare fragment without both parts",
			input:  "compras /11",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			date, clean, ok := extractDate(tt.input, frozenNow)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !tt.wantOK {
				if clean != tt.input {
					t.Errorf("clean = %q, want input unchanged %q", clean, tt.input)
				}
				return
			}
			if got := date.Format("2006-01-02"); got != tt.wantDate {
				t.Errorf("date = %s, want %s", got, tt.wantDate)
			}
			if clean != tt.wantClean {
				t.Errorf("clean = %q, want %q", clean, tt.wantClean)
			}
		})
	}
}

func TestExtractDateISOForms(t *testing.T) {
	// A full ISO date always exposes a day/month fragment to the higher
	// priority pattern first: "12-31" is grabbed, fails the month range and
	// rejects the extraction before the ISO attempt is ever reached.
	if _, _, ok := extractDate("pagamento 2025-12-31", frozenNow); ok {
		t.Error("dash ISO date should be rejected via the day/month range check")
	}

	// Slash-separated ISO: same story, "12/31" fails the range check and the
	// outcome is a silent rejection either way.
	if _, _, ok := extractDate("pagamento 2025/12/31", frozenNow); ok {
		t.Error("slash ISO date should be rejected")
	}

	// An in-range trailing fragment is claimed by the day/month pattern with
	// the current year, not parsed as ISO.
	date, clean, ok := extractDate("boleto 2030-01-02", frozenNow)
	if !ok {
		t.Fatal("expected a match")
	}
	if got := date.Format("2006-01-02"); got != "2025-02-01" {
		t.Errorf("date = %s, want 2025-02-01", got)
	}
	if clean != "boleto 2030-" {
		t.Errorf("clean = %q, want %q", clean, "boleto 2030-")
	}
}

func TestExtractDateNoMatch(t *testing.T) {
	for _, input := range []string{"", "mercado", "sem data nenhuma"} {
		if _, clean, ok := extractDate(input, frozenNow); ok {
			t.Errorf("extractDate(%q) matched unexpectedly", input)
		} else if clean != input {
			t.Errorf("extractDate(%q) clean = %q, want input unchanged", input, clean)
		}
	}
}
