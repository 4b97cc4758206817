package parser

import "testing"

func TestExtractAmount(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantValue float64
		wantClean string
		wantOK    bool
	}{
		{
			name:      "dollar prefix",
			input:     "$50 mercado",
			wantValue: 50,
			wantClean: "mercado",
			wantOK:    true,
		},
		{
			name:      "dollar prefix with space and decimal",
			input:     "almoço $ 75.5",
			wantValue: 75.5,
			wantClean: "almoço",
			wantOK:    true,
		},
		{
			name:      "real prefix",
			input:     "R$120.50 conta",
			wantValue: 120.5,
			wantClean: "conta",
			wantOK:    true,
		},
		{
			name:      "bare decimal with dot",
			input:     "café 50.99",
			wantValue: 50.99,
			wantClean: "café",
			wantOK:    true,
		},
		{
			name:      "bare decimal with comma",
			input:     "pão 35,75",
			wantValue: 35.75,
			wantClean: "pão",
			wantOK:    true,
		},
		{
			name:      "bare integer",
			input:     "uber 50",
			wantValue: 50,
			wantClean: "uber",
			wantOK:    true,
		},
		{
			name:      "negative sign is not part of the amount",
			input:     "estorno -50",
			wantValue: 50,
			wantClean: "estorno -",
			wantOK:    true,
		},
		{
			name:      "zero is rejected and left in the text",
			input:     "0 teste",
			wantClean: "0 teste",
			wantOK:    false,
		},
		{
			name:      "no digits",
			input:     "sem valor",
			wantClean: "sem valor",
			wantOK:    false,
		},
		{
			name:      "empty input",
			input:     "",
			wantClean: "",
			wantOK:    false,
		},
		{
			name:      "middle removal keeps surrounding words",
			input:     "jantar 42.00 ontem",
			wantValue: 42,
			wantClean: "jantar  ontem",
			wantOK:    true,
		},
		{
			name:      "dollar pattern outranks an earlier real match",
			input:     "paguei R$10 e $20",
			wantValue: 20,
			wantClean: "paguei R$10 e",
			wantOK:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, clean, ok := extractAmount(tt.input)

			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if clean != tt.wantClean {
				t.Errorf("clean = %q, want %q", clean, tt.wantClean)
			}
			if tt.wantOK && value != tt.wantValue {
				t.Errorf("value = %v, want %v", value, tt.wantValue)
			}
		})
	}
}

func TestExtractAmountOnlyFirstMatch(t *testing.T) {
	value, clean, ok := extractAmount("50 e depois 30")
	if !ok {
		t.Fatal("expected a match")
	}
	if value != 50 {
		t.Errorf("value = %v, want 50", value)
	}
	if clean != "e depois 30" {
		t.Errorf("clean = %q, want %q", clean, "e depois 30")
	}
}
