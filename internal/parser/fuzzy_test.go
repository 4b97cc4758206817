package parser

import "testing"

func TestMatchReferenceExact(t *testing.T) {
	refs := []Reference{
		{ID: 1, Name: "Mercado"},
		{ID: 2, Name: "Transport"},
	}

	got, ok := matchReference("transport", refs)
	if !ok {
		t.Fatal("expected a match")
	}
	if got.ID != 2 {
		t.Errorf("ID = %d, want 2", got.ID)
	}
}

func TestMatchReferenceSubstring(t *testing.T) {
	refs := []Reference{
		{ID: 1, Name: "Supermercado"},
		{ID: 2, Name: "Farmácia"},
	}

	got, ok := matchReference("merc", refs)
	if !ok {
		t.Fatal("expected a match")
	}
	if got.ID != 1 {
		t.Errorf("ID = %d, want 1", got.ID)
	}
}

func TestMatchReferenceFuzzy(t *testing.T) {
	tests := []struct {
		name   string
		token  string
		refs   []Reference
		wantID int64
		wantOK bool
	}{
		{
			name:   "one edit within threshold",
			token:  "mercdo",
			refs:   []Reference{{ID: 1, Name: "Mercado"}},
			wantID: 1,
			wantOK: true,
		},
		{
			name:   "distance equal to threshold is rejected",
			token:  "xyz",
			refs:   []Reference{{ID: 1, Name: "abc"}},
			wantOK: false,
		},
		{
			name:  "ties keep the earlier entity",
			token: "cask",
			refs: []Reference{
				{ID: 1, Name: "casa"},
				{ID: 2, Name: "caso"},
			},
			wantID: 1,
			wantOK: true,
		},
		{
			name:  "longer names tolerate more edits",
			token: "supermercadoextra",
			refs: []Reference{
				{ID: 9, Name: "Supermercado Extra"},
			},
			wantID: 9,
			wantOK: true,
		},
		{
			name:   "no references",
			token:  "mercado",
			refs:   nil,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := matchReference(tt.token, tt.refs)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if tt.wantOK && got.ID != tt.wantID {
				t.Errorf("ID = %d, want %d", got.ID, tt.wantID)
			}
		})
	}
}

func TestMatchReferencePolicyOrder(t *testing.T) {
	// An exact match later in the list beats a substring match earlier on.
	refs := []Reference{
		{ID: 1, Name: "Contas da casa"},
		{ID: 2, Name: "Casa"},
	}

	got, ok := matchReference("casa", refs)
	if !ok {
		t.Fatal("expected a match")
	}
	if got.ID != 2 {
		t.Errorf("ID = %d, want 2 (exact equality outranks substring)", got.ID)
	}
}
