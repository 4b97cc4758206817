package memory

import (
	"context"
	"errors"
	"testing"

	"carteira/internal/core"
	"carteira/internal/sheets"
)

func TestAppendAndRows(t *testing.T) {
	w := New()
	ctx := context.Background()

	ref, err := w.Append(ctx, sheets.Row{
		Date:        core.NewDate(2025, 11, 23),
		Description: "mercado",
		Amount:      core.Money{Cents: 5000},
		Category:    "Mercado",
		Account:     "Carteira",
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if ref != "memory!A1:E1" {
		t.Errorf("ref = %q, want memory!A1:E1", ref)
	}

	rows := w.Rows()
	if len(rows) != 1 || rows[0].Description != "mercado" {
		t.Fatalf("Rows() = %+v", rows)
	}
}

func TestAppendFailNext(t *testing.T) {
	w := New()
	w.FailNext = errors.New("quota exceeded")

	if _, err := w.Append(context.Background(), sheets.Row{}); err == nil {
		t.Fatal("expected error from FailNext")
	}
	// Next call succeeds.
	if _, err := w.Append(context.Background(), sheets.Row{}); err != nil {
		t.Fatalf("Append after failure: %v", err)
	}
}
