package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"carteira/internal/core"
	"carteira/internal/storage"
)

func newTestStorage(t *testing.T) *storage.SQLiteRepository {
	t.Helper()
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func seedRefs(t *testing.T, repo *storage.SQLiteRepository) (catID, accID int64) {
	t.Helper()
	ctx := context.Background()
	catID, err := repo.CreateCategory(ctx, core.Category{Name: "Restaurantes"})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	accID, err = repo.CreateAccount(ctx, core.Account{Name: "Nubank"})
	if err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}
	return catID, accID
}

func TestCreateExpenseWithoutAMQP(t *testing.T) {
	repo := newTestStorage(t)
	catID, accID := seedRefs(t, repo)
	// nil AMQP client: publish is skipped, creation still succeeds.
	svc := NewExpenseService(repo, nil)
	ctx := context.Background()

	id, err := svc.CreateExpense(ctx, core.Expense{
		Date:        core.NewDate(2025, 11, 23),
		Description: "almoço",
		Amount:      core.Money{Cents: 7550},
		CategoryID:  catID,
		AccountID:   accID,
	})
	if err != nil {
		t.Fatalf("CreateExpense: %v", err)
	}

	got, err := svc.GetExpense(ctx, id)
	if err != nil {
		t.Fatalf("GetExpense: %v", err)
	}
	if got.Description != "almoço" || got.Amount.Cents != 7550 {
		t.Fatalf("GetExpense = %+v", got)
	}
}

func TestCreateExpenseValidation(t *testing.T) {
	repo := newTestStorage(t)
	svc := NewExpenseService(repo, nil)

	tests := []struct {
		name    string
		expense core.Expense
		wantErr error
	}{
		{
			name: "empty description",
			expense: core.Expense{
				Date: core.NewDate(2025, 11, 23), Amount: core.Money{Cents: 100},
				CategoryID: 1, AccountID: 1,
			},
			wantErr: core.ErrEmptyDescription,
		},
		{
			name: "zero amount",
			expense: core.Expense{
				Date: core.NewDate(2025, 11, 23), Description: "x",
				CategoryID: 1, AccountID: 1,
			},
			wantErr: core.ErrInvalidAmount,
		},
		{
			name: "missing category",
			expense: core.Expense{
				Date: core.NewDate(2025, 11, 23), Description: "x",
				Amount: core.Money{Cents: 100}, AccountID: 1,
			},
			wantErr: core.ErrMissingCategory,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateExpense(context.Background(), tt.expense)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("CreateExpense() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDeleteExpense(t *testing.T) {
	repo := newTestStorage(t)
	catID, accID := seedRefs(t, repo)
	svc := NewExpenseService(repo, nil)
	ctx := context.Background()

	id, err := svc.CreateExpense(ctx, core.Expense{
		Date: core.NewDate(2025, 11, 23), Description: "jantar",
		Amount: core.Money{Cents: 4200}, CategoryID: catID, AccountID: accID,
	})
	if err != nil {
		t.Fatalf("CreateExpense: %v", err)
	}

	if err := svc.DeleteExpense(ctx, id); err != nil {
		t.Fatalf("DeleteExpense: %v", err)
	}
	if _, err := svc.GetExpense(ctx, id); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("GetExpense after delete: got %v, want ErrNotFound", err)
	}
	if err := svc.DeleteExpense(ctx, id); err == nil {
		t.Fatal("second delete should fail")
	}
}
