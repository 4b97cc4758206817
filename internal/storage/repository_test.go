package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"carteira/internal/core"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestSeedData(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	categories, err := repo.ListCategories(ctx)
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	if len(categories) == 0 {
		t.Fatal("expected seeded categories")
	}

	accounts, err := repo.ListAccounts(ctx)
	if err != nil {
		t.Fatalf("ListAccounts: %v", err)
	}
	if len(accounts) == 0 {
		t.Fatal("expected seeded accounts")
	}
}

func TestAccountCRUD(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.CreateAccount(ctx, core.Account{Name: "Nubank"})
	if err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}

	accounts, err := repo.ListAccounts(ctx)
	if err != nil {
		t.Fatalf("ListAccounts: %v", err)
	}
	found := false
	for _, a := range accounts {
		if a.ID == id && a.Name == "Nubank" {
			found = true
		}
	}
	if !found {
		t.Fatalf("created account not listed, got %+v", accounts)
	}

	if err := repo.DeleteAccount(ctx, id); err != nil {
		t.Fatalf("DeleteAccount: %v", err)
	}
	if err := repo.DeleteAccount(ctx, id); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("second delete: got %v, want ErrNotFound", err)
	}
}

func TestExpenseLifecycle(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	catID, err := repo.CreateCategory(ctx, core.Category{Name: "Viagens"})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	accID, err := repo.CreateAccount(ctx, core.Account{Name: "Cartão"})
	if err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}

	exp := core.Expense{
		Date:        core.NewDate(2025, 11, 23),
		Description: "passagem",
		Amount:      core.Money{Cents: 45000},
		CategoryID:  catID,
		AccountID:   accID,
	}
	id, err := repo.CreateExpense(ctx, exp)
	if err != nil {
		t.Fatalf("CreateExpense: %v", err)
	}

	got, err := repo.GetExpense(ctx, id)
	if err != nil {
		t.Fatalf("GetExpense: %v", err)
	}
	if got.Description != "passagem" || got.Amount.Cents != 45000 {
		t.Fatalf("GetExpense = %+v", got)
	}
	if got.Date.String() != "2025-11-23" {
		t.Fatalf("Date = %s, want 2025-11-23", got.Date)
	}

	listed, err := repo.ListExpenses(ctx, 2025, 11)
	if err != nil {
		t.Fatalf("ListExpenses: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("ListExpenses len = %d, want 1", len(listed))
	}

	// A different month returns nothing.
	other, err := repo.ListExpenses(ctx, 2025, 10)
	if err != nil {
		t.Fatalf("ListExpenses: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("expected no expenses in 2025-10, got %d", len(other))
	}

	if err := repo.SoftDeleteExpense(ctx, id); err != nil {
		t.Fatalf("SoftDeleteExpense: %v", err)
	}
	if _, err := repo.GetExpense(ctx, id); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("GetExpense after delete: got %v, want ErrNotFound", err)
	}
}

func TestPendingSyncFlow(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	catID, _ := repo.CreateCategory(ctx, core.Category{Name: "Assinaturas"})
	accID, _ := repo.CreateAccount(ctx, core.Account{Name: "Débito"})

	id, err := repo.CreateExpense(ctx, core.Expense{
		Date:        core.NewDate(2025, 11, 1),
		Description: "streaming",
		Amount:      core.Money{Cents: 3990},
		CategoryID:  catID,
		AccountID:   accID,
	})
	if err != nil {
		t.Fatalf("CreateExpense: %v", err)
	}

	pending, err := repo.GetPendingSyncExpenses(ctx, 10)
	if err != nil {
		t.Fatalf("GetPendingSyncExpenses: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != id {
		t.Fatalf("pending = %+v, want one entry with id %d", pending, id)
	}

	if err := repo.MarkSynced(ctx, id); err != nil {
		t.Fatalf("MarkSynced: %v", err)
	}
	pending, err = repo.GetPendingSyncExpenses(ctx, 10)
	if err != nil {
		t.Fatalf("GetPendingSyncExpenses: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("expected no pending expenses after sync, got %d", len(pending))
	}
}

func TestBudgetUpsert(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	catID, _ := repo.CreateCategory(ctx, core.Category{Name: "Educação"})

	if _, err := repo.UpsertBudget(ctx, core.Budget{
		Year: 2025, Month: 11, CategoryID: catID, Amount: core.Money{Cents: 50000},
	}); err != nil {
		t.Fatalf("UpsertBudget: %v", err)
	}

	// Second upsert for the same key replaces the amount.
	if _, err := repo.UpsertBudget(ctx, core.Budget{
		Year: 2025, Month: 11, CategoryID: catID, Amount: core.Money{Cents: 60000},
	}); err != nil {
		t.Fatalf("UpsertBudget (update): %v", err)
	}

	budgets, err := repo.ListBudgets(ctx, 2025, 11)
	if err != nil {
		t.Fatalf("ListBudgets: %v", err)
	}
	if len(budgets) != 1 {
		t.Fatalf("ListBudgets len = %d, want 1", len(budgets))
	}
	if budgets[0].Amount.Cents != 60000 {
		t.Fatalf("Amount = %d, want 60000", budgets[0].Amount.Cents)
	}
}

func TestCategorySpend(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	catA, _ := repo.CreateCategory(ctx, core.Category{Name: "Pets"})
	catB, _ := repo.CreateCategory(ctx, core.Category{Name: "Jardim"})
	accID, _ := repo.CreateAccount(ctx, core.Account{Name: "Corrente"})

	for _, cents := range []int64{1000, 2500} {
		if _, err := repo.CreateExpense(ctx, core.Expense{
			Date: core.NewDate(2025, 11, 5), Description: "ração",
			Amount: core.Money{Cents: cents}, CategoryID: catA, AccountID: accID,
		}); err != nil {
			t.Fatalf("CreateExpense: %v", err)
		}
	}
	if _, err := repo.CreateExpense(ctx, core.Expense{
		Date: core.NewDate(2025, 12, 1), Description: "mudas",
		Amount: core.Money{Cents: 9900}, CategoryID: catB, AccountID: accID,
	}); err != nil {
		t.Fatalf("CreateExpense: %v", err)
	}

	spend, err := repo.CategorySpend(ctx, 2025, 11)
	if err != nil {
		t.Fatalf("CategorySpend: %v", err)
	}
	if got := spend[catA].Cents; got != 3500 {
		t.Fatalf("spend[catA] = %d, want 3500", got)
	}
	if _, ok := spend[catB]; ok {
		t.Fatal("December expense leaked into November totals")
	}
}
