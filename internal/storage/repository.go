// Package storage is the SQLite persistence layer. Dates are stored as
// YYYY-MM-DD text, money as integer cents. Expenses carry sync bookkeeping
// (status, version, soft delete) for the Sheets mirror worker.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"carteira/internal/core"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// Ping reports whether the database is reachable.
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// --- Accounts ---

func (r *SQLiteRepository) CreateAccount(ctx context.Context, a core.Account) (int64, error) {
	res, err := r.db.ExecContext(ctx, `INSERT INTO accounts (name) VALUES (?)`, a.Name)
	if err != nil {
		return 0, fmt.Errorf("create account: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("account id: %w", err)
	}
	return id, nil
}

func (r *SQLiteRepository) ListAccounts(ctx context.Context) ([]core.Account, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM accounts ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []core.Account
	for rows.Next() {
		var a core.Account
		if err := rows.Scan(&a.ID, &a.Name); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

func (r *SQLiteRepository) DeleteAccount(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.ErrNotFound
	}
	return nil
}

// --- Categories ---

func (r *SQLiteRepository) CreateCategory(ctx context.Context, c core.Category) (int64, error) {
	res, err := r.db.ExecContext(ctx, `INSERT INTO categories (name) VALUES (?)`, c.Name)
	if err != nil {
		return 0, fmt.Errorf("create category: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("category id: %w", err)
	}
	return id, nil
}

func (r *SQLiteRepository) ListCategories(ctx context.Context) ([]core.Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []core.Category
	for rows.Next() {
		var c core.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *SQLiteRepository) DeleteCategory(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.ErrNotFound
	}
	return nil
}

// --- Expenses ---

func (r *SQLiteRepository) CreateExpense(ctx context.Context, e core.Expense) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO expenses (date, description, amount_cents, category_id, account_id)
		 VALUES (?, ?, ?, ?, ?)`,
		e.Date.String(), e.Description, e.Amount.Cents, e.CategoryID, e.AccountID)
	if err != nil {
		return 0, fmt.Errorf("create expense: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("expense id: %w", err)
	}

	slog.InfoContext(ctx, "Expense saved",
		"id", id,
		"description", e.Description,
		"amount_cents", e.Amount.Cents,
		"date", e.Date.String())

	return id, nil
}

func (r *SQLiteRepository) GetExpense(ctx context.Context, id int64) (core.Expense, error) {
	var (
		e       core.Expense
		dateStr string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, date, description, amount_cents, category_id, account_id
		 FROM expenses WHERE id = ? AND deleted_at IS NULL`, id).
		Scan(&e.ID, &dateStr, &e.Description, &e.Amount.Cents, &e.CategoryID, &e.AccountID)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Expense{}, core.ErrNotFound
	}
	if err != nil {
		return core.Expense{}, fmt.Errorf("get expense: %w", err)
	}
	e.Date, err = core.ParseDate(dateStr)
	if err != nil {
		return core.Expense{}, fmt.Errorf("parse expense date %q: %w", dateStr, err)
	}
	return e, nil
}

// GetExpenseAny fetches an expense regardless of soft deletion. The sync
// worker needs deleted rows to write spreadsheet reversals.
func (r *SQLiteRepository) GetExpenseAny(ctx context.Context, id int64) (core.Expense, bool, error) {
	var (
		e         core.Expense
		dateStr   string
		deletedAt sql.NullTime
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, date, description, amount_cents, category_id, account_id, deleted_at
		 FROM expenses WHERE id = ?`, id).
		Scan(&e.ID, &dateStr, &e.Description, &e.Amount.Cents, &e.CategoryID, &e.AccountID, &deletedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Expense{}, false, core.ErrNotFound
	}
	if err != nil {
		return core.Expense{}, false, fmt.Errorf("get expense: %w", err)
	}
	e.Date, err = core.ParseDate(dateStr)
	if err != nil {
		return core.Expense{}, false, fmt.Errorf("parse expense date %q: %w", dateStr, err)
	}
	return e, deletedAt.Valid, nil
}

func (r *SQLiteRepository) ListExpenses(ctx context.Context, year, month int) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, date, description, amount_cents, category_id, account_id
		 FROM expenses
		 WHERE deleted_at IS NULL AND date >= ? AND date < ?
		 ORDER BY date, id`,
		monthStart(year, month), monthEnd(year, month))
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []core.Expense
	for rows.Next() {
		var (
			e       core.Expense
			dateStr string
		)
		if err := rows.Scan(&e.ID, &dateStr, &e.Description, &e.Amount.Cents, &e.CategoryID, &e.AccountID); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		if e.Date, err = core.ParseDate(dateStr); err != nil {
			return nil, fmt.Errorf("parse expense date %q: %w", dateStr, err)
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

func (r *SQLiteRepository) SoftDeleteExpense(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE expenses SET deleted_at = CURRENT_TIMESTAMP, version = version + 1,
		        sync_status = 'pending'
		 WHERE id = ? AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("soft delete expense: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.ErrNotFound
	}
	return nil
}

// CategorySpend returns per-category expense totals for a month, keyed by
// category, including categories with no spend. Feeds the planning view.
func (r *SQLiteRepository) CategorySpend(ctx context.Context, year, month int) (map[int64]core.Money, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT category_id, SUM(amount_cents)
		 FROM expenses
		 WHERE deleted_at IS NULL AND date >= ? AND date < ?
		 GROUP BY category_id`,
		monthStart(year, month), monthEnd(year, month))
	if err != nil {
		return nil, fmt.Errorf("category spend: %w", err)
	}
	defer rows.Close()

	spend := make(map[int64]core.Money)
	for rows.Next() {
		var (
			id    int64
			cents int64
		)
		if err := rows.Scan(&id, &cents); err != nil {
			return nil, fmt.Errorf("scan category spend: %w", err)
		}
		spend[id] = core.Money{Cents: cents}
	}
	return spend, rows.Err()
}

// --- Sync bookkeeping ---

// PendingSyncExpense is the minimal payload the sync queue needs.
type PendingSyncExpense struct {
	ID        int64
	Version   int64
	CreatedAt time.Time
}

func (r *SQLiteRepository) GetPendingSyncExpenses(ctx context.Context, limit int) ([]PendingSyncExpense, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, version, created_at FROM expenses
		 WHERE sync_status = 'pending'
		 ORDER BY id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("get pending sync expenses: %w", err)
	}
	defer rows.Close()

	var pending []PendingSyncExpense
	for rows.Next() {
		var (
			p         PendingSyncExpense
			createdAt sql.NullTime
		)
		if err := rows.Scan(&p.ID, &p.Version, &createdAt); err != nil {
			return nil, fmt.Errorf("scan pending sync expense: %w", err)
		}
		p.CreatedAt = createdAt.Time
		pending = append(pending, p)
	}
	return pending, rows.Err()
}

func (r *SQLiteRepository) MarkSynced(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE expenses SET sync_status = 'synced' WHERE id = ?`, id); err != nil {
		return fmt.Errorf("mark expense synced: %w", err)
	}
	slog.InfoContext(ctx, "Expense marked as synced", "id", id)
	return nil
}

func (r *SQLiteRepository) MarkSyncError(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE expenses SET sync_status = 'error' WHERE id = ?`, id); err != nil {
		return fmt.Errorf("mark expense sync error: %w", err)
	}
	slog.WarnContext(ctx, "Expense marked with sync error", "id", id)
	return nil
}

// --- Incomes ---

func (r *SQLiteRepository) CreateIncome(ctx context.Context, i core.Income) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO incomes (date, description, amount_cents, category_id, account_id)
		 VALUES (?, ?, ?, ?, ?)`,
		i.Date.String(), i.Description, i.Amount.Cents, i.CategoryID, i.AccountID)
	if err != nil {
		return 0, fmt.Errorf("create income: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("income id: %w", err)
	}
	return id, nil
}

func (r *SQLiteRepository) ListIncomes(ctx context.Context, year, month int) ([]core.Income, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, date, description, amount_cents, category_id, account_id
		 FROM incomes
		 WHERE date >= ? AND date < ?
		 ORDER BY date, id`,
		monthStart(year, month), monthEnd(year, month))
	if err != nil {
		return nil, fmt.Errorf("list incomes: %w", err)
	}
	defer rows.Close()

	var incomes []core.Income
	for rows.Next() {
		var (
			i       core.Income
			dateStr string
		)
		if err := rows.Scan(&i.ID, &dateStr, &i.Description, &i.Amount.Cents, &i.CategoryID, &i.AccountID); err != nil {
			return nil, fmt.Errorf("scan income: %w", err)
		}
		if i.Date, err = core.ParseDate(dateStr); err != nil {
			return nil, fmt.Errorf("parse income date %q: %w", dateStr, err)
		}
		incomes = append(incomes, i)
	}
	return incomes, rows.Err()
}

// --- Budgets ---

// UpsertBudget creates or replaces the budget for (year, month, category).
func (r *SQLiteRepository) UpsertBudget(ctx context.Context, b core.Budget) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO budgets (year, month, category_id, amount_cents)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(year, month, category_id)
		 DO UPDATE SET amount_cents = excluded.amount_cents`,
		b.Year, b.Month, b.CategoryID, b.Amount.Cents)
	if err != nil {
		return 0, fmt.Errorf("upsert budget: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("budget id: %w", err)
	}
	return id, nil
}

func (r *SQLiteRepository) ListBudgets(ctx context.Context, year, month int) ([]core.Budget, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, year, month, category_id, amount_cents
		 FROM budgets WHERE year = ? AND month = ?
		 ORDER BY category_id`, year, month)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	defer rows.Close()

	var budgets []core.Budget
	for rows.Next() {
		var b core.Budget
		if err := rows.Scan(&b.ID, &b.Year, &b.Month, &b.CategoryID, &b.Amount.Cents); err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		budgets = append(budgets, b)
	}
	return budgets, rows.Err()
}

// monthStart returns the inclusive lower bound for date range queries.
func monthStart(year, month int) string {
	return core.NewDate(year, month, 1).String()
}

// monthEnd returns the exclusive upper bound (first day of the next month).
func monthEnd(year, month int) string {
	return core.NewDate(year, month, 1).AddDate(0, 1, 0).Format("2006-01-02")
}
