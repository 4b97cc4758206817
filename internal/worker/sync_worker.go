package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"carteira/internal/amqp"
	"carteira/internal/core"
	"carteira/internal/sheets"
	"carteira/internal/storage"
)

// SyncWorker mirrors expenses from SQLite to the spreadsheet backup.
type SyncWorker struct {
	storage   *storage.SQLiteRepository
	writer    sheets.Writer
	batchSize int
}

func NewSyncWorker(storage *storage.SQLiteRepository, writer sheets.Writer, batchSize int) *SyncWorker {
	return &SyncWorker{
		storage:   storage,
		writer:    writer,
		batchSize: batchSize,
	}
}

// HandleMessage processes a single sync message from AMQP.
func (w *SyncWorker) HandleMessage(ctx context.Context, msg *amqp.ExpenseSyncMessage) error {
	slog.InfoContext(ctx, "Processing sync message",
		"messageId", msg.MessageID,
		"op", msg.Op,
		"id", msg.ID,
		"version", msg.Version)

	switch msg.Op {
	case amqp.OpDelete:
		return w.syncDelete(ctx, msg.ID)
	default:
		return w.syncUpsert(ctx, msg.ID)
	}
}

func (w *SyncWorker) syncUpsert(ctx context.Context, id int64) error {
	expense, err := w.storage.GetExpense(ctx, id)
	if err != nil {
		return fmt.Errorf("get expense from storage: %w", err)
	}
	return w.appendExpense(ctx, expense, false)
}

// syncDelete appends a reversal row. The sheet is append-only, so a deleted
// expense shows up as a negative line instead of a removed one.
func (w *SyncWorker) syncDelete(ctx context.Context, id int64) error {
	expense, deleted, err := w.storage.GetExpenseAny(ctx, id)
	if err != nil {
		return fmt.Errorf("get deleted expense from storage: %w", err)
	}
	if !deleted {
		slog.WarnContext(ctx, "Delete message for a live expense, skipping reversal", "id", id)
		return nil
	}
	return w.appendExpense(ctx, expense, true)
}

func (w *SyncWorker) appendExpense(ctx context.Context, e core.Expense, reversal bool) error {
	row, err := w.buildRow(ctx, e)
	if err != nil {
		return err
	}
	if reversal {
		row.Description += " (estorno)"
		row.Amount.Cents = -row.Amount.Cents
	}

	ref, err := w.writer.Append(ctx, row)
	if err != nil {
		if markErr := w.storage.MarkSyncError(ctx, e.ID); markErr != nil {
			slog.ErrorContext(ctx, "Failed to mark sync error", "id", e.ID, "error", markErr)
		}
		return fmt.Errorf("append to sheets: %w", err)
	}

	if err := w.storage.MarkSynced(ctx, e.ID); err != nil {
		// The append worked; the next pending sweep will retry the flag.
		slog.ErrorContext(ctx, "Failed to mark as synced", "id", e.ID, "error", err)
	}

	slog.InfoContext(ctx, "Synced expense",
		"id", e.ID,
		"sheets_ref", ref,
		"description", row.Description,
		"amount_cents", row.Amount.Cents)

	return nil
}

// buildRow resolves category and account IDs to names for the sheet.
func (w *SyncWorker) buildRow(ctx context.Context, e core.Expense) (sheets.Row, error) {
	categories, err := w.storage.ListCategories(ctx)
	if err != nil {
		return sheets.Row{}, fmt.Errorf("list categories: %w", err)
	}
	accounts, err := w.storage.ListAccounts(ctx)
	if err != nil {
		return sheets.Row{}, fmt.Errorf("list accounts: %w", err)
	}

	row := sheets.Row{
		Date:        e.Date,
		Description: e.Description,
		Amount:      e.Amount,
	}
	for _, c := range categories {
		if c.ID == e.CategoryID {
			row.Category = c.Name
			break
		}
	}
	for _, a := range accounts {
		if a.ID == e.AccountID {
			row.Account = a.Name
			break
		}
	}
	return row, nil
}

// ProcessPendingExpenses syncs expenses still marked pending. This is the
// backup path for lost AMQP messages.
func (w *SyncWorker) ProcessPendingExpenses(ctx context.Context) error {
	pending, err := w.storage.GetPendingSyncExpenses(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("get pending expenses: %w", err)
	}
	if len(pending) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "Processing pending expenses", "count", len(pending))

	for _, p := range pending {
		expense, deleted, err := w.storage.GetExpenseAny(ctx, p.ID)
		if err != nil {
			slog.ErrorContext(ctx, "Failed to get expense", "id", p.ID, "error", err)
			if err := w.storage.MarkSyncError(ctx, p.ID); err != nil {
				slog.ErrorContext(ctx, "Failed to mark sync error", "id", p.ID, "error", err)
			}
			continue
		}
		if err := w.appendExpense(ctx, expense, deleted); err != nil {
			slog.ErrorContext(ctx, "Failed to sync expense", "id", p.ID, "error", err)
		}
	}

	return nil
}

// StartupSyncCheck drains a larger pending batch once at worker startup to
// recover from downtime.
func (w *SyncWorker) StartupSyncCheck(ctx context.Context) error {
	pending, err := w.storage.GetPendingSyncExpenses(ctx, w.batchSize*5)
	if err != nil {
		return fmt.Errorf("get pending expenses for startup check: %w", err)
	}
	if len(pending) == 0 {
		slog.InfoContext(ctx, "No pending expenses found on startup")
		return nil
	}

	slog.InfoContext(ctx, "Found pending expenses on startup", "count", len(pending))

	synced, failed := 0, 0
	for _, p := range pending {
		expense, deleted, err := w.storage.GetExpenseAny(ctx, p.ID)
		if err != nil {
			slog.ErrorContext(ctx, "Failed to get expense for startup sync",
				"id", p.ID, "error", err)
			failed++
			continue
		}
		if err := w.appendExpense(ctx, expense, deleted); err != nil {
			slog.ErrorContext(ctx, "Failed to sync expense during startup",
				"id", p.ID, "error", err)
			failed++
			continue
		}
		synced++
	}

	slog.InfoContext(ctx, "Startup sync completed",
		"total", len(pending),
		"synced", synced,
		"errors", failed)

	return nil
}

// RunPendingSweep runs ProcessPendingExpenses on a ticker until ctx ends.
func (w *SyncWorker) RunPendingSweep(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.ProcessPendingExpenses(ctx); err != nil {
				slog.ErrorContext(ctx, "Pending sweep failed", "error", err)
			}
		}
	}
}
