// Package memory provides an in-memory sheets.Writer for tests and local
// runs without Google credentials.
package memory

import (
	"context"
	"fmt"
	"sync"

	"carteira/internal/sheets"
)

type Writer struct {
	mu   sync.Mutex
	rows []sheets.Row

	// FailNext makes the next Append return an error, for retry paths.
	FailNext error
}

var _ sheets.Writer = (*Writer)(nil)

func New() *Writer {
	return &Writer{}
}

func (w *Writer) Append(ctx context.Context, r sheets.Row) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.FailNext != nil {
		err := w.FailNext
		w.FailNext = nil
		return "", err
	}
	w.rows = append(w.rows, r)
	return fmt.Sprintf("memory!A%d:E%d", len(w.rows), len(w.rows)), nil
}

// Rows returns a copy of everything appended so far.
func (w *Writer) Rows() []sheets.Row {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]sheets.Row, len(w.rows))
	copy(out, w.rows)
	return out
}
