package sheets

import (
	"context"

	"carteira/internal/core"
)

// Row is one spreadsheet line. Category and account travel as names since
// the sheet has no notion of our numeric IDs.
type Row struct {
	Date        core.Date
	Description string
	Amount      core.Money
	Category    string
	Account     string
}

// Writer is the outbound port for the spreadsheet backup. Append returns a
// reference like "Despesas!A12:E12" for logging.
type Writer interface {
	Append(ctx context.Context, r Row) (rowRef string, err error)
}
