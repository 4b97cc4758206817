package services

import (
	"context"
	"fmt"

	"carteira/internal/parser"
	"carteira/internal/storage"
)

// ParseService turns free text into a structured expense suggestion using
// the categories and accounts currently in the database.
type ParseService struct {
	storage *storage.SQLiteRepository
}

func NewParseService(storage *storage.SQLiteRepository) *ParseService {
	return &ParseService{storage: storage}
}

// Parse runs the text parser against the live category and account lists.
// The result is a suggestion: nothing is persisted.
func (s *ParseService) Parse(ctx context.Context, text string) (parser.ParsedExpense, error) {
	categories, err := s.storage.ListCategories(ctx)
	if err != nil {
		return parser.ParsedExpense{}, fmt.Errorf("list categories: %w", err)
	}
	accounts, err := s.storage.ListAccounts(ctx)
	if err != nil {
		return parser.ParsedExpense{}, fmt.Errorf("list accounts: %w", err)
	}

	catRefs := make([]parser.Reference, len(categories))
	for i, c := range categories {
		catRefs[i] = parser.Reference{ID: c.ID, Name: c.Name}
	}
	accRefs := make([]parser.Reference, len(accounts))
	for i, a := range accounts {
		accRefs[i] = parser.Reference{ID: a.ID, Name: a.Name}
	}

	return parser.Parse(text, catRefs, accRefs), nil
}
