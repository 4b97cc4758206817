package services

import (
	"context"
	"fmt"
	"time"

	"carteira/internal/cache"
	"carteira/internal/core"
	"carteira/internal/storage"
)

// PlanningService assembles the monthly budget-versus-spend view. Results
// are cached per month since the view joins three queries.
type PlanningService struct {
	storage *storage.SQLiteRepository
	cache   *cache.LRUCache[core.PlanningOverview]
}

func NewPlanningService(storage *storage.SQLiteRepository, ttl time.Duration) *PlanningService {
	return &PlanningService{
		storage: storage,
		cache:   cache.NewLRUCache[core.PlanningOverview](24, ttl),
	}
}

// Cache exposes the underlying cache for cleanup registration.
func (s *PlanningService) Cache() cache.Cleaner {
	return s.cache
}

func planningKey(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

// Overview returns budgeted and spent totals per category for the month.
// Categories without a budget but with spend still appear, and vice versa.
func (s *PlanningService) Overview(ctx context.Context, year, month int) (core.PlanningOverview, error) {
	if month < 1 || month > 12 {
		return core.PlanningOverview{}, core.ErrInvalidMonth
	}

	key := planningKey(year, month)
	if ov, ok := s.cache.Get(key); ok {
		return ov, nil
	}

	categories, err := s.storage.ListCategories(ctx)
	if err != nil {
		return core.PlanningOverview{}, fmt.Errorf("list categories: %w", err)
	}
	budgets, err := s.storage.ListBudgets(ctx, year, month)
	if err != nil {
		return core.PlanningOverview{}, fmt.Errorf("list budgets: %w", err)
	}
	spend, err := s.storage.CategorySpend(ctx, year, month)
	if err != nil {
		return core.PlanningOverview{}, fmt.Errorf("category spend: %w", err)
	}

	budgeted := make(map[int64]core.Money, len(budgets))
	for _, b := range budgets {
		budgeted[b.CategoryID] = b.Amount
	}

	ov := core.PlanningOverview{Year: year, Month: month}
	for _, c := range categories {
		plan := core.CategoryPlan{
			CategoryID:   c.ID,
			CategoryName: c.Name,
			Budgeted:     budgeted[c.ID],
			Spent:        spend[c.ID],
		}
		if plan.Budgeted.Cents == 0 && plan.Spent.Cents == 0 {
			continue
		}
		plan.Remaining = core.Money{Cents: plan.Budgeted.Cents - plan.Spent.Cents}
		ov.TotalBudgeted.Cents += plan.Budgeted.Cents
		ov.TotalSpent.Cents += plan.Spent.Cents
		ov.Categories = append(ov.Categories, plan)
	}

	s.cache.Set(key, ov)
	return ov, nil
}

// SetBudget upserts a budget line and invalidates the cached month.
func (s *PlanningService) SetBudget(ctx context.Context, b core.Budget) (int64, error) {
	if err := b.Validate(); err != nil {
		return 0, err
	}
	id, err := s.storage.UpsertBudget(ctx, b)
	if err != nil {
		return 0, err
	}
	s.cache.Delete(planningKey(b.Year, b.Month))
	return id, nil
}

// Invalidate drops the cached overview for a month. Called after expense
// writes so the view reflects them immediately.
func (s *PlanningService) Invalidate(year, month int) {
	s.cache.Delete(planningKey(year, month))
}
