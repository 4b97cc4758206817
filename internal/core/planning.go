package core

// CategoryPlan compares the planned budget against actual spend for one
// category in one month.
type CategoryPlan struct {
	CategoryID   int64
	CategoryName string
	Budgeted     Money
	Spent        Money
	Remaining    Money
}

// PlanningOverview is the category-planning view for a specific year+month.
type PlanningOverview struct {
	Year          int
	Month         int // 1-12
	TotalBudgeted Money
	TotalSpent    Money
	Categories    []CategoryPlan
}
