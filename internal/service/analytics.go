package service

import (
	"time"

	"github.com/finman-2025/finman-backend/internal/models"
	"github.com/finman-2025/finman-backend/internal/repository"
	"github.com/finman-2025/finman-backend/internal/util"
)

// Totals is the aggregate outcome/income of a set of expenses.
type Totals struct {
	Spent  int64 `json:"spent"`
	Earned int64 `json:"earned"`
}

// CategorySummary pairs one category (the virtual "Other" included) with its
// totals over a date range.
type CategorySummary struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Type   string `json:"type,omitempty"`
	Limit  *int64 `json:"limit,omitempty"`
	Totals Totals `json:"expenseValue"`
}

// AnalyticsService aggregates expense values over a user, an optional
// category and an optional inclusive date range.
type AnalyticsService struct {
	expenses   *repository.ExpenseRepository
	categories *repository.CategoryRepository
}

func NewAnalyticsService(expenses *repository.ExpenseRepository, categories *repository.CategoryRepository) *AnalyticsService {
	return &AnalyticsService{expenses: expenses, categories: categories}
}

// Totals sums non-deleted expense values per type. categoryID nil means all
// categories, 0 means the uncategorized bucket. Dates are normalized to
// start-of-day / end-of-day so both ends are inclusive.
func (s *AnalyticsService) Totals(userID uint, categoryID *uint, start, end *time.Time) (Totals, error) {
	if start != nil {
		t := util.StartOfDay(*start)
		start = &t
	}
	if end != nil {
		t := util.EndOfDay(*end)
		end = &t
	}

	sums, err := s.expenses.SumByType(userID, categoryID, start, end)
	if err != nil {
		return Totals{}, err
	}
	return Totals{
		Spent:  sums[models.TypeOutcome],
		Earned: sums[models.TypeIncome],
	}, nil
}

// CategorySummaries computes Totals per category of the user over [start,
// end], the virtual "Other" bucket appended last.
func (s *AnalyticsService) CategorySummaries(userID uint, start, end time.Time) ([]CategorySummary, error) {
	categories, err := s.categories.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	categories = withVirtualOther(categories)

	summaries := make([]CategorySummary, 0, len(categories))
	for _, category := range categories {
		id := category.ID
		totals, err := s.Totals(userID, &id, &start, &end)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, CategorySummary{
			ID:     category.ID,
			Name:   category.Name,
			Type:   category.Type,
			Limit:  category.Limit,
			Totals: totals,
		})
	}
	return summaries, nil
}
