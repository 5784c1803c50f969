package service

import (
	"fmt"
	"time"

	"github.com/finman-2025/finman-backend/internal/models"
	"github.com/finman-2025/finman-backend/internal/repository"
	"github.com/finman-2025/finman-backend/internal/util"
)

// ExpenseService manages expense records and keeps them consistent with
// their categories.
type ExpenseService struct {
	expenses   *repository.ExpenseRepository
	categories *repository.CategoryRepository
	analytics  *AnalyticsService
}

func NewExpenseService(expenses *repository.ExpenseRepository, categories *repository.CategoryRepository, analytics *AnalyticsService) *ExpenseService {
	return &ExpenseService{expenses: expenses, categories: categories, analytics: analytics}
}

// CreateExpenseInput carries already-validated fields for a new expense.
// Type is only honored when no category is supplied; otherwise the category's
// type wins.
type CreateExpenseInput struct {
	UserID      uint
	Value       int64
	Date        time.Time
	CategoryID  *uint // nil or 0 means uncategorized
	Description string
	Type        string
}

// UpdateExpenseInput updates only the non-nil fields. A CategoryID of 0
// clears the category.
type UpdateExpenseInput struct {
	Value       *int64
	Description *string
	Date        *time.Time
	CategoryID  *uint
}

// List returns the user's expenses newest first, optionally narrowed to one
// category (0 means uncategorized) and/or a single calendar day.
func (s *ExpenseService) List(userID uint, categoryID *uint, date *time.Time) ([]models.Expense, error) {
	var start, end *time.Time
	if date != nil {
		d0, d1 := util.StartOfDay(*date), util.EndOfDay(*date)
		start, end = &d0, &d1
	}
	return s.expenses.List(userID, categoryID, start, end)
}

func (s *ExpenseService) Get(id uint) (*models.Expense, error) {
	expense, err := s.expenses.FindByID(id)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, ErrExpenseNotFound
		}
		return nil, err
	}
	return expense, nil
}

// overBudgetMessage names the category whose monthly limit was exceeded.
func overBudgetMessage(name string) string {
	return fmt.Sprintf("spending in category %q is over its monthly limit", name)
}

// Create persists a new expense. With a category set the expense adopts the
// category's type, and for OUTCOME categories with a limit the current
// month's spend is checked: exceeding the limit does not block the create but
// returns a warning naming the category.
func (s *ExpenseService) Create(in CreateExpenseInput) (*models.Expense, string, error) {
	expenseType := in.Type
	var warning string
	var categoryID *uint

	if in.CategoryID != nil && *in.CategoryID != models.OtherCategoryID {
		category, err := s.categories.FindByID(*in.CategoryID)
		if err != nil {
			if err == repository.ErrNotFound {
				return nil, "", ErrCategoryNotFound
			}
			return nil, "", err
		}
		expenseType = category.Type
		categoryID = in.CategoryID

		if category.Type == models.TypeOutcome && category.Limit != nil {
			first := util.FirstDayOfMonth(in.Date)
			last := util.LastDayOfMonth(in.Date)
			totals, err := s.analytics.Totals(in.UserID, in.CategoryID, &first, &last)
			if err != nil {
				return nil, "", err
			}
			if totals.Spent+in.Value > *category.Limit {
				warning = overBudgetMessage(category.Name)
			}
		}
	}

	if expenseType != models.TypeIncome && expenseType != models.TypeOutcome {
		return nil, "", ErrInvalidType
	}

	expense := &models.Expense{
		UserID:      in.UserID,
		CategoryID:  categoryID,
		Type:        expenseType,
		Value:       in.Value,
		Description: in.Description,
		Date:        in.Date,
	}
	if err := s.expenses.Create(expense); err != nil {
		return nil, "", err
	}

	created, err := s.Get(expense.ID)
	if err != nil {
		return nil, "", err
	}
	return created, warning, nil
}

// Update applies only the supplied fields. Re-categorizing across the
// income/outcome boundary is rejected; moving an uncategorized expense into a
// category makes it adopt that category's type.
func (s *ExpenseService) Update(id uint, in UpdateExpenseInput) (*models.Expense, error) {
	expense, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}

	if in.CategoryID != nil {
		if *in.CategoryID == models.OtherCategoryID {
			fields["category_id"] = nil
		} else {
			newCategory, err := s.categories.FindByID(*in.CategoryID)
			if err != nil {
				if err == repository.ErrNotFound {
					return nil, ErrCategoryNotFound
				}
				return nil, err
			}
			if expense.CategoryID != nil && *expense.CategoryID != *in.CategoryID {
				current, err := s.categories.FindByID(*expense.CategoryID)
				if err != nil && err != repository.ErrNotFound {
					return nil, err
				}
				if current != nil && current.Type != newCategory.Type {
					return nil, ErrTypeChange
				}
			}
			fields["category_id"] = *in.CategoryID
			if expense.CategoryID == nil {
				// adopting a category from the uncategorized bucket also
				// adopts its type, keeping expense and category consistent
				fields["type"] = newCategory.Type
			}
		}
	}

	if in.Value != nil {
		fields["value"] = *in.Value
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.Date != nil {
		fields["date"] = *in.Date
	}

	if len(fields) > 0 {
		if err := s.expenses.Update(id, fields); err != nil {
			if err == repository.ErrNotFound {
				return nil, ErrExpenseNotFound
			}
			return nil, err
		}
	}
	return s.Get(id)
}

// Delete soft-deletes a single expense.
func (s *ExpenseService) Delete(id uint) error {
	if err := s.expenses.SoftDelete(id); err != nil {
		if err == repository.ErrNotFound {
			return ErrExpenseNotFound
		}
		return err
	}
	return nil
}

// DeleteAllInCategory bulk-soft-deletes every expense of a category.
// Matching nothing is not an error.
func (s *ExpenseService) DeleteAllInCategory(categoryID uint) error {
	return s.expenses.SoftDeleteByCategory(categoryID)
}

// RangeReport returns the user's expenses within the inclusive day range,
// each with its category loaded; feeds the export service.
func (s *ExpenseService) RangeReport(userID uint, start, end time.Time) ([]models.Expense, error) {
	d0, d1 := util.StartOfDay(start), util.EndOfDay(end)
	return s.expenses.List(userID, nil, &d0, &d1)
}
