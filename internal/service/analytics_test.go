package service

import (
	"testing"
	"time"

	"github.com/finman-2025/finman-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTotals(t *testing.T) {
	f := newFixture(t)

	food := f.mustCategory(t, "Food", models.TypeOutcome, nil)
	salary := f.mustCategory(t, "Salary", models.TypeIncome, nil)

	f.mustExpense(t, &food.ID, 30, day(2025, 6, 1), "")
	f.mustExpense(t, &food.ID, 20, day(2025, 6, 2), "")
	f.mustExpense(t, &salary.ID, 1000, day(2025, 6, 1), "")
	f.mustExpense(t, nil, 5, day(2025, 6, 3), models.TypeOutcome)

	totals, err := f.analytics.Totals(f.userID, nil, nil, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 55, totals.Spent)
	assert.EqualValues(t, 1000, totals.Earned)

	totals, err = f.analytics.Totals(f.userID, &food.ID, nil, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 50, totals.Spent)
	assert.EqualValues(t, 0, totals.Earned)

	zero := models.OtherCategoryID
	totals, err = f.analytics.Totals(f.userID, &zero, nil, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 5, totals.Spent)
}

func TestTotalsRangeEndsAreInclusive(t *testing.T) {
	f := newFixture(t)

	f.mustExpense(t, nil, 1, day(2025, 6, 1), models.TypeOutcome)
	f.mustExpense(t, nil, 2,
		time.Date(2025, 6, 30, 23, 59, 59, 0, time.UTC), models.TypeOutcome)
	f.mustExpense(t, nil, 4, day(2025, 5, 31), models.TypeOutcome)
	f.mustExpense(t, nil, 8, day(2025, 7, 1), models.TypeOutcome)

	start, end := day(2025, 6, 1), day(2025, 6, 30)
	totals, err := f.analytics.Totals(f.userID, nil, &start, &end)
	require.NoError(t, err)
	assert.EqualValues(t, 3, totals.Spent)
}

func TestTotalsExcludeDeletedExpenses(t *testing.T) {
	f := newFixture(t)

	keep := f.mustExpense(t, nil, 10, day(2025, 6, 1), models.TypeOutcome)
	gone := f.mustExpense(t, nil, 20, day(2025, 6, 1), models.TypeOutcome)
	require.NoError(t, f.expenses.Delete(gone.ID))

	totals, err := f.analytics.Totals(f.userID, nil, nil, nil)
	require.NoError(t, err)
	assert.EqualValues(t, keep.Value, totals.Spent)
}

func TestCategorySummariesIncludeOtherBucket(t *testing.T) {
	f := newFixture(t)

	food := f.mustCategory(t, "Food", models.TypeOutcome, ptrInt64(500))
	salary := f.mustCategory(t, "Salary", models.TypeIncome, nil)
	f.mustExpense(t, &food.ID, 120, day(2025, 6, 5), "")
	f.mustExpense(t, &salary.ID, 900, day(2025, 6, 5), "")
	f.mustExpense(t, nil, 30, day(2025, 6, 6), models.TypeOutcome)

	summaries, err := f.analytics.CategorySummaries(f.userID, day(2025, 6, 1), day(2025, 6, 30))
	require.NoError(t, err)
	require.Len(t, summaries, 3)

	assert.Equal(t, "Food", summaries[0].Name)
	assert.EqualValues(t, 120, summaries[0].Totals.Spent)
	assert.EqualValues(t, 0, summaries[0].Totals.Earned)
	require.NotNil(t, summaries[0].Limit)

	assert.Equal(t, "Salary", summaries[1].Name)
	assert.EqualValues(t, 0, summaries[1].Totals.Spent)
	assert.EqualValues(t, 900, summaries[1].Totals.Earned)

	other := summaries[len(summaries)-1]
	assert.Equal(t, models.OtherCategoryID, other.ID)
	assert.Equal(t, models.OtherCategoryName, other.Name)
	assert.EqualValues(t, 30, other.Totals.Spent)
}
