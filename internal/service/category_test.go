package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/finman-2025/finman-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCategoryNormalizesName(t *testing.T) {
	f := newFixture(t)

	cat := f.mustCategory(t, "  eating OUT  ", models.TypeOutcome, nil)
	assert.Equal(t, "Eating out", cat.Name)
}

func TestCreateCategoryRejectsDuplicateName(t *testing.T) {
	f := newFixture(t)

	f.mustCategory(t, "food", models.TypeOutcome, nil)

	// normalization makes the uniqueness check case-insensitive
	_, err := f.categories.Create(f.userID, CreateCategoryInput{
		Name: "FOOD", Type: models.TypeOutcome,
	})
	assert.ErrorIs(t, err, ErrNameExists)
}

func TestCreateCategoryValidation(t *testing.T) {
	f := newFixture(t)

	_, err := f.categories.Create(f.userID, CreateCategoryInput{
		Name: "Food99", Type: models.TypeOutcome,
	})
	assert.ErrorIs(t, err, ErrInvalidName)

	_, err = f.categories.Create(f.userID, CreateCategoryInput{
		Name: "Food", Type: "SAVINGS",
	})
	assert.ErrorIs(t, err, ErrInvalidType)
}

func TestCreateCategoryDiscardsLimitForIncome(t *testing.T) {
	f := newFixture(t)

	cat := f.mustCategory(t, "Salary", models.TypeIncome, ptrInt64(5000))
	assert.Nil(t, cat.Limit)

	cat = f.mustCategory(t, "Food", models.TypeOutcome, ptrInt64(5000))
	require.NotNil(t, cat.Limit)
	assert.EqualValues(t, 5000, *cat.Limit)
}

func TestListAppendsVirtualOther(t *testing.T) {
	f := newFixture(t)

	f.mustCategory(t, "Food", models.TypeOutcome, nil)
	f.mustCategory(t, "Salary", models.TypeIncome, nil)

	cats, err := f.categories.List(f.userID)
	require.NoError(t, err)
	require.Len(t, cats, 3)

	other := cats[len(cats)-1]
	assert.Equal(t, models.OtherCategoryID, other.ID)
	assert.Equal(t, models.OtherCategoryName, other.Name)

	// even an empty set still surfaces the virtual bucket
	t.Run("empty", func(t *testing.T) {
		f := newFixture(t)
		cats, err := f.categories.List(f.userID)
		require.NoError(t, err)
		require.Len(t, cats, 1)
		assert.Equal(t, models.OtherCategoryID, cats[0].ID)
	})
}

func TestUpdateCategoryIgnoresLimitForIncome(t *testing.T) {
	f := newFixture(t)

	cat := f.mustCategory(t, "Salary", models.TypeIncome, nil)
	updated, err := f.categories.Update(cat.ID, UpdateCategoryInput{Limit: ptrInt64(100)})
	require.NoError(t, err)
	assert.Nil(t, updated.Limit)
}

func TestDeleteCategoryCascadesToExpenses(t *testing.T) {
	f := newFixture(t)

	cat := f.mustCategory(t, "Food", models.TypeOutcome, nil)
	expense := f.mustExpense(t, &cat.ID, 100, day(2025, 6, 1), "")

	require.NoError(t, f.categories.Delete(cat.ID))

	_, err := f.categories.Get(cat.ID)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
	_, err = f.expenses.Get(expense.ID)
	assert.ErrorIs(t, err, ErrExpenseNotFound)

	// a second delete behaves like any other missing category
	assert.ErrorIs(t, f.categories.Delete(cat.ID), ErrCategoryNotFound)
}

func TestCreateCategoryCleansUpImageOnFailedInsert(t *testing.T) {
	f := newFixture(t)

	// force the row insert to fail after the image upload succeeded
	require.NoError(t, f.db.Exec(
		`CREATE TRIGGER block_insert BEFORE INSERT ON categories
		 BEGIN SELECT RAISE(ABORT, 'blocked'); END`).Error)

	img := stageTestImage(t)
	_, err := f.categories.Create(f.userID, CreateCategoryInput{
		Name:  "Food",
		Type:  models.TypeOutcome,
		Image: img,
	})
	require.Error(t, err)

	assert.Empty(t, f.store.objects, "failed create must not leave an orphaned object")
	assert.Len(t, f.store.deleted, 1)
}

// stageTestImage writes a throwaway file standing in for an uploaded image.
func stageTestImage(t *testing.T) *ImageUpload {
	t.Helper()
	path := filepath.Join(t.TempDir(), "icon.png")
	require.NoError(t, os.WriteFile(path, []byte("png"), 0o644))
	return &ImageUpload{LocalPath: path, Ext: ".png", MimeType: "image/png"}
}
