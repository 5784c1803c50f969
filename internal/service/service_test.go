package service

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/finman-2025/finman-backend/internal/database"
	"github.com/finman-2025/finman-backend/internal/models"
	"github.com/finman-2025/finman-backend/internal/repository"
	"github.com/finman-2025/finman-backend/internal/storage"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory database, migrated and ready.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

// fakeStore is an in-memory ObjectStorage that records its calls.
type fakeStore struct {
	objects map[string][]byte
	deleted []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: map[string][]byte{}}
}

func (f *fakeStore) Upload(localPath, remotePath, mimeType string) (string, error) {
	f.objects[remotePath] = []byte(localPath)
	return "http://test/files/" + remotePath, nil
}

func (f *fakeStore) Open(remotePath string) (io.ReadCloser, error) {
	data, ok := f.objects[remotePath]
	if !ok {
		return nil, storage.ErrObjectNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (f *fakeStore) Delete(remotePath string) error {
	if _, ok := f.objects[remotePath]; !ok {
		return storage.ErrObjectNotFound
	}
	delete(f.objects, remotePath)
	f.deleted = append(f.deleted, remotePath)
	return nil
}

// fixture wires the full service stack over one in-memory database with a
// single registered user.
type fixture struct {
	db         *gorm.DB
	store      *fakeStore
	categories *CategoryService
	expenses   *ExpenseService
	analytics  *AnalyticsService
	users      *UserService
	userID     uint
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)

	categoryRepo := repository.NewCategoryRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	userRepo := repository.NewUserRepository(db)

	store := newFakeStore()
	analytics := NewAnalyticsService(expenseRepo, categoryRepo)

	user := &models.User{Username: "alice", PasswordHash: "x"}
	require.NoError(t, userRepo.Create(user))

	return &fixture{
		db:         db,
		store:      store,
		categories: NewCategoryService(categoryRepo, expenseRepo, store),
		expenses:   NewExpenseService(expenseRepo, categoryRepo, analytics),
		analytics:  analytics,
		users:      NewUserService(userRepo, store),
		userID:     user.ID,
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// mustCategory creates a category or fails the test.
func (f *fixture) mustCategory(t *testing.T, name, catType string, limit *int64) *models.Category {
	t.Helper()
	cat, err := f.categories.Create(f.userID, CreateCategoryInput{
		Name:  name,
		Type:  catType,
		Limit: limit,
	})
	require.NoError(t, err)
	return cat
}

// mustExpense records an expense or fails the test.
func (f *fixture) mustExpense(t *testing.T, categoryID *uint, value int64, date time.Time, expType string) *models.Expense {
	t.Helper()
	expense, _, err := f.expenses.Create(CreateExpenseInput{
		UserID:     f.userID,
		Value:      value,
		Date:       date,
		CategoryID: categoryID,
		Type:       expType,
	})
	require.NoError(t, err)
	return expense
}

func ptrInt64(v int64) *int64 { return &v }
func ptrUint(v uint) *uint    { return &v }
