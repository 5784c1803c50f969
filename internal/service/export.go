package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/finman-2025/finman-backend/internal/models"
	"github.com/finman-2025/finman-backend/internal/repository"
	"github.com/finman-2025/finman-backend/internal/storage"

	"github.com/xuri/excelize/v2"
)

const exportFolder = "exports"

// MIME types of the supported export formats.
const (
	MimeCSV  = "text/csv"
	MimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ExportService turns a user's expense range report into a CSV or XLSX file,
// stores it in object storage and records it for later download.
type ExportService struct {
	files    *repository.ExportedFileRepository
	expenses *ExpenseService
	store    storage.ObjectStorage
	tmpDir   string
}

func NewExportService(files *repository.ExportedFileRepository, expenses *ExpenseService, store storage.ObjectStorage, tmpDir string) *ExportService {
	return &ExportService{files: files, expenses: expenses, store: store, tmpDir: tmpDir}
}

// categoryName resolves the embedded category reference, falling back to the
// virtual "Other" bucket.
func categoryName(e *models.Expense) string {
	if e.Category != nil {
		return e.Category.Name
	}
	return models.OtherCategoryName
}

// WriteExpensesCSV writes the export rows as CSV. A UTF-8 BOM is prepended
// so spreadsheet apps detect the encoding.
func WriteExpensesCSV(w io.Writer, expenses []models.Expense) error {
	if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write([]string{"Date", "Description", "Value", "Category", "Type"}); err != nil {
		return err
	}
	for i := range expenses {
		e := &expenses[i]
		record := []string{
			e.Date.Format("2006-01-02 15:04:05"),
			e.Description,
			strconv.FormatInt(e.Value, 10),
			categoryName(e),
			e.Type,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// buildExpensesXLSX builds a single-sheet workbook of the export rows.
func buildExpensesXLSX(expenses []models.Expense) (*excelize.File, error) {
	f := excelize.NewFile()
	const sheet = "Expenses"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	headers := []string{"Date", "Description", "Value", "Category", "Type"}
	for i, h := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	for idx := range expenses {
		e := &expenses[idx]
		row := idx + 2
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), e.Date.Format("2006-01-02 15:04:05"))
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), e.Description)
		_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", row), e.Value)
		_ = f.SetCellValue(sheet, fmt.Sprintf("D%d", row), categoryName(e))
		_ = f.SetCellValue(sheet, fmt.Sprintf("E%d", row), e.Type)
	}

	_ = f.SetColWidth(sheet, "A", "A", 20)
	_ = f.SetColWidth(sheet, "B", "B", 30)
	_ = f.SetColWidth(sheet, "C", "C", 14)
	_ = f.SetColWidth(sheet, "D", "E", 14)

	return f, nil
}

// ExportExpenses builds the report file for [start, end], uploads it and
// records it. An empty range yields ErrNoExpenses.
func (s *ExportService) ExportExpenses(userID uint, start, end time.Time, format string) (*models.ExportedFile, error) {
	if format != "csv" && format != "xlsx" {
		return nil, ErrBadFileType
	}

	expenses, err := s.expenses.RangeReport(userID, start, end)
	if err != nil {
		return nil, err
	}
	if len(expenses) == 0 {
		return nil, ErrNoExpenses
	}

	fileName := fmt.Sprintf("expenses_%d_%s_%s.%s",
		userID, start.Format("2006-01-02"), end.Format("2006-01-02"), format)
	localPath := filepath.Join(s.tmpDir, fileName)
	if err := os.MkdirAll(s.tmpDir, 0o755); err != nil {
		return nil, fmt.Errorf("create export tmp dir: %w", err)
	}

	var mimeType string
	switch format {
	case "csv":
		mimeType = MimeCSV
		f, err := os.Create(localPath)
		if err != nil {
			return nil, fmt.Errorf("create export file: %w", err)
		}
		if err := WriteExpensesCSV(f, expenses); err != nil {
			f.Close()
			_ = os.Remove(localPath)
			return nil, fmt.Errorf("write csv: %w", err)
		}
		if err := f.Close(); err != nil {
			return nil, err
		}
	case "xlsx":
		mimeType = MimeXLSX
		wb, err := buildExpensesXLSX(expenses)
		if err != nil {
			return nil, fmt.Errorf("build xlsx: %w", err)
		}
		if err := wb.SaveAs(localPath); err != nil {
			return nil, fmt.Errorf("write xlsx: %w", err)
		}
	}

	remotePath := storage.ObjectPath(exportFolder, userID, fileName)
	url, err := s.store.Upload(localPath, remotePath, mimeType)
	if err != nil {
		_ = os.Remove(localPath)
		return nil, fmt.Errorf("upload export: %w", err)
	}

	record := &models.ExportedFile{
		UserID:   userID,
		FileName: fileName,
		FileType: mimeType,
		URL:      url,
	}
	if err := s.files.Create(record); err != nil {
		return nil, err
	}
	return record, nil
}

// List returns the user's recorded exports, newest first.
func (s *ExportService) List(userID uint) ([]models.ExportedFile, error) {
	return s.files.ListByUser(userID)
}

// Fetch streams a recorded export back from object storage.
func (s *ExportService) Fetch(userID uint, fileName string) (*models.ExportedFile, io.ReadCloser, error) {
	record, err := s.files.FindByName(userID, fileName)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, nil, ErrFileNotFound
		}
		return nil, nil, err
	}

	rc, err := s.store.Open(storage.ObjectPath(exportFolder, userID, fileName))
	if err != nil {
		if err == storage.ErrObjectNotFound {
			return nil, nil, ErrFileNotFound
		}
		return nil, nil, err
	}
	return record, rc, nil
}

// Delete soft-deletes the record; the stored object is retained for audit.
func (s *ExportService) Delete(userID uint, fileName string) error {
	record, err := s.files.FindByName(userID, fileName)
	if err != nil {
		if err == repository.ErrNotFound {
			return ErrFileNotFound
		}
		return err
	}
	return s.files.SoftDelete(record.ID)
}
