package service

import (
	"fmt"

	"github.com/finman-2025/finman-backend/internal/models"
	"github.com/finman-2025/finman-backend/internal/repository"
	"github.com/finman-2025/finman-backend/internal/storage"
	"github.com/finman-2025/finman-backend/internal/util"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const categoryImageFolder = "categories"

// withVirtualOther appends the synthetic "Other" category (id 0) that holds
// uncategorized expenses. Pure; applied after store reads, never persisted.
func withVirtualOther(categories []models.Category) []models.Category {
	return append(categories, models.Category{
		ID:   models.OtherCategoryID,
		Name: models.OtherCategoryName,
	})
}

// ImageUpload describes an image file staged on local disk by the upload
// middleware, ready to be moved into object storage.
type ImageUpload struct {
	LocalPath string
	Ext       string // file extension including the dot
	MimeType  string
}

// CreateCategoryInput carries already-validated fields for a new category.
type CreateCategoryInput struct {
	Name  string
	Type  string
	Limit *int64
	Image *ImageUpload
}

// UpdateCategoryInput updates only the non-nil fields.
type UpdateCategoryInput struct {
	Name  *string
	Limit *int64
	Image *ImageUpload
}

// CategoryService manages a user's category set.
type CategoryService struct {
	categories *repository.CategoryRepository
	expenses   *repository.ExpenseRepository
	store      storage.ObjectStorage
}

func NewCategoryService(categories *repository.CategoryRepository, expenses *repository.ExpenseRepository, store storage.ObjectStorage) *CategoryService {
	return &CategoryService{categories: categories, expenses: expenses, store: store}
}

// List returns the user's categories in id order with "Other" appended last.
func (s *CategoryService) List(userID uint) ([]models.Category, error) {
	categories, err := s.categories.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	return withVirtualOther(categories), nil
}

func (s *CategoryService) Get(id uint) (*models.Category, error) {
	category, err := s.categories.FindByID(id)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

// Create adds a category for the user. The name is trimmed and
// case-normalized before the per-user uniqueness check; a limit is only kept
// on OUTCOME categories. When an image is supplied it is uploaded first and a
// failed row insert triggers a compensating storage delete, so no orphaned
// object survives a failed create.
func (s *CategoryService) Create(userID uint, in CreateCategoryInput) (*models.Category, error) {
	name := util.NormalizeName(in.Name)
	if !util.ValidName(name) {
		return nil, ErrInvalidName
	}
	if in.Type != models.TypeIncome && in.Type != models.TypeOutcome {
		return nil, ErrInvalidType
	}

	exists, err := s.categories.NameExists(userID, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrNameExists
	}

	var limit *int64
	if in.Type == models.TypeOutcome {
		limit = in.Limit
	}

	var imageURL, remotePath string
	if in.Image != nil {
		remotePath = storage.ObjectPath(categoryImageFolder, userID, uuid.NewString()+in.Image.Ext)
		imageURL, err = s.store.Upload(in.Image.LocalPath, remotePath, in.Image.MimeType)
		if err != nil {
			return nil, fmt.Errorf("upload category image: %w", err)
		}
	}

	category := &models.Category{
		UserID: userID,
		Name:   name,
		Type:   in.Type,
		Limit:  limit,
		Image:  imageURL,
	}
	if err := s.categories.Create(category); err != nil {
		if remotePath != "" {
			if delErr := s.store.Delete(remotePath); delErr != nil {
				logrus.WithError(delErr).WithField("object", remotePath).
					Warn("compensating image delete failed")
			}
		}
		return nil, err
	}
	return category, nil
}

// Update applies only the supplied fields. A limit is discarded unless the
// category's type is OUTCOME.
func (s *CategoryService) Update(id uint, in UpdateCategoryInput) (*models.Category, error) {
	category, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if in.Name != nil {
		name := util.NormalizeName(*in.Name)
		if !util.ValidName(name) {
			return nil, ErrInvalidName
		}
		fields["name"] = name
	}
	if in.Limit != nil && category.Type == models.TypeOutcome {
		fields["limit"] = *in.Limit
	}
	if in.Image != nil {
		remotePath := storage.ObjectPath(categoryImageFolder, category.UserID, uuid.NewString()+in.Image.Ext)
		imageURL, err := s.store.Upload(in.Image.LocalPath, remotePath, in.Image.MimeType)
		if err != nil {
			return nil, fmt.Errorf("upload category image: %w", err)
		}
		fields["image"] = imageURL
	}

	if len(fields) > 0 {
		if err := s.categories.Update(id, fields); err != nil {
			if err == repository.ErrNotFound {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
	}
	return s.Get(id)
}

// Delete soft-deletes the category and bulk-soft-deletes its expenses.
func (s *CategoryService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := s.categories.SoftDelete(id); err != nil {
		if err == repository.ErrNotFound {
			return ErrCategoryNotFound
		}
		return err
	}
	return s.expenses.SoftDeleteByCategory(id)
}
