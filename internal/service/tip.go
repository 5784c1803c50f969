package service

import (
	"github.com/finman-2025/finman-backend/internal/models"
	"github.com/finman-2025/finman-backend/internal/repository"
)

// TipInput carries the editable fields of a financial tip.
type TipInput struct {
	Title       string
	Content     string
	Author      string
	AuthorImage string
	Type        string
}

// TipService manages editorial financial tips.
type TipService struct {
	tips *repository.TipRepository
}

func NewTipService(tips *repository.TipRepository) *TipService {
	return &TipService{tips: tips}
}

// List returns tips, optionally filtered by type.
func (s *TipService) List(tipType string) ([]models.FinancialTip, error) {
	return s.tips.List(tipType)
}

func (s *TipService) Get(id uint) (*models.FinancialTip, error) {
	tip, err := s.tips.FindByID(id)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, ErrTipNotFound
		}
		return nil, err
	}
	return tip, nil
}

func (s *TipService) Create(in TipInput) (*models.FinancialTip, error) {
	tip := &models.FinancialTip{
		Title:       in.Title,
		Content:     in.Content,
		Author:      in.Author,
		AuthorImage: in.AuthorImage,
		Type:        in.Type,
	}
	if err := s.tips.Create(tip); err != nil {
		return nil, err
	}
	return tip, nil
}

func (s *TipService) Update(id uint, in TipInput) (*models.FinancialTip, error) {
	err := s.tips.Update(id, map[string]interface{}{
		"title":        in.Title,
		"content":      in.Content,
		"author":       in.Author,
		"author_image": in.AuthorImage,
		"type":         in.Type,
	})
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, ErrTipNotFound
		}
		return nil, err
	}
	return s.Get(id)
}

func (s *TipService) Delete(id uint) error {
	if err := s.tips.SoftDelete(id); err != nil {
		if err == repository.ErrNotFound {
			return ErrTipNotFound
		}
		return err
	}
	return nil
}
