package handler

import (
	"time"

	"github.com/finman-2025/finman-backend/internal/models"
)

// categoryResp is the wire form of a category. Ownership and soft-delete
// bookkeeping stay server side.
type categoryResp struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Type  string `json:"type"`
	Limit *int64 `json:"limit"`
	Image string `json:"image,omitempty"`
}

func toCategoryResp(cat models.Category) categoryResp {
	return categoryResp{
		ID:    cat.ID,
		Name:  cat.Name,
		Type:  cat.Type,
		Limit: cat.Limit,
		Image: cat.Image,
	}
}

func toCategoryResps(cats []models.Category) []categoryResp {
	out := make([]categoryResp, 0, len(cats))
	for _, cat := range cats {
		out = append(out, toCategoryResp(cat))
	}
	return out
}

type categoryRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type expenseResp struct {
	ID          uint         `json:"id"`
	Type        string       `json:"type"`
	Value       int64        `json:"value"`
	Description string       `json:"description"`
	Date        time.Time    `json:"date"`
	Category    *categoryRef `json:"category"`
}

func toExpenseResp(e *models.Expense) expenseResp {
	resp := expenseResp{
		ID:          e.ID,
		Type:        e.Type,
		Value:       e.Value,
		Description: e.Description,
		Date:        e.Date,
	}
	switch {
	case e.Category != nil:
		resp.Category = &categoryRef{ID: e.Category.ID, Name: e.Category.Name}
	case e.CategoryID == nil:
		resp.Category = &categoryRef{ID: models.OtherCategoryID, Name: models.OtherCategoryName}
	}
	return resp
}

func toExpenseResps(expenses []models.Expense) []expenseResp {
	out := make([]expenseResp, 0, len(expenses))
	for i := range expenses {
		out = append(out, toExpenseResp(&expenses[i]))
	}
	return out
}

type userResp struct {
	ID          uint       `json:"id"`
	Username    string     `json:"username"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	PhoneNumber string     `json:"phone_number"`
	Sex         string     `json:"sex"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	Address     string     `json:"address"`
	Avatar      string     `json:"avatar,omitempty"`
}

func toUserResp(u *models.User) userResp {
	return userResp{
		ID:          u.ID,
		Username:    u.Username,
		Name:        u.Name,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		Sex:         u.Sex,
		DateOfBirth: u.DateOfBirth,
		Address:     u.Address,
		Avatar:      u.Avatar,
	}
}
