package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/finman-2025/finman-backend/internal/service"
	"github.com/finman-2025/finman-backend/internal/util"

	"github.com/gin-gonic/gin"
)

// ExpenseHandler covers the expense record CRUD.
type ExpenseHandler struct {
	expenses *service.ExpenseService
}

func NewExpenseHandler(expenses *service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenses: expenses}
}

// queryCategoryID reads an optional categoryId query param. 0 selects the
// uncategorized bucket.
func queryCategoryID(c *gin.Context) (*uint, bool) {
	raw := c.Query("categoryId")
	if raw == "" {
		return nil, true
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id < 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid categoryId")
		return nil, false
	}
	u := uint(id)
	return &u, true
}

// queryDate reads an optional date query param in YYYY-MM-DD form.
func queryDate(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid "+name)
		return nil, false
	}
	return &t, true
}

func (h *ExpenseHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	categoryID, ok := queryCategoryID(c)
	if !ok {
		return
	}
	date, ok := queryDate(c, "date")
	if !ok {
		return
	}

	expenses, err := h.expenses.List(user.ID, categoryID, date)
	if err != nil {
		fail(c, err)
		return
	}
	util.Success(c, util.Response{"expenses": toExpenseResps(expenses)})
}

func (h *ExpenseHandler) Get(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	expense, err := h.expenses.Get(id)
	if err != nil {
		fail(c, err)
		return
	}
	if expense.UserID != user.ID {
		fail(c, service.ErrExpenseNotFound)
		return
	}
	util.Success(c, util.Response{"expense": toExpenseResp(expense)})
}

type createExpenseReq struct {
	Value       int64  `json:"value" binding:"required,gt=0"`
	Date        string `json:"date" binding:"required"`
	CategoryID  *uint  `json:"categoryId"`
	Description string `json:"description" binding:"max=256"`
	Type        string `json:"type"`
}

// Create records an expense. When the month's spending in the category
// passes its limit the record is still saved and the response carries a
// warning message.
func (h *ExpenseHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req createExpenseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid parameters")
		return
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid date")
		return
	}

	expense, warning, err := h.expenses.Create(service.CreateExpenseInput{
		UserID:      user.ID,
		Value:       req.Value,
		Date:        date,
		CategoryID:  req.CategoryID,
		Description: req.Description,
		Type:        req.Type,
	})
	if err != nil {
		fail(c, err)
		return
	}

	resp := util.Response{"expense": toExpenseResp(expense)}
	if warning != "" {
		resp["message"] = warning
	}
	util.Success(c, resp)
}

type updateExpenseReq struct {
	Value       *int64  `json:"value"`
	Date        *string `json:"date"`
	CategoryID  *uint   `json:"categoryId"`
	Description *string `json:"description"`
}

func (h *ExpenseHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	expense, err := h.expenses.Get(id)
	if err != nil {
		fail(c, err)
		return
	}
	if expense.UserID != user.ID {
		fail(c, service.ErrExpenseNotFound)
		return
	}

	var req updateExpenseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid parameters")
		return
	}
	if req.Value != nil && *req.Value <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "value must be positive")
		return
	}

	in := service.UpdateExpenseInput{
		Value:       req.Value,
		Description: req.Description,
		CategoryID:  req.CategoryID,
	}
	if req.Date != nil {
		date, err := time.Parse(dateLayout, *req.Date)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid date")
			return
		}
		in.Date = &date
	}

	updated, err := h.expenses.Update(id, in)
	if err != nil {
		fail(c, err)
		return
	}
	util.Success(c, util.Response{"expense": toExpenseResp(updated)})
}

func (h *ExpenseHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	expense, err := h.expenses.Get(id)
	if err != nil {
		fail(c, err)
		return
	}
	if expense.UserID != user.ID {
		fail(c, service.ErrExpenseNotFound)
		return
	}

	if err := h.expenses.Delete(id); err != nil {
		fail(c, err)
		return
	}
	util.Success(c, util.Response{"message": "expense deleted"})
}
