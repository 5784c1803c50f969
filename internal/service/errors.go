package service

import "errors"

// Domain errors surfaced to the handler layer; none are retried internally.
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrExpenseNotFound  = errors.New("expense not found")
	ErrTipNotFound      = errors.New("financial tip not found")
	ErrFileNotFound     = errors.New("exported file not found")
	ErrAvatarNotFound   = errors.New("avatar not found")

	// ErrNameExists means the user already has a category with that name.
	ErrNameExists = errors.New("category name already exists")
	// ErrTypeChange means an update would move an expense across the
	// income/outcome boundary via re-categorization.
	ErrTypeChange = errors.New("cannot update expense type")

	ErrInvalidName = errors.New("invalid name")
	ErrInvalidType = errors.New("invalid expense type")

	ErrUsernameTaken    = errors.New("username already exists")
	ErrInvalidUsername  = errors.New("username must be 3-20 letters, digits or underscores")
	ErrWeakPassword     = errors.New("password must be 8-32 characters with upper, lower and digit")
	ErrWrongCredentials = errors.New("wrong username or password")
	ErrInvalidToken     = errors.New("invalid or expired token")

	ErrNoExpenses  = errors.New("no expenses in the requested range")
	ErrBadFileType = errors.New("unsupported export file type")
)
