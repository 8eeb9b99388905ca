package services

import "errors"

var (
	ErrValidation         = errors.New("validation error")
	ErrEmptyCart          = errors.New("order is empty")
	ErrOrderNotFound      = errors.New("order not found")
	ErrInvalidAmount      = errors.New("usage amount must be greater than zero")
	ErrStockItemNotFound  = errors.New("stock item not found")
	ErrStaffNotFound      = errors.New("staff member not found")
	ErrUsernameExists     = errors.New("username already exists")
	ErrInvalidRole        = errors.New("invalid staff role")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrCategoryExists     = errors.New("category already exists")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrMenuItemNotFound   = errors.New("menu item not found")
	ErrInvalidDate        = errors.New("invalid date, please use YYYY-MM-DD")
)
