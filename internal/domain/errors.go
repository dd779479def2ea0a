package domain

import "errors"

var (
	ErrNotFound   = errors.New("product not found")
	ErrValidation = errors.New("name and price are required")
)
