package domain

import "errors"

var (
	ErrUnknownField = errors.New("unknown checkout form field")
	ErrItemNotFound = errors.New("order item not found")
)
