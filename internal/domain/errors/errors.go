package errors

import "errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrProductValidation   = errors.New("product validation failed")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	ErrInvalidStatus       = errors.New("invalid order status")
)
