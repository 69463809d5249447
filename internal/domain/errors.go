package domain

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrRateLimited      = errors.New("rate limited")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrInvalidOrder     = errors.New("invalid order parameters")
	ErrMalformedMarket  = errors.New("malformed market record")
	ErrExecutionTimeout = errors.New("execution timed out")
)
