package service

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrNotStarted      = errors.New("service not started")
	ErrUnknownRole     = errors.New("unknown role code")
	ErrDatasetTooLarge = errors.New("dataset exceeds configured maximum")
)
