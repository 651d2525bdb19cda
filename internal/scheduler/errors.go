package scheduler

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrBackendClosed = errors.New("compute backend closed")
	ErrCloseTimeout  = errors.New("compute backend did not stop")
	ErrComputeFailed = errors.New("compute job failed")
	ErrJobFailed     = errors.New("scoring job failed on both backends")
)
