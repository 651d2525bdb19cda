package query

import "errors"

// Sentinel error kinds for this package.
var (
	ErrDecodeQuery = errors.New("decode query failed")
)
