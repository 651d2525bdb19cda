package role

import "errors"

// Sentinel error kinds for this package.
var (
	ErrDecodeCatalog = errors.New("decode role catalog failed")
)
