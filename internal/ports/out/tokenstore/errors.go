package tokenstore

import "errors"

var (
	// ErrNotFound indicates no token is currently persisted.
	ErrNotFound = errors.New("token not found")
)
