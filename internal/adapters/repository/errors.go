package repository

import "errors"

// Sentinel kinds for repository errors.
var (
	ErrNotFound      = errors.New("collection not found")
	ErrUnknownDriver = errors.New("unknown storage driver")
	ErrCodec         = errors.New("collection codec failed")
)
