package ratelimiter

import "errors"

var (
	// ErrInvalidConfig indicates that the bucket configuration is invalid.
	ErrInvalidConfig = errors.New("ratelimiter: invalid configuration")
	// ErrStoreUnavailable indicates that the store backend failed.
	ErrStoreUnavailable = errors.New("ratelimiter: store unavailable")
)
