package repository

import "errors"

var (
	// ErrInsufficientStock is returned when a guarded stock decrement would
	// drive a variant's quantity negative.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrCacheDisabled is returned by cache health checks when Redis is
	// not configured.
	ErrCacheDisabled = errors.New("redis not configured")
)
