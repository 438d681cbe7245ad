package errors

import "errors"

var (
	ErrOrderNotFound       = errors.New("order not found")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)
