package domain

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrMalformedPayload = errors.New("malformed payload")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrChannelClosed    = errors.New("channel closed")
)
