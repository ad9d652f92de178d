package bilicopy

import "errors"

var (
	ErrRateLimited      = errors.New("bilicopy: rate limited")
	ErrNotFound         = errors.New("bilicopy: not found")
	ErrInvalidResponse  = errors.New("bilicopy: invalid response")
	ErrBrowserNotReady  = errors.New("bilicopy: browser not initialized")
	ErrAPI              = errors.New("bilicopy: api returned error code")
	ErrNoVideoID        = errors.New("bilicopy: video id missing from url")
	ErrUnknownAction    = errors.New("bilicopy: unknown action")
	ErrFieldUnavailable = errors.New("bilicopy: field unavailable")
)
