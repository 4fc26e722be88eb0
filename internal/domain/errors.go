package domain

import "errors"

var (
	ErrUnsupportedFormat = errors.New("unsupported email format")
	ErrMalformedMessage  = errors.New("message contains no readable text body")
	ErrLookupUnavailable = errors.New("catalog lookup unavailable")
	ErrValidationBlocked = errors.New("order has unacknowledged error-severity issues")
	ErrInvalidTransition = errors.New("order is not in a state that allows this transition")
	ErrNotApproved       = errors.New("order is not approved")
	ErrOrderNotFound     = errors.New("order not found")
)
