package usecase

import "errors"

var (
	// ErrValidation covers missing or malformed input detected before
	// any write. Handlers map it to 400.
	ErrValidation = errors.New("invalid input")
	// ErrNotFound means a referenced entity does not exist. 404.
	ErrNotFound = errors.New("not found")
	// ErrUpstream means the payment provider rejected a request. The
	// provider's message is carried in the wrapping error. 500.
	ErrUpstream = errors.New("payment provider error")
)
