package domain

import "errors"

var (
	// ErrGenerationFailure is returned when the text-generation service fails
	ErrGenerationFailure = errors.New("text generation request failed")

	// ErrMalformedResponse is returned when the generation service responds
	// with a body that cannot be interpreted
	ErrMalformedResponse = errors.New("malformed generation response")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")
)
