package generation

import "errors"

// Common errors returned by the generation package.
var (
	// ErrGenerationFailed is returned when question generation fails for any
	// general reason.
	ErrGenerationFailed = errors.New("failed to generate question")

	// ErrInvalidResponse is returned when the LLM response is empty or
	// malformed.
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrInvalidConfig is returned when the generator configuration is
	// invalid.
	ErrInvalidConfig = errors.New("invalid generator configuration")

	// ErrNoFallback is returned by the catalog fallback when the topic has
	// no questions to fall back to.
	ErrNoFallback = errors.New("no catalog question available for fallback")
)
