package generation

import "errors"

// Common errors returned by the generation package
var (
	// ErrGenerationFailed is returned when word generation fails for any general reason
	ErrGenerationFailed = errors.New("failed to generate words")

	// ErrInvalidResponse is returned when the LLM response cannot be parsed or is malformed
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrContentBlocked is returned when the LLM blocks the content due to safety filters
	ErrContentBlocked = errors.New("content blocked by language model safety filters")

	// ErrTransientFailure is returned for temporary errors that might resolve on retry
	ErrTransientFailure = errors.New("transient error during word generation")

	// ErrInvalidConfig is returned when the generator configuration is invalid
	ErrInvalidConfig = errors.New("invalid generator configuration")
)

// IsGenerationError reports whether err belongs to the generation error family.
func IsGenerationError(err error) bool {
	return errors.Is(err, ErrGenerationFailed) ||
		errors.Is(err, ErrInvalidResponse) ||
		errors.Is(err, ErrContentBlocked) ||
		errors.Is(err, ErrTransientFailure) ||
		errors.Is(err, ErrInvalidConfig)
}
