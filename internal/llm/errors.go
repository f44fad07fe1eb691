package llm

import "errors"

var (
	// ErrUnavailable indicates the LLM backend could not be reached.
	ErrUnavailable = errors.New("llm backend unavailable")

	// ErrTimeout indicates the LLM request exceeded its deadline.
	ErrTimeout = errors.New("llm request timed out")

	// ErrInvalidOutput indicates the LLM response could not be parsed
	// into the expected structured format.
	ErrInvalidOutput = errors.New("invalid llm output format")

	// ErrRetryExhausted indicates all retry attempts have been exhausted.
	ErrRetryExhausted = errors.New("llm retry attempts exhausted")

	// ErrUnknownProvider indicates a provider name outside the supported set.
	ErrUnknownProvider = errors.New("unknown llm provider")

	// ErrMissingAPIKey indicates a hosted provider was selected without a key.
	ErrMissingAPIKey = errors.New("llm api key not set")
)
