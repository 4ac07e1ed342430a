package errors

import "errors"

// This package defines a centralized set of sentinel errors for the application.
// Services wrap these with fmt.Errorf("%w: ...") so the API layer can use
// errors.Is() to map them to HTTP responses and stream error events without
// knowing which component produced them.

var (
	// ErrNotFound signifies that a requested resource could not be located.
	// This is typically mapped to a 404 Not Found HTTP status.
	ErrNotFound = errors.New("resource not found")

	// ErrValidation signifies an invalid argument: bad chunking parameters,
	// a missing question, malformed tool arguments. Rejected before any work begins.
	// This is typically mapped to a 400 Bad Request HTTP status.
	ErrValidation = errors.New("validation failed")

	// ErrConflict signifies that an operation conflicts with the current state
	// of a resource.
	ErrConflict = errors.New("resource conflict")

	// ErrExtraction signifies that text could not be extracted from an uploaded file.
	// This is typically mapped to a 422 Unprocessable Entity HTTP status.
	ErrExtraction = errors.New("text extraction failed")

	// ErrExternalService signifies a failure of the embedding provider, the
	// language model or the web search backend, including timeouts.
	// This is typically mapped to a 502 Bad Gateway HTTP status.
	ErrExternalService = errors.New("external service error")

	// ErrCorruptedIndex signifies a vector dimensionality mismatch or an
	// unreadable persisted vector. It is fatal for the affected document only.
	ErrCorruptedIndex = errors.New("corrupted vector index")

	// ErrRoundLimitExceeded signifies that the model kept requesting tools
	// until the conversation round limit was reached.
	ErrRoundLimitExceeded = errors.New("tool round limit exceeded")

	// ErrInternal signifies an unexpected error on the server. This is a generic
	// error used to prevent leaking sensitive implementation details to the client.
	// This is typically mapped to a 500 Internal Server Error HTTP status.
	ErrInternal = errors.New("internal server error")
)
