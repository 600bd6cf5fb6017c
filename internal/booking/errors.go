package booking

import "errors"

// Failure taxonomy shared by the status store and the API layer. Call
// sites wrap these with context via fmt.Errorf("...: %w", err) and the
// handlers map them to HTTP statuses with errors.Is.
var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("booking not found")
	ErrUpstream   = errors.New("upstream error")
	ErrConfig     = errors.New("upstream base URL is not configured")
)
