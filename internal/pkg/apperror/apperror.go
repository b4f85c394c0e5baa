package apperror

// Stable machine-readable failure codes. Clients branch on these rather than
// on the human-readable message.
const (
	CodeNotFound     = "not_found"
	CodeInvalidRange = "invalid_range"
	CodeInvalidInput = "invalid_input"
	CodeUnavailable  = "unavailable"
	CodeConflict     = "conflict"
	CodeStorage      = "storage_error"
	CodeUnauthorized = "unauthorized"
)

// AppError is a custom error type that carries an HTTP status code and a stable
// machine-readable failure code alongside the user-facing message.
type AppError struct {
	Status  int    // HTTP status code (e.g., 400, 404)
	Code    string // Machine-readable failure code (e.g., "conflict")
	Message string // User-facing error message
	Err     error  // The underlying error, if any (not exposed to user)
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError with a status, code and message.
func New(status int, code, message string) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new AppError wrapping an existing error.
func Wrap(err error, status int, code, message string) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}
