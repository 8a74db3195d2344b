package errors

import "fmt"

// Error codes
const (
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeValidation        = "VALIDATION_ERROR"
	ErrCodeDuplicateWord     = "DUPLICATE_WORD"
	ErrCodeDuplicateCategory = "DUPLICATE_CATEGORY"
	ErrCodeProtectedCategory = "PROTECTED_CATEGORY"
	ErrCodePersistence       = "PERSISTENCE_ERROR"
	ErrCodeImportFormat      = "IMPORT_FORMAT"
	ErrCodeInternal          = "INTERNAL_ERROR"
	ErrCodeBadRequest        = "BAD_REQUEST"
)

// AppError represents an application error with HTTP status code and error code
type AppError struct {
	Code    string // Error code (e.g., "NOT_FOUND", "DUPLICATE_WORD")
	Message string // Human-readable error message
	Status  int    // HTTP status code
	Err     error  // Wrapped underlying error (optional)
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for error wrapping support
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports whether target carries the same error code.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code
}

// NewNotFoundError creates a new NOT_FOUND error
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found: %v", resource, id),
		Status:  404,
	}
}

// NewValidationError creates a new VALIDATION_ERROR
func NewValidationError(field string, reason string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf("validation failed for %s: %s", field, reason),
		Status:  400,
	}
}

// NewDuplicateWordError creates a new DUPLICATE_WORD error
func NewDuplicateWordError(english string) *AppError {
	return &AppError{
		Code:    ErrCodeDuplicateWord,
		Message: fmt.Sprintf("word already exists: %s", english),
		Status:  409,
	}
}

// NewDuplicateCategoryError creates a new DUPLICATE_CATEGORY error
func NewDuplicateCategoryError(name string) *AppError {
	return &AppError{
		Code:    ErrCodeDuplicateCategory,
		Message: fmt.Sprintf("category already exists: %s", name),
		Status:  409,
	}
}

// NewProtectedCategoryError creates a new PROTECTED_CATEGORY error
func NewProtectedCategoryError(id string) *AppError {
	return &AppError{
		Code:    ErrCodeProtectedCategory,
		Message: fmt.Sprintf("category is protected and cannot be deleted: %s", id),
		Status:  403,
	}
}

// NewPersistenceError creates a new PERSISTENCE_ERROR
func NewPersistenceError(op string, err error) *AppError {
	return &AppError{
		Code:    ErrCodePersistence,
		Message: fmt.Sprintf("storage %s failed", op),
		Status:  500,
		Err:     err,
	}
}

// NewImportFormatError creates a new IMPORT_FORMAT error
func NewImportFormatError(reason string) *AppError {
	return &AppError{
		Code:    ErrCodeImportFormat,
		Message: fmt.Sprintf("invalid import payload: %s", reason),
		Status:  400,
	}
}

// NewInternalError creates a new INTERNAL_ERROR
func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: "internal server error",
		Status:  500,
		Err:     err,
	}
}

// NewBadRequestError creates a new BAD_REQUEST error
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeBadRequest,
		Message: message,
		Status:  400,
	}
}
