package address

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes for the address domain. Every failure raised by the
// repository or the service carries exactly one of these.
const (
	CodeValidation           = "VALIDATION_ERROR"
	CodeDuplicatePhone       = "DUPLICATE_PHONE"
	CodeDuplicateCustomer    = "DUPLICATE_CUSTOMER_NUMBER"
	CodeDuplicateCoordinates = "DUPLICATE_COORDINATES"
	CodeAddressNotFound      = "ADDRESS_NOT_FOUND"
	CodeInvalidAddressID     = "INVALID_ADDRESS_ID"
	CodeStorageError         = "STORAGE_ERROR"
)

// FieldViolation is one violated constraint, addressed by field path.
type FieldViolation struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// DomainError is the base error for the address domain.
type DomainError struct {
	Code    string
	Message string
	Details []FieldViolation
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// ============================================
// ERROR FACTORY FUNCTIONS
// ============================================

// NewValidationError wraps an ordered list of field violations.
func NewValidationError(details []FieldViolation) *DomainError {
	return &DomainError{
		Code:    CodeValidation,
		Message: "Validation Error",
		Details: details,
	}
}

func NewDuplicatePhone(phone string) *DomainError {
	return &DomainError{
		Code:    CodeDuplicatePhone,
		Message: fmt.Sprintf("An address with phone %s already exists", phone),
	}
}

func NewDuplicateCustomerNumber(n int64) *DomainError {
	return &DomainError{
		Code:    CodeDuplicateCustomer,
		Message: fmt.Sprintf("An address with customer number %d already exists", n),
	}
}

func NewDuplicateCoordinates(lat, lon float64) *DomainError {
	return &DomainError{
		Code:    CodeDuplicateCoordinates,
		Message: fmt.Sprintf("An address at coordinates (%v, %v) already exists", lat, lon),
	}
}

func NewNotFoundByID(id string) *DomainError {
	return &DomainError{
		Code:    CodeAddressNotFound,
		Message: fmt.Sprintf("Address not found for id %s", id),
	}
}

func NewNotFoundByPhone(phone string) *DomainError {
	return &DomainError{
		Code:    CodeAddressNotFound,
		Message: fmt.Sprintf("Customer not found for phone number %s", phone),
	}
}

func NewNotFoundByCustomerNumber(n int64) *DomainError {
	return &DomainError{
		Code:    CodeAddressNotFound,
		Message: fmt.Sprintf("Customer not found for customer number %d", n),
	}
}

func NewInvalidAddressID(id string) *DomainError {
	return &DomainError{
		Code:    CodeInvalidAddressID,
		Message: fmt.Sprintf("Invalid address id: %s", id),
	}
}

func NewStorageError(op string, err error) *DomainError {
	return &DomainError{
		Code:    CodeStorageError,
		Message: fmt.Sprintf("Failed to %s address", op),
		Err:     err,
	}
}

// ============================================
// ERROR CHECKING FUNCTIONS
// ============================================

func IsDomainError(err error) bool {
	var domErr *DomainError
	return errors.As(err, &domErr)
}

func IsValidation(err error) bool {
	var domErr *DomainError
	return errors.As(err, &domErr) && domErr.Code == CodeValidation
}

func IsNotFound(err error) bool {
	var domErr *DomainError
	return errors.As(err, &domErr) && domErr.Code == CodeAddressNotFound
}

func IsConflict(err error) bool {
	var domErr *DomainError
	if !errors.As(err, &domErr) {
		return false
	}
	switch domErr.Code {
	case CodeDuplicatePhone, CodeDuplicateCustomer, CodeDuplicateCoordinates:
		return true
	}
	return false
}

// MapErrorToHTTP is the single point turning any failure into the
// HTTP-visible tuple of status code, message and detail list. The
// mapping is total: whatever the request path produced lands in exactly
// one bucket.
func MapErrorToHTTP(err error) (int, string, []FieldViolation) {
	var domErr *DomainError
	if !errors.As(err, &domErr) {
		return http.StatusInternalServerError, "Internal server error", nil
	}

	switch domErr.Code {
	case CodeValidation:
		return http.StatusBadRequest, domErr.Message, domErr.Details
	case CodeInvalidAddressID:
		return http.StatusBadRequest, domErr.Message, nil
	case CodeDuplicatePhone, CodeDuplicateCustomer, CodeDuplicateCoordinates:
		return http.StatusConflict, domErr.Message, nil
	case CodeAddressNotFound:
		return http.StatusNotFound, domErr.Message, nil
	default:
		// Storage and unclassified failures must not leak internals.
		return http.StatusInternalServerError, "Internal server error", nil
	}
}
