// Package domain defines the core domain models for ConnectUS.
package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a domain error with a structured error code.
//
// Message is the user-facing text. For field and command errors it is the
// exact fixed text shown to the user.
type DomainError struct {
	Code    string // Error code (e.g., "CU-FIELD-4001")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is() support for error comparison.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(details string) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithMessage returns a copy of the error carrying a different message.
// The code is kept, so errors.Is still matches the original sentinel.
func (e *DomainError) WithMessage(message string) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: message,
		Details: e.Details,
		Cause:   e.Cause,
	}
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// IsDomainError checks if an error is a DomainError with the given code.
// If code is empty, it only checks if the error is a DomainError.
func IsDomainError(err error, code string) bool {
	var de *DomainError
	if errors.As(err, &de) {
		if code == "" {
			return true
		}
		return de.Code == code
	}
	return false
}

// GetErrorCode extracts the error code from an error if it's a DomainError.
func GetErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// UserMessage returns the text to show a user for err.
// Domain errors yield their Message; anything else yields err.Error().
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var de *DomainError
	if errors.As(err, &de) {
		return de.Message
	}
	return err.Error()
}

// ============================================================================
// Field Errors (FIELD)
// ============================================================================

var (
	ErrNameConstraints        = NewDomainError("CU-FIELD-4001", NameConstraints)
	ErrPhoneConstraints       = NewDomainError("CU-FIELD-4002", PhoneConstraints)
	ErrEmailConstraints       = NewDomainError("CU-FIELD-4003", EmailConstraints)
	ErrAddressConstraints     = NewDomainError("CU-FIELD-4004", AddressConstraints)
	ErrBirthdayConstraints    = NewDomainError("CU-FIELD-4005", BirthdayConstraints)
	ErrInstagramConstraints   = NewDomainError("CU-FIELD-4006", InstagramConstraints)
	ErrTelegramConstraints    = NewDomainError("CU-FIELD-4007", TelegramConstraints)
	ErrWhatsAppConstraints    = NewDomainError("CU-FIELD-4008", WhatsAppConstraints)
	ErrRemarkConstraints      = NewDomainError("CU-FIELD-4010", RemarkConstraints)
	ErrModuleConstraints      = NewDomainError("CU-FIELD-4011", ModuleConstraints)
	ErrCcaConstraints         = NewDomainError("CU-FIELD-4012", CcaConstraints)
	ErrCcaPositionConstraints = NewDomainError("CU-FIELD-4013", CcaPositionConstraints)
	ErrMajorConstraints       = NewDomainError("CU-FIELD-4014", MajorConstraints)

	// ErrInvalidIndex indicates an index that is not a non-zero unsigned integer.
	ErrInvalidIndex = NewDomainError("CU-FIELD-4020", "Index is not a non-zero unsigned integer.")
)

// ============================================================================
// Command Errors (CMD)
// ============================================================================

// MessageInvalidCommandFormat is the template for command format errors.
const MessageInvalidCommandFormat = "Invalid command format! \n%s"

var (
	// ErrInvalidCommandFormat indicates the arguments do not fit the command grammar.
	// Use InvalidCommandFormat to attach the command usage.
	ErrInvalidCommandFormat = NewDomainError("CU-CMD-4000", "Invalid command format!")

	// ErrUnknownCommand indicates the command word is not recognised.
	ErrUnknownCommand = NewDomainError("CU-CMD-4001", "Unknown command")

	// ErrNotEdited indicates an edit command without any field.
	ErrNotEdited = NewDomainError("CU-CMD-4002", "At least one field to edit must be provided.")

	// ErrNoTagGiven indicates a tag command without any tag.
	ErrNoTagGiven = NewDomainError("CU-CMD-4003", "At least one tag must be provided.")
)

// InvalidCommandFormat returns a format error carrying the command usage.
func InvalidCommandFormat(usage string) *DomainError {
	return ErrInvalidCommandFormat.WithMessage(fmt.Sprintf(MessageInvalidCommandFormat, usage))
}

// ============================================================================
// Model Errors (MODEL)
// ============================================================================

var (
	// ErrDuplicatePerson indicates the person already exists.
	ErrDuplicatePerson = NewDomainError("CU-MODEL-4090", "This person already exists in the address book")

	// ErrPersonNotFound indicates the person is not in the address book.
	ErrPersonNotFound = NewDomainError("CU-MODEL-4040", "The person could not be found in the address book")

	// ErrInvalidPersonIndex indicates the displayed index is out of range.
	ErrInvalidPersonIndex = NewDomainError("CU-MODEL-4041", "The person index provided is invalid")

	// ErrInvalidTagIndex indicates the tag index is out of range.
	ErrInvalidTagIndex = NewDomainError("CU-MODEL-4042", "The tag index provided is invalid")
)

// ============================================================================
// System Errors (SYS)
// ============================================================================

var (
	// ErrInternal indicates an internal error.
	ErrInternal = NewDomainError("CU-SYS-5000", "internal error")

	// ErrStorageError indicates a storage layer error.
	ErrStorageError = NewDomainError("CU-SYS-5001", "storage error")
)
