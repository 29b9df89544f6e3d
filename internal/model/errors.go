package model

import "fmt"

// Error codes for parse failures
const (
	CodeUnsupportedContainer = "UNSUPPORTED_CONTAINER"
	CodeUnreadableArchive    = "UNREADABLE_ARCHIVE"
	CodeNoXMLInArchive       = "NO_XML_IN_ARCHIVE"
	CodeMemberTooLarge       = "MEMBER_TOO_LARGE"
	CodeMalformedXML         = "MALFORMED_XML"
	CodeNoInvoiceRoot        = "NO_INVOICE_ROOT"
	CodeInvalidNumber        = "INVALID_NUMBER"
)

// Sentinels for errors.Is; they match any error of the same type and code
var (
	ErrUnsupportedContainer = &ContainerError{Code: CodeUnsupportedContainer}
	ErrUnreadableArchive    = &ContainerError{Code: CodeUnreadableArchive}
	ErrNoXMLInArchive       = &ContainerError{Code: CodeNoXMLInArchive}
	ErrMemberTooLarge       = &ContainerError{Code: CodeMemberTooLarge}
	ErrMalformedXML         = &StructureError{Code: CodeMalformedXML}
	ErrNoInvoiceRoot        = &StructureError{Code: CodeNoInvoiceRoot}
	ErrInvalidNumber        = &FieldError{Code: CodeInvalidNumber}
)

// ContainerError reports an input that could not be opened as bare XML or as
// a zip archive holding an XML member
type ContainerError struct {
	Code    string
	Name    string
	Message string
	Cause   error
}

func (e *ContainerError) Error() string {
	return formatError(e.Code, e.Name, e.Message, e.Cause)
}

func (e *ContainerError) Unwrap() error {
	return e.Cause
}

// Is matches another ContainerError with the same code
func (e *ContainerError) Is(target error) bool {
	t, ok := target.(*ContainerError)
	return ok && t.Code == e.Code
}

// NewContainerError creates a new container error
func NewContainerError(code, name, message string, cause error) *ContainerError {
	return &ContainerError{
		Code:    code,
		Name:    name,
		Message: message,
		Cause:   cause,
	}
}

// StructureError reports XML that is not a recognizable invoice or credit note
type StructureError struct {
	Code    string
	Element string
	Message string
	Cause   error
}

func (e *StructureError) Error() string {
	return formatError(e.Code, e.Element, e.Message, e.Cause)
}

func (e *StructureError) Unwrap() error {
	return e.Cause
}

// Is matches another StructureError with the same code
func (e *StructureError) Is(target error) bool {
	t, ok := target.(*StructureError)
	return ok && t.Code == e.Code
}

// NewStructureError creates a new structure error
func NewStructureError(code, element, message string, cause error) *StructureError {
	return &StructureError{
		Code:    code,
		Element: element,
		Message: message,
		Cause:   cause,
	}
}

// FieldError reports a present but unparseable schema-numeric field
type FieldError struct {
	Code  string
	Field string
	Value string
	Cause error
}

func (e *FieldError) Error() string {
	return formatError(e.Code, e.Field, fmt.Sprintf("invalid value %q", e.Value), e.Cause)
}

func (e *FieldError) Unwrap() error {
	return e.Cause
}

// Is matches another FieldError with the same code
func (e *FieldError) Is(target error) bool {
	t, ok := target.(*FieldError)
	return ok && t.Code == e.Code
}

// NewFieldError creates a new field error
func NewFieldError(field, value string, cause error) *FieldError {
	return &FieldError{
		Code:  CodeInvalidNumber,
		Field: field,
		Value: value,
		Cause: cause,
	}
}

func formatError(code, subject, message string, cause error) string {
	switch {
	case subject != "" && cause != nil:
		return fmt.Sprintf("[%s] %s: %s (%v)", code, subject, message, cause)
	case subject != "":
		return fmt.Sprintf("[%s] %s: %s", code, subject, message)
	case cause != nil:
		return fmt.Sprintf("[%s] %s (%v)", code, message, cause)
	default:
		return fmt.Sprintf("[%s] %s", code, message)
	}
}
