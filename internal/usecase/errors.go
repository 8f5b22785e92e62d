package usecase

import "errors"

// ErrorKind classifies service failures so handlers can map them to
// responses without matching on message text.
type ErrorKind string

const (
	KindValidation    ErrorKind = "validation"
	KindNotFound      ErrorKind = "not_found"
	KindConfiguration ErrorKind = "configuration"
	KindCapacity      ErrorKind = "capacity"
	KindGenderSplit   ErrorKind = "gender_split_capacity"
	KindAuthenticity  ErrorKind = "authenticity"
)

type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func wrapError(kind ErrorKind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the classification from an error chain; unclassified
// errors report an empty kind.
func KindOf(err error) ErrorKind {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Kind
	}
	return ""
}
