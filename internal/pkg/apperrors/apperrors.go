package apperrors

import "errors"

// Kind classifies an error for callers and for HTTP mapping. All four
// recoverable kinds must stay distinguishable; Internal is everything else.
type Kind int

const (
	Internal Kind = iota
	NotFound
	Forbidden
	Conflict
	InvalidArgument
)

// Error is a classified error with a caller-facing message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func NewNotFound(msg string) error {
	return &Error{Kind: NotFound, Message: msg}
}

func NewForbidden(msg string) error {
	return &Error{Kind: Forbidden, Message: msg}
}

func NewConflict(msg string) error {
	return &Error{Kind: Conflict, Message: msg}
}

func NewInvalidArgument(msg string) error {
	return &Error{Kind: InvalidArgument, Message: msg}
}

// KindOf returns the kind of err, or Internal for unclassified errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

func IsNotFound(err error) bool        { return KindOf(err) == NotFound }
func IsForbidden(err error) bool       { return KindOf(err) == Forbidden }
func IsConflict(err error) bool        { return KindOf(err) == Conflict }
func IsInvalidArgument(err error) bool { return KindOf(err) == InvalidArgument }
