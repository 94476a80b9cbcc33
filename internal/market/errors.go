package market

import "errors"

// Kind classifies a business-rule failure so the HTTP layer can pick a
// status code without matching message strings.
type Kind int

const (
	KindNotFound Kind = iota + 1
	KindInvalidState
	KindForbidden
	KindConflict
	KindInternal
)

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func notFound(msg string) error     { return &Error{Kind: KindNotFound, Message: msg} }
func invalidState(msg string) error { return &Error{Kind: KindInvalidState, Message: msg} }
func forbidden(msg string) error    { return &Error{Kind: KindForbidden, Message: msg} }
func conflict(msg string) error     { return &Error{Kind: KindConflict, Message: msg} }
func internal(msg string) error     { return &Error{Kind: KindInternal, Message: msg} }

// KindOf returns the kind of a market error, or 0 for any other error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
