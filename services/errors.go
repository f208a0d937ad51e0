package services

import (
	"errors"
	"fmt"
)

// Kind classifies a service failure. Every operation surfaces exactly one
// kind; none is retried internally. Unavailable marks unexpected
// repository failures the caller may retry as a whole.
type Kind int

const (
	KindInvalidArgument Kind = iota + 1
	KindNotFound
	KindConflict
	KindForbidden
	KindUnavailable
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of a service error, or KindUnavailable for any
// other non-nil error.
func KindOf(err error) Kind {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Kind
	}
	if err != nil {
		return KindUnavailable
	}
	return 0
}

func invalidArgument(msg string) error {
	return &Error{Kind: KindInvalidArgument, Message: msg}
}

func notFound(msg string) error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func conflict(msg string) error {
	return &Error{Kind: KindConflict, Message: msg}
}

func forbidden(msg string) error {
	return &Error{Kind: KindForbidden, Message: msg}
}

func unavailable(msg string, err error) error {
	return &Error{Kind: KindUnavailable, Message: msg, Err: err}
}

// wrapRepoErr passes service errors through untouched and turns anything
// else into Unavailable.
func wrapRepoErr(err error, msg string) error {
	if err == nil {
		return nil
	}
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return err
	}
	return unavailable(msg, err)
}
