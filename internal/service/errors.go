package service

import (
	"errors"
	"strings"
)

// Category classifies a failed booking operation.  The transport layer
// maps each category to exactly one response status.
type Category int

const (
	CategoryBadRequest Category = iota
	CategoryNotFound
	CategoryForbidden
)

func (c Category) String() string {
	switch c {
	case CategoryNotFound:
		return "NOT_FOUND"
	case CategoryForbidden:
		return "FORBIDDEN"
	default:
		return "BAD_REQUEST"
	}
}

// Error is a categorized failure carrying human readable messages and,
// for BadRequest, the underlying cause.
type Error struct {
	Category Category
	Messages []string
	Err      error
}

func (e *Error) Error() string {
	msg := strings.Join(e.Messages, "; ")
	if e.Err != nil {
		if msg == "" {
			return e.Category.String() + ": " + e.Err.Error()
		}
		return e.Category.String() + ": " + msg + ": " + e.Err.Error()
	}
	return e.Category.String() + ": " + msg
}

func (e *Error) Unwrap() error { return e.Err }

// NotFound builds a NotFound error.
func NotFound(messages ...string) *Error {
	if len(messages) == 0 {
		messages = []string{"no result for this search"}
	}
	return &Error{Category: CategoryNotFound, Messages: messages}
}

// Forbidden builds a Forbidden error.
func Forbidden(messages ...string) *Error {
	return &Error{Category: CategoryForbidden, Messages: messages}
}

// BadRequest wraps a failure that has no explicit category.
func BadRequest(err error, messages ...string) *Error {
	return &Error{Category: CategoryBadRequest, Messages: messages, Err: err}
}

// AsError reports whether err carries a category and returns it.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// categorize passes categorized errors through and wraps anything else as
// BadRequest.
func categorize(err error) *Error {
	if e, ok := AsError(err); ok {
		return e
	}
	return BadRequest(err)
}
