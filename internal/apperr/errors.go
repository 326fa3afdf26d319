// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package apperr defines the error kinds surfaced to the user. Every kind is
// terminal for the action that produced it and none is fatal to the client.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a user-facing failure.
type Kind string

const (
	KindMissingInput Kind = "missing_input"
	KindInvalidURL   Kind = "invalid_url"
	KindConnection   Kind = "connection"
	KindService      Kind = "service"
	KindFetch        Kind = "fetch"
	KindValidation   Kind = "validation"
)

// Error is a classified failure. Message is what the user sees; Op names the
// operation and Cause holds the underlying error, if any.
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// New returns an Error without a cause.
func New(kind Kind, op, message string) *Error {
	return &Error{Kind: kind, Op: op, Message: message}
}

// Wrap classifies err. A nil err yields nil. An err that is already an
// *Error keeps its original kind.
func Wrap(kind Kind, op, message string, err error) error {
	if err == nil {
		return nil
	}
	var typed *Error
	if errors.As(err, &typed) {
		return typed
	}
	return &Error{Kind: kind, Op: op, Message: message, Cause: err}
}

// IsKind reports whether err, or any error it wraps, is an *Error of kind.
func IsKind(err error, kind Kind) bool {
	var typed *Error
	if errors.As(err, &typed) {
		return typed.Kind == kind
	}
	return false
}

// KindOf returns the kind of err, or "" when err is not classified.
func KindOf(err error) Kind {
	var typed *Error
	if errors.As(err, &typed) {
		return typed.Kind
	}
	return ""
}

// UserMessage returns the text to show the user for err. Classified errors
// show their Message; anything else shows err.Error().
func UserMessage(err error) string {
	var typed *Error
	if errors.As(err, &typed) {
		return typed.Message
	}
	return err.Error()
}
