// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"errors"
	"fmt"

	"github.com/danielhkuo/mock-ballot/models"
)

// Error kinds. Every error a Session returns is an *Error wrapping one of them.
var (
	ErrValidation       = errors.New("validation failed")
	ErrDuplicateVoter   = errors.New("voter has already voted")
	ErrOTPMismatch      = errors.New("otp mismatch")
	ErrSession          = errors.New("no active voter session")
	ErrWrongStage       = errors.New("operation not allowed in current stage")
	ErrCommitInProgress = errors.New("vote commit already in progress")
	ErrStorage          = errors.New("storage failure")

	// ErrSelection is the validation failure for an empty candidate choice.
	ErrSelection = fmt.Errorf("%w: no candidate selected", ErrValidation)
	// ErrStaleCommit means a reset ran while the vote was pending; the voter
	// has to register again.
	ErrStaleCommit = fmt.Errorf("%w: vote discarded by reset", ErrSession)
)

// Error carries the kind, the message shown to the voter, and an optional cause.
type Error struct {
	Kind    error
	Message models.Message
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Kind.Error() + ": " + e.Err.Error()
	}
	return e.Kind.Error() + ": " + e.Message.Text
}

func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

func newError(kind error, severity models.Severity, text string) *Error {
	return &Error{Kind: kind, Message: models.Message{Severity: severity, Text: text}}
}

// MessageFor returns the voter-facing message for err.
func MessageFor(err error) models.Message {
	var se *Error
	if errors.As(err, &se) {
		return se.Message
	}
	return models.Message{Severity: models.SeverityDanger, Text: "Something went wrong. Please try again."}
}
