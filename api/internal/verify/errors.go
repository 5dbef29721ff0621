package verify

import (
	"errors"
	"fmt"
)

type Kind string

const (
	ConfigurationError Kind = "configuration"
	ValidationError    Kind = "validation"
	UpstreamError      Kind = "upstream"
	EmptyAnswerError   Kind = "empty_answer"
	NetworkError       Kind = "network"
)

// Messages returned to the caller. The mobile client shows them as-is.
const (
	MsgMissingAPIKey    = "API Key belum di-set di server!"
	MsgEmptyInput       = "Data nama/gambar kosong"
	MsgUpstreamRejected = "Google menolak request ini."
	MsgEmptyAnswer      = "AI diam saja (tidak ada jawaban text)."
)

// Error is the single error type produced along the verify path.
// Error() is the message that ends up in the {"error": ...} body.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Err }

// Is matches on Kind and Msg so sentinels below work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Msg == e.Msg
}

var (
	ErrMissingAPIKey = &Error{Kind: ConfigurationError, Msg: MsgMissingAPIKey}
	ErrEmptyInput    = &Error{Kind: ValidationError, Msg: MsgEmptyInput}
	ErrEmptyAnswer   = &Error{Kind: EmptyAnswerError, Msg: MsgEmptyAnswer}
)

func NewError(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// Errorf builds an Error whose message is formatted like fmt.Errorf; a %w verb
// is honoured for unwrapping.
func Errorf(kind Kind, format string, args ...any) *Error {
	wrapped := fmt.Errorf(format, args...)
	return &Error{Kind: kind, Msg: wrapped.Error(), Err: errors.Unwrap(wrapped)}
}

// KindOf returns the Kind of err. Errors that did not come from this package
// are treated as transport failures.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return NetworkError
}
