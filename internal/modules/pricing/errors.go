package pricing

import "errors"

// Sentinels returned by stores and providers; the orchestrator maps them to user-facing errors.
var (
	ErrRecordNotFound = errors.New("record not found")
	ErrNoRateCard     = errors.New("rate card not found")
)

type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindNotFound   ErrorKind = "not_found"
	KindDownstream ErrorKind = "downstream"
	KindInternal   ErrorKind = "internal"
)

// Error is the only error shape the orchestrator surfaces. Message is shown to callers;
// Err keeps the underlying cause for logs.
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

func (e *Error) Unwrap() error { return e.Err }

func validationError(msg string) error {
	return &Error{Kind: KindValidation, Message: msg}
}

func notFoundError(msg string, cause error) error {
	return &Error{Kind: KindNotFound, Message: msg, Err: cause}
}

func downstreamError(msg string, cause error) error {
	return &Error{Kind: KindDownstream, Message: msg, Err: cause}
}

// lookupError classifies a store or provider failure: missing records become
// NotFound with notFoundMsg, anything else is a downstream failure.
func lookupError(err error, notFoundMsg, downstreamMsg string) error {
	var perr *Error
	if errors.As(err, &perr) {
		return err
	}
	if errors.Is(err, ErrRecordNotFound) || errors.Is(err, ErrNoRateCard) {
		return notFoundError(notFoundMsg, err)
	}
	return downstreamError(downstreamMsg, err)
}
