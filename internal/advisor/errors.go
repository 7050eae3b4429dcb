package advisor

import (
	"context"
	"errors"
	"fmt"
	"net"

	"google.golang.org/genai"
)

// Kind classifies why an advisory call failed.
type Kind string

const (
	KindTransport Kind = "transport"
	KindService   Kind = "service"
	KindTimeout   Kind = "timeout"
	KindMalformed Kind = "malformed"
)

// Error is returned by every Client failure.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("advisor %s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the kind of err, or transport when err is not an *Error.
func KindOf(err error) Kind {
	var aerr *Error
	if errors.As(err, &aerr) {
		return aerr.Kind
	}
	return KindTransport
}

func malformed(format string, args ...any) *Error {
	return &Error{Kind: KindMalformed, Err: fmt.Errorf(format, args...)}
}

// classify maps a failed remote call onto an *Error.
func classify(err error) *Error {
	var aerr *Error
	if errors.As(err, &aerr) {
		return aerr
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: KindTimeout, Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &Error{Kind: KindTimeout, Err: err}
	}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &Error{Kind: KindService, Err: err}
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return &Error{Kind: KindService, Err: err}
	}
	return &Error{Kind: KindTransport, Err: err}
}
