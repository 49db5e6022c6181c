package exchange

import (
	"errors"
	"fmt"
)

//
// ErrorKind classifies a RemoteError. The classification is decided exactly once – at the point
// where the exchange's response is interpreted – so that callers never need to inspect messages.
//
type ErrorKind int

const (
	KindOther            ErrorKind = iota // The exchange reported a failure that has no special meaning to us.
	KindTransport                         // The request never produced a usable HTTP response.
	KindInvalidResponse                   // The exchange responded with something that could not be parsed.
	KindInvalidAPIKey                     // The exchange rejected the API key.
	KindInvalidSignature                  // The exchange rejected the request signature (i.e. the API secret).
)

func (o ErrorKind) String() string {
	return [...]string{"other", "transport", "invalid-response", "invalid-api-key", "invalid-signature"}[o]
}

//
// RemoteError represents a failure that was reported by (or occurred while talking to) a remote
// exchange API.
//
type RemoteError struct {
	Kind    ErrorKind
	Message string
	cause   error
}

func NewRemoteError(kind ErrorKind, message string) *RemoteError {
	return &RemoteError{
		Kind:    kind,
		Message: message,
	}
}

//
// WrapRemoteError builds a RemoteError of the specified kind around a lower-level error.
//
func WrapRemoteError(kind ErrorKind, message string, cause error) *RemoteError {
	return &RemoteError{
		Kind:    kind,
		Message: message,
		cause:   cause,
	}
}

func (o *RemoteError) Error() string {
	if o.cause != nil {
		return fmt.Sprintf("%s: %s", o.Message, o.cause)
	}

	return o.Message
}

func (o *RemoteError) Unwrap() error {
	return o.cause
}

//
// IsRemoteError returns the RemoteError found in the provided error's chain (if there is one).
//
func IsRemoteError(err error) (*RemoteError, bool) {
	var remoteErr *RemoteError

	if errors.As(err, &remoteErr) {
		return remoteErr, true
	}

	return nil, false
}
