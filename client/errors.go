package client

import (
	"errors"
	"fmt"
)

var (
	// ErrUnreachable covers transport failures: refused connections, DNS, timeouts.
	ErrUnreachable = errors.New("compute service unreachable")
	// ErrServiceStatus is wrapped by StatusError for non-2xx responses.
	ErrServiceStatus = errors.New("compute service returned an error")
	// ErrMalformedResponse means the payload failed schema or trace validation.
	ErrMalformedResponse = errors.New("malformed response from compute service")
	// ErrResponseTooLarge means the body exceeded the client's read budget.
	ErrResponseTooLarge = errors.New("response from compute service too large")
)

// StatusError carries a non-2xx response. Detail comes from the problem body
// when the service sent one.
type StatusError struct {
	Status int
	Detail string
}

func (e *StatusError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("HTTP %d", e.Status)
	}
	return fmt.Sprintf("HTTP %d - %s", e.Status, e.Detail)
}

func (e *StatusError) Unwrap() error { return ErrServiceStatus }

// FormatError turns a client error into the message shown to the user.
func FormatError(err error) string {
	var statusErr *StatusError
	switch {
	case errors.Is(err, ErrUnreachable):
		return "Compute service not reachable.\n→ Start it with 'algoviz serve' or point api_url at a running instance."

	case errors.As(err, &statusErr):
		switch statusErr.Status {
		case 400:
			return "The compute service rejected the input: " + statusErr.Detail
		case 429:
			return "The compute service is rate limiting requests. Try again in a moment."
		default:
			return "The compute service failed: " + statusErr.Error()
		}

	case errors.Is(err, ErrResponseTooLarge):
		return "The trace is too large to play back. Try a smaller input."

	case errors.Is(err, ErrMalformedResponse):
		return "The compute service sent a response that could not be played back."

	default:
		return err.Error()
	}
}
