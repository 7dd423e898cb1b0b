// errors.go classifies operation failures into the Error record.
//
// Every operation reports failures the same way: the error is returned to
// the surface, which renders it with Describe. The kind names follow the
// exception classes of the official Hyperspell SDKs so hosts see the same
// vocabulary whichever adapter they run.

package adapter

import (
	"errors"
	"net/http"

	"github.com/hyperspell/hyperspell-mcp/internal/hyperspell"
	"github.com/hyperspell/hyperspell-mcp/internal/record"
)

// ErrInvalidInput indicates a missing or malformed operation argument.
var ErrInvalidInput = errors.New("invalid input")

// Describe converts err into the structured Error record.
func Describe(err error) record.Error {
	return record.Error{Kind: Kind(err), Message: err.Error()}
}

// Kind names the class of failure carried by err.
func Kind(err error) string {
	var apiErr *hyperspell.APIError
	switch {
	case errors.As(err, &apiErr):
		return statusKind(apiErr.Status)
	case errors.Is(err, hyperspell.ErrTimeout):
		return "APITimeoutError"
	case errors.Is(err, hyperspell.ErrConnection):
		return "APIConnectionError"
	case errors.Is(err, hyperspell.ErrDecode):
		return "DecodeError"
	case errors.Is(err, record.ErrMapping):
		return "MappingError"
	case errors.Is(err, ErrInvalidInput), errors.Is(err, hyperspell.ErrInvalidParams):
		return "InvalidInputError"
	default:
		return "Error"
	}
}

func statusKind(status int) string {
	switch {
	case status == http.StatusBadRequest:
		return "BadRequestError"
	case status == http.StatusUnauthorized:
		return "AuthenticationError"
	case status == http.StatusForbidden:
		return "PermissionDeniedError"
	case status == http.StatusNotFound:
		return "NotFoundError"
	case status == http.StatusConflict:
		return "ConflictError"
	case status == http.StatusUnprocessableEntity:
		return "UnprocessableEntityError"
	case status == http.StatusTooManyRequests:
		return "RateLimitError"
	case status >= http.StatusInternalServerError:
		return "InternalServerError"
	default:
		return "APIStatusError"
	}
}
