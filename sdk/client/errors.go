package client

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

// ErrNetwork matches every transport-level failure returned by the client.
var ErrNetwork = errors.New("network error")

// NetworkError represents a request that never produced an HTTP response.
type NetworkError struct {
	Operation string
	Cause     error
}

func (e *NetworkError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("network error during %s: %v", e.Operation, e.Cause)
	}
	return fmt.Sprintf("network error during %s", e.Operation)
}

func (e *NetworkError) Is(target error) bool {
	return target == ErrNetwork
}

func (e *NetworkError) Unwrap() error {
	return e.Cause
}

// APIError represents a non-success response returned by the service.
type APIError struct {
	Operation string
	Status    int
	Message   string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e == nil {
		return "<nil>"
	}
	prefix := ""
	if e.Operation != "" {
		prefix = e.Operation + ": "
	}
	switch {
	case e.Status == http.StatusUnauthorized:
		return fmt.Sprintf("%sauthentication failed: check the Julep API key (status %d)", prefix, e.Status)
	case e.Status == http.StatusForbidden:
		return fmt.Sprintf("%spermission denied (status %d)", prefix, e.Status)
	case e.Message != "":
		return fmt.Sprintf("%s%s (status %d)", prefix, e.Message, e.Status)
	default:
		return fmt.Sprintf("%srequest failed with status %d", prefix, e.Status)
	}
}

// IsNotFound reports whether err is an APIError with status 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

func toAPIError(operation string, resp *resty.Response) *APIError {
	return &APIError{
		Operation: operation,
		Status:    resp.StatusCode(),
		Message:   extractMessage(resp.Body()),
	}
}

// extractMessage pulls a human readable message out of an error body.
func extractMessage(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	if !gjson.ValidBytes(body) {
		return strings.TrimSpace(string(body))
	}
	for _, path := range []string{"detail.0.msg", "detail", "message", "error.message", "error"} {
		result := gjson.GetBytes(body, path)
		if result.Exists() && result.Type == gjson.String && result.String() != "" {
			return result.String()
		}
	}
	return ""
}
