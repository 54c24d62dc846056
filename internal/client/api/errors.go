package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/studyhub/studyhub-cli/internal/common"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrUnavailable  = errors.New("server unavailable")
)

// APIError carries the status code and backend-provided message of a non-2xx
// response. It unwraps to the matching sentinel so callers can use errors.Is.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status %d", e.Status)
	}
	return fmt.Sprintf("api error: status %d: %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error {
	switch {
	case e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden:
		return ErrUnauthorized
	case e.Status == http.StatusNotFound:
		return common.ErrNotFound
	case e.Status >= http.StatusInternalServerError:
		return ErrUnavailable
	}
	return nil
}
