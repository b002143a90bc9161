// File: travelgo/api/errors.go
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// Error is a non-2xx response from the API.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: %d %s", e.StatusCode, e.Message)
}

// IsAuth reports whether err is an authentication failure (bad or
// expired credential).
func IsAuth(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// parseError drains the body and extracts the server's message. The API
// answers with {"error": ...}, {"detail": ...} or a field-error map
// depending on the endpoint.
func parseError(resp *http.Response) error {
	apiErr := &Error{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return apiErr
	}
	var payload struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &payload) == nil {
		if payload.Error != "" {
			apiErr.Message = payload.Error
		} else if payload.Detail != "" {
			apiErr.Message = payload.Detail
		}
	}
	return apiErr
}
