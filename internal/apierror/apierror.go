// Package apierror decodes the backend's error envelope into a typed error.
// Every 4xx/5xx response from the SPOS API carries
// {statusCode, message: string | string[], error}: message is a string for
// simple failures and an array for validation failures, so decoding goes
// through a custom unmarshaler.
package apierror

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Messages accepts both a bare string and an array of strings.
type Messages []string

func (m *Messages) UnmarshalJSON(data []byte) error {
	var many []string
	if err := json.Unmarshal(data, &many); err == nil {
		*m = many
		return nil
	}
	var one string
	if err := json.Unmarshal(data, &one); err != nil {
		return err
	}
	if one != "" {
		*m = Messages{one}
	}
	return nil
}

// ResponseError is the client-side view of a failed API call.
type ResponseError struct {
	StatusCode int      `json:"statusCode"`
	Kind       string   `json:"error"`
	Messages   Messages `json:"message"`
}

func (e *ResponseError) Error() string {
	if len(e.Messages) > 0 {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Messages[0])
	}
	if e.Kind != "" {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Kind)
	}
	return fmt.Sprintf("api error %d", e.StatusCode)
}

// First returns the first structured message, or fallback when the payload
// carried none. This is what gets shown to the cashier.
func (e *ResponseError) First(fallback string) string {
	if len(e.Messages) > 0 {
		return e.Messages[0]
	}
	return fallback
}

// Decode builds a ResponseError from a raw response body. A body that is not
// the expected envelope still yields a usable error with the status code.
func Decode(statusCode int, body []byte) *ResponseError {
	e := &ResponseError{StatusCode: statusCode}
	if len(body) > 0 {
		_ = json.Unmarshal(body, e)
	}
	if e.StatusCode == 0 {
		e.StatusCode = statusCode
	}
	return e
}

// FirstMessage unwraps err as a ResponseError and returns its first message,
// or fallback for any other error (network failures, local validation).
func FirstMessage(err error, fallback string) string {
	var re *ResponseError
	if errors.As(err, &re) {
		return re.First(fallback)
	}
	return fallback
}
