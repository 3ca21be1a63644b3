package client

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when a single-resource lookup answers 404.
var ErrNotFound = errors.New("client: resource not found")

// ErrKeyNotUsable is returned when a server public key is outside its
// notUsableBefore/expiry validity period.
var ErrKeyNotUsable = errors.New("client: public key not usable")

// maxErrorBody caps the response body echoed in ResponseError.Error.
const maxErrorBody = 512

// ResponseError is returned when the API answers with a status code the
// operation does not expect.
type ResponseError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *ResponseError) Error() string {
	body := e.Body
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody] + "..."
	}

	if body == "" {
		return fmt.Sprintf("client: unexpected response %s", e.Status)
	}

	return fmt.Sprintf("client: unexpected response %s: %s", e.Status, body)
}

// ValidationError is returned when input fails validation before any request
// is sent. Each violation reads "<field> <constraint>".
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "client: invalid input: " + strings.Join(e.Violations, "; ")
}
