package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var ErrNotFound = errors.New("category not found")

// RequestError is returned when the backend answers with a non-2xx status.
type RequestError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *RequestError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s categories: HTTP %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s categories: HTTP %d: %s", e.Op, e.StatusCode, e.Message)
}

func (e *RequestError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// errorMessage pulls a human readable message out of an error body.
// Backends answer with {"error": "..."}, {"message": "..."} or plain text.
func errorMessage(body string) string {
	body = strings.TrimSpace(body)
	if body == "" {
		return ""
	}

	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal([]byte(body), &payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
	}

	const maxLen = 200
	if len(body) > maxLen {
		return body[:maxLen] + "..."
	}
	return body
}
