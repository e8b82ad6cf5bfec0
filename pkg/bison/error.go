package bison

import (
	"fmt"
	"net/http"
	"strings"
)

type ErrorKind string

const (
	ErrorKindTransient  ErrorKind = "transient_network_failure"
	ErrorKindClient     ErrorKind = "client_error"
	ErrorKindValidation ErrorKind = "validation_error"
	ErrorKindServer     ErrorKind = "server_error"
	ErrorKindMalformed  ErrorKind = "malformed_response_body"
	ErrorKindCanceled   ErrorKind = "canceled"
)

type FieldError struct {
	Field    string   `json:"field"`
	Messages []string `json:"messages"`
}

// Error is the classified failure of one logical API call, after retries.
type Error struct {
	Kind ErrorKind `json:"kind"`

	Status int    `json:"status,omitempty"`
	Method string `json:"method"`
	URL    string `json:"url"`

	Message string       `json:"message,omitempty"`
	Fields  []FieldError `json:"fields,omitempty"`
	Excerpt string       `json:"excerpt,omitempty"`

	Attempts int `json:"attempts"`
}

func (e *Error) Error() string {
	var sb strings.Builder

	sb.WriteString(e.Method)
	sb.WriteString(" ")
	sb.WriteString(e.URL)
	sb.WriteString(": ")

	if e.Status > 0 {
		fmt.Fprintf(&sb, "%d %s", e.Status, http.StatusText(e.Status))
	} else {
		sb.WriteString(string(e.Kind))
	}

	if e.Message != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Message)
	}

	for _, f := range e.Fields {
		fmt.Fprintf(&sb, "; %s: %s", f.Field, strings.Join(f.Messages, ", "))
	}

	if e.Message == "" && len(e.Fields) == 0 && e.Excerpt != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Excerpt)
	}

	return sb.String()
}

func (e *Error) Retryable() bool {
	switch e.Kind {
	case ErrorKindTransient:
		return true

	case ErrorKindServer:
		return retryableStatus(e.Status)

	case ErrorKindClient:
		return e.Status == http.StatusTooManyRequests
	}

	return false
}

func statusKind(status int) ErrorKind {
	switch {
	case status == http.StatusUnprocessableEntity:
		return ErrorKindValidation

	case status >= 500:
		return ErrorKindServer
	}

	return ErrorKindClient
}

func (e *Error) ErrorDetail() any {
	return e
}
