package tool

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ArgumentError names the tool argument that failed validation.
type ArgumentError struct {
	Argument string
	Message  string
}

func (e *ArgumentError) Error() string {
	if e.Argument == "" {
		return "invalid arguments: " + e.Message
	}

	return "invalid argument " + e.Argument + ": " + e.Message
}

func InvalidArgument(name, format string, args ...any) error {
	return &ArgumentError{
		Argument: name,
		Message:  fmt.Sprintf(format, args...),
	}
}

// Decode maps loosely typed tool parameters onto a typed argument struct.
func Decode(parameters map[string]any, v any) error {
	if parameters == nil {
		parameters = map[string]any{}
	}

	data, err := json.Marshal(parameters)

	if err != nil {
		return &ArgumentError{Message: err.Error()}
	}

	if err := json.Unmarshal(data, v); err != nil {
		var typeErr *json.UnmarshalTypeError

		if errors.As(err, &typeErr) {
			name := typeErr.Field

			if i := strings.LastIndex(name, "."); i >= 0 {
				name = name[i+1:]
			}

			return InvalidArgument(name, "expected %s, got %s", describeType(typeErr.Type.Kind().String()), typeErr.Value)
		}

		return &ArgumentError{Message: err.Error()}
	}

	return nil
}

func describeType(kind string) string {
	switch {
	case strings.HasPrefix(kind, "int"), strings.HasPrefix(kind, "uint"):
		return "integer"

	case strings.HasPrefix(kind, "float"):
		return "number"

	case kind == "slice", kind == "array":
		return "array"

	case kind == "map", kind == "struct":
		return "object"

	case kind == "bool":
		return "boolean"
	}

	return kind
}

// Failure is the payload of a tool result whose execution failed.
type Failure struct {
	Error    string `json:"error"`
	Argument string `json:"argument,omitempty"`
	Detail   any    `json:"detail,omitempty"`
}

// NewFailure describes err. Errors exposing ErrorDetail() contribute a
// structured detail object.
func NewFailure(err error) *Failure {
	f := &Failure{
		Error: err.Error(),
	}

	var argErr *ArgumentError

	if errors.As(err, &argErr) {
		f.Argument = argErr.Argument
	}

	var detailed interface{ ErrorDetail() any }

	if errors.As(err, &detailed) {
		f.Detail = detailed.ErrorDetail()
	}

	return f
}
