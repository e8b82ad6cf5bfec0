package bison

import (
	"github.com/adrianliechti/emailbison-mcp/pkg/bison"
	"github.com/adrianliechti/emailbison-mcp/pkg/tool"
)

func positive(name string, id int64) error {
	if id < 1 {
		return tool.InvalidArgument(name, "must be a positive integer")
	}

	return nil
}

func positives(name string, ids []int64, required bool) error {
	if required && len(ids) == 0 {
		return tool.InvalidArgument(name, "must contain at least one id")
	}

	for i, id := range ids {
		if id < 1 {
			return tool.InvalidArgument(name, "item %d must be a positive integer", i)
		}
	}

	return nil
}

func optionalDate(name, value string) error {
	if value == "" || bison.IsDate(value) {
		return nil
	}

	return tool.InvalidArgument(name, "must be a date in YYYY-MM-DD format")
}

// Section is one independently fetched part of a composite result.
type Section[T any] struct {
	Data  *T            `json:"data,omitempty"`
	Error *tool.Failure `json:"error,omitempty"`
}

func section[T any](data *T, err error) Section[T] {
	if err != nil {
		return Section[T]{Error: tool.NewFailure(err)}
	}

	return Section[T]{Data: data}
}
