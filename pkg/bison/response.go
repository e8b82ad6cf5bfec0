package bison

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"unicode/utf8"
)

type Outcome string

const (
	OutcomeSuccess         Outcome = "success"
	OutcomeTerminalFailure Outcome = "terminal_failure"
)

// Response is the normalized result of one logical API call.
type Response struct {
	ID string

	Status      int
	ContentType string

	// Body holds the decoded JSON document. Non-JSON success bodies are
	// substituted by {"raw": <excerpt>}.
	Body any

	Excerpt string

	Attempts int
	Outcome  Outcome

	Err *Error

	data []byte
}

func (r *Response) Retries() int {
	if r.Attempts <= 1 {
		return 0
	}

	return r.Attempts - 1
}

func (r *Response) Decode(v any) error {
	if r.Err != nil {
		return r.Err
	}

	if len(r.data) == 0 {
		return nil
	}

	return json.Unmarshal(r.data, v)
}

// classify turns one HTTP exchange into a response. The returned error is nil
// on success.
func classify(method, url string, status int, contentType string, data []byte, limit int) (*Response, *Error) {
	resp := &Response{
		Status:      status,
		ContentType: contentType,
	}

	text := bytes.TrimSpace(data)

	if status >= 200 && status < 300 {
		if len(text) == 0 {
			resp.Body = map[string]any{}
			resp.data = []byte("{}")

			return resp, nil
		}

		// bodies that are not JSON, or fail to decode, still count as success
		if looksJSON(contentType, text) {
			if body, err := decodeJSON(text); err == nil {
				resp.Body = body
				resp.data = text

				return resp, nil
			}
		}

		resp.Excerpt = excerpt(text, limit)
		resp.Body = map[string]any{"raw": resp.Excerpt}
		resp.data, _ = json.Marshal(resp.Body)

		return resp, nil
	}

	e := &Error{
		Kind: statusKind(status),

		Status: status,
		Method: method,
		URL:    url,
	}

	if body, err := decodeJSON(text); err == nil && len(text) > 0 {
		resp.Body = body

		e.Message = errorMessage(body)

		if status == http.StatusUnprocessableEntity {
			e.Fields = errorFields(body)
		}

		if e.Message == "" && len(e.Fields) == 0 {
			e.Excerpt = excerpt(text, limit)
		}
	} else {
		e.Excerpt = excerpt(text, limit)
	}

	resp.Excerpt = e.Excerpt

	return resp, e
}

func looksJSON(contentType string, text []byte) bool {
	if strings.Contains(strings.ToLower(contentType), "json") {
		return true
	}

	return len(text) > 0 && (text[0] == '{' || text[0] == '[')
}

func decodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any

	if err := dec.Decode(&v); err != nil {
		return nil, err
	}

	return v, nil
}

// excerpt returns at most limit bytes of valid UTF-8 text, cut on a rune boundary.
func excerpt(data []byte, limit int) string {
	if limit <= 0 {
		limit = DefaultExcerptBytes
	}

	if len(data) > limit {
		cut := limit

		for cut > 0 && !utf8.RuneStart(data[cut]) {
			cut--
		}

		data = data[:cut]
	}

	// each invalid sequence collapses into one byte, so the bound holds
	return strings.ToValidUTF8(string(data), "?")
}

func errorMessage(body any) string {
	m, ok := body.(map[string]any)

	if !ok {
		return ""
	}

	for _, key := range []string{"message", "error", "detail"} {
		switch v := m[key].(type) {
		case string:
			return v

		case map[string]any:
			if s, ok := v["message"].(string); ok {
				return s
			}
		}
	}

	return ""
}

func errorFields(body any) []FieldError {
	m, ok := body.(map[string]any)

	if !ok {
		return nil
	}

	var result []FieldError

	switch errs := m["errors"].(type) {
	case map[string]any:
		for field, val := range errs {
			result = append(result, FieldError{
				Field:    field,
				Messages: messages(val),
			})
		}

	case []any:
		for _, item := range errs {
			if obj, ok := item.(map[string]any); ok {
				field, _ := obj["field"].(string)

				result = append(result, FieldError{
					Field:    field,
					Messages: messages(obj["message"]),
				})

				continue
			}

			result = append(result, FieldError{
				Messages: messages(item),
			})
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Field < result[j].Field
	})

	return result
}

func messages(val any) []string {
	switch v := val.(type) {
	case nil:
		return nil

	case string:
		return []string{v}

	case []any:
		var result []string

		for _, item := range v {
			result = append(result, messages(item)...)
		}

		return result
	}

	return []string{fmt.Sprint(val)}
}
