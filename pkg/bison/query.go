package bison

import (
	"encoding/json"
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strconv"
)

// EncodeQuery flattens params using bracket notation: lists become k[0]=v and
// maps become k[sub]=v, recursively. Nil values are skipped.
func EncodeQuery(params map[string]any) url.Values {
	values := url.Values{}

	keys := make([]string, 0, len(params))

	for k := range params {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	for _, k := range keys {
		putQuery(values, k, params[k])
	}

	return values
}

func putQuery(values url.Values, prefix string, val any) {
	if val == nil {
		return
	}

	switch v := val.(type) {
	case string:
		values.Add(prefix, v)
		return

	case json.Number:
		values.Add(prefix, v.String())
		return

	case bool:
		values.Add(prefix, strconv.FormatBool(v))
		return

	case float64:
		values.Add(prefix, formatFloat(v))
		return

	case float32:
		values.Add(prefix, formatFloat(float64(v)))
		return
	}

	rv := reflect.ValueOf(val)

	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return
		}

		putQuery(values, prefix, rv.Elem().Interface())

	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return
		}

		for i := 0; i < rv.Len(); i++ {
			putQuery(values, fmt.Sprintf("%s[%d]", prefix, i), rv.Index(i).Interface())
		}

	case reflect.Map:
		keys := rv.MapKeys()

		sort.Slice(keys, func(i, j int) bool {
			return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
		})

		for _, k := range keys {
			putQuery(values, fmt.Sprintf("%s[%v]", prefix, k.Interface()), rv.MapIndex(k).Interface())
		}

	default:
		values.Add(prefix, fmt.Sprint(val))
	}
}

func formatFloat(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}

	return strconv.FormatFloat(v, 'f', -1, 64)
}
