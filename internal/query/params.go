package query

import (
	"reflect"
	"strings"
)

// Params maps a parameter name to its raw, untyped value. Values are usually
// strings, numbers, booleans, slices or nil, as decoded from a query string,
// JSON body or TOML file.
type Params map[string]any

// Present reports whether params[key] is present: non-nil and, for strings,
// slices and maps, non-empty. Whitespace-only strings are not present.
func (p Params) Present(key string) bool {
	return isPresent(p[key])
}

// NotAbsent reports whether params[key] is anything other than nil. Empty
// strings and empty collections count as not absent.
func (p Params) NotAbsent(key string) bool {
	return isNotAbsent(p[key])
}

func isPresent(v any) bool {
	if v == nil {
		return false
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t) != ""
	case []any:
		return len(t) > 0
	case []string:
		return len(t) > 0
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return false
		}
		return isPresent(rv.Elem().Interface())
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() > 0
	case reflect.String:
		return strings.TrimSpace(rv.String()) != ""
	}
	return true
}

func isNotAbsent(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map, reflect.Func, reflect.Chan:
		return !rv.IsNil()
	}
	return true
}

// appliesIfPresent gates a filter on every key being present.
func appliesIfPresent(keys ...string) func(Params) bool {
	return func(p Params) bool {
		for _, k := range keys {
			if !p.Present(k) {
				return false
			}
		}
		return true
	}
}

// appliesIfNotAbsent gates a filter on key being non-nil. Only favorited_ids
// uses it: an empty favorites list must still narrow the search to nothing.
func appliesIfNotAbsent(key string) func(Params) bool {
	return func(p Params) bool {
		return p.NotAbsent(key)
	}
}
