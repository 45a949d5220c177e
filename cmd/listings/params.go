package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"github.com/alfredjeanlab/listings/internal/config"
	"github.com/alfredjeanlab/listings/internal/model"
	"github.com/alfredjeanlab/listings/internal/query"
)

// splitParam splits "key=value" at the first '='. The key must be non-empty.
func splitParam(s string) (string, string, bool) {
	i := strings.IndexByte(s, '=')
	if i <= 0 {
		return "", "", false
	}
	return strings.TrimSpace(s[:i]), s[i+1:], true
}

// parseParams converts key=value arguments into search parameters. Values
// that are JSON literals (arrays, objects, quoted strings, true, false,
// null, numbers) are decoded, so "favorited_ids=null" and
// "favorited_ids=[]" stay distinct; everything else is kept as a string.
// A repeated key keeps its last value.
func parseParams(pairs []string) (query.Params, error) {
	params := make(query.Params, len(pairs))
	for _, p := range pairs {
		k, v, ok := splitParam(p)
		if !ok {
			return nil, fmt.Errorf("invalid parameter %q: expected key=value", p)
		}
		params[k] = decodeValue(v)
	}
	return params, nil
}

func decodeValue(v string) any {
	if !looksLikeJSON(v) {
		return v
	}
	dec := json.NewDecoder(bytes.NewReader([]byte(v)))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil || dec.More() {
		return v
	}
	return numbers(out)
}

// numbers turns json.Number values into int64 or float64 so parameters
// encode as TOML numbers when saved.
func numbers(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case []any:
		for i := range t {
			t[i] = numbers(t[i])
		}
	case map[string]any:
		for k := range t {
			t[k] = numbers(t[k])
		}
	}
	return v
}

func looksLikeJSON(v string) bool {
	if v == "" {
		return false
	}
	switch v[0] {
	case '{', '[', '"':
		return true
	}
	if v == "true" || v == "false" || v == "null" {
		return true
	}
	return (v[0] == '-' || unicode.IsDigit(rune(v[0]))) && json.Valid([]byte(v))
}

// mergeParams returns base overlaid with override.
func mergeParams(base, override query.Params) query.Params {
	out := make(query.Params, len(base)+len(override))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range override {
		out[k] = v
	}
	return out
}

// searchParams loads the named saved search, if any, and overlays the
// key=value arguments on it.
func searchParams(savedName string, args []string) (query.Params, error) {
	params := query.Params{}
	if savedName != "" {
		searches, err := config.LoadSearches(cfg.SearchesFile)
		if err != nil {
			return nil, err
		}
		saved, ok := searches.Get(savedName)
		if !ok {
			return nil, fmt.Errorf("saved search %q not found", savedName)
		}
		params = saved.Params
	}
	cli, err := parseParams(args)
	if err != nil {
		return nil, err
	}
	return mergeParams(params, cli), nil
}

// actingUser builds the identity a search runs as. No id and no admin flag
// is an anonymous visitor.
func actingUser(id string, admin bool) *model.User {
	if id == "" && !admin {
		return nil
	}
	if id == "" {
		id = "admin"
	}
	return &model.User{ID: id, Admin: admin}
}
