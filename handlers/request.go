package handlers

import (
	"fmt"
	"math"
	"strings"

	"github.com/pocketbase/pocketbase/core"
	"github.com/spf13/cast"
)

// requestValues is a decoded JSON or form body.
type requestValues map[string]any

// bindValues reads a JSON, urlencoded or multipart body into a flat value
// map. Only body values are read so query filters never shadow them.
func bindValues(e *core.RequestEvent) (requestValues, error) {
	contentType := e.Request.Header.Get("Content-Type")

	if strings.HasPrefix(contentType, "application/json") {
		raw := map[string]any{}
		if err := e.BindBody(&raw); err != nil {
			return nil, fmt.Errorf("bind body: %w", err)
		}
		return requestValues(raw), nil
	}

	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := e.Request.ParseMultipartForm(1 << 20); err != nil {
			return nil, fmt.Errorf("parse multipart form: %w", err)
		}
	} else if err := e.Request.ParseForm(); err != nil {
		return nil, fmt.Errorf("parse form: %w", err)
	}

	values := requestValues{}
	for key, list := range e.Request.PostForm {
		if len(list) > 0 {
			values[key] = list[0]
		}
	}
	return values, nil
}

func (v requestValues) first(key string) any {
	raw := v[key]
	if list, ok := raw.([]any); ok {
		if len(list) == 0 {
			return nil
		}
		return list[0]
	}
	return raw
}

func (v requestValues) String(key string) string {
	return strings.TrimSpace(cast.ToString(v.first(key)))
}

// Float returns the numeric value of key. A missing or blank value is 0.
func (v requestValues) Float(key string) (float64, error) {
	raw := v.first(key)
	if s, ok := raw.(string); ok {
		raw = strings.TrimSpace(s)
		if raw == "" {
			return 0, nil
		}
	}
	if raw == nil {
		return 0, nil
	}
	f, err := cast.ToFloat64E(raw)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%s: not a number", key)
	}
	return f, nil
}

func (v requestValues) Int(key string) (int, error) {
	f, err := v.Float(key)
	if err != nil {
		return 0, err
	}
	if f != float64(int(f)) {
		return 0, fmt.Errorf("%s: not a whole number", key)
	}
	return int(f), nil
}

// Bool treats HTML checkbox values ("on") as true.
func (v requestValues) Bool(key string) bool {
	raw := v.first(key)
	if s, ok := raw.(string); ok && strings.EqualFold(strings.TrimSpace(s), "on") {
		return true
	}
	return cast.ToBool(raw)
}

func isHTMX(e *core.RequestEvent) bool {
	return e.Request.Header.Get("HX-Request") == "true"
}
