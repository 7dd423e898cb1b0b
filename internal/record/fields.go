// fields.go reads typed values out of a projected object.
//
// The reader keeps the first error it sees so mapping functions can read
// every field unconditionally and check once at the end.

package record

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/hyperspell/hyperspell-mcp/internal/hyperspell"
)

type reader struct {
	kind string
	obj  hyperspell.Object
	err  error
}

func newReader(kind string, obj hyperspell.Object) *reader {
	return &reader{kind: kind, obj: obj}
}

func (r *reader) fail(field, format string, args ...any) {
	if r.err == nil {
		r.err = fmt.Errorf("%w: %s.%s: %s", ErrMapping, r.kind, field, fmt.Sprintf(format, args...))
	}
}

// present returns the value for key, treating JSON null as absent.
func (r *reader) present(key string) (any, bool) {
	v, ok := r.obj[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func (r *reader) requiredString(key string) string {
	v, ok := r.present(key)
	if !ok {
		r.fail(key, "required field missing")
		return ""
	}
	s, ok := v.(string)
	if !ok {
		r.fail(key, "want string, got %T", v)
	}
	return s
}

func (r *reader) optionalString(key string) *string {
	v, ok := r.present(key)
	if !ok {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		r.fail(key, "want string, got %T", v)
		return nil
	}
	return &s
}

func (r *reader) requiredInt(key string) int {
	v, ok := r.present(key)
	if !ok {
		r.fail(key, "required field missing")
		return 0
	}
	n, err := toInt(v)
	if err != nil {
		r.fail(key, "%v", err)
	}
	return n
}

func (r *reader) optionalInt(key string, def int) int {
	v, ok := r.present(key)
	if !ok {
		return def
	}
	n, err := toInt(v)
	if err != nil {
		r.fail(key, "%v", err)
		return def
	}
	return n
}

func (r *reader) optionalMap(key string) map[string]any {
	v, ok := r.present(key)
	if !ok {
		return nil
	}
	switch m := v.(type) {
	case map[string]any:
		return m
	case hyperspell.Object:
		return m
	default:
		r.fail(key, "want object, got %T", v)
		return nil
	}
}

// toInt accepts the integer encodings that reach the mapper: json.Number
// from the API client and plain Go numbers from other decoders.
func toInt(v any) (int, error) {
	switch n := v.(type) {
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, fmt.Errorf("want integer, got %s", n)
		}
		return int(i), nil
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			return 0, fmt.Errorf("want integer, got %v", n)
		}
		return int(n), nil
	default:
		return 0, fmt.Errorf("want integer, got %T", v)
	}
}
