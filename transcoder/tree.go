package transcoder

import (
	"fmt"
	"math"
	"reflect"
	"unicode/utf8"

	"github.com/zengjixiang/parcel/errors"
)

// MaxSafeInteger is the largest integer every host number model can hold
// without losing precision (2^53 - 1).
const MaxSafeInteger = 1<<53 - 1

// maxDepth bounds tree nesting; host object graphs may be cyclic.
const maxDepth = 64

// TypeName names the host-side type of a tree value.
func TypeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64, float32, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return "number"
	case string:
		return "string"
	case []any, []string:
		return "array"
	case map[string]any, map[string]string:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// Normalize converts v into the canonical tree form: nil, bool, float64,
// int64, string, []any and map[string]any. Nil map entries are dropped so
// that a null optional field reads as absent.
func Normalize(phase errors.Phase, v any) (any, error) {
	return normalize(phase, v, nil, 0)
}

func normalize(phase errors.Phase, v any, path []string, depth int) (any, error) {
	if depth > maxDepth {
		return nil, errors.InvalidData(phase, path, fmt.Sprintf("value nested deeper than %d levels", maxDepth))
	}

	switch x := v.(type) {
	case nil, bool, int64:
		return x, nil
	case string:
		if !utf8.ValidString(x) {
			return nil, errors.InvalidUTF8(phase, path, []byte(x))
		}
		return x, nil
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, errors.New(phase, errors.KindUnsupported).Path(path...).
				HostType("number").Detail("non-finite number %v", x).Build()
		}
		return x, nil
	case float32:
		return normalize(phase, float64(x), path, depth)
	case int:
		return int64(x), nil
	case int8:
		return int64(x), nil
	case int16:
		return int64(x), nil
	case int32:
		return int64(x), nil
	case uint8:
		return int64(x), nil
	case uint16:
		return int64(x), nil
	case uint32:
		return int64(x), nil
	case uint:
		if uint64(x) > math.MaxInt64 {
			return nil, errors.Overflow(phase, path, x, "int64")
		}
		return int64(x), nil
	case uint64:
		if x > math.MaxInt64 {
			return nil, errors.Overflow(phase, path, x, "int64")
		}
		return int64(x), nil
	case []string:
		out := make([]any, len(x))
		for i, s := range x {
			n, err := normalize(phase, s, appendPath(path, fmt.Sprint(i)), depth+1)
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			n, err := normalize(phase, e, appendPath(path, fmt.Sprint(i)), depth+1)
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	case map[string]string:
		out := make(map[string]any, len(x))
		for k, s := range x {
			n, err := normalize(phase, s, appendPath(path, k), depth+1)
			if err != nil {
				return nil, err
			}
			out[k] = n
		}
		return out, nil
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			if e == nil {
				continue
			}
			n, err := normalize(phase, e, appendPath(path, k), depth+1)
			if err != nil {
				return nil, err
			}
			out[k] = n
		}
		return out, nil
	default:
		return nil, errors.New(phase, errors.KindUnsupported).Path(path...).
			GoType(reflect.TypeOf(v).String()).Detail("no host representation").Build()
	}
}

// appendPath copies so sibling paths never share a backing array.
func appendPath(path []string, elem string) []string {
	out := make([]string, len(path), len(path)+1)
	copy(out, path)
	return append(out, elem)
}
