package napi

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/zengjixiang/parcel/errors"
	"github.com/zengjixiang/parcel/transcoder"
)

// Write builds a JS value from a neutral value tree. Object properties
// are created in sorted key order.
func Write[V comparable](env Env[V], tree any) (V, error) {
	return write(env, tree, nil)
}

func write[V comparable](env Env[V], v any, path []string) (V, error) {
	var zero V

	switch x := v.(type) {
	case nil:
		out, err := env.Null()
		return wrapWrite(out, err, path, "napi_get_null")

	case bool:
		out, err := env.Boolean(x)
		return wrapWrite(out, err, path, "napi_get_boolean")

	case float64:
		out, err := env.Double(x)
		return wrapWrite(out, err, path, "napi_create_double")

	case int64:
		if x > transcoder.MaxSafeInteger || x < -transcoder.MaxSafeInteger {
			return zero, errors.Overflow(errors.PhaseEncode, path, x, "number")
		}
		out, err := env.Double(float64(x))
		return wrapWrite(out, err, path, "napi_create_double")

	case int:
		return write(env, int64(x), path)

	case string:
		out, err := env.String(x)
		return wrapWrite(out, err, path, "napi_create_string_utf8")

	case []any:
		if len(x) > math.MaxUint32 {
			return zero, errors.Overflow(errors.PhaseEncode, path, len(x), "array length")
		}
		arr, err := env.Array(uint32(len(x)))
		if err != nil {
			return zero, hostFailure(errors.PhaseEncode, path, "napi_create_array_with_length", err)
		}
		for i, elem := range x {
			elemPath := appendPath(path, strconv.Itoa(i))
			ev, err := write(env, elem, elemPath)
			if err != nil {
				return zero, err
			}
			if err := env.SetElement(arr, uint32(i), ev); err != nil {
				return zero, hostFailure(errors.PhaseEncode, elemPath, "napi_set_element", err)
			}
		}
		return arr, nil

	case map[string]any:
		obj, err := env.Object()
		if err != nil {
			return zero, hostFailure(errors.PhaseEncode, path, "napi_create_object", err)
		}
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			propPath := appendPath(path, k)
			pv, err := write(env, x[k], propPath)
			if err != nil {
				return zero, err
			}
			if err := env.SetProperty(obj, k, pv); err != nil {
				return zero, hostFailure(errors.PhaseEncode, propPath, "napi_set_property", err)
			}
		}
		return obj, nil

	default:
		return zero, errors.New(errors.PhaseEncode, errors.KindUnsupported).
			Path(path...).
			GoType(fmt.Sprintf("%T", v)).
			Detail("no JS representation").
			Build()
	}
}

func wrapWrite[V comparable](v V, err error, path []string, op string) (V, error) {
	if err != nil {
		var zero V
		return zero, hostFailure(errors.PhaseEncode, path, op, err)
	}
	return v, nil
}
