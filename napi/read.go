package napi

import (
	"strconv"

	"github.com/zengjixiang/parcel/errors"
	"github.com/zengjixiang/parcel/transcoder"
)

// maxDepth stops the reader on cyclic object graphs.
const maxDepth = 64

// Read converts a JS value into a neutral value tree. Object keys are
// snapshotted before any property is read, and each property is read
// exactly once, so getters run at most once per call. Undefined reads as
// null, which the decoder treats as an absent field.
func Read[V comparable](env Env[V], v V) (any, error) {
	return read(env, v, nil, 0)
}

// ReadConfig reads a configuration object. Only the Config keys are read
// from the root object, so other properties (callbacks, symbols, cycles,
// throwing getters) are never touched. Values under those keys are read
// in full. A root that is not a plain object is read as is and rejected
// by the decoder.
func ReadConfig[V comparable](env Env[V], v V) (any, error) {
	t, err := env.TypeOf(v)
	if err != nil {
		return nil, hostFailure(errors.PhaseDecode, nil, "napi_typeof", err)
	}
	if t != Object {
		return read(env, v, nil, 0)
	}
	isArray, err := env.IsArray(v)
	if err != nil {
		return nil, hostFailure(errors.PhaseDecode, nil, "napi_is_array", err)
	}
	if isArray {
		return readArray(env, v, nil, 0)
	}

	keys := transcoder.ConfigKeys()
	out := make(map[string]any, len(keys))
	for _, key := range keys {
		path := []string{key}
		prop, err := env.GetProperty(v, key)
		if err != nil {
			return nil, hostFailure(errors.PhaseDecode, path, "napi_get_property", err)
		}
		val, err := read(env, prop, path, 1)
		if err != nil {
			return nil, err
		}
		if val != nil {
			out[key] = val
		}
	}
	return out, nil
}

func read[V comparable](env Env[V], v V, path []string, depth int) (any, error) {
	if depth > maxDepth {
		return nil, errors.InvalidData(errors.PhaseDecode, path, "value nested deeper than "+strconv.Itoa(maxDepth)+" levels")
	}

	t, err := env.TypeOf(v)
	if err != nil {
		return nil, hostFailure(errors.PhaseDecode, path, "napi_typeof", err)
	}

	switch t {
	case Undefined, Null:
		return nil, nil

	case Boolean:
		b, err := env.GetBool(v)
		if err != nil {
			return nil, hostFailure(errors.PhaseDecode, path, "napi_get_value_bool", err)
		}
		return b, nil

	case Number:
		f, err := env.GetDouble(v)
		if err != nil {
			return nil, hostFailure(errors.PhaseDecode, path, "napi_get_value_double", err)
		}
		return f, nil

	case String:
		s, err := env.GetString(v)
		if err != nil {
			return nil, hostFailure(errors.PhaseDecode, path, "napi_get_value_string_utf8", err)
		}
		return s, nil

	case Object:
		isArray, err := env.IsArray(v)
		if err != nil {
			return nil, hostFailure(errors.PhaseDecode, path, "napi_is_array", err)
		}
		if isArray {
			return readArray(env, v, path, depth)
		}
		return readObject(env, v, path, depth)

	default:
		return nil, errors.New(errors.PhaseDecode, errors.KindUnsupported).
			Path(path...).
			HostType(t.String()).
			Detail("value cannot be represented").
			Build()
	}
}

func readArray[V comparable](env Env[V], v V, path []string, depth int) (any, error) {
	n, err := env.ArrayLength(v)
	if err != nil {
		return nil, hostFailure(errors.PhaseDecode, path, "napi_get_array_length", err)
	}
	out := make([]any, n)
	for i := uint32(0); i < n; i++ {
		elemPath := appendPath(path, strconv.FormatUint(uint64(i), 10))
		elem, err := env.GetElement(v, i)
		if err != nil {
			return nil, hostFailure(errors.PhaseDecode, elemPath, "napi_get_element", err)
		}
		out[i], err = read(env, elem, elemPath, depth+1)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func readObject[V comparable](env Env[V], v V, path []string, depth int) (any, error) {
	keys, err := env.PropertyNames(v)
	if err != nil {
		return nil, hostFailure(errors.PhaseDecode, path, "napi_get_all_property_names", err)
	}
	out := make(map[string]any, len(keys))
	for _, key := range keys {
		propPath := appendPath(path, key)
		prop, err := env.GetProperty(v, key)
		if err != nil {
			return nil, hostFailure(errors.PhaseDecode, propPath, "napi_get_property", err)
		}
		val, err := read(env, prop, propPath, depth+1)
		if err != nil {
			return nil, err
		}
		if val != nil {
			out[key] = val
		}
	}
	return out, nil
}

func hostFailure(phase errors.Phase, path []string, op string, cause error) *errors.Error {
	return errors.New(phase, errors.KindInvalidData).
		Path(path...).
		Detail("%s failed", op).
		Cause(cause).
		Build()
}

func appendPath(path []string, elem string) []string {
	out := make([]string, len(path)+1)
	copy(out, path)
	out[len(path)] = elem
	return out
}
