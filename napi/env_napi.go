//go:build napi

package napi

/*
#include <stdlib.h>
#include <node_api.h>
*/
import "C"

import (
	"fmt"
	"unsafe"
)

// cEnv implements Env over a live napi_env.
type cEnv struct {
	env C.napi_env
}

var _ Env[C.napi_value] = (*cEnv)(nil)

func (e *cEnv) check(st C.napi_status) error {
	if st == C.napi_ok {
		return nil
	}
	var info *C.napi_extended_error_info
	if C.napi_get_last_error_info(e.env, &info) == C.napi_ok && info != nil && info.error_message != nil {
		return fmt.Errorf("napi status %d: %s", int(st), C.GoString(info.error_message))
	}
	return fmt.Errorf("napi status %d", int(st))
}

func (e *cEnv) TypeOf(v C.napi_value) (ValueType, error) {
	var t C.napi_valuetype
	if err := e.check(C.napi_typeof(e.env, v, &t)); err != nil {
		return Undefined, err
	}
	return ValueType(t), nil
}

func (e *cEnv) IsArray(v C.napi_value) (bool, error) {
	var b C.bool
	err := e.check(C.napi_is_array(e.env, v, &b))
	return bool(b), err
}

func (e *cEnv) GetBool(v C.napi_value) (bool, error) {
	var b C.bool
	err := e.check(C.napi_get_value_bool(e.env, v, &b))
	return bool(b), err
}

func (e *cEnv) GetDouble(v C.napi_value) (float64, error) {
	var f C.double
	err := e.check(C.napi_get_value_double(e.env, v, &f))
	return float64(f), err
}

func (e *cEnv) GetString(v C.napi_value) (string, error) {
	var n C.size_t
	if err := e.check(C.napi_get_value_string_utf8(e.env, v, nil, 0, &n)); err != nil {
		return "", err
	}
	buf := make([]byte, int(n)+1)
	var written C.size_t
	if err := e.check(C.napi_get_value_string_utf8(e.env, v, (*C.char)(unsafe.Pointer(&buf[0])), C.size_t(len(buf)), &written)); err != nil {
		return "", err
	}
	return string(buf[:written]), nil
}

func (e *cEnv) ArrayLength(v C.napi_value) (uint32, error) {
	var n C.uint32_t
	err := e.check(C.napi_get_array_length(e.env, v, &n))
	return uint32(n), err
}

func (e *cEnv) GetElement(arr C.napi_value, index uint32) (C.napi_value, error) {
	var out C.napi_value
	err := e.check(C.napi_get_element(e.env, arr, C.uint32_t(index), &out))
	return out, err
}

func (e *cEnv) PropertyNames(obj C.napi_value) ([]string, error) {
	var names C.napi_value
	filter := C.napi_key_filter(C.napi_key_enumerable | C.napi_key_skip_symbols)
	if err := e.check(C.napi_get_all_property_names(e.env, obj,
		C.napi_key_own_only, filter, C.napi_key_numbers_to_strings, &names)); err != nil {
		return nil, err
	}
	n, err := e.ArrayLength(names)
	if err != nil {
		return nil, err
	}
	keys := make([]string, n)
	for i := range keys {
		k, err := e.GetElement(names, uint32(i))
		if err != nil {
			return nil, err
		}
		if keys[i], err = e.GetString(k); err != nil {
			return nil, err
		}
	}
	return keys, nil
}

func (e *cEnv) GetProperty(obj C.napi_value, key string) (C.napi_value, error) {
	k, err := e.String(key)
	if err != nil {
		return nil, err
	}
	var out C.napi_value
	err = e.check(C.napi_get_property(e.env, obj, k, &out))
	return out, err
}

func (e *cEnv) Null() (C.napi_value, error) {
	var out C.napi_value
	err := e.check(C.napi_get_null(e.env, &out))
	return out, err
}

func (e *cEnv) Boolean(b bool) (C.napi_value, error) {
	var out C.napi_value
	err := e.check(C.napi_get_boolean(e.env, C.bool(b), &out))
	return out, err
}

func (e *cEnv) Double(f float64) (C.napi_value, error) {
	var out C.napi_value
	err := e.check(C.napi_create_double(e.env, C.double(f), &out))
	return out, err
}

func (e *cEnv) String(s string) (C.napi_value, error) {
	cs := C.CString(s)
	defer C.free(unsafe.Pointer(cs))
	var out C.napi_value
	err := e.check(C.napi_create_string_utf8(e.env, cs, C.size_t(len(s)), &out))
	return out, err
}

func (e *cEnv) Object() (C.napi_value, error) {
	var out C.napi_value
	err := e.check(C.napi_create_object(e.env, &out))
	return out, err
}

func (e *cEnv) Array(length uint32) (C.napi_value, error) {
	var out C.napi_value
	err := e.check(C.napi_create_array_with_length(e.env, C.size_t(length), &out))
	return out, err
}

func (e *cEnv) SetProperty(obj C.napi_value, key string, value C.napi_value) error {
	k, err := e.String(key)
	if err != nil {
		return err
	}
	return e.check(C.napi_set_property(e.env, obj, k, value))
}

func (e *cEnv) SetElement(arr C.napi_value, index uint32, value C.napi_value) error {
	return e.check(C.napi_set_element(e.env, arr, C.uint32_t(index), value))
}

func (e *cEnv) CreateError(code, msg string) (C.napi_value, error) {
	var pending C.bool
	if C.napi_is_exception_pending(e.env, &pending) == C.napi_ok && bool(pending) {
		var discarded C.napi_value
		_ = C.napi_get_and_clear_last_exception(e.env, &discarded)
	}

	c, err := e.String(code)
	if err != nil {
		return nil, err
	}
	m, err := e.String(msg)
	if err != nil {
		return nil, err
	}
	var out C.napi_value
	err = e.check(C.napi_create_error(e.env, c, m, &out))
	return out, err
}

func (e *cEnv) Throw(v C.napi_value) error {
	return e.check(C.napi_throw(e.env, v))
}
