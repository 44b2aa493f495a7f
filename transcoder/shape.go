package transcoder

import (
	"math"
	"reflect"
	"strconv"

	"github.com/zengjixiang/parcel/errors"
)

// checkShape verifies a normalized tree against the Go type it will be
// decoded into. It reports the first mismatch with its field path, which
// is what a caller needs to fix the input.
func checkShape(phase errors.Phase, v any, t reflect.Type, path []string) error {
	switch t.Kind() {
	case reflect.Ptr:
		return checkShape(phase, v, t.Elem(), path)

	case reflect.String:
		if _, ok := v.(string); !ok {
			return mismatch(phase, path, t, v)
		}

	case reflect.Bool:
		if _, ok := v.(bool); !ok {
			return mismatch(phase, path, t, v)
		}

	case reflect.Int, reflect.Int64, reflect.Int32:
		return checkInteger(phase, v, t, path)

	case reflect.Slice:
		list, ok := v.([]any)
		if !ok {
			return mismatch(phase, path, t, v)
		}
		for i, e := range list {
			if err := checkShape(phase, e, t.Elem(), appendPath(path, strconv.Itoa(i))); err != nil {
				return err
			}
		}

	case reflect.Map:
		m, ok := v.(map[string]any)
		if !ok {
			return mismatch(phase, path, t, v)
		}
		for k, e := range m {
			if err := checkShape(phase, e, t.Elem(), appendPath(path, k)); err != nil {
				return err
			}
		}

	case reflect.Struct:
		m, ok := v.(map[string]any)
		if !ok {
			return mismatch(phase, path, t, v)
		}
		return checkStruct(phase, m, t, path)

	default:
		return errors.New(phase, errors.KindUnsupported).Path(path...).
			GoType(t.String()).Detail("field kind %s", t.Kind()).Build()
	}
	return nil
}

func checkStruct(phase errors.Phase, m map[string]any, t reflect.Type, path []string) error {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		key := f.Tag.Get("mapstructure")
		if key == "" || key == "-" {
			continue
		}
		fieldPath := appendPath(path, key)
		v, ok := m[key]
		if !ok || v == nil {
			if f.Tag.Get("required") == "true" {
				return errors.FieldMissing(phase, fieldPath, key)
			}
			continue
		}
		if err := checkShape(phase, v, f.Type, fieldPath); err != nil {
			return err
		}
	}
	return nil
}

func checkInteger(phase errors.Phase, v any, t reflect.Type, path []string) error {
	switch x := v.(type) {
	case int64:
		if x > MaxSafeInteger || x < -MaxSafeInteger {
			return errors.OutOfRange(phase, path, x, -MaxSafeInteger, MaxSafeInteger)
		}
		return nil
	case float64:
		if x != math.Trunc(x) {
			return errors.New(phase, errors.KindTypeMismatch).Path(path...).
				GoType(t.String()).HostType("number").Detail("%v is not an integer", x).Build()
		}
		if x > MaxSafeInteger || x < -MaxSafeInteger {
			return errors.OutOfRange(phase, path, x, -MaxSafeInteger, MaxSafeInteger)
		}
		return nil
	default:
		return mismatch(phase, path, t, v)
	}
}

func mismatch(phase errors.Phase, path []string, t reflect.Type, v any) *errors.Error {
	return errors.TypeMismatch(phase, path, t.String(), TypeName(v))
}
