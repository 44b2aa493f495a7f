package testbed

import (
	"fmt"
	"sort"

	"github.com/zengjixiang/parcel/napi"
)

// JSValue is a value on the JSEnv heap. Objects remember property order
// and count how often each property was read.
type JSValue struct {
	Type napi.ValueType
	Bool bool
	Num  float64
	Str  string

	isArray bool
	elems   []*JSValue
	keys    []string
	props   map[string]*JSValue
	reads   map[string]int
	throws  map[string]error
}

// Undefined returns a fresh undefined value.
func Undefined() *JSValue { return &JSValue{Type: napi.Undefined} }

// Func returns a value of type function, which has no tree form.
func Func() *JSValue { return &JSValue{Type: napi.Function} }

// Symbol returns a symbol, which has no tree form.
func Symbol() *JSValue { return &JSValue{Type: napi.Symbol} }

// BigInt returns a bigint, which has no tree form.
func BigInt() *JSValue { return &JSValue{Type: napi.BigInt} }

// NewObject returns an empty plain object.
func NewObject() *JSValue {
	return &JSValue{Type: napi.Object, props: map[string]*JSValue{}, reads: map[string]int{}}
}

// NewArray returns an array holding elems.
func NewArray(elems ...*JSValue) *JSValue {
	return &JSValue{Type: napi.Object, isArray: true, elems: elems}
}

// Set defines or replaces a property.
func (v *JSValue) Set(key string, val *JSValue) *JSValue {
	if _, ok := v.props[key]; !ok {
		v.keys = append(v.keys, key)
	}
	v.props[key] = val
	return v
}

// Throwing defines key as an accessor whose getter throws err.
func (v *JSValue) Throwing(key string, err error) *JSValue {
	if v.throws == nil {
		v.throws = map[string]error{}
	}
	v.Set(key, Undefined())
	v.throws[key] = err
	return v
}

// Get returns a property without counting the read.
func (v *JSValue) Get(key string) *JSValue {
	return v.props[key]
}

// Keys returns property names in definition order.
func (v *JSValue) Keys() []string {
	return append([]string(nil), v.keys...)
}

// Reads reports how often key was read through the environment.
func (v *JSValue) Reads(key string) int {
	return v.reads[key]
}

// JS builds a heap value from a Go tree: nil, bool, numbers, string,
// []any and map[string]any. Map keys are defined in sorted order.
func JS(tree any) *JSValue {
	switch x := tree.(type) {
	case nil:
		return &JSValue{Type: napi.Null}
	case *JSValue:
		return x
	case bool:
		return &JSValue{Type: napi.Boolean, Bool: x}
	case float64:
		return &JSValue{Type: napi.Number, Num: x}
	case int:
		return &JSValue{Type: napi.Number, Num: float64(x)}
	case int64:
		return &JSValue{Type: napi.Number, Num: float64(x)}
	case string:
		return &JSValue{Type: napi.String, Str: x}
	case []any:
		elems := make([]*JSValue, len(x))
		for i, e := range x {
			elems[i] = JS(e)
		}
		return NewArray(elems...)
	case []string:
		elems := make([]*JSValue, len(x))
		for i, e := range x {
			elems[i] = JS(e)
		}
		return NewArray(elems...)
	case map[string]any:
		obj := NewObject()
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			obj.Set(k, JS(x[k]))
		}
		return obj
	case map[string]string:
		obj := NewObject()
		for k, e := range x {
			obj.Set(k, JS(e))
		}
		return obj
	default:
		panic(fmt.Sprintf("testbed: no JS form for %T", tree))
	}
}

// Go converts v back into a Go tree. Numbers come back as float64.
func (v *JSValue) Go() any {
	switch v.Type {
	case napi.Undefined, napi.Null:
		return nil
	case napi.Boolean:
		return v.Bool
	case napi.Number:
		return v.Num
	case napi.String:
		return v.Str
	case napi.Object:
		if v.isArray {
			out := make([]any, len(v.elems))
			for i, e := range v.elems {
				out[i] = e.Go()
			}
			return out
		}
		out := make(map[string]any, len(v.keys))
		for _, k := range v.keys {
			out[k] = v.props[k].Go()
		}
		return out
	default:
		return fmt.Sprintf("[%s]", v.Type)
	}
}

// JSEnv is an in-process stand-in for a Node-API environment.
type JSEnv struct {
	thrown   *JSValue
	failures map[string]error
}

func NewJSEnv() *JSEnv {
	return &JSEnv{failures: map[string]error{}}
}

// FailOn makes every later call of the named Env method return err.
func (e *JSEnv) FailOn(method string, err error) {
	e.failures[method] = err
}

// Thrown returns the pending exception, if any.
func (e *JSEnv) Thrown() *JSValue {
	return e.thrown
}

func (e *JSEnv) fail(method string) error {
	return e.failures[method]
}

func (e *JSEnv) TypeOf(v *JSValue) (napi.ValueType, error) {
	if v == nil {
		return napi.Undefined, fmt.Errorf("invalid handle")
	}
	return v.Type, e.fail("TypeOf")
}

func (e *JSEnv) IsArray(v *JSValue) (bool, error) {
	return v.isArray, e.fail("IsArray")
}

func (e *JSEnv) GetBool(v *JSValue) (bool, error) {
	if v.Type != napi.Boolean {
		return false, fmt.Errorf("boolean expected")
	}
	return v.Bool, e.fail("GetBool")
}

func (e *JSEnv) GetDouble(v *JSValue) (float64, error) {
	if v.Type != napi.Number {
		return 0, fmt.Errorf("number expected")
	}
	return v.Num, e.fail("GetDouble")
}

func (e *JSEnv) GetString(v *JSValue) (string, error) {
	if v.Type != napi.String {
		return "", fmt.Errorf("string expected")
	}
	return v.Str, e.fail("GetString")
}

func (e *JSEnv) ArrayLength(v *JSValue) (uint32, error) {
	if !v.isArray {
		return 0, fmt.Errorf("array expected")
	}
	return uint32(len(v.elems)), e.fail("ArrayLength")
}

func (e *JSEnv) GetElement(arr *JSValue, index uint32) (*JSValue, error) {
	if err := e.fail("GetElement"); err != nil {
		return nil, err
	}
	if int(index) >= len(arr.elems) {
		return Undefined(), nil
	}
	return arr.elems[index], nil
}

func (e *JSEnv) PropertyNames(obj *JSValue) ([]string, error) {
	if err := e.fail("PropertyNames"); err != nil {
		return nil, err
	}
	return obj.Keys(), nil
}

func (e *JSEnv) GetProperty(obj *JSValue, key string) (*JSValue, error) {
	if err := e.fail("GetProperty"); err != nil {
		return nil, err
	}
	obj.reads[key]++
	if err, ok := obj.throws[key]; ok {
		return nil, err
	}
	if v, ok := obj.props[key]; ok {
		return v, nil
	}
	return Undefined(), nil
}

func (e *JSEnv) Null() (*JSValue, error) {
	return &JSValue{Type: napi.Null}, e.fail("Null")
}

func (e *JSEnv) Boolean(b bool) (*JSValue, error) {
	return &JSValue{Type: napi.Boolean, Bool: b}, e.fail("Boolean")
}

func (e *JSEnv) Double(f float64) (*JSValue, error) {
	return &JSValue{Type: napi.Number, Num: f}, e.fail("Double")
}

func (e *JSEnv) String(s string) (*JSValue, error) {
	return &JSValue{Type: napi.String, Str: s}, e.fail("String")
}

func (e *JSEnv) Object() (*JSValue, error) {
	return NewObject(), e.fail("Object")
}

func (e *JSEnv) Array(length uint32) (*JSValue, error) {
	elems := make([]*JSValue, length)
	for i := range elems {
		elems[i] = Undefined()
	}
	return NewArray(elems...), e.fail("Array")
}

func (e *JSEnv) SetProperty(obj *JSValue, key string, value *JSValue) error {
	if err := e.fail("SetProperty"); err != nil {
		return err
	}
	obj.Set(key, value)
	return nil
}

func (e *JSEnv) SetElement(arr *JSValue, index uint32, value *JSValue) error {
	if err := e.fail("SetElement"); err != nil {
		return err
	}
	if int(index) >= len(arr.elems) {
		grown := make([]*JSValue, index+1)
		copy(grown, arr.elems)
		for i := len(arr.elems); i < len(grown); i++ {
			grown[i] = Undefined()
		}
		arr.elems = grown
	}
	arr.elems[index] = value
	return nil
}

func (e *JSEnv) CreateError(code, msg string) (*JSValue, error) {
	if err := e.fail("CreateError"); err != nil {
		return nil, err
	}
	e.thrown = nil
	return NewObject().
		Set("message", JS(msg)).
		Set("code", JS(code)), nil
}

func (e *JSEnv) Throw(v *JSValue) error {
	if err := e.fail("Throw"); err != nil {
		return err
	}
	e.thrown = v
	return nil
}

var _ napi.Env[*JSValue] = (*JSEnv)(nil)
