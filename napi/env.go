package napi

import "fmt"

// ValueType mirrors napi_valuetype.
type ValueType int

const (
	Undefined ValueType = iota
	Null
	Boolean
	Number
	String
	Symbol
	Object
	Function
	External
	BigInt
)

func (t ValueType) String() string {
	switch t {
	case Undefined:
		return "undefined"
	case Null:
		return "null"
	case Boolean:
		return "boolean"
	case Number:
		return "number"
	case String:
		return "string"
	case Symbol:
		return "symbol"
	case Object:
		return "object"
	case Function:
		return "function"
	case External:
		return "external"
	case BigInt:
		return "bigint"
	default:
		return fmt.Sprintf("ValueType(%d)", int(t))
	}
}

// Env is the part of a Node-API environment the adapter uses. V is the
// environment's value handle (napi_value in the addon). Handles are only
// valid for the duration of the call that produced them.
type Env[V comparable] interface {
	TypeOf(v V) (ValueType, error)
	IsArray(v V) (bool, error)

	GetBool(v V) (bool, error)
	GetDouble(v V) (float64, error)
	GetString(v V) (string, error)
	ArrayLength(v V) (uint32, error)
	GetElement(arr V, index uint32) (V, error)
	// PropertyNames returns the object's own enumerable string keys.
	PropertyNames(obj V) ([]string, error)
	GetProperty(obj V, key string) (V, error)

	Null() (V, error)
	Boolean(b bool) (V, error)
	Double(f float64) (V, error)
	String(s string) (V, error)
	Object() (V, error)
	Array(length uint32) (V, error)
	SetProperty(obj V, key string, value V) error
	SetElement(arr V, index uint32, value V) error

	// CreateError builds a JS Error with the given code and message. A
	// pending exception (a throwing getter, say) is cleared first.
	CreateError(code, msg string) (V, error)
	Throw(v V) error
}
