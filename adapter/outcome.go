package adapter

import (
	"github.com/zengjixiang/parcel/errors"
)

// Status tags which of the three call outcomes occurred.
type Status int

const (
	// StatusSuccess: the transform produced an Output.
	StatusSuccess Status = iota
	// StatusDiagnostics: the transform reported source problems. This is
	// a successful call from the adapter's point of view.
	StatusDiagnostics
	// StatusAdapterError: decoding the host value or encoding the result
	// failed. The transform either never ran or its result is lost.
	StatusAdapterError
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusDiagnostics:
		return "diagnostics"
	case StatusAdapterError:
		return "adapter_error"
	default:
		return "unknown"
	}
}

// Outcome is the result of one boundary call. Value is set for
// StatusSuccess and StatusDiagnostics, Err for StatusAdapterError.
type Outcome[H any] struct {
	Value  H
	Err    *errors.Error
	Status Status
}

// Unpack returns the host value, or the adapter error as a Go error.
func (o Outcome[H]) Unpack() (H, error) {
	if o.Status == StatusAdapterError {
		var zero H
		return zero, o.Err
	}
	return o.Value, nil
}

func failed[H any](err *errors.Error) Outcome[H] {
	return Outcome[H]{Status: StatusAdapterError, Err: err}
}
