package errors

import (
	stderrors "errors"
)

// IsDecode reports whether err carries a decode-phase adapter error.
func IsDecode(err error) bool {
	var e *Error
	return stderrors.As(err, &e) && e.Phase == PhaseDecode
}

// IsEncode reports whether err carries an encode-phase adapter error.
func IsEncode(err error) bool {
	var e *Error
	return stderrors.As(err, &e) && e.Phase == PhaseEncode
}

// As extracts a structured error from err. Errors that are not already
// structured are wrapped under the given phase as invalid data.
func As(phase Phase, err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if stderrors.As(err, &e) {
		return e
	}
	return Wrap(phase, KindInvalidData, err, err.Error())
}

// Record flattens the error into a keyed mapping that every host value
// model can represent. Value is dropped; the cause is kept as its message.
func (e *Error) Record() map[string]any {
	rec := map[string]any{
		"phase":   string(e.Phase),
		"kind":    string(e.Kind),
		"message": e.Error(),
	}
	if len(e.Path) > 0 {
		path := make([]any, len(e.Path))
		for i, p := range e.Path {
			path[i] = p
		}
		rec["path"] = path
	}
	if e.Detail != "" {
		rec["detail"] = e.Detail
	}
	if e.GoType != "" {
		rec["go_type"] = e.GoType
	}
	if e.HostType != "" {
		rec["host_type"] = e.HostType
	}
	if e.Cause != nil {
		rec["cause"] = e.Cause.Error()
	}
	return rec
}

// FromRecord rebuilds an error from a mapping produced by Record.
// It returns false when rec is not such a mapping.
func FromRecord(rec any) (*Error, bool) {
	m, ok := rec.(map[string]any)
	if !ok {
		return nil, false
	}
	phase, _ := m["phase"].(string)
	kind, _ := m["kind"].(string)
	if phase == "" || kind == "" {
		return nil, false
	}

	e := &Error{Phase: Phase(phase), Kind: Kind(kind)}
	e.Detail, _ = m["detail"].(string)
	e.GoType, _ = m["go_type"].(string)
	e.HostType, _ = m["host_type"].(string)
	if path, ok := m["path"].([]any); ok {
		for _, p := range path {
			if s, ok := p.(string); ok {
				e.Path = append(e.Path, s)
			}
		}
	}
	if cause, ok := m["cause"].(string); ok && cause != "" {
		e.Cause = stderrors.New(cause)
	}
	return e, true
}
