package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:    PhaseDecode,
				Kind:     KindTypeMismatch,
				Path:     []string{"config", "env", "NODE_ENV"},
				GoType:   "string",
				HostType: "number",
				Detail:   "cannot convert",
			},
			contains: []string{"[decode]", "type_mismatch", "config.env.NODE_ENV", "string", "number", "cannot convert"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseEncode,
				Kind:  KindOverflow,
			},
			contains: []string{"[encode]", "overflow"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseRuntime,
				Kind:   KindAllocation,
				Detail: "memory full",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[runtime]", "allocation", "memory full", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseEncode,
		Kind:  KindInvalidData,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}
	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhaseDecode,
		Kind:  KindFieldMissing,
		Path:  []string{"code"},
	}

	if !err.Is(&Error{Phase: PhaseDecode, Kind: KindFieldMissing}) {
		t.Error("Is should match same phase and kind")
	}
	if err.Is(&Error{Phase: PhaseEncode, Kind: KindFieldMissing}) {
		t.Error("Is should not match different phase")
	}
	if err.Is(&Error{Phase: PhaseDecode, Kind: KindTypeMismatch}) {
		t.Error("Is should not match different kind")
	}

	wrapped := fmt.Errorf("call failed: %w", err)
	if !errors.Is(wrapped, &Error{Phase: PhaseDecode, Kind: KindFieldMissing}) {
		t.Error("errors.Is should match through wrapping")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseDecode, KindTypeMismatch).
		Path("config", "minify").
		GoType("bool").
		HostType("string").
		Value("yes").
		Cause(cause).
		Detail("expected %s, got %s", "bool", "string").
		Build()

	if err.Phase != PhaseDecode {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseDecode)
	}
	if err.Kind != KindTypeMismatch {
		t.Errorf("Kind = %v, want %v", err.Kind, KindTypeMismatch)
	}
	if len(err.Path) != 2 || err.Path[0] != "config" || err.Path[1] != "minify" {
		t.Errorf("Path = %v, want [config minify]", err.Path)
	}
	if err.GoType != "bool" || err.HostType != "string" {
		t.Errorf("GoType=%v HostType=%v", err.GoType, err.HostType)
	}
	if err.Value != "yes" {
		t.Errorf("Value = %v, want yes", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "expected bool, got string" {
		t.Errorf("Detail = %v", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("FieldMissing", func(t *testing.T) {
		err := FieldMissing(PhaseDecode, []string{"code"}, "code")
		if err.Kind != KindFieldMissing {
			t.Errorf("Kind = %v, want %v", err.Kind, KindFieldMissing)
		}
		if !strings.Contains(err.Detail, `"code"`) {
			t.Errorf("Detail = %v, should name the field", err.Detail)
		}
	})

	t.Run("OutOfRange", func(t *testing.T) {
		err := OutOfRange(PhaseDecode, []string{"line_limit"}, -1, 0, 100)
		if err.Kind != KindOutOfRange {
			t.Errorf("Kind = %v, want %v", err.Kind, KindOutOfRange)
		}
		if !strings.Contains(err.Detail, "[0, 100]") {
			t.Errorf("Detail = %v, should contain bounds", err.Detail)
		}
	})

	t.Run("InvalidEnum", func(t *testing.T) {
		err := InvalidEnum(PhaseDecode, []string{"target"}, "es3", []string{"esnext", "es2015"})
		if err.Kind != KindInvalidEnum {
			t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidEnum)
		}
		if !strings.Contains(err.Detail, "esnext, es2015") {
			t.Errorf("Detail = %v, should list allowed values", err.Detail)
		}
	})

	t.Run("Overflow", func(t *testing.T) {
		err := Overflow(PhaseEncode, []string{"val"}, int64(1)<<60, "number")
		if err.Kind != KindOverflow {
			t.Errorf("Kind = %v, want %v", err.Kind, KindOverflow)
		}
		if err.HostType != "number" {
			t.Errorf("HostType = %v, want number", err.HostType)
		}
	})

	t.Run("InvalidUTF8", func(t *testing.T) {
		err := InvalidUTF8(PhaseDecode, []string{"code"}, []byte{0xff, 0xfe})
		if err.Kind != KindInvalidUTF8 {
			t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidUTF8)
		}
	})

	t.Run("OutOfBounds", func(t *testing.T) {
		err := OutOfBounds(PhaseRuntime, 10, 5)
		if err.Kind != KindOutOfBounds {
			t.Errorf("Kind = %v, want %v", err.Kind, KindOutOfBounds)
		}
	})
}

func TestTierHelpers(t *testing.T) {
	dec := FieldMissing(PhaseDecode, nil, "code")
	enc := Overflow(PhaseEncode, nil, 1, "number")

	if !IsDecode(fmt.Errorf("wrapped: %w", dec)) || IsEncode(dec) {
		t.Error("decode error misclassified")
	}
	if !IsEncode(enc) || IsDecode(enc) {
		t.Error("encode error misclassified")
	}
	if IsDecode(errors.New("plain")) {
		t.Error("plain error classified as decode")
	}

	if got := As(PhaseEncode, errors.New("boom")); got.Phase != PhaseEncode || got.Kind != KindInvalidData {
		t.Errorf("As() = %v", got)
	}
	if got := As(PhaseEncode, dec); got != dec {
		t.Error("As() should return the structured error unchanged")
	}
	if As(PhaseEncode, nil) != nil {
		t.Error("As(nil) should be nil")
	}
}

func TestRecordRoundTrip(t *testing.T) {
	orig := New(PhaseDecode, KindTypeMismatch).
		Path("define", "DEBUG").
		GoType("string").
		HostType("boolean").
		Detail("expected string").
		Cause(errors.New("inner")).
		Build()

	rec := orig.Record()
	if rec["message"] != orig.Error() {
		t.Errorf("message = %v", rec["message"])
	}

	got, ok := FromRecord(rec)
	if !ok {
		t.Fatal("FromRecord rejected a record")
	}
	if got.Phase != orig.Phase || got.Kind != orig.Kind || got.Detail != orig.Detail {
		t.Errorf("got %+v, want %+v", got, orig)
	}
	if strings.Join(got.Path, ".") != "define.DEBUG" {
		t.Errorf("Path = %v", got.Path)
	}
	if got.GoType != "string" || got.HostType != "boolean" {
		t.Errorf("types = %s/%s", got.GoType, got.HostType)
	}
	if got.Cause == nil || got.Cause.Error() != "inner" {
		t.Errorf("Cause = %v", got.Cause)
	}

	if _, ok := FromRecord("nope"); ok {
		t.Error("FromRecord accepted a string")
	}
	if _, ok := FromRecord(map[string]any{"kind": "overflow"}); ok {
		t.Error("FromRecord accepted a record without phase")
	}
}
