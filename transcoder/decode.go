package transcoder

import (
	"reflect"
	"slices"

	"github.com/go-viper/mapstructure/v2"

	"github.com/zengjixiang/parcel/errors"
	"github.com/zengjixiang/parcel/schema"
)

var (
	configType      = reflect.TypeOf(schema.Config{})
	outputType      = reflect.TypeOf(schema.Output{})
	diagnosticsType = reflect.TypeOf(schema.Diagnostics{})
)

// DiagnosticsKey marks an encoded Diagnostics mapping.
const DiagnosticsKey = "diagnostics"

// configKeys are the top-level keys a Config is decoded from, in field
// order.
var configKeys = fieldKeys(configType)

func fieldKeys(t reflect.Type) []string {
	keys := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		key := t.Field(i).Tag.Get("mapstructure")
		if key == "" || key == "-" {
			continue
		}
		keys = append(keys, key)
	}
	return keys
}

// ConfigKeys returns the top-level keys of a configuration mapping.
func ConfigKeys() []string {
	return slices.Clone(configKeys)
}

// SelectConfig returns a configuration mapping reduced to the Config
// keys. Values under other keys are never looked at, so they cannot fail
// a call. Anything that is not a keyed mapping is returned unchanged.
func SelectConfig(tree any) any {
	switch m := tree.(type) {
	case map[string]any:
		out := make(map[string]any, len(configKeys))
		for _, k := range configKeys {
			if v, ok := m[k]; ok {
				out[k] = v
			}
		}
		return out
	case map[string]string:
		out := make(map[string]string, len(configKeys))
		for _, k := range configKeys {
			if v, ok := m[k]; ok {
				out[k] = v
			}
		}
		return out
	}
	return tree
}

// DecodeConfig maps a host-neutral tree onto a fresh Config.
// Either a complete, validated Config is returned or a decode-phase
// *errors.Error; no partial Config ever escapes. Unknown top-level keys
// are ignored.
func DecodeConfig(tree any) (schema.Config, error) {
	norm, err := Normalize(errors.PhaseDecode, SelectConfig(tree))
	if err != nil {
		return schema.Config{}, err
	}
	m, ok := norm.(map[string]any)
	if !ok {
		return schema.Config{}, errors.New(errors.PhaseDecode, errors.KindTypeMismatch).
			GoType(configType.String()).HostType(TypeName(norm)).
			Detail("configuration must be a keyed mapping").Build()
	}
	if err := checkStruct(errors.PhaseDecode, m, configType, nil); err != nil {
		return schema.Config{}, err
	}

	var cfg schema.Config
	if err := decodeInto(errors.PhaseDecode, m, &cfg); err != nil {
		return schema.Config{}, err
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return schema.Config{}, err
	}
	return cfg, nil
}

// DecodeResult is the host-side inverse of EncodeResult: a mapping with a
// diagnostics key becomes Diagnostics, any other mapping an Output.
func DecodeResult(tree any) (schema.Result, error) {
	norm, err := Normalize(errors.PhaseDecode, tree)
	if err != nil {
		return schema.Result{}, err
	}
	m, ok := norm.(map[string]any)
	if !ok {
		return schema.Result{}, errors.New(errors.PhaseDecode, errors.KindTypeMismatch).
			HostType(TypeName(norm)).Detail("result must be a keyed mapping").Build()
	}

	if _, failed := m[DiagnosticsKey]; failed {
		if err := checkStruct(errors.PhaseDecode, m, diagnosticsType, nil); err != nil {
			return schema.Result{}, err
		}
		var d schema.Diagnostics
		if err := decodeInto(errors.PhaseDecode, m, &d); err != nil {
			return schema.Result{}, err
		}
		d.Errors = compactDiagnostics(d.Errors)
		d.Warnings = compactDiagnostics(d.Warnings)
		return schema.Failed(d), nil
	}

	if err := checkStruct(errors.PhaseDecode, m, outputType, nil); err != nil {
		return schema.Result{}, err
	}
	var out schema.Output
	if err := decodeInto(errors.PhaseDecode, m, &out); err != nil {
		return schema.Result{}, err
	}
	out.Warnings = compactDiagnostics(out.Warnings)
	return schema.Succeeded(out), nil
}

func decodeInto(phase errors.Phase, m map[string]any, result any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  result,
		TagName: "mapstructure",
	})
	if err != nil {
		return errors.Wrap(phase, errors.KindInvalidData, err, "build decoder")
	}
	if err := dec.Decode(m); err != nil {
		return errors.Wrap(phase, errors.KindInvalidData, err, "decode mapping")
	}
	return nil
}

// compactDiagnostics maps empty collections to nil so decoded values
// compare equal to what the transform produced.
func compactDiagnostics(ds []schema.Diagnostic) []schema.Diagnostic {
	if len(ds) == 0 {
		return nil
	}
	for i := range ds {
		if len(ds[i].CodeHighlights) == 0 {
			ds[i].CodeHighlights = nil
		}
		if len(ds[i].Hints) == 0 {
			ds[i].Hints = nil
		}
	}
	return ds
}
