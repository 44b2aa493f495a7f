package transcoder

import (
	"strconv"

	"github.com/zengjixiang/parcel/errors"
	"github.com/zengjixiang/parcel/schema"
)

// EncodeResult maps a transform result onto a host-neutral tree. Output
// and Diagnostics keep every field; lists are always present, possibly
// empty. Integers beyond MaxSafeInteger fail with an encode-phase
// overflow error rather than losing precision.
func EncodeResult(r schema.Result) (map[string]any, error) {
	if !r.Valid() {
		return nil, errors.InvalidData(errors.PhaseEncode, nil, "result must carry exactly one of output or diagnostics")
	}

	if r.Diagnostics != nil {
		diags, err := encodeDiagnostics(r.Diagnostics.Errors, []string{DiagnosticsKey})
		if err != nil {
			return nil, err
		}
		warnings, err := encodeDiagnostics(r.Diagnostics.Warnings, []string{"warnings"})
		if err != nil {
			return nil, err
		}
		return map[string]any{
			DiagnosticsKey: diags,
			"warnings":     warnings,
		}, nil
	}

	out := r.Output
	warnings, err := encodeDiagnostics(out.Warnings, []string{"warnings"})
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"code":           out.Code,
		"map":            out.Map,
		"legal_comments": out.LegalComments,
		"warnings":       warnings,
	}, nil
}

func encodeDiagnostics(ds []schema.Diagnostic, path []string) ([]any, error) {
	list := make([]any, 0, len(ds))
	for i, d := range ds {
		enc, err := encodeDiagnostic(d, appendPath(path, strconv.Itoa(i)))
		if err != nil {
			return nil, err
		}
		list = append(list, enc)
	}
	return list, nil
}

func encodeDiagnostic(d schema.Diagnostic, path []string) (map[string]any, error) {
	highlights := make([]any, 0, len(d.CodeHighlights))
	for i, h := range d.CodeHighlights {
		hp := appendPath(appendPath(path, "code_highlights"), strconv.Itoa(i))
		loc, err := encodeLocation(h.Loc, appendPath(hp, "loc"))
		if err != nil {
			return nil, err
		}
		highlights = append(highlights, map[string]any{
			"message": h.Message,
			"loc":     loc,
		})
	}

	hints := make([]any, len(d.Hints))
	for i, h := range d.Hints {
		hints[i] = h
	}

	return map[string]any{
		"message":         d.Message,
		"id":              d.ID,
		"severity":        string(d.Severity),
		"file":            d.File,
		"code_highlights": highlights,
		"hints":           hints,
	}, nil
}

func encodeLocation(l schema.SourceLocation, path []string) (map[string]any, error) {
	fields := []struct {
		key string
		v   int
	}{
		{"start_line", l.StartLine},
		{"start_col", l.StartCol},
		{"end_line", l.EndLine},
		{"end_col", l.EndCol},
	}
	loc := make(map[string]any, len(fields))
	for _, f := range fields {
		n, err := encodeInt(f.v, appendPath(path, f.key))
		if err != nil {
			return nil, err
		}
		loc[f.key] = n
	}
	return loc, nil
}

func encodeInt(v int, path []string) (int64, error) {
	n := int64(v)
	if n > MaxSafeInteger || n < -MaxSafeInteger {
		return 0, errors.Overflow(errors.PhaseEncode, path, v, "number")
	}
	return n, nil
}

// EncodeConfig maps a Config onto the tree a host would hand in. Zero
// optional values are omitted; DecodeConfig restores them as defaults.
func EncodeConfig(c schema.Config) (map[string]any, error) {
	m := map[string]any{
		"code":     c.Code,
		"filename": c.Filename,
	}
	setString := func(key, v string) {
		if v != "" {
			m[key] = v
		}
	}
	setBool := func(key string, v bool) {
		if v {
			m[key] = true
		}
	}

	setString("module_id", c.ModuleID)
	setString("project_root", c.ProjectRoot)
	setString("loader", string(c.Loader))
	setString("target", string(c.Target))
	setString("format", string(c.Format))
	setString("platform", string(c.Platform))
	setString("legal_comments", string(c.LegalComments))
	setString("jsx_pragma", c.JSXPragma)
	setString("jsx_pragma_frag", c.JSXPragmaFrag)
	setString("jsx_import_source", c.JSXImportSource)
	setString("banner", c.Banner)
	setString("footer", c.Footer)
	setBool("source_maps", c.SourceMaps)
	setBool("minify", c.Minify)
	setBool("keep_names", c.KeepNames)
	setBool("is_development", c.IsDevelopment)
	setBool("replace_env", c.ReplaceEnv)
	setBool("automatic_jsx_runtime", c.AutomaticJSXRuntime)

	if len(c.Env) > 0 {
		m["env"] = stringMap(c.Env)
	}
	if len(c.Define) > 0 {
		m["define"] = stringMap(c.Define)
	}
	if len(c.Drop) > 0 {
		drop := make([]any, len(c.Drop))
		for i, d := range c.Drop {
			drop[i] = string(d)
		}
		m["drop"] = drop
	}
	if c.LineLimit != 0 {
		n, err := encodeInt(c.LineLimit, []string{"line_limit"})
		if err != nil {
			return nil, err
		}
		m["line_limit"] = n
	}
	return m, nil
}

func stringMap(in map[string]string) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
