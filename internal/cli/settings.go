package cli

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/zengjixiang/parcel/errors"
)

const (
	EngineGo   = "go"
	EngineWASM = "wasm"

	OutputAuto = "auto"
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"

	TraceStdout = "stdout"

	envPrefix = "TRANSFORM_"

	// keyDelim joins nested config keys. Define keys such as
	// process.env.NODE_ENV contain dots, so dots cannot be used.
	keyDelim = "/"
)

// Settings is the merged CLI configuration.
// Precedence (highest to lowest): flags > env vars > config file > defaults
type Settings struct {
	Engine  string `koanf:"engine"`
	Module  string `koanf:"module"`
	Output  string `koanf:"output"`
	Trace   string `koanf:"trace"`
	Verbose bool   `koanf:"verbose"`

	// Options is a Config subtree merged under every call.
	Options map[string]any `koanf:"options"`

	// ConfigFile is the file that was loaded, if any.
	ConfigFile string `koanf:"-"`
}

var defaults = map[string]any{
	"engine":  EngineGo,
	"module":  "",
	"output":  OutputAuto,
	"trace":   "",
	"verbose": false,
}

// optionFlags maps per-call flags onto keys of the options subtree.
var optionFlags = map[string]string{
	"loader":                "loader",
	"target":                "target",
	"format":                "format",
	"platform":              "platform",
	"minify":                "minify",
	"source-maps":           "source_maps",
	"keep-names":            "keep_names",
	"development":           "is_development",
	"replace-env":           "replace_env",
	"automatic-jsx-runtime": "automatic_jsx_runtime",
	"jsx-import-source":     "jsx_import_source",
	"drop":                  "drop",
	"banner":                "banner",
	"footer":                "footer",
	"define":                "define",
}

func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{"transform.yaml", "transform.yml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// LoadSettings merges defaults, the config file, TRANSFORM_* environment
// variables and explicitly set flags.
//
// Nested keys use a double underscore in the environment, so
// TRANSFORM_OPTIONS__SOURCE_MAPS=true sets options.source_maps. Values
// are parsed as YAML scalars.
func LoadSettings(cfgFile string, flags *pflag.FlagSet) (*Settings, error) {
	k := koanf.New(keyDelim)

	if err := k.Load(confmap.Provider(defaults, keyDelim), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	used := findConfigFile(cfgFile)
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", used, err)
		}
	}

	if err := k.Load(env.ProviderWithValue(envPrefix, keyDelim, envValue), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		var defineErr error
		if err := k.Load(posflag.ProviderWithFlag(flags, keyDelim, k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			opt, isOption := optionFlags[f.Name]
			if !isOption {
				return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
			}
			val := flagValue(flags, f)
			if opt == "define" {
				defs, err := parseDefines(val)
				if err != nil {
					defineErr = err
					return "", nil
				}
				return "options" + keyDelim + "define", defs
			}
			return "options" + keyDelim + opt, val
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
		if defineErr != nil {
			return nil, defineErr
		}
	}

	var s Settings
	if err := k.Unmarshal("", &s); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if s.Options == nil {
		s.Options = map[string]any{}
	}
	s.ConfigFile = used

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// envValue maps TRANSFORM_ENGINE to engine and
// TRANSFORM_OPTIONS__MINIFY to options/minify.
func envValue(key, value string) (string, interface{}) {
	key = strings.ToLower(strings.TrimPrefix(key, envPrefix))
	key = strings.ReplaceAll(key, "__", keyDelim)

	var v any
	if err := yamlv3.Unmarshal([]byte(value), &v); err != nil || v == nil {
		return key, value
	}
	switch v.(type) {
	case bool, int, float64, string:
		return key, v
	default:
		return key, value
	}
}

func flagValue(flags *pflag.FlagSet, f *pflag.Flag) any {
	switch f.Value.Type() {
	case "stringArray":
		v, _ := flags.GetStringArray(f.Name)
		return v
	case "stringSlice":
		v, _ := flags.GetStringSlice(f.Name)
		return v
	default:
		return posflag.FlagVal(flags, f)
	}
}

func parseDefines(v any) (map[string]any, error) {
	var pairs []string
	switch x := v.(type) {
	case []string:
		pairs = x
	case string:
		pairs = []string{x}
	}
	out := make(map[string]any, len(pairs))
	for _, p := range pairs {
		name, value, ok := strings.Cut(p, "=")
		if !ok || name == "" {
			return nil, errors.InvalidInput(errors.PhaseConfig, fmt.Sprintf("define %q: expected NAME=VALUE", p))
		}
		out[name] = value
	}
	return out, nil
}

// Validate checks the enumerated settings.
func (s *Settings) Validate() error {
	if !slices.Contains([]string{EngineGo, EngineWASM}, s.Engine) {
		return errors.InvalidEnum(errors.PhaseConfig, []string{"engine"}, s.Engine, []string{EngineGo, EngineWASM})
	}
	outputs := []string{OutputAuto, OutputText, OutputJSON, OutputYAML}
	if !slices.Contains(outputs, s.Output) {
		return errors.InvalidEnum(errors.PhaseConfig, []string{"output"}, s.Output, outputs)
	}
	if s.Trace != "" && s.Trace != TraceStdout {
		return errors.InvalidEnum(errors.PhaseConfig, []string{"trace"}, s.Trace, []string{"", TraceStdout})
	}
	if s.Engine == EngineWASM && s.Module == "" {
		return errors.FieldMissing(errors.PhaseConfig, []string{"module"}, "module")
	}
	return nil
}

// CallTree builds the per-call configuration: the options subtree with
// code and filename set.
func (s *Settings) CallTree(code, filename string) map[string]any {
	tree := make(map[string]any, len(s.Options)+2)
	for k, v := range s.Options {
		tree[k] = v
	}
	tree["code"] = code
	tree["filename"] = filename
	return tree
}
