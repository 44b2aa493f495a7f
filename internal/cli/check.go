package cli

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/spf13/cobra"

	"github.com/zengjixiang/parcel/errors"
	"github.com/zengjixiang/parcel/schema"
	"github.com/zengjixiang/parcel/transcoder"
)

const configSchemaURL = "https://github.com/zengjixiang/parcel/schema/config.schema.json"

func newCheckConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check-config [file]",
		Short: "Validate the options of a config file",
		Long: `Validate the options subtree against the Config JSON Schema and the
decoder. Without a file argument the merged configuration (file, env
and flags) is checked.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			options := settingsFrom(cmd.Context()).Options
			if len(args) == 1 {
				var err error
				if options, err = loadOptions(args[0]); err != nil {
					return err
				}
			}

			if err := checkOptions(options); err != nil {
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "configuration ok")
			return err
		},
	}
}

func loadOptions(path string) (map[string]any, error) {
	k := koanf.New(keyDelim)
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}
	options := k.Get("options")
	if options == nil {
		return map[string]any{}, nil
	}
	m, ok := options.(map[string]any)
	if !ok {
		return nil, errors.TypeMismatch(errors.PhaseConfig, []string{"options"}, "mapping", transcoder.TypeName(options))
	}
	return m, nil
}

// checkOptions validates options as a Config without code and filename,
// first against the JSON Schema, then through the decoder.
func checkOptions(options map[string]any) error {
	tree := (&Settings{Options: options}).CallTree("", "check.js")

	sch, err := compileConfigSchema()
	if err != nil {
		return err
	}
	doc, err := jsonDocument(tree)
	if err != nil {
		return err
	}
	if err := sch.Validate(doc); err != nil {
		return fmt.Errorf("options: %w", err)
	}

	if _, err := transcoder.DecodeConfig(tree); err != nil {
		return err
	}
	return nil
}

func compileConfigSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(configSchemaURL, bytes.NewReader(schema.ConfigJSONSchema)); err != nil {
		return nil, fmt.Errorf("add config schema: %w", err)
	}
	sch, err := compiler.Compile(configSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile config schema: %w", err)
	}
	return sch, nil
}

// jsonDocument round-trips v through JSON so the validator sees the
// value types it expects.
func jsonDocument(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode options: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode options: %w", err)
	}
	return doc, nil
}
