package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/zengjixiang/parcel/errors"
	"github.com/zengjixiang/parcel/transcoder"
)

func newCompareCommand() *cobra.Command {
	var filename string

	cmd := &cobra.Command{
		Use:   "compare [file]",
		Short: "Run the Go and WebAssembly engines on the same input and diff the results",
		Long: `Transform one source file with both engines and report every field
that differs. Requires --module. The exit status is non-zero when the
engines disagree.`,
		Example: `  transform compare --module transform.wasm src/app.tsx`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := settingsFrom(cmd.Context())
			if s.Module == "" {
				return errors.FieldMissing(errors.PhaseConfig, []string{"module"}, "module")
			}

			code, name, err := readSource(cmd.InOrStdin(), args, filename)
			if err != nil {
				return err
			}

			goEng := newGoEngine()
			wasmEng, err := newWASMEngine(cmd.Context(), s.Module, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer wasmEng.Close(cmd.Context())

			diffs, err := compareEngines(cmd.Context(), goEng, wasmEng, s.CallTree(code, name))
			if err != nil {
				return err
			}
			return reportDifferences(cmd.OutOrStdout(), diffs)
		},
	}

	cmd.Flags().StringVar(&filename, "filename", "", "Filename reported to the transform")
	addOptionFlags(cmd)
	return cmd
}

// compareEngines runs tree through both engines. Results are compared
// after a decode/encode pass so that number representations agree;
// adapter errors are compared by phase, kind and path.
func compareEngines(ctx context.Context, left, right Engine, tree map[string]any) ([]Difference, error) {
	l, err := canonicalRun(ctx, left, tree)
	if err != nil {
		return nil, err
	}
	r, err := canonicalRun(ctx, right, tree)
	if err != nil {
		return nil, err
	}
	return diffTrees(l, r), nil
}

func canonicalRun(ctx context.Context, eng Engine, tree map[string]any) (any, error) {
	out, err := eng.Transform(ctx, tree)
	if err != nil {
		var e *errors.Error
		if !stderrors.As(err, &e) {
			return nil, fmt.Errorf("%s engine: %w", eng.Name(), err)
		}
		rec := map[string]any{"phase": string(e.Phase), "kind": string(e.Kind)}
		if len(e.Path) > 0 {
			rec["path"] = e.Record()["path"]
		}
		return map[string]any{"error": rec}, nil
	}

	res, err := transcoder.DecodeResult(out)
	if err != nil {
		return nil, fmt.Errorf("%s engine: %w", eng.Name(), err)
	}
	return transcoder.EncodeResult(res)
}

func reportDifferences(w io.Writer, diffs []Difference) error {
	if len(diffs) == 0 {
		_, err := fmt.Fprintln(w, "engines agree")
		return err
	}
	for _, d := range diffs {
		if _, err := fmt.Fprintf(w, "%s\n", d); err != nil {
			return err
		}
	}
	return fmt.Errorf("engines disagree on %d field(s)", len(diffs))
}
