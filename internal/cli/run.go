package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/zengjixiang/parcel/transcoder"
)

func newRunCommand() *cobra.Command {
	var filename string

	cmd := &cobra.Command{
		Use:   "run [file]",
		Short: "Transform a file (or stdin) and print the result",
		Long: `Transform one source file with the configured engine.

Reads stdin when no file (or "-") is given. The exit status is non-zero
when the transform reports diagnostics or the configuration is invalid.`,
		Example: `  transform run src/app.tsx
  transform run --minify --source-maps -o json lib.js
  echo 'let a: number = 1' | transform run --filename a.ts`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := settingsFrom(cmd.Context())

			code, name, err := readSource(cmd.InOrStdin(), args, filename)
			if err != nil {
				return err
			}

			eng, err := openEngine(cmd.Context(), s, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer eng.Close(cmd.Context())

			tree, err := eng.Transform(cmd.Context(), s.CallTree(code, name))
			if err != nil {
				return err
			}

			mode := resolveOutput(s.Output, cmd.OutOrStdout())
			if err := render(cmd.OutOrStdout(), mode, tree); err != nil {
				return err
			}

			res, err := transcoder.DecodeResult(tree)
			if err != nil {
				return err
			}
			if res.Diagnostics != nil {
				return fmt.Errorf("%s: %d error(s)", name, len(res.Diagnostics.Errors))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&filename, "filename", "", "Filename reported to the transform (default: the file argument, or stdin.js)")
	addOptionFlags(cmd)
	return cmd
}

// readSource returns the source and the filename to report for it.
func readSource(stdin io.Reader, args []string, filename string) (string, string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		if filename == "" {
			filename = "stdin.js"
		}
		return string(data), filename, nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", fmt.Errorf("read file: %w", err)
	}
	if filename == "" {
		filename = args[0]
	}
	return string(data), filename, nil
}
