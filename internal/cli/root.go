// Package cli provides the transform command-line interface.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Version information (set at build time).
var Version = "0.1.0"

// settingsKey is used to store settings in context.
type settingsKey struct{}

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	var (
		cfgFile  string
		shutdown func(context.Context) error
	)

	rootCmd := &cobra.Command{
		Use:   "transform",
		Short: "Transform JavaScript and TypeScript sources",
		Long: `transform runs the JavaScript transform on source files, either in
process (--engine go) or inside the compiled WebAssembly module
(--engine wasm --module transform.wasm).`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "version" || cmd.Name() == "completion" {
				return nil
			}

			s, err := LoadSettings(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}

			logger, err := setupLogging(s.Verbose)
			if err != nil {
				return err
			}
			if s.ConfigFile != "" {
				logger.Debug("using config file", zap.String("path", s.ConfigFile))
			}

			shutdown, err = setupTracing(s.Trace, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			cmd.SetContext(context.WithValue(cmd.Context(), settingsKey{}, s))
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			if shutdown == nil {
				return nil
			}
			return shutdown(cmd.Context())
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./transform.yaml)")
	rootCmd.PersistentFlags().String("engine", "", "Transform engine (go|wasm)")
	rootCmd.PersistentFlags().String("module", "", "Path to transform.wasm for --engine wasm")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output format (auto|text|json|yaml)")
	rootCmd.PersistentFlags().String("trace", "", "Trace exporter (stdout)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")

	_ = rootCmd.RegisterFlagCompletionFunc("engine", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{EngineGo, EngineWASM}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{OutputAuto, OutputText, OutputJSON, OutputYAML}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(newRunCommand())
	rootCmd.AddCommand(newCompareCommand())
	rootCmd.AddCommand(newREPLCommand())
	rootCmd.AddCommand(newCheckConfigCommand())
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// settingsFrom retrieves the settings from the command context.
func settingsFrom(ctx context.Context) *Settings {
	if s, ok := ctx.Value(settingsKey{}).(*Settings); ok {
		return s
	}
	return &Settings{Engine: EngineGo, Output: OutputAuto, Options: map[string]any{}}
}

// addOptionFlags registers the per-call flags that map onto the options
// subtree.
func addOptionFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("loader", "", "Source syntax (js|jsx|ts|tsx), default from the filename")
	f.String("target", "", "Language level of the output (esnext|es2015..es2022)")
	f.String("format", "", "Module format (preserve|esm|cjs|iife)")
	f.String("platform", "", "Platform (browser|node|neutral)")
	f.Bool("minify", false, "Minify the output")
	f.Bool("source-maps", false, "Emit a source map")
	f.Bool("keep-names", false, "Keep function and class names when minifying")
	f.Bool("development", false, "Development mode (NODE_ENV and JSX dev runtime)")
	f.Bool("replace-env", false, "Inline process.env.* from the env option")
	f.Bool("automatic-jsx-runtime", false, "Use the automatic JSX runtime")
	f.String("jsx-import-source", "", "Import source for the automatic JSX runtime")
	f.StringSlice("drop", nil, "Drop constructs (console,debugger)")
	f.String("banner", "", "Text prepended to the output")
	f.String("footer", "", "Text appended to the output")
	f.StringArray("define", nil, "Replace a global identifier, NAME=VALUE (repeatable)")
}
