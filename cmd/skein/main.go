package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/skein-lang/skein/pkg/skein"
)

// Config holds the application configuration
type Config struct {
	Debug   bool
	Output  string // "pretty" or "json"
	EnvFile string
}

func main() {
	var cfg Config

	rootCmd := &cobra.Command{
		Use:   "skein",
		Short: "Skein process-calculus toolchain",
		Long: `Skein is a concurrent process-calculus language for smart-contract logic.
This tool works on serialized (fully elaborated) terms: it canonicalizes
them and applies environment substitution, the same operations the
evaluator performs during contract execution.`,
		Example: `  # Canonicalize a serialized term
  skein canon term.json

  # Substitute environment bindings into a term
  skein subst term.json --env env.json

  # Print the content-address of a term
  skein canon term.json --digest`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(cfg.Debug)
			applyProjectDefaults(&cfg)
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&cfg.Debug, "debug", "d", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", "", "Output format: pretty or json")

	rootCmd.AddCommand(canonCmd(&cfg))
	rootCmd.AddCommand(substCmd(&cfg))

	ctx := context.Background()
	if err := fang.Execute(ctx, rootCmd,
		fang.WithVersion("v0.1.0"),
		fang.WithCommit("dev"),
		fang.WithErrorHandler(func(w io.Writer, styles fang.Styles, err error) {
			_, _ = fmt.Fprintln(w, err.Error())
		}),
	); err != nil {
		os.Exit(1)
	}
}

func setupLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

// applyProjectDefaults fills unset flags from a skein.toml found in the
// working directory or above it.
func applyProjectDefaults(cfg *Config) {
	wd, err := os.Getwd()
	if err != nil {
		return
	}
	path, project, err := skein.FindProjectConfig(wd)
	if err != nil {
		slog.Warn("ignoring project config", "error", err)
		return
	}
	if project == nil {
		return
	}
	slog.Debug("loaded project config", "path", path)
	if cfg.Output == "" {
		cfg.Output = project.Output
	}
	if cfg.EnvFile == "" && project.Env != "" {
		cfg.EnvFile = filepath.Join(filepath.Dir(path), project.Env)
	}
}
