package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/kr/pretty"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/skein-lang/skein/pkg/canon"
	"github.com/skein-lang/skein/pkg/skein"
	"github.com/skein-lang/skein/pkg/subst"
)

func canonCmd(cfg *Config) *cobra.Command {
	var digest bool
	cmd := &cobra.Command{
		Use:   "canon [file]",
		Short: "Canonicalize a serialized term",
		Long: `Reads a serialized term (from a file, or stdin when the argument is "-"
or omitted) and prints its canonical form. With --digest, prints the
SHA-256 content-address of the canonical form instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			term, err := readTerm(args)
			if err != nil {
				return err
			}
			if cfg.Debug {
				slog.Debug("decoded term", "dump", pretty.Sprint(term))
			}
			out := canon.Canon(term)
			if digest {
				sum, err := canon.Digest(out)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%x\n", sum)
				return nil
			}
			return writeTerm(cmd.OutOrStdout(), out, cfg.Output)
		},
	}
	cmd.Flags().BoolVar(&digest, "digest", false, "Print the term's content-address instead of the term")
	return cmd
}

func substCmd(cfg *Config) *cobra.Command {
	var shift int
	cmd := &cobra.Command{
		Use:   "subst [file]",
		Short: "Substitute environment bindings into a term",
		Long: `Reads a serialized term and rewrites it under the environment described
by --env: bound-variable references resolve to their bindings and the
result is re-canonicalized. --shift pushes additional unbound binder
levels before substituting.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			term, err := readTerm(args)
			if err != nil {
				return err
			}
			env, err := loadEnv(cfg.EnvFile)
			if err != nil {
				return err
			}
			if shift > 0 {
				env = env.Shift(shift)
			}
			if cfg.Debug {
				slog.Debug("decoded term", "dump", pretty.Sprint(term))
				slog.Debug("environment", "shift", env.CurrentShift())
			}
			sub := subst.New(canon.Sorter{})
			out, err := sub.Substitute(term, env)
			if err != nil {
				return err
			}
			return writeTerm(cmd.OutOrStdout(), out, cfg.Output)
		},
	}
	cmd.Flags().StringVarP(&cfg.EnvFile, "env", "e", cfg.EnvFile, "Path to a JSON environment-bindings file")
	cmd.Flags().IntVar(&shift, "shift", 0, "Additional binder levels to push before substituting")
	return cmd
}

func readTerm(args []string) (*skein.Par, error) {
	var (
		data []byte
		err  error
	)
	if len(args) == 0 || args[0] == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return nil, errors.Wrap(err, "reading term")
	}
	return skein.UnmarshalTerm(data)
}

func writeTerm(w io.Writer, p *skein.Par, format string) error {
	switch format {
	case "", "pretty":
		_, err := fmt.Fprintln(w, p)
		return err
	case "json":
		data, err := json.MarshalIndent(p, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	default:
		return errors.Errorf("unknown output format %q", format)
	}
}

// envSpec is the on-disk shape of an environment-bindings file.
type envSpec struct {
	// Shift is the number of binder levels already pushed.
	Shift int `json:"shift,omitempty"`
	// Bindings maps base de Bruijn indices (as decimal strings) to the
	// resolved terms substituted at those indices.
	Bindings map[string]*skein.Par `json:"bindings,omitempty"`
}

func loadEnv(path string) (subst.Env, error) {
	env := subst.NewEnv()
	if path == "" {
		return env, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return env, errors.Wrap(err, "reading env")
	}
	var spec envSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		return env, errors.Wrapf(err, "parsing %s", path)
	}
	for key, val := range spec.Bindings {
		idx, err := strconv.Atoi(key)
		if err != nil {
			return env, errors.Errorf("env binding key %q is not an index", key)
		}
		env = env.Bind(idx, val)
	}
	return env.Shift(spec.Shift), nil
}
