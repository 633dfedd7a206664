package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/me/cwl2man/internal/config"
	"github.com/me/cwl2man/internal/logging"
	"github.com/me/cwl2man/internal/manifest"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

const version = "0.1.0"

// NewRootCmd creates the root cobra command for the cwl2man CLI.
func NewRootCmd() *cobra.Command {
	return newRootCmd(afero.NewOsFs())
}

func newRootCmd(fs afero.Fs) *cobra.Command {
	cfg := config.Default()

	root := &cobra.Command{
		Use:     "cwl2man -c <cwl-file|glob>... [flags]",
		Short:   "Convert CWL tool descriptions to a bulker manifest",
		Version: version,
		Long: `cwl2man reads CWL CommandLineTool descriptions, extracts each tool's base
command and Docker image, and writes a bulker manifest listing them.

Examples:
  # Print a manifest for every tool in a directory
  cwl2man -c 'tools/*.cwl'

  # Write a named manifest to a file
  cwl2man -c 'tools/*.cwl' -c extra/bwa.cwl -n bio -o bio.yaml
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Patterns = append(cfg.Patterns, args...)
			if err := cfg.Validate(); err != nil {
				return err
			}
			format, err := logging.ParseFormat(cfg.LogFormat)
			if err != nil {
				return err
			}
			logger := logging.New(cmd.ErrOrStderr(), logging.Level(cfg.LogLevel, cfg.Verbose), format).
				With("run_id", uuid.NewString())
			return run(fs, cfg, logger, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	f := root.Flags()
	f.StringArrayVarP(&cfg.Patterns, "cwl", "c", nil, "CWL file path or glob pattern (repeatable)")
	f.StringVarP(&cfg.Output, "output", "o", "", "Output manifest file path (default: stdout)")
	f.StringVarP(&cfg.Name, "name", "n", cfg.Name, "Manifest name")
	f.StringVar(&cfg.ManifestVersion, "manifest-version", "", "Manifest version field (omitted if empty)")
	f.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Enable verbose logging")
	f.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	f.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text, json) (or CWL2MAN_LOG_FORMAT env)")

	return root
}

// run builds the manifest, reports failures on diag, and writes the manifest
// to cfg.Output or stdout. Nothing is written when the build fails.
func run(fs afero.Fs, cfg config.Config, logger *slog.Logger, stdout, diag io.Writer) error {
	m, failures, err := manifest.NewBuilder(fs, logger).Build(cfg.Patterns, cfg.Name)
	if err != nil {
		return err
	}
	m.Version = cfg.ManifestVersion

	report(diag, m, failures)

	if cfg.Output == "" {
		return manifest.Encode(stdout, m)
	}
	if err := manifest.Write(fs, cfg.Output, m); err != nil {
		return err
	}
	fmt.Fprintf(diag, "Manifest written to %s\n", cfg.Output)
	return nil
}

func report(w io.Writer, m *manifest.Manifest, failures *manifest.Failures) {
	fmt.Fprintf(w, "Commands added: %d\n", len(m.Commands))
	if n := len(failures.CommandMissing); n > 0 {
		fmt.Fprintf(w, "Base command not found (%d): [%s]\n", n, strings.Join(failures.CommandMissing, ", "))
	}
	if n := len(failures.ImageMissing); n > 0 {
		fmt.Fprintf(w, "Image not found (%d): [%s]\n", n, strings.Join(failures.ImageMissing, ", "))
	}
}
