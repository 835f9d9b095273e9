// Package main provides the CLI entrypoint for guid-corrector.
//
// guid-corrector remaps asset GUIDs that were generated against a
// decompiled package tree so they reference the actually installed
// package:
//   - Correlates descriptor files between the two trees by filename stem
//   - Builds an old->new GUID mapping table (exportable for review)
//   - Rewrites every occurrence of an old GUID across the project tree
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"guid-corrector/internal/config"
	"guid-corrector/internal/guid"
	"guid-corrector/internal/report"
	"guid-corrector/internal/run"
)

const version = "1.1.0"

// Exit codes: 0 completed, 1 usage/config error, 2 validation failed,
// 3 no mappings found.
const (
	exitValidationFailed = 2
	exitNoMappings       = 3
)

var (
	// Global flags
	sourcePath    string
	referencePath string
	projectPath   string
	configPath    string
	logFile       string
	verbose       bool

	// run flags
	dryRun        bool
	mappingFile   string
	exportMapping string

	// plan flags
	planExport string
	debugTable bool

	// new-guid flags
	newGUIDCount int

	// Logger, built per invocation in PersistentPreRunE
	logger *zap.Logger
)

// exitError carries a process exit code through cobra's error return.
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string {
	return e.msg
}

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "guid-corrector",
	Short: "Remap asset GUIDs from a decompiled package to the installed one",
	Long: `guid-corrector correlates descriptor (.meta) files between a decompiled
source tree and the actually installed reference tree by filename stem,
builds an old->new GUID mapping table, and rewrites every occurrence of an
old GUID across the project tree's asset files.

Run 'guid-corrector run' for the full pipeline, or 'guid-corrector plan' to
build and export the mapping table without touching the project.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == newGUIDCmd.Name() {
			// new-guid only prints; don't open the run log for it.
			return nil
		}

		var err error

		logger, err = buildLogger()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// runCmd executes the full correction pipeline
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Build the mapping table and rewrite the project tree",
	Long: `Runs the full pipeline:
  1. Validate the three configured paths
  2. Build GUID mappings by stem correlation (or load a reviewed table)
  3. Collect target files by extension
  4. Replace old GUIDs and write back changed files`,
	RunE: runCorrection,
}

// planCmd builds the table without mutating anything
var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Build and export the mapping table without touching the project",
	Long: `Builds the GUID mapping table from the source and reference trees and
writes it to a YAML file for review. The project tree is never read or
written. Apply the reviewed table later with 'run --mapping <file>'.`,
	RunE: runPlan,
}

// newGUIDCmd mints fresh asset GUIDs, handy when authoring a descriptor or
// a mapping entry by hand.
var newGUIDCmd = &cobra.Command{
	Use:   "new-guid",
	Short: "Print freshly generated asset GUIDs",
	Long: `Prints newly generated 32-hex-digit asset GUIDs, one per line. Use these
when hand-writing a descriptor file or the 'new:' side of a mapping entry.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		for i := 0; i < newGUIDCount; i++ {
			fmt.Fprintln(cmd.OutOrStdout(), guid.Random())
		}

		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&sourcePath, "source", "s", "", "decompiled package tree (descriptors with stale GUIDs)")
	pf.StringVarP(&referencePath, "reference", "r", "", "installed package tree (authoritative descriptors)")
	pf.StringVarP(&projectPath, "project", "p", "", "project tree to rewrite")
	pf.StringVarP(&configPath, "config", "c", "guidfix.yaml", "optional YAML config file")
	pf.StringVar(&logFile, "log-file", "", "persistent run log (default guid_correction.log)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	runCmd.Flags().BoolVar(&dryRun, "dry-run", false, "report would-be modifications without writing")
	runCmd.Flags().StringVar(&mappingFile, "mapping", "", "apply a reviewed mapping YAML instead of building one")
	runCmd.Flags().StringVar(&exportMapping, "export-mapping", "", "also write the built table to this YAML file")

	planCmd.Flags().StringVar(&planExport, "export-mapping", "guid-mappings.yaml", "where to write the built table")
	planCmd.Flags().BoolVar(&debugTable, "debug-table", false, "dump the resolved table to stderr")

	newGUIDCmd.Flags().IntVarP(&newGUIDCount, "count", "n", 1, "number of GUIDs to print")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(newGUIDCmd)
}

// resolveLogPath returns the persistent log path: the --log-file flag wins,
// then the config file's log_file, then the default. The logger is built
// before the rest of the config is processed, so the file has to be
// consulted here as well.
func resolveLogPath() string {
	if logFile != "" {
		return logFile
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Default().LogFile
	}

	return cfg.LogFile
}

// buildLogger mirrors the original tool's file-and-console log: a console
// encoder teed to stderr and the persistent run log.
func buildLogger() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	cfg.OutputPaths = []string{"stderr", resolveLogPath()}
	cfg.ErrorOutputPaths = []string{"stderr"}

	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	return cfg.Build()
}

// loadConfig merges the optional config file with command-line flags; flags
// win. Paths still missing afterwards are prompted for on a terminal.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, err
	}

	if sourcePath != "" {
		cfg.SourcePath = sourcePath
	}

	if referencePath != "" {
		cfg.ReferencePath = referencePath
	}

	if projectPath != "" {
		cfg.ProjectPath = projectPath
	}

	if logFile != "" {
		cfg.LogFile = logFile
	}

	if dryRun {
		cfg.DryRun = true
	}

	if mappingFile != "" {
		cfg.MappingFile = mappingFile
	}

	if exportMapping != "" {
		cfg.ExportFile = exportMapping
	}

	if err := promptMissingPaths(&cfg, os.Stdin, stdinIsTerminal()); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// errMissingPaths is returned when required paths are unset and nobody is
// there to answer a prompt.
var errMissingPaths = errors.New("missing required path; set --source, --reference, and --project")

// promptMissingPaths asks for unset paths interactively, matching the
// original tool's prompts. Off a terminal the paths are simply required.
// Stdin can stat as a character device without anyone attached (for
// example when redirected from /dev/null), so hitting EOF on a prompt is
// treated the same as running non-interactively.
func promptMissingPaths(cfg *config.Config, in io.Reader, interactive bool) error {
	prompts := []struct {
		value *string
		label string
	}{
		{&cfg.SourcePath, "Enter decompiled package path: "},
		{&cfg.ReferencePath, "Enter actual package path: "},
		{&cfg.ProjectPath, "Enter project path: "},
	}

	reader := bufio.NewReader(in)

	for _, p := range prompts {
		if *p.value != "" {
			continue
		}

		if !interactive {
			return errMissingPaths
		}

		fmt.Fprint(os.Stdout, p.label)

		line, err := reader.ReadString('\n')
		if errors.Is(err, io.EOF) {
			if strings.TrimSpace(line) == "" {
				return errMissingPaths
			}
		} else if err != nil {
			return fmt.Errorf("reading path from stdin: %w", err)
		}

		*p.value = strings.TrimSpace(line)
	}

	return nil
}

func stdinIsTerminal() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}

	return info.Mode()&os.ModeCharDevice != 0
}

func runCorrection(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	console := report.NewConsole(cmd.OutOrStdout())
	console.Banner(version)

	rep, err := run.New(cfg, logger, console).Run(cmd.Context())
	if err != nil {
		return err
	}

	return outcomeError(rep.Outcome)
}

func runPlan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	console := report.NewConsole(cmd.OutOrStdout())
	console.Banner(version)

	rep, table, err := run.New(cfg, logger, console).Plan(planExport)
	if err != nil {
		return err
	}

	if table != nil && debugTable {
		spew.Fdump(os.Stderr, table.Pairs())
	}

	return outcomeError(rep.Outcome)
}

// outcomeError maps non-success outcomes to distinct exit codes.
func outcomeError(o run.Outcome) error {
	switch o {
	case run.OutcomeValidationFailed:
		return &exitError{code: exitValidationFailed, msg: o.String()}
	case run.OutcomeNoMappings:
		return &exitError{code: exitNoMappings, msg: o.String()}
	default:
		return nil
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		var ee *exitError
		if errors.As(err, &ee) {
			os.Exit(ee.code)
		}

		os.Exit(1)
	}
}
