package main

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/srcscan/domain"
	"github.com/ludo-technologies/srcscan/internal/config"
	"github.com/ludo-technologies/srcscan/internal/logging"
	"github.com/ludo-technologies/srcscan/service"
)

// globalOptions holds the persistent flags shared by every command
type globalOptions struct {
	verbose     bool
	noParallel  bool
	noGitignore bool
	configPath  string
}

// scanFlags are the file selection and output flags of analysis commands
type scanFlags struct {
	include     []string
	exclude     []string
	noTests     bool
	maxFileSize int64
	format      string
	output      string
	save        bool
}

func (f *scanFlags) register(cmd *cobra.Command, formats []domain.OutputFormat) {
	names := make([]string, len(formats))
	for i, ff := range formats {
		names[i] = string(ff)
	}
	fl := cmd.Flags()
	fl.StringSliceVar(&f.include, "include", nil, "Glob patterns of files to include (relative to each root)")
	fl.StringSliceVar(&f.exclude, "exclude", nil, "Glob patterns of files to exclude")
	fl.BoolVar(&f.noTests, "no-tests", false, "Skip files classified as tests")
	fl.Int64Var(&f.maxFileSize, "max-file-size", 0, "Skip files larger than this many bytes (0 = no limit)")
	fl.StringVarP(&f.format, "format", "f", "", fmt.Sprintf("Output format (%v)", names))
	fl.StringVarP(&f.output, "output", "o", "", "Write the report to this file instead of stdout")
	fl.BoolVar(&f.save, "save", false, "Write the report to a timestamped file in the output directory")
}

// commandEnv is the resolved configuration for one command invocation
type commandEnv struct {
	cmd    *cobra.Command
	global *globalOptions
	cfg    *config.Config
	flags  *config.FlagTracker
	logger *slog.Logger
	paths  []string
}

// newCommandEnv resolves paths, configuration and logging for cmd
func newCommandEnv(cmd *cobra.Command, g *globalOptions, args []string) (*commandEnv, error) {
	paths, err := expandPaths(args)
	if err != nil {
		return nil, err
	}

	cfg, err := config.LoadConfigWithTarget(g.configPath, paths[0])
	if err != nil {
		return nil, domain.NewConfigError("failed to load configuration", err)
	}

	level := logging.LevelFromString(cfg.Logging.Level)
	if g.verbose {
		level = slog.LevelDebug
	}

	return &commandEnv{
		cmd:    cmd,
		global: g,
		cfg:    cfg,
		flags:  config.NewFlagTrackerFromFlagSet(cmd.Flags()),
		logger: logging.NewLogger(cmd.ErrOrStderr(), level),
		paths:  paths,
	}, nil
}

// expandPaths turns the positional arguments into absolute roots, defaulting to "."
func expandPaths(args []string) ([]string, error) {
	if len(args) == 0 {
		args = []string{"."}
	}
	paths := make([]string, 0, len(args))
	for _, arg := range args {
		abs, err := filepath.Abs(arg)
		if err != nil {
			return nil, domain.NewInvalidInputError(fmt.Sprintf("invalid path %s", arg), err)
		}
		paths = append(paths, abs)
	}
	return paths, nil
}

// scanOptions merges configured analysis settings with explicitly set flags
func (e *commandEnv) scanOptions(f *scanFlags) domain.ScanOptions {
	a := e.cfg.Analysis
	opts := domain.ScanOptions{
		Paths:            e.paths,
		IncludePatterns:  e.flags.MergeStringSlice(a.IncludePatterns, f.include, "include"),
		ExcludePatterns:  e.flags.MergeStringSlice(a.ExcludePatterns, f.exclude, "exclude"),
		RespectGitignore: a.RespectGitignore && !e.global.noGitignore,
		IncludeTests:     e.flags.MergeBool(a.IncludeTests, !f.noTests, "no-tests"),
		Parallel:         a.Parallel && !e.global.noParallel,
		MaxFileSize:      a.MaxFileSize,
	}
	if e.flags.WasSet("max-file-size") {
		opts.MaxFileSize = f.maxFileSize
	}
	return opts
}

// outputFormat picks the report format; a configured default the command
// cannot render falls back to text
func (e *commandEnv) outputFormat(f *scanFlags, allowed []domain.OutputFormat) (domain.OutputFormat, string, error) {
	resolver := service.NewOutputFormatResolver()
	if e.flags.WasSet("format") {
		return resolver.Determine(f.format, allowed)
	}
	format, ext, err := resolver.Determine(e.cfg.Output.Format, allowed)
	if err != nil {
		return resolver.Determine("", allowed)
	}
	return format, ext, nil
}

// outputPath returns where the report goes; empty means stdout
func (e *commandEnv) outputPath(f *scanFlags, command, ext string) (string, error) {
	if f.output != "" {
		return f.output, nil
	}
	if f.save {
		return generateOutputFilePath(command, ext, e.cfg.Output.Directory)
	}
	return "", nil
}

// serviceOptions wires logging, a shared cache and, on a terminal, a progress bar
func (e *commandEnv) serviceOptions(description string) []service.Option {
	opts := []service.Option{
		service.WithLogger(e.logger),
		service.WithCache(service.NewAnalysisCache()),
	}
	if !e.global.verbose && service.IsInteractiveEnvironment() {
		pm := service.NewProgressManager(description)
		pm.SetWriter(e.cmd.ErrOrStderr())
		opts = append(opts, service.WithProgress(pm))
	}
	return opts
}

func (e *commandEnv) reportWriter() domain.ReportWriter {
	return service.NewFileOutputWriter(e.cmd.ErrOrStderr())
}
