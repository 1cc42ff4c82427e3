package main

import (
	"github.com/spf13/cobra"

	"github.com/ludo-technologies/srcscan/app"
	"github.com/ludo-technologies/srcscan/domain"
	"github.com/ludo-technologies/srcscan/service"
)

// styleFlags are the detector thresholds shared by style and run
type styleFlags struct {
	lineLimit       int
	smallFileLines  int
	namingThreshold float64
}

func (f *styleFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.IntVar(&f.lineLimit, "line-limit", 0, "Lines longer than this count as long lines")
	fl.IntVar(&f.smallFileLines, "small-file-lines", 0, "Files shorter than this skip naming detection")
	fl.Float64Var(&f.namingThreshold, "naming-threshold", 0, "Share of identifiers that must agree on a naming convention")
}

func (f *styleFlags) resolve(env *commandEnv) (lineLimit, smallFileLines int, namingThreshold float64) {
	s := env.cfg.Style
	return env.flags.MergeInt(s.LineLimit, f.lineLimit, "line-limit"),
		env.flags.MergeInt(s.SmallFileLines, f.smallFileLines, "small-file-lines"),
		env.flags.MergeFloat64(s.NamingThreshold, f.namingThreshold, "naming-threshold")
}

// StyleCommand profiles coding conventions and reports deviations
type StyleCommand struct {
	global    *globalOptions
	scan      scanFlags
	style     styleFlags
	maxIssues int
}

func NewStyleCmd(g *globalOptions) *cobra.Command {
	c := &StyleCommand{global: g}
	cmd := &cobra.Command{
		Use:   "style [paths...]",
		Short: "Detect the project's coding conventions and files that deviate from them",
		Long: `Profile indentation, line length, naming, braces, imports and documentation
in every file, derive the project-wide conventions and report inconsistencies.

Examples:
  srcscan style
  srcscan style --format markdown -o STYLE.md
  srcscan style --line-limit 120 src/`,
		RunE: c.run,
	}
	c.scan.register(cmd, service.StyleFormats)
	c.style.register(cmd)
	cmd.Flags().IntVar(&c.maxIssues, "max-issues", 0, "Inconsistencies to print in text output (0 = all)")
	return cmd
}

func (c *StyleCommand) run(cmd *cobra.Command, args []string) error {
	env, err := newCommandEnv(cmd, c.global, args)
	if err != nil {
		return err
	}
	format, ext, err := env.outputFormat(&c.scan, service.StyleFormats)
	if err != nil {
		return err
	}
	outputPath, err := env.outputPath(&c.scan, "style", ext)
	if err != nil {
		return err
	}

	limit := env.flags.MergeInt(env.cfg.Style.MaxInconsistencies, c.maxIssues, "max-issues")
	uc, err := app.NewStyleUseCaseBuilder().
		WithService(service.NewStyleService(env.serviceOptions("Profiling style")...)).
		WithFormatter(service.NewStyleFormatter(limit)).
		WithOutputWriter(env.reportWriter()).
		Build()
	if err != nil {
		return err
	}

	lineLimit, smallFileLines, namingThreshold := c.style.resolve(env)
	return uc.Execute(cmd.Context(), domain.StyleRequest{
		ScanOptions:        env.scanOptions(&c.scan),
		OutputFormat:       format,
		OutputWriter:       cmd.OutOrStdout(),
		OutputPath:         outputPath,
		MaxInconsistencies: limit,
		LineLimit:          lineLimit,
		SmallFileLines:     smallFileLines,
		NamingThreshold:    namingThreshold,
	})
}
