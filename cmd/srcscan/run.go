package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/srcscan/app"
	"github.com/ludo-technologies/srcscan/domain"
	"github.com/ludo-technologies/srcscan/service"
)

// RunCommand runs metrics, dependency and style analysis in one pass
type RunCommand struct {
	global      *globalOptions
	scan        scanFlags
	style       styleFlags
	skipMetrics bool
	skipDeps    bool
	skipStyle   bool
	timeout     time.Duration
	minScore    int
}

func NewRunCmd(g *globalOptions) *cobra.Command {
	c := &RunCommand{global: g}
	cmd := &cobra.Command{
		Use:   "run [paths...]",
		Short: "Run every analysis and print a combined health report",
		Long: `Run metrics, dependency and style analysis over one scan of the tree and
combine them into a single report with a health score.

Examples:
  srcscan run
  srcscan run --skip-style --format json src/
  srcscan run --min-score 70 .`,
		RunE: c.run,
	}
	c.scan.register(cmd, service.RunFormats)
	c.style.register(cmd)
	fl := cmd.Flags()
	fl.BoolVar(&c.skipMetrics, "skip-metrics", false, "Skip line metrics")
	fl.BoolVar(&c.skipDeps, "skip-deps", false, "Skip dependency analysis")
	fl.BoolVar(&c.skipStyle, "skip-style", false, "Skip style analysis")
	fl.DurationVar(&c.timeout, "timeout", service.DefaultRunTimeout, "Abort the run after this long")
	fl.IntVar(&c.minScore, "min-score", 0, "Exit with an error when the health score is below this value")
	return cmd
}

func (c *RunCommand) run(cmd *cobra.Command, args []string) error {
	env, err := newCommandEnv(cmd, c.global, args)
	if err != nil {
		return err
	}
	format, ext, err := env.outputFormat(&c.scan, service.RunFormats)
	if err != nil {
		return err
	}
	outputPath, err := env.outputPath(&c.scan, "run", ext)
	if err != nil {
		return err
	}

	runService := service.NewRunService(env.serviceOptions("Analyzing")...)
	runService.SetTimeout(c.timeout)

	uc, err := app.NewRunUseCaseBuilder().
		WithService(runService).
		WithFormatter(service.NewRunFormatter()).
		WithOutputWriter(env.reportWriter()).
		Build()
	if err != nil {
		return err
	}

	lineLimit, smallFileLines, namingThreshold := c.style.resolve(env)
	resp, err := uc.Execute(cmd.Context(), domain.RunRequest{
		ScanOptions:     env.scanOptions(&c.scan),
		OutputFormat:    format,
		OutputWriter:    cmd.OutOrStdout(),
		OutputPath:      outputPath,
		EnableMetrics:   !c.skipMetrics,
		EnableDeps:      !c.skipDeps,
		EnableStyle:     !c.skipStyle,
		Architecture:    env.cfg.Architecture.Spec(),
		LineLimit:       lineLimit,
		SmallFileLines:  smallFileLines,
		NamingThreshold: namingThreshold,
	})
	if err != nil {
		return err
	}
	if c.minScore > 0 && resp.Summary.HealthScore < c.minScore {
		return domain.NewAnalysisError("health score below threshold",
			fmt.Errorf("score %d is below the minimum of %d", resp.Summary.HealthScore, c.minScore))
	}
	return nil
}
