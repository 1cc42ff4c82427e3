package main

import (
	"github.com/spf13/cobra"

	"github.com/ludo-technologies/srcscan/app"
	"github.com/ludo-technologies/srcscan/domain"
	"github.com/ludo-technologies/srcscan/service"
)

// MetricsCommand counts code, comment and blank lines
type MetricsCommand struct {
	global    *globalOptions
	scan      scanFlags
	showFiles bool
}

func NewMetricsCmd(g *globalOptions) *cobra.Command {
	c := &MetricsCommand{global: g}
	cmd := &cobra.Command{
		Use:   "metrics [paths...]",
		Short: "Count code, comment and blank lines per language",
		Long: `Count code, comment and blank lines for every file under the given roots,
grouped by language and split into production and test code.

Examples:
  srcscan metrics
  srcscan metrics src/ --files
  srcscan metrics . --format csv -o metrics.csv`,
		RunE: c.run,
	}
	c.scan.register(cmd, service.MetricsFormats)
	cmd.Flags().BoolVar(&c.showFiles, "files", false, "Include the per-file table in text output")
	return cmd
}

func (c *MetricsCommand) run(cmd *cobra.Command, args []string) error {
	env, err := newCommandEnv(cmd, c.global, args)
	if err != nil {
		return err
	}
	format, ext, err := env.outputFormat(&c.scan, service.MetricsFormats)
	if err != nil {
		return err
	}
	outputPath, err := env.outputPath(&c.scan, "metrics", ext)
	if err != nil {
		return err
	}

	uc, err := app.NewMetricsUseCaseBuilder().
		WithService(service.NewMetricsService(env.serviceOptions("Counting lines")...)).
		WithFormatter(service.NewMetricsFormatter(c.showFiles)).
		WithOutputWriter(env.reportWriter()).
		Build()
	if err != nil {
		return err
	}

	return uc.Execute(cmd.Context(), domain.MetricsRequest{
		ScanOptions:  env.scanOptions(&c.scan),
		OutputFormat: format,
		OutputWriter: cmd.OutOrStdout(),
		OutputPath:   outputPath,
		ShowFiles:    c.showFiles,
	})
}
