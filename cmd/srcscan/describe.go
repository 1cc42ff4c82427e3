package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/srcscan/app"
	"github.com/ludo-technologies/srcscan/domain"
	"github.com/ludo-technologies/srcscan/service"
)

// DescribeCommand asks a text completion endpoint to describe the project
type DescribeCommand struct {
	global     *globalOptions
	scan       scanFlags
	endpoint   string
	batchModel string
	finalModel string
}

func NewDescribeCmd(g *globalOptions) *cobra.Command {
	c := &DescribeCommand{global: g}
	cmd := &cobra.Command{
		Use:   "describe [paths...]",
		Short: "Generate a natural language description of the project",
		Long: `Summarize the source files in batches with a text completion endpoint, then
merge the summaries into one project description.

The API key is read from the environment variable named by completion.api_key_env
(OPENAI_API_KEY by default).

Examples:
  srcscan describe
  srcscan describe --format markdown -o DESCRIPTION.md src/`,
		RunE: c.run,
	}
	c.scan.register(cmd, service.DescribeFormats)
	cmd.Flags().StringVar(&c.endpoint, "endpoint", "", "Chat completions endpoint URL")
	cmd.Flags().StringVar(&c.batchModel, "batch-model", "", "Model used to summarize file batches")
	cmd.Flags().StringVar(&c.finalModel, "final-model", "", "Model used for the final description")
	return cmd
}

func (c *DescribeCommand) run(cmd *cobra.Command, args []string) error {
	env, err := newCommandEnv(cmd, c.global, args)
	if err != nil {
		return err
	}
	format, ext, err := env.outputFormat(&c.scan, service.DescribeFormats)
	if err != nil {
		return err
	}
	outputPath, err := env.outputPath(&c.scan, "describe", ext)
	if err != nil {
		return err
	}

	comp := env.cfg.Completion
	apiKey := comp.APIKey()
	if apiKey == "" {
		return domain.NewConfigError(fmt.Sprintf("environment variable %s is not set", comp.APIKeyEnv), nil)
	}
	endpoint := env.flags.MergeString(comp.Endpoint, c.endpoint, "endpoint")
	timeout := time.Duration(comp.TimeoutSeconds) * time.Second
	batch := service.NewHTTPCompleter(endpoint, env.flags.MergeString(comp.BatchModel, c.batchModel, "batch-model"), apiKey, timeout, env.logger)
	final := service.NewHTTPCompleter(endpoint, env.flags.MergeString(comp.FinalModel, c.finalModel, "final-model"), apiKey, timeout, env.logger)

	uc, err := app.NewDescribeUseCaseBuilder().
		WithService(service.NewDescribeService(batch, final, env.serviceOptions("Reading files")...)).
		WithFormatter(service.NewDescribeFormatter()).
		WithOutputWriter(env.reportWriter()).
		Build()
	if err != nil {
		return err
	}

	return uc.Execute(cmd.Context(), domain.DescribeRequest{
		ScanOptions:  env.scanOptions(&c.scan),
		OutputFormat: format,
		OutputWriter: cmd.OutOrStdout(),
		OutputPath:   outputPath,
	})
}
