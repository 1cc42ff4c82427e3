package main

import (
	"github.com/spf13/cobra"

	"github.com/ludo-technologies/srcscan/app"
	"github.com/ludo-technologies/srcscan/domain"
	"github.com/ludo-technologies/srcscan/service"
)

// DepsCommand builds the import graph and reports cycles
type DepsCommand struct {
	global *globalOptions
	scan   scanFlags
	focus  string
}

func NewDepsCmd(g *globalOptions) *cobra.Command {
	c := &DepsCommand{global: g}
	cmd := &cobra.Command{
		Use:   "deps [paths...]",
		Short: "Build the file dependency graph and detect cycles",
		Long: `Extract imports from every supported file, build the dependency graph and
report circular dependencies. Layer rules from the configuration file are
checked when present.

Examples:
  srcscan deps src/
  srcscan deps --format dot src/ > deps.dot
  srcscan deps --format mermaid --focus service .`,
		RunE: c.run,
	}
	c.scan.register(cmd, service.DepsFormats)
	cmd.Flags().StringVar(&c.focus, "focus", "", "Only draw nodes whose path contains this text (plantuml, mermaid)")
	return cmd
}

func (c *DepsCommand) run(cmd *cobra.Command, args []string) error {
	env, err := newCommandEnv(cmd, c.global, args)
	if err != nil {
		return err
	}
	format, ext, err := env.outputFormat(&c.scan, service.DepsFormats)
	if err != nil {
		return err
	}
	outputPath, err := env.outputPath(&c.scan, "deps", ext)
	if err != nil {
		return err
	}

	uc, err := app.NewDepsUseCaseBuilder().
		WithService(service.NewDependencyService(env.serviceOptions("Extracting imports")...)).
		WithFormatter(service.NewDepsFormatter()).
		WithOutputWriter(env.reportWriter()).
		Build()
	if err != nil {
		return err
	}

	return uc.Execute(cmd.Context(), domain.DependencyRequest{
		ScanOptions:  env.scanOptions(&c.scan),
		OutputFormat: format,
		OutputWriter: cmd.OutOrStdout(),
		OutputPath:   outputPath,
		Focus:        c.focus,
		Architecture: env.cfg.Architecture.Spec(),
	})
}
