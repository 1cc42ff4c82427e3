package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/srcscan/internal/version"
	"github.com/ludo-technologies/srcscan/service"
)

// newRootCmd assembles the command tree around one set of global options
func newRootCmd() *cobra.Command {
	g := &globalOptions{}

	root := &cobra.Command{
		Use:   "srcscan",
		Short: "Language-agnostic source code metrics, dependencies and style analysis",
		Long: `srcscan scans source trees written in any mix of languages without parsing them.

Features:
  • Line metrics split into code, comment and blank lines per language
  • Import graphs with cycle detection and layer rules
  • Style profiling that reports files deviating from the project's conventions
  • Comment stripping with an audit trail`,
		Version:       version.Short(),
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	pf := root.PersistentFlags()
	pf.BoolVarP(&g.verbose, "verbose", "v", false, "Enable verbose output")
	pf.BoolVar(&g.noParallel, "no-parallel", false, "Process files sequentially")
	pf.BoolVar(&g.noGitignore, "no-gitignore", false, "Do not honor .gitignore files")
	pf.StringVarP(&g.configPath, "config", "c", "", "Configuration file path (.srcscan.toml, YAML or JSON)")

	root.AddCommand(
		NewMetricsCmd(g),
		NewDepsCmd(g),
		NewStyleCmd(g),
		NewCleanCommentsCmd(g),
		NewDeleteCommentsCmd(g),
		NewDescribeCmd(g),
		NewRunCmd(g),
		NewInitCmd(),
		NewVersionCmd(),
	)
	return root
}

// printError writes a categorized error and recovery hints
func printError(w io.Writer, err error) {
	categorized := service.NewErrorCategorizer()
	ce := categorized.Categorize(err)
	fmt.Fprintf(w, "Error: %v\n", err)
	if ce == nil || ce.Category == "" {
		return
	}
	fmt.Fprintf(w, "\n%s: %s\n", ce.Category, ce.Message)
	for _, s := range categorized.GetRecoverySuggestions(ce.Category) {
		fmt.Fprintf(w, "  • %s\n", s)
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}
