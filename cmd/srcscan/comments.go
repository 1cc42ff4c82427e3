package main

import (
	"github.com/spf13/cobra"

	"github.com/ludo-technologies/srcscan/app"
	"github.com/ludo-technologies/srcscan/domain"
	"github.com/ludo-technologies/srcscan/service"
)

// CommentsCommand strips comment-only lines under one policy
type CommentsCommand struct {
	global  *globalOptions
	scan    scanFlags
	policy  domain.CommentPolicy
	dryRun  bool
	audit   string
	noAudit bool
}

// NewCleanCommentsCmd removes comment-only lines entirely
func NewCleanCommentsCmd(g *globalOptions) *cobra.Command {
	c := &CommentsCommand{global: g, policy: domain.CommentPolicyClean}
	cmd := &cobra.Command{
		Use:   "clean-comments [paths...]",
		Short: "Remove comment-only lines from source files",
		Long: `Remove every line that holds nothing but a comment. Doc comments and
lines carrying the 'srcscan: ignore' marker are kept.

Examples:
  srcscan clean-comments --dry-run src/
  srcscan clean-comments --include "**/*.rs"`,
		RunE: c.run,
	}
	c.register(cmd)
	return cmd
}

// NewDeleteCommentsCmd blanks comment-only lines and exports what was removed
func NewDeleteCommentsCmd(g *globalOptions) *cobra.Command {
	c := &CommentsCommand{global: g, policy: domain.CommentPolicyDelete}
	cmd := &cobra.Command{
		Use:   "delete-comments [paths...]",
		Short: "Blank comment-only lines and export them to a JSON audit file",
		Long: `Replace comment-only lines with empty lines so line numbers stay stable,
and record every removed comment in a JSON audit file.

Examples:
  srcscan delete-comments src/
  srcscan delete-comments --audit removed.json .
  srcscan delete-comments --dry-run .`,
		RunE: c.run,
	}
	c.register(cmd)
	cmd.Flags().StringVar(&c.audit, "audit", service.DefaultAuditFile, "Where removed comments are exported")
	cmd.Flags().BoolVar(&c.noAudit, "no-audit", false, "Do not write the audit file")
	return cmd
}

func (c *CommentsCommand) register(cmd *cobra.Command) {
	c.scan.register(cmd, service.CommentFormats)
	cmd.Flags().BoolVar(&c.dryRun, "dry-run", false, "Report what would change without modifying files")
}

func (c *CommentsCommand) run(cmd *cobra.Command, args []string) error {
	env, err := newCommandEnv(cmd, c.global, args)
	if err != nil {
		return err
	}
	format, ext, err := env.outputFormat(&c.scan, service.CommentFormats)
	if err != nil {
		return err
	}
	outputPath, err := env.outputPath(&c.scan, string(c.policy)+"_comments", ext)
	if err != nil {
		return err
	}

	audit := ""
	if c.policy == domain.CommentPolicyDelete && !c.noAudit {
		audit = c.audit
	}

	uc, err := app.NewCommentsUseCaseBuilder().
		WithService(service.NewCommentService(env.serviceOptions("Stripping comments")...)).
		WithFormatter(service.NewCommentFormatter()).
		WithOutputWriter(env.reportWriter()).
		Build()
	if err != nil {
		return err
	}

	return uc.Execute(cmd.Context(), domain.CommentRequest{
		ScanOptions:  env.scanOptions(&c.scan),
		Policy:       c.policy,
		DryRun:       c.dryRun,
		AuditPath:    audit,
		OutputFormat: format,
		OutputWriter: cmd.OutOrStdout(),
		OutputPath:   outputPath,
	})
}
