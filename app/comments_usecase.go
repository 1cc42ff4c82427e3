package app

import (
	"context"
	"fmt"
	"io"

	"github.com/ludo-technologies/srcscan/domain"
	svc "github.com/ludo-technologies/srcscan/service"
)

// CommentsUseCase orchestrates comment stripping and reports what changed
type CommentsUseCase struct {
	service   domain.CommentService
	formatter domain.CommentOutputFormatter
	output    domain.ReportWriter
}

// Execute strips comments under the requested roots and writes the summary
func (uc *CommentsUseCase) Execute(ctx context.Context, req domain.CommentRequest) error {
	if err := uc.validateRequest(req); err != nil {
		return domain.NewInvalidInputError("invalid request", err)
	}

	response, err := uc.service.Strip(ctx, req)
	if err != nil {
		return serviceError("comment removal failed", err)
	}

	return writeReport(uc.output, req.OutputWriter, req.OutputPath, req.OutputFormat, func(w io.Writer) error {
		return uc.formatter.Write(response, req.OutputFormat, w)
	})
}

func (uc *CommentsUseCase) validateRequest(req domain.CommentRequest) error {
	if err := validateScan(req.ScanOptions, req.OutputWriter, req.OutputPath); err != nil {
		return err
	}
	if req.AuditPath != "" && req.Policy != domain.CommentPolicyDelete {
		return fmt.Errorf("an audit file is only written by the delete policy")
	}
	return nil
}

// CommentsUseCaseBuilder provides a fluent builder for CommentsUseCase
type CommentsUseCaseBuilder struct {
	service   domain.CommentService
	formatter domain.CommentOutputFormatter
	output    domain.ReportWriter
}

func NewCommentsUseCaseBuilder() *CommentsUseCaseBuilder { return &CommentsUseCaseBuilder{} }

func (b *CommentsUseCaseBuilder) WithService(s domain.CommentService) *CommentsUseCaseBuilder {
	b.service = s
	return b
}
func (b *CommentsUseCaseBuilder) WithFormatter(f domain.CommentOutputFormatter) *CommentsUseCaseBuilder {
	b.formatter = f
	return b
}
func (b *CommentsUseCaseBuilder) WithOutputWriter(w domain.ReportWriter) *CommentsUseCaseBuilder {
	b.output = w
	return b
}

func (b *CommentsUseCaseBuilder) Build() (*CommentsUseCase, error) {
	if b.service == nil || b.formatter == nil {
		return nil, fmt.Errorf("missing required dependencies")
	}
	uc := &CommentsUseCase{service: b.service, formatter: b.formatter, output: b.output}
	if uc.output == nil {
		uc.output = svc.NewFileOutputWriter(nil)
	}
	return uc, nil
}
