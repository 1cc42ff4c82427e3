package app

import (
	"context"
	"fmt"
	"io"

	"github.com/ludo-technologies/srcscan/domain"
	svc "github.com/ludo-technologies/srcscan/service"
)

// DescribeUseCase produces a natural language description of a project
type DescribeUseCase struct {
	service   domain.DescribeService
	formatter domain.DescribeOutputFormatter
	output    domain.ReportWriter
}

func (uc *DescribeUseCase) Execute(ctx context.Context, req domain.DescribeRequest) error {
	if err := validateScan(req.ScanOptions, req.OutputWriter, req.OutputPath); err != nil {
		return domain.NewInvalidInputError("invalid request", err)
	}

	response, err := uc.service.Describe(ctx, req)
	if err != nil {
		return serviceError("project description failed", err)
	}

	return writeReport(uc.output, req.OutputWriter, req.OutputPath, req.OutputFormat, func(w io.Writer) error {
		return uc.formatter.Write(response, req.OutputFormat, w)
	})
}

// DescribeUseCaseBuilder provides a fluent builder for DescribeUseCase
type DescribeUseCaseBuilder struct {
	service   domain.DescribeService
	formatter domain.DescribeOutputFormatter
	output    domain.ReportWriter
}

func NewDescribeUseCaseBuilder() *DescribeUseCaseBuilder { return &DescribeUseCaseBuilder{} }

func (b *DescribeUseCaseBuilder) WithService(s domain.DescribeService) *DescribeUseCaseBuilder {
	b.service = s
	return b
}
func (b *DescribeUseCaseBuilder) WithFormatter(f domain.DescribeOutputFormatter) *DescribeUseCaseBuilder {
	b.formatter = f
	return b
}
func (b *DescribeUseCaseBuilder) WithOutputWriter(w domain.ReportWriter) *DescribeUseCaseBuilder {
	b.output = w
	return b
}

func (b *DescribeUseCaseBuilder) Build() (*DescribeUseCase, error) {
	if b.service == nil || b.formatter == nil {
		return nil, fmt.Errorf("missing required dependencies")
	}
	uc := &DescribeUseCase{service: b.service, formatter: b.formatter, output: b.output}
	if uc.output == nil {
		uc.output = svc.NewFileOutputWriter(nil)
	}
	return uc, nil
}
