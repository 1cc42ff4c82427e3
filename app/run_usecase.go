package app

import (
	"context"
	"fmt"
	"io"

	"github.com/ludo-technologies/srcscan/domain"
	svc "github.com/ludo-technologies/srcscan/service"
)

// RunUseCase runs every enabled analysis and writes one combined report
type RunUseCase struct {
	service   domain.RunService
	formatter domain.RunOutputFormatter
	output    domain.ReportWriter
}

// Execute validates the request, runs the analyses and writes the report
func (uc *RunUseCase) Execute(ctx context.Context, req domain.RunRequest) (*domain.RunResponse, error) {
	if err := validateScan(req.ScanOptions, req.OutputWriter, req.OutputPath); err != nil {
		return nil, domain.NewInvalidInputError("invalid request", err)
	}
	if !req.EnableMetrics && !req.EnableDeps && !req.EnableStyle {
		return nil, domain.NewInvalidInputError("no analyses enabled", nil)
	}
	if req.EnableDeps {
		if err := svc.ValidateArchitecture(req.Architecture); err != nil {
			return nil, err
		}
	}

	response, err := uc.service.Run(ctx, req)
	if err != nil {
		return nil, serviceError("analysis run failed", err)
	}

	err = writeReport(uc.output, req.OutputWriter, req.OutputPath, req.OutputFormat, func(w io.Writer) error {
		return uc.formatter.Write(response, req.OutputFormat, w)
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}

// RunUseCaseBuilder provides a fluent builder for RunUseCase
type RunUseCaseBuilder struct {
	service   domain.RunService
	formatter domain.RunOutputFormatter
	output    domain.ReportWriter
}

func NewRunUseCaseBuilder() *RunUseCaseBuilder { return &RunUseCaseBuilder{} }

func (b *RunUseCaseBuilder) WithService(s domain.RunService) *RunUseCaseBuilder {
	b.service = s
	return b
}
func (b *RunUseCaseBuilder) WithFormatter(f domain.RunOutputFormatter) *RunUseCaseBuilder {
	b.formatter = f
	return b
}
func (b *RunUseCaseBuilder) WithOutputWriter(w domain.ReportWriter) *RunUseCaseBuilder {
	b.output = w
	return b
}

func (b *RunUseCaseBuilder) Build() (*RunUseCase, error) {
	if b.service == nil || b.formatter == nil {
		return nil, fmt.Errorf("missing required dependencies")
	}
	uc := &RunUseCase{service: b.service, formatter: b.formatter, output: b.output}
	if uc.output == nil {
		uc.output = svc.NewFileOutputWriter(nil)
	}
	return uc, nil
}
