package app

import (
	"context"
	"fmt"
	"io"

	"github.com/ludo-technologies/srcscan/domain"
	svc "github.com/ludo-technologies/srcscan/service"
)

// MetricsUseCase orchestrates the line metrics workflow
type MetricsUseCase struct {
	service   domain.MetricsService
	formatter domain.MetricsOutputFormatter
	output    domain.ReportWriter
}

// Execute counts lines across the requested roots and writes the report
func (uc *MetricsUseCase) Execute(ctx context.Context, req domain.MetricsRequest) error {
	if err := validateScan(req.ScanOptions, req.OutputWriter, req.OutputPath); err != nil {
		return domain.NewInvalidInputError("invalid request", err)
	}

	response, err := uc.service.Analyze(ctx, req)
	if err != nil {
		return serviceError("metrics analysis failed", err)
	}

	return writeReport(uc.output, req.OutputWriter, req.OutputPath, req.OutputFormat, func(w io.Writer) error {
		return uc.formatter.Write(response, req.OutputFormat, w)
	})
}

// MetricsUseCaseBuilder provides a fluent builder for MetricsUseCase
type MetricsUseCaseBuilder struct {
	service   domain.MetricsService
	formatter domain.MetricsOutputFormatter
	output    domain.ReportWriter
}

func NewMetricsUseCaseBuilder() *MetricsUseCaseBuilder { return &MetricsUseCaseBuilder{} }

func (b *MetricsUseCaseBuilder) WithService(s domain.MetricsService) *MetricsUseCaseBuilder {
	b.service = s
	return b
}
func (b *MetricsUseCaseBuilder) WithFormatter(f domain.MetricsOutputFormatter) *MetricsUseCaseBuilder {
	b.formatter = f
	return b
}
func (b *MetricsUseCaseBuilder) WithOutputWriter(w domain.ReportWriter) *MetricsUseCaseBuilder {
	b.output = w
	return b
}

func (b *MetricsUseCaseBuilder) Build() (*MetricsUseCase, error) {
	if b.service == nil || b.formatter == nil {
		return nil, fmt.Errorf("missing required dependencies")
	}
	uc := &MetricsUseCase{service: b.service, formatter: b.formatter, output: b.output}
	if uc.output == nil {
		uc.output = svc.NewFileOutputWriter(nil)
	}
	return uc, nil
}
