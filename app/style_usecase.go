package app

import (
	"context"
	"fmt"
	"io"

	"github.com/ludo-technologies/srcscan/domain"
	svc "github.com/ludo-technologies/srcscan/service"
)

// StyleUseCase orchestrates the code style workflow
type StyleUseCase struct {
	service   domain.StyleService
	formatter domain.StyleOutputFormatter
	output    domain.ReportWriter
}

// Execute profiles the requested roots and writes the style report
func (uc *StyleUseCase) Execute(ctx context.Context, req domain.StyleRequest) error {
	if err := uc.validateRequest(req); err != nil {
		return domain.NewInvalidInputError("invalid request", err)
	}

	response, err := uc.service.Analyze(ctx, req)
	if err != nil {
		return serviceError("style analysis failed", err)
	}

	return writeReport(uc.output, req.OutputWriter, req.OutputPath, req.OutputFormat, func(w io.Writer) error {
		return uc.formatter.Write(response, req.OutputFormat, w)
	})
}

func (uc *StyleUseCase) validateRequest(req domain.StyleRequest) error {
	if err := validateScan(req.ScanOptions, req.OutputWriter, req.OutputPath); err != nil {
		return err
	}
	if req.LineLimit < 0 {
		return fmt.Errorf("line limit cannot be negative")
	}
	if req.NamingThreshold < 0 || req.NamingThreshold > 1 {
		return fmt.Errorf("naming threshold must be between 0 and 1")
	}
	return nil
}

// StyleUseCaseBuilder provides a fluent builder for StyleUseCase
type StyleUseCaseBuilder struct {
	service   domain.StyleService
	formatter domain.StyleOutputFormatter
	output    domain.ReportWriter
}

func NewStyleUseCaseBuilder() *StyleUseCaseBuilder { return &StyleUseCaseBuilder{} }

func (b *StyleUseCaseBuilder) WithService(s domain.StyleService) *StyleUseCaseBuilder {
	b.service = s
	return b
}
func (b *StyleUseCaseBuilder) WithFormatter(f domain.StyleOutputFormatter) *StyleUseCaseBuilder {
	b.formatter = f
	return b
}
func (b *StyleUseCaseBuilder) WithOutputWriter(w domain.ReportWriter) *StyleUseCaseBuilder {
	b.output = w
	return b
}

func (b *StyleUseCaseBuilder) Build() (*StyleUseCase, error) {
	if b.service == nil || b.formatter == nil {
		return nil, fmt.Errorf("missing required dependencies")
	}
	uc := &StyleUseCase{service: b.service, formatter: b.formatter, output: b.output}
	if uc.output == nil {
		uc.output = svc.NewFileOutputWriter(nil)
	}
	return uc, nil
}
