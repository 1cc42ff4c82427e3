package app

import (
	"context"
	"fmt"
	"io"

	"github.com/ludo-technologies/srcscan/domain"
	svc "github.com/ludo-technologies/srcscan/service"
)

// DepsUseCase orchestrates the dependency analysis workflow
type DepsUseCase struct {
	service   domain.DependencyService
	formatter domain.DepsOutputFormatter
	output    domain.ReportWriter
}

// NewDepsUseCase creates a new dependency analysis use case
func NewDepsUseCase(service domain.DependencyService, formatter domain.DepsOutputFormatter) *DepsUseCase {
	return &DepsUseCase{
		service:   service,
		formatter: formatter,
		output:    svc.NewFileOutputWriter(nil),
	}
}

// Execute performs dependency analysis and writes formatted output
func (uc *DepsUseCase) Execute(ctx context.Context, req domain.DependencyRequest) error {
	if err := uc.validateRequest(req); err != nil {
		return domain.NewInvalidInputError("invalid request", err)
	}
	if err := svc.ValidateArchitecture(req.Architecture); err != nil {
		return err
	}

	response, err := uc.service.Analyze(ctx, req)
	if err != nil {
		return serviceError("dependency analysis failed", err)
	}

	return writeReport(uc.output, req.OutputWriter, req.OutputPath, req.OutputFormat, func(w io.Writer) error {
		return uc.formatter.Write(response, req.OutputFormat, req.Focus, w)
	})
}

func (uc *DepsUseCase) validateRequest(req domain.DependencyRequest) error {
	if err := validateScan(req.ScanOptions, req.OutputWriter, req.OutputPath); err != nil {
		return err
	}
	if req.Focus != "" {
		switch req.OutputFormat {
		case domain.OutputFormatPlantUML, domain.OutputFormatMermaid:
		default:
			return fmt.Errorf("focus only applies to plantuml and mermaid output")
		}
	}
	return nil
}

// DepsUseCaseBuilder provides a fluent builder for DepsUseCase
type DepsUseCaseBuilder struct {
	service   domain.DependencyService
	formatter domain.DepsOutputFormatter
	output    domain.ReportWriter
}

func NewDepsUseCaseBuilder() *DepsUseCaseBuilder { return &DepsUseCaseBuilder{} }

func (b *DepsUseCaseBuilder) WithService(s domain.DependencyService) *DepsUseCaseBuilder {
	b.service = s
	return b
}
func (b *DepsUseCaseBuilder) WithFormatter(f domain.DepsOutputFormatter) *DepsUseCaseBuilder {
	b.formatter = f
	return b
}
func (b *DepsUseCaseBuilder) WithOutputWriter(w domain.ReportWriter) *DepsUseCaseBuilder {
	b.output = w
	return b
}

func (b *DepsUseCaseBuilder) Build() (*DepsUseCase, error) {
	if b.service == nil || b.formatter == nil {
		return nil, fmt.Errorf("missing required dependencies")
	}
	uc := &DepsUseCase{service: b.service, formatter: b.formatter, output: b.output}
	if uc.output == nil {
		uc.output = svc.NewFileOutputWriter(nil)
	}
	return uc, nil
}
