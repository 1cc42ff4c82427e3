package app

import (
	"errors"
	"fmt"
	"io"

	"github.com/ludo-technologies/srcscan/domain"
)

// validateScan checks the parts of a request every use case shares
func validateScan(opts domain.ScanOptions, writer io.Writer, outputPath string) error {
	if len(opts.Paths) == 0 {
		return fmt.Errorf("no input paths specified")
	}
	if writer == nil && outputPath == "" {
		return fmt.Errorf("output writer or output path is required")
	}
	if opts.MaxFileSize < 0 {
		return fmt.Errorf("max file size cannot be negative")
	}
	return nil
}

// serviceError keeps domain errors intact so their code survives to the CLI,
// and wraps anything else with message
func serviceError(message string, err error) error {
	var de domain.DomainError
	if errors.As(err, &de) {
		return err
	}
	return domain.NewAnalysisError(message, err)
}

// writeReport sends the formatted report to the output path, or to writer
// when no path is set
func writeReport(output domain.ReportWriter, writer io.Writer, outputPath string, format domain.OutputFormat, fn func(io.Writer) error) error {
	var out io.Writer
	if outputPath == "" {
		out = writer
	}
	if err := output.Write(out, outputPath, format, fn); err != nil {
		return serviceError("failed to write output", err)
	}
	return nil
}
