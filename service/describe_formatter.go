package service

import (
	"fmt"
	"io"
	"strings"

	"github.com/ludo-technologies/srcscan/domain"
)

// DescribeFormats lists the formats the describe command accepts
var DescribeFormats = []domain.OutputFormat{
	domain.OutputFormatText, domain.OutputFormatMarkdown, domain.OutputFormatJSON, domain.OutputFormatYAML,
}

// DescribeFormatterImpl implements domain.DescribeOutputFormatter
type DescribeFormatterImpl struct{}

func NewDescribeFormatter() *DescribeFormatterImpl { return &DescribeFormatterImpl{} }

func (f *DescribeFormatterImpl) Write(resp *domain.DescribeResponse, format domain.OutputFormat, w io.Writer) error {
	switch format {
	case domain.OutputFormatText:
		var b strings.Builder
		b.WriteString(strings.TrimRight(resp.Description, "\n"))
		b.WriteString("\n\n")
		fmt.Fprintf(&b, "%d files described in %d batches, %d skipped\n",
			resp.FilesIncluded, len(resp.Batches), resp.FilesSkipped)
		b.WriteString(NewFormatUtils().FormatWarningsSection(resp.Warnings))
		_, err := io.WriteString(w, b.String())
		return err
	case domain.OutputFormatMarkdown:
		var b strings.Builder
		b.WriteString("# Project Description\n\n")
		b.WriteString(strings.TrimRight(resp.Description, "\n"))
		b.WriteString("\n")
		if len(resp.Batches) > 0 {
			b.WriteString("\n## Components\n")
			for _, batch := range resp.Batches {
				fmt.Fprintf(&b, "\n### `%s`\n\n%s\n", batch.Directory, strings.TrimRight(batch.Summary, "\n"))
			}
		}
		_, err := io.WriteString(w, b.String())
		return err
	case domain.OutputFormatJSON:
		return WriteJSON(w, resp)
	case domain.OutputFormatYAML:
		return WriteYAML(w, resp)
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}
