package service

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ludo-technologies/srcscan/domain"
)

// RunFormats lists the formats the run command accepts
var RunFormats = []domain.OutputFormat{
	domain.OutputFormatText, domain.OutputFormatJSON, domain.OutputFormatYAML, domain.OutputFormatMarkdown,
}

// RunFormatterImpl implements domain.RunOutputFormatter
type RunFormatterImpl struct{}

func NewRunFormatter() *RunFormatterImpl { return &RunFormatterImpl{} }

func (f *RunFormatterImpl) Write(resp *domain.RunResponse, format domain.OutputFormat, w io.Writer) error {
	switch format {
	case domain.OutputFormatText:
		_, err := io.WriteString(w, f.formatText(resp))
		return err
	case domain.OutputFormatJSON:
		return WriteJSON(w, resp)
	case domain.OutputFormatYAML:
		return WriteYAML(w, resp)
	case domain.OutputFormatMarkdown:
		_, err := io.WriteString(w, f.formatMarkdown(resp))
		return err
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

func gradeColor(grade string) string {
	switch grade {
	case "A", "B":
		return ColorGreen
	case "C":
		return ColorYellow
	default:
		return ColorRed
	}
}

func (f *RunFormatterImpl) formatText(resp *domain.RunResponse) string {
	utils := NewFormatUtils()
	s := resp.Summary
	var b strings.Builder
	b.WriteString(utils.FormatMainHeader("srcscan Analysis Report"))
	fmt.Fprintf(&b, "Health Score: %s%d/100 (Grade %s)%s\n\n", gradeColor(s.Grade), s.HealthScore, s.Grade, ColorReset)

	if s.MetricsEnabled {
		b.WriteString(utils.FormatSectionHeader("Metrics"))
		b.WriteString(utils.FormatLabel("Files", s.TotalFiles))
		b.WriteString(utils.FormatLabel("Code lines", s.LinesOfCode))
		b.WriteString(utils.FormatLabel("Comment ratio", utils.FormatPercentage(s.CommentRatio)))
		b.WriteString(utils.FormatSectionSeparator())
	}
	if s.DepsEnabled {
		b.WriteString(utils.FormatSectionHeader("Dependencies"))
		if d := resp.Dependencies; d != nil {
			b.WriteString(utils.FormatLabel("Nodes", d.Summary.Nodes))
			b.WriteString(utils.FormatLabel("Edges", d.Summary.Edges))
		}
		b.WriteString(utils.FormatLabel("Cycles", s.Cycles))
		b.WriteString(utils.FormatSectionSeparator())
	}
	if s.StyleEnabled {
		b.WriteString(utils.FormatSectionHeader("Style"))
		b.WriteString(utils.FormatLabel("Consistency score", utils.FormatPercentage(s.ConsistencyScore*100)))
		b.WriteString(utils.FormatLabel("Inconsistencies", s.Inconsistencies))
		b.WriteString(utils.FormatSectionSeparator())
	}

	fmt.Fprintf(&b, "Completed in %dms\n", resp.Duration)
	if resp.RunID != "" {
		b.WriteString(utils.FormatRunFooter(resp.RunID, resp.GeneratedAt.Format(time.RFC3339), resp.Version))
	}
	return b.String()
}

func (f *RunFormatterImpl) formatMarkdown(resp *domain.RunResponse) string {
	s := resp.Summary
	var b strings.Builder
	b.WriteString("# srcscan Analysis Report\n\n")
	fmt.Fprintf(&b, "**Health score:** %d/100 (grade %s)\n\n", s.HealthScore, s.Grade)
	b.WriteString("| Analysis | Result |\n|---|---|\n")
	if s.MetricsEnabled {
		fmt.Fprintf(&b, "| Metrics | %d files, %d code lines, %.1f%% comments |\n", s.TotalFiles, s.LinesOfCode, s.CommentRatio)
	}
	if s.DepsEnabled {
		fmt.Fprintf(&b, "| Dependencies | %d cycles |\n", s.Cycles)
	}
	if s.StyleEnabled {
		fmt.Fprintf(&b, "| Style | %.1f%% consistent, %d inconsistencies |\n", s.ConsistencyScore*100, s.Inconsistencies)
	}
	return b.String()
}
