package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/ludo-technologies/srcscan/domain"
)

// MetricsFormats lists the formats the metrics command accepts
var MetricsFormats = []domain.OutputFormat{
	domain.OutputFormatText, domain.OutputFormatJSON, domain.OutputFormatYAML,
	domain.OutputFormatCSV, domain.OutputFormatMarkdown,
}

// MetricsFormatterImpl implements domain.MetricsOutputFormatter
type MetricsFormatterImpl struct {
	// showFiles adds the per-file table to text and markdown output
	showFiles bool
}

// NewMetricsFormatter creates a new metrics formatter
func NewMetricsFormatter(showFiles bool) *MetricsFormatterImpl {
	return &MetricsFormatterImpl{showFiles: showFiles}
}

// Write writes the metrics report in the requested format
func (f *MetricsFormatterImpl) Write(resp *domain.MetricsResponse, format domain.OutputFormat, w io.Writer) error {
	switch format {
	case domain.OutputFormatText:
		_, err := io.WriteString(w, f.formatText(resp))
		return err
	case domain.OutputFormatJSON:
		return WriteJSON(w, resp)
	case domain.OutputFormatYAML:
		return WriteYAML(w, resp)
	case domain.OutputFormatCSV:
		return f.writeCSV(resp, w)
	case domain.OutputFormatMarkdown:
		_, err := io.WriteString(w, f.formatMarkdown(resp))
		return err
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

// sortedLanguages orders buckets by code lines, largest first
func sortedLanguages(agg *domain.AggregateMetrics) []*domain.LanguageMetrics {
	out := make([]*domain.LanguageMetrics, 0, len(agg.ByLanguage))
	for _, lm := range agg.ByLanguage {
		out = append(out, lm)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total.LinesOfCode != out[j].Total.LinesOfCode {
			return out[i].Total.LinesOfCode > out[j].Total.LinesOfCode
		}
		return out[i].Language < out[j].Language
	})
	return out
}

func (f *MetricsFormatterImpl) formatText(resp *domain.MetricsResponse) string {
	utils := NewFormatUtils()
	agg := resp.Aggregate
	if agg == nil {
		agg = domain.NewAggregateMetrics()
	}

	var b strings.Builder
	b.WriteString(utils.FormatMainHeader("Code Metrics Report"))

	b.WriteString(utils.FormatSectionHeader("Summary"))
	b.WriteString(utils.FormatLabel("Files", agg.TotalFiles()))
	b.WriteString(utils.FormatLabel("Directories", agg.TotalDirectories))
	b.WriteString(utils.FormatLabel("Code lines", agg.Total.LinesOfCode))
	b.WriteString(utils.FormatLabel("Comment lines", agg.Total.CommentLines))
	b.WriteString(utils.FormatLabel("Blank lines", agg.Total.BlankLines))
	b.WriteString(utils.FormatLabel("Total lines", agg.Total.TotalLines()))
	b.WriteString(utils.FormatLabel("Code/comment ratio", fmt.Sprintf("%.2f", agg.CodeToCommentRatio())))
	b.WriteString(utils.FormatLabel("Production files", agg.Production.Files))
	b.WriteString(utils.FormatLabel("Test files", agg.Test.Files))
	b.WriteString(utils.FormatSectionSeparator())

	langs := sortedLanguages(agg)
	if len(langs) > 0 {
		b.WriteString(utils.FormatSectionHeader("Languages"))
		fmt.Fprintf(&b, "%-14s %7s %9s %9s %9s %9s\n", "Language", "Files", "Code", "Comment", "Blank", "Test")
		b.WriteString(strings.Repeat("-", 63) + "\n")
		for _, lm := range langs {
			fmt.Fprintf(&b, "%-14s %7d %9d %9d %9d %9d\n", lm.Language, lm.Total.Files,
				lm.Total.LinesOfCode, lm.Total.CommentLines, lm.Total.BlankLines, lm.Test.LinesOfCode)
		}
		b.WriteString(utils.FormatSectionSeparator())
	}

	if f.showFiles && len(resp.Files) > 0 {
		b.WriteString(utils.FormatSectionHeader("Files"))
		for _, m := range resp.Files {
			fmt.Fprintf(&b, "  %s [%s] code=%d comment=%d blank=%d\n",
				m.Path, m.Language, m.LinesOfCode, m.CommentLines, m.BlankLines)
		}
		b.WriteString(utils.FormatSectionSeparator())
	}

	b.WriteString(utils.FormatWarningsSection(resp.Warnings))
	if resp.RunID != "" {
		b.WriteString(utils.FormatRunFooter(resp.RunID, resp.GeneratedAt, resp.Version))
	}
	return b.String()
}

func (f *MetricsFormatterImpl) writeCSV(resp *domain.MetricsResponse, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"path", "language", "code", "comment", "blank", "total", "test"}); err != nil {
		return err
	}
	for _, m := range resp.Files {
		row := []string{
			m.Path, m.Language,
			strconv.Itoa(m.LinesOfCode), strconv.Itoa(m.CommentLines), strconv.Itoa(m.BlankLines),
			strconv.Itoa(m.TotalLines()), strconv.FormatBool(m.IsTestFile),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (f *MetricsFormatterImpl) formatMarkdown(resp *domain.MetricsResponse) string {
	agg := resp.Aggregate
	if agg == nil {
		agg = domain.NewAggregateMetrics()
	}

	var b strings.Builder
	b.WriteString("# Code Metrics Report\n\n")
	b.WriteString("| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Files | %d |\n", agg.TotalFiles())
	fmt.Fprintf(&b, "| Directories | %d |\n", agg.TotalDirectories)
	fmt.Fprintf(&b, "| Code lines | %d |\n", agg.Total.LinesOfCode)
	fmt.Fprintf(&b, "| Comment lines | %d |\n", agg.Total.CommentLines)
	fmt.Fprintf(&b, "| Blank lines | %d |\n", agg.Total.BlankLines)
	fmt.Fprintf(&b, "| Code/comment ratio | %.2f |\n\n", agg.CodeToCommentRatio())

	if langs := sortedLanguages(agg); len(langs) > 0 {
		b.WriteString("## Languages\n\n")
		b.WriteString("| Language | Files | Code | Comment | Blank | Test code |\n|---|---:|---:|---:|---:|---:|\n")
		for _, lm := range langs {
			fmt.Fprintf(&b, "| %s | %d | %d | %d | %d | %d |\n", lm.Language, lm.Total.Files,
				lm.Total.LinesOfCode, lm.Total.CommentLines, lm.Total.BlankLines, lm.Test.LinesOfCode)
		}
		b.WriteString("\n")
	}

	if f.showFiles && len(resp.Files) > 0 {
		b.WriteString("## Files\n\n| Path | Language | Code | Comment | Blank |\n|---|---|---:|---:|---:|\n")
		for _, m := range resp.Files {
			fmt.Fprintf(&b, "| `%s` | %s | %d | %d | %d |\n", m.Path, m.Language, m.LinesOfCode, m.CommentLines, m.BlankLines)
		}
		b.WriteString("\n")
	}
	if resp.RunID != "" {
		fmt.Fprintf(&b, "_Run %s generated at %s by srcscan %s_\n", resp.RunID, resp.GeneratedAt, resp.Version)
	}
	return b.String()
}
