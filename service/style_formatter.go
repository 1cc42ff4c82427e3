package service

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/ludo-technologies/srcscan/domain"
)

// StyleFormats lists the formats the style command accepts
var StyleFormats = []domain.OutputFormat{
	domain.OutputFormatText, domain.OutputFormatJSON, domain.OutputFormatYAML, domain.OutputFormatMarkdown,
}

// StyleFormatterImpl implements domain.StyleOutputFormatter
type StyleFormatterImpl struct {
	// limit caps the inconsistencies listed in text output; 0 lists all
	limit int
}

// NewStyleFormatter creates a new style formatter
func NewStyleFormatter(limit int) *StyleFormatterImpl {
	return &StyleFormatterImpl{limit: limit}
}

// Write writes the style report in the requested format
func (f *StyleFormatterImpl) Write(resp *domain.StyleResponse, format domain.OutputFormat, w io.Writer) error {
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

// rankedInconsistencies orders findings by severity, keeping file order within a level
func rankedInconsistencies(in []domain.StyleInconsistency) []domain.StyleInconsistency {
	out := append([]domain.StyleInconsistency(nil), in...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Severity.Level() > out[j].Severity.Level()
	})
	return out
}

func formatLocation(inc domain.StyleInconsistency) string {
	if inc.LineNumber != nil {
		return fmt.Sprintf("%s:%d", inc.FilePath, *inc.LineNumber)
	}
	return inc.FilePath
}

func semicolonSummary(uses *bool) string {
	if uses == nil {
		return "n/a"
	}
	if *uses {
		return "yes"
	}
	return "no"
}

func namingCategories(p *domain.StyleProfile) []string {
	keys := make([]string, 0, len(p.Naming))
	for k := range p.Naming {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var severityOrder = []domain.Severity{
	domain.SeverityHigh, domain.SeverityMedium, domain.SeverityLow, domain.SeverityInfo,
}

func (f *StyleFormatterImpl) formatText(resp *domain.StyleResponse) string {
	utils := NewFormatUtils()
	var b strings.Builder
	b.WriteString(utils.FormatMainHeader("Code Style Report"))

	b.WriteString(utils.FormatSectionHeader("Summary"))
	b.WriteString(utils.FormatLabel("Files analyzed", resp.Summary.FilesAnalyzed))
	b.WriteString(utils.FormatLabel("Consistency score", utils.FormatPercentage(resp.Summary.ConsistencyScore*100)))
	b.WriteString(utils.FormatLabel("Inconsistencies", resp.Summary.Inconsistencies))
	for _, sev := range severityOrder {
		if n := resp.Summary.BySeverity[sev]; n > 0 {
			b.WriteString(utils.FormatLabelWithIndent(ItemPadding, string(sev), n))
		}
	}
	b.WriteString(utils.FormatSectionSeparator())

	if a := resp.Analysis; a != nil && a.GlobalProfile != nil && len(a.FileProfiles) > 0 {
		g := a.GlobalProfile
		b.WriteString(utils.FormatSectionHeader("Global Profile"))
		b.WriteString(utils.FormatLabel("Indentation", g.Indentation.String()))
		b.WriteString(utils.FormatLabel("Brace style", g.BraceStyle.Describe()))
		b.WriteString(utils.FormatLabel("Avg line length", fmt.Sprintf("%.1f", g.LineMetrics.AvgLength)))
		b.WriteString(utils.FormatLabel("Max line length", g.LineMetrics.MaxLength))
		b.WriteString(utils.FormatLabel("Avg function length", fmt.Sprintf("%.1f", g.FunctionMetrics.AvgLength)))
		b.WriteString(utils.FormatLabel("Trailing semicolons", semicolonSummary(g.HasTrailingSemicolons)))
		b.WriteString(utils.FormatLabel("Comment ratio", utils.FormatPercentage(g.CommentRatio)))
		for _, category := range namingCategories(g) {
			b.WriteString(utils.FormatLabel("Naming ("+category+")", string(g.Naming[category])))
		}
		b.WriteString(utils.FormatSectionSeparator())

		if len(a.Inconsistencies) > 0 {
			b.WriteString(utils.FormatSectionHeader("Inconsistencies"))
			ranked := rankedInconsistencies(a.Inconsistencies)
			shown := ranked
			if f.limit > 0 && len(shown) > f.limit {
				shown = shown[:f.limit]
			}
			for _, inc := range shown {
				fmt.Fprintf(&b, "  %s[%s]%s %s: %s\n", utils.GetSeverityColor(inc.Severity),
					strings.ToUpper(string(inc.Severity)), ColorReset, formatLocation(inc), inc.Description)
			}
			if hidden := len(ranked) - len(shown); hidden > 0 {
				fmt.Fprintf(&b, "  ... %d more not shown\n", hidden)
			}
			b.WriteString(utils.FormatSectionSeparator())
		}
	}

	b.WriteString(utils.FormatWarningsSection(resp.Warnings))
	if resp.RunID != "" {
		b.WriteString(utils.FormatRunFooter(resp.RunID, resp.GeneratedAt, resp.Version))
	}
	return b.String()
}

// formatMarkdown renders the global profile as a style guide followed by findings
func (f *StyleFormatterImpl) formatMarkdown(resp *domain.StyleResponse) string {
	var b strings.Builder
	b.WriteString("# Code Style Guide\n\n")
	fmt.Fprintf(&b, "Consistency score: **%.1f%%** across %d files.\n\n",
		resp.Summary.ConsistencyScore*100, resp.Summary.FilesAnalyzed)

	a := resp.Analysis
	if a == nil || a.GlobalProfile == nil {
		return b.String()
	}
	g := a.GlobalProfile
	b.WriteString("## Conventions\n\n")
	fmt.Fprintf(&b, "- **Indentation**: %s\n", g.Indentation.Describe())
	fmt.Fprintf(&b, "- **Braces**: %s\n", g.BraceStyle.Describe())
	fmt.Fprintf(&b, "- **Line length**: average %.1f, longest %d\n", g.LineMetrics.AvgLength, g.LineMetrics.MaxLength)
	fmt.Fprintf(&b, "- **Functions**: average %.1f lines, %.1f parameters\n", g.FunctionMetrics.AvgLength, g.FunctionMetrics.AvgParams)
	fmt.Fprintf(&b, "- **Trailing semicolons**: %s\n", semicolonSummary(g.HasTrailingSemicolons))
	fmt.Fprintf(&b, "- **Comment ratio**: %.1f%%\n", g.CommentRatio)
	for _, category := range namingCategories(g) {
		fmt.Fprintf(&b, "- **Naming (%s)**: %s\n", category, g.Naming[category].Describe())
	}
	b.WriteString("\n")

	if len(a.Inconsistencies) > 0 {
		b.WriteString("## Inconsistencies\n\n| Severity | Location | Description |\n|---|---|---|\n")
		for _, inc := range rankedInconsistencies(a.Inconsistencies) {
			fmt.Fprintf(&b, "| %s | `%s` | %s |\n", inc.Severity, formatLocation(inc), inc.Description)
		}
		b.WriteString("\n")
	}
	return b.String()
}
