package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/ludo-technologies/srcscan/domain"
)

// DepsFormatterImpl implements domain.DepsOutputFormatter
type DepsFormatterImpl struct{}

func NewDepsFormatter() *DepsFormatterImpl { return &DepsFormatterImpl{} }

// DepsFormats lists the formats the deps command accepts
var DepsFormats = []domain.OutputFormat{
	domain.OutputFormatText, domain.OutputFormatJSON, domain.OutputFormatYAML,
	domain.OutputFormatCSV, domain.OutputFormatDOT, domain.OutputFormatPlantUML,
	domain.OutputFormatMermaid,
}

func (f *DepsFormatterImpl) Write(resp *domain.DependencyResponse, format domain.OutputFormat, focus string, w io.Writer) error {
	switch format {
	case domain.OutputFormatText:
		_, err := io.WriteString(w, f.formatText(resp))
		return err
	case domain.OutputFormatJSON:
		return WriteJSON(w, resp)
	case domain.OutputFormatYAML:
		return WriteYAML(w, resp)
	case domain.OutputFormatCSV:
		cw := csv.NewWriter(w)
		if err := cw.Write([]string{"from", "to"}); err != nil {
			return err
		}
		for _, e := range resp.Edges {
			if err := cw.Write([]string{e.From, e.To}); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	case domain.OutputFormatDOT:
		_, err := io.WriteString(w, GraphFromResponse(resp).ToDOT())
		return err
	case domain.OutputFormatPlantUML:
		_, err := io.WriteString(w, GraphFromResponse(resp).ToPlantUML(focus))
		return err
	case domain.OutputFormatMermaid:
		_, err := io.WriteString(w, GraphFromResponse(resp).ToMermaid(focus))
		return err
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

func (f *DepsFormatterImpl) formatText(resp *domain.DependencyResponse) string {
	utils := NewFormatUtils()
	var b strings.Builder
	b.WriteString("Dependency Analysis\n=====================\n\n")
	fmt.Fprintf(&b, "Files:   %d\nNodes:   %d\nEdges:   %d\nCycles:  %d\n",
		resp.Summary.FilesAnalyzed, resp.Summary.Nodes, resp.Summary.Edges, resp.Summary.Cycles)
	if resp.Summary.LayerViolations > 0 {
		fmt.Fprintf(&b, "Layer Violations: %d\n", resp.Summary.LayerViolations)
	}
	b.WriteString("\n")
	if len(resp.Cycles) > 0 {
		b.WriteString("Cycles:\n")
		for i, cyc := range resp.Cycles {
			if len(cyc.Modules) == 0 {
				continue
			}
			// close the loop so the cycle reads back to its start
			path := append(append([]string(nil), cyc.Modules...), cyc.Modules[0])
			fmt.Fprintf(&b, "  %d) %s\n", i+1, strings.Join(path, " -> "))
		}
		b.WriteString("\n")
	}
	if len(resp.Warnings) > 0 {
		b.WriteString("Warnings:\n")
		for _, w := range resp.Warnings {
			fmt.Fprintf(&b, "  - %s\n", w)
		}
		b.WriteString("\n")
	}
	if len(resp.LayerViolations) > 0 {
		b.WriteString("Layer Rule Violations:\n")
		for _, v := range resp.LayerViolations {
			fmt.Fprintf(&b, "  - %s (%s) -> %s (%s)\n", v.From, v.FromLayer, v.To, v.ToLayer)
		}
		b.WriteString("\n")
	}
	if resp.RunID != "" {
		b.WriteString(utils.FormatRunFooter(resp.RunID, resp.GeneratedAt, resp.Version))
	}
	return b.String()
}
