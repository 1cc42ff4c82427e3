package service

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/srcscan/domain"
)

func sampleDepsResponse() *domain.DependencyResponse {
	return &domain.DependencyResponse{
		Nodes: []string{"src/a.rs", "src/b.rs", "src/serde"},
		Edges: []domain.DependencyEdge{
			{From: "src/a.rs", To: "src/b.rs"},
			{From: "src/a.rs", To: "src/serde"},
			{From: "src/b.rs", To: "src/a.rs"},
		},
		Cycles:  []domain.DependencyCycle{{Modules: []string{"src/a.rs", "src/b.rs"}}},
		Summary: domain.DependencySummary{Nodes: 3, Edges: 3, Cycles: 1, FilesAnalyzed: 2},
		LayerViolations: []domain.LayerViolation{
			{From: "src/a.rs", To: "src/b.rs", FromLayer: "domain", ToLayer: "ui"},
		},
		RunID: "run-1", GeneratedAt: "2026-01-01T00:00:00Z", Version: "dev",
	}
}

func TestDepsFormatter_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewDepsFormatter().Write(sampleDepsResponse(), domain.OutputFormatText, "", &buf))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "Dependency Analysis\n"))
	assert.Contains(t, out, "Edges:   3")
	assert.Contains(t, out, "  1) src/a.rs -> src/b.rs -> src/a.rs\n")
	assert.Contains(t, out, "  - src/a.rs (domain) -> src/b.rs (ui)\n")
	assert.Contains(t, out, "Run run-1 generated at 2026-01-01T00:00:00Z by srcscan dev")
}

func TestDepsFormatter_JSONAndYAML(t *testing.T) {
	var js bytes.Buffer
	require.NoError(t, NewDepsFormatter().Write(sampleDepsResponse(), domain.OutputFormatJSON, "", &js))
	assert.True(t, strings.HasPrefix(js.String(), "{"))
	assert.Contains(t, js.String(), `"from": "src/a.rs"`)

	var ym bytes.Buffer
	require.NoError(t, NewDepsFormatter().Write(sampleDepsResponse(), domain.OutputFormatYAML, "", &ym))
	assert.Contains(t, ym.String(), "summary:")
}

func TestDepsFormatter_CSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewDepsFormatter().Write(sampleDepsResponse(), domain.OutputFormatCSV, "", &buf))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "from,to", lines[0])
	assert.Equal(t, "src/a.rs,src/b.rs", lines[1])
}

func TestDepsFormatter_DOT(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewDepsFormatter().Write(sampleDepsResponse(), domain.OutputFormatDOT, "", &buf))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "digraph DependencyGraph {\n"))
	assert.Contains(t, out, "  src_a_rs -> src_b_rs;\n")
	assert.Contains(t, out, "  src_serde [label=\"serde\"];\n")
}

func TestDepsFormatter_DiagramFocus(t *testing.T) {
	var puml bytes.Buffer
	require.NoError(t, NewDepsFormatter().Write(sampleDepsResponse(), domain.OutputFormatPlantUML, ".rs", &puml))
	assert.Contains(t, puml.String(), "src_a_rs --> src_b_rs")
	assert.NotContains(t, puml.String(), "serde")

	var mmd bytes.Buffer
	require.NoError(t, NewDepsFormatter().Write(sampleDepsResponse(), domain.OutputFormatMermaid, "", &mmd))
	assert.True(t, strings.HasPrefix(mmd.String(), "graph LR\n"))
	assert.Contains(t, mmd.String(), "src_a_rs --> src_serde")
}

func TestDepsFormatter_Unsupported(t *testing.T) {
	err := NewDepsFormatter().Write(sampleDepsResponse(), domain.OutputFormatMarkdown, "", &bytes.Buffer{})
	require.Error(t, err)
	assert.True(t, domain.HasCode(err, domain.ErrCodeUnsupportedFormat))
}
