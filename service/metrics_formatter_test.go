package service

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/srcscan/domain"
)

func sampleMetricsResponse() *domain.MetricsResponse {
	files := []domain.FileMetrics{
		{Path: "src/a.rs", Language: "Rust", LinesOfCode: 10, CommentLines: 2, BlankLines: 1},
		{Path: "src/b.py", Language: "Python", LinesOfCode: 4, CommentLines: 0, BlankLines: 1},
		{Path: "tests/c_test.rs", Language: "Rust", LinesOfCode: 6, CommentLines: 1, IsTestFile: true},
	}
	agg := domain.NewAggregateMetrics()
	for _, f := range files {
		agg.Add(f)
	}
	agg.TotalDirectories = 2
	return &domain.MetricsResponse{Files: files, Aggregate: agg, RunID: "r1", GeneratedAt: "now", Version: "dev"}
}

func TestMetricsFormatter_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewMetricsFormatter(true).Write(sampleMetricsResponse(), domain.OutputFormatText, &buf))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "Code Metrics Report\n"))
	assert.Contains(t, out, "Code lines: 20\n")
	assert.Contains(t, out, "Code/comment ratio: 6.67\n")
	// Rust has more code, so it is listed first
	assert.Less(t, strings.Index(out, "Rust "), strings.Index(out, "Python "))
	assert.Contains(t, out, "  src/b.py [Python] code=4 comment=0 blank=1\n")
	assert.Contains(t, out, "Run r1 generated at now by srcscan dev")
}

func TestMetricsFormatter_TextWithoutFiles(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewMetricsFormatter(false).Write(sampleMetricsResponse(), domain.OutputFormatText, &buf))
	assert.NotContains(t, buf.String(), "src/b.py")
}

func TestMetricsFormatter_CSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewMetricsFormatter(false).Write(sampleMetricsResponse(), domain.OutputFormatCSV, &buf))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "path,language,code,comment,blank,total,test", lines[0])
	assert.Equal(t, "tests/c_test.rs,Rust,6,1,0,7,true", lines[3])
}

func TestMetricsFormatter_Markdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewMetricsFormatter(false).Write(sampleMetricsResponse(), domain.OutputFormatMarkdown, &buf))
	assert.Contains(t, buf.String(), "| Code lines | 20 |")
	assert.Contains(t, buf.String(), "| Rust | 2 | 16 | 3 | 1 | 6 |")
}

func TestMetricsFormatter_StructuredAndUnsupported(t *testing.T) {
	var js bytes.Buffer
	require.NoError(t, NewMetricsFormatter(false).Write(sampleMetricsResponse(), domain.OutputFormatJSON, &js))
	assert.Contains(t, js.String(), `"lines_of_code": 20`)

	err := NewMetricsFormatter(false).Write(sampleMetricsResponse(), domain.OutputFormatDOT, &bytes.Buffer{})
	assert.True(t, domain.HasCode(err, domain.ErrCodeUnsupportedFormat))
}
