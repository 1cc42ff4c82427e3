package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/srcscan/domain"
)

func profile(indent domain.Indentation) *domain.StyleProfile {
	p := domain.NewStyleProfile("Rust")
	p.Indentation = indent
	p.NonEmptyLines = 10
	return p
}

func boolPtr(b bool) *bool { return &b }

func TestAggregateStyle_Empty(t *testing.T) {
	a := AggregateStyle(nil, DefaultStyleOptions())
	assert.Equal(t, 1.0, a.ConsistencyScore)
	assert.Empty(t, a.Inconsistencies)
	assert.Zero(t, a.ChecksPerformed)
}

func TestAggregateStyle_MajorityIndentation(t *testing.T) {
	profiles := map[string]*domain.StyleProfile{
		"a.rs": profile(domain.Spaces(4)),
		"b.rs": profile(domain.Spaces(4)),
		"c.rs": profile(domain.Spaces(4)),
		"d.rs": profile(domain.Tabs),
	}
	a := AggregateStyle(profiles, DefaultStyleOptions())

	assert.Equal(t, domain.Spaces(4), a.GlobalProfile.Indentation)
	require.Len(t, a.Inconsistencies, 1)
	inc := a.Inconsistencies[0]
	assert.Equal(t, "d.rs", inc.FilePath)
	assert.Nil(t, inc.LineNumber)
	assert.Equal(t, "Inconsistent indentation: expected 4 spaces, found tabs", inc.Description)
	assert.Equal(t, domain.SeverityMedium, inc.Severity)

	// 4 indentation + 4 line length + 4 trailing whitespace checks
	assert.Equal(t, 12, a.ChecksPerformed)
	assert.Equal(t, 1, a.ChecksFailed)
	assert.InDelta(t, 11.0/12.0, a.ConsistencyScore, 1e-9)
	assert.Less(t, a.ConsistencyScore, 1.0)
}

func TestAggregateStyle_IndentationViolationLines(t *testing.T) {
	mixed := profile(domain.MixedIndentation)
	mixed.IndentationViolations = []int{3, 4, 5, 6, 7, 8, 9}
	profiles := map[string]*domain.StyleProfile{
		"a.rs": profile(domain.Spaces(2)),
		"b.rs": profile(domain.Spaces(2)),
		"c.rs": mixed,
	}
	a := AggregateStyle(profiles, DefaultStyleOptions())

	require.Len(t, a.Inconsistencies, 6)
	for i, inc := range a.Inconsistencies[:5] {
		require.NotNil(t, inc.LineNumber)
		assert.Equal(t, i+3, *inc.LineNumber)
		assert.Equal(t, "Inconsistent indentation: expected 2 spaces, found mixed indentation", inc.Description)
	}
	assert.Equal(t, "And 2 more lines with inconsistent indentation", a.Inconsistencies[5].Description)
	assert.Equal(t, 1, a.ChecksFailed)
}

func TestAggregateStyle_SmallFilesSkipStructuralChecks(t *testing.T) {
	small := profile(domain.Tabs)
	small.NonEmptyLines = 2
	profiles := map[string]*domain.StyleProfile{
		"a.rs": profile(domain.Spaces(4)),
		"b.rs": profile(domain.Spaces(4)),
		"c.rs": small,
	}
	a := AggregateStyle(profiles, DefaultStyleOptions())

	assert.Empty(t, a.Inconsistencies)
	assert.Equal(t, 1.0, a.ConsistencyScore)
	// 2 indentation checks + 3 line length + 3 trailing whitespace
	assert.Equal(t, 8, a.ChecksPerformed)
}

func TestAggregateStyle_UnknownIsNotCompared(t *testing.T) {
	profiles := map[string]*domain.StyleProfile{
		"a.md": profile(domain.UnknownIndentation),
		"b.md": profile(domain.UnknownIndentation),
		"c.rs": profile(domain.Tabs),
	}
	a := AggregateStyle(profiles, DefaultStyleOptions())
	assert.True(t, a.GlobalProfile.Indentation.IsUnknown())
	assert.Empty(t, a.Inconsistencies)
}

func TestAggregateStyle_TrailingWhitespaceFolding(t *testing.T) {
	p := profile(domain.Spaces(4))
	p.LineMetrics.TrailingWhitespaceLines = []int{1, 2, 3, 4, 5, 6, 7}
	a := AggregateStyle(map[string]*domain.StyleProfile{"a.rs": p}, DefaultStyleOptions())

	require.Len(t, a.Inconsistencies, 6)
	assert.Equal(t, "Line contains trailing whitespace", a.Inconsistencies[0].Description)
	assert.Equal(t, "And 2 more lines with trailing whitespace", a.Inconsistencies[5].Description)
	assert.Nil(t, a.Inconsistencies[5].LineNumber)
	assert.Equal(t, domain.SeverityLow, a.Inconsistencies[5].Severity)
}

func TestAggregateStyle_LineLength(t *testing.T) {
	listed := profile(domain.Spaces(4))
	listed.LineMetrics.OverLimitCount = 1
	listed.LineMetrics.OverLimitLines = []int{12}

	unlisted := profile(domain.Spaces(4))
	unlisted.LineMetrics.OverLimitCount = 3

	a := AggregateStyle(map[string]*domain.StyleProfile{"a.rs": listed, "b.rs": unlisted}, DefaultStyleOptions())

	require.Len(t, a.Inconsistencies, 2)
	assert.Equal(t, "Line exceeds recommended length limit of 100 characters", a.Inconsistencies[0].Description)
	assert.Equal(t, 12, *a.Inconsistencies[0].LineNumber)
	assert.Equal(t, "File contains 3 lines over the recommended length limit (100)", a.Inconsistencies[1].Description)
}

func TestAggregateStyle_BraceStyle(t *testing.T) {
	same := func() *domain.StyleProfile {
		p := profile(domain.Spaces(4))
		p.BraceStyle = domain.BraceSameLine
		return p
	}
	next := same()
	next.BraceStyle = domain.BraceNextLine
	next.BraceViolations = []int{4, 5}

	a := AggregateStyle(map[string]*domain.StyleProfile{"a.rs": same(), "b.rs": same(), "c.rs": next}, DefaultStyleOptions())

	require.Len(t, a.Inconsistencies, 2)
	assert.Equal(t, "Inconsistent brace style: expected same line, found next line", a.Inconsistencies[0].Description)
	assert.Equal(t, 4, *a.Inconsistencies[0].LineNumber)
	assert.Equal(t, domain.SeverityLow, a.Inconsistencies[0].Severity)
}

func TestAggregateStyle_NamingAgainstMixedGlobal(t *testing.T) {
	a1 := profile(domain.Spaces(4))
	a1.Naming["variables"] = domain.NamingMixed
	a2 := profile(domain.Spaces(4))
	a2.Naming["variables"] = domain.NamingMixed
	b := profile(domain.Spaces(4))
	b.Naming["variables"] = domain.NamingSnakeCase

	a := AggregateStyle(map[string]*domain.StyleProfile{"a1.rs": a1, "a2.rs": a2, "b.rs": b}, DefaultStyleOptions())

	require.Len(t, a.Inconsistencies, 1)
	assert.Equal(t, "Inconsistent naming for variables: expected consistent naming, found snake_case",
		a.Inconsistencies[0].Description)
}

func TestAggregateStyle_Semicolons(t *testing.T) {
	with := func() *domain.StyleProfile {
		p := profile(domain.Spaces(2))
		p.HasTrailingSemicolons = boolPtr(true)
		return p
	}
	without := with()
	without.HasTrailingSemicolons = boolPtr(false)

	a := AggregateStyle(map[string]*domain.StyleProfile{"a.js": with(), "b.js": with(), "c.js": without}, DefaultStyleOptions())

	require.NotNil(t, a.GlobalProfile.HasTrailingSemicolons)
	assert.True(t, *a.GlobalProfile.HasTrailingSemicolons)
	require.Len(t, a.Inconsistencies, 1)
	assert.Equal(t, "Inconsistent semicolon usage: expected semicolons, found no semicolons", a.Inconsistencies[0].Description)
}

func TestGlobalProfile_Statistics(t *testing.T) {
	a := profile(domain.Spaces(4))
	a.LineMetrics = domain.LineMetrics{AvgLength: 20, MaxLength: 80, OverLimitCount: 1}
	a.FunctionMetrics = domain.FunctionMetrics{Count: 2, AvgLength: 10, MaxLength: 12, AvgParams: 1, MaxParams: 2}
	a.CommentRatio = 10
	a.TrailingWhitespaceCount = 2

	b := profile(domain.Spaces(4))
	b.FileType = "Python"
	b.LineMetrics = domain.LineMetrics{AvgLength: 40, MaxLength: 120, OverLimitCount: 2}
	b.FunctionMetrics = domain.FunctionMetrics{Count: 1, AvgLength: 30, MaxLength: 30, AvgParams: 3, MaxParams: 3}
	b.CommentRatio = 30
	b.TrailingWhitespaceCount = 1

	g := GlobalProfile(map[string]*domain.StyleProfile{"a.rs": a, "b.py": b})

	// tie between Python and Rust resolves to the smaller key
	assert.Equal(t, "Python", g.FileType)
	assert.InDelta(t, 30.0, g.LineMetrics.AvgLength, 1e-9)
	assert.Equal(t, 120, g.LineMetrics.MaxLength)
	assert.Equal(t, 3, g.LineMetrics.OverLimitCount)
	assert.InDelta(t, 20.0, g.FunctionMetrics.AvgLength, 1e-9)
	assert.Equal(t, 30, g.FunctionMetrics.MaxLength)
	assert.InDelta(t, 2.0, g.FunctionMetrics.AvgParams, 1e-9)
	assert.Equal(t, 3, g.FunctionMetrics.MaxParams)
	assert.InDelta(t, 20.0, g.CommentRatio, 1e-9)
	assert.Equal(t, 3, g.TrailingWhitespaceCount)
	assert.Nil(t, g.HasTrailingSemicolons)
}
