package analyzer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/srcscan/domain"
	"github.com/ludo-technologies/srcscan/internal/lang"
	"github.com/ludo-technologies/srcscan/internal/scanner"
)

const rustSpaces = `fn main() {
    let value = compute();
    println!("{}", value);
    if value > 3 {
        return;
    }
}
`

func TestDetectIndentation(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		want       domain.Indentation
		violations []int
	}{
		{
			name:    "spaces with nested block",
			content:    rustSpaces,
			want:       domain.Spaces(4),
			violations: []int{5},
		},
		{
			name:       "stray narrow line",
			content:    "fn main() {\n    let a = 1;\n    let b = 2;\n    let c = 3;\n  let stray = 4;\n    let d = 5;\n}\n",
			want:       domain.Spaces(4),
			violations: []int{5},
		},
		{
			name:    "tabs",
			content: "fn main() {\n\tlet value = compute();\n\tprintln!(\"{}\", value);\n\tif value > 3 {\n\t\treturn;\n\t}\n}\n",
			want:    domain.Tabs,
		},
		{
			name:       "tabs and spaces",
			content:    "fn main() {\n\tlet value = compute();\n    println!(\"{}\", value);\n\tif value > 3 {\n\t\treturn;\n\t}\n}\n",
			want:       domain.MixedIndentation,
			violations: []int{3},
		},
		{
			name:    "small file with spaces",
			content: "def f():\n  return 1\n",
			want:    domain.Spaces(2),
		},
		{
			name:    "small file with tabs",
			content: "def f():\n\treturn 1\n",
			want:    domain.Tabs,
		},
		{
			name:    "small file without indentation",
			content: "x = 1\n",
			want:    domain.Spaces(4),
		},
		{
			name:    "no indented lines",
			content: "a = 1\nb = 2\nc = 3\nd = 4\ne = 5\n",
			want:    domain.UnknownIndentation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, violations := DetectIndentation(scanner.SplitLines(tt.content), DefaultSmallFileLines)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.violations, violations)
		})
	}
}

func TestDetectIndentation_OddWidthIsMixed(t *testing.T) {
	content := "fn main() {\n   let a = compute();\n   let b = compute();\n   let c = compute();\n   let d = compute();\n}\n"
	got, violations := DetectIndentation(scanner.SplitLines(content), DefaultSmallFileLines)
	assert.Equal(t, domain.MixedIndentation, got)
	assert.Equal(t, []int{2, 3, 4, 5}, violations)
}

func TestDetectBraceStyle(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		language   lang.Language
		want       domain.BraceStyle
		violations []int
	}{
		{
			name:     "rust same line",
			content:  "fn a() {\n}\nfn b() {\n}\nfn c() {\n}\n",
			language: lang.Rust,
			want:     domain.BraceSameLine,
		},
		{
			name:     "csharp next line",
			content:  "void A()\n{\n}\nvoid B()\n{\n}\n",
			language: lang.CSharp,
			want:     domain.BraceNextLine,
		},
		{
			name:     "mixed without dominance",
			content:  "fn a() {\n}\nfn b()\n{\n}\n",
			language: lang.Rust,
			want:     domain.BraceMixed,
		},
		{
			name:       "dominant style reports minority lines",
			content:    "fn a() {\n}\nfn b() {\n}\nfn c() {\n}\nfn d()\n{\n}\n",
			language:   lang.Rust,
			want:       domain.BraceSameLine,
			violations: []int{7, 8},
		},
		{
			name:     "short file",
			content:  "void A()\n{\n}\n",
			language: lang.C,
			want:     domain.BraceSameLine,
		},
		{
			name:     "python has no braces",
			content:  "def a():\n    pass\n\ndef b():\n    pass\n",
			language: lang.Python,
			want:     domain.BraceSameLine,
		},
		{
			name:     "c default without declarations",
			content:  "#include <a.h>\n#include <b.h>\n\nint x;\nint y;\n",
			language: lang.C,
			want:     domain.BraceNextLine,
		},
		{
			name:     "markdown unknown",
			content:  "# Title\n\ntext\n\nmore\n",
			language: lang.Markdown,
			want:     domain.BraceUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, violations := DetectBraceStyle(scanner.SplitLines(tt.content), tt.language, DefaultSmallFileLines)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.violations, violations)
		})
	}
}

func TestDetectBraceStyle_ControlFlowIgnored(t *testing.T) {
	content := "int main()\n{\n    if (x)\n    {\n    }\n    while (y)\n    {\n    }\n}\n"
	got, violations := DetectBraceStyle(scanner.SplitLines(content), lang.C, DefaultSmallFileLines)
	assert.Equal(t, domain.BraceNextLine, got)
	assert.Nil(t, violations)
}

func TestMeasureLines(t *testing.T) {
	lines := []string{"short", strings.Repeat("a", 120), "x = 1;  ", strings.Repeat("}", 120)}
	m := MeasureLines(lines, DefaultLineLimit)

	assert.InDelta(t, float64(5+120+8+120)/4, m.AvgLength, 0.001)
	assert.Equal(t, 120, m.MaxLength)
	assert.Equal(t, 1, m.OverLimitCount)
	assert.Equal(t, []int{2}, m.OverLimitLines)
	assert.Equal(t, []int{3}, m.TrailingWhitespaceLines)
}

func TestMeasureLines_Empty(t *testing.T) {
	assert.Equal(t, domain.LineMetrics{}, MeasureLines(nil, DefaultLineLimit))
}

func TestMeasureFunctions(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		language lang.Language
		want     domain.FunctionMetrics
	}{
		{
			name:     "rust",
			content:  "fn add(a: i32, b: i32) -> i32 {\n    a + b\n}\n\nfn noop() {\n}\n",
			language: lang.Rust,
			want:     domain.FunctionMetrics{Count: 2, AvgLength: 2.5, MaxLength: 3, AvgParams: 1, MaxParams: 2},
		},
		{
			name:     "python",
			content:  "def outer(a, b=1):\n    x = a + b\n\n    return x\n\ndef inner():\n    pass\n",
			language: lang.Python,
			want:     domain.FunctionMetrics{Count: 2, AvgLength: 3, MaxLength: 4, AvgParams: 1, MaxParams: 2},
		},
		{
			name:     "javascript with arrow expression",
			content:  "function greet(name) {\n  return \"hi }\" + name;\n}\nconst add = (a, b) => a + b;\n",
			language: lang.JavaScript,
			want:     domain.FunctionMetrics{Count: 2, AvgLength: 2, MaxLength: 3, AvgParams: 1.5, MaxParams: 2},
		},
		{
			name:     "go method",
			content:  "func (s *Server) Start(ctx context.Context, addr string) error {\n\treturn nil\n}\n",
			language: lang.Go,
			want:     domain.FunctionMetrics{Count: 1, AvgLength: 3, MaxLength: 3, AvgParams: 2, MaxParams: 2},
		},
		{
			name:     "no functions",
			content:  "# heading\n",
			language: lang.Markdown,
			want:     domain.FunctionMetrics{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MeasureFunctions(tt.content, tt.language)
			assert.Equal(t, tt.want.Count, got.Count)
			assert.InDelta(t, tt.want.AvgLength, got.AvgLength, 0.001)
			assert.Equal(t, tt.want.MaxLength, got.MaxLength)
			assert.InDelta(t, tt.want.AvgParams, got.AvgParams, 0.001)
			assert.Equal(t, tt.want.MaxParams, got.MaxParams)
		})
	}
}

func TestClassifyName(t *testing.T) {
	cases := map[string]domain.NamingConvention{
		"user_name": domain.NamingSnakeCase,
		"userName":  domain.NamingCamelCase,
		"UserName":  domain.NamingPascalCase,
		"user-name": domain.NamingKebabCase,
		"value":     domain.NamingSnakeCase,
		"HTTP":      domain.NamingPascalCase,
		"":          domain.NamingUnknown,
	}
	for name, want := range cases {
		assert.Equal(t, want, ClassifyName(name), name)
	}
}

func TestDominantConvention(t *testing.T) {
	assert.Equal(t, domain.NamingUnknown, DominantConvention(nil, DefaultNamingThreshold))
	// 3 of 4 is not more than int(4*0.75)
	assert.Equal(t, domain.NamingMixed, DominantConvention([]string{"a_b", "c_d", "e_f", "gH"}, DefaultNamingThreshold))
	assert.Equal(t, domain.NamingSnakeCase, DominantConvention([]string{"a_b", "c_d", "e_f", "g_h", "iJ"}, DefaultNamingThreshold))
	assert.Equal(t, domain.NamingCamelCase, DominantConvention([]string{"aB", "cD"}, DefaultNamingThreshold))
}

func TestDetectNaming(t *testing.T) {
	rust := "struct UserAccount {}\nfn load_user() {\n    let user_id = 1;\n    let account_name = 2;\n}\n"
	got := DetectNaming(rust, lang.Rust, DefaultNamingThreshold)
	assert.Equal(t, map[string]domain.NamingConvention{
		NamingVariables: domain.NamingSnakeCase,
		NamingFunctions: domain.NamingSnakeCase,
		NamingTypes:     domain.NamingPascalCase,
	}, got)

	js := "const userName = 1;\nlet itemCount = 2;\n"
	assert.Equal(t, map[string]domain.NamingConvention{NamingVariables: domain.NamingCamelCase},
		DetectNaming(js, lang.JavaScript, DefaultNamingThreshold))

	py := "total_count = 0\nmax_value = 10\n"
	assert.Equal(t, domain.NamingSnakeCase, DetectNaming(py, lang.Python, DefaultNamingThreshold)[NamingVariables])

	assert.Equal(t, map[string]domain.NamingConvention{NamingVariables: domain.NamingUnknown},
		DetectNaming("# Title\n", lang.Markdown, DefaultNamingThreshold))
}

func TestDetectSemicolons(t *testing.T) {
	lines := []string{"const a = 1;", "let b = 2;", "foo()", "function x() {", "}"}
	got := DetectSemicolons(lines, lang.JavaScript)
	require.NotNil(t, got)
	assert.True(t, *got)

	got = DetectSemicolons([]string{"const a = 1", "foo()"}, lang.TypeScript)
	require.NotNil(t, got)
	assert.False(t, *got)

	assert.Nil(t, DetectSemicolons([]string{"let a = 1;"}, lang.Rust))
	assert.Nil(t, DetectSemicolons([]string{"{", "}"}, lang.JavaScript))
}

func TestCommentDensity(t *testing.T) {
	assert.Equal(t, 66.0, CommentDensity("// a\nfn x() {}\n\n// b\n", lang.Rust))
	assert.Equal(t, 0.0, CommentDensity("\n\n", lang.Rust))
}

func TestBuildStyleProfile(t *testing.T) {
	p := BuildStyleProfile(rustSpaces, lang.Rust, StyleOptions{})

	assert.Equal(t, "Rust", p.FileType)
	assert.Equal(t, 7, p.NonEmptyLines)
	assert.Equal(t, domain.Spaces(4), p.Indentation)
	assert.Equal(t, domain.BraceSameLine, p.BraceStyle)
	assert.Equal(t, 1, p.FunctionMetrics.Count)
	assert.Equal(t, domain.NamingSnakeCase, p.Naming[NamingVariables])
	assert.Nil(t, p.HasTrailingSemicolons)
	assert.Zero(t, p.TrailingWhitespaceCount)
}

func TestBuildStyleProfile_SmallFileCutoffAppliesToBraces(t *testing.T) {
	content := "void A()\n{\n}\nvoid B()\n{\n}\n"

	assert.Equal(t, domain.BraceNextLine, BuildStyleProfile(content, lang.CSharp, StyleOptions{}).BraceStyle)

	p := BuildStyleProfile(content, lang.CSharp, StyleOptions{SmallFileLines: 10})
	assert.Equal(t, domain.BraceSameLine, p.BraceStyle)
	assert.Nil(t, p.BraceViolations)
}

func TestIsStyleLanguage(t *testing.T) {
	assert.True(t, IsStyleLanguage(lang.Rust))
	assert.True(t, IsStyleLanguage(lang.YAML))
	assert.False(t, IsStyleLanguage(lang.LockFile))
	assert.False(t, IsStyleLanguage(lang.Other))
}
