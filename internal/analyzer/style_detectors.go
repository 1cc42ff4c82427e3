package analyzer

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/ludo-technologies/srcscan/domain"
	"github.com/ludo-technologies/srcscan/internal/lang"
	"github.com/ludo-technologies/srcscan/internal/scanner"
)

// Style detection defaults
const (
	DefaultLineLimit       = 100
	DefaultSmallFileLines  = 5
	DefaultNamingThreshold = 0.75
	// braceDominance is how many times more frequent a brace style must be to win
	braceDominance = 2
)

// Naming categories
const (
	NamingVariables  = "variables"
	NamingFunctions  = "functions"
	NamingTypes      = "types"
	NamingClasses    = "classes"
	NamingInterfaces = "interfaces"
)

// StyleOptions tunes the style detectors
type StyleOptions struct {
	LineLimit       int
	SmallFileLines  int
	NamingThreshold float64
}

// DefaultStyleOptions returns the stock detector settings
func DefaultStyleOptions() StyleOptions {
	return StyleOptions{
		LineLimit:       DefaultLineLimit,
		SmallFileLines:  DefaultSmallFileLines,
		NamingThreshold: DefaultNamingThreshold,
	}
}

// Normalized replaces zero or out-of-range settings with the defaults
func (o StyleOptions) Normalized() StyleOptions {
	d := DefaultStyleOptions()
	if o.LineLimit <= 0 {
		o.LineLimit = d.LineLimit
	}
	if o.SmallFileLines <= 0 {
		o.SmallFileLines = d.SmallFileLines
	}
	if o.NamingThreshold <= 0 || o.NamingThreshold > 1 {
		o.NamingThreshold = d.NamingThreshold
	}
	return o
}

type namingRule struct {
	category string
	patterns []*regexp.Regexp
}

// styleDescriptor holds the per-language patterns, compiled once
type styleDescriptor struct {
	// functions capture the name in group 1 and the parameter list in group 2
	functions []*regexp.Regexp
	// variables feed the always-present "variables" naming category
	variables []*regexp.Regexp
	// naming lists further categories, reported only when names are found
	naming []namingRule
	// declaration matches lines that open a function body, for brace style
	declaration func(trimmed string) bool
	// indentBlocks means bodies are delimited by indentation instead of braces
	indentBlocks bool
	semicolons   bool
}

var (
	rustFn    = regexp.MustCompile(`fn\s+(\w+)\s*\(([^)]*)\)`)
	pythonDef = regexp.MustCompile(`def\s+(\w+)\s*\(([^)]*)\)`)
	jsFns     = []*regexp.Regexp{
		regexp.MustCompile(`function\s+(\w+)\s*\(([^)]*)\)`),
		regexp.MustCompile(`(\w+)\s*=\s*function\s*\(([^)]*)\)`),
		regexp.MustCompile(`(\w+)\s*:\s*function\s*\(([^)]*)\)`),
		regexp.MustCompile(`(\w+)\s*=\s*\(([^)]*)\)\s*=>`),
		regexp.MustCompile(`const\s+(\w+)\s*=\s*\(([^)]*)\)\s*=>`),
	}
	cFamilyFn = regexp.MustCompile(`(?m)^[ \t]*(?:[\w<>\[\],*&:~]+[ \t]+)+[*&]?(~?\w+)\s*\(([^)]*)\)\s*(?:const\s*)?(?:throws[\w\s,.]+)?\{?[ \t]*$`)
	goFn      = regexp.MustCompile(`func\s+(?:\([^)]*\)\s*)?(\w+)\s*\(([^)]*)\)`)

	jsMethodDecl = regexp.MustCompile(`^(?:async\s+)?(?:static\s+)?\w+\s*\([^)]*\)\s*\{?$`)
	cFamilyDecl  = regexp.MustCompile(`^(?:[\w<>\[\],*&:~]+\s+)+[*&]?~?\w+\s*\(`)

	controlKeywords = map[string]bool{
		"if": true, "for": true, "while": true, "switch": true, "catch": true,
		"else": true, "return": true, "do": true, "new": true, "throw": true,
		"using": true, "lock": true, "foreach": true, "sizeof": true, "case": true,
	}
	pythonNotVariables = map[string]bool{"if": true, "while": true, "for": true, "def": true, "class": true}
)

func firstWord(s string) string {
	end := strings.IndexFunc(s, func(r rune) bool { return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_') })
	if end < 0 {
		return s
	}
	return s[:end]
}

func isRustDecl(t string) bool {
	return (strings.HasPrefix(t, "fn ") || strings.HasPrefix(t, "pub fn ") || strings.Contains(t, " fn ")) &&
		strings.Contains(t, "(")
}

func isJSDecl(t string) bool {
	if !strings.Contains(t, "(") || controlKeywords[firstWord(t)] {
		return false
	}
	return strings.Contains(t, "function") || jsMethodDecl.MatchString(t)
}

func isCFamilyDecl(t string) bool {
	if strings.HasSuffix(t, ";") || controlKeywords[firstWord(t)] {
		return false
	}
	return cFamilyDecl.MatchString(t)
}

func isGoDecl(t string) bool {
	return strings.HasPrefix(t, "func ") && strings.Contains(t, "(")
}

var descriptors = map[lang.Language]*styleDescriptor{
	lang.Rust: {
		functions: []*regexp.Regexp{rustFn},
		variables: []*regexp.Regexp{regexp.MustCompile(`let\s+(\w+)`)},
		naming: []namingRule{
			{NamingFunctions, []*regexp.Regexp{regexp.MustCompile(`fn\s+(\w+)`)}},
			{NamingTypes, []*regexp.Regexp{regexp.MustCompile(`struct\s+(\w+)`), regexp.MustCompile(`enum\s+(\w+)`)}},
		},
		declaration: isRustDecl,
	},
	lang.JavaScript: {
		functions: jsFns,
		variables: jsVariables,
		naming: []namingRule{
			{NamingFunctions, []*regexp.Regexp{regexp.MustCompile(`function\s+(\w+)`)}},
		},
		declaration: isJSDecl,
		semicolons:  true,
	},
	lang.TypeScript: {
		functions: jsFns,
		variables: jsVariables,
		naming: []namingRule{
			{NamingFunctions, []*regexp.Regexp{regexp.MustCompile(`function\s+(\w+)`)}},
			{NamingClasses, []*regexp.Regexp{regexp.MustCompile(`class\s+(\w+)`)}},
			{NamingInterfaces, []*regexp.Regexp{regexp.MustCompile(`interface\s+(\w+)`)}},
		},
		declaration: isJSDecl,
		semicolons:  true,
	},
	lang.Python: {
		functions:    []*regexp.Regexp{pythonDef},
		variables:    []*regexp.Regexp{regexp.MustCompile(`(\w+)\s*=`)},
		indentBlocks: true,
	},
	lang.Java:   {functions: []*regexp.Regexp{cFamilyFn}, declaration: isCFamilyDecl},
	lang.C:      {functions: []*regexp.Regexp{cFamilyFn}, declaration: isCFamilyDecl},
	lang.CPP:    {functions: []*regexp.Regexp{cFamilyFn}, declaration: isCFamilyDecl},
	lang.CSharp: {functions: []*regexp.Regexp{cFamilyFn}, declaration: isCFamilyDecl},
	lang.Go:     {functions: []*regexp.Regexp{goFn}, declaration: isGoDecl},
}

var jsVariables = []*regexp.Regexp{
	regexp.MustCompile(`var\s+(\w+)`),
	regexp.MustCompile(`let\s+(\w+)`),
	regexp.MustCompile(`const\s+(\w+)`),
}

// styleLanguages are the languages style profiles are built for
var styleLanguages = map[lang.Language]bool{
	lang.Rust: true, lang.JavaScript: true, lang.TypeScript: true, lang.Python: true,
	lang.Java: true, lang.C: true, lang.CPP: true, lang.CSharp: true, lang.Go: true,
	lang.Ruby: true, lang.PHP: true, lang.HTML: true, lang.CSS: true, lang.Markdown: true,
	lang.JSON: true, lang.YAML: true, lang.TOML: true,
}

// IsStyleLanguage reports whether style profiles are built for files of language l
func IsStyleLanguage(l lang.Language) bool { return styleLanguages[l] }

// CountNonEmptyLines counts lines that hold something besides whitespace
func CountNonEmptyLines(lines []string) int {
	n := 0
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			n++
		}
	}
	return n
}

// DetectIndentation returns the dominant indentation of lines and the
// 1-based numbers of lines that disagree with it.
//
// Files with fewer than smallFile non-empty lines get a lightweight guess and
// never report violations.
func DetectIndentation(lines []string, smallFile int) (domain.Indentation, []int) {
	if CountNonEmptyLines(lines) < smallFile {
		return smallFileIndentation(lines), nil
	}

	spaceCounts := make(map[int]int)
	byLine := make(map[int]domain.Indentation)
	hasTabs := false

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || len(trimmed) == len(line) {
			continue
		}
		if !revealsIndentation(lines, i, trimmed) {
			continue
		}
		lineNumber := i + 1
		if strings.HasPrefix(line, "\t") {
			hasTabs = true
			byLine[lineNumber] = domain.Tabs
		} else if leading := len(line) - len(strings.TrimLeft(line, " \t")); leading > 0 && line[0] == ' ' {
			spaceCounts[leading]++
			byLine[lineNumber] = domain.Spaces(leading)
		}
	}

	var violations []int
	if hasTabs {
		if len(spaceCounts) == 0 {
			return domain.Tabs, nil
		}
		for n, indent := range byLine {
			if indent.Kind == domain.IndentSpaces {
				violations = append(violations, n)
			}
		}
		sort.Ints(violations)
		return domain.MixedIndentation, violations
	}
	if len(spaceCounts) == 0 {
		return domain.UnknownIndentation, nil
	}

	common := mostCommonWidth(spaceCounts)
	if common%2 == 0 && common <= 8 {
		for n, indent := range byLine {
			if indent.Width != common {
				violations = append(violations, n)
			}
		}
		sort.Ints(violations)
		return domain.Spaces(common), violations
	}
	for n := range byLine {
		violations = append(violations, n)
	}
	sort.Ints(violations)
	return domain.MixedIndentation, violations
}

// mostCommonWidth picks the most frequent width, the smaller width on ties
func mostCommonWidth(counts map[int]int) int {
	best, bestCount := 0, -1
	for width, count := range counts {
		if count > bestCount || (count == bestCount && width < best) {
			best, bestCount = width, count
		}
	}
	return best
}

func smallFileIndentation(lines []string) domain.Indentation {
	tabs, spaces := 0, 0
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if strings.HasPrefix(line, "\t") {
			tabs++
		} else if strings.HasPrefix(line, " ") {
			spaces++
		}
	}
	if tabs > 0 && spaces == 0 {
		return domain.Tabs
	}
	if spaces > 0 && tabs == 0 {
		for _, line := range lines {
			if strings.TrimSpace(line) == "" {
				continue
			}
			if leading := len(line) - len(strings.TrimLeft(line, " \t")); leading > 0 {
				return domain.Spaces(leading)
			}
		}
	}
	return domain.Spaces(4)
}

// revealsIndentation filters out lines whose leading whitespace is alignment
// rather than block indentation: trivial lines, continuations and call arguments.
func revealsIndentation(lines []string, i int, trimmed string) bool {
	meaningful := 0
	for _, r := range trimmed {
		if r != '}' && r != '{' && r != ')' && r != ']' {
			meaningful++
		}
	}
	if len(trimmed) <= 3 || meaningful <= 2 {
		return false
	}

	if i > 0 {
		prev := strings.TrimSpace(lines[i-1])
		if prev != "" && strings.ContainsAny(prev[len(prev)-1:], "+-*/|&,.") {
			return false
		}
	}

	for _, p := range []string{".", ")", "}", "]", "||", "&&"} {
		if strings.HasPrefix(trimmed, p) {
			return false
		}
	}
	if strings.HasSuffix(trimmed, "||") || strings.HasSuffix(trimmed, "&&") {
		return false
	}

	first := rune(trimmed[0])
	startsLikeArgument := first == '"' || unicode.IsDigit(first) || unicode.IsLetter(first)
	endsLikeArgument := strings.HasSuffix(trimmed, ",") || strings.HasSuffix(trimmed, ")")
	if startsLikeArgument && endsLikeArgument && i > 0 && i < len(lines)-1 &&
		(strings.Contains(lines[i-1], "(") || strings.HasSuffix(strings.TrimSpace(lines[i-1]), ",")) {
		return false
	}
	return true
}

// DetectBraceStyle classifies where function bodies open their brace.
//
// Only declaration lines are examined. A style wins when it is more than
// twice as frequent as the other; violations are the lines using the losing
// style, reported only when a style wins.
func DetectBraceStyle(lines []string, l lang.Language, smallFile int) (domain.BraceStyle, []int) {
	if len(lines) < smallFile {
		return domain.BraceSameLine, nil
	}

	d := descriptors[l]
	if d == nil || d.declaration == nil {
		switch l {
		case lang.Python, lang.Ruby:
			return domain.BraceSameLine, nil
		}
		return domain.BraceUnknown, nil
	}

	var sameLines, nextLines []int
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !d.declaration(trimmed) {
			continue
		}
		switch {
		case strings.HasSuffix(trimmed, "{"):
			sameLines = append(sameLines, i+1)
		case !strings.Contains(trimmed, "{") && !strings.HasSuffix(trimmed, ";") &&
			i+1 < len(lines) && strings.HasPrefix(strings.TrimSpace(lines[i+1]), "{"):
			nextLines = append(nextLines, i+1, i+2)
		}
	}

	same, next := len(sameLines), len(nextLines)/2
	switch {
	case same > 0 && next > 0:
		if same > next*braceDominance {
			return domain.BraceSameLine, nextLines
		}
		if next > same*braceDominance {
			return domain.BraceNextLine, sameLines
		}
		return domain.BraceMixed, nil
	case same > 0:
		return domain.BraceSameLine, nil
	case next > 0:
		return domain.BraceNextLine, nil
	}

	switch l {
	case lang.C, lang.CPP, lang.CSharp:
		return domain.BraceNextLine, nil
	}
	return domain.BraceSameLine, nil
}

// MeasureLines collects line length statistics and trailing whitespace.
//
// A line only counts as over the limit when its trimmed text is longer than
// 10 characters and more than 3 of them are not spaces, braces, parentheses
// or semicolons. Trailing whitespace is only reported on lines with more than
// 3 characters of content.
func MeasureLines(lines []string, limit int) domain.LineMetrics {
	var m domain.LineMetrics
	if len(lines) == 0 {
		return m
	}
	total := 0
	for i, line := range lines {
		n := len(line)
		total += n
		m.MaxLength = max(m.MaxLength, n)

		trimmed := strings.TrimSpace(line)
		if n > limit && len(trimmed) > 10 {
			meaningful := 0
			for _, r := range trimmed {
				if r != ' ' && r != '}' && r != ';' && r != ')' && r != '{' {
					meaningful++
				}
			}
			if meaningful > 3 {
				m.OverLimitCount++
				m.OverLimitLines = append(m.OverLimitLines, i+1)
			}
		}

		if len(trimmed) > 3 && (strings.HasSuffix(line, " ") || strings.HasSuffix(line, "\t")) {
			m.TrailingWhitespaceLines = append(m.TrailingWhitespaceLines, i+1)
		}
	}
	m.AvgLength = float64(total) / float64(len(lines))
	return m
}

// MeasureFunctions extracts function signatures and measures parameter
// counts and body lengths.
//
// Body length is measured, not estimated: brace depth for brace languages
// and indentation for Python. Signatures without a body count as one line.
func MeasureFunctions(content string, l lang.Language) domain.FunctionMetrics {
	d := descriptors[l]
	if d == nil || len(d.functions) == 0 {
		return domain.FunctionMetrics{}
	}

	seen := make(map[int]bool)
	var lengths, params []int
	for _, re := range d.functions {
		for _, loc := range re.FindAllStringSubmatchIndex(content, -1) {
			nameStart := loc[2]
			if seen[nameStart] {
				continue
			}
			seen[nameStart] = true

			paramList := content[loc[4]:loc[5]]
			params = append(params, countParams(paramList))
			if d.indentBlocks {
				lengths = append(lengths, indentBodyLength(content, loc[0]))
			} else {
				lengths = append(lengths, braceBodyLength(content, loc[0], loc[1]))
			}
		}
	}
	if len(params) == 0 {
		return domain.FunctionMetrics{}
	}

	m := domain.FunctionMetrics{Count: len(params)}
	sumLen, sumParams := 0, 0
	for i := range params {
		sumLen += lengths[i]
		sumParams += params[i]
		m.MaxLength = max(m.MaxLength, lengths[i])
		m.MaxParams = max(m.MaxParams, params[i])
	}
	m.AvgLength = float64(sumLen) / float64(len(params))
	m.AvgParams = float64(sumParams) / float64(len(params))
	return m
}

func countParams(list string) int {
	if strings.TrimSpace(list) == "" {
		return 0
	}
	return strings.Count(list, ",") + 1
}

// braceBodyLength counts the lines from the signature start to the brace
// closing its body. A ';' before any '{' means there is no body.
func braceBodyLength(content string, start, sigEnd int) int {
	open := -1
	for i := sigEnd; i < len(content); i++ {
		c := content[i]
		if c == '{' {
			open = i
			break
		}
		if c == ';' {
			return lineSpan(content, start, i)
		}
		if c == '=' && i+1 < len(content) && content[i+1] == '>' {
			// expression-bodied arrow function
			rest := strings.TrimLeft(content[i+2:], " \t")
			if !strings.HasPrefix(rest, "{") {
				end := strings.IndexByte(content[i:], '\n')
				if end < 0 {
					return lineSpan(content, start, len(content)-1)
				}
				return lineSpan(content, start, i+end-1)
			}
		}
	}
	if open < 0 {
		return lineSpan(content, start, sigEnd-1)
	}

	depth := 0
	var quote byte
	for i := open; i < len(content); i++ {
		c := content[i]
		if quote != 0 {
			switch c {
			case '\\':
				i++
			case quote, '\n':
				quote = 0
			}
			continue
		}
		switch c {
		case '"', '`':
			quote = c
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return lineSpan(content, start, i)
			}
		}
	}
	return lineSpan(content, start, len(content)-1)
}

// indentBodyLength counts the def line plus every following line until the
// first non-blank line indented no deeper than the def.
func indentBodyLength(content string, start int) int {
	lineStart := strings.LastIndexByte(content[:start], '\n') + 1
	lines := scanner.SplitLines(content[lineStart:])
	if len(lines) == 0 {
		return 0
	}
	base := indentWidth(lines[0])
	last := 0
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "" {
			continue
		}
		if indentWidth(lines[i]) <= base {
			break
		}
		last = i
	}
	return last + 1
}

func indentWidth(line string) int {
	w := 0
	for _, r := range line {
		switch r {
		case ' ':
			w++
		case '\t':
			w += 4
		default:
			return w
		}
	}
	return w
}

// lineSpan returns the number of lines covered by content[from:to+1]
func lineSpan(content string, from, to int) int {
	if to < from {
		return 1
	}
	return strings.Count(content[from:to+1], "\n") + 1
}

// ClassifyName assigns a single identifier to a naming convention
func ClassifyName(name string) domain.NamingConvention {
	switch {
	case strings.Contains(name, "_"):
		return domain.NamingSnakeCase
	case strings.Contains(name, "-"):
		return domain.NamingKebabCase
	case name == "":
		return domain.NamingUnknown
	}
	if unicode.IsUpper([]rune(name)[0]) {
		return domain.NamingPascalCase
	}
	for _, r := range name {
		if unicode.IsUpper(r) {
			return domain.NamingCamelCase
		}
	}
	// single lowercase words read as snake_case
	return domain.NamingSnakeCase
}

// DominantConvention returns the convention used by more than threshold of
// names, Mixed when none is, and Unknown for an empty list.
func DominantConvention(names []string, threshold float64) domain.NamingConvention {
	if len(names) == 0 {
		return domain.NamingUnknown
	}
	counts := make(map[domain.NamingConvention]int)
	for _, n := range names {
		counts[ClassifyName(n)]++
	}
	limit := int(float64(len(names)) * threshold)
	for _, c := range []domain.NamingConvention{
		domain.NamingSnakeCase, domain.NamingCamelCase, domain.NamingPascalCase, domain.NamingKebabCase,
	} {
		if counts[c] > limit {
			return c
		}
	}
	return domain.NamingMixed
}

// DetectNaming returns the dominant convention per identifier category.
// "variables" is always present, other categories only when names exist.
func DetectNaming(content string, l lang.Language, threshold float64) map[string]domain.NamingConvention {
	result := make(map[string]domain.NamingConvention)
	d := descriptors[l]
	if d == nil {
		result[NamingVariables] = domain.NamingUnknown
		return result
	}

	var vars []string
	for _, name := range captureNames(content, d.variables) {
		if l == lang.Python && pythonNotVariables[name] {
			continue
		}
		vars = append(vars, name)
	}
	result[NamingVariables] = DominantConvention(vars, threshold)

	for _, rule := range d.naming {
		if names := captureNames(content, rule.patterns); len(names) > 0 {
			result[rule.category] = DominantConvention(names, threshold)
		}
	}
	return result
}

func captureNames(content string, patterns []*regexp.Regexp) []string {
	var names []string
	for _, re := range patterns {
		for _, m := range re.FindAllStringSubmatch(content, -1) {
			names = append(names, m[1])
		}
	}
	return names
}

// DetectSemicolons reports whether statement lines mostly end with ';'.
// It returns nil for languages where semicolons are not a style choice, or
// when no statement lines exist.
func DetectSemicolons(lines []string, l lang.Language) *bool {
	d := descriptors[l]
	if d == nil || !d.semicolons {
		return nil
	}
	with, without := 0, 0
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasSuffix(trimmed, "{") || strings.HasSuffix(trimmed, "}") {
			continue
		}
		if strings.HasSuffix(trimmed, ";") {
			with++
		} else {
			without++
		}
	}
	if with+without == 0 {
		return nil
	}
	uses := with > without
	return &uses
}

// CommentDensity returns the integer percentage of non-blank lines that are comments
func CommentDensity(content string, l lang.Language) float64 {
	code, _, comment := scanner.CountLines(content, lang.CommentSyntaxFor(l))
	if code+comment == 0 {
		return 0
	}
	return float64(comment * 100 / (code + comment))
}

// BuildStyleProfile runs every detector on one file
func BuildStyleProfile(content string, l lang.Language, opts StyleOptions) *domain.StyleProfile {
	opts = opts.Normalized()
	lines := scanner.SplitLines(content)

	p := domain.NewStyleProfile(l.String())
	p.NonEmptyLines = CountNonEmptyLines(lines)
	p.Indentation, p.IndentationViolations = DetectIndentation(lines, opts.SmallFileLines)
	p.BraceStyle, p.BraceViolations = DetectBraceStyle(lines, l, opts.SmallFileLines)
	p.LineMetrics = MeasureLines(lines, opts.LineLimit)
	p.TrailingWhitespaceCount = len(p.LineMetrics.TrailingWhitespaceLines)
	p.FunctionMetrics = MeasureFunctions(content, l)
	p.Naming = DetectNaming(content, l, opts.NamingThreshold)
	p.HasTrailingSemicolons = DetectSemicolons(lines, l)
	p.CommentRatio = CommentDensity(content, l)
	return p
}
