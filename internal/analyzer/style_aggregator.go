package analyzer

import (
	"fmt"
	"sort"

	"github.com/ludo-technologies/srcscan/domain"
)

// maxListedLines is how many individual lines are reported per finding
// before the rest are folded into a single summary entry
const maxListedLines = 5

// AggregateStyle computes the global majority profile of a tree, compares
// every file against it and scores the result.
//
// The consistency score is 1 - failed/performed over the checks that could
// be applied. A tree with no applicable checks scores 1.0.
func AggregateStyle(profiles map[string]*domain.StyleProfile, opts StyleOptions) *domain.CodeStyleAnalysis {
	opts = opts.Normalized()
	analysis := domain.NewCodeStyleAnalysis()
	if len(profiles) == 0 {
		return analysis
	}

	analysis.FileProfiles = profiles
	global := GlobalProfile(profiles)
	analysis.GlobalProfile = global

	for _, path := range sortedKeys(profiles) {
		c := &styleChecker{
			path:    path,
			file:    profiles[path],
			global:  global,
			opts:    opts,
			results: analysis,
		}
		c.run()
	}

	if analysis.ChecksPerformed > 0 {
		analysis.ConsistencyScore = 1.0 - float64(analysis.ChecksFailed)/float64(analysis.ChecksPerformed)
	}
	return analysis
}

// GlobalProfile merges file profiles: majorities for categorical styles,
// means for averages, maxima for maxima and sums for counts.
func GlobalProfile(profiles map[string]*domain.StyleProfile) *domain.StyleProfile {
	g := domain.NewStyleProfile("")
	if len(profiles) == 0 {
		return g
	}

	fileTypes := make(map[string]int)
	indents := make(map[string]int)
	indentByKey := make(map[string]domain.Indentation)
	braces := make(map[string]int)
	naming := make(map[string]map[string]int)
	withSemi, withoutSemi := 0, 0

	var sumAvgLine, sumAvgFn, sumAvgParams, sumComment float64
	for _, p := range profiles {
		if p.FileType != "" {
			fileTypes[p.FileType]++
		}
		key := p.Indentation.String()
		indents[key]++
		indentByKey[key] = p.Indentation
		braces[string(p.BraceStyle)]++

		for category, convention := range p.Naming {
			if naming[category] == nil {
				naming[category] = make(map[string]int)
			}
			naming[category][string(convention)]++
		}
		if p.HasTrailingSemicolons != nil {
			if *p.HasTrailingSemicolons {
				withSemi++
			} else {
				withoutSemi++
			}
		}

		sumAvgLine += p.LineMetrics.AvgLength
		sumAvgFn += p.FunctionMetrics.AvgLength
		sumAvgParams += p.FunctionMetrics.AvgParams
		sumComment += p.CommentRatio

		g.LineMetrics.MaxLength = max(g.LineMetrics.MaxLength, p.LineMetrics.MaxLength)
		g.LineMetrics.OverLimitCount += p.LineMetrics.OverLimitCount
		g.FunctionMetrics.MaxLength = max(g.FunctionMetrics.MaxLength, p.FunctionMetrics.MaxLength)
		g.FunctionMetrics.MaxParams = max(g.FunctionMetrics.MaxParams, p.FunctionMetrics.MaxParams)
		g.FunctionMetrics.Count += p.FunctionMetrics.Count
		g.TrailingWhitespaceCount += p.TrailingWhitespaceCount
		g.NonEmptyLines += p.NonEmptyLines
	}

	n := float64(len(profiles))
	g.FileType = majority(fileTypes)
	g.Indentation = indentByKey[majority(indents)]
	g.BraceStyle = domain.BraceStyle(majority(braces))
	for category, counts := range naming {
		g.Naming[category] = domain.NamingConvention(majority(counts))
	}
	if withSemi+withoutSemi > 0 {
		uses := withSemi > withoutSemi
		g.HasTrailingSemicolons = &uses
	}
	g.LineMetrics.AvgLength = sumAvgLine / n
	g.FunctionMetrics.AvgLength = sumAvgFn / n
	g.FunctionMetrics.AvgParams = sumAvgParams / n
	g.CommentRatio = sumComment / n
	return g
}

// majority returns the most frequent key, the smallest key on ties
func majority(counts map[string]int) string {
	best, bestCount := "", 0
	for _, k := range sortedKeys(counts) {
		if counts[k] > bestCount {
			best, bestCount = k, counts[k]
		}
	}
	return best
}

type styleChecker struct {
	path    string
	file    *domain.StyleProfile
	global  *domain.StyleProfile
	opts    StyleOptions
	results *domain.CodeStyleAnalysis
}

func (c *styleChecker) run() {
	small := c.file.NonEmptyLines < c.opts.SmallFileLines
	if !small {
		c.checkIndentation()
		c.checkBraces()
		c.checkNaming()
		c.checkSemicolons()
	}
	c.checkLineLength()
	c.checkTrailingWhitespace()
}

// check records one performed check and whether it passed
func (c *styleChecker) check(passed bool) bool {
	c.results.ChecksPerformed++
	if !passed {
		c.results.ChecksFailed++
	}
	return passed
}

func (c *styleChecker) add(line *int, severity domain.Severity, format string, args ...any) {
	c.results.Inconsistencies = append(c.results.Inconsistencies, domain.StyleInconsistency{
		FilePath:    c.path,
		LineNumber:  line,
		Description: fmt.Sprintf(format, args...),
		Severity:    severity,
	})
}

// addLines reports up to maxListedLines lines individually and folds the rest
func (c *styleChecker) addLines(lines []int, severity domain.Severity, message, summary string) {
	for i, n := range lines {
		if i == maxListedLines {
			c.add(nil, severity, summary, len(lines)-maxListedLines)
			return
		}
		c.add(lineRef(n), severity, "%s", message)
	}
}

func (c *styleChecker) checkIndentation() {
	file, global := c.file.Indentation, c.global.Indentation
	if file.IsUnknown() || global.IsUnknown() {
		return
	}
	if c.check(file == global) {
		return
	}

	expected := "consistent indentation"
	switch global.Kind {
	case domain.IndentSpaces, domain.IndentTabs:
		expected = global.Describe()
	}
	message := fmt.Sprintf("Inconsistent indentation: expected %s, found %s", expected, file.Describe())
	if len(c.file.IndentationViolations) == 0 {
		c.add(nil, domain.SeverityMedium, "%s", message)
		return
	}
	c.addLines(c.file.IndentationViolations, domain.SeverityMedium, message,
		"And %d more lines with inconsistent indentation")
}

func (c *styleChecker) checkBraces() {
	file, global := c.file.BraceStyle, c.global.BraceStyle
	if file == domain.BraceUnknown || global == domain.BraceUnknown || file == "" || global == "" {
		return
	}
	if c.check(file == global) {
		return
	}

	expected := global.Describe()
	if global == domain.BraceMixed {
		expected = "consistent style"
	}
	message := fmt.Sprintf("Inconsistent brace style: expected %s, found %s", expected, file.Describe())
	if len(c.file.BraceViolations) == 0 {
		c.add(nil, domain.SeverityLow, "%s", message)
		return
	}
	c.addLines(c.file.BraceViolations, domain.SeverityLow, message,
		"And %d more lines with inconsistent brace style")
}

func (c *styleChecker) checkLineLength() {
	m := c.file.LineMetrics
	if c.check(m.OverLimitCount == 0) {
		return
	}
	if len(m.OverLimitLines) == 0 {
		c.add(nil, domain.SeverityLow, "File contains %d lines over the recommended length limit (%d)",
			m.OverLimitCount, c.opts.LineLimit)
		return
	}
	c.addLines(m.OverLimitLines, domain.SeverityLow,
		fmt.Sprintf("Line exceeds recommended length limit of %d characters", c.opts.LineLimit),
		"And %d more lines exceed the length limit")
}

func (c *styleChecker) checkTrailingWhitespace() {
	lines := c.file.LineMetrics.TrailingWhitespaceLines
	if c.check(len(lines) == 0) {
		return
	}
	c.addLines(lines, domain.SeverityLow, "Line contains trailing whitespace",
		"And %d more lines with trailing whitespace")
}

func (c *styleChecker) checkNaming() {
	for _, category := range sortedKeys(c.global.Naming) {
		global := c.global.Naming[category]
		file, ok := c.file.Naming[category]
		if !ok || file == domain.NamingUnknown || global == domain.NamingUnknown {
			continue
		}
		if c.check(file == global) {
			continue
		}
		expected := string(global)
		if global == domain.NamingMixed {
			expected = "consistent naming"
		}
		c.add(nil, domain.SeverityLow, "Inconsistent naming for %s: expected %s, found %s",
			category, expected, file.Describe())
	}
}

func (c *styleChecker) checkSemicolons() {
	file, global := c.file.HasTrailingSemicolons, c.global.HasTrailingSemicolons
	if file == nil || global == nil {
		return
	}
	if c.check(*file == *global) {
		return
	}
	c.add(nil, domain.SeverityLow, "Inconsistent semicolon usage: expected %s, found %s",
		semicolonWord(*global), semicolonWord(*file))
}

func semicolonWord(uses bool) string {
	if uses {
		return "semicolons"
	}
	return "no semicolons"
}

func lineRef(n int) *int { return &n }

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
