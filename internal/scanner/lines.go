// Package scanner implements the lexical passes shared by the analyzers:
// line classification and comment-aware splitting of single lines.
package scanner

import (
	"strings"

	"github.com/ludo-technologies/srcscan/internal/lang"
)

// LineKind classifies one physical line.
type LineKind int

const (
	Code LineKind = iota
	Blank
	Comment
)

func (k LineKind) String() string {
	switch k {
	case Blank:
		return "blank"
	case Comment:
		return "comment"
	default:
		return "code"
	}
}

// SplitLines splits content into physical lines. A trailing newline does not
// produce an extra empty line and a trailing carriage return is dropped.
func SplitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.Split(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// ClassifyLines returns one LineKind per physical line of content.
//
// Block-comment state carries across lines. The end marker is found by
// substring search, so an end marker inside a string literal still closes
// the comment.
func ClassifyLines(content string, syntax lang.CommentSyntax) []LineKind {
	lines := SplitLines(content)
	kinds := make([]LineKind, len(lines))
	inBlock := false

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			kinds[i] = Blank
		case inBlock:
			kinds[i] = Comment
			if syntax.BlockEnd != "" && strings.Contains(trimmed, syntax.BlockEnd) {
				inBlock = false
			}
		case syntax.BlockStart != "" && strings.Contains(trimmed, syntax.BlockStart):
			kinds[i] = Comment
			if syntax.BlockEnd != "" && !strings.Contains(trimmed, syntax.BlockEnd) {
				inBlock = true
			}
		case syntax.Line != "" && strings.HasPrefix(trimmed, syntax.Line):
			kinds[i] = Comment
		default:
			kinds[i] = Code
		}
	}
	return kinds
}

// CountLines returns the number of code, blank and comment lines in content.
func CountLines(content string, syntax lang.CommentSyntax) (code, blank, comment int) {
	for _, k := range ClassifyLines(content, syntax) {
		switch k {
		case Code:
			code++
		case Blank:
			blank++
		case Comment:
			comment++
		}
	}
	return code, blank, comment
}
