package analyzer

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/ludo-technologies/srcscan/domain"
	"github.com/ludo-technologies/srcscan/internal/lang"
	"github.com/ludo-technologies/srcscan/internal/scanner"
)

// IgnoreMarker is the magic comment text that protects a line from removal
const IgnoreMarker = "srcscan: ignore"

// ErrUnsupportedLanguage is returned when a policy cannot handle a language
var ErrUnsupportedLanguage = errors.New("language not supported by comment policy")

// StripResult is the outcome of stripping comments from one file
type StripResult struct {
	Content string
	Removed int
	// Deleted holds audit records; only filled by the delete policy
	Deleted []domain.DeletedComment
}

// Changed reports whether any comment was removed
func (r *StripResult) Changed() bool { return r.Removed > 0 }

type commentRules struct {
	marker string
	doc    string
	ignore *regexp.Regexp
}

var policyRules = map[lang.Language]commentRules{
	lang.Rust: {
		marker: "//",
		doc:    lang.DocCommentPrefix(lang.Rust),
		ignore: regexp.MustCompile(`//.*srcscan:\s*ignore`),
	},
	lang.Python: {
		marker: "#",
		doc:    lang.DocCommentPrefix(lang.Python),
		ignore: regexp.MustCompile(`#.*srcscan:\s*ignore`),
	},
}

// PolicySupports reports whether policy can strip comments from files of language l
func PolicySupports(policy domain.CommentPolicy, l lang.Language) bool {
	switch policy {
	case domain.CommentPolicyClean:
		return l == lang.Rust
	case domain.CommentPolicyDelete:
		_, ok := policyRules[l]
		return ok
	}
	return false
}

// StripComments removes line comments from content according to policy.
//
// Per line, first match wins: blank lines, doc comments, ignore-marked lines
// and lines holding a backslash or a raw-string opener are kept verbatim.
// Comment-only lines are dropped by the clean policy and left empty by the
// delete policy. Anything else loses its trailing comment, if it has one.
func StripComments(path, content string, l lang.Language, policy domain.CommentPolicy) (*StripResult, error) {
	if !PolicySupports(policy, l) {
		return nil, fmt.Errorf("%w: %s (%s)", ErrUnsupportedLanguage, l, policy)
	}
	rules := policyRules[l]
	audit := policy == domain.CommentPolicyDelete

	var out strings.Builder
	out.Grow(len(content))
	res := &StripResult{}
	written := 0
	emit := func(line string) {
		out.WriteString(line)
		out.WriteByte('\n')
		written++
	}
	record := func(text string) {
		res.Removed++
		if audit {
			res.Deleted = append(res.Deleted, domain.DeletedComment{
				File:    path,
				Line:    written + 1,
				Comment: text,
			})
		}
	}

	for _, line := range scanner.SplitLines(content) {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			emit(line)
		case strings.HasPrefix(trimmed, rules.doc):
			emit(line)
		case rules.ignore.MatchString(line):
			emit(line)
		case strings.Contains(line, `\`) || strings.Contains(line, "r#"):
			emit(line)
		case strings.HasPrefix(trimmed, rules.marker):
			record(strings.TrimRight(line, " \t"))
			if policy == domain.CommentPolicyDelete {
				emit("")
			}
		default:
			code, comment, found := scanner.SplitTrailingComment(line, rules.marker)
			if !found {
				emit(line)
				continue
			}
			record(comment)
			emit(code)
		}
	}

	res.Content = out.String()
	return res, nil
}
