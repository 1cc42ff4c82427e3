package scanner

import "strings"

// SplitTrailingComment locates an end-of-line comment introduced by marker,
// ignoring markers inside string or character literals.
//
// A marker only counts when real code precedes it on the line; comment-only
// lines are left to the caller. The first qualifying marker wins. code is
// the text before it with trailing whitespace removed, comment runs from the
// marker to the end of the line. When nothing qualifies the line is returned
// unchanged with found == false.
//
// Raw strings and triple-quoted strings are not modeled.
func SplitTrailingComment(line, marker string) (code, comment string, found bool) {
	if marker == "" {
		return line, "", false
	}

	var inString, inChar, escapeNext bool
	for i := 0; i < len(line); i++ {
		c := line[i]
		if escapeNext {
			escapeNext = false
			continue
		}
		switch {
		case c == '\\' && (inString || inChar):
			escapeNext = true
			continue
		case c == '"' && !inChar:
			inString = !inString
			continue
		case c == '\'' && !inString:
			inChar = !inChar
			continue
		}
		if inString || inChar {
			continue
		}
		if strings.HasPrefix(line[i:], marker) && strings.TrimSpace(line[:i]) != "" {
			return strings.TrimRight(line[:i], " \t"), strings.TrimRight(line[i:], " \t"), true
		}
	}
	return line, "", false
}

// StripTrailingComment returns line without its end-of-line comment.
func StripTrailingComment(line, marker string) string {
	code, _, _ := SplitTrailingComment(line, marker)
	return code
}
