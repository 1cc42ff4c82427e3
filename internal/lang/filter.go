package lang

import (
	"path/filepath"
	"strings"
)

var testSubstrings = []string{"/test/", "/tests/", "_test.", "__tests__", "__test__"}

var testSuffixes = []string{
	"_test.rs", "_tests.rs", "Test.java", ".test.js", ".test.ts",
	"_spec.js", "_spec.ts", "_test.py", "test_",
}

var binaryExtensions = map[string]struct{}{
	".png": {}, ".jpg": {}, ".jpeg": {}, ".gif": {}, ".svg": {}, ".woff": {},
	".woff2": {}, ".ttf": {}, ".eot": {}, ".ico": {}, ".pdf": {}, ".zip": {},
	".tar": {}, ".gz": {}, ".exe": {}, ".bin": {},
}

// IsTestFile reports whether path looks like test code.
func IsTestFile(path string) bool {
	p := filepath.ToSlash(path)
	for _, s := range testSubstrings {
		if strings.Contains(p, s) {
			return true
		}
	}
	for _, s := range testSuffixes {
		if strings.HasSuffix(p, s) {
			return true
		}
	}
	return false
}

// IsSystemFile reports VCS internals, lock files and OS metadata.
func IsSystemFile(path string) bool {
	p := filepath.ToSlash(path)
	return strings.Contains(p, "/.git/") ||
		strings.HasSuffix(p, ".lock") ||
		strings.HasSuffix(p, ".gitignore") ||
		filepath.Base(p) == ".DS_Store"
}

// IsBinaryOrMedia reports files with a binary or media extension.
func IsBinaryOrMedia(path string) bool {
	_, ok := binaryExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// ShouldExclude combines the system-file and binary denylists.
func ShouldExclude(path string) bool {
	return IsSystemFile(path) || IsBinaryOrMedia(path)
}
