// Package lang classifies source files by language and describes each
// language's comment syntax.
package lang

import (
	"path/filepath"
	"strings"
)

// Language is a closed set of language labels. A file's language is
// detected once from its extension or, when it has none, its filename.
type Language string

const (
	Rust          Language = "Rust"
	JavaScript    Language = "JavaScript"
	TypeScript    Language = "TypeScript"
	Python        Language = "Python"
	Java          Language = "Java"
	C             Language = "C"
	CPP           Language = "C++"
	Go            Language = "Go"
	Ruby          Language = "Ruby"
	PHP           Language = "PHP"
	HTML          Language = "HTML"
	CSS           Language = "CSS"
	Markdown      Language = "Markdown"
	JSON          Language = "JSON"
	YAML          Language = "YAML"
	TOML          Language = "TOML"
	Shell         Language = "Shell"
	LockFile      Language = "LockFile"
	Sample        Language = "Sample"
	CSharp        Language = "C#"
	VisualBasic   Language = "VisualBasic"
	FSharp        Language = "FSharp"
	XAML          Language = "XAML"
	Razor         Language = "Razor"
	ASPNET        Language = "ASP.NET"
	DotNetProject Language = "DotNetProject"
	GitConfig     Language = "GitConfig"
	Docker        Language = "Docker"
	Make          Language = "Make"
	License       Language = "License"
	SystemFile    Language = "SystemFile"
	Other         Language = "Other"
)

var byExtension = map[string]Language{
	"rs":     Rust,
	"js":     JavaScript,
	"jsx":    JavaScript,
	"ts":     TypeScript,
	"tsx":    TypeScript,
	"py":     Python,
	"java":   Java,
	"c":      C,
	"h":      C,
	"cpp":    CPP,
	"hpp":    CPP,
	"go":     Go,
	"rb":     Ruby,
	"php":    PHP,
	"html":   HTML,
	"css":    CSS,
	"md":     Markdown,
	"json":   JSON,
	"yml":    YAML,
	"yaml":   YAML,
	"toml":   TOML,
	"sh":     Shell,
	"bash":   Shell,
	"lock":   LockFile,
	"sample": Sample,
	"cs":     CSharp,
	"vb":     VisualBasic,
	"fs":     FSharp,
	"xaml":   XAML,
	"cshtml": Razor,
	"razor":  Razor,
	"aspx":   ASPNET,
	"ascx":   ASPNET,
	"csproj": DotNetProject,
	"vbproj": DotNetProject,
	"fsproj": DotNetProject,
	"sln":    DotNetProject,
}

var byFilename = map[string]Language{
	".gitignore":      GitConfig,
	"Dockerfile":      Docker,
	".dockerignore":   Docker,
	"Makefile":        Make,
	"LICENSE":         License,
	".DS_Store":       SystemFile,
	"web.config":      ASPNET,
	"global.asax":     ASPNET,
	"Assembly.cs":     CSharp,
	"AssemblyInfo.cs": CSharp,
	"AssemblyInfo.vb": VisualBasic,
	"NuGet.config":    DotNetProject,
	"nuget.config":    DotNetProject,
}

// DetectLanguage maps a file extension (with or without the leading dot)
// to a language. Unknown extensions map to Other.
func DetectLanguage(ext string) Language {
	if l, ok := byExtension[strings.TrimPrefix(ext, ".")]; ok {
		return l
	}
	return Other
}

// DetectByFilename maps a well-known extensionless or special filename to a
// language. Unknown names map to Other.
func DetectByFilename(name string) Language {
	if l, ok := byFilename[name]; ok {
		return l
	}
	return Other
}

// Detect classifies a path. Well-known filenames win, otherwise the
// extension decides.
func Detect(path string) Language {
	name := filepath.Base(path)
	if l := DetectByFilename(name); l != Other {
		return l
	}
	ext := filepath.Ext(name)
	if ext == "" || ext == name {
		return Other
	}
	return DetectLanguage(ext)
}

// IsKnown reports whether l is anything other than Other.
func (l Language) IsKnown() bool {
	return l != Other && l != ""
}

// String returns the display label.
func (l Language) String() string {
	return string(l)
}
