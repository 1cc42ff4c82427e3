package lang

// CommentSyntax describes a language's comment markers. An empty marker
// means the language has no such syntax and must never match.
type CommentSyntax struct {
	Line       string
	BlockStart string
	BlockEnd   string
}

// HasLine reports whether a line-comment marker is defined.
func (c CommentSyntax) HasLine() bool { return c.Line != "" }

// HasBlock reports whether both block-comment markers are defined.
func (c CommentSyntax) HasBlock() bool { return c.BlockStart != "" && c.BlockEnd != "" }

var (
	cFamilySyntax = CommentSyntax{Line: "//", BlockStart: "/*", BlockEnd: "*/"}
	vbSyntax      = CommentSyntax{Line: "'", BlockStart: "/*", BlockEnd: "*/"}
	markupSyntax  = CommentSyntax{BlockStart: "<!--", BlockEnd: "-->"}
	hashSyntax    = CommentSyntax{Line: "#"}
	rubySyntax    = CommentSyntax{Line: "#", BlockStart: "=begin", BlockEnd: "=end"}
)

// CommentSyntaxFor returns the comment markers for l. Languages without
// comment support get the zero value.
func CommentSyntaxFor(l Language) CommentSyntax {
	switch l {
	case Rust, JavaScript, TypeScript, C, CPP, Java, Go, CSharp, FSharp:
		return cFamilySyntax
	case VisualBasic:
		return vbSyntax
	case XAML, Razor, ASPNET, HTML, CSS:
		return markupSyntax
	case Python, Shell, Make, Docker:
		return hashSyntax
	case Ruby:
		return rubySyntax
	default:
		return CommentSyntax{}
	}
}

// DocCommentPrefix returns the prefix of documentation comments that the
// comment stripper must keep. Empty when the language has none.
func DocCommentPrefix(l Language) string {
	switch l {
	case Rust:
		return "///"
	case Python:
		return "###"
	default:
		return ""
	}
}
