package line

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// The keyword must start the trimmed line and be followed by whitespace
	// and an identifier. Method names run until whitespace, '(' or end of
	// line; class names may contain "::".
	methodDecl = regexp.MustCompile(`^[ \t]*def[ \t]+([A-Za-z_][^\s(]*)`)
	classDecl  = regexp.MustCompile(`^[ \t]*class[ \t]+([A-Za-z_][\w:]*)`)

	noSpaceAfterComma   = regexp.MustCompile(`,[^\s,]`)
	twoSpacesAfterComma = regexp.MustCompile(`,[ \t]{2,}`)
)

// Classification is the read-only semantic view of one line.
type Classification struct {
	Method     bool
	MethodName string
	Class      bool
	ClassName  string
	Comment    bool
}

// Classify derives the classification of a raw line.
func Classify(text string) Classification {
	var c Classification
	c.MethodName, c.Method = declaredName(text, "def")
	c.ClassName, c.Class = declaredName(text, "class")
	c.Comment = isComment(text)
	return c
}

func declaredName(text, keyword string) (string, bool) {
	re := methodDecl
	if keyword == "class" {
		re = classDecl
	}
	m := re.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}

func isComment(text string) bool {
	trimmed := strings.TrimLeftFunc(text, unicode.IsSpace)
	return strings.HasPrefix(trimmed, "#")
}

// IsCamelCaseMethodName reports whether name contains an uppercase letter.
// Method names are expected in snake_case, so any uppercase letter counts.
func IsCamelCaseMethodName(name string) bool {
	return strings.IndexFunc(name, unicode.IsUpper) >= 0
}

// IsCamelCaseClassName reports whether name is strict CamelCase: it starts
// with an uppercase letter and contains no underscore.
func IsCamelCaseClassName(name string) bool {
	first, size := utf8.DecodeRuneInString(name)
	if size == 0 || !unicode.IsUpper(first) {
		return false
	}
	return !strings.Contains(name, "_")
}
