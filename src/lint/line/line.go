// Package line classifies single raw source lines.
//
// Every function here is a pure function of the line text. Nothing looks at
// neighbouring lines, and any byte sequence is accepted, including invalid
// UTF-8 and binary content.
package line

import (
	"strings"
	"unicode/utf8"
)

// DefaultMaxLength is the line length limit used when none is configured.
const DefaultMaxLength = 80

// Line is one line of a source file.
type Line struct {
	Text   string // raw text, including the trailing newline if present
	Number int    // 1-based line number within the file
}

// New returns the line with the given text and 1-based number.
func New(text string, number int) Line {
	return Line{Text: text, Number: number}
}

// Body returns the text without its newline terminator ("\n" or "\r\n").
func (l Line) Body() string {
	s := strings.TrimSuffix(l.Text, "\n")
	if len(s) < len(l.Text) {
		s = strings.TrimSuffix(s, "\r")
	}
	return s
}

// Indent returns the leading run of spaces and tabs.
func (l Line) Indent() string {
	body := l.Body()
	return body[:len(body)-len(strings.TrimLeft(body, " \t"))]
}

// TrailingWhitespace returns the trailing run of spaces and tabs, ignoring
// the newline terminator.
func (l Line) TrailingWhitespace() string {
	body := l.Body()
	return body[len(strings.TrimRight(body, " \t")):]
}

// IndentedSpaces counts the space characters in the indentation. Tabs are
// not counted; see HardTabbed.
func (l Line) IndentedSpaces() int {
	return strings.Count(l.Indent(), " ")
}

// HardTabbed reports whether the indentation contains a tab.
func (l Line) HardTabbed() bool {
	return strings.IndexByte(l.Indent(), '\t') >= 0
}

// TrailingWhitespaceCount returns the number of spaces and tabs at the end
// of the line.
func (l Line) TrailingWhitespaceCount() int {
	return len(l.TrailingWhitespace())
}

// Length returns the number of characters in the line without its newline
// terminator. Invalid UTF-8 bytes count as one character each.
func (l Line) Length() int {
	return utf8.RuneCountInString(l.Body())
}

// TooLong reports whether the line is longer than max characters.
func (l Line) TooLong(max int) bool {
	return l.Length() > max
}

// IsComment reports whether the first non-whitespace character is '#'.
func (l Line) IsComment() bool {
	return isComment(l.Text)
}

// IsMethod reports whether the line declares a method.
func (l Line) IsMethod() bool {
	_, ok := declaredName(l.Text, "def")
	return ok
}

// MethodName returns the declared method name, or "" if the line does not
// declare a method.
func (l Line) MethodName() string {
	name, _ := declaredName(l.Text, "def")
	return name
}

// IsClass reports whether the line declares a class.
func (l Line) IsClass() bool {
	_, ok := declaredName(l.Text, "class")
	return ok
}

// ClassName returns the declared class name, or "" if the line does not
// declare a class.
func (l Line) ClassName() string {
	name, _ := declaredName(l.Text, "class")
	return name
}

// NoSpaceAfterComma reports whether a comma is directly followed by a
// character that is neither whitespace nor another comma.
func (l Line) NoSpaceAfterComma() bool {
	return noSpaceAfterComma.MatchString(l.Text)
}

// TwoOrMoreSpacesAfterComma reports whether a comma is followed by at least
// two spaces or tabs.
func (l Line) TwoOrMoreSpacesAfterComma() bool {
	return twoSpacesAfterComma.MatchString(l.Text)
}

// Classify returns the classification of the line.
func (l Line) Classify() Classification {
	return Classify(l.Text)
}
