package ir

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// reservedWords are identifiers the functional target language refuses as
// record field names.
var reservedWords = map[string]bool{
	"and":        true,
	"as":         true,
	"assert":     true,
	"async":      true,
	"await":      true,
	"constraint": true,
	"else":       true,
	"exception":  true,
	"external":   true,
	"false":      true,
	"for":        true,
	"if":         true,
	"in":         true,
	"include":    true,
	"lazy":       true,
	"let":        true,
	"module":     true,
	"mutable":    true,
	"of":         true,
	"open":       true,
	"private":    true,
	"rec":        true,
	"switch":     true,
	"true":       true,
	"try":        true,
	"type":       true,
	"when":       true,
	"while":      true,
	"with":       true,
}

// IsReserved reports whether name is a reserved word of the target language.
func IsReserved(name string) bool {
	return reservedWords[name]
}

// EscapeFieldName returns a valid emission identifier for a wire field name:
//   - reserved words get a trailing underscore (module → module_)
//   - names starting with a digit get a leading underscore (0x → _0x)
//   - the empty name becomes "_"
//
// Other names are returned unchanged.
func EscapeFieldName(name string) string {
	switch {
	case name == "":
		return "_"
	case IsReserved(name):
		return name + "_"
	}
	r, _ := utf8.DecodeRuneInString(name)
	if unicode.IsDigit(r) {
		return "_" + name
	}
	return name
}

// GenericParamName lowers a generic parameter name to its canonical emission
// casing. "T" and "t" both become "t".
func GenericParamName(name string) string {
	return strings.ToLower(name)
}

// Capitalize upper-cases the first rune of s.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// Uncapitalize lower-cases the first rune of s.
func Uncapitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}
