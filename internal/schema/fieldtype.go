package schema

import (
	"fmt"
	"strings"
)

// FieldType is a GraphQL field type: a named type or a list, each either
// nullable or not. Exactly one of Named and Elem is set.
type FieldType struct {
	Named    string
	Elem     *FieldType
	Nullable bool
}

// NamedType returns the non-null named type.
func NamedType(name string) FieldType {
	return FieldType{Named: name}
}

// ListOf returns the non-null list of elem.
func ListOf(elem FieldType) FieldType {
	return FieldType{Elem: &elem}
}

// OrNull returns ft with nullability set.
func (ft FieldType) OrNull() FieldType {
	ft.Nullable = true
	return ft
}

// IsList reports whether ft is a list type.
func (ft FieldType) IsList() bool {
	return ft.Elem != nil
}

// Base returns the innermost named type.
func (ft FieldType) Base() string {
	for ft.Elem != nil {
		ft = *ft.Elem
	}
	return ft.Named
}

// String renders ft in GraphQL type syntax, e.g. [String!]!.
func (ft FieldType) String() string {
	var s string
	if ft.Elem != nil {
		s = "[" + ft.Elem.String() + "]"
	} else {
		s = ft.Named
	}
	if !ft.Nullable {
		s += "!"
	}
	return s
}

// ParseFieldType parses GraphQL type syntax.
func ParseFieldType(text string) (FieldType, error) {
	p := typeParser{src: strings.TrimSpace(text)}
	ft, err := p.parse()
	if err != nil {
		return FieldType{}, fmt.Errorf("field type %q: %w", text, err)
	}
	if p.pos != len(p.src) {
		return FieldType{}, fmt.Errorf("field type %q: unexpected %q at offset %d", text, p.src[p.pos:], p.pos)
	}
	return ft, nil
}

type typeParser struct {
	src string
	pos int
}

func (p *typeParser) parse() (FieldType, error) {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return FieldType{}, fmt.Errorf("missing type name")
	}

	var ft FieldType
	if p.src[p.pos] == '[' {
		p.pos++
		elem, err := p.parse()
		if err != nil {
			return FieldType{}, err
		}
		p.skipSpace()
		if p.pos >= len(p.src) || p.src[p.pos] != ']' {
			return FieldType{}, fmt.Errorf("unclosed list at offset %d", p.pos)
		}
		p.pos++
		ft = FieldType{Elem: &elem}
	} else {
		start := p.pos
		for p.pos < len(p.src) && isNameChar(p.src[p.pos], p.pos == start) {
			p.pos++
		}
		if p.pos == start {
			return FieldType{}, fmt.Errorf("invalid character %q at offset %d", p.src[p.pos], p.pos)
		}
		ft = FieldType{Named: p.src[start:p.pos]}
	}

	p.skipSpace()
	ft.Nullable = true
	if p.pos < len(p.src) && p.src[p.pos] == '!' {
		p.pos++
		ft.Nullable = false
	}
	p.skipSpace()
	return ft, nil
}

func (p *typeParser) skipSpace() {
	for p.pos < len(p.src) && p.src[p.pos] == ' ' {
		p.pos++
	}
}

func isNameChar(c byte, first bool) bool {
	switch {
	case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		return true
	case c >= '0' && c <= '9':
		return !first
	}
	return false
}
