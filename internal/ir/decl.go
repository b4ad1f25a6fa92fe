package ir

import (
	"fmt"
	"slices"
)

// Declaration error codes (E303-E309)
const (
	ErrDuplicateDecl     = "E303" // two declarations share a name
	ErrUndeclaredGeneric = "E304" // generic parameter used but not declared
)

// ValidationError represents a declaration validation error.
type ValidationError struct {
	Decl    string `json:"decl"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("[%s] %s.%s: %s", e.Code, e.Decl, e.Field, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Decl, e.Message)
}

// TypeDecl is one emittable type definition.
type TypeDecl struct {
	Name   string
	Body   TypeExpr
	Params []string // Generic parameter names, canonical casing
}

// NewTypeDecl builds a declaration, normalizing parameter names.
func NewTypeDecl(name string, body TypeExpr, params ...string) TypeDecl {
	ps := make([]string, len(params))
	for i, p := range params {
		ps[i] = GenericParamName(p)
	}
	return TypeDecl{Name: name, Body: body, Params: ps}
}

// IsGeneric reports whether the declaration takes type parameters.
func (d TypeDecl) IsGeneric() bool {
	return len(d.Params) > 0
}

// Dependencies returns the names of the declarations d's body references,
// de-duplicated, in first occurrence order. A self reference is included.
func (d TypeDecl) Dependencies() []string {
	return ExprDependencies(d.Body)
}

// Validate checks that every generic parameter used in the body is declared.
// Returns all errors found.
func (d TypeDecl) Validate() []ValidationError {
	var errs []ValidationError
	for i, leaf := range Leaves(d.Body) {
		for _, g := range GenericParams(leaf) {
			if slices.Contains(d.Params, g) {
				continue
			}
			errs = append(errs, ValidationError{
				Decl:    d.Name,
				Field:   leafLabel(d.Body, i),
				Message: fmt.Sprintf("generic parameter '%s is not declared", g),
				Code:    ErrUndeclaredGeneric,
			})
		}
	}
	return errs
}

func leafLabel(e TypeExpr, i int) string {
	return MatchExpr(e,
		func(IdentExpr) string { return "" },
		func(r Record) string { return r.Fields[i].Original },
		func(v Variant) string { return v.Constructors[i].Name },
	)
}

// TypeDeclMulti is a set of declarations forming one logical module.
// Names are unique; insertion order is kept so rendering is deterministic.
type TypeDeclMulti struct {
	decls []TypeDecl
	index map[string]int
}

// NewTypeDeclMulti builds a set from decls. Returns a ValidationError when two
// declarations share a name.
func NewTypeDeclMulti(decls ...TypeDecl) (*TypeDeclMulti, error) {
	m := &TypeDeclMulti{index: make(map[string]int, len(decls))}
	for _, d := range decls {
		if err := m.Add(d); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Add appends a declaration.
func (m *TypeDeclMulti) Add(d TypeDecl) error {
	if m.index == nil {
		m.index = make(map[string]int)
	}
	if _, dup := m.index[d.Name]; dup {
		return ValidationError{
			Decl:    d.Name,
			Message: "duplicate declaration name",
			Code:    ErrDuplicateDecl,
		}
	}
	m.index[d.Name] = len(m.decls)
	m.decls = append(m.decls, d)
	return nil
}

// Decls returns the declarations in insertion order.
func (m *TypeDeclMulti) Decls() []TypeDecl {
	if m == nil {
		return nil
	}
	return slices.Clone(m.decls)
}

// Len returns the number of declarations.
func (m *TypeDeclMulti) Len() int {
	if m == nil {
		return 0
	}
	return len(m.decls)
}

// Lookup returns the declaration with the given name.
func (m *TypeDeclMulti) Lookup(name string) (TypeDecl, bool) {
	if m == nil {
		return TypeDecl{}, false
	}
	i, ok := m.index[name]
	if !ok {
		return TypeDecl{}, false
	}
	return m.decls[i], true
}

// Validate validates every declaration in the set.
func (m *TypeDeclMulti) Validate() []ValidationError {
	var errs []ValidationError
	for _, d := range m.Decls() {
		errs = append(errs, d.Validate()...)
	}
	return errs
}
