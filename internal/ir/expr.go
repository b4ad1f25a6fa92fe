package ir

import (
	"fmt"
	"slices"
)

// TypeExpr is the body of a declaration: a bare identifier, a record or a
// variant. Sealed - only IdentExpr, Record and Variant implement it.
type TypeExpr interface {
	typeExpr()
}

// IdentExpr is a declaration body that aliases a TypeIdent.
type IdentExpr struct {
	Ident TypeIdent
}

func (IdentExpr) typeExpr() {}

// Record is an ordered list of named fields.
type Record struct {
	Fields []RecordField
}

func (Record) typeExpr() {}

// RecordField is one record member.
// Name is the escaped emission identifier; Original is the wire name used to
// look the field up in serialized data. They are equal unless the wire name
// collided with a reserved word or was otherwise not a valid identifier.
type RecordField struct {
	Name     string
	Original string
	Type     TypeIdent
}

// Escaped reports whether the emission name differs from the wire name.
func (f RecordField) Escaped() bool {
	return f.Name != f.Original
}

// Variant is an ordered list of constructors, each carrying one payload.
type Variant struct {
	Constructors []Constructor
}

func (Variant) typeExpr() {}

// Constructor is one variant case.
type Constructor struct {
	Name    string
	Payload TypeIdent
}

// Alias returns a body aliasing t.
func Alias(t TypeIdent) IdentExpr { return IdentExpr{Ident: t} }

// NewRecordField builds a field from a wire name, escaping it for emission.
func NewRecordField(name string, t TypeIdent) RecordField {
	return RecordField{Name: EscapeFieldName(name), Original: name, Type: t}
}

// NewRecord builds a Record from fields.
func NewRecord(fields ...RecordField) Record {
	return Record{Fields: slices.Clone(fields)}
}

// NewVariant builds a Variant from constructors.
func NewVariant(ctors ...Constructor) Variant {
	return Variant{Constructors: slices.Clone(ctors)}
}

// MatchExpr dispatches on the concrete body type. All three handlers are
// required, which keeps callers exhaustive.
func MatchExpr[R any](e TypeExpr, ident func(IdentExpr) R, record func(Record) R, variant func(Variant) R) R {
	switch n := e.(type) {
	case IdentExpr:
		return ident(n)
	case *IdentExpr:
		return ident(*n)
	case Record:
		return record(n)
	case *Record:
		return record(*n)
	case Variant:
		return variant(n)
	case *Variant:
		return variant(*n)
	default:
		panic(fmt.Sprintf("ir: unknown TypeExpr %T", e))
	}
}

// Leaves returns every TypeIdent directly held by the expression, in order.
func Leaves(e TypeExpr) []TypeIdent {
	return MatchExpr(e,
		func(i IdentExpr) []TypeIdent { return []TypeIdent{i.Ident} },
		func(r Record) []TypeIdent {
			out := make([]TypeIdent, len(r.Fields))
			for i, f := range r.Fields {
				out[i] = f.Type
			}
			return out
		},
		func(v Variant) []TypeIdent {
			out := make([]TypeIdent, len(v.Constructors))
			for i, c := range v.Constructors {
				out[i] = c.Payload
			}
			return out
		},
	)
}

// ExprDependencies returns the de-duplicated dependency names of e in first
// occurrence order.
func ExprDependencies(e TypeExpr) []string {
	var out []string
	seen := make(map[string]bool)
	for _, leaf := range Leaves(e) {
		for _, dep := range Dependencies(leaf) {
			if !seen[dep] {
				seen[dep] = true
				out = append(out, dep)
			}
		}
	}
	return out
}
