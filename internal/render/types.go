package render

import (
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/indexgen/internal/ir"
	"github.com/roach88/indexgen/internal/resolve"
)

// TagField is the discriminator field of serialized variants.
const TagField = "case"

// PayloadField holds a serialized variant constructor's payload.
const PayloadField = "payload"

var rescriptScalars = [...]string{
	ir.Unit:       "unit",
	ir.Int:        "int",
	ir.Float:      "float",
	ir.BigInt:     "bigint",
	ir.BigDecimal: "BigDecimal.t",
	ir.Address:    "Address.t",
	ir.String:     "string",
	ir.Bool:       "bool",
	ir.ID:         "id",
	ir.Timestamp:  "Date.t",
	ir.JSON:       "Js.Json.t",
	ir.Unknown:    "unknown",
}

// TypeString renders t in ReScript type syntax.
func TypeString(t ir.TypeIdent) string {
	return ir.Visit[string](t, typeVisitor{})
}

type typeVisitor struct{}

func (typeVisitor) Scalar(s ir.Scalar) string { return rescriptScalars[s.Kind] }
func (typeVisitor) SchemaEnum(e ir.SchemaEnum) string {
	return "Enums." + e.Name + ".t"
}
func (typeVisitor) Array(a ir.Array) string   { return "array<" + TypeString(a.Elem) + ">" }
func (typeVisitor) Option(o ir.Option) string { return "option<" + TypeString(o.Elem) + ">" }
func (typeVisitor) Tuple(t ir.Tuple) string   { return "(" + typeList(t.Elems) + ")" }
func (typeVisitor) GenericParam(g ir.GenericParam) string {
	return "'" + g.Name
}
func (typeVisitor) Application(a ir.TypeApplication) string {
	if len(a.Args) == 0 {
		return a.Name
	}
	return a.Name + "<" + typeList(a.Args) + ">"
}

func typeList(ts []ir.TypeIdent) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = TypeString(t)
	}
	return strings.Join(parts, ", ")
}

// declType is the type a declaration defines, applied to its own parameters:
// foo or foo<'a>.
func declType(d ir.TypeDecl) string {
	if !d.IsGeneric() {
		return d.Name
	}
	args := make([]ir.TypeIdent, len(d.Params))
	for i, p := range d.Params {
		args[i] = ir.NewGenericParam(p)
	}
	return TypeString(ir.Apply(d.Name, args...))
}

// bodyString renders a declaration body in ReScript type syntax.
func bodyString(e ir.TypeExpr) string {
	return ir.MatchExpr(e,
		func(i ir.IdentExpr) string { return TypeString(i.Ident) },
		func(r ir.Record) string {
			fields := make([]string, len(r.Fields))
			for i, f := range r.Fields {
				name := f.Name
				if f.Escaped() {
					name = fmt.Sprintf("@as(%q) %s", f.Original, f.Name)
				}
				fields[i] = name + ": " + TypeString(f.Type)
			}
			return "{" + strings.Join(fields, ", ") + "}"
		},
		func(v ir.Variant) string {
			ctors := make([]string, len(v.Constructors))
			for i, c := range v.Constructors {
				ctors[i] = c.Name + "(" + TypeString(c.Payload) + ")"
			}
			return strings.Join(ctors, " | ")
		},
	)
}

func isVariant(d ir.TypeDecl) bool {
	return ir.MatchExpr(d.Body,
		func(ir.IdentExpr) bool { return false },
		func(ir.Record) bool { return false },
		func(ir.Variant) bool { return true },
	)
}

// definition renders one clause of a type definition. The tag annotation of
// a variant goes before `type`, or after `and` inside a recursive block.
func definition(keyword string, d ir.TypeDecl) string {
	head := keyword + " "
	if isVariant(d) {
		tag := fmt.Sprintf("@tag(%q) ", TagField)
		if keyword == "and" {
			head += tag
		} else {
			head = tag + head
		}
	}
	return head + declType(d) + " = " + bodyString(d.Body)
}

// Decl renders one type definition. A self-referencing declaration is
// emitted with `rec`.
func Decl(d ir.TypeDecl) string {
	if slices.Contains(d.Dependencies(), d.Name) {
		return definition("type rec", d)
	}
	return definition("type", d)
}

// Multi renders a declaration set. Mutually recursive declarations form one
// `type rec ... and ...` block; the others are independent definitions.
// Output follows dependency order.
func Multi(set *ir.TypeDeclMulti) (string, error) {
	groups, err := resolve.Groups(set)
	if err != nil {
		return "", fmt.Errorf("render types: %w", err)
	}
	var lines []string
	for _, g := range groups {
		if !g.Recursive {
			lines = append(lines, definition("type", g.Decls[0]))
			continue
		}
		for i, d := range g.Decls {
			if i == 0 {
				lines = append(lines, definition("type rec", d))
			} else {
				lines = append(lines, definition("and", d))
			}
		}
	}
	return strings.Join(lines, "\n"), nil
}
