package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/roach88/indexgen/internal/ir"
)

var tsScalars = [...]string{
	ir.Unit:       "undefined",
	ir.Int:        "number",
	ir.Float:      "number",
	ir.BigInt:     "bigint",
	ir.BigDecimal: "BigDecimal",
	ir.Address:    "Address",
	ir.String:     "string",
	ir.Bool:       "boolean",
	ir.ID:         "string",
	ir.Timestamp:  "Date",
	ir.JSON:       "Json",
	ir.Unknown:    "unknown",
}

// TSType renders t as a TypeScript type.
func TSType(t ir.TypeIdent) string {
	return ir.Visit[string](t, tsVisitor{})
}

type tsVisitor struct{}

func (tsVisitor) Scalar(s ir.Scalar) string         { return tsScalars[s.Kind] }
func (tsVisitor) SchemaEnum(e ir.SchemaEnum) string { return e.Name + "_t" }
func (tsVisitor) Array(a ir.Array) string           { return "readonly " + TSType(a.Elem) + "[]" }
func (tsVisitor) Option(o ir.Option) string         { return "(undefined | " + TSType(o.Elem) + ")" }
func (tsVisitor) Tuple(t ir.Tuple) string           { return "[" + tsList(t.Elems) + "]" }
func (tsVisitor) GenericParam(g ir.GenericParam) string {
	return g.Name
}
func (tsVisitor) Application(a ir.TypeApplication) string {
	if len(a.Args) == 0 {
		return ir.Capitalize(a.Name)
	}
	return ir.Capitalize(a.Name) + "<" + tsList(a.Args) + ">"
}

func tsList(ts []ir.TypeIdent) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = TSType(t)
	}
	return strings.Join(parts, ", ")
}

func tsKey(name string) string {
	if isJSIdent(name) {
		return name
	}
	return strconv.Quote(name)
}

func tsBody(e ir.TypeExpr) string {
	return ir.MatchExpr(e,
		func(i ir.IdentExpr) string { return TSType(i.Ident) },
		func(r ir.Record) string {
			if len(r.Fields) == 0 {
				return "{}"
			}
			fields := make([]string, len(r.Fields))
			for i, f := range r.Fields {
				fields[i] = "readonly " + tsKey(f.Original) + ": " + TSType(f.Type)
			}
			return "{ " + strings.Join(fields, "; ") + " }"
		},
		func(v ir.Variant) string {
			ctors := make([]string, len(v.Constructors))
			for i, c := range v.Constructors {
				ctors[i] = fmt.Sprintf("{ readonly %s: %q; readonly %s: %s }",
					TagField, c.Name, PayloadField, TSType(c.Payload))
			}
			return strings.Join(ctors, " | ")
		},
	)
}

// DeclTS renders a declaration as an exported TypeScript type alias.
func DeclTS(d ir.TypeDecl) string {
	name := ir.Capitalize(d.Name)
	if d.IsGeneric() {
		name += "<" + strings.Join(d.Params, ", ") + ">"
	}
	return "export type " + name + " = " + tsBody(d.Body) + ";"
}

// TSTypes renders every declaration of set in declaration order. TypeScript
// aliases may refer forward, so no ordering is needed.
func TSTypes(set *ir.TypeDeclMulti) string {
	decls := set.Decls()
	lines := make([]string, len(decls))
	for i, d := range decls {
		lines[i] = DeclTS(d)
	}
	return strings.Join(lines, "\n")
}
