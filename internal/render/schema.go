package render

import (
	"fmt"
	"strings"

	"github.com/roach88/indexgen/internal/ir"
	"github.com/roach88/indexgen/internal/resolve"
)

// Mode selects the representation a schema parses. It only changes the
// big-integer and optional combinators.
type Mode int

const (
	// Storage is the persisted entity representation.
	Storage Mode = iota
	// FieldSelection is the wire representation of selected event fields.
	FieldSelection
)

func (m Mode) String() string {
	switch m {
	case Storage:
		return "storage"
	case FieldSelection:
		return "field-selection"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses the String form of a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "storage", "":
		return Storage, nil
	case "field-selection":
		return FieldSelection, nil
	default:
		return 0, fmt.Errorf("unknown schema mode %q (want storage or field-selection)", s)
	}
}

var schemaScalars = [...]string{
	ir.Unit:       "S.unit",
	ir.Int:        "S.int",
	ir.Float:      "S.float",
	ir.BigDecimal: "BigDecimal.schema",
	ir.Address:    "Address.schema",
	ir.String:     "S.string",
	ir.Bool:       "S.bool",
	ir.ID:         "S.string",
	ir.Timestamp:  "Utils.Schema.dbDate",
	ir.JSON:       "S.json(~validate=false)",
	ir.Unknown:    "S.unknown",
}

// Schema renders the schema combinator expression for t.
func Schema(t ir.TypeIdent, mode Mode) string {
	return Print(SchemaExpr(t, mode), ReScript)
}

// SchemaExpr builds the schema combinator expression for t.
func SchemaExpr(t ir.TypeIdent, mode Mode) Expr {
	return ir.Visit[Expr](t, schemaVisitor{mode: mode})
}

type schemaVisitor struct{ mode Mode }

func (v schemaVisitor) Scalar(s ir.Scalar) Expr {
	if s.Kind == ir.BigInt {
		if v.mode == FieldSelection {
			return Ident{"BigInt.nativeSchema"}
		}
		return Ident{"BigInt.schema"}
	}
	return Ident{schemaScalars[s.Kind]}
}

func (v schemaVisitor) SchemaEnum(e ir.SchemaEnum) Expr {
	return Ident{"Enums." + e.Name + ".schema"}
}

func (v schemaVisitor) Array(a ir.Array) Expr {
	return call("S.array", SchemaExpr(a.Elem, v.mode))
}

func (v schemaVisitor) Option(o ir.Option) Expr {
	if v.mode == FieldSelection {
		return call("S.nullable", SchemaExpr(o.Elem, v.mode))
	}
	return call("S.null", SchemaExpr(o.Elem, v.mode))
}

func (v schemaVisitor) Tuple(t ir.Tuple) Expr {
	items := make([]Expr, len(t.Elems))
	for i, e := range t.Elems {
		items[i] = call("s.item", Raw{fmt.Sprint(i)}, SchemaExpr(e, v.mode))
	}
	return call("S.tuple", Lambda{Params: []Param{{Name: "s"}}, Body: TupleLit{items}})
}

func (v schemaVisitor) GenericParam(g ir.GenericParam) Expr {
	return Ident{schemaName(g.Name)}
}

func (v schemaVisitor) Application(a ir.TypeApplication) Expr {
	if len(a.Args) == 0 {
		return Ident{schemaName(a.Name)}
	}
	args := make([]Expr, len(a.Args))
	for i, arg := range a.Args {
		args[i] = SchemaExpr(arg, v.mode)
	}
	return call(schemaName(a.Name), args...)
}

func schemaName(name string) string { return name + "Schema" }

// bodySchema builds the schema of a declaration body. self is the annotated
// type of the parsed value.
func bodySchema(e ir.TypeExpr, self string, mode Mode) Expr {
	return ir.MatchExpr(e,
		func(i ir.IdentExpr) Expr { return SchemaExpr(i.Ident, mode) },
		func(r ir.Record) Expr {
			fields := make([]FieldInit, len(r.Fields))
			for i, f := range r.Fields {
				fields[i] = FieldInit{
					Name:  f.Name,
					Value: call("s.field", Str{f.Original}, SchemaExpr(f.Type, mode)),
				}
			}
			return call("S.object", Lambda{
				Params:  []Param{{Name: "s"}},
				Returns: self,
				Body:    RecordLit{fields},
			})
		},
		func(v ir.Variant) Expr {
			cases := make([]Expr, len(v.Constructors))
			for i, c := range v.Constructors {
				cases[i] = call("S.object", Lambda{
					Params:  []Param{{Name: "s"}},
					Returns: self,
					Body: Block{
						Stmts:  []Expr{call("s.tag", Str{TagField}, Str{c.Name})},
						Result: call(c.Name, call("s.field", Str{PayloadField}, SchemaExpr(c.Payload, mode))),
					},
				})
			}
			return call("S.union", ListLit{cases})
		},
	)
}

// DeclSchema renders the schema binding of a declaration:
//
//	let fooSchema: S.t<foo> = ...
//
// A generic declaration becomes a function of its parameters' schemas:
//
//	let fooSchema = (aSchema: S.t<'a>) => ...
func DeclSchema(d ir.TypeDecl, mode Mode) string {
	body := bodySchema(d.Body, declType(d), mode)
	if !d.IsGeneric() {
		return fmt.Sprintf("let %s: S.t<%s> = %s", schemaName(d.Name), d.Name, Print(body, ReScript))
	}
	params := make([]Param, len(d.Params))
	for i, p := range d.Params {
		params[i] = Param{Name: schemaName(p), Type: "S.t<'" + p + ">"}
	}
	fn := Lambda{Params: params, Body: body}
	return fmt.Sprintf("let %s = %s", schemaName(d.Name), Print(fn, ReScript))
}

// Schemas renders every schema binding of set, each after the schemas it
// references.
func Schemas(set *ir.TypeDeclMulti, mode Mode) (string, error) {
	order, err := resolve.SchemaOrder(set)
	if err != nil {
		return "", fmt.Errorf("render schemas: %w", err)
	}
	lines := make([]string, len(order))
	for i, d := range order {
		lines[i] = DeclSchema(d, mode)
	}
	return strings.Join(lines, "\n"), nil
}
