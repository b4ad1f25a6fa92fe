package render

import (
	"fmt"
	"strings"

	"github.com/roach88/indexgen/internal/ir"
	"github.com/roach88/indexgen/internal/resolve"
)

// defaultString is the placeholder for string-like scalars in both syntaxes.
const defaultString = "foo"

var rescriptDefaults = [...]Expr{
	ir.Unit:       Raw{"()"},
	ir.Int:        Raw{"0"},
	ir.Float:      Raw{"0."},
	ir.BigInt:     Raw{"0n"},
	ir.BigDecimal: Ident{"BigDecimal.zero"},
	ir.Address:    Ident{"TestHelpers_MockAddresses.defaultAddress"},
	ir.String:     Str{defaultString},
	ir.Bool:       Raw{"false"},
	ir.ID:         Str{defaultString},
	ir.Timestamp:  call("Js.Date.fromFloat", Raw{"0."}),
	ir.JSON:       Ident{"Js.Json.null"},
	ir.Unknown:    Raw{"%raw(`undefined`)"},
}

var jsDefaults = [...]Expr{
	ir.Unit:       Ident{"undefined"},
	ir.Int:        Raw{"0"},
	ir.Float:      Raw{"0.0"},
	ir.BigInt:     call("BigInt", Raw{"0"}),
	ir.BigDecimal: Raw{"new BigDecimal(0)"},
	ir.Address:    Ident{"TestHelpers.Addresses.defaultAddress"},
	ir.String:     Str{defaultString},
	ir.Bool:       Raw{"false"},
	ir.ID:         Str{defaultString},
	ir.Timestamp:  Raw{"new Date(0)"},
	ir.JSON:       Raw{"null"},
	ir.Unknown:    Ident{"undefined"},
}

// DefaultRescript renders a deterministic ReScript value of type t.
func DefaultRescript(t ir.TypeIdent) string {
	return Print(DefaultExpr(t, ReScript), ReScript)
}

// DefaultJS renders a deterministic JavaScript value of type t.
func DefaultJS(t ir.TypeIdent) string {
	return Print(DefaultExpr(t, JS), JS)
}

// DefaultExpr builds the default value of t in the given syntax.
func DefaultExpr(t ir.TypeIdent, syn Syntax) Expr {
	return ir.Visit[Expr](t, defaultVisitor{syn: syn})
}

type defaultVisitor struct{ syn Syntax }

func (v defaultVisitor) Scalar(s ir.Scalar) Expr {
	if v.syn == JS {
		return jsDefaults[s.Kind]
	}
	return rescriptDefaults[s.Kind]
}

func (v defaultVisitor) SchemaEnum(e ir.SchemaEnum) Expr {
	return Ident{"Enums." + e.Name + ".default"}
}

func (v defaultVisitor) Array(ir.Array) Expr { return ListLit{} }

func (v defaultVisitor) Option(ir.Option) Expr {
	if v.syn == JS {
		return Ident{"undefined"}
	}
	return Ident{"None"}
}

func (v defaultVisitor) Tuple(t ir.Tuple) Expr {
	elems := make([]Expr, len(t.Elems))
	for i, e := range t.Elems {
		elems[i] = DefaultExpr(e, v.syn)
	}
	return TupleLit{elems}
}

func (v defaultVisitor) GenericParam(g ir.GenericParam) Expr {
	return Ident{defaultName(g.Name)}
}

func (v defaultVisitor) Application(a ir.TypeApplication) Expr {
	if len(a.Args) == 0 {
		return Ident{defaultName(a.Name)}
	}
	args := make([]Expr, len(a.Args))
	for i, arg := range a.Args {
		args[i] = DefaultExpr(arg, v.syn)
	}
	return call(defaultName(a.Name), args...)
}

func defaultName(name string) string { return name + "Default" }

// bodyDefault builds the default value of a declaration body. A variant
// defaults to its first constructor.
func bodyDefault(e ir.TypeExpr, syn Syntax) Expr {
	return ir.MatchExpr(e,
		func(i ir.IdentExpr) Expr { return DefaultExpr(i.Ident, syn) },
		func(r ir.Record) Expr {
			fields := make([]FieldInit, len(r.Fields))
			for i, f := range r.Fields {
				name := f.Name
				if syn == JS {
					name = f.Original
				}
				fields[i] = FieldInit{Name: name, Value: DefaultExpr(f.Type, syn)}
			}
			return RecordLit{fields}
		},
		func(v ir.Variant) Expr {
			if len(v.Constructors) == 0 {
				return Raw{"%raw(`undefined`)"}
			}
			c := v.Constructors[0]
			payload := DefaultExpr(c.Payload, syn)
			if syn == JS {
				return RecordLit{[]FieldInit{
					{Name: TagField, Value: Str{c.Name}},
					{Name: PayloadField, Value: payload},
				}}
			}
			return call(c.Name, payload)
		},
	)
}

// DeclDefault renders the ReScript default binding of a declaration:
//
//	let fooDefault: foo = ...
//	let boxDefault = (aDefault: 'a): box<'a> => ...
func DeclDefault(d ir.TypeDecl) string {
	body := bodyDefault(d.Body, ReScript)
	if !d.IsGeneric() {
		return fmt.Sprintf("let %s: %s = %s", defaultName(d.Name), d.Name, Print(body, ReScript))
	}
	params := make([]Param, len(d.Params))
	for i, p := range d.Params {
		params[i] = Param{Name: defaultName(p), Type: "'" + p}
	}
	fn := Lambda{Params: params, Returns: declType(d), Body: body}
	return fmt.Sprintf("let %s = %s", defaultName(d.Name), Print(fn, ReScript))
}

// DeclDefaultJS renders the JavaScript default binding of a declaration.
func DeclDefaultJS(d ir.TypeDecl) string {
	body := bodyDefault(d.Body, JS)
	if !d.IsGeneric() {
		return fmt.Sprintf("const %s = %s;", defaultName(d.Name), Print(body, JS))
	}
	params := make([]Param, len(d.Params))
	for i, p := range d.Params {
		params[i] = Param{Name: defaultName(p)}
	}
	fn := Lambda{Params: params, Body: body}
	return fmt.Sprintf("const %s = %s;", defaultName(d.Name), Print(fn, JS))
}

// Defaults renders the ReScript default bindings of set. Defaults refer to
// each other by value, so they follow schema order.
func Defaults(set *ir.TypeDeclMulti) (string, error) {
	return defaults(set, DeclDefault)
}

// DefaultsJS renders the JavaScript default bindings of set.
func DefaultsJS(set *ir.TypeDeclMulti) (string, error) {
	return defaults(set, DeclDefaultJS)
}

func defaults(set *ir.TypeDeclMulti, decl func(ir.TypeDecl) string) (string, error) {
	order, err := resolve.SchemaOrder(set)
	if err != nil {
		return "", fmt.Errorf("render defaults: %w", err)
	}
	lines := make([]string, len(order))
	for i, d := range order {
		lines[i] = decl(d)
	}
	return strings.Join(lines, "\n"), nil
}
