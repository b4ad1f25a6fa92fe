package render

import (
	"strconv"
	"strings"
)

// Syntax selects the target language an Expr is printed in.
type Syntax int

const (
	ReScript Syntax = iota
	JS
)

// Expr is a target-language expression. Schemas and defaults are built as
// Expr trees and printed once, so function-valued output for generic
// declarations is a real Lambda rather than spliced text.
type Expr interface {
	targetExpr() // Sealed
}

// Ident is a bare identifier or qualified path.
type Ident struct{ Name string }

// Raw is literal text emitted unchanged.
type Raw struct{ Text string }

// Str is a string literal.
type Str struct{ Value string }

// Call applies Fn to Args.
type Call struct {
	Fn   Expr
	Args []Expr
}

// Param is a lambda parameter. Type is printed only in ReScript.
type Param struct {
	Name string
	Type string
}

// Lambda is an arrow function. Returns is an optional ReScript return
// annotation.
type Lambda struct {
	Params  []Param
	Returns string
	Body    Expr
}

// TupleLit is a fixed-length literal: (a, b) in ReScript, [a, b] in JS.
type TupleLit struct{ Elems []Expr }

// ListLit is an array literal.
type ListLit struct{ Elems []Expr }

// FieldInit is one member of a RecordLit.
type FieldInit struct {
	Name  string
	Value Expr
}

// RecordLit is a record or object literal.
type RecordLit struct{ Fields []FieldInit }

// Block is a ReScript block: statements followed by a result expression.
type Block struct {
	Stmts  []Expr
	Result Expr
}

func (Ident) targetExpr()     {}
func (Raw) targetExpr()       {}
func (Str) targetExpr()       {}
func (Call) targetExpr()      {}
func (Lambda) targetExpr()    {}
func (TupleLit) targetExpr()  {}
func (ListLit) targetExpr()   {}
func (RecordLit) targetExpr() {}
func (Block) targetExpr()     {}

// call is shorthand for Call{Fn: Ident{fn}, Args: args}.
func call(fn string, args ...Expr) Call {
	return Call{Fn: Ident{fn}, Args: args}
}

// Print renders e in the given syntax.
func Print(e Expr, syn Syntax) string {
	var b strings.Builder
	p := printer{b: &b, syn: syn}
	p.print(e)
	return b.String()
}

type printer struct {
	b   *strings.Builder
	syn Syntax
}

func (p printer) print(e Expr) {
	switch n := e.(type) {
	case Ident:
		p.b.WriteString(n.Name)
	case Raw:
		p.b.WriteString(n.Text)
	case Str:
		p.b.WriteString(strconv.Quote(n.Value))
	case Call:
		p.print(n.Fn)
		p.b.WriteByte('(')
		p.list(n.Args)
		p.b.WriteByte(')')
	case Lambda:
		p.lambda(n)
	case TupleLit:
		if p.syn == JS {
			p.b.WriteByte('[')
			p.list(n.Elems)
			p.b.WriteByte(']')
			return
		}
		p.b.WriteByte('(')
		p.list(n.Elems)
		p.b.WriteByte(')')
	case ListLit:
		p.b.WriteByte('[')
		p.list(n.Elems)
		p.b.WriteByte(']')
	case RecordLit:
		p.b.WriteByte('{')
		for i, f := range n.Fields {
			if i > 0 {
				p.b.WriteString(", ")
			}
			p.b.WriteString(p.key(f.Name))
			p.b.WriteString(": ")
			p.print(f.Value)
		}
		p.b.WriteByte('}')
	case Block:
		p.b.WriteByte('{')
		for _, s := range n.Stmts {
			p.print(s)
			p.b.WriteString("; ")
		}
		p.print(n.Result)
		p.b.WriteByte('}')
	default:
		panic("render: unknown Expr")
	}
}

func (p printer) list(es []Expr) {
	for i, e := range es {
		if i > 0 {
			p.b.WriteString(", ")
		}
		p.print(e)
	}
}

func (p printer) lambda(l Lambda) {
	typed := p.syn == ReScript && (l.Returns != "" || hasParamTypes(l.Params))
	if len(l.Params) == 1 && !typed {
		p.b.WriteString(l.Params[0].Name)
	} else {
		p.b.WriteByte('(')
		for i, prm := range l.Params {
			if i > 0 {
				p.b.WriteString(", ")
			}
			p.b.WriteString(prm.Name)
			if p.syn == ReScript && prm.Type != "" {
				p.b.WriteString(": ")
				p.b.WriteString(prm.Type)
			}
		}
		p.b.WriteByte(')')
		if p.syn == ReScript && l.Returns != "" {
			p.b.WriteString(": ")
			p.b.WriteString(l.Returns)
		}
	}
	p.b.WriteString(" => ")
	if _, ok := l.Body.(RecordLit); ok && p.syn == JS {
		// An arrow body starting with a brace would parse as a block.
		p.b.WriteByte('(')
		p.print(l.Body)
		p.b.WriteByte(')')
		return
	}
	p.print(l.Body)
}

func hasParamTypes(ps []Param) bool {
	for _, p := range ps {
		if p.Type != "" {
			return true
		}
	}
	return false
}

// key renders a record literal key. JS keys that are not identifiers are
// quoted; ReScript keys are already escaped field names.
func (p printer) key(name string) string {
	if p.syn == JS && !isJSIdent(name) {
		return strconv.Quote(name)
	}
	return name
}

func isJSIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r == '$':
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
