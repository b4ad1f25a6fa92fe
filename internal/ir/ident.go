package ir

import (
	"fmt"
	"slices"
)

// TypeIdent is a sealed interface over the type identifiers the generator can
// emit. Only Scalar, SchemaEnum, Array, Option, Tuple, GenericParam and
// TypeApplication implement it.
//
// Renderers never switch on TypeIdent directly; they implement Visitor so that
// adding a variant breaks every renderer at compile time.
type TypeIdent interface {
	typeIdent() // Sealed
}

// ScalarKind enumerates the leaf types.
type ScalarKind int

const (
	Unit ScalarKind = iota
	Int
	Float
	BigInt
	BigDecimal
	Address
	String
	Bool
	ID
	Timestamp
	JSON
	Unknown

	numScalarKinds
)

var scalarKindNames = [numScalarKinds]string{
	Unit:       "unit",
	Int:        "int",
	Float:      "float",
	BigInt:     "bigint",
	BigDecimal: "bigdecimal",
	Address:    "address",
	String:     "string",
	Bool:       "bool",
	ID:         "id",
	Timestamp:  "timestamp",
	JSON:       "json",
	Unknown:    "unknown",
}

func (k ScalarKind) String() string {
	if k < 0 || k >= numScalarKinds {
		return fmt.Sprintf("ScalarKind(%d)", int(k))
	}
	return scalarKindNames[k]
}

// ScalarKinds returns every scalar kind in declaration order.
func ScalarKinds() []ScalarKind {
	kinds := make([]ScalarKind, 0, numScalarKinds)
	for k := Unit; k < numScalarKinds; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// Scalar is a primitive leaf type.
type Scalar struct {
	Kind ScalarKind
}

func (Scalar) typeIdent() {}

// SchemaEnum references an enum declared in the user schema.
type SchemaEnum struct {
	Name string
}

func (SchemaEnum) typeIdent() {}

// Array is a homogeneous sequence.
type Array struct {
	Elem TypeIdent
}

func (Array) typeIdent() {}

// Option is a nullable value.
type Option struct {
	Elem TypeIdent
}

func (Option) typeIdent() {}

// Tuple is a fixed ordered list of members.
type Tuple struct {
	Elems []TypeIdent
}

func (Tuple) typeIdent() {}

// GenericParam is a type parameter bound by the enclosing declaration.
// Name is already in canonical emission casing (see GenericParamName).
type GenericParam struct {
	Name string
}

func (GenericParam) typeIdent() {}

// TypeApplication references a declared type, instantiated with Args.
// A simple named type has no Args.
type TypeApplication struct {
	Name string
	Args []TypeIdent
}

func (TypeApplication) typeIdent() {}

// Convenience constructors. Slices are copied so that callers cannot mutate a
// constructed node.

// NewScalar returns the scalar of the given kind.
func NewScalar(k ScalarKind) Scalar { return Scalar{Kind: k} }

// NewArray wraps elem in an Array.
func NewArray(elem TypeIdent) Array { return Array{Elem: elem} }

// NewOption wraps elem in an Option.
func NewOption(elem TypeIdent) Option { return Option{Elem: elem} }

// NewTuple builds a Tuple from members.
func NewTuple(elems ...TypeIdent) Tuple { return Tuple{Elems: slices.Clone(elems)} }

// NewGenericParam builds a GenericParam, normalizing the name.
func NewGenericParam(name string) GenericParam {
	return GenericParam{Name: GenericParamName(name)}
}

// Apply builds a TypeApplication of name to args.
func Apply(name string, args ...TypeIdent) TypeApplication {
	return TypeApplication{Name: name, Args: slices.Clone(args)}
}

// Named builds a TypeApplication without arguments.
func Named(name string) TypeApplication { return TypeApplication{Name: name} }

// Visitor dispatches on every TypeIdent variant.
type Visitor[R any] interface {
	Scalar(s Scalar) R
	SchemaEnum(e SchemaEnum) R
	Array(a Array) R
	Option(o Option) R
	Tuple(t Tuple) R
	GenericParam(g GenericParam) R
	Application(a TypeApplication) R
}

// Visit calls the visitor method matching t. Pointer forms are accepted for
// callers that build nodes by reference.
func Visit[R any](t TypeIdent, v Visitor[R]) R {
	switch n := t.(type) {
	case Scalar:
		return v.Scalar(n)
	case *Scalar:
		return v.Scalar(*n)
	case SchemaEnum:
		return v.SchemaEnum(n)
	case *SchemaEnum:
		return v.SchemaEnum(*n)
	case Array:
		return v.Array(n)
	case *Array:
		return v.Array(*n)
	case Option:
		return v.Option(n)
	case *Option:
		return v.Option(*n)
	case Tuple:
		return v.Tuple(n)
	case *Tuple:
		return v.Tuple(*n)
	case GenericParam:
		return v.GenericParam(n)
	case *GenericParam:
		return v.GenericParam(*n)
	case TypeApplication:
		return v.Application(n)
	case *TypeApplication:
		return v.Application(*n)
	default:
		// Unreachable: the interface is sealed.
		panic(fmt.Sprintf("ir: unknown TypeIdent %T", t))
	}
}

// Dependencies returns the names of the declarations t refers to.
// A TypeApplication contributes its own name followed by the flattened
// dependencies of its arguments, in order. Duplicates are preserved; use
// ExprDependencies for a set.
func Dependencies(t TypeIdent) []string {
	return Visit[[]string](t, depsVisitor{})
}

type depsVisitor struct{}

func (depsVisitor) Scalar(Scalar) []string             { return nil }
func (depsVisitor) SchemaEnum(SchemaEnum) []string     { return nil }
func (depsVisitor) GenericParam(GenericParam) []string { return nil }

func (d depsVisitor) Array(a Array) []string   { return Dependencies(a.Elem) }
func (d depsVisitor) Option(o Option) []string { return Dependencies(o.Elem) }

func (d depsVisitor) Tuple(t Tuple) []string {
	var deps []string
	for _, e := range t.Elems {
		deps = append(deps, Dependencies(e)...)
	}
	return deps
}

func (d depsVisitor) Application(a TypeApplication) []string {
	deps := []string{a.Name}
	for _, arg := range a.Args {
		deps = append(deps, Dependencies(arg)...)
	}
	return deps
}

// GenericParams returns the generic parameter names referenced by t, in first
// occurrence order.
func GenericParams(t TypeIdent) []string {
	var out []string
	collectGenerics(t, &out)
	return out
}

func collectGenerics(t TypeIdent, out *[]string) {
	switch n := t.(type) {
	case GenericParam:
		if !slices.Contains(*out, n.Name) {
			*out = append(*out, n.Name)
		}
	case Array:
		collectGenerics(n.Elem, out)
	case Option:
		collectGenerics(n.Elem, out)
	case Tuple:
		for _, e := range n.Elems {
			collectGenerics(e, out)
		}
	case TypeApplication:
		for _, a := range n.Args {
			collectGenerics(a, out)
		}
	}
}

// Equal reports whether two type identifiers are structurally identical.
func Equal(a, b TypeIdent) bool {
	switch x := a.(type) {
	case Scalar:
		y, ok := b.(Scalar)
		return ok && x.Kind == y.Kind
	case SchemaEnum:
		y, ok := b.(SchemaEnum)
		return ok && x.Name == y.Name
	case Array:
		y, ok := b.(Array)
		return ok && Equal(x.Elem, y.Elem)
	case Option:
		y, ok := b.(Option)
		return ok && Equal(x.Elem, y.Elem)
	case Tuple:
		y, ok := b.(Tuple)
		return ok && equalAll(x.Elems, y.Elems)
	case GenericParam:
		y, ok := b.(GenericParam)
		return ok && x.Name == y.Name
	case TypeApplication:
		y, ok := b.(TypeApplication)
		return ok && x.Name == y.Name && equalAll(x.Args, y.Args)
	}
	return false
}

func equalAll(a, b []TypeIdent) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}
