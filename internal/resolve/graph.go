package resolve

import (
	"fmt"
	"strings"

	"github.com/roach88/indexgen/internal/ir"
)

// Resolver error codes (E301-E309)
const (
	ErrUnresolved = "E301" // dependency names no declaration in the set
	ErrCycle      = "E302" // schema ordering cannot make progress
)

// UnresolvedError reports a declaration referring to a name the set does not
// declare.
type UnresolvedError struct {
	Decl       string `json:"decl"`
	Dependency string `json:"dependency"`
	Code       string `json:"code"`
}

func (e *UnresolvedError) Error() string {
	return fmt.Sprintf("[%s] %s: depends on undeclared type %q", e.Code, e.Decl, e.Dependency)
}

// CycleError reports declarations whose schemas depend on each other.
// Path is a cycle through the set: ["a", "b", "a"].
type CycleError struct {
	Path []string `json:"path"`
	Code string   `json:"code"`
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("[%s] schema dependency cycle: %s", e.Code, strings.Join(e.Path, " → "))
}

// Graph maps each declaration name to the in-set declarations it depends on,
// in first occurrence order. Nodes lists names in declaration order.
type Graph struct {
	Nodes []string
	Edges map[string][]string
}

// BuildGraph computes the dependency graph of set. Every dependency must name
// a declaration of the set.
func BuildGraph(set *ir.TypeDeclMulti) (*Graph, error) {
	g := &Graph{Edges: make(map[string][]string, set.Len())}
	for _, d := range set.Decls() {
		deps := d.Dependencies()
		for _, dep := range deps {
			if _, ok := set.Lookup(dep); !ok {
				return nil, &UnresolvedError{Decl: d.Name, Dependency: dep, Code: ErrUnresolved}
			}
		}
		g.Nodes = append(g.Nodes, d.Name)
		g.Edges[d.Name] = deps
	}
	return g, nil
}

// hasSelfLoop reports whether node depends on itself.
func (g *Graph) hasSelfLoop(node string) bool {
	for _, neighbor := range g.Edges[node] {
		if neighbor == node {
			return true
		}
	}
	return false
}

// restrict returns the subgraph induced by keep, preserving node order.
func (g *Graph) restrict(keep map[string]bool) *Graph {
	sub := &Graph{Edges: make(map[string][]string, len(keep))}
	for _, n := range g.Nodes {
		if !keep[n] {
			continue
		}
		sub.Nodes = append(sub.Nodes, n)
		var edges []string
		for _, w := range g.Edges[n] {
			if keep[w] {
				edges = append(edges, w)
			}
		}
		sub.Edges[n] = edges
	}
	return sub
}
