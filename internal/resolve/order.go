package resolve

import (
	"github.com/roach88/indexgen/internal/ir"
)

// SchemaOrder returns the declarations of set in an order where every
// declaration follows all of its dependencies.
//
// Schema combinators cannot refer forward or to themselves, so unlike type
// definitions a recursive group has no valid order. Each pass scans the
// unresolved declarations in declaration order and resolves every one whose
// dependencies are already resolved. A pass that resolves nothing fails with a
// CycleError naming one cycle among the remaining declarations.
//
// Generic parameters are not dependencies: their schemas are function
// arguments and always available.
func SchemaOrder(set *ir.TypeDeclMulti) ([]ir.TypeDecl, error) {
	g, err := BuildGraph(set)
	if err != nil {
		return nil, err
	}

	decls := set.Decls()
	resolved := make(map[string]bool, len(decls))
	out := make([]ir.TypeDecl, 0, len(decls))

	for len(out) < len(decls) {
		progress := false
		for _, d := range decls {
			if resolved[d.Name] || !allResolved(g.Edges[d.Name], resolved) {
				continue
			}
			resolved[d.Name] = true
			out = append(out, d)
			progress = true
		}
		if !progress {
			return nil, &CycleError{Path: remainingCycle(g, resolved), Code: ErrCycle}
		}
	}
	return out, nil
}

func allResolved(deps []string, resolved map[string]bool) bool {
	for _, dep := range deps {
		if !resolved[dep] {
			return false
		}
	}
	return true
}

// remainingCycle finds a cycle among the unresolved declarations. One always
// exists when a pass stalls: every unresolved declaration waits on another
// unresolved declaration.
func remainingCycle(g *Graph, resolved map[string]bool) []string {
	keep := make(map[string]bool)
	for _, n := range g.Nodes {
		if !resolved[n] {
			keep[n] = true
		}
	}
	sub := g.restrict(keep)
	for _, scc := range tarjanSCC(sub) {
		if len(scc) > 1 || sub.hasSelfLoop(scc[0]) {
			// Tarjan pops members in reverse; start the path at the earliest
			// declared member for stable messages.
			return reconstructCyclePath(orderedLike(scc, sub.Nodes), sub)
		}
	}
	return nil
}

func orderedLike(scc []string, nodes []string) []string {
	member := make(map[string]bool, len(scc))
	for _, n := range scc {
		member[n] = true
	}
	out := make([]string, 0, len(scc))
	for _, n := range nodes {
		if member[n] {
			out = append(out, n)
		}
	}
	return out
}
