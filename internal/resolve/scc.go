package resolve

import (
	"slices"

	"github.com/roach88/indexgen/internal/ir"
)

// Group is a strongly connected set of declarations.
//
// A Recursive group must be emitted as a single `type rec ... and ...` block:
// it has more than one member, or its only member refers to itself.
type Group struct {
	Decls     []ir.TypeDecl
	Recursive bool
}

// Names returns the member names in declaration order.
func (g Group) Names() []string {
	names := make([]string, len(g.Decls))
	for i, d := range g.Decls {
		names[i] = d.Name
	}
	return names
}

// Groups partitions set into strongly connected components, dependencies
// first. Members of a group keep declaration order.
//
// The algorithm:
//  1. Build the declaration dependency graph
//  2. Use Tarjan's algorithm to find strongly connected components, visiting
//     nodes and edges in declaration order so the result is deterministic
//  3. Mark each SCC with size > 1 or a self-loop as recursive
//
// Tarjan emits a component only after every component it depends on, so the
// emission order is already a valid definition order.
func Groups(set *ir.TypeDeclMulti) ([]Group, error) {
	g, err := BuildGraph(set)
	if err != nil {
		return nil, err
	}

	position := make(map[string]int, len(g.Nodes))
	for i, n := range g.Nodes {
		position[n] = i
	}

	var groups []Group
	for _, scc := range tarjanSCC(g) {
		slices.SortFunc(scc, func(a, b string) int { return position[a] - position[b] })
		group := Group{Recursive: len(scc) > 1 || g.hasSelfLoop(scc[0])}
		for _, name := range scc {
			d, _ := set.Lookup(name)
			group.Decls = append(group.Decls, d)
		}
		groups = append(groups, group)
	}
	return groups, nil
}

// tarjanSCC finds strongly connected components using Tarjan's algorithm.
//
// Returns a list of SCCs, where each SCC is a list of declaration names.
// Single-node SCCs without self-loops are NOT cycles.
func tarjanSCC(g *Graph) [][]string {
	var (
		index   = 0
		stack   []string
		indices = make(map[string]int)
		lowlink = make(map[string]int)
		onStack = make(map[string]bool)
		sccs    [][]string
	)

	var strongConnect func(string)
	strongConnect = func(v string) {
		// Set the depth index for v
		indices[v] = index
		lowlink[v] = index
		index++
		stack = append(stack, v)
		onStack[v] = true

		// Consider successors of v
		for _, w := range g.Edges[v] {
			if _, visited := indices[w]; !visited {
				// Successor w has not yet been visited; recurse on it
				strongConnect(w)
				lowlink[v] = min(lowlink[v], lowlink[w])
			} else if onStack[w] {
				// Successor w is on stack and hence in the current SCC
				lowlink[v] = min(lowlink[v], indices[w])
			}
		}

		// If v is a root node, pop the stack and create an SCC
		if lowlink[v] == indices[v] {
			var scc []string
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				scc = append(scc, w)
				if w == v {
					break
				}
			}
			sccs = append(sccs, scc)
		}
	}

	// Visit all nodes in declaration order
	for _, node := range g.Nodes {
		if _, visited := indices[node]; !visited {
			strongConnect(node)
		}
	}

	return sccs
}

// reconstructCyclePath builds a cycle path from an SCC.
//
// Strategy: Start at first node in SCC, follow edges to other SCC members,
// continue until we return to start node.
func reconstructCyclePath(scc []string, g *Graph) []string {
	if len(scc) == 0 {
		return []string{}
	}
	if len(scc) == 1 {
		return []string{scc[0], scc[0]}
	}

	sccSet := make(map[string]bool, len(scc))
	for _, node := range scc {
		sccSet[node] = true
	}

	start := scc[0]
	current := start
	path := []string{current}
	visited := make(map[string]bool)

	for {
		visited[current] = true

		// Find next SCC member reachable from current
		var next string
		for _, neighbor := range g.Edges[current] {
			if sccSet[neighbor] && (!visited[neighbor] || neighbor == start) {
				next = neighbor
				break
			}
		}

		if next == "" {
			break
		}

		path = append(path, next)

		if next == start {
			break
		}

		current = next
	}

	return path
}
