// Package hierarchy provides small immutable is-a graphs used for
// ancestor-aware classification of currencies along named axes such as
// domain, kind, and traits.
package hierarchy

import (
	"sort"

	bankster "github.com/randomseed-io/bankster-sub000"
)

// Graph is an immutable directed acyclic is-a graph. The zero value and nil
// are both usable empty graphs; Derive returns a new Graph, never mutating
// the receiver.
type Graph struct {
	parents map[string]map[string]struct{}
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{}
}

// Derive returns a graph extended with the relationship "child is-a parent".
// It fails when the edge would introduce a cycle.
func (g *Graph) Derive(child, parent string) (*Graph, error) {
	if child == parent || g.IsA(parent, child) {
		return nil, bankster.Errorf(
			bankster.ErrorMalformedInput,
			"hierarchy",
			"deriving %q from %q would create a cycle", child, parent,
		)
	}

	next := &Graph{parents: make(map[string]map[string]struct{}, g.size()+1)}
	for node, ps := range g.edges() {
		next.parents[node] = ps
	}

	ps := make(map[string]struct{}, len(next.parents[child])+1)
	for p := range next.parents[child] {
		ps[p] = struct{}{}
	}

	ps[parent] = struct{}{}
	next.parents[child] = ps

	return next, nil
}

// Underive returns a graph with the direct "child is-a parent" edge removed.
// Removing an absent edge is the identity.
func (g *Graph) Underive(child, parent string) *Graph {
	existing, ok := g.edges()[child]
	if !ok {
		return g
	}

	if _, ok := existing[parent]; !ok {
		return g
	}

	next := &Graph{parents: make(map[string]map[string]struct{}, g.size())}
	for node, ps := range g.edges() {
		next.parents[node] = ps
	}

	if len(existing) == 1 {
		delete(next.parents, child)
		return next
	}

	ps := make(map[string]struct{}, len(existing)-1)

	for p := range existing {
		if p != parent {
			ps[p] = struct{}{}
		}
	}

	next.parents[child] = ps

	return next
}

// IsA reports whether ancestor is reachable from node, including transitively.
// A node is not its own ancestor.
func (g *Graph) IsA(node, ancestor string) bool {
	if g == nil || g.parents == nil {
		return false
	}

	seen := make(map[string]struct{})
	stack := []string{node}

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for parent := range g.parents[current] {
			if parent == ancestor {
				return true
			}

			if _, ok := seen[parent]; ok {
				continue
			}

			seen[parent] = struct{}{}
			stack = append(stack, parent)
		}
	}

	return false
}

// Ancestors returns every ancestor of node in lexical order.
func (g *Graph) Ancestors(node string) []string {
	if g == nil || g.parents == nil {
		return nil
	}

	seen := make(map[string]struct{})
	stack := []string{node}

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for parent := range g.parents[current] {
			if _, ok := seen[parent]; ok {
				continue
			}

			seen[parent] = struct{}{}
			stack = append(stack, parent)
		}
	}

	if len(seen) == 0 {
		return nil
	}

	out := make([]string, 0, len(seen))
	for a := range seen {
		out = append(out, a)
	}

	sort.Strings(out)

	return out
}

// Parents returns the direct parents of node in lexical order.
func (g *Graph) Parents(node string) []string {
	ps, ok := g.edges()[node]
	if !ok {
		return nil
	}

	out := make([]string, 0, len(ps))
	for p := range ps {
		out = append(out, p)
	}

	sort.Strings(out)

	return out
}

func (g *Graph) edges() map[string]map[string]struct{} {
	if g == nil {
		return nil
	}

	return g.parents
}

func (g *Graph) size() int {
	if g == nil {
		return 0
	}

	return len(g.parents)
}
