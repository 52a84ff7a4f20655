package kinship

import "famtree/internal/records"

// AncestorNode is one person in an ancestor chain. Column numbers slots within
// a generation from the top: a node in column c has its father in column 2c
// and its mother in column 2c+1 of the next generation.
type AncestorNode struct {
	Person     *records.Person
	Generation int
	Column     int
	Father     *AncestorNode
	Mother     *AncestorNode
}

// Walk visits n and its ancestors depth first, father before mother.
func (n *AncestorNode) Walk(fn func(*AncestorNode)) {
	if n == nil {
		return
	}
	fn(n)
	n.Father.Walk(fn)
	n.Mother.Walk(fn)
}

// Depth returns the number of generations present under n, n included.
func (n *AncestorNode) Depth() int {
	if n == nil {
		return 0
	}
	return 1 + max(n.Father.Depth(), n.Mother.Depth())
}

// AncestorChain builds the ancestor tree of p. maxGenerations counts tiers
// with p as the first, so 3 yields p, parents and grandparents. Missing
// parents end a branch without error.
func (r *Resolver) AncestorChain(p *records.Person, maxGenerations int) *AncestorNode {
	if p == nil {
		return nil
	}
	if maxGenerations < 1 {
		maxGenerations = 1
	}
	return r.ancestor(p, 0, 0, maxGenerations)
}

func (r *Resolver) ancestor(p *records.Person, generation, column, limit int) *AncestorNode {
	node := &AncestorNode{Person: p, Generation: generation, Column: column}
	if generation+1 >= limit {
		return node
	}
	parents := r.Parents(p)
	if parents == nil {
		return node
	}
	if parents.Father != nil {
		node.Father = r.ancestor(parents.Father, generation+1, column*2, limit)
	}
	if parents.Mother != nil {
		node.Mother = r.ancestor(parents.Mother, generation+1, column*2+1, limit)
	}
	return node
}
