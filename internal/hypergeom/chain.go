package hypergeom

import (
	"fmt"

	"qkangaroo/internal/symtab"
)

// node is a 2φ1 parameter quadruple (a,b,c,z).
type node struct {
	A, B, C, Z Mono
}

func (n node) key() string {
	m := func(x Mono) string { return fmt.Sprintf("%s.%d", x.Coeff.String(), x.Pow) }
	return m(n.A) + "|" + m(n.B) + "|" + m(n.C) + "|" + m(n.Z)
}

func (n node) equal(o node) bool {
	return monoEq(n.A, o.A) && monoEq(n.B, o.B) && monoEq(n.C, o.C) && monoEq(n.Z, o.Z)
}

// edge is one applied Heine transformation step: From's 2φ1 equals
// Step.Prefactor times To's 2φ1, where To = (Step.Upper[0],
// Step.Upper[1], Step.Lower, Step.Z).
type edge struct {
	Name string
	From node
	Step Transformed
}

func (e edge) to() node {
	return node{A: e.Step.Upper[0], B: e.Step.Upper[1], C: e.Step.Lower, Z: e.Step.Z}
}

// FindTransformationChain searches breadth-first, up to maxDepth Heine
// steps, for a chain of transformations carrying the 2φ1(source...)
// series to one matching target's parameters exactly (spec §4.9's
// transformation-chain search). It returns the sequence of edges
// applied (empty if source already equals target) and whether a chain
// was found within maxDepth.
func FindTransformationChain(source, target [4]Mono, variable symtab.ID, N, maxDepth int) ([]edge, bool, error) {
	start := node{A: source[0], B: source[1], C: source[2], Z: source[3]}
	goal := node{A: target[0], B: target[1], C: target[2], Z: target[3]}
	if start.equal(goal) {
		return nil, true, nil
	}
	type queued struct {
		n     node
		path  []edge
		depth int
	}
	visited := map[string]bool{start.key(): true}
	queue := []queued{{n: start, depth: 0}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur.depth >= maxDepth {
			continue
		}
		steps := []struct {
			name string
			fn   func(a, b, c, z Mono, variable symtab.ID, N int) (Transformed, error)
		}{
			{"heine1", Heine1},
			{"heine2", Heine2},
			{"heine3", Heine3},
		}
		for _, s := range steps {
			t, err := s.fn(cur.n.A, cur.n.B, cur.n.C, cur.n.Z, variable, N)
			if err != nil {
				if err == ErrHeineDomain {
					continue
				}
				return nil, false, err
			}
			e := edge{Name: s.name, From: cur.n, Step: t}
			next := e.to()
			if next.equal(goal) {
				return append(append([]edge{}, cur.path...), e), true, nil
			}
			k := next.key()
			if visited[k] {
				continue
			}
			visited[k] = true
			queue = append(queue, queued{n: next, path: append(append([]edge{}, cur.path...), e), depth: cur.depth + 1})
		}
	}
	return nil, false, nil
}
