package pool

import (
	"fmt"
	"math/rand"

	"github.com/hupe1980/adaptgo/operator"
)

// Edge is one weighted undirected graph edge.
type Edge struct {
	A, B   int
	Weight float64
}

// Graph is a weighted undirected graph on vertices 0..N-1.
type Graph struct {
	N     int
	Edges []Edge
}

// ErdosRenyi samples a G(n, p) random graph with unit edge weights from a
// seeded source, so a given (n, p, seed) triple always yields the same graph.
func ErdosRenyi(n int, p float64, seed int64) Graph {
	rng := rand.New(rand.NewSource(seed))
	g := Graph{N: n}
	for a := 0; a < n; a++ {
		for b := a + 1; b < n; b++ {
			if rng.Float64() < p {
				g.Edges = append(g.Edges, Edge{A: a, B: b, Weight: 1})
			}
		}
	}
	return g
}

// MaxCutHamiltonian returns the cost observable sum_{(a,b)} w/2 * Z_a Z_b.
// The constant -w/2 offset per edge is dropped; minimizing this observable
// maximizes the cut.
func MaxCutHamiltonian(g Graph) (*operator.PauliSum, error) {
	if g.N < 1 || len(g.Edges) == 0 {
		return nil, fmt.Errorf("maxcut graph needs at least one vertex and one edge, got %d/%d", g.N, len(g.Edges))
	}
	terms := make([]operator.ScaledPauli, 0, len(g.Edges))
	for _, e := range g.Edges {
		if e.A < 0 || e.B < 0 || e.A >= g.N || e.B >= g.N || e.A == e.B {
			return nil, fmt.Errorf("maxcut edge (%d,%d) out of range for %d vertices", e.A, e.B, g.N)
		}
		terms = append(terms, operator.Scale(e.Weight/2, operator.ZZ(e.A, e.B, g.N)))
	}
	return operator.NewPauliSum(terms)
}
