package adaptgo_test

import (
	"context"
	"fmt"
	"log"

	"github.com/hupe1980/adaptgo"
	"github.com/hupe1980/adaptgo/ansatz"
	"github.com/hupe1980/adaptgo/callback"
	"github.com/hupe1980/adaptgo/pool"
	"github.com/hupe1980/adaptgo/state"
)

func Example() {
	// MaxCut on a triangle graph.
	g := pool.Graph{N: 3, Edges: []pool.Edge{
		{A: 0, B: 1, Weight: 1},
		{A: 1, B: 2, Weight: 1},
		{A: 0, B: 2, Weight: 1},
	}}
	h, err := pool.MaxCutHamiltonian(g)
	if err != nil {
		log.Fatal(err)
	}

	a, err := ansatz.NewQAOA(h, 0.01)
	if err != nil {
		log.Fatal(err)
	}

	pl, err := pool.QAOADouble(3)
	if err != nil {
		log.Fatal(err)
	}

	vqe, err := adaptgo.New(h, a, pl, state.NewUniformVector(3),
		adaptgo.WithCallbacks(
			callback.NewTracer(),
			&callback.ScoreStopper{Epsilon: 1e-3},
			&callback.ParameterStopper{Max: 20},
		),
	)
	if err != nil {
		log.Fatal(err)
	}

	converged, err := vqe.Run(context.Background())
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("converged:", converged)
	// Output: converged: true
}

func ExampleValidate() {
	g := pool.ErdosRenyi(4, 0.8, 1)
	h, err := pool.MaxCutHamiltonian(g)
	if err != nil {
		log.Fatal(err)
	}

	a, err := ansatz.NewQAOA(h, 0.01)
	if err != nil {
		log.Fatal(err)
	}

	pl, err := pool.QAOADouble(4)
	if err != nil {
		log.Fatal(err)
	}

	// Cross-check every code path on the combination before a long run.
	err = adaptgo.Validate(context.Background(), a, pl, h, state.NewUniformVector(4), adaptgo.DefaultTolerances())
	fmt.Println("consistent:", err == nil)
	// Output: consistent: true
}
