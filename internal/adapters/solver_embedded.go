package adapters

import (
	"context"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/crillab/gophersat/solver"

	"depsolver/internal/types"
)

// EmbeddedSolverAdapter runs the Weighted Partial Max-SAT instance
// in-process via gophersat, translating hard clauses into plain SAT
// clauses and soft clauses into gophersat's cost function. This is the
// default solver: it is hermetic and needs no external binary.
type EmbeddedSolverAdapter struct{}

// NewEmbeddedSolverAdapter creates an EmbeddedSolverAdapter.
func NewEmbeddedSolverAdapter() *EmbeddedSolverAdapter {
	return &EmbeddedSolverAdapter{}
}

func (a *EmbeddedSolverAdapter) Solve(ctx context.Context, formula *types.Formula) (types.Assignment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if formula.HasEmptyHardClause() {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("embedded solver found no satisfiable assignment: an install constraint matched no repository package")
	}
	if formula.NumVars == 0 {
		return types.Assignment{}, nil
	}

	clauses := make([][]int, 0, len(formula.Hard))
	clauses = append(clauses, formula.Hard...)

	costLits := make([]solver.Lit, 0, len(formula.Soft))
	costWeights := make([]int, 0, len(formula.Soft))
	for _, term := range formula.Soft {
		// gophersat's cost function charges a literal's weight when that
		// literal is TRUE in the model (Minimize() then seeks the
		// cheapest model). A WCNF single-literal soft clause (w, L) is
		// the opposite convention: it pays w when L is false. So a soft
		// term here must be costed on its negation, ¬L, to reproduce
		// "satisfying L earns weight, leaving L unsatisfied forfeits it".
		costLits = append(costLits, solver.IntToLit(int32(-term.Literal))) //nolint:gosec // literal magnitude bounded by variable count
		costWeights = append(costWeights, int(term.Weight))
	}

	problem := solver.ParseSliceNb(clauses, formula.NumVars)
	problem.SetCostFunc(costLits, costWeights)
	sat := solver.New(problem)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if cost := sat.Minimize(); cost < 0 {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("embedded solver found no satisfiable assignment")
	}

	model := sat.Model()
	assignment := make(types.Assignment, len(model))
	for i := range model {
		assignment[i+1] = model[i]
	}
	return assignment, nil
}
