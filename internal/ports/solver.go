package ports

import (
	"context"

	"depsolver/internal/types"
)

// SolverPort is the abstract Max-SAT oracle: given a Weighted Partial
// Max-SAT formula, return a truth assignment maximising satisfied
// weight. The solver's internal algorithm is opaque; callers only rely
// on hard clauses being honoured and the objective being optimised.
type SolverPort interface {
	Solve(ctx context.Context, formula *types.Formula) (types.Assignment, error)
}
