package app

import "depsolver/internal/types"

// SolveRequest names the three input documents for one resolution run.
type SolveRequest struct {
	RepositoryPath  string
	InitialPath     string
	ConstraintsPath string
}

// SolveResult is the ordered command sequence and the number of
// solve attempts it took (1 when no cycle recovery was needed, one
// more for each blocked cyclic solution). Trace is always
// populated; callers that don't care about it (most callers, most
// tests) simply ignore it.
type SolveResult struct {
	Commands   []string
	Iterations int
	Trace      types.ResolutionTrace
}
