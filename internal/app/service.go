package app

import (
	"depsolver/internal/adapters"
	"depsolver/internal/ports"
)

// DefaultMaxCycleIterations bounds the install-ordering cycle-recovery
// loop: each iteration blocks the previous to-install set and re-solves.
const DefaultMaxCycleIterations = 64

// Service orchestrates the full resolution pipeline: parse, resolve,
// encode, solve (with cycle recovery), and sequence.
type Service struct {
	Loader             ports.DocumentLoaderPort
	Solver             ports.SolverPort
	MaxCycleIterations int
}

// NewService creates a Service using the embedded gophersat solver and
// a JSON/YAML document loader, matching the default CLI wiring.
func NewService() Service {
	return Service{
		Loader:             adapters.NewDocumentLoaderAdapter(),
		Solver:             adapters.NewEmbeddedSolverAdapter(),
		MaxCycleIterations: DefaultMaxCycleIterations,
	}
}

// NewServiceWithSolver creates a Service using an explicitly chosen
// solver adapter, e.g. an ExecSolverAdapter driving an external binary.
func NewServiceWithSolver(solver ports.SolverPort, maxCycleIterations int) Service {
	if maxCycleIterations <= 0 {
		maxCycleIterations = DefaultMaxCycleIterations
	}
	return Service{
		Loader:             adapters.NewDocumentLoaderAdapter(),
		Solver:             solver,
		MaxCycleIterations: maxCycleIterations,
	}
}
