package app

import (
	"context"
	"errors"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"depsolver/internal/core"
	"depsolver/internal/types"
)

// Solve runs the full pipeline for one request: load and parse the
// three documents, resolve dependency/conflict grammars, then encode
// and solve the Max-SAT instance, appending a blocking clause and
// re-solving each time the install-ordering graph contains a cycle,
// up to MaxCycleIterations attempts.
func (s Service) Solve(ctx context.Context, req SolveRequest) (*SolveResult, error) {
	records, err := s.Loader.LoadRepository(req.RepositoryPath)
	if err != nil {
		return nil, err
	}
	initialRefs, err := s.Loader.LoadInitial(req.InitialPath)
	if err != nil {
		return nil, err
	}
	constraintEntries, err := s.Loader.LoadConstraints(req.ConstraintsPath)
	if err != nil {
		return nil, err
	}

	repo, err := core.BuildRepository(records)
	if err != nil {
		return nil, err
	}
	core.AssignSatIDs(repo)
	core.ResolveRepository(repo)

	initial, err := core.BuildInitial(initialRefs, repo)
	if err != nil {
		return nil, err
	}
	install, uninstall, err := core.BuildConstraints(constraintEntries, repo)
	if err != nil {
		return nil, err
	}

	trace := types.ResolutionTrace{
		PackagesParsed:       len(repo.All),
		InitialInstalled:     len(initial),
		InstallConstraints:   len(install),
		UninstallConstraints: len(uninstall),
	}

	log.Ctx(ctx).Debug().
		Int("packages", trace.PackagesParsed).
		Int("initial", trace.InitialInstalled).
		Int("install_constraints", trace.InstallConstraints).
		Int("uninstall_constraints", trace.UninstallConstraints).
		Msg("parsed and resolved repository")

	formula, err := core.EncodeFormula(repo, initial, install, uninstall)
	if err != nil {
		return nil, err
	}
	trace.HardClauses = len(formula.Hard)
	trace.SoftClauses = len(formula.Soft)

	maxIterations := s.MaxCycleIterations
	if maxIterations <= 0 {
		maxIterations = DefaultMaxCycleIterations
	}

	for iteration := 1; iteration <= maxIterations; iteration++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		trace.SolverInvocations++
		assignment, err := s.Solver.Solve(ctx, formula)
		if err != nil {
			return nil, err
		}

		toInstall, toUninstall := core.ComputeDelta(repo, assignment, initial)

		installOrder, err := core.SequenceInstalls(toInstall, initial, toUninstall)
		if err != nil {
			var cycleErr *core.CycleError
			if errors.As(err, &cycleErr) {
				trace.CycleRecoveries++
				log.Ctx(ctx).Warn().
					Int("iteration", iteration).
					Int("blocked_set_size", len(cycleErr.SatIDs)).
					Msg("install ordering contains a cycle, blocking and re-solving")
				formula.Block(cycleErr.SatIDs)
				continue
			}
			return nil, err
		}

		uninstallOrder := core.SequenceUninstalls(toUninstall)
		commands := core.BuildCommands(uninstallOrder, installOrder)
		trace.CommandsEmitted = len(commands)

		log.Ctx(ctx).Info().
			Int("iterations", iteration).
			Int("installs", len(installOrder)).
			Int("uninstalls", len(uninstallOrder)).
			Msg("resolution complete")

		return &SolveResult{Commands: commands, Iterations: iteration, Trace: trace}, nil
	}

	return nil, errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg("exhausted cycle-recovery attempts without a cycle-free solution")
}
