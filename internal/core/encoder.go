package core

import (
	"github.com/ZanzyTHEbar/errbuilder-go"

	"depsolver/internal/types"
)

// EncodeFormula builds the Weighted Partial Max-SAT instance for one
// repository snapshot: one Boolean variable x_i per concrete package
// version (i = sat_id, truth meaning "installed in the final state").
//
// Must run after AssignSatIDs and ResolveRepository.
func EncodeFormula(repo *types.Repository, initial types.Initial, install, uninstall []types.Constraint) (*types.Formula, error) {
	f := &types.Formula{NumVars: len(repo.All)}

	addConflictClauses(f, repo)
	addDependencyClauses(f, repo)
	if err := addForcedUninstallClauses(f, repo, uninstall); err != nil {
		return nil, err
	}
	if err := addForcedInstallClauses(f, repo, install); err != nil {
		return nil, err
	}
	addSizeCostClauses(f, repo)
	addKeepInstalledClauses(f, initial)

	return f, nil
}

// addConflictClauses adds, for every ordered pair (P, Q) with Q in
// P.conflicts, the hard clause ¬x_P ∨ ¬x_Q.
func addConflictClauses(f *types.Formula, repo *types.Repository) {
	for _, p := range repo.All {
		for q := range p.Conflicts {
			f.AddHard(-p.SatID, -q.SatID)
		}
	}
}

// addDependencyClauses adds, for every P and every resolved dependency
// disjunction D of P, the hard clause ¬x_P ∨ ⋁_{Q∈D} x_Q.
func addDependencyClauses(f *types.Formula, repo *types.Repository) {
	for _, p := range repo.All {
		for _, disjunction := range p.Dependencies {
			clause := make([]int, 0, len(disjunction)+1)
			clause = append(clause, -p.SatID)
			for _, q := range disjunction {
				clause = append(clause, q.SatID)
			}
			f.AddHard(clause...)
		}
	}
}

// addForcedUninstallClauses adds ¬x_P for every package matching an
// uninstall constraint.
func addForcedUninstallClauses(f *types.Formula, repo *types.Repository, uninstall []types.Constraint) error {
	for _, c := range uninstall {
		matches := MatchingPackages(repo, c)
		if len(matches) == 0 {
			return errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg("uninstall constraint " + c.String() + " matches no repository package")
		}
		for _, p := range matches {
			f.AddHard(-p.SatID)
		}
	}
	return nil
}

// addForcedInstallClauses adds, for every install constraint C with
// matching set S, the single hard clause ⋁_{P∈S} x_P. An empty S is
// permitted here: it simply yields an empty clause the solver can
// never satisfy, surfacing as infeasibility rather than a parse error,
// per the forced-install semantics.
func addForcedInstallClauses(f *types.Formula, repo *types.Repository, install []types.Constraint) error {
	for _, c := range install {
		matches := MatchingPackages(repo, c)
		clause := make([]int, 0, len(matches))
		for _, p := range matches {
			clause = append(clause, p.SatID)
		}
		f.AddHard(clause...)
	}
	return nil
}

// addSizeCostClauses adds, for every package, a soft clause ¬x_P
// weighted at its size: not selecting P earns that weight, so the
// total forfeit equals the sum of selected sizes.
func addSizeCostClauses(f *types.Formula, repo *types.Repository) {
	for _, p := range repo.All {
		if p.Size == 0 {
			continue
		}
		f.AddSoft(-p.SatID, int64(p.Size))
	}
}

// addKeepInstalledClauses adds, for every package in the initial state,
// a soft clause x_P weighted at UninstallCost: keeping P selected earns
// that weight, so uninstalling it forfeits it.
func addKeepInstalledClauses(f *types.Formula, initial types.Initial) {
	for _, p := range initial {
		f.AddSoft(p.SatID, types.UninstallCost)
	}
}
