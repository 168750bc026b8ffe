package core

import (
	"depsolver/internal/types"
)

// ResolveRepository expands every package's raw dependency and conflict
// grammar into concrete repository references. Must run once, after
// BuildRepository and AssignSatIDs, before EncodeFormula.
//
// For each dependency disjunction D of a package P, the resolved form is
// every concrete version in the repository matching any atom of D. A
// disjunction whose resolved form is empty is dropped entirely (this is
// not an error): the encoder never sees it, so P stays selectable as if
// that dependency had not been declared.
//
// Conflicts are resolved the same way (a package never conflicts with
// itself), then rationalised: any concrete version appearing in both a
// dependency disjunction and the conflict set is removed from the
// disjunction, since the hard conflict clause would rule that choice
// out anyway. If rationalisation empties a disjunction, it is dropped
// in the same way.
func ResolveRepository(repo *types.Repository) {
	for _, pkg := range repo.All {
		pkg.Conflicts = map[*types.Package]struct{}{}
		for _, c := range pkg.ConflictConstraints {
			for _, other := range MatchingPackages(repo, c) {
				if other == pkg {
					continue
				}
				pkg.Conflicts[other] = struct{}{}
			}
		}
	}

	for _, pkg := range repo.All {
		pkg.Dependencies = nil
		for _, disjunction := range pkg.DependencyConstraints {
			resolved := MatchingAnyPackages(repo, disjunction)
			resolved = rationalise(resolved, pkg.Conflicts)
			if len(resolved) == 0 {
				continue
			}
			pkg.Dependencies = append(pkg.Dependencies, resolved)
		}
	}
}

// rationalise drops every package present in conflicts from options,
// preserving the remaining order.
func rationalise(options []*types.Package, conflicts map[*types.Package]struct{}) []*types.Package {
	if len(conflicts) == 0 {
		return options
	}
	out := options[:0:0]
	for _, pkg := range options {
		if _, conflicted := conflicts[pkg]; conflicted {
			continue
		}
		out = append(out, pkg)
	}
	return out
}
