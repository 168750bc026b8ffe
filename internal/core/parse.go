package core

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"depsolver/internal/types"
)

// BuildRepository parses repository document records into a
// types.Repository. SAT ids are not assigned here (see AssignSatIDs);
// dependency/conflict expansion is not performed here (see
// ResolveRepository).
func BuildRepository(records []types.PackageRecord) (*types.Repository, error) {
	repo := types.NewRepository()
	for _, record := range records {
		version, err := ParseVersion(record.Version)
		if err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("package %q: invalid version", record.Name)).
				WithCause(err)
		}
		pkg := &types.Package{
			Name:    record.Name,
			Version: version,
			Size:    record.Size,
		}
		for _, item := range record.Depends {
			disjunction, err := ParseDisjunction(item.Atoms)
			if err != nil {
				return nil, errbuilder.New().
					WithCode(errbuilder.CodeInvalidArgument).
					WithMsg(fmt.Sprintf("package %s: invalid depends entry", pkg)).
					WithCause(err)
			}
			if len(disjunction) == 0 {
				continue
			}
			pkg.DependencyConstraints = append(pkg.DependencyConstraints, disjunction)
		}
		for _, raw := range record.Conflicts {
			constraint, err := ParseConstraint(raw)
			if err != nil {
				return nil, errbuilder.New().
					WithCode(errbuilder.CodeInvalidArgument).
					WithMsg(fmt.Sprintf("package %s: invalid conflict entry", pkg)).
					WithCause(err)
			}
			pkg.ConflictConstraints = append(pkg.ConflictConstraints, constraint)
		}
		repo.Add(pkg)
	}
	for _, name := range repo.Order {
		SortVersionsAscending(repo.Versions[name])
	}
	return repo, nil
}

// AssignSatIDs assigns a unique, dense-from-1 SatID to every package
// in the repository, in repository parse order. Must run once, after
// BuildRepository and before EncodeFormula.
func AssignSatIDs(repo *types.Repository) {
	for i, pkg := range repo.All {
		pkg.SatID = i + 1
	}
}

// BuildInitial resolves the initial-state document (a list of
// name[=version] references) against the repository. Each reference
// must resolve to exactly one concrete version; a reference with no
// match is a fatal UnknownReference error.
func BuildInitial(refs []string, repo *types.Repository) (types.Initial, error) {
	initial := make(types.Initial, 0, len(refs))
	for _, raw := range refs {
		constraint, err := ParseConstraint(raw)
		if err != nil {
			return nil, err
		}
		pkg, err := matchExactlyOne(repo, constraint)
		if err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg(fmt.Sprintf("initial state reference %q matches no repository package", raw)).
				WithCause(err)
		}
		initial = append(initial, pkg)
	}
	return initial, nil
}

// BuildConstraints parses the constraints document into install and
// uninstall constraint lists. Every string must begin with '+' or '-'.
// An uninstall constraint matching no repository package is a fatal
// error; an install constraint is allowed to match nothing (the solver
// will then report infeasibility).
func BuildConstraints(raw []string, repo *types.Repository) (install []types.Constraint, uninstall []types.Constraint, err error) {
	for _, entry := range raw {
		if len(entry) == 0 {
			return nil, nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("empty constraint entry")
		}
		kind, body := entry[0], entry[1:]
		if kind != '+' && kind != '-' {
			return nil, nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("constraint %q must start with '+' or '-'", entry))
		}
		constraint, parseErr := ParseConstraint(body)
		if parseErr != nil {
			return nil, nil, parseErr
		}
		if kind == '-' {
			if !matchesAny(repo, constraint) {
				return nil, nil, errbuilder.New().
					WithCode(errbuilder.CodeNotFound).
					WithMsg(fmt.Sprintf("uninstall constraint %q matches no repository package", entry))
			}
			uninstall = append(uninstall, constraint)
			continue
		}
		install = append(install, constraint)
	}
	return install, uninstall, nil
}

// matchExactlyOne returns the single package version satisfying
// constraint. More than zero matches is expected to be exactly one for
// an initial-state reference; if more than one matches, the oldest
// satisfying version is used, since repo.Versions is kept sorted
// ascending by version (a bare name with no relation should only be
// used for an exact reference in well-formed input).
func matchExactlyOne(repo *types.Repository, constraint types.Constraint) (*types.Package, error) {
	for _, pkg := range repo.Versions[constraint.Name] {
		if Satisfies(pkg, constraint) {
			return pkg, nil
		}
	}
	return nil, fmt.Errorf("no package satisfies %s", constraint)
}

func matchesAny(repo *types.Repository, constraint types.Constraint) bool {
	for _, pkg := range repo.Versions[constraint.Name] {
		if Satisfies(pkg, constraint) {
			return true
		}
	}
	return false
}

// MatchingPackages returns every package in the repository satisfying
// constraint, in ascending version order (the order of repo.Versions).
func MatchingPackages(repo *types.Repository, constraint types.Constraint) []*types.Package {
	var out []*types.Package
	for _, pkg := range repo.Versions[constraint.Name] {
		if Satisfies(pkg, constraint) {
			out = append(out, pkg)
		}
	}
	return out
}

// MatchingAnyPackages returns every package satisfying any constraint
// in the disjunction, deduplicated while preserving first-seen order.
func MatchingAnyPackages(repo *types.Repository, disjunction types.Disjunction) []*types.Package {
	seen := map[*types.Package]struct{}{}
	var out []*types.Package
	for _, constraint := range disjunction {
		for _, pkg := range MatchingPackages(repo, constraint) {
			if _, ok := seen[pkg]; ok {
				continue
			}
			seen[pkg] = struct{}{}
			out = append(out, pkg)
		}
	}
	return out
}

// FormatCommand renders a package reference the way the command
// sequence expects: "name=dotted-version".
func FormatCommand(kind types.CommandKind, pkg *types.Package) string {
	var b strings.Builder
	b.WriteString(string(kind))
	b.WriteString(pkg.Name)
	b.WriteByte('=')
	b.WriteString(pkg.Version.String())
	return b.String()
}
