package core

import (
	"regexp"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"depsolver/internal/types"
)

// constraintRegex matches "name[(=|<|>|<=|>=)dotted-version]". The
// operator alternatives are ordered longest-first so the two-character
// operators are tried before their one-character prefixes.
var constraintRegex = regexp.MustCompile(`^([.+A-Za-z0-9-]+)(?:(>=|<=|=|<|>)([0-9.]+))?$`)

// ParseConstraint parses a raw constraint reference such as "A",
// "A=1.0", or "A>=1.2" into a types.Constraint. The relation and
// version are jointly present or jointly absent.
func ParseConstraint(raw string) (types.Constraint, error) {
	match := constraintRegex.FindStringSubmatch(raw)
	if match == nil {
		return types.Constraint{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid constraint: " + raw)
	}
	name, op, versionStr := match[1], match[2], match[3]
	if op == "" {
		return types.Constraint{Name: name, Op: types.ConstraintOpNone}, nil
	}
	version, err := ParseVersion(versionStr)
	if err != nil {
		return types.Constraint{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid constraint: " + raw).
			WithCause(err)
	}
	return types.Constraint{Name: name, Op: types.ConstraintOp(op), Version: version}, nil
}

// ParseDisjunction parses every atom of a raw depends group into a
// types.Disjunction.
func ParseDisjunction(atoms []string) (types.Disjunction, error) {
	disjunction := make(types.Disjunction, 0, len(atoms))
	for _, atom := range atoms {
		constraint, err := ParseConstraint(atom)
		if err != nil {
			return nil, err
		}
		disjunction = append(disjunction, constraint)
	}
	return disjunction, nil
}

// Satisfies reports whether pkg satisfies the constraint: the name
// must match, and if the constraint carries a relation, pkg's version
// must compare as indicated.
func Satisfies(pkg *types.Package, c types.Constraint) bool {
	if pkg.Name != c.Name {
		return false
	}
	if c.Op == types.ConstraintOpNone {
		return true
	}
	cmp := CompareVersions(pkg.Version, c.Version)
	switch c.Op {
	case types.ConstraintOpEq:
		return cmp == 0
	case types.ConstraintOpLt:
		return cmp < 0
	case types.ConstraintOpGt:
		return cmp > 0
	case types.ConstraintOpLte:
		return cmp <= 0
	case types.ConstraintOpGte:
		return cmp >= 0
	default:
		return false
	}
}
