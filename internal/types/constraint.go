package types

import "fmt"

// Version is a dotted sequence of non-negative integers, e.g. "1.10.2"
// parses to Version{1, 10, 2}. It compares element-wise over the
// common prefix; if the prefix is equal the shorter sequence is the
// smaller one (direct sequence comparison, not zero-padded — see
// core.CompareVersions).
type Version []int

func (v Version) String() string {
	out := ""
	for i, component := range v {
		if i > 0 {
			out += "."
		}
		out += fmt.Sprintf("%d", component)
	}
	return out
}

// Constraint is a raw parsed reference: a package name plus an
// optional relation and version. Op == ConstraintOpNone means the
// reference matches any version of the named package.
type Constraint struct {
	Name    string
	Op      ConstraintOp
	Version Version
}

func (c Constraint) String() string {
	if c.Op == ConstraintOpNone {
		return c.Name
	}
	return c.Name + string(c.Op) + c.Version.String()
}

// Disjunction is a non-empty set of alternative raw constraints; any
// one being satisfied witnesses the whole disjunction. A bare atom in
// the "depends" grammar becomes a one-element Disjunction.
type Disjunction []Constraint
