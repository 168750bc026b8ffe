package types

import (
	"fmt"
	"io"
)

// MaxWeight is the hard-clause weight in the Weighted Partial Max-SAT
// encoding: (10^6)^2, chosen to dominate any practical sum of soft
// weights for one problem instance.
const MaxWeight int64 = 1_000_000 * 1_000_000

// UninstallCost is the soft penalty, per originally-installed package
// removed, large enough to dominate any practical sum of package
// sizes so uninstalling is only ever chosen when strictly necessary
// for feasibility.
const UninstallCost int64 = 1_000_000

// SoftTerm is a single-literal soft clause: satisfying it (the literal
// being true) earns Weight toward the objective. Literal follows DIMACS
// convention: a positive sat_id means "this package installed", a
// negative one means "this package not installed".
type SoftTerm struct {
	Literal int
	Weight  int64
}

// Formula is a Weighted Partial Max-SAT instance: hard clauses that
// must be satisfied, plus soft single-literal clauses contributing to
// the objective. NumVars is the number of SAT variables (sat_ids),
// dense from 1.
type Formula struct {
	NumVars int
	Hard    [][]int
	Soft    []SoftTerm
}

// AddHard appends a hard (must-satisfy) clause.
func (f *Formula) AddHard(literals ...int) {
	clause := append([]int(nil), literals...)
	f.Hard = append(f.Hard, clause)
}

// AddSoft appends a single-literal soft clause.
func (f *Formula) AddSoft(literal int, weight int64) {
	f.Soft = append(f.Soft, SoftTerm{Literal: literal, Weight: weight})
}

// Block appends a hard clause forbidding the exact conjunction of the
// given (positive) sat_ids all being true simultaneously — i.e. at
// least one of them must now be false. Used by the cycle-recovery loop
// to forbid a to-install set that produced a dependency cycle.
func (f *Formula) Block(satIDs []int) {
	literals := make([]int, len(satIDs))
	for i, id := range satIDs {
		literals[i] = -id
	}
	f.AddHard(literals...)
}

// WriteWCNF renders the formula as DIMACS Weighted CNF text: a header
// line "p wcnf V C W" followed by one "<weight> <literals...> 0" line
// per clause (hard clauses carry weight MaxWeight).
func (f *Formula) WriteWCNF(w io.Writer) error {
	numClauses := len(f.Hard) + len(f.Soft)
	if _, err := fmt.Fprintf(w, "p wcnf %d %d %d\n", f.NumVars, numClauses, MaxWeight); err != nil {
		return err
	}
	for _, clause := range f.Hard {
		if err := writeClauseLine(w, MaxWeight, clause); err != nil {
			return err
		}
	}
	for _, term := range f.Soft {
		if err := writeClauseLine(w, term.Weight, []int{term.Literal}); err != nil {
			return err
		}
	}
	return nil
}

func writeClauseLine(w io.Writer, weight int64, literals []int) error {
	if _, err := fmt.Fprintf(w, "%d", weight); err != nil {
		return err
	}
	for _, lit := range literals {
		if _, err := fmt.Fprintf(w, " %d", lit); err != nil {
			return err
		}
	}
	_, err := fmt.Fprint(w, " 0\n")
	return err
}

// HasEmptyHardClause reports whether any hard clause is empty. An
// empty clause can never be satisfied, so the formula as a whole is
// trivially infeasible; this happens when a forced-install constraint
// matches no repository package (see core.EncodeFormula), and must be
// checked before handing the formula to a solver backend rather than
// relying on the backend to handle a degenerate zero-literal clause.
func (f *Formula) HasEmptyHardClause() bool {
	for _, clause := range f.Hard {
		if len(clause) == 0 {
			return true
		}
	}
	return false
}

// Assignment maps a sat_id to whether it was selected (installed) in
// the final state. An id absent from the map was not reported by the
// solver at all (treated as unselected by callers).
type Assignment map[int]bool

// Selected returns true if id was assigned true.
func (a Assignment) Selected(id int) bool {
	return a[id]
}
