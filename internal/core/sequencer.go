package core

import (
	"fmt"
	"sort"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"depsolver/internal/types"
)

// ComputeDelta partitions the solver's assignment against the initial
// state: to-install is every selected package not already installed;
// to-uninstall is every initially-installed package the assignment
// left unselected.
func ComputeDelta(repo *types.Repository, assignment types.Assignment, initial types.Initial) (toInstall, toUninstall []*types.Package) {
	for _, p := range repo.All {
		selected := assignment.Selected(p.SatID)
		switch {
		case selected && !initial.Contains(p):
			toInstall = append(toInstall, p)
		case !selected && initial.Contains(p):
			toUninstall = append(toUninstall, p)
		}
	}
	return toInstall, toUninstall
}

// CycleError reports that the install-side ordering graph contains a
// cycle. SatIDs is the current to-install set, for the caller to feed
// into Formula.Block before re-solving.
type CycleError struct {
	SatIDs []int
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("install ordering contains a cycle over %d packages", len(e.SatIDs))
}

// SequenceInstalls orders toInstall so that every package's resolved
// dependencies are satisfied by an earlier entry (or were already
// present and are not being removed). Returns a *CycleError if the
// dependency graph over toInstall has a cycle.
func SequenceInstalls(toInstall []*types.Package, initial types.Initial, toUninstall []*types.Package) ([]*types.Package, error) {
	keep := remaining(initial, toUninstall)
	inSet := packageSet(toInstall)

	indegree := make(map[*types.Package]int, len(toInstall))
	successors := make(map[*types.Package][]*types.Package, len(toInstall))
	for _, p := range toInstall {
		indegree[p] = 0
	}

	for _, p := range toInstall {
		for _, disjunction := range p.Dependencies {
			if disjunctionSatisfiedBy(disjunction, keep) {
				continue
			}
			var chosen *types.Package
			for _, q := range disjunction {
				if _, ok := inSet[q]; ok {
					chosen = q
					break
				}
			}
			if chosen == nil {
				return nil, errbuilder.New().
					WithCode(errbuilder.CodeInternal).
					WithMsg(fmt.Sprintf("inconsistent solution: %s has no satisfiable dependency among %s", p, disjunctionNames(disjunction)))
			}
			successors[chosen] = append(successors[chosen], p)
			indegree[p]++
		}
	}

	ordered, ok := kahnSorted(toInstall, indegree, successors)
	if !ok {
		return nil, &CycleError{SatIDs: satIDs(toInstall)}
	}
	return ordered, nil
}

// SequenceUninstalls orders toUninstall so that every package precedes
// the packages it depends on (reverse dependency order): a package is
// removed only after anything that still required it has also been
// removed from this batch.
func SequenceUninstalls(toUninstall []*types.Package) []*types.Package {
	inSet := packageSet(toUninstall)

	indegree := make(map[*types.Package]int, len(toUninstall))
	successors := make(map[*types.Package][]*types.Package, len(toUninstall))
	for _, p := range toUninstall {
		indegree[p] = 0
	}

	for _, p := range toUninstall {
		for _, disjunction := range p.Dependencies {
			for _, q := range disjunction {
				if _, ok := inSet[q]; !ok {
					continue
				}
				successors[q] = append(successors[q], p)
				indegree[p]++
			}
		}
	}

	ordered, ok := kahnSorted(toUninstall, indegree, successors)
	if !ok {
		// The uninstall graph cycles when packages being removed
		// depend on each other. Rather than silently truncate, the
		// whole batch is then emitted in reverse of its input order.
		ordered = toUninstall
	}
	reverse(ordered)
	return ordered
}

// kahnSorted runs Kahn's algorithm over the given node set, indegree
// map and successor map, always removing the lowest-sat_id
// zero-indegree node next. Returns false if fewer than len(nodes)
// nodes were emitted (a cycle exists).
func kahnSorted(nodes []*types.Package, indegree map[*types.Package]int, successors map[*types.Package][]*types.Package) ([]*types.Package, bool) {
	queue := make([]*types.Package, 0, len(nodes))
	for _, p := range nodes {
		if indegree[p] == 0 {
			queue = insertSorted(queue, p)
		}
	}

	ordered := make([]*types.Package, 0, len(nodes))
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		ordered = append(ordered, next)
		for _, succ := range successors[next] {
			indegree[succ]--
			if indegree[succ] == 0 {
				queue = insertSorted(queue, succ)
			}
		}
	}

	return ordered, len(ordered) == len(nodes)
}

// insertSorted inserts p into queue, keeping it sorted ascending by
// SatID, via binary search for the insertion point.
func insertSorted(queue []*types.Package, p *types.Package) []*types.Package {
	i := sort.Search(len(queue), func(i int) bool { return queue[i].SatID >= p.SatID })
	queue = append(queue, nil)
	copy(queue[i+1:], queue[i:])
	queue[i] = p
	return queue
}

// BuildCommands renders the final command list: uninstalls first (in
// uninstall order), then installs (in install order).
func BuildCommands(uninstallOrder, installOrder []*types.Package) []string {
	commands := make([]string, 0, len(uninstallOrder)+len(installOrder))
	for _, p := range uninstallOrder {
		commands = append(commands, FormatCommand(types.CommandUninstall, p))
	}
	for _, p := range installOrder {
		commands = append(commands, FormatCommand(types.CommandInstall, p))
	}
	return commands
}

func remaining(initial types.Initial, toUninstall []*types.Package) map[*types.Package]struct{} {
	removed := packageSet(toUninstall)
	out := map[*types.Package]struct{}{}
	for _, p := range initial {
		if _, ok := removed[p]; ok {
			continue
		}
		out[p] = struct{}{}
	}
	return out
}

func disjunctionSatisfiedBy(disjunction []*types.Package, set map[*types.Package]struct{}) bool {
	for _, q := range disjunction {
		if _, ok := set[q]; ok {
			return true
		}
	}
	return false
}

func disjunctionNames(disjunction []*types.Package) string {
	names := make([]string, len(disjunction))
	for i, q := range disjunction {
		names[i] = q.String()
	}
	return fmt.Sprint(names)
}

func packageSet(packages []*types.Package) map[*types.Package]struct{} {
	out := make(map[*types.Package]struct{}, len(packages))
	for _, p := range packages {
		out[p] = struct{}{}
	}
	return out
}

func satIDs(packages []*types.Package) []int {
	ids := make([]int, len(packages))
	for i, p := range packages {
		ids[i] = p.SatID
	}
	return ids
}

func reverse(packages []*types.Package) {
	for i, j := 0, len(packages)-1; i < j; i, j = i+1, j-1 {
		packages[i], packages[j] = packages[j], packages[i]
	}
}
