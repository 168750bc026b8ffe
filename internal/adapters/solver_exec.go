package adapters

import (
	"bufio"
	"context"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"depsolver/internal/shared"
	"depsolver/internal/types"
)

// ExecSolverAdapter writes the formula as a DIMACS WCNF file and
// invokes an external Max-SAT solver binary with that file as its sole
// argument, parsing the assignment back out of its stdout.
type ExecSolverAdapter struct {
	Binary     string
	ScratchDir string
}

// NewExecSolverAdapter creates an ExecSolverAdapter driving the given
// solver binary, writing scratch WCNF files under scratchDir (the
// system temp directory if empty).
func NewExecSolverAdapter(binary, scratchDir string) *ExecSolverAdapter {
	return &ExecSolverAdapter{Binary: binary, ScratchDir: scratchDir}
}

func (a *ExecSolverAdapter) Solve(ctx context.Context, formula *types.Formula) (types.Assignment, error) {
	if strings.TrimSpace(a.Binary) == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("exec solver adapter requires a binary path")
	}
	if formula.HasEmptyHardClause() {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("exec solver found no satisfiable assignment: an install constraint matched no repository package")
	}

	file, err := os.CreateTemp(a.ScratchDir, "depsolver-*.wcnf")
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create scratch wcnf file").
			WithCause(err)
	}
	defer os.Remove(file.Name())

	if err := formula.WriteWCNF(file); err != nil {
		file.Close()
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write wcnf file").
			WithCause(err)
	}
	if err := file.Close(); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to close wcnf file").
			WithCause(err)
	}

	cmd := exec.CommandContext(ctx, a.Binary, file.Name())
	output, runErr := cmd.CombinedOutput()

	// Optimisation solvers commonly exit non-zero on interrupt even
	// when they printed a usable assignment; only the presence of a
	// 'v' line is authoritative.
	assignment, parseErr := parseWCNFAssignment(string(output))
	if parseErr != nil {
		if runErr != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeFailedPrecondition).
				WithMsg("exec solver produced no usable assignment").
				WithCause(shared.CommandError(output, runErr))
		}
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("exec solver produced no usable assignment").
			WithCause(parseErr)
	}
	return assignment, nil
}

// parseWCNFAssignment scans solver stdout for the final 'v'-prefixed
// line and parses its space-separated signed integers into an
// Assignment. A trailing sentinel zero, if present, is ignored.
func parseWCNFAssignment(output string) (types.Assignment, error) {
	var lastValueLine string
	scanner := bufio.NewScanner(strings.NewReader(output))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "v ") || line == "v" {
			lastValueLine = strings.TrimSpace(strings.TrimPrefix(line, "v"))
		}
	}
	if lastValueLine == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("no 'v' line found in solver output")
	}

	assignment := types.Assignment{}
	for _, token := range strings.Fields(lastValueLine) {
		n, err := strconv.Atoi(token)
		if err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("malformed literal in solver 'v' line: " + token).
				WithCause(err)
		}
		if n == 0 {
			continue
		}
		if n > 0 {
			assignment[n] = true
		} else {
			assignment[-n] = false
		}
	}
	return assignment, nil
}
