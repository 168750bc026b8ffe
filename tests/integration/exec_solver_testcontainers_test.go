//go:build integration

package integration

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"depsolver/internal/adapters"
	"depsolver/internal/app"
)

// TestExecSolverAdapterWithTestcontainers exercises ExecSolverAdapter
// against a real external process: a containerised brute-force WCNF
// solver reached over HTTP, fronted on the host by a small wrapper
// script that plays the role of the "external Max-SAT solver binary"
// the adapter is built to shell out to.
func TestExecSolverAdapterWithTestcontainers(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping testcontainers integration test in short mode")
	}

	ctx := t.Context()
	endpoint, cleanup := startMockSolverContainer(ctx, t)
	t.Cleanup(cleanup)

	root := t.TempDir()
	wrapperPath := filepath.Join(root, "solver-wrapper.sh")
	script := fmt.Sprintf("#!/bin/sh\ncurl -sf --data-binary @\"$1\" %s/solve\n", endpoint)
	require.NoError(t, os.WriteFile(wrapperPath, []byte(script), 0o755))

	solver := adapters.NewExecSolverAdapter(wrapperPath, root)
	service := app.NewServiceWithSolver(solver, app.DefaultMaxCycleIterations)

	repoPath := filepath.Join(root, "repository.json")
	initialPath := filepath.Join(root, "initial.json")
	constraintsPath := filepath.Join(root, "constraints.json")
	require.NoError(t, os.WriteFile(repoPath, []byte(`[
		{"name": "A", "version": "1.0", "size": 10},
		{"name": "A", "version": "2.0", "size": 10, "depends": [["B>=2.0"]]},
		{"name": "B", "version": "2.0", "size": 5}
	]`), 0o644))
	require.NoError(t, os.WriteFile(initialPath, []byte(`["A=1.0"]`), 0o644))
	require.NoError(t, os.WriteFile(constraintsPath, []byte(`["-A=1.0", "+A=2.0"]`), 0o644))

	result, err := service.Solve(ctx, app.SolveRequest{
		RepositoryPath:  repoPath,
		InitialPath:     initialPath,
		ConstraintsPath: constraintsPath,
	})
	require.NoError(t, err)
	require.Equal(t, []string{"-A=1.0", "+B=2.0", "+A=2.0"}, result.Commands)
}

func startMockSolverContainer(ctx context.Context, t *testing.T) (string, func()) {
	t.Helper()
	req := testcontainers.ContainerRequest{
		Image:        "python:3.12-alpine",
		ExposedPorts: []string{"8090/tcp"},
		Cmd:          []string{"python", "-c", mockSolverScript},
		WaitingFor:   wait.ForListeningPort("8090/tcp").WithStartupTimeout(30 * time.Second),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "8090/tcp")
	require.NoError(t, err)

	endpoint := fmt.Sprintf("http://%s:%s", host, port.Port())
	cleanup := func() {
		_ = container.Terminate(ctx)
	}
	return endpoint, cleanup
}

// mockSolverScript is a brute-force Weighted Partial Max-SAT solver:
// it reads a DIMACS WCNF instance from the POST body, tries every
// assignment over its (small) variable count, discards assignments
// violating any clause weighted at the header's W (hard clauses), and
// returns the cheapest surviving assignment as a 'v' line. Suitable
// only for the handful of variables this test's fixtures use.
const mockSolverScript = `
import itertools
from http.server import BaseHTTPRequestHandler, ThreadingHTTPServer

class Handler(BaseHTTPRequestHandler):
    def do_POST(self):
        length = int(self.headers.get("Content-Length", "0"))
        body = self.rfile.read(length).decode("utf-8")
        lines = [l.strip() for l in body.splitlines() if l.strip()]
        header = lines[0].split()
        nvars, hard_weight = int(header[1]), int(header[3])
        clauses = []
        for line in lines[1:]:
            parts = [int(x) for x in line.split()]
            weight, lits = parts[0], parts[1:-1]
            clauses.append((weight, lits))

        best_assignment = None
        best_cost = None
        for bits in itertools.product([False, True], repeat=nvars):
            ok = True
            cost = 0
            for weight, lits in clauses:
                satisfied = any((bits[abs(l) - 1] if l > 0 else not bits[abs(l) - 1]) for l in lits)
                if weight >= hard_weight:
                    if not satisfied:
                        ok = False
                        break
                elif not satisfied:
                    cost += weight
            if not ok:
                continue
            if best_cost is None or cost < best_cost:
                best_cost = cost
                best_assignment = bits

        self.send_response(200)
        self.end_headers()
        if best_assignment is None:
            self.wfile.write(b"s UNSATISFIABLE\n")
            return
        literals = [str(i + 1) if v else str(-(i + 1)) for i, v in enumerate(best_assignment)]
        self.wfile.write(("s OPTIMUM FOUND\nv " + " ".join(literals) + " 0\n").encode("utf-8"))

    def log_message(self, format, *args):
        return

def main():
    server = ThreadingHTTPServer(("0.0.0.0", 8090), Handler)
    server.serve_forever()

if __name__ == "__main__":
    main()
`
