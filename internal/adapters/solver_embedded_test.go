package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"depsolver/internal/types"
)

func TestEmbeddedSolverAdapterSatisfiesSimpleInstance(t *testing.T) {
	f := &types.Formula{NumVars: 1}
	f.AddHard(1) // x1 forced true
	f.AddSoft(-1, 10)

	assignment, err := NewEmbeddedSolverAdapter().Solve(context.Background(), f)
	require.NoError(t, err)
	require.True(t, assignment.Selected(1))
}

func TestEmbeddedSolverAdapterPrefersCheaperAssignment(t *testing.T) {
	// x1 OR x2 must hold; selecting x1 costs 100, x2 costs 1.
	f := &types.Formula{NumVars: 2}
	f.AddHard(1, 2)
	f.AddSoft(-1, 100)
	f.AddSoft(-2, 1)

	assignment, err := NewEmbeddedSolverAdapter().Solve(context.Background(), f)
	require.NoError(t, err)
	require.False(t, assignment.Selected(1))
	require.True(t, assignment.Selected(2))
}

func TestEmbeddedSolverAdapterRewardsKeepingSoftLiteralTrue(t *testing.T) {
	// x1 is free (no hard clause mentions it); keeping it installed
	// earns a large soft reward, so the cheapest model selects it.
	f := &types.Formula{NumVars: 1}
	f.AddSoft(1, types.UninstallCost)

	assignment, err := NewEmbeddedSolverAdapter().Solve(context.Background(), f)
	require.NoError(t, err)
	require.True(t, assignment.Selected(1))
}

func TestEmbeddedSolverAdapterEmptyHardClauseIsInfeasible(t *testing.T) {
	f := &types.Formula{NumVars: 1}
	f.AddHard() // an install constraint that matched nothing

	_, err := NewEmbeddedSolverAdapter().Solve(context.Background(), f)
	require.Error(t, err)
}
