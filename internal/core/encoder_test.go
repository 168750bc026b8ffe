package core

import (
	"testing"

	"github.com/stretchr/testify/require"

	"depsolver/internal/types"
)

func TestEncodeFormulaConflictClause(t *testing.T) {
	repo := buildTestRepository(t, []types.PackageRecord{
		recordOf("A", "1.0", nil, []string{"B"}),
		recordOf("B", "1.0", nil, nil),
	})
	a, _ := repo.Find("A", types.Version{1, 0})
	b, _ := repo.Find("B", types.Version{1, 0})

	f, err := EncodeFormula(repo, nil, nil, nil)
	require.NoError(t, err)
	require.Contains(t, f.Hard, []int{-a.SatID, -b.SatID})
}

func TestEncodeFormulaDependencyClause(t *testing.T) {
	repo := buildTestRepository(t, []types.PackageRecord{
		recordOf("A", "1.0", [][]string{{"B"}}, nil),
		recordOf("B", "1.0", nil, nil),
	})
	a, _ := repo.Find("A", types.Version{1, 0})
	b, _ := repo.Find("B", types.Version{1, 0})

	f, err := EncodeFormula(repo, nil, nil, nil)
	require.NoError(t, err)
	require.Contains(t, f.Hard, []int{-a.SatID, b.SatID})
}

func TestEncodeFormulaForcedUninstall(t *testing.T) {
	repo := buildTestRepository(t, []types.PackageRecord{
		recordOf("A", "1.0", nil, nil),
	})
	a, _ := repo.Find("A", types.Version{1, 0})
	uninstall, err := ParseConstraint("A")
	require.NoError(t, err)

	f, err := EncodeFormula(repo, nil, nil, []types.Constraint{uninstall})
	require.NoError(t, err)
	require.Contains(t, f.Hard, []int{-a.SatID})
}

func TestEncodeFormulaForcedUninstallNoMatchIsFatal(t *testing.T) {
	repo := buildTestRepository(t, []types.PackageRecord{
		recordOf("A", "1.0", nil, nil),
	})
	uninstall, err := ParseConstraint("missing")
	require.NoError(t, err)

	_, err = EncodeFormula(repo, nil, nil, []types.Constraint{uninstall})
	require.Error(t, err)
}

func TestEncodeFormulaForcedInstall(t *testing.T) {
	repo := buildTestRepository(t, []types.PackageRecord{
		recordOf("A", "1.0", nil, nil),
		recordOf("A", "2.0", nil, nil),
	})
	a1, _ := repo.Find("A", types.Version{1, 0})
	a2, _ := repo.Find("A", types.Version{2, 0})
	install, err := ParseConstraint("A")
	require.NoError(t, err)

	f, err := EncodeFormula(repo, nil, []types.Constraint{install}, nil)
	require.NoError(t, err)
	require.Contains(t, f.Hard, []int{a1.SatID, a2.SatID})
}

func TestEncodeFormulaSizeAndKeepInstalledCosts(t *testing.T) {
	repo := buildTestRepository(t, []types.PackageRecord{
		recordOf("A", "1.0", nil, nil),
	})
	repo.All[0].Size = 42
	a := repo.All[0]

	f, err := EncodeFormula(repo, types.Initial{a}, nil, nil)
	require.NoError(t, err)
	require.Contains(t, f.Soft, types.SoftTerm{Literal: -a.SatID, Weight: 42})
	require.Contains(t, f.Soft, types.SoftTerm{Literal: a.SatID, Weight: types.UninstallCost})
}
