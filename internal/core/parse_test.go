package core

import (
	"testing"

	"github.com/stretchr/testify/require"

	"depsolver/internal/types"
)

func TestBuildRepositoryAssignsSatIDs(t *testing.T) {
	repo := buildTestRepository(t, []types.PackageRecord{
		recordOf("A", "1.0", nil, nil),
		recordOf("A", "2.0", nil, nil),
		recordOf("B", "1.0", nil, nil),
	})
	ids := map[int]bool{}
	for _, pkg := range repo.All {
		require.NotZero(t, pkg.SatID)
		require.False(t, ids[pkg.SatID], "duplicate sat_id %d", pkg.SatID)
		ids[pkg.SatID] = true
	}
	require.Len(t, ids, 3)
}

func TestBuildRepositoryInvalidVersion(t *testing.T) {
	_, err := BuildRepository([]types.PackageRecord{recordOf("A", "not-a-version", nil, nil)})
	require.Error(t, err)
}

func TestBuildRepositoryKeepsVersionsSortedAscendingRegardlessOfDeclarationOrder(t *testing.T) {
	repo := buildTestRepository(t, []types.PackageRecord{
		recordOf("A", "2.0", nil, nil),
		recordOf("A", "1.0", nil, nil),
	})
	versions := repo.Versions["A"]
	require.Len(t, versions, 2)
	require.Equal(t, "1.0", versions[0].Version.String())
	require.Equal(t, "2.0", versions[1].Version.String())
}

func TestBuildInitialResolvesReferences(t *testing.T) {
	repo := buildTestRepository(t, []types.PackageRecord{
		recordOf("A", "1.0", nil, nil),
	})
	initial, err := BuildInitial([]string{"A=1.0"}, repo)
	require.NoError(t, err)
	require.Len(t, initial, 1)
	require.Equal(t, "A", initial[0].Name)
}

func TestBuildInitialUnknownReferenceIsFatal(t *testing.T) {
	repo := buildTestRepository(t, []types.PackageRecord{
		recordOf("A", "1.0", nil, nil),
	})
	_, err := BuildInitial([]string{"A=9.0"}, repo)
	require.Error(t, err)
}

func TestBuildConstraintsSplitsInstallAndUninstall(t *testing.T) {
	repo := buildTestRepository(t, []types.PackageRecord{
		recordOf("A", "1.0", nil, nil),
	})
	install, uninstall, err := BuildConstraints([]string{"+A>=1.0", "-A=1.0"}, repo)
	require.NoError(t, err)
	require.Len(t, install, 1)
	require.Len(t, uninstall, 1)
}

func TestBuildConstraintsUninstallWithNoMatchIsFatal(t *testing.T) {
	repo := buildTestRepository(t, []types.PackageRecord{
		recordOf("A", "1.0", nil, nil),
	})
	_, _, err := BuildConstraints([]string{"-missing"}, repo)
	require.Error(t, err)
}

func TestBuildConstraintsInstallWithNoMatchIsAllowed(t *testing.T) {
	repo := buildTestRepository(t, []types.PackageRecord{
		recordOf("A", "1.0", nil, nil),
	})
	install, _, err := BuildConstraints([]string{"+missing"}, repo)
	require.NoError(t, err)
	require.Len(t, install, 1)
}

func TestBuildConstraintsRejectsMissingPrefix(t *testing.T) {
	repo := buildTestRepository(t, nil)
	_, _, err := BuildConstraints([]string{"A=1.0"}, repo)
	require.Error(t, err)
}

func TestFormatCommand(t *testing.T) {
	pkg := &types.Package{Name: "A", Version: types.Version{1, 2}}
	require.Equal(t, "+A=1.2", FormatCommand(types.CommandInstall, pkg))
	require.Equal(t, "-A=1.2", FormatCommand(types.CommandUninstall, pkg))
}
