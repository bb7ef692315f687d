package vrpio

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/routewise/ails-cvrp/instance"
	"github.com/routewise/ails-cvrp/repair"
	"github.com/routewise/ails-cvrp/solution"
)

const sampleInstance = `NAME : sample
DIMENSION : 5
CAPACITY : 10
EDGE_WEIGHT_TYPE : EUC_2D
NODE_COORD_SECTION
1 0 0
2 10 0
3 0 10
4 -10 0
5 0 -10
DEMAND_SECTION
1 0
2 3
3 3
4 3
5 3
DEPOT_SECTION
1
-1
EOF
`

func TestReadInstance_ParsesHeaderAndSections(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.vrp")
	require.NoError(t, os.WriteFile(path, []byte(sampleInstance), 0o644))

	inst, err := ReadInstance(path)
	require.NoError(t, err)

	require.Equal(t, "sample", inst.Name)
	require.Equal(t, 4, inst.N)
	require.Equal(t, int64(10), inst.Capacity)
}

func TestReadInstance_RejectsMissingCapacity(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.vrp")
	content := strings.Replace(sampleInstance, "CAPACITY : 10\n", "", 1)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := ReadInstance(path)
	require.ErrorIs(t, err, ErrMissingCapacity)
}

func TestWriteSolution_MatchesRouteAndCostGrammar(t *testing.T) {
	inst, err := instance.New(
		[]instance.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 0, Y: 10}, {X: -10, Y: 0}},
		[]int64{0, 1, 1, 1},
		instance.Options{Capacity: 5},
	)
	require.NoError(t, err)

	sol := solution.New(inst)
	require.NoError(t, repair.RegretKInsert(sol, []int{1, 2, 3}, repair.RegretKOptions{K: 2}))

	dir := t.TempDir()
	require.NoError(t, WriteSolution(dir, "sample", sol))

	data, err := os.ReadFile(filepath.Join(dir, "sample.sol"))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.NotEmpty(t, lines)
	last := lines[len(lines)-1]
	require.True(t, strings.HasPrefix(last, "Cost "))
	for _, l := range lines[:len(lines)-1] {
		require.True(t, strings.HasPrefix(l, "Route "))
		require.Contains(t, l, " : ")
	}
}

func TestReadThenRoundTripIntoSolution(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.vrp")
	require.NoError(t, os.WriteFile(path, []byte(sampleInstance), 0o644))

	inst, err := ReadInstance(path)
	require.NoError(t, err)

	sol := solution.New(inst)
	pending := make([]int, inst.N)
	for i := range pending {
		pending[i] = i + 1
	}
	require.NoError(t, repair.RegretKInsert(sol, pending, repair.RegretKOptions{K: 2}))
	require.NoError(t, sol.Validate())

	require.NoError(t, WriteSolution(dir, inst.Name, sol))
	_, err = os.Stat(filepath.Join(dir, "sample.sol"))
	require.NoError(t, err)
}
