package instance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_MinimalTriangle(t *testing.T) {
	points := []Point{
		{0, 0},
		{10, 0},
		{0, 10},
		{-10, 0},
	}
	demand := []int64{0, 1, 1, 1}

	inst, err := New(points, demand, Options{Capacity: 10, Rounded: true})
	require.NoError(t, err)

	assert.Equal(t, 3, inst.N)
	assert.Equal(t, 10.0, inst.Dist(0, 1))
	assert.Equal(t, 14.0, inst.Dist(1, 2)) // sqrt(200) rounds to 14
	assert.Equal(t, inst.Dist(1, 2), inst.Dist(2, 1))
}

func TestNew_RejectsDepotDemand(t *testing.T) {
	points := []Point{{0, 0}, {1, 0}}
	demand := []int64{5, 1}

	_, err := New(points, demand, Options{Capacity: 10})
	assert.ErrorIs(t, err, ErrDepotDemand)
}

func TestNew_RejectsInfeasibleDemand(t *testing.T) {
	points := []Point{{0, 0}, {1, 0}}
	demand := []int64{0, 20}

	_, err := New(points, demand, Options{Capacity: 10})
	assert.ErrorIs(t, err, ErrInfeasibleDemand)
}

func TestNewFromMatrix_RejectsAsymmetry(t *testing.T) {
	dist := [][]float64{
		{0, 1},
		{2, 0},
	}
	_, err := NewFromMatrix(dist, []int64{0, 1}, Options{Capacity: 10})
	assert.ErrorIs(t, err, ErrAsymmetricMatrix)
}

func TestBuildKNN_SortedAscendingAndCapped(t *testing.T) {
	points := make([]Point, 6)
	demand := make([]int64, 6)
	for i := range points {
		points[i] = Point{X: float64(i), Y: 0}
	}
	inst, err := New(points, demand, Options{Capacity: 10, KNNLimit: 2})
	require.NoError(t, err)

	nbrs := inst.KNN(0)
	require.Len(t, nbrs, 2)
	assert.Equal(t, 1, nbrs[0])
	assert.Equal(t, 2, nbrs[1])
}

func TestMinFeasibleRoutes(t *testing.T) {
	points := []Point{{0, 0}, {1, 0}, {2, 0}, {3, 0}}
	demand := []int64{0, 4, 4, 4}
	inst, err := New(points, demand, Options{Capacity: 10})
	require.NoError(t, err)

	assert.Equal(t, 2, inst.MinFeasibleRoutes())
}
