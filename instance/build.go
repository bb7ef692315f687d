package instance

import (
	"math"
	"sort"
)

// Options configures Instance construction.
type Options struct {
	// Name is stored verbatim on the resulting Instance.
	Name string

	// Capacity is the per-vehicle capacity Q. Required, must be > 0.
	Capacity int64

	// MinRoutes, MaxRoutes bound the fleet size. Zero MaxRoutes means
	// unbounded.
	MinRoutes, MaxRoutes int

	// Rounded, when true, rounds Euclidean distances to the nearest integer
	// (TSPLIB EUC_2D convention). Ignored by NewFromMatrix, whose caller
	// already decided rounding.
	Rounded bool

	// KNNLimit caps the length of each customer's nearest-neighbor list.
	// Zero means "no cap" (full N neighbors).
	KNNLimit int
}

// New builds an Instance from depot+customer coordinates and per-customer
// demand. points[0] and demand[0] describe the depot (demand[0] must be 0);
// points[1:] and demand[1:] describe customers 1..N.
//
// Distances are Euclidean, optionally rounded to the nearest integer per
// opts.Rounded.
func New(points []Point, demand []int64, opts Options) (*Instance, error) {
	if len(points) != len(demand) {
		return nil, ErrDimensionMismatch
	}
	n := len(points) - 1
	if n <= 0 {
		return nil, ErrNoCustomers
	}

	dim := n + 1
	dist := make([]float64, dim*dim)
	for i := 0; i < dim; i++ {
		for j := 0; j < dim; j++ {
			if i == j {
				continue
			}
			dx := points[i].X - points[j].X
			dy := points[i].Y - points[j].Y
			d := math.Sqrt(dx*dx + dy*dy)
			if opts.Rounded {
				d = math.Round(d)
			}
			dist[i*dim+j] = d
		}
	}

	inst, err := assemble(opts.Name, n, opts.Capacity, opts.MinRoutes, opts.MaxRoutes, opts.Rounded, opts.KNNLimit, demand, dist)
	if err != nil {
		return nil, err
	}
	inst.Points = append([]Point(nil), points...)
	return inst, nil
}

// NewFromMatrix builds an Instance from an explicit symmetric distance
// matrix (dim == n+1, depot at index 0) and per-customer demand.
func NewFromMatrix(dist [][]float64, demand []int64, opts Options) (*Instance, error) {
	dim := len(dist)
	n := dim - 1
	if n <= 0 {
		return nil, ErrNoCustomers
	}
	if len(demand) != dim {
		return nil, ErrDimensionMismatch
	}

	flat := make([]float64, dim*dim)
	for i := 0; i < dim; i++ {
		if len(dist[i]) != dim {
			return nil, ErrNonSquareMatrix
		}
		for j := 0; j < dim; j++ {
			flat[i*dim+j] = dist[i][j]
		}
	}

	return assemble(opts.Name, n, opts.Capacity, opts.MinRoutes, opts.MaxRoutes, opts.Rounded, opts.KNNLimit, demand, flat)
}

// assemble validates inputs, builds the KNN index, and returns the Instance.
func assemble(name string, n int, capacity int64, minRoutes, maxRoutes int, rounded bool, knnLimit int, demand []int64, dist []float64) (*Instance, error) {
	dim := n + 1
	if capacity <= 0 {
		return nil, ErrNonPositiveCapacity
	}
	if minRoutes < 0 || (maxRoutes > 0 && minRoutes > maxRoutes) {
		return nil, ErrBadRouteBounds
	}
	if demand[0] != 0 {
		return nil, ErrDepotDemand
	}
	for i := 1; i < dim; i++ {
		if demand[i] < 0 {
			return nil, ErrNegativeDemand
		}
		if demand[i] > capacity {
			return nil, ErrInfeasibleDemand
		}
	}
	for i := 0; i < dim; i++ {
		if dist[i*dim+i] != 0 {
			return nil, ErrNonZeroDiagonal
		}
		for j := i + 1; j < dim; j++ {
			a, b := dist[i*dim+j], dist[j*dim+i]
			if a != b {
				return nil, ErrAsymmetricMatrix
			}
		}
	}

	inst := &Instance{
		Name:      name,
		N:         n,
		Capacity:  capacity,
		MinRoutes: minRoutes,
		MaxRoutes: maxRoutes,
		Rounded:   rounded,
		Demand:    append([]int64(nil), demand...),
		dist:      dist,
		knnLimit:  knnLimit,
	}
	inst.buildKNN()

	return inst, nil
}

// buildKNN sorts, for every node 0..N, the remaining nodes by ascending
// distance and caps the list at knnLimit (0 means unbounded).
func (inst *Instance) buildKNN() {
	dim := inst.N + 1
	inst.knn = make([][]int, dim)
	limit := inst.knnLimit
	if limit <= 0 || limit > dim-1 {
		limit = dim - 1
	}

	for i := 0; i < dim; i++ {
		others := make([]int, 0, dim-1)
		for j := 0; j < dim; j++ {
			if j != i {
				others = append(others, j)
			}
		}
		sort.Slice(others, func(a, b int) bool {
			da, db := inst.Dist(i, others[a]), inst.Dist(i, others[b])
			if da != db {
				return da < db
			}
			return others[a] < others[b]
		})
		if len(others) > limit {
			others = others[:limit]
		}
		inst.knn[i] = others
	}
}
