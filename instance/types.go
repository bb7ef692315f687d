package instance

import "errors"

// Sentinel errors for instance construction and validation.
//
// Validation / input-shape errors. Do not wrap with fmt.Errorf where a
// sentinel suffices.
var (
	// ErrNoCustomers indicates an instance with zero customers was requested.
	ErrNoCustomers = errors.New("instance: no customers")

	// ErrNonSquareMatrix indicates the supplied distance matrix is not N x N.
	ErrNonSquareMatrix = errors.New("instance: distance matrix is not square")

	// ErrAsymmetricMatrix indicates D[i][j] != D[j][i] for some i, j.
	ErrAsymmetricMatrix = errors.New("instance: distance matrix is not symmetric")

	// ErrNonZeroDiagonal indicates some D[i][i] != 0.
	ErrNonZeroDiagonal = errors.New("instance: non-zero self-distance")

	// ErrNegativeDemand indicates a customer with demand < 0.
	ErrNegativeDemand = errors.New("instance: negative demand")

	// ErrDepotDemand indicates the depot (id 0) was given non-zero demand.
	ErrDepotDemand = errors.New("instance: depot has non-zero demand")

	// ErrNonPositiveCapacity indicates Q <= 0.
	ErrNonPositiveCapacity = errors.New("instance: capacity must be positive")

	// ErrInfeasibleDemand indicates a single customer's demand exceeds capacity.
	ErrInfeasibleDemand = errors.New("instance: customer demand exceeds vehicle capacity")

	// ErrDimensionMismatch indicates coordinates/demands slices disagree in length
	// with the declared dimension.
	ErrDimensionMismatch = errors.New("instance: dimension mismatch")

	// ErrBadRouteBounds indicates MinRoutes > MaxRoutes or MinRoutes < 0.
	ErrBadRouteBounds = errors.New("instance: invalid min/max route bounds")
)

// Point is an optional 2-D coordinate, used only to build a Euclidean
// distance matrix; an Instance built from a raw matrix may leave Points nil.
type Point struct {
	X, Y float64
}

// Instance is the immutable CVRP problem description. Customer ids are dense
// integers in [1, N]; the depot is id 0. Construct with New or
// NewFromMatrix; never mutate the returned value.
type Instance struct {
	// Name is an optional human-readable identifier (instance file stem).
	Name string

	// N is the number of customers (excludes the depot).
	N int

	// Capacity Q bounds the total demand any single route may carry.
	Capacity int64

	// MinRoutes and MaxRoutes bound the fleet size; MaxRoutes == 0 means
	// "unbounded" (limited only by ceil(total demand / Q)).
	MinRoutes, MaxRoutes int

	// Rounded indicates distances were rounded to the nearest integer at
	// construction time (TSPLIB EUC_2D convention).
	Rounded bool

	// Demand maps customer id -> demand; Demand[0] == 0 (the depot).
	Demand []int64

	// Points holds optional coordinates (Points[0] is the depot), nil if the
	// instance was built directly from a distance matrix.
	Points []Point

	// dist is the dense (N+1)x(N+1) distance matrix, dist[i*(N+1)+j].
	dist []float64

	// knn[i] is customer i's neighbors (other customers and the depot),
	// nearest first, built once at construction time.
	knn [][]int

	// knnLimit is the configured cap on each KNN list's length.
	knnLimit int
}

// Dist returns the distance between customers/depot i and j (0 <= i,j <= N).
func (inst *Instance) Dist(i, j int) float64 {
	return inst.dist[i*(inst.N+1)+j]
}

// KNN returns customer i's nearest-neighbor list (ascending distance),
// capped at the instance's configured knnLimit. The depot (id 0) may appear
// in the list like any other node. The returned slice must not be mutated.
func (inst *Instance) KNN(i int) []int {
	return inst.knn[i]
}

// TotalDemand returns the sum of all customer demands.
func (inst *Instance) TotalDemand() int64 {
	var total int64
	for _, d := range inst.Demand[1:] {
		total += d
	}
	return total
}

// MinFeasibleRoutes returns ceil(TotalDemand / Capacity), a lower bound on
// fleet size, raised to MinRoutes when MinRoutes is larger.
func (inst *Instance) MinFeasibleRoutes() int {
	total := inst.TotalDemand()
	if total == 0 {
		return 0
	}
	n := int(total / inst.Capacity)
	if total%inst.Capacity != 0 {
		n++
	}
	if n < inst.MinRoutes {
		n = inst.MinRoutes
	}
	return n
}
