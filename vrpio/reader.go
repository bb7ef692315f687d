package vrpio

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/routewise/ails-cvrp/instance"
)

// Sentinel errors for instance file parsing.
var (
	ErrMissingDimension     = errors.New("vrpio: missing DIMENSION")
	ErrMissingCapacity      = errors.New("vrpio: missing CAPACITY")
	ErrMissingCoordSection  = errors.New("vrpio: missing NODE_COORD_SECTION")
	ErrMissingDemandSection = errors.New("vrpio: missing DEMAND_SECTION")
	ErrUnsupportedWeight    = errors.New("vrpio: unsupported EDGE_WEIGHT_TYPE")
)

// Overrides lets a caller (the CLI's -rounded and knnLimit parameters,
// spec.md §6) adjust instance construction beyond what the file itself
// declares. The zero value applies no override.
type Overrides struct {
	// Rounded, if non-nil, overrides the file's EDGE_WEIGHT_TYPE-implied
	// rounding behavior.
	Rounded *bool

	// KNNLimit caps each customer's nearest-neighbor list length; 0 means
	// unbounded (instance.Options' own default).
	KNNLimit int
}

// ReadInstance parses a TSPLIB-style CVRP file (NAME/DIMENSION/CAPACITY/
// EDGE_WEIGHT_TYPE header, NODE_COORD_SECTION, DEMAND_SECTION, optional
// DEPOT_SECTION) into an instance.Instance. Only EUC_2D (optionally with
// rounding) is supported, matching spec.md's input scope. An optional
// Overrides argument adjusts rounding and the KNN cap.
func ReadInstance(path string, overrides ...Overrides) (*instance.Instance, error) {
	var ov Overrides
	if len(overrides) > 0 {
		ov = overrides[0]
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var (
		name        string
		dimension   = -1
		capacity    int64 = -1
		roundedDist = true
		coords      map[int][2]float64
		demand      map[int]int64
		depotID     = 1
	)

	section := ""
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line == "EOF" {
			continue
		}

		if idx := strings.Index(line, ":"); idx >= 0 && section == "" {
			key := strings.TrimSpace(line[:idx])
			value := strings.TrimSpace(line[idx+1:])
			switch key {
			case "NAME":
				name = value
			case "DIMENSION":
				v, err := strconv.Atoi(value)
				if err != nil {
					return nil, fmt.Errorf("vrpio: DIMENSION: %w", err)
				}
				dimension = v
			case "CAPACITY":
				v, err := strconv.ParseInt(value, 10, 64)
				if err != nil {
					return nil, fmt.Errorf("vrpio: CAPACITY: %w", err)
				}
				capacity = v
			case "EDGE_WEIGHT_TYPE":
				if value != "EUC_2D" {
					return nil, fmt.Errorf("%w: %s", ErrUnsupportedWeight, value)
				}
			}
			continue
		}

		switch line {
		case "NODE_COORD_SECTION":
			section = "coord"
			coords = make(map[int][2]float64)
			continue
		case "DEMAND_SECTION":
			section = "demand"
			demand = make(map[int]int64)
			continue
		case "DEPOT_SECTION":
			section = "depot"
			continue
		}

		switch section {
		case "coord":
			fields := strings.Fields(line)
			if len(fields) < 3 {
				continue
			}
			id, err := strconv.Atoi(fields[0])
			if err != nil {
				return nil, fmt.Errorf("vrpio: NODE_COORD_SECTION: %w", err)
			}
			x, err := strconv.ParseFloat(fields[1], 64)
			if err != nil {
				return nil, fmt.Errorf("vrpio: NODE_COORD_SECTION: %w", err)
			}
			y, err := strconv.ParseFloat(fields[2], 64)
			if err != nil {
				return nil, fmt.Errorf("vrpio: NODE_COORD_SECTION: %w", err)
			}
			coords[id] = [2]float64{x, y}
		case "demand":
			fields := strings.Fields(line)
			if len(fields) < 2 {
				continue
			}
			id, err := strconv.Atoi(fields[0])
			if err != nil {
				return nil, fmt.Errorf("vrpio: DEMAND_SECTION: %w", err)
			}
			d, err := strconv.ParseInt(fields[1], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("vrpio: DEMAND_SECTION: %w", err)
			}
			demand[id] = d
		case "depot":
			fields := strings.Fields(line)
			if len(fields) == 0 {
				continue
			}
			v, err := strconv.Atoi(fields[0])
			if err != nil {
				continue
			}
			if v == -1 {
				section = ""
				continue
			}
			depotID = v
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if dimension <= 0 {
		return nil, ErrMissingDimension
	}
	if capacity <= 0 {
		return nil, ErrMissingCapacity
	}
	if coords == nil {
		return nil, ErrMissingCoordSection
	}
	if demand == nil {
		return nil, ErrMissingDemandSection
	}

	points := make([]instance.Point, dimension)
	demands := make([]int64, dimension)

	depotCoord := coords[depotID]
	points[0] = instance.Point{X: depotCoord[0], Y: depotCoord[1]}
	demands[0] = 0

	customerSlot := 1
	for id := 1; id <= dimension; id++ {
		if id == depotID {
			continue
		}
		c, ok := coords[id]
		if !ok {
			return nil, fmt.Errorf("vrpio: node %d missing coordinates", id)
		}
		points[customerSlot] = instance.Point{X: c[0], Y: c[1]}
		demands[customerSlot] = demand[id]
		customerSlot++
	}

	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if ov.Rounded != nil {
		roundedDist = *ov.Rounded
	}

	return instance.New(points, demands, instance.Options{
		Name:     name,
		Capacity: capacity,
		Rounded:  roundedDist,
		KNNLimit: ov.KNNLimit,
	})
}
