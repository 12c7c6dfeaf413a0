package frametable

import (
	"fmt"
	"sort"

	"framelab/internal/faults"
)

// interpolant evaluates a piecewise-linear function over sorted samples.
type interpolant struct {
	xs []float64
	ys []float64
}

func newInterpolant(xs, ys []float64) (*interpolant, error) {
	if len(xs) != len(ys) {
		return nil, faults.Wrap(faults.ErrDataConsistency, "frametable", "interpolate",
			fmt.Sprintf("sample length mismatch: %d times, %d values", len(xs), len(ys)), nil)
	}
	if len(xs) < 2 {
		return nil, faults.Wrap(faults.ErrDataConsistency, "frametable", "interpolate",
			fmt.Sprintf("need at least 2 samples, have %d", len(xs)), nil)
	}

	order := make([]int, len(xs))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return xs[order[a]] < xs[order[b]] })

	sortedX := make([]float64, len(xs))
	sortedY := make([]float64, len(ys))
	for i, j := range order {
		sortedX[i] = xs[j]
		sortedY[i] = ys[j]
	}
	for i := 1; i < len(sortedX); i++ {
		if sortedX[i] == sortedX[i-1] {
			return nil, faults.Wrap(faults.ErrDataConsistency, "frametable", "interpolate",
				fmt.Sprintf("duplicate sample time %v", sortedX[i]), nil)
		}
	}
	return &interpolant{xs: sortedX, ys: sortedY}, nil
}

// at evaluates the interpolant at x. Out-of-range evaluation is an error
// unless clamp is set, in which case the boundary value is returned.
func (ip *interpolant) at(x float64, clamp bool) (float64, error) {
	first, last := ip.xs[0], ip.xs[len(ip.xs)-1]
	if x < first || x > last {
		if !clamp {
			return 0, faults.Wrap(faults.ErrDataConsistency, "frametable", "interpolate",
				fmt.Sprintf("time %v outside sampled range [%v, %v]", x, first, last), nil)
		}
		if x < first {
			return ip.ys[0], nil
		}
		return ip.ys[len(ip.ys)-1], nil
	}

	i := sort.SearchFloat64s(ip.xs, x)
	if i < len(ip.xs) && ip.xs[i] == x {
		return ip.ys[i], nil
	}
	lo, hi := i-1, i
	fraction := (x - ip.xs[lo]) / (ip.xs[hi] - ip.xs[lo])
	return ip.ys[lo] + fraction*(ip.ys[hi]-ip.ys[lo]), nil
}
