package timeline

import (
	"math"
	"strconv"
)

// ticks returns round values in [lo, hi], about five to ten of them.
func ticks(lo, hi float64) []float64 {
	step := niceStep((hi - lo) / 6)
	var out []float64
	for k := math.Ceil(lo / step); k*step <= hi+step*1e-9; k++ {
		v := k * step
		if v == 0 {
			v = 0 // drop the sign of -0
		}
		out = append(out, v)
	}
	return out
}

// niceStep rounds raw up to 1, 2, 2.5 or 5 times a power of ten.
func niceStep(raw float64) float64 {
	if raw <= 0 {
		return 1
	}
	exp := math.Pow(10, math.Floor(math.Log10(raw)))
	for _, m := range []float64{1, 2, 2.5, 5, 10} {
		if raw <= m*exp {
			return m * exp
		}
	}
	return 10 * exp
}

func formatTick(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
