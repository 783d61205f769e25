package scene

import "math/rand"

// samples draws n uniform values in [Min, Max) from a seeded source, so the
// same scene file always produces the same raster.
func (r RandomSpec) samples(n int) []float64 {
	lo, hi := r.Min, r.Max
	if hi <= lo {
		hi = lo + 1
	}

	src := rand.New(rand.NewSource(r.Seed))
	out := make([]float64, n)
	for i := range out {
		out[i] = lo + src.Float64()*(hi-lo)
	}

	return out
}
