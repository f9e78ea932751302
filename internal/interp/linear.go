package interp

import "sort"

// ResampleLinear interpolates (srcWave, srcFlux) onto dstWave linearly.
// Destination points beyond the source range take the nearest endpoint
// value; callers that must reject out-of-range targets check coverage
// before resampling.
func ResampleLinear(srcWave, srcFlux, dstWave []float64) []float64 {
	out := make([]float64, len(dstWave))
	for i, x := range dstWave {
		out[i] = linearAt(srcWave, srcFlux, x)
	}
	return out
}

func linearAt(wave, flux []float64, x float64) float64 {
	n := len(wave)
	if x <= wave[0] {
		return flux[0]
	}
	if x >= wave[n-1] {
		return flux[n-1]
	}
	idx := sort.SearchFloat64s(wave, x)
	if wave[idx] == x {
		return flux[idx]
	}
	x0, x1 := wave[idx-1], wave[idx]
	y0, y1 := flux[idx-1], flux[idx]
	return y0 + (y1-y0)*(x-x0)/(x1-x0)
}
