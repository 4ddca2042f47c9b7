package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// FFT returns the spectrum of data zero-padded to the next power of two.
func FFT(data []float64) []complex128 {
	buf := make([]float64, nextPow2(len(data)))
	copy(buf, data)
	return fft.FFTReal(buf)
}

// PowerSpectrum returns the magnitudes of the non-negative frequency bins.
func PowerSpectrum(data []float64) []float64 {
	f := FFT(data)
	ps := make([]float64, len(f)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(f[i])
	}
	return ps
}

// DominantFrequency returns the strongest non-zero frequency in Hz of
// samples taken every dt seconds. The mean is removed first so the
// resting offset does not count. Zero means no oscillation was found.
func DominantFrequency(samples []float64, dt float64) float64 {
	if len(samples) < 4 || dt <= 0 {
		return 0
	}
	mean := 0.0
	for _, v := range samples {
		mean += v
	}
	mean /= float64(len(samples))

	centered := make([]float64, len(samples))
	for i, v := range samples {
		centered[i] = v - mean
	}

	ps := PowerSpectrum(centered)
	best, bin := 0.0, 0
	for i := 1; i < len(ps); i++ {
		if ps[i] > best {
			best, bin = ps[i], i
		}
	}
	if bin == 0 || best < 1e-9 {
		return 0
	}
	n := nextPow2(len(samples))
	return float64(bin) / (float64(n) * dt)
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
