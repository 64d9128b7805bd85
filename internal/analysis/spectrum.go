package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/san-kum/bouncesim/internal/dynamo"
)

// PowerSpectrum returns the magnitude of the first half of the real FFT of
// data, after removing the mean and applying a Hann window.
func PowerSpectrum(data []float64) []float64 {
	n := len(data)
	if n < 2 {
		return nil
	}

	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(n)

	windowed := make([]float64, n)
	for i, v := range data {
		w := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
		windowed[i] = (v - mean) * w
	}

	spectrum := fft.FFTReal(windowed)
	ps := make([]float64, n/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// DominantFrequency is the frequency, in cycles per unit time, of the
// strongest non-DC bin. Samples are dt apart. It returns 0 when the series
// is too short or flat.
func DominantFrequency(data []float64, dt float64) float64 {
	if dt <= 0 {
		return 0
	}
	ps := PowerSpectrum(data)
	if len(ps) < 2 {
		return 0
	}

	best, bestMag := 0, 0.0
	for k := 1; k < len(ps); k++ {
		if ps[k] > bestMag {
			best, bestMag = k, ps[k]
		}
	}
	if best == 0 || bestMag < 1e-12 {
		return 0
	}
	return float64(best) / (float64(len(data)) * dt)
}

// HeightSeries extracts the height above the floor of one body from
// recorded frames. Frames where the body is missing are skipped.
func HeightSeries(frames [][]dynamo.Body, w dynamo.World, body int) []float64 {
	out := make([]float64, 0, len(frames))
	for _, frame := range frames {
		if body < 0 || body >= len(frame) {
			continue
		}
		out = append(out, w.Height-frame[body].Pos.Y)
	}
	return out
}
