package videoproc

// histogram.go provides color histogram computation and comparison for the
// histogram-correlation scene detector.

import (
	"image"
	"math"
)

// HistogramBins is the number of bins per RGB channel.
// 32 bins provides enough granularity for scene change detection
// while being robust to noise and minor lighting variations.
const HistogramBins = 32

// ColorHistogram is a 3D RGB color histogram with HistogramBins bins per
// channel, stored flat for cache efficiency: index = r*B*B + g*B + b.
type ColorHistogram struct {
	Bins        [HistogramBins * HistogramBins * HistogramBins]float64
	TotalPixels int
}

// ComputeHistogram computes a normalized 3D RGB color histogram from an
// in-memory image in a single pass.
func ComputeHistogram(img image.Image) *ColorHistogram {
	hist := &ColorHistogram{}
	bounds := img.Bounds()

	binSize := 256 / HistogramBins

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			// RGBA() returns 16-bit values; scale to 8-bit
			r8 := int(r >> 8)
			g8 := int(g >> 8)
			b8 := int(b >> 8)

			rBin := r8 / binSize
			gBin := g8 / binSize
			bBin := b8 / binSize

			if rBin >= HistogramBins {
				rBin = HistogramBins - 1
			}
			if gBin >= HistogramBins {
				gBin = HistogramBins - 1
			}
			if bBin >= HistogramBins {
				bBin = HistogramBins - 1
			}

			idx := rBin*HistogramBins*HistogramBins + gBin*HistogramBins + bBin
			hist.Bins[idx]++
			hist.TotalPixels++
		}
	}

	if hist.TotalPixels > 0 {
		total := float64(hist.TotalPixels)
		for i := range hist.Bins {
			hist.Bins[i] /= total
		}
	}

	return hist
}

// CompareHistograms computes the Pearson correlation coefficient between two
// color histograms. Returns a value in [-1, 1]:
//   - 1.0: identical histograms
//   - 0.0: uncorrelated
//   - -1.0: inverse histograms
//
// This is equivalent to OpenCV's HISTCMP_CORREL method.
func CompareHistograms(h1, h2 *ColorHistogram) float64 {
	n := len(h1.Bins)

	var mean1, mean2 float64
	for i := 0; i < n; i++ {
		mean1 += h1.Bins[i]
		mean2 += h2.Bins[i]
	}
	mean1 /= float64(n)
	mean2 /= float64(n)

	var numerator, denom1, denom2 float64
	for i := 0; i < n; i++ {
		d1 := h1.Bins[i] - mean1
		d2 := h2.Bins[i] - mean2
		numerator += d1 * d2
		denom1 += d1 * d1
		denom2 += d2 * d2
	}

	denom := math.Sqrt(denom1 * denom2)
	if denom < 1e-10 {
		// Both histograms are essentially uniform — consider identical
		return 1.0
	}

	return numerator / denom
}
