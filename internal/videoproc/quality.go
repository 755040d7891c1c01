package videoproc

// quality.go implements per-frame signal metrics: sharpness (Laplacian
// variance), exposure, contrast, histogram entropy, and inter-frame motion.
// All scores are normalized to [0, 1].

import (
	"image"
	"math"

	"github.com/rs/zerolog/log"
)

const (
	// sharpnessDivisor normalizes raw Laplacian variance into [0, 1].
	// Empirical: well-focused handheld footage lands around 300-900.
	sharpnessDivisor = 1000.0

	// maxEntropyBits is the maximum Shannon entropy of an 8-bit histogram.
	maxEntropyBits = 8.0
)

// FrameMetrics holds the quality sub-scores for a single frame.
type FrameMetrics struct {
	Sharpness  float64 // Laplacian variance / 1000, clamped
	Brightness float64 // mean gray level / 255
	Contrast   float64 // gray level stddev / 255
	Histogram  float64 // Shannon entropy / 8 bits
	Overall    float64 // weighted combination
}

// AnalyzeFrame computes the four quality sub-scores and the combined score
// for one decoded frame. Pure function, no side effects; never fails on a
// well-formed image.
//
// The combined score rewards sharp, high-contrast frames with diverse
// histograms at mid-range brightness: over- and under-exposed frames are
// penalized through the |brightness - 0.5| term.
func AnalyzeFrame(img image.Image) FrameMetrics {
	gray, w, h := grayPlane(img)
	if w == 0 || h == 0 {
		return FrameMetrics{}
	}

	var m FrameMetrics
	m.Sharpness = clamp01(laplacianVariance(gray, w, h) / sharpnessDivisor)

	mean, stddev := meanStddev(gray)
	m.Brightness = mean / 255.0
	m.Contrast = stddev / 255.0
	m.Histogram = grayEntropy(gray) / maxEntropyBits

	exposure := 1.0 - math.Abs(m.Brightness-0.5)*2.0
	m.Overall = clamp01(m.Sharpness*0.3 + m.Contrast*0.3 + m.Histogram*0.2 + exposure*0.2)

	return m
}

// MotionScore computes the motion intensity between two consecutive frames
// as the mean absolute grayscale pixel difference, normalized to [0, 1].
//
// Motion is an optional quality signal, not a correctness-critical value:
// any internal failure (nil or mismatched inputs) logs a warning and
// returns 0.0 rather than propagating an error.
func MotionScore(prev, cur image.Image) float64 {
	if prev == nil || cur == nil {
		return 0.0
	}

	pGray, pw, ph := grayPlane(prev)
	cGray, cw, ch := grayPlane(cur)
	if pw != cw || ph != ch || pw == 0 || ph == 0 {
		log.Warn().
			Int("prev_width", pw).
			Int("prev_height", ph).
			Int("cur_width", cw).
			Int("cur_height", ch).
			Msg("Frame shape mismatch, motion score defaults to 0")
		return 0.0
	}

	var sum float64
	for i := range cGray {
		sum += math.Abs(cGray[i] - pGray[i])
	}

	return clamp01(sum / float64(len(cGray)) / 255.0)
}

// grayPlane converts an image to a flat grayscale plane using ITU-R BT.601
// luma weights, returning the plane and its dimensions.
func grayPlane(img image.Image) ([]float64, int, int) {
	if img == nil {
		return nil, 0, 0
	}
	bounds := img.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	if w <= 0 || h <= 0 {
		return nil, 0, 0
	}

	plane := make([]float64, w*h)
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			// 16-bit channels scaled to 8-bit luma
			plane[i] = (0.299*float64(r>>8) + 0.587*float64(g>>8) + 0.114*float64(b>>8))
			i++
		}
	}

	return plane, w, h
}

// laplacianVariance applies a 4-neighbor Laplacian edge filter to the
// grayscale plane and returns the variance of the response. High variance
// means strong edges, i.e. a sharp frame.
func laplacianVariance(gray []float64, w, h int) float64 {
	if w < 3 || h < 3 {
		return 0.0
	}

	responses := make([]float64, 0, (w-2)*(h-2))
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			center := gray[y*w+x]
			lap := gray[(y-1)*w+x] + gray[(y+1)*w+x] + gray[y*w+x-1] + gray[y*w+x+1] - 4*center
			responses = append(responses, lap)
		}
	}

	_, stddev := meanStddev(responses)
	return stddev * stddev
}

// grayEntropy computes the Shannon entropy (in bits) of a 256-bin grayscale
// histogram.
func grayEntropy(gray []float64) float64 {
	var hist [256]int
	for _, v := range gray {
		bin := int(v)
		if bin < 0 {
			bin = 0
		} else if bin > 255 {
			bin = 255
		}
		hist[bin]++
	}

	total := float64(len(gray))
	if total == 0 {
		return 0.0
	}

	var entropy float64
	for _, count := range hist {
		if count == 0 {
			continue
		}
		p := float64(count) / total
		entropy -= p * math.Log2(p)
	}

	return entropy
}

func meanStddev(values []float64) (mean, stddev float64) {
	n := float64(len(values))
	if n == 0 {
		return 0, 0
	}

	for _, v := range values {
		mean += v
	}
	mean /= n

	var variance float64
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	variance /= n

	return mean, math.Sqrt(variance)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
