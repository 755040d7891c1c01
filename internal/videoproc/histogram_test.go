package videoproc

import (
	"image/color"
	"testing"
)

func TestComputeHistogramNormalized(t *testing.T) {
	hist := ComputeHistogram(noiseImage(32, 32, 99))

	if hist.TotalPixels != 32*32 {
		t.Errorf("TotalPixels = %d, want %d", hist.TotalPixels, 32*32)
	}

	var sum float64
	for _, bin := range hist.Bins {
		if bin < 0 {
			t.Fatalf("negative bin value %v", bin)
		}
		sum += bin
	}
	if !floatEquals(sum, 1.0, 0.0001) {
		t.Errorf("normalized bins sum to %v, want 1.0", sum)
	}
}

func TestComputeHistogramSingleColor(t *testing.T) {
	hist := ComputeHistogram(solidImage(16, 16, color.RGBA{200, 30, 30, 255}))

	nonZero := 0
	for _, bin := range hist.Bins {
		if bin > 0 {
			nonZero++
		}
	}
	if nonZero != 1 {
		t.Errorf("solid color should occupy exactly one bin, got %d", nonZero)
	}
}

func TestCompareHistograms(t *testing.T) {
	red := ComputeHistogram(solidImage(16, 16, color.RGBA{200, 30, 30, 255}))
	redAgain := ComputeHistogram(solidImage(16, 16, color.RGBA{200, 30, 30, 255}))
	blue := ComputeHistogram(solidImage(16, 16, color.RGBA{30, 30, 200, 255}))
	noise := ComputeHistogram(noiseImage(16, 16, 3))

	tests := []struct {
		name string
		h1   *ColorHistogram
		h2   *ColorHistogram
		want func(float64) bool
		desc string
	}{
		{
			name: "identical histograms",
			h1:   red, h2: redAgain,
			want: func(c float64) bool { return floatEquals(c, 1.0, 0.0001) },
			desc: "correlation 1.0",
		},
		{
			name: "different dominant colors",
			h1:   red, h2: blue,
			want: func(c float64) bool { return c < 0.5 },
			desc: "low correlation",
		},
		{
			name: "solid vs noise",
			h1:   red, h2: noise,
			want: func(c float64) bool { return c < 0.5 },
			desc: "low correlation",
		},
		{
			name: "self comparison",
			h1:   noise, h2: noise,
			want: func(c float64) bool { return floatEquals(c, 1.0, 0.0001) },
			desc: "correlation 1.0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CompareHistograms(tt.h1, tt.h2)
			if got < -1.0001 || got > 1.0001 {
				t.Fatalf("correlation %v out of [-1, 1]", got)
			}
			if !tt.want(got) {
				t.Errorf("correlation = %v, want %s", got, tt.desc)
			}
		})
	}
}

func TestCompareHistogramsUniform(t *testing.T) {
	// Two empty (all-zero) histograms are degenerate uniform distributions;
	// treated as identical rather than dividing by zero.
	h1 := &ColorHistogram{}
	h2 := &ColorHistogram{}

	if got := CompareHistograms(h1, h2); !floatEquals(got, 1.0, 0.0001) {
		t.Errorf("uniform histograms correlation = %v, want 1.0", got)
	}
}
