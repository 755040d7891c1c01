package videoproc

// Shared test fixtures: deterministic synthetic images and fake ports so no
// test shells out to ffmpeg.

import (
	"context"
	"fmt"
	"image"
	"image/color"
)

// floatEquals reports approximate equality within tolerance.
func floatEquals(a, b, tolerance float64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff < tolerance
}

// solidImage returns a w x h image filled with one color.
func solidImage(w, h int, c color.RGBA) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// checkerboard returns a high-contrast w x h checkerboard with the given
// cell size. Strong edges everywhere: high sharpness, high contrast.
func checkerboard(w, h, cell int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if ((x/cell)+(y/cell))%2 == 0 {
				img.SetRGBA(x, y, color.RGBA{255, 255, 255, 255})
			} else {
				img.SetRGBA(x, y, color.RGBA{0, 0, 0, 255})
			}
		}
	}
	return img
}

// noiseImage returns a deterministic pseudo-random image seeded by seed.
// Wide histogram: high entropy, moderate contrast.
func noiseImage(w, h int, seed uint32) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	state := seed
	next := func() uint8 {
		// xorshift32
		state ^= state << 13
		state ^= state >> 17
		state ^= state << 5
		return uint8(state)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{next(), next(), next(), 255})
		}
	}
	return img
}

// fakeProber returns canned container metadata.
type fakeProber struct {
	info *VideoInfo
	err  error
}

func (p *fakeProber) Probe(ctx context.Context, videoPath string) (*VideoInfo, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.info, nil
}

// fakeReader serves synthetic frames from a generator function keyed by
// frame index. totalFrames bounds SampleInterval; failIndices simulates
// per-frame decode failures.
type fakeReader struct {
	frameAt     func(index int) image.Image
	totalFrames int
	failIndices map[int]bool
	err         error

	extractCalls int
}

func (r *fakeReader) ExtractIndexed(ctx context.Context, videoPath string, indices []int) (map[int]image.Image, error) {
	r.extractCalls++
	if r.err != nil {
		return nil, r.err
	}
	frames := make(map[int]image.Image, len(indices))
	for _, idx := range indices {
		if r.failIndices[idx] {
			continue
		}
		frames[idx] = r.frameAt(idx)
	}
	return frames, nil
}

func (r *fakeReader) SampleInterval(ctx context.Context, videoPath string, interval int) ([]Frame, error) {
	if r.err != nil {
		return nil, r.err
	}
	if interval <= 0 {
		interval = 1
	}
	var frames []Frame
	for idx := 0; idx < r.totalFrames; idx += interval {
		if r.failIndices[idx] {
			continue
		}
		frames = append(frames, Frame{Index: idx, Image: r.frameAt(idx)})
	}
	return frames, nil
}

// failingDetector always errors; used to force fallback behavior.
type failingDetector struct{}

func (d *failingDetector) Name() string { return "failing" }

func (d *failingDetector) Detect(ctx context.Context, videoPath string, info *VideoInfo, cfg VideoProcessingConfig) ([]SceneRange, error) {
	return nil, fmt.Errorf("simulated detector failure")
}

// threeSceneFrameAt generates a 30fps video whose dominant color switches
// sharply at t=3.0s (frame 90) and t=7.0s (frame 210): red, then green,
// then blue. Per-pixel noise keeps histograms within a scene similar but
// not identical.
func threeSceneFrameAt(index int) image.Image {
	var base color.RGBA
	switch {
	case index < 90:
		base = color.RGBA{200, 30, 30, 255}
	case index < 210:
		base = color.RGBA{30, 200, 30, 255}
	default:
		base = color.RGBA{30, 30, 200, 255}
	}

	img := image.NewRGBA(image.Rect(0, 0, 32, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			jitter := uint8((x + y + index) % 16)
			img.SetRGBA(x, y, color.RGBA{base.R + jitter/4, base.G + jitter/4, base.B + jitter/4, 255})
		}
	}
	return img
}
