package videoproc

// selector.go chooses the representative key frames for one detected scene.
// UniformSelector spaces picks evenly across the scene's frame span;
// AdaptiveSelector over-samples candidates, scores them on quality, motion
// and histogram diversity, and keeps the top ranked ones in temporal order.

import (
	"context"
	"fmt"
	"image"
	"sort"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// adaptiveCandidateFactor is how many candidates the adaptive selector
// decodes per requested key frame.
const adaptiveCandidateFactor = 3

// FrameSelector selects key frames for one scene. The returned list is
// ordered by ascending frame index, holds at most cfg.FramesPerScene
// entries, and contains only frames at or above cfg.MinFrameQuality.
type FrameSelector interface {
	Name() string
	Select(ctx context.Context, videoPath string, scene SceneRange, info *VideoInfo, cfg VideoProcessingConfig) ([]KeyFrame, error)
}

// NewFrameSelector maps the configured extraction method to a selector.
// keyframe, histogram and motion currently resolve to uniform selection,
// as does any unrecognized method.
func NewFrameSelector(method FrameExtractionMethod, reader FrameReader) FrameSelector {
	switch method {
	case FrameExtractionAdaptive:
		return &AdaptiveSelector{reader: reader}
	case FrameExtractionUniform, FrameExtractionKeyframe, FrameExtractionHistogram, FrameExtractionMotion:
		return &UniformSelector{reader: reader}
	default:
		log.Warn().Str("method", string(method)).Msg("Unknown frame extraction method, using uniform selector")
		return &UniformSelector{reader: reader}
	}
}

// UniformSelector picks frames evenly spaced across [StartFrame, EndFrame).
type UniformSelector struct {
	reader FrameReader
}

func (s *UniformSelector) Name() string { return "uniform" }

func (s *UniformSelector) Select(ctx context.Context, videoPath string, scene SceneRange, info *VideoInfo, cfg VideoProcessingConfig) ([]KeyFrame, error) {
	indices := uniformIndices(scene.StartFrame, scene.EndFrame, cfg.FramesPerScene)

	frames, err := s.reader.ExtractIndexed(ctx, videoPath, indices)
	if err != nil {
		return nil, fmt.Errorf("uniform frame extraction failed: %w", err)
	}

	fps, _ := sanitizeTiming(info)

	var keyFrames []KeyFrame
	var prev image.Image
	for _, idx := range indices {
		img, ok := frames[idx]
		if !ok {
			// Decode failure for this candidate was already logged by the reader.
			continue
		}

		metrics := AnalyzeFrame(img)
		motion := MotionScore(prev, img)
		prev = img

		if metrics.Overall < cfg.MinFrameQuality {
			log.Debug().
				Int("frame", idx).
				Float64("quality", metrics.Overall).
				Float64("floor", cfg.MinFrameQuality).
				Msg("Frame below quality floor, excluded")
			continue
		}

		kf := newKeyFrame(idx, img, metrics, motion, fps)
		if cfg.SaveFrames {
			if path, err := saveKeyFrame(img, scene.SceneNumber, idx, cfg); err != nil {
				log.Warn().Err(err).Int("frame", idx).Msg("Failed to save key frame image")
			} else {
				kf.FramePath = path
			}
		}
		keyFrames = append(keyFrames, kf)
	}

	return keyFrames, nil
}

// AdaptiveSelector decodes up to 3x the requested frames as candidates,
// scores each on quality, motion relative to the previous candidate, and
// histogram diversity, then keeps the top FramesPerScene by combined score.
// The final list is re-sorted by frame index so temporal order is always
// preserved in output.
type AdaptiveSelector struct {
	reader FrameReader
}

func (s *AdaptiveSelector) Name() string { return "adaptive" }

// scoredCandidate pairs a decoded candidate with its combined ranking score.
type scoredCandidate struct {
	index    int
	image    image.Image
	metrics  FrameMetrics
	motion   float64
	combined float64
}

func (s *AdaptiveSelector) Select(ctx context.Context, videoPath string, scene SceneRange, info *VideoInfo, cfg VideoProcessingConfig) ([]KeyFrame, error) {
	candidateCount := cfg.FramesPerScene * adaptiveCandidateFactor
	indices := uniformIndices(scene.StartFrame, scene.EndFrame, candidateCount)

	frames, err := s.reader.ExtractIndexed(ctx, videoPath, indices)
	if err != nil {
		return nil, fmt.Errorf("adaptive frame extraction failed: %w", err)
	}

	fps, _ := sanitizeTiming(info)
	weights := cfg.AdaptiveWeights

	var candidates []scoredCandidate
	var prev image.Image
	for _, idx := range indices {
		img, ok := frames[idx]
		if !ok {
			continue
		}

		metrics := AnalyzeFrame(img)
		motion := MotionScore(prev, img)
		prev = img

		combined := metrics.Overall*weights.Quality + motion*weights.Motion + metrics.Histogram*weights.Histogram
		candidates = append(candidates, scoredCandidate{
			index:    idx,
			image:    img,
			metrics:  metrics,
			motion:   motion,
			combined: combined,
		})
	}

	// Rank by combined score, keep the top K, then restore temporal order.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].combined > candidates[j].combined
	})
	if len(candidates) > cfg.FramesPerScene {
		candidates = candidates[:cfg.FramesPerScene]
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].index < candidates[j].index
	})

	var keyFrames []KeyFrame
	for _, c := range candidates {
		if c.metrics.Overall < cfg.MinFrameQuality {
			log.Debug().
				Int("frame", c.index).
				Float64("quality", c.metrics.Overall).
				Msg("Adaptive candidate below quality floor, excluded")
			continue
		}

		kf := newKeyFrame(c.index, c.image, c.metrics, c.motion, fps)
		if cfg.SaveFrames {
			if path, err := saveKeyFrame(c.image, scene.SceneNumber, c.index, cfg); err != nil {
				log.Warn().Err(err).Int("frame", c.index).Msg("Failed to save key frame image")
			} else {
				kf.FramePath = path
			}
		}
		keyFrames = append(keyFrames, kf)
	}

	return keyFrames, nil
}

// uniformIndices returns count frame indices evenly spaced across the
// half-open span [start, end). Spacing divides span-1 rather than span so
// the last pick is the final frame inside the span; dividing the raw span
// would place it at end, which is excluded. If the span holds fewer frames
// than requested, every frame in the span is returned instead.
func uniformIndices(start, end, count int) []int {
	span := end - start
	if span <= 0 {
		return nil
	}
	if count <= 0 {
		count = 1
	}

	if span <= count {
		indices := make([]int, span)
		for i := range indices {
			indices[i] = start + i
		}
		return indices
	}

	if count == 1 {
		return []int{start}
	}

	interval := float64(span-1) / float64(count-1)
	indices := make([]int, 0, count)
	seen := make(map[int]bool, count)
	for i := 0; i < count; i++ {
		idx := start + int(float64(i)*interval)
		if idx >= end {
			idx = end - 1
		}
		if !seen[idx] {
			seen[idx] = true
			indices = append(indices, idx)
		}
	}
	return indices
}

// newKeyFrame assembles the immutable KeyFrame record for a selected frame.
func newKeyFrame(index int, img image.Image, metrics FrameMetrics, motion, fps float64) KeyFrame {
	bounds := img.Bounds()
	return KeyFrame{
		ID:              uuid.NewString(),
		FrameNumber:     index,
		Timestamp:       float64(index) / fps,
		Width:           bounds.Dx(),
		Height:          bounds.Dy(),
		Channels:        channelCount(img),
		SharpnessScore:  metrics.Sharpness,
		BrightnessScore: metrics.Brightness,
		ContrastScore:   metrics.Contrast,
		HistogramScore:  metrics.Histogram,
		QualityScore:    metrics.Overall,
		MotionScore:     motion,
		IsKeyframe:      true,
	}
}

// channelCount reports the pixel channel count of the decoded frame.
func channelCount(img image.Image) int {
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		return 1
	case *image.NRGBA, *image.RGBA, *image.NRGBA64, *image.RGBA64:
		return 4
	default:
		// YCbCr (the JPEG decoder's native type) and everything else.
		return 3
	}
}
