package videoproc

// detector.go partitions a video's frame timeline into contiguous scenes.
// Two interchangeable backends sit behind the SceneDetector interface: a
// content-aware detector that delegates boundary scoring to ffmpeg's scene
// filter, and a pure-Go histogram-correlation detector that is always
// available. A fallback chain tries them in order, so a failing or missing
// content backend degrades transparently to the histogram path.

import (
	"context"
	"fmt"
	"math"
	"os/exec"
	"regexp"
	"strconv"

	"github.com/rs/zerolog/log"
)

// Defaults applied when the probed metadata is unusable.
const (
	defaultFrameRate   = 30.0
	defaultTotalFrames = 300
)

// SceneRange is one detected scene: a half-open frame span with derived
// timing. Ranges are ordered, non-overlapping, and 1-based renumbered after
// the minimum-duration filter.
type SceneRange struct {
	SceneNumber int
	StartTime   float64
	EndTime     float64
	Duration    float64
	StartFrame  int
	EndFrame    int
}

// SceneDetector partitions one video into scenes. Implementations hold no
// state across calls.
type SceneDetector interface {
	Name() string
	Detect(ctx context.Context, videoPath string, info *VideoInfo, cfg VideoProcessingConfig) ([]SceneRange, error)
}

// NewSceneDetector builds the detector chain for the configured method.
// Every chain terminates in the histogram detector; the content-aware
// backend is prepended when the method asks for it and the capability is
// present.
func NewSceneDetector(method SceneDetectionMethod, caps Capabilities, reader FrameReader) SceneDetector {
	histogram := &HistogramDetector{reader: reader}

	switch method {
	case SceneDetectionHistogram:
		return &detectorChain{detectors: []SceneDetector{histogram}}
	case SceneDetectionContent, SceneDetectionThreshold, SceneDetectionAdaptive:
		if caps.CanContentDetect() {
			content := &ContentDetector{caps: caps}
			return &detectorChain{detectors: []SceneDetector{content, histogram}}
		}
		log.Warn().
			Str("method", string(method)).
			Msg("Content-aware scene detection unavailable, using histogram detector")
		return &detectorChain{detectors: []SceneDetector{histogram}}
	default:
		log.Warn().Str("method", string(method)).Msg("Unknown scene detection method, using histogram detector")
		return &detectorChain{detectors: []SceneDetector{histogram}}
	}
}

// detectorChain tries each detector in order. A detector error is never
// propagated past a remaining entry: it is logged and the next detector
// runs. If every entry fails, the chain degrades to a single full-span
// scene rather than failing the whole video.
type detectorChain struct {
	detectors []SceneDetector
}

func (c *detectorChain) Name() string {
	if len(c.detectors) == 0 {
		return "empty"
	}
	return c.detectors[0].Name()
}

func (c *detectorChain) Detect(ctx context.Context, videoPath string, info *VideoInfo, cfg VideoProcessingConfig) ([]SceneRange, error) {
	for i, det := range c.detectors {
		scenes, err := det.Detect(ctx, videoPath, info, cfg)
		if err == nil {
			return scenes, nil
		}
		if i < len(c.detectors)-1 {
			log.Warn().
				Err(err).
				Str("detector", det.Name()).
				Str("next", c.detectors[i+1].Name()).
				Msg("Scene detector failed, falling back")
			continue
		}
		log.Warn().
			Err(err).
			Str("detector", det.Name()).
			Msg("All scene detectors failed, using full-span scene")
	}

	fps, totalFrames := sanitizeTiming(info)
	return buildScenes([]int{0, totalFrames}, fps, cfg.MinSceneLength), nil
}

// ContentDetector delegates boundary detection to ffmpeg's content-change
// scoring: select='gt(scene,t)' emits a frame exactly where the inter-frame
// difference score crosses the threshold.
type ContentDetector struct {
	caps Capabilities
}

func (d *ContentDetector) Name() string { return "content" }

// ptsTimeRegex pulls boundary timestamps out of showinfo filter output.
var ptsTimeRegex = regexp.MustCompile(`pts_time:([0-9]+(?:\.[0-9]+)?)`)

func (d *ContentDetector) Detect(ctx context.Context, videoPath string, info *VideoInfo, cfg VideoProcessingConfig) ([]SceneRange, error) {
	if !d.caps.CanContentDetect() {
		return nil, ErrFFmpegUnavailable
	}

	fps, totalFrames := sanitizeTiming(info)

	// SceneThreshold is 0-100; ffmpeg's scene score is 0-1.
	sceneScore := cfg.SceneThreshold / 100.0

	cmd := exec.CommandContext(ctx, d.caps.FFmpegPath,
		"-i", videoPath,
		"-vf", fmt.Sprintf("select='gt(scene,%.4f)',showinfo", sceneScore),
		"-f", "null", "-",
	)
	// showinfo reports on stderr together with the rest of ffmpeg's output.
	output, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("content scene detection failed: %w", err)
	}

	boundaries := []int{0}
	for _, match := range ptsTimeRegex.FindAllStringSubmatch(string(output), -1) {
		ts, err := strconv.ParseFloat(match[1], 64)
		if err != nil {
			continue
		}
		frame := int(ts * fps)
		if frame > boundaries[len(boundaries)-1] && frame < totalFrames {
			boundaries = append(boundaries, frame)
		}
	}
	boundaries = append(boundaries, totalFrames)

	scenes := buildScenes(boundaries, fps, cfg.MinSceneLength)

	log.Info().
		Int("boundaries", len(boundaries)).
		Int("scenes", len(scenes)).
		Float64("scene_score", sceneScore).
		Msg("Content-aware scene detection complete")

	return scenes, nil
}

// HistogramDetector is the basic, always-available backend: it samples one
// frame per second, computes a normalized 3-channel color histogram per
// sample, and marks a scene boundary wherever the correlation between
// consecutive samples drops below 1 - SceneThreshold/100.
type HistogramDetector struct {
	reader FrameReader
}

func (d *HistogramDetector) Name() string { return "histogram" }

func (d *HistogramDetector) Detect(ctx context.Context, videoPath string, info *VideoInfo, cfg VideoProcessingConfig) ([]SceneRange, error) {
	fps, totalFrames := sanitizeTiming(info)

	// One sample per second of footage.
	interval := int(math.Round(fps))
	if interval < 1 {
		interval = 1
	}

	samples, err := d.reader.SampleInterval(ctx, videoPath, interval)
	if err != nil {
		return nil, fmt.Errorf("histogram scene detection failed: %w", err)
	}

	correlationCutoff := 1.0 - cfg.SceneThreshold/100.0

	boundaries := []int{0}
	var prevHist *ColorHistogram
	for _, sample := range samples {
		hist := ComputeHistogram(sample.Image)
		if prevHist != nil {
			correlation := CompareHistograms(prevHist, hist)
			if correlation < correlationCutoff {
				log.Debug().
					Int("frame", sample.Index).
					Float64("correlation", correlation).
					Msg("Scene change detected")
				if sample.Index > boundaries[len(boundaries)-1] && sample.Index < totalFrames {
					boundaries = append(boundaries, sample.Index)
				}
			}
		}
		prevHist = hist
	}
	boundaries = append(boundaries, totalFrames)

	scenes := buildScenes(boundaries, fps, cfg.MinSceneLength)

	log.Info().
		Int("samples", len(samples)).
		Int("scenes", len(scenes)).
		Float64("correlation_cutoff", correlationCutoff).
		Msg("Histogram scene detection complete")

	return scenes, nil
}

// buildScenes converts a monotonic boundary list (seeded with frame 0 and
// terminated with the final frame) into scene records, discarding scenes
// shorter than minSceneLength and renumbering the survivors sequentially.
func buildScenes(boundaries []int, fps, minSceneLength float64) []SceneRange {
	var scenes []SceneRange
	for i := 0; i+1 < len(boundaries); i++ {
		startFrame := boundaries[i]
		endFrame := boundaries[i+1]
		if endFrame <= startFrame {
			continue
		}

		startTime := float64(startFrame) / fps
		endTime := float64(endFrame) / fps
		duration := endTime - startTime
		if duration < minSceneLength {
			continue
		}

		scenes = append(scenes, SceneRange{
			SceneNumber: len(scenes) + 1,
			StartTime:   startTime,
			EndTime:     endTime,
			Duration:    duration,
			StartFrame:  startFrame,
			EndFrame:    endFrame,
		})
	}
	return scenes
}

// sanitizeTiming guards the frame math against zero or negative probe
// values so nothing downstream divides by zero.
func sanitizeTiming(info *VideoInfo) (fps float64, totalFrames int) {
	fps = defaultFrameRate
	totalFrames = defaultTotalFrames
	if info != nil {
		if info.FrameRate > 0 {
			fps = info.FrameRate
		}
		if info.TotalFrames > 0 {
			totalFrames = info.TotalFrames
		}
	}
	return fps, totalFrames
}
