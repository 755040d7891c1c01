package videoproc

// service.go is the pipeline orchestrator. ProcessVideo validates the
// input, probes the container, detects scenes, selects and scores key
// frames per scene, and assembles the immutable result. Only the fatal
// precondition errors cross this boundary; every mid-pipeline failure is
// isolated to its scene and absorbed into the result shape.

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog/log"
)

// VideoService runs the scene-detection and key-frame-extraction pipeline.
// Construct it once and reuse it; the only state shared across calls is the
// cumulative metrics accumulator, which is mutex-guarded.
type VideoService struct {
	caps    Capabilities
	prober  MediaProber
	reader  FrameReader
	metrics *ServiceMetrics
}

// NewVideoService builds a service against the system's detected
// capabilities, with the ffprobe prober and ffmpeg frame reader.
func NewVideoService() *VideoService {
	caps := DetectCapabilities()
	return NewVideoServiceWith(caps, NewFFprobeProber(caps), NewFFmpegFrameReader(caps), NewServiceMetrics())
}

// NewVideoServiceWith wires a service from explicit dependencies. Tests use
// this to inject fake probers, readers and capability sets.
func NewVideoServiceWith(caps Capabilities, prober MediaProber, reader FrameReader, metrics *ServiceMetrics) *VideoService {
	if metrics == nil {
		metrics = NewServiceMetrics()
	}
	return &VideoService{
		caps:    caps,
		prober:  prober,
		reader:  reader,
		metrics: metrics,
	}
}

// Metrics returns a snapshot of the cumulative service-level metrics.
func (s *VideoService) Metrics() MetricsSnapshot {
	return s.metrics.Snapshot()
}

// ProcessVideo runs the full pipeline on one video file.
//
// cfg == nil uses DefaultConfig. The processing timeout in the config is
// informational for this core: callers enforce deadlines through ctx.
//
// Error contract: ErrFFmpegUnavailable, ErrFileNotFound, ErrFileTooLarge,
// ErrUnsupportedFormat and ErrUnreadableVideo are the only returned errors;
// per-scene and per-frame failures degrade into empty lists plus warnings.
func (s *VideoService) ProcessVideo(ctx context.Context, videoPath string, cfg *VideoProcessingConfig) (*VideoProcessingResult, error) {
	start := time.Now()

	config := DefaultConfig()
	if cfg != nil {
		config = *cfg
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// Mandatory decoding capability is the one genuinely fatal precondition.
	if !s.caps.CanDecode() {
		return nil, ErrFFmpegUnavailable
	}

	// Fail fast on missing, unsupported, or oversized files before any
	// decoder is opened.
	fileSize, err := validateVideoFile(videoPath, config)
	if err != nil {
		return nil, err
	}

	info, err := s.prober.Probe(ctx, videoPath)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("path", videoPath).
		Str("detection", string(config.SceneDetectionMethod)).
		Str("extraction", string(config.FrameExtractionMethod)).
		Float64("duration_s", info.Duration).
		Msg("Starting video processing")

	detector := NewSceneDetector(config.SceneDetectionMethod, s.caps, s.reader)
	ranges, err := detector.Detect(ctx, videoPath, info, config)
	if err != nil {
		// The detector chain degrades internally; an error here means even
		// the full-span fallback was impossible.
		return nil, err
	}

	selector := NewFrameSelector(config.FrameExtractionMethod, s.reader)

	// Resolve the output directory once per run, so every saved frame from
	// every scene lands in the same place and the result can report it.
	if config.SaveFrames {
		if err := ensureOutputDir(&config); err != nil {
			log.Warn().Err(err).Msg("Failed to create output directory, frame saving disabled")
			config.SaveFrames = false
		}
	}

	scenes := make([]VideoScene, 0, len(ranges))
	totalKeyFrames := 0
	for _, r := range ranges {
		// Honor the video-wide frame budget.
		remaining := config.MaxFramesTotal - totalKeyFrames
		var keyFrames []KeyFrame
		if remaining > 0 {
			sceneCfg := config
			if sceneCfg.FramesPerScene > remaining {
				sceneCfg.FramesPerScene = remaining
			}
			selected, selErr := selector.Select(ctx, videoPath, r, info, sceneCfg)
			if selErr != nil {
				// Per-scene failure isolation: the scene survives with an
				// empty key-frame list instead of aborting the video.
				log.Warn().
					Err(selErr).
					Int("scene", r.SceneNumber).
					Msg("Frame extraction failed for scene, emitting empty scene")
			} else {
				keyFrames = selected
			}
		}

		profile := CharacterizeScene(keyFrames)

		scenes = append(scenes, VideoScene{
			SceneNumber:         r.SceneNumber,
			StartTime:           r.StartTime,
			EndTime:             r.EndTime,
			Duration:            r.Duration,
			StartFrame:          r.StartFrame,
			EndFrame:            r.EndFrame,
			KeyFrames:           keyFrames,
			SceneType:           profile.SceneType,
			MotionIntensity:     profile.MotionIntensity,
			ColorDiversity:      profile.ColorDiversity,
			BrightnessVariation: profile.BrightnessVariation,
			QualityScore:        profile.QualityScore,
			FrameCount:          r.EndFrame - r.StartFrame,
		})
		totalKeyFrames += len(keyFrames)
	}

	processingTime := time.Since(start)

	result := &VideoProcessingResult{
		Scenes:                scenes,
		TotalKeyFrames:        totalKeyFrames,
		VideoPath:             videoPath,
		VideoDuration:         info.Duration,
		VideoFormat:           info.Format,
		FrameRate:             info.FrameRate,
		TotalFrames:           info.TotalFrames,
		Width:                 info.Width,
		Height:                info.Height,
		FileSize:              fileSize,
		ProcessingTime:        processingTime,
		SceneDetectionMethod:  config.SceneDetectionMethod,
		FrameExtractionMethod: config.FrameExtractionMethod,
		Config:                config,
		OutputDir:             config.OutputDir,
		Metadata: map[string]string{
			"detector": detector.Name(),
			"selector": selector.Name(),
		},
	}

	s.computeQualityMetrics(result)
	s.computePerformanceMetrics(result)
	s.metrics.Record(result)

	log.Info().
		Int("scenes", len(scenes)).
		Int("key_frames", totalKeyFrames).
		Float64("overall_quality", result.OverallQuality).
		Dur("processing_time", processingTime).
		Msg("Video processing complete")

	return result, nil
}

// computeQualityMetrics fills in the three confidence scores.
//
// Scene-detection confidence rewards a reasonable scene count (scored as
// min(count/10, 1), so ~5-10 scenes score well) blended 50/50 with
// inter-scene duration consistency (1 - stddev/mean, clamped at zero).
func (s *VideoService) computeQualityMetrics(result *VideoProcessingResult) {
	sceneCount := len(result.Scenes)
	if sceneCount == 0 {
		return
	}

	countScore := math.Min(float64(sceneCount)/10.0, 1.0)

	durations := make([]float64, sceneCount)
	for i, scene := range result.Scenes {
		durations[i] = scene.Duration
	}
	mean, stddev := meanStddev(durations)
	consistency := 0.0
	if mean > 0 {
		consistency = math.Max(0.0, 1.0-stddev/mean)
	}
	result.SceneDetectionConfidence = clamp01(countScore*0.5 + consistency*0.5)

	var frameQualitySum float64
	var frameCount int
	var sceneQualitySum float64
	for _, scene := range result.Scenes {
		sceneQualitySum += scene.QualityScore
		for _, kf := range scene.KeyFrames {
			frameQualitySum += kf.QualityScore
			frameCount++
		}
	}
	if frameCount > 0 {
		result.FrameExtractionQuality = frameQualitySum / float64(frameCount)
	}
	meanSceneQuality := sceneQualitySum / float64(sceneCount)

	w := result.Config.QualityWeights
	result.OverallQuality = clamp01(
		result.SceneDetectionConfidence*w.Detection +
			result.FrameExtractionQuality*w.Frame +
			meanSceneQuality*w.Scene)
}

// computePerformanceMetrics fills in the speed ratio, analysis throughput,
// and the decoded-frame memory estimate.
func (s *VideoService) computePerformanceMetrics(result *VideoProcessingResult) {
	elapsed := result.ProcessingTime.Seconds()

	if result.VideoDuration > 0 {
		result.ProcessingSpeedRatio = elapsed / result.VideoDuration
	}
	if elapsed > 0 {
		result.FramesPerSecond = float64(result.TotalKeyFrames) / elapsed
	}

	// One decoded RGB frame at the source resolution; ~2.7 MB at 1280x720.
	perFrameMB := float64(result.Width*result.Height*3) / (1024 * 1024)
	result.MemoryUsageEstimateMB = float64(result.TotalKeyFrames) * perFrameMB
}
