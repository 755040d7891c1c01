package videoproc

import (
	"fmt"
	"time"
)

// SceneDetectionMethod selects the scene boundary detection algorithm.
type SceneDetectionMethod string

const (
	// SceneDetectionContent uses ffmpeg's content-aware scene scoring.
	SceneDetectionContent SceneDetectionMethod = "content"

	// SceneDetectionThreshold is content-aware detection with a caller-tuned
	// sensitivity threshold. Same backend as content.
	SceneDetectionThreshold SceneDetectionMethod = "threshold"

	// SceneDetectionAdaptive picks the best available backend at runtime.
	SceneDetectionAdaptive SceneDetectionMethod = "adaptive"

	// SceneDetectionHistogram is the pure-Go histogram correlation detector.
	// Always available; also the terminal fallback for every other method.
	SceneDetectionHistogram SceneDetectionMethod = "histogram"
)

// FrameExtractionMethod selects the key-frame selection strategy within a scene.
type FrameExtractionMethod string

const (
	// FrameExtractionUniform spaces key frames evenly across the scene.
	FrameExtractionUniform FrameExtractionMethod = "uniform"

	// FrameExtractionAdaptive scores candidate frames on quality, motion and
	// histogram diversity and keeps the top ranked ones.
	FrameExtractionAdaptive FrameExtractionMethod = "adaptive"

	// FrameExtractionKeyframe, FrameExtractionHistogram and
	// FrameExtractionMotion are accepted for API compatibility and currently
	// resolve to uniform selection.
	FrameExtractionKeyframe  FrameExtractionMethod = "keyframe"
	FrameExtractionHistogram FrameExtractionMethod = "histogram"
	FrameExtractionMotion    FrameExtractionMethod = "motion"
)

// Output formats for saved key frames.
const (
	OutputFormatJPEG = "jpeg"
	OutputFormatPNG  = "png"
	OutputFormatWebP = "webp"
)

// AdaptiveScoreWeights are the weights for the adaptive selector's combined
// candidate score. Empirically tuned defaults; callers may retune them
// against their own footage.
type AdaptiveScoreWeights struct {
	Quality   float64 `json:"quality"`
	Motion    float64 `json:"motion"`
	Histogram float64 `json:"histogram"`
}

// OverallQualityWeights combine the three video-level confidence scores into
// the overall quality score.
type OverallQualityWeights struct {
	Detection float64 `json:"detection"`
	Frame     float64 `json:"frame"`
	Scene     float64 `json:"scene"`
}

// VideoProcessingConfig carries every knob for one ProcessVideo call.
// The caller supplies it fully formed; the core does no environment or file
// based configuration loading.
//
// SceneThreshold is a sensitivity on a 0-100 scale, used consistently by
// both detector backends: the histogram detector marks a boundary when the
// correlation between consecutive sampled frames drops below
// 1 - SceneThreshold/100, and the content detector maps the same value to
// ffmpeg's 0-1 scene score as SceneThreshold/100.
type VideoProcessingConfig struct {
	SceneDetectionMethod  SceneDetectionMethod  `json:"scene_detection_method"`
	FrameExtractionMethod FrameExtractionMethod `json:"frame_extraction_method"`

	FramesPerScene int     `json:"frames_per_scene"`
	MaxFramesTotal int     `json:"max_frames_total"`
	MinSceneLength float64 `json:"min_scene_length"` // seconds
	SceneThreshold float64 `json:"scene_threshold"`  // 0-100 sensitivity

	MinFrameQuality float64 `json:"min_frame_quality"`
	TargetWidth     int     `json:"target_width"`
	TargetHeight    int     `json:"target_height"`

	MaxFileSizeGB     float64       `json:"max_file_size_gb"`
	ProcessingTimeout time.Duration `json:"processing_timeout"`

	SaveFrames    bool   `json:"save_frames"`
	OutputDir     string `json:"output_dir,omitempty"`
	OutputFormat  string `json:"output_format"`
	OutputQuality int    `json:"output_quality"`

	AdaptiveWeights AdaptiveScoreWeights  `json:"adaptive_weights"`
	QualityWeights  OverallQualityWeights `json:"quality_weights"`
}

// DefaultConfig returns the configuration used when the caller passes none.
func DefaultConfig() VideoProcessingConfig {
	return VideoProcessingConfig{
		SceneDetectionMethod:  SceneDetectionContent,
		FrameExtractionMethod: FrameExtractionUniform,
		FramesPerScene:        3,
		MaxFramesTotal:        50,
		MinSceneLength:        2.0,
		SceneThreshold:        30.0,
		MinFrameQuality:       0.3,
		TargetWidth:           1280,
		TargetHeight:          720,
		MaxFileSizeGB:         2.0,
		ProcessingTimeout:     5 * time.Minute,
		SaveFrames:            false,
		OutputFormat:          OutputFormatJPEG,
		OutputQuality:         85,
		AdaptiveWeights:       AdaptiveScoreWeights{Quality: 0.4, Motion: 0.3, Histogram: 0.3},
		QualityWeights:        OverallQualityWeights{Detection: 0.3, Frame: 0.4, Scene: 0.3},
	}
}

// Validate checks the numeric bounds the pipeline depends on.
func (c *VideoProcessingConfig) Validate() error {
	if c.FramesPerScene < 1 {
		return fmt.Errorf("frames_per_scene must be >= 1, got %d", c.FramesPerScene)
	}
	if c.MaxFramesTotal < 1 {
		return fmt.Errorf("max_frames_total must be positive, got %d", c.MaxFramesTotal)
	}
	if c.MinSceneLength <= 0 {
		return fmt.Errorf("min_scene_length must be positive, got %v", c.MinSceneLength)
	}
	if c.SceneThreshold <= 0 || c.SceneThreshold > 100 {
		return fmt.Errorf("scene_threshold must be in (0, 100], got %v", c.SceneThreshold)
	}
	if c.MinFrameQuality < 0 || c.MinFrameQuality > 1 {
		return fmt.Errorf("min_frame_quality must be in [0, 1], got %v", c.MinFrameQuality)
	}
	if c.TargetWidth <= 0 || c.TargetHeight <= 0 {
		return fmt.Errorf("target dimensions must be positive, got %dx%d", c.TargetWidth, c.TargetHeight)
	}
	if c.MaxFileSizeGB <= 0 {
		return fmt.Errorf("max_file_size_gb must be positive, got %v", c.MaxFileSizeGB)
	}
	if c.ProcessingTimeout <= 0 {
		return fmt.Errorf("processing_timeout must be positive, got %v", c.ProcessingTimeout)
	}
	switch c.OutputFormat {
	case OutputFormatJPEG, OutputFormatPNG, OutputFormatWebP:
	default:
		return fmt.Errorf("unsupported output format: %q", c.OutputFormat)
	}
	if c.OutputQuality < 1 || c.OutputQuality > 100 {
		return fmt.Errorf("output_quality must be in [1, 100], got %d", c.OutputQuality)
	}
	return nil
}
