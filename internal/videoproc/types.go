// Package videoproc implements the video scene-detection and
// key-frame-extraction pipeline.
//
// The pipeline decodes a video through ffmpeg/ffprobe, partitions its
// timeline into visually coherent scenes, selects a bounded number of
// representative frames per scene, scores each frame on sharpness,
// exposure, contrast and histogram diversity, and returns a single
// immutable VideoProcessingResult.
//
// External decoding follows the Split-Provider approach used across this
// codebase: metadata and pixels come from ffprobe/ffmpeg via narrow ports
// (MediaProber, FrameReader) so the analysis core stays pure Go and fully
// testable without FFmpeg installed.
package videoproc

import (
	"time"
)

// SceneType is a coarse classification of a scene's visual character.
type SceneType string

const (
	SceneTypeAction     SceneType = "action"
	SceneTypeDialogue   SceneType = "dialogue"
	SceneTypeTransition SceneType = "transition"
	SceneTypeStatic     SceneType = "static"
	SceneTypeUnknown    SceneType = "unknown"
)

// KeyFrame is one selected representative frame. Created during frame
// selection and immutable afterward; owned exclusively by its parent scene.
type KeyFrame struct {
	ID          string  `json:"id"`
	FrameNumber int     `json:"frame_number"`
	Timestamp   float64 `json:"timestamp"` // seconds, FrameNumber / fps
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	Channels    int     `json:"channels"`

	// Quality sub-scores, each in [0, 1].
	SharpnessScore  float64 `json:"sharpness_score"`
	BrightnessScore float64 `json:"brightness_score"`
	ContrastScore   float64 `json:"contrast_score"`
	HistogramScore  float64 `json:"histogram_score"`
	QualityScore    float64 `json:"quality_score"`

	// MotionScore is the motion intensity relative to the previous analyzed
	// frame, in [0, 1]. Zero for the first frame of a scene.
	MotionScore float64 `json:"motion_score"`

	IsKeyframe bool              `json:"is_keyframe"`
	FramePath  string            `json:"frame_path,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// VideoScene is one contiguous temporal segment of the source video.
// Scenes partition the timeline in increasing, non-overlapping order.
type VideoScene struct {
	SceneNumber int     `json:"scene_number"` // 1-based, sequential
	StartTime   float64 `json:"start_time"`   // seconds
	EndTime     float64 `json:"end_time"`
	Duration    float64 `json:"duration"`
	StartFrame  int     `json:"start_frame"`
	EndFrame    int     `json:"end_frame"`

	KeyFrames []KeyFrame `json:"key_frames"`

	SceneType           SceneType `json:"scene_type"`
	MotionIntensity     float64   `json:"motion_intensity"`
	ColorDiversity      float64   `json:"color_diversity"`
	BrightnessVariation float64   `json:"brightness_variation"`
	QualityScore        float64   `json:"quality_score"`

	// FrameCount is the raw frame span of the scene, independent of how many
	// key frames were selected from it.
	FrameCount int `json:"frame_count"`
}

// VideoProcessingResult is the orchestrator's sole output. Constructed once
// per ProcessVideo call and read-only afterward. An empty Scenes slice is a
// valid, non-exceptional outcome; callers detect partial success through
// scene and key-frame counts, not a boolean flag.
type VideoProcessingResult struct {
	Scenes         []VideoScene `json:"scenes"`
	TotalKeyFrames int          `json:"total_key_frames"`

	// Source video metadata.
	VideoPath     string  `json:"video_path"`
	VideoDuration float64 `json:"video_duration"` // seconds
	VideoFormat   string  `json:"video_format"`
	FrameRate     float64 `json:"frame_rate"`
	TotalFrames   int     `json:"total_frames"`
	Width         int     `json:"width"`
	Height        int     `json:"height"`
	FileSize      int64   `json:"file_size"`

	ProcessingTime time.Duration `json:"processing_time"`

	SceneDetectionMethod  SceneDetectionMethod  `json:"scene_detection_method"`
	FrameExtractionMethod FrameExtractionMethod `json:"frame_extraction_method"`

	// Confidence scores, each in [0, 1].
	SceneDetectionConfidence float64 `json:"scene_detection_confidence"`
	FrameExtractionQuality   float64 `json:"frame_extraction_quality"`
	OverallQuality           float64 `json:"overall_quality"`

	// Performance metrics.
	ProcessingSpeedRatio  float64 `json:"processing_speed_ratio"` // processing time / video duration
	FramesPerSecond       float64 `json:"frames_per_second"`
	MemoryUsageEstimateMB float64 `json:"memory_usage_estimate_mb"`

	Config    VideoProcessingConfig `json:"config"`
	OutputDir string                `json:"output_dir,omitempty"`
	Metadata  map[string]string     `json:"metadata,omitempty"`
}
