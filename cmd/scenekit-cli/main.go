package main

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/fpang/scenekit/internal/cli"
	"github.com/fpang/scenekit/internal/logging"
	"github.com/fpang/scenekit/internal/videoproc"
)

// CLI flags
var (
	detectionFlag      string
	extractionFlag     string
	framesPerSceneFlag int
	maxFramesFlag      int
	minSceneLenFlag    float64
	thresholdFlag      float64
	minQualityFlag     float64
	saveFramesFlag     bool
	outputDirFlag      string
	formatFlag         string
	exportZipFlag      string
	summaryFlag        bool
)

// rootCmd is the main Cobra command for the CLI.
var rootCmd = &cobra.Command{
	Use:   "scenekit-cli <video>",
	Short: "Scene detection and key-frame extraction for video files",
	Long: `scenekit-cli partitions a video into visually coherent scenes, selects
representative key frames per scene, scores each frame on sharpness,
exposure, contrast and histogram diversity, and prints the full result
as JSON.

Requires FFmpeg (ffmpeg + ffprobe) on the PATH.

Examples:
  scenekit-cli vacation.mp4
  scenekit-cli --detection histogram --frames-per-scene 5 clip.mkv
  scenekit-cli --extraction adaptive --save-frames --output-dir ./frames trip.mov
  scenekit-cli --save-frames --export-zip frames.zip demo.webm`,
	Args: cobra.ExactArgs(1),
	Run:  runMain,
}

func init() {
	rootCmd.Flags().StringVar(&detectionFlag, "detection", string(videoproc.SceneDetectionContent), "Scene detection method: content, threshold, adaptive, histogram")
	rootCmd.Flags().StringVar(&extractionFlag, "extraction", string(videoproc.FrameExtractionUniform), "Frame extraction method: uniform, adaptive, keyframe, histogram, motion")
	rootCmd.Flags().IntVar(&framesPerSceneFlag, "frames-per-scene", 3, "Key frames to select per scene")
	rootCmd.Flags().IntVar(&maxFramesFlag, "max-frames", 50, "Maximum key frames across the whole video")
	rootCmd.Flags().Float64Var(&minSceneLenFlag, "min-scene-length", 2.0, "Minimum scene duration in seconds")
	rootCmd.Flags().Float64Var(&thresholdFlag, "threshold", 30.0, "Scene change sensitivity (0-100)")
	rootCmd.Flags().Float64Var(&minQualityFlag, "min-quality", 0.3, "Minimum frame quality score (0-1)")
	rootCmd.Flags().BoolVar(&saveFramesFlag, "save-frames", false, "Write selected key frames as image files")
	rootCmd.Flags().StringVar(&outputDirFlag, "output-dir", "", "Directory for saved key frames (default: temp dir)")
	rootCmd.Flags().StringVar(&formatFlag, "format", videoproc.OutputFormatJPEG, "Saved frame format: jpeg, png, webp")
	rootCmd.Flags().StringVar(&exportZipFlag, "export-zip", "", "Bundle saved key frames into a ZIP archive at this path")
	rootCmd.Flags().BoolVar(&summaryFlag, "summary", false, "Print a human-readable summary instead of JSON")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// runMain is the main execution logic called by Cobra.
func runMain(cmd *cobra.Command, args []string) {
	start := time.Now()
	logging.Init()

	videoPath := args[0]

	config := videoproc.DefaultConfig()
	config.SceneDetectionMethod = videoproc.SceneDetectionMethod(detectionFlag)
	config.FrameExtractionMethod = videoproc.FrameExtractionMethod(extractionFlag)
	config.FramesPerScene = framesPerSceneFlag
	config.MaxFramesTotal = maxFramesFlag
	config.MinSceneLength = minSceneLenFlag
	config.SceneThreshold = thresholdFlag
	config.MinFrameQuality = minQualityFlag
	config.SaveFrames = saveFramesFlag
	config.OutputDir = outputDirFlag
	config.OutputFormat = formatFlag

	if exportZipFlag != "" && !config.SaveFrames {
		log.Fatal().Msg("--export-zip requires --save-frames")
	}

	caps := videoproc.DetectCapabilities()
	service := videoproc.NewVideoServiceWith(caps,
		videoproc.NewFFprobeProber(caps),
		videoproc.NewFFmpegFrameReader(caps),
		nil)

	logging.NewStartupLogger("scenekit-cli").
		Tool("ffmpeg", caps.FFmpegPath).
		Tool("ffprobe", caps.FFprobePath).
		Feature("saveFrames", config.SaveFrames).
		Feature("exportZip", exportZipFlag != "").
		Config("detection", string(config.SceneDetectionMethod)).
		Config("extraction", string(config.FrameExtractionMethod)).
		InitDuration(time.Since(start)).
		Log()

	ctx, cancel := context.WithTimeout(context.Background(), config.ProcessingTimeout)
	defer cancel()

	result, err := service.ProcessVideo(ctx, videoPath, &config)
	if err != nil {
		log.Fatal().Err(err).Str("path", videoPath).Msg("Video processing failed")
	}

	if exportZipFlag != "" {
		if err := videoproc.ExportKeyFrames(result, exportZipFlag); err != nil {
			log.Fatal().Err(err).Msg("Key frame export failed")
		}
	}

	if summaryFlag {
		cli.RenderSummary(os.Stdout, result)
		return
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		log.Fatal().Err(err).Msg("Failed to encode result")
	}
}
