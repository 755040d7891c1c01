// Package cli holds the terminal output helpers for the scenekit command:
// short human-readable formatting of durations, timestamps and sizes, and a
// tabular summary of a processing result as an alternative to raw JSON.
package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/fpang/scenekit/internal/videoproc"
)

// FormatDurationShort formats a duration in a short format (M:SS or H:MM:SS).
func FormatDurationShort(d time.Duration) string {
	totalSeconds := int(d.Seconds())
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

// FormatTimestamp formats a position in seconds as M:SS.s for scene spans.
func FormatTimestamp(seconds float64) string {
	minutes := int(seconds) / 60
	return fmt.Sprintf("%d:%04.1f", minutes, seconds-float64(minutes*60))
}

// FormatBytes formats a byte count with a binary unit suffix.
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGT"[exp])
}

// RenderSummary writes a human-readable summary of one processing result.
func RenderSummary(w io.Writer, result *videoproc.VideoProcessingResult) {
	fmt.Fprintf(w, "Video: %s (%s, %dx%d, %.1f fps, %s, %s)\n",
		result.VideoPath,
		result.VideoFormat,
		result.Width, result.Height,
		result.FrameRate,
		FormatDurationShort(time.Duration(result.VideoDuration*float64(time.Second))),
		FormatBytes(result.FileSize),
	)
	fmt.Fprintf(w, "Scenes: %d   Key frames: %d   Overall quality: %.2f   Processed in %s (%.2fx realtime)\n\n",
		len(result.Scenes),
		result.TotalKeyFrames,
		result.OverallQuality,
		result.ProcessingTime.Round(time.Millisecond),
		result.ProcessingSpeedRatio,
	)

	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tSPAN\tDURATION\tTYPE\tFRAMES\tQUALITY")
	for _, scene := range result.Scenes {
		fmt.Fprintf(tw, "%d\t%s - %s\t%.1fs\t%s\t%d\t%.2f\n",
			scene.SceneNumber,
			FormatTimestamp(scene.StartTime),
			FormatTimestamp(scene.EndTime),
			scene.Duration,
			scene.SceneType,
			len(scene.KeyFrames),
			scene.QualityScore,
		)
	}
	tw.Flush()
}
