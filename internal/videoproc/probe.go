package videoproc

// probe.go contains the ffprobe-based container introspection port.
// ffprobe handles every supported container format (MP4, MOV, MKV, AVI,
// WMV, FLV, WebM) through one unified JSON output.

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// VideoInfo is the container-level metadata the pipeline needs.
type VideoInfo struct {
	Duration    float64 // seconds
	FrameRate   float64
	Width       int
	Height      int
	TotalFrames int
	Format      string
	FileSize    int64
}

// MediaProber introspects a video container. The production implementation
// shells out to ffprobe; tests inject fakes.
type MediaProber interface {
	Probe(ctx context.Context, videoPath string) (*VideoInfo, error)
}

// FFprobeProber probes containers with the ffprobe binary.
type FFprobeProber struct {
	caps Capabilities
}

// NewFFprobeProber returns a prober bound to the detected ffprobe binary.
func NewFFprobeProber(caps Capabilities) *FFprobeProber {
	return &FFprobeProber{caps: caps}
}

// ffprobeOutput represents the JSON structure from ffprobe.
type ffprobeOutput struct {
	Format  ffprobeFormat   `json:"format"`
	Streams []ffprobeStream `json:"streams"`
}

type ffprobeFormat struct {
	Filename   string `json:"filename"`
	Duration   string `json:"duration"`
	Size       string `json:"size"`
	FormatName string `json:"format_name"`
}

type ffprobeStream struct {
	CodecType  string `json:"codec_type"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	RFrameRate string `json:"r_frame_rate"`
	NbFrames   string `json:"nb_frames"`
	Duration   string `json:"duration"`
}

// Probe extracts duration, frame rate, dimensions, frame count and format
// from a video container. Returns ErrUnreadableVideo (wrapped) when the
// container cannot be opened.
func (p *FFprobeProber) Probe(ctx context.Context, videoPath string) (*VideoInfo, error) {
	log.Debug().Str("path", videoPath).Msg("Probing video container with ffprobe")

	if !p.caps.FFprobe {
		return nil, ErrFFmpegUnavailable
	}

	cmd := exec.CommandContext(ctx, p.caps.FFprobePath,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		videoPath,
	)
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("%w: ffprobe failed: %v", ErrUnreadableVideo, err)
	}

	var probe ffprobeOutput
	if err := json.Unmarshal(output, &probe); err != nil {
		return nil, fmt.Errorf("%w: failed to parse ffprobe output: %v", ErrUnreadableVideo, err)
	}

	info := &VideoInfo{
		Format: probe.Format.FormatName,
	}

	if probe.Format.Duration != "" {
		info.Duration, _ = strconv.ParseFloat(probe.Format.Duration, 64)
	}
	if probe.Format.Size != "" {
		info.FileSize, _ = strconv.ParseInt(probe.Format.Size, 10, 64)
	}

	for _, stream := range probe.Streams {
		if stream.CodecType != "video" {
			continue
		}
		if info.Width == 0 {
			info.Width = stream.Width
			info.Height = stream.Height
		}
		if info.FrameRate == 0 && stream.RFrameRate != "" {
			info.FrameRate = parseFrameRate(stream.RFrameRate)
		}
		if info.TotalFrames == 0 && stream.NbFrames != "" {
			info.TotalFrames, _ = strconv.Atoi(stream.NbFrames)
		}
		if info.Duration == 0 && stream.Duration != "" {
			info.Duration, _ = strconv.ParseFloat(stream.Duration, 64)
		}
	}

	if info.Width == 0 || info.Height == 0 {
		return nil, fmt.Errorf("%w: no video stream in %s", ErrUnreadableVideo, videoPath)
	}

	// Containers without an nb_frames tag (common for MKV) get an estimate.
	if info.TotalFrames == 0 && info.Duration > 0 && info.FrameRate > 0 {
		info.TotalFrames = int(info.Duration * info.FrameRate)
	}

	log.Info().
		Float64("duration_s", info.Duration).
		Float64("frame_rate", info.FrameRate).
		Int("width", info.Width).
		Int("height", info.Height).
		Int("total_frames", info.TotalFrames).
		Str("format", info.Format).
		Msg("Video container probed")

	return info, nil
}

// parseFrameRate parses frame rate from ffprobe format (e.g., "60/1" -> 60.0)
func parseFrameRate(value string) float64 {
	parts := strings.Split(value, "/")
	if len(parts) == 2 {
		num, _ := strconv.ParseFloat(parts[0], 64)
		den, _ := strconv.ParseFloat(parts[1], 64)
		if den != 0 {
			return num / den
		}
	}
	rate, _ := strconv.ParseFloat(value, 64)
	return rate
}
