package videoproc

// capability.go implements capability negotiation for the optional external
// tooling. Strategies report availability at construction time instead of
// probing the PATH ad hoc at call time, which keeps fallback behavior
// injectable and unit-testable.

import (
	"os/exec"

	"github.com/rs/zerolog/log"
)

// Capabilities reports which external decoding and detection backends are
// available. Detected once at service construction and injected into the
// detector factory and frame reader.
type Capabilities struct {
	FFmpeg      bool
	FFprobe     bool
	FFmpegPath  string
	FFprobePath string
}

// DetectCapabilities probes the system PATH for ffmpeg and ffprobe.
func DetectCapabilities() Capabilities {
	caps := Capabilities{}

	if path, err := exec.LookPath("ffmpeg"); err == nil {
		caps.FFmpeg = true
		caps.FFmpegPath = path
	}
	if path, err := exec.LookPath("ffprobe"); err == nil {
		caps.FFprobe = true
		caps.FFprobePath = path
	}

	log.Debug().
		Bool("ffmpeg", caps.FFmpeg).
		Bool("ffprobe", caps.FFprobe).
		Msg("External tool capabilities detected")

	return caps
}

// CanDecode reports whether mandatory frame decoding is possible at all.
func (c Capabilities) CanDecode() bool {
	return c.FFmpeg && c.FFprobe
}

// CanContentDetect reports whether the content-aware scene detector backend
// is available. The histogram detector needs only CanDecode.
func (c Capabilities) CanContentDetect() bool {
	return c.FFmpeg
}
