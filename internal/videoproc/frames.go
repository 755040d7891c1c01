package videoproc

// frames.go implements the frame decoding port on top of ffmpeg. Frames are
// extracted into a temporary directory as high-quality JPEGs and decoded
// with the stdlib image packages; the directory is removed on every exit
// path so no handles or temp files leak past a call.

import (
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// frameJPEGQuality controls the JPEG quality for extracted frames.
// qscale:v 2 is high quality (~95% JPEG), minimizing compression artifacts
// that would skew the sharpness and contrast metrics.
const frameJPEGQuality = 2

// Frame pairs a decoded image with its source frame index.
type Frame struct {
	Index int
	Image image.Image
}

// FrameReader decodes individual frames from a video. The production
// implementation shells out to ffmpeg; tests inject synthetic readers.
type FrameReader interface {
	// ExtractIndexed decodes the frames at the given indices. Indices that
	// fail to decode are absent from the returned map; only a total failure
	// returns an error.
	ExtractIndexed(ctx context.Context, videoPath string, indices []int) (map[int]image.Image, error)

	// SampleInterval decodes every interval-th frame starting at frame 0,
	// in ascending index order.
	SampleInterval(ctx context.Context, videoPath string, interval int) ([]Frame, error)
}

// FFmpegFrameReader extracts frames with the ffmpeg binary.
type FFmpegFrameReader struct {
	caps Capabilities
}

// NewFFmpegFrameReader returns a reader bound to the detected ffmpeg binary.
func NewFFmpegFrameReader(caps Capabilities) *FFmpegFrameReader {
	return &FFmpegFrameReader{caps: caps}
}

// ExtractIndexed extracts the requested frame indices in a single ffmpeg
// invocation using a select filter, then decodes the resulting JPEGs.
// ffmpeg emits selected frames in source order, so output file N maps to
// the N-th smallest requested index.
func (r *FFmpegFrameReader) ExtractIndexed(ctx context.Context, videoPath string, indices []int) (map[int]image.Image, error) {
	if len(indices) == 0 {
		return map[int]image.Image{}, nil
	}
	if !r.caps.FFmpeg {
		return nil, ErrFFmpegUnavailable
	}

	sorted := make([]int, len(indices))
	copy(sorted, indices)
	sort.Ints(sorted)

	exprs := make([]string, len(sorted))
	for i, idx := range sorted {
		exprs[i] = fmt.Sprintf("eq(n\\,%d)", idx)
	}
	selectExpr := strings.Join(exprs, "+")

	framePaths, cleanup, err := r.runSelectFilter(ctx, videoPath, selectExpr)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	frames := make(map[int]image.Image, len(sorted))
	for i, path := range framePaths {
		if i >= len(sorted) {
			break
		}
		img, err := decodeJPEGFile(path)
		if err != nil {
			log.Warn().Err(err).Int("frame", sorted[i]).Msg("Failed to decode extracted frame, skipping")
			continue
		}
		frames[sorted[i]] = img
	}

	return frames, nil
}

// SampleInterval extracts every interval-th frame for the histogram scene
// detector. interval <= 0 defaults to 1.
func (r *FFmpegFrameReader) SampleInterval(ctx context.Context, videoPath string, interval int) ([]Frame, error) {
	if !r.caps.FFmpeg {
		return nil, ErrFFmpegUnavailable
	}
	if interval <= 0 {
		interval = 1
	}

	selectExpr := fmt.Sprintf("not(mod(n\\,%d))", interval)

	framePaths, cleanup, err := r.runSelectFilter(ctx, videoPath, selectExpr)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	frames := make([]Frame, 0, len(framePaths))
	for i, path := range framePaths {
		img, err := decodeJPEGFile(path)
		if err != nil {
			log.Warn().Err(err).Int("sample", i).Msg("Failed to decode sampled frame, skipping")
			continue
		}
		frames = append(frames, Frame{Index: i * interval, Image: img})
	}

	return frames, nil
}

// runSelectFilter runs ffmpeg with the given select expression, writing
// matching frames into a fresh temp directory. The returned cleanup must be
// called once the decoded images are no longer needed.
func (r *FFmpegFrameReader) runSelectFilter(ctx context.Context, videoPath, selectExpr string) ([]string, func(), error) {
	frameDir, err := os.MkdirTemp("", "scenekit-frames-*")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create frame directory: %w", err)
	}

	cleanup := func() {
		if err := os.RemoveAll(frameDir); err != nil {
			log.Warn().Err(err).Str("dir", frameDir).Msg("Failed to remove frame directory")
		}
	}

	framePattern := filepath.Join(frameDir, "frame_%06d.jpg")
	cmd := exec.CommandContext(ctx, r.caps.FFmpegPath,
		"-i", videoPath,
		"-vf", fmt.Sprintf("select='%s'", selectExpr),
		"-qscale:v", strconv.Itoa(frameJPEGQuality),
		"-vsync", "0",
		"-y", framePattern,
	)

	output, err := cmd.CombinedOutput()
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("frame extraction failed: %w\nOutput: %s", err, string(output))
	}

	framePaths, err := collectFramePaths(frameDir)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	return framePaths, cleanup, nil
}

// collectFramePaths returns sorted paths to all frame files in a directory.
func collectFramePaths(frameDir string) ([]string, error) {
	entries, err := os.ReadDir(frameDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read frame directory: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, "frame_") && strings.HasSuffix(name, ".jpg") {
			paths = append(paths, filepath.Join(frameDir, name))
		}
	}

	// Sort to ensure correct frame ordering
	sort.Strings(paths)

	return paths, nil
}

func decodeJPEGFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open frame file: %w", err)
	}
	defer f.Close()

	img, err := jpeg.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode JPEG: %w", err)
	}
	return img, nil
}
