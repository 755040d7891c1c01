package videoproc

// export.go bundles saved key frames into a single ZIP archive so a whole
// processing run can be handed off or archived as one file.

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
	"github.com/rs/zerolog/log"
)

// zipMethodZstd is the ZIP compression method ID for Zstandard (APPNOTE 6.3.7).
const zipMethodZstd uint16 = 93

func init() {
	// Register Zstandard as a ZIP compressor. Level 12 maps to
	// SpeedBestCompression in klauspost/compress — the highest compression
	// the Go library supports, trading CPU time for smaller archives.
	zip.RegisterCompressor(zipMethodZstd, func(w io.Writer) (io.WriteCloser, error) {
		return zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(12)))
	})
}

// ExportKeyFrames writes every saved key frame from a processing result into
// a ZIP archive at zipPath. Entries keep their deterministic
// scene/frame-indexed filenames and appear in scene order, so two exports of
// the same result produce the same archive layout.
//
// Results processed with SaveFrames disabled have no frame files to bundle;
// that is reported as an error since the archive would be empty.
func ExportKeyFrames(result *VideoProcessingResult, zipPath string) error {
	if result == nil {
		return fmt.Errorf("nil result")
	}

	var framePaths []string
	for _, scene := range result.Scenes {
		for _, kf := range scene.KeyFrames {
			if kf.FramePath != "" {
				framePaths = append(framePaths, kf.FramePath)
			}
		}
	}
	if len(framePaths) == 0 {
		return fmt.Errorf("no saved key frames to export (was save_frames enabled?)")
	}

	out, err := os.Create(zipPath)
	if err != nil {
		return fmt.Errorf("failed to create archive: %w", err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)

	for _, framePath := range framePaths {
		if err := addFileToZip(zw, framePath); err != nil {
			zw.Close()
			return fmt.Errorf("failed to add %s: %w", filepath.Base(framePath), err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finalize archive: %w", err)
	}

	log.Info().
		Str("archive", zipPath).
		Int("frames", len(framePaths)).
		Msg("Key frames exported")

	return nil
}

func addFileToZip(zw *zip.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	header := &zip.FileHeader{
		Name:   filepath.Base(path),
		Method: zipMethodZstd,
	}
	w, err := zw.CreateHeader(header)
	if err != nil {
		return err
	}

	_, err = io.Copy(w, f)
	return err
}
