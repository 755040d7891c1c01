package videoproc

// save.go persists selected key frames as image files. Frames are downscaled
// to the configured target dimensions with a high-quality CatmullRom kernel
// and written under a deterministic scene/frame-indexed filename.

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"

	"github.com/chai2010/webp"
	"github.com/rs/zerolog/log"
	"golang.org/x/image/draw"
)

// ensureOutputDir resolves the directory saved frames are written to,
// creating it if needed. An empty OutputDir is replaced in place with a
// fresh temp directory, so one resolution covers a whole processing run and
// every saved frame lands in the same place.
func ensureOutputDir(cfg *VideoProcessingConfig) error {
	if cfg.OutputDir == "" {
		dir, err := os.MkdirTemp("", "scenekit-keyframes-*")
		if err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		cfg.OutputDir = dir
		return nil
	}
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}

// saveKeyFrame resizes and writes one frame image, returning the written
// path. The output directory must already be resolved through
// ensureOutputDir. The filename is deterministic:
// scene_<3-digit>_frame_<6-digit>.<ext>.
func saveKeyFrame(img image.Image, sceneNumber, frameIndex int, cfg VideoProcessingConfig) (string, error) {
	outputDir := cfg.OutputDir
	if outputDir == "" {
		return "", fmt.Errorf("no output directory configured")
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	resized := resizeToFit(img, cfg.TargetWidth, cfg.TargetHeight)

	name := fmt.Sprintf("scene_%03d_frame_%06d.%s", sceneNumber, frameIndex, outputExtension(cfg.OutputFormat))
	path := filepath.Join(outputDir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create frame file: %w", err)
	}
	defer f.Close()

	switch cfg.OutputFormat {
	case OutputFormatPNG:
		err = png.Encode(f, resized)
	case OutputFormatWebP:
		err = webp.Encode(f, resized, &webp.Options{Quality: float32(cfg.OutputQuality)})
	default:
		err = jpeg.Encode(f, resized, &jpeg.Options{Quality: cfg.OutputQuality})
	}
	if err != nil {
		return "", fmt.Errorf("failed to encode frame as %s: %w", cfg.OutputFormat, err)
	}

	log.Debug().
		Str("path", path).
		Int("scene", sceneNumber).
		Int("frame", frameIndex).
		Msg("Key frame saved")

	return path, nil
}

// resizeToFit downscales an image to fit within maxWidth x maxHeight while
// preserving aspect ratio. Images already within bounds are returned as-is.
func resizeToFit(img image.Image, maxWidth, maxHeight int) image.Image {
	bounds := img.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()

	if w <= maxWidth && h <= maxHeight {
		return img
	}

	scaleW := float64(maxWidth) / float64(w)
	scaleH := float64(maxHeight) / float64(h)
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}

	newW := int(float64(w) * scale)
	newH := int(float64(h) * scale)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	resized := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.CatmullRom.Scale(resized, resized.Bounds(), img, bounds, draw.Over, nil)
	return resized
}

func outputExtension(format string) string {
	switch format {
	case OutputFormatPNG:
		return "png"
	case OutputFormatWebP:
		return "webp"
	default:
		return "jpg"
	}
}
