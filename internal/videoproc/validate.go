package videoproc

// validate.go performs the fail-fast input checks that run before the
// decoder is opened: existence, container allowlist, and size ceiling.

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SupportedVideoExtensions defines the container formats the pipeline accepts.
var SupportedVideoExtensions = map[string]string{
	".mp4":  "video/mp4",
	".avi":  "video/x-msvideo",
	".mov":  "video/quicktime",
	".mkv":  "video/x-matroska",
	".wmv":  "video/x-ms-wmv",
	".flv":  "video/x-flv",
	".webm": "video/webm",
}

// IsSupportedVideo reports whether the extension is an accepted container.
func IsSupportedVideo(ext string) bool {
	_, ok := SupportedVideoExtensions[strings.ToLower(ext)]
	return ok
}

// validateVideoFile checks that the path points at a supported, readable
// video within the configured size ceiling. Returns the file size on
// success. All violations are fatal precondition errors.
func validateVideoFile(videoPath string, cfg VideoProcessingConfig) (int64, error) {
	info, err := os.Stat(videoPath)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, fmt.Errorf("%w: %s", ErrFileNotFound, videoPath)
		}
		return 0, fmt.Errorf("%w: %s: %v", ErrFileNotFound, videoPath, err)
	}
	if info.IsDir() {
		return 0, fmt.Errorf("%w: %s is a directory", ErrFileNotFound, videoPath)
	}

	ext := filepath.Ext(videoPath)
	if !IsSupportedVideo(ext) {
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}

	maxBytes := int64(cfg.MaxFileSizeGB * 1024 * 1024 * 1024)
	if info.Size() > maxBytes {
		return 0, fmt.Errorf("%w: %d bytes exceeds %.3f GB limit", ErrFileTooLarge, info.Size(), cfg.MaxFileSizeGB)
	}

	return info.Size(), nil
}
