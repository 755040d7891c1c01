package videoproc

import "errors"

// Fatal precondition errors. These are the only error conditions that cross
// the ProcessVideo boundary; everything else degrades into the result shape
// (empty lists, lower confidence scores) plus log output.
var (
	// ErrFFmpegUnavailable means the mandatory decoding capability is missing
	// entirely. Nothing can be processed without it.
	ErrFFmpegUnavailable = errors.New("ffmpeg/ffprobe not found: video processing requires FFmpeg")

	// ErrFileNotFound means the input path does not exist or is not a regular file.
	ErrFileNotFound = errors.New("video file not found")

	// ErrFileTooLarge means the input exceeds the configured size ceiling.
	// Raised before the decoder is opened.
	ErrFileTooLarge = errors.New("video file exceeds configured size limit")

	// ErrUnreadableVideo means the container could not be opened or probed.
	ErrUnreadableVideo = errors.New("could not open video")

	// ErrUnsupportedFormat means the file extension is not a supported container.
	ErrUnsupportedFormat = errors.New("unsupported video format")
)
