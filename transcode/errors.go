package transcode

import "errors"

var (
	// ErrUnreadableAudio wraps every failure to open or decode an input file.
	ErrUnreadableAudio = errors.New("unreadable audio")
	// ErrUnsupportedFormat is returned when no decoder handles the file
	// extension and no ffmpeg binary is available.
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	// ErrNoSamples is returned when a decoder produced no audio.
	ErrNoSamples = errors.New("no audio samples decoded")
	// ErrUnsupportedBitDepth is returned for integer PCM depths other than
	// 8, 16, 24 or 32 bits.
	ErrUnsupportedBitDepth = errors.New("unsupported PCM bit depth")
)
