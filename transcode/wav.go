package transcode

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/wav"
)

var errNotWAV = errors.New("not a WAV file")

// WAVDecoder reads integer PCM WAV files of any common bit depth.
type WAVDecoder struct{}

func (WAVDecoder) Decode(r io.ReadSeeker) (*AudioData, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, errNotWAV
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("reading wav data: %w", err)
	}
	if buf.Format == nil || buf.Format.NumChannels <= 0 {
		return nil, fmt.Errorf("wav file has no channel layout")
	}

	bitDepth := buf.SourceBitDepth
	if bitDepth == 0 {
		bitDepth = int(dec.BitDepth)
	}
	pcm, err := intToFloat(buf.Data, bitDepth)
	if err != nil {
		return nil, err
	}

	return &AudioData{
		PCM:        pcm,
		SampleRate: buf.Format.SampleRate,
		Channels:   buf.Format.NumChannels,
		Format:     "wav",
	}, nil
}

// intToFloat scales integer PCM into [-1, 1). 8-bit PCM is unsigned and
// centered on 128.
func intToFloat(data []int, bitDepth int) ([]float64, error) {
	var (
		offset int
		scale  float64
	)
	switch bitDepth {
	case 8:
		offset, scale = 128, 128
	case 16:
		scale = 1 << 15
	case 24:
		scale = 1 << 23
	case 32:
		scale = 1 << 31
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}

	out := make([]float64, len(data))
	for i, v := range data {
		out[i] = float64(v-offset) / scale
	}
	return out, nil
}
