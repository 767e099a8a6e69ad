package transcode

import (
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"
)

// VorbisDecoder decodes Ogg Vorbis files.
type VorbisDecoder struct{}

func (VorbisDecoder) Decode(r io.ReadSeeker) (*AudioData, error) {
	data, format, err := oggvorbis.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading ogg vorbis data: %w", err)
	}

	pcm := make([]float64, len(data))
	for i, v := range data {
		pcm[i] = float64(v)
	}

	return &AudioData{
		PCM:        pcm,
		SampleRate: format.SampleRate,
		Channels:   format.Channels,
		Format:     "vorbis",
	}, nil
}
