package transcode

import (
	"encoding/binary"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
)

// MP3Decoder decodes MPEG-1/2 Layer III files. go-mp3 always produces
// 16-bit little-endian stereo.
type MP3Decoder struct{}

func (MP3Decoder) Decode(r io.ReadSeeker) (*AudioData, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("opening mp3 stream: %w", err)
	}

	raw, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("reading mp3 data: %w", err)
	}

	samples := len(raw) / 2
	pcm := make([]float64, samples)
	for i := range samples {
		v := int16(binary.LittleEndian.Uint16(raw[2*i:]))
		pcm[i] = float64(v) / 32768.0
	}

	return &AudioData{
		PCM:        pcm,
		SampleRate: dec.SampleRate(),
		Channels:   2,
		Format:     "mp3",
	}, nil
}
