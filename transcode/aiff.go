package transcode

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
)

var errNotAIFF = errors.New("not an AIFF file")

// AIFFDecoder reads integer PCM AIFF files.
type AIFFDecoder struct{}

func (AIFFDecoder) Decode(r io.ReadSeeker) (*AudioData, error) {
	dec := aiff.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, errNotAIFF
	}
	dec.ReadInfo()

	format := dec.Format()
	if format == nil || format.NumChannels <= 0 {
		return nil, fmt.Errorf("unsupported AIFF layout")
	}

	buf := &goaudio.IntBuffer{
		Data:   make([]int, 4096*format.NumChannels),
		Format: format,
	}

	var samples []int
	for {
		n, err := dec.PCMBuffer(buf)
		samples = append(samples, buf.Data[:n]...)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("reading aiff data: %w", err)
		}
		if n == 0 {
			break
		}
	}

	var pcm []float64
	if dec.BitDepth == 8 {
		// 8-bit AIFF is signed, unlike WAV
		pcm = make([]float64, len(samples))
		for i, v := range samples {
			pcm[i] = float64(v) / 128
		}
	} else {
		var err error
		if pcm, err = intToFloat(samples, int(dec.BitDepth)); err != nil {
			return nil, err
		}
	}

	return &AudioData{
		PCM:        pcm,
		SampleRate: format.SampleRate,
		Channels:   format.NumChannels,
		Format:     "aiff",
	}, nil
}
