package sink

import (
	"fmt"
	"io"
	"os"

	"github.com/RyanBlaney/sonido-frames/frames"
	"github.com/vmihailenco/msgpack/v5"
)

// MsgpackSink writes the matrix as a MessagePack array of float64 arrays.
type MsgpackSink struct {
	Path string
}

func (s *MsgpackSink) Write(m frames.OutputMatrix) error {
	return writeOutput(s.Path, func(w io.Writer) error {
		return EncodeMsgpack(w, m)
	})
}

// EncodeMsgpack writes m to w.
func EncodeMsgpack(w io.Writer, m frames.OutputMatrix) error {
	if m == nil {
		m = frames.OutputMatrix{}
	}
	if err := msgpack.NewEncoder(w).Encode([][]float64(m)); err != nil {
		return fmt.Errorf("failed to encode frames as msgpack: %w", err)
	}
	return nil
}

// ReadMsgpack reads a matrix written by MsgpackSink.
func ReadMsgpack(path string) (frames.OutputMatrix, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var m [][]float64
	if err := msgpack.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	out := frames.OutputMatrix(m)
	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("malformed frame matrix in %s: %w", path, err)
	}
	return out, nil
}
