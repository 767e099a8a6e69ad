package sink

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/RyanBlaney/sonido-frames/frames"
)

// JSONSink writes the matrix as a JSON array of arrays indented with four
// spaces.
type JSONSink struct {
	Path string
}

func (s *JSONSink) Write(m frames.OutputMatrix) error {
	return writeOutput(s.Path, func(w io.Writer) error {
		return EncodeJSON(w, m)
	})
}

// EncodeJSON writes m to w followed by a newline.
func EncodeJSON(w io.Writer, m frames.OutputMatrix) error {
	if m == nil {
		m = frames.OutputMatrix{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("failed to encode frames as json: %w", err)
	}
	return nil
}

// ReadJSON reads a matrix written by JSONSink.
func ReadJSON(path string) (frames.OutputMatrix, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var m frames.OutputMatrix
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("malformed frame matrix in %s: %w", path, err)
	}
	return m, nil
}
