// Package sink persists frame matrices.
package sink

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/RyanBlaney/sonido-frames/frames"
)

// ErrUnknownFormat is returned for output formats other than json and msgpack.
var ErrUnknownFormat = errors.New("unknown output format")

// Format names an output encoding.
type Format string

const (
	FormatJSON    Format = "json"
	FormatMsgpack Format = "msgpack"
)

// Stdout is the path that makes a sink write to standard output.
const Stdout = "-"

// Sink writes one OutputMatrix to its destination.
type Sink interface {
	Write(m frames.OutputMatrix) error
}

// ParseFormat resolves a format name. "mpk" and "messagepack" are aliases of
// msgpack.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return FormatJSON, nil
	case "msgpack", "messagepack", "mpk":
		return FormatMsgpack, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// FormatForPath guesses the format from path's extension, defaulting to JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".msgpack", ".mpk":
		return FormatMsgpack
	default:
		return FormatJSON
	}
}

// ForPath returns a sink writing to path. An empty format is inferred from
// the extension.
func ForPath(path string, format string) (Sink, error) {
	f := FormatForPath(path)
	if format != "" {
		var err error
		if f, err = ParseFormat(format); err != nil {
			return nil, err
		}
	}

	switch f {
	case FormatMsgpack:
		return &MsgpackSink{Path: path}, nil
	default:
		return &JSONSink{Path: path}, nil
	}
}

// writeOutput runs encode against path, or stdout for Stdout. Files are
// written next to their destination and renamed into place so a failed
// encode never leaves a truncated file behind.
func writeOutput(path string, encode func(io.Writer) error) error {
	if path == Stdout {
		return encode(os.Stdout)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := encode(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set output permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to move output into place: %w", err)
	}
	return nil
}

// Read loads a matrix written by any sink, choosing the decoder by extension.
func Read(path string) (frames.OutputMatrix, error) {
	if FormatForPath(path) == FormatMsgpack {
		return ReadMsgpack(path)
	}
	return ReadJSON(path)
}

// Write encodes m to path in the format inferred from its extension.
func Write(path string, m frames.OutputMatrix) error {
	s, err := ForPath(path, "")
	if err != nil {
		return err
	}
	return s.Write(m)
}
