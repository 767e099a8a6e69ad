package transcode

import (
	"io"
	"maps"
	"path/filepath"
	"slices"
	"strings"
)

// Decoder decodes a whole file into interleaved PCM.
type Decoder interface {
	Decode(r io.ReadSeeker) (*AudioData, error)
}

// Registry maps lower-case file extensions (with the leading dot) to decoders.
type Registry struct {
	decoders map[string]Decoder
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{decoders: make(map[string]Decoder)}
}

// DefaultRegistry returns a registry with the built-in pure Go decoders.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(WAVDecoder{}, ".wav", ".wave")
	r.Register(AIFFDecoder{}, ".aif", ".aiff")
	r.Register(MP3Decoder{}, ".mp3")
	r.Register(VorbisDecoder{}, ".ogg", ".oga")
	return r
}

// Register associates dec with each extension, replacing any previous entry.
func (r *Registry) Register(dec Decoder, exts ...string) {
	for _, ext := range exts {
		r.decoders[normalizeExt(ext)] = dec
	}
}

// Lookup returns the decoder for path's extension.
func (r *Registry) Lookup(path string) (Decoder, bool) {
	dec, ok := r.decoders[normalizeExt(filepath.Ext(path))]
	return dec, ok
}

// Extensions lists the registered extensions in sorted order.
func (r *Registry) Extensions() []string {
	return slices.Sorted(maps.Keys(r.decoders))
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
