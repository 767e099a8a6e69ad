package commands

import (
	"bytes"
	"context"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanBlaney/sonido-frames/frames"
	"github.com/RyanBlaney/sonido-frames/sink"
	"github.com/RyanBlaney/sonido-frames/transcode"
)

func runCmd(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

// writeSineWAV writes one second of a mono PCM16 sine at 16 kHz.
func writeSineWAV(t *testing.T, dir string, freq float64) string {
	t.Helper()

	const sampleRate = 16000
	buf := new(bytes.Buffer)
	dataSize := uint32(sampleRate * 2)

	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, 36+dataSize)
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, uint32(16))
	binary.Write(buf, binary.LittleEndian, uint16(1))
	binary.Write(buf, binary.LittleEndian, uint16(1))
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate*2))
	binary.Write(buf, binary.LittleEndian, uint16(2))
	binary.Write(buf, binary.LittleEndian, uint16(16))
	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, dataSize)
	for i := range sampleRate {
		v := int16(16000 * math.Sin(2*math.Pi*freq*float64(i)/sampleRate))
		binary.Write(buf, binary.LittleEndian, v)
	}

	path := filepath.Join(dir, "sine.wav")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func TestExtract(t *testing.T) {
	dir := t.TempDir()
	input := writeSineWAV(t, dir, 1000)
	output := filepath.Join(dir, "frames.json")

	_, _, err := runCmd(t, "extract", input, "-o", output,
		"--low", "0", "--high", "8000", "--bins", "8", "--sigma", "0")
	require.NoError(t, err)

	m, err := sink.ReadJSON(output)
	require.NoError(t, err)
	assert.Equal(t, 32, m.Frames())
	assert.Equal(t, 8, m.Bins())
}

func TestExtractCropAndMsgpack(t *testing.T) {
	dir := t.TempDir()
	input := writeSineWAV(t, dir, 1000)
	output := filepath.Join(dir, "frames.bin")

	_, stderr, err := runCmd(t, "-v", "extract", input, "-o", output, "--format", "msgpack",
		"--start", "0.25", "--end", "0.75", "--bins", "16", "--norm", "per_bin",
		"--compress", "--ratio", "2")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Frames extracted")

	m, err := sink.ReadMsgpack(output)
	require.NoError(t, err)
	// 8000 samples, centered: 1 + 8000/512
	assert.Equal(t, 16, m.Frames())
	assert.Equal(t, 16, m.Bins())
}

func TestExtractWithJobFile(t *testing.T) {
	dir := t.TempDir()
	input := writeSineWAV(t, dir, 440)
	output := filepath.Join(dir, "frames.json")

	job := []byte("input: " + input + "\noutput: " + output + "\npipeline:\n  num_frequency_bins: 12\n  low_cut_freq: 100\n")
	jobPath := filepath.Join(dir, "job.yaml")
	require.NoError(t, os.WriteFile(jobPath, job, 0o644))

	_, _, err := runCmd(t, "extract", "--config", jobPath, "--bins", "10")
	require.NoError(t, err)

	m, err := sink.ReadJSON(output)
	require.NoError(t, err)
	assert.Equal(t, 10, m.Bins(), "flags override the job file")
}

func TestExtractErrors(t *testing.T) {
	dir := t.TempDir()
	input := writeSineWAV(t, dir, 1000)
	output := filepath.Join(dir, "frames.json")

	_, _, err := runCmd(t, "extract", "-o", output)
	assert.Error(t, err, "input is required")

	_, _, err = runCmd(t, "extract", filepath.Join(dir, "missing.wav"), "-o", output)
	assert.ErrorIs(t, err, transcode.ErrUnreadableAudio)

	_, _, err = runCmd(t, "extract", input, "-o", output, "--start", "0.5", "--end", "2")
	assert.ErrorIs(t, err, frames.ErrInvalidTimeRange)

	_, _, err = runCmd(t, "extract", input, "-o", output, "--low", "0", "--high", "0")
	assert.ErrorIs(t, err, frames.ErrEmptyBand)

	_, _, err = runCmd(t, "extract", input, "-o", output, "--norm", "loudest")
	assert.ErrorIs(t, err, frames.ErrInvalidConfig)

	_, statErr := os.Stat(output)
	assert.True(t, os.IsNotExist(statErr), "failed runs write nothing")
}

func TestRound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frames.json")
	require.NoError(t, sink.Write(path, frames.OutputMatrix{{0.125, 0.5}, {0.35, 0.991}}))

	_, _, err := runCmd(t, "round", path, "--decimals", "1")
	require.NoError(t, err)

	m, err := sink.ReadJSON(path)
	require.NoError(t, err)
	assert.Equal(t, frames.OutputMatrix{{0.1, 0.5}, {0.4, 1}}, m)

	_, _, err = runCmd(t, "round", path, "--decimals", "-1")
	assert.Error(t, err)

	_, _, err = runCmd(t, "round")
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	stdout, _, err := runCmd(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "sonido-frames")

	stdout, _, err = runCmd(t, "version", "--verbose")
	require.NoError(t, err)
	assert.Contains(t, stdout, "go:")
}
