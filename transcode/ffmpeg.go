package transcode

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/RyanBlaney/sonido-frames/logging"
)

// FFmpegDecoder decodes any format ffmpeg understands by piping raw
// float64 little-endian PCM out of an ffmpeg process.
type FFmpegDecoder struct {
	FFmpegPath  string
	FFprobePath string
	Timeout     time.Duration

	logger logging.Logger
}

// ProbeInfo holds audio properties detected by ffprobe.
type ProbeInfo struct {
	SampleRate int     `json:"sample_rate"`
	Channels   int     `json:"channels"`
	Codec      string  `json:"codec"`
	Duration   float64 `json:"duration"`
	Bitrate    int     `json:"bitrate"`
	Format     string  `json:"format"`
}

// Available reports whether both binaries can be found.
func (d *FFmpegDecoder) Available() bool {
	if d.FFmpegPath == "" || d.FFprobePath == "" {
		return false
	}
	if _, err := exec.LookPath(d.FFmpegPath); err != nil {
		return false
	}
	_, err := exec.LookPath(d.FFprobePath)
	return err == nil
}

// DecodeFile decodes filename to mono at its native sample rate.
func (d *FFmpegDecoder) DecodeFile(ctx context.Context, filename string) (*AudioData, error) {
	logger := logging.OrNoOp(d.logger).WithFields(logging.Fields{
		"component": "ffmpeg_decoder",
		"function":  "DecodeFile",
		"filename":  filename,
	})

	if d.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.Timeout)
		defer cancel()
	}

	info, err := d.Probe(ctx, filename)
	if err != nil {
		logger.Error(err, "Failed to probe audio file")
		return nil, err
	}

	logger.Debug("Audio metadata detected", logging.Fields{
		"input_sample_rate": info.SampleRate,
		"input_channels":    info.Channels,
		"input_codec":       info.Codec,
		"input_duration":    info.Duration,
		"input_bitrate":     info.Bitrate,
	})

	args := []string{
		"-i", filename,
		"-f", "f64le", // raw float64 little-endian
		"-ac", "1",
		"-ar", strconv.Itoa(info.SampleRate),
		"-v", "error",
		"pipe:1",
	}

	logger.Debug("Running ffmpeg command", logging.Fields{
		"args": strings.Join(args, " "),
	})

	output, err := exec.CommandContext(ctx, d.FFmpegPath, args...).Output()
	if err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			logger.Error(err, "Ffmpeg decode failed", logging.Fields{
				"stderr": string(exitError.Stderr),
			})
		}
		return nil, fmt.Errorf("ffmpeg decode failed: %w", err)
	}

	samples := bytesToFloat64(output)
	if len(samples) == 0 {
		return nil, ErrNoSamples
	}

	return &AudioData{
		PCM:        samples,
		SampleRate: info.SampleRate,
		Channels:   1,
		Format:     info.Codec,
	}, nil
}

// Probe uses ffprobe to read the first audio stream's properties.
func (d *FFmpegDecoder) Probe(ctx context.Context, filename string) (*ProbeInfo, error) {
	args := []string{
		"-v", "quiet",
		"-print_format", "json",
		"-show_streams",
		"-select_streams", "a:0",
		filename,
	}

	output, err := exec.CommandContext(ctx, d.FFprobePath, args...).Output()
	if err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return nil, fmt.Errorf("ffprobe failed: %w, stderr: %s", err, string(exitError.Stderr))
		}
		return nil, fmt.Errorf("ffprobe failed: %w", err)
	}

	return parseFFprobeOutput(output)
}

func parseFFprobeOutput(jsonData []byte) (*ProbeInfo, error) {
	var probe struct {
		Streams []struct {
			CodecType     string `json:"codec_type"`
			CodecName     string `json:"codec_name"`
			SampleRate    string `json:"sample_rate"`
			Channels      int    `json:"channels"`
			Duration      string `json:"duration"`
			BitRate       string `json:"bit_rate"`
			CodecLongName string `json:"codec_long_name"`
		} `json:"streams"`
	}

	if err := json.Unmarshal(jsonData, &probe); err != nil {
		return nil, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	if len(probe.Streams) == 0 {
		return nil, fmt.Errorf("no audio streams found")
	}

	stream := probe.Streams[0]
	if stream.CodecType != "audio" {
		return nil, fmt.Errorf("stream is not audio type: %s", stream.CodecType)
	}

	sampleRate, err := strconv.Atoi(stream.SampleRate)
	if err != nil || sampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate %q", stream.SampleRate)
	}

	duration, err := strconv.ParseFloat(stream.Duration, 64)
	if err != nil {
		duration = 0
	}

	bitrate, err := strconv.Atoi(stream.BitRate)
	if err != nil {
		bitrate = 0
	}

	if stream.Channels <= 0 || stream.Channels > 8 {
		return nil, fmt.Errorf("invalid channel count: %d", stream.Channels)
	}

	return &ProbeInfo{
		SampleRate: sampleRate,
		Channels:   stream.Channels,
		Codec:      stream.CodecName,
		Duration:   duration,
		Bitrate:    bitrate,
		Format:     stream.CodecLongName,
	}, nil
}

// bytesToFloat64 converts raw float64 little-endian bytes, dropping any
// trailing partial sample.
func bytesToFloat64(data []byte) []float64 {
	sampleCount := len(data) / 8
	if sampleCount == 0 {
		return nil
	}

	samples := make([]float64, sampleCount)
	for i := range sampleCount {
		bits := binary.LittleEndian.Uint64(data[i*8 : i*8+8])
		samples[i] = math.Float64frombits(bits)
	}
	return samples
}
