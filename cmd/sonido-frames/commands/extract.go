package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/RyanBlaney/sonido-frames/algorithms/temporal"
	"github.com/RyanBlaney/sonido-frames/config"
	"github.com/RyanBlaney/sonido-frames/frames"
	"github.com/RyanBlaney/sonido-frames/logging"
	"github.com/RyanBlaney/sonido-frames/sink"
	"github.com/RyanBlaney/sonido-frames/transcode"
)

type extractOptions struct {
	configFile string
	output     string
	format     string

	start, end float64
	sampleRate int

	low, high float64
	bins      int
	hop       int
	nFFT      int
	window    string
	noCenter  bool
	norm      string
	sigma     float64
	logFreq   bool
	scale     float64
	decimals  int

	compress  bool
	threshold float64
	ratio     float64
	gain      float64
}

func newExtractCmd(root *rootOptions) *cobra.Command {
	opts := &extractOptions{}
	defaults := frames.DefaultConfig()
	comp := temporal.DefaultCompressionParams()

	cmd := &cobra.Command{
		Use:   "extract [AUDIO]",
		Short: "Extract spectral frames from an audio file",
		Long: `Decode AUDIO (wav, aiff, mp3 and ogg natively, anything else through
ffmpeg), crop it to [--start, --end) seconds and write its frames.

Settings come from the defaults, then --config, then explicit flags.
--end 0 means the end of the file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			job, err := opts.job(cmd.Flags(), args)
			if err != nil {
				return err
			}
			return runExtract(cmd, root, job)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.configFile, "config", "c", "", "YAML job file")
	f.StringVarP(&opts.output, "output", "o", sink.Stdout, "output file, - for stdout")
	f.StringVar(&opts.format, "format", "", "output format: json or msgpack (default from extension)")

	f.Float64Var(&opts.start, "start", 0, "start time in seconds")
	f.Float64Var(&opts.end, "end", 0, "end time in seconds (0 = end of file)")
	f.IntVar(&opts.sampleRate, "sample-rate", 0, "resample to this rate before analysis (0 = native)")

	f.Float64Var(&opts.low, "low", defaults.LowCutFreq, "lower edge of the frequency band in Hz")
	f.Float64Var(&opts.high, "high", defaults.HighCutFreq, "upper edge of the frequency band in Hz")
	f.IntVar(&opts.bins, "bins", defaults.NumFrequencyBins, "values per frame")
	f.IntVar(&opts.hop, "hop", defaults.HopLength, "hop length in samples")
	f.IntVar(&opts.nFFT, "n-fft", defaults.TransformWindow, "transform window in samples")
	f.StringVar(&opts.window, "window", defaults.Window, "window function: hann, hamming, blackman, rectangular")
	f.BoolVar(&opts.noCenter, "no-center", false, "do not pad the signal so frames are centered on hops")
	f.StringVar(&opts.norm, "norm", string(defaults.NormalizationMode), "normalization: none, global or per_bin")
	f.Float64Var(&opts.sigma, "sigma", defaults.Sigma, "Gaussian smoothing across bins (0 disables)")
	f.BoolVar(&opts.logFreq, "log-freq", defaults.LogFrequency, "logarithmically spaced bins")
	f.Float64Var(&opts.scale, "scale", defaults.ScalingFactor, "scaling factor applied after normalization")
	f.IntVar(&opts.decimals, "decimals", defaults.RoundDecimals, "decimal places in the output")

	f.BoolVar(&opts.compress, "compress", false, "apply dynamic range compression before analysis")
	f.Float64Var(&opts.threshold, "threshold", comp.Threshold, "compression threshold")
	f.Float64Var(&opts.ratio, "ratio", comp.Ratio, "compression ratio")
	f.Float64Var(&opts.gain, "gain", comp.Gain, "gain applied after compression")

	return cmd
}

// job merges the defaults, the job file and the flags that were set.
func (o *extractOptions) job(flags *pflag.FlagSet, args []string) (*config.Job, error) {
	job := config.Default()
	if o.configFile != "" {
		var err error
		if job, err = config.Load(o.configFile); err != nil {
			return nil, err
		}
	}

	if len(args) == 1 {
		job.Input = args[0]
	}

	set := func(name string, apply func()) {
		if flags.Changed(name) {
			apply()
		}
	}

	p := &job.Pipeline
	set("output", func() { job.Output = o.output })
	set("format", func() { job.Format = o.format })
	set("start", func() { job.StartTime = o.start })
	set("end", func() { job.EndTime = o.end })
	set("sample-rate", func() { job.TargetSampleRate = o.sampleRate })
	set("low", func() { p.LowCutFreq = o.low })
	set("high", func() { p.HighCutFreq = o.high })
	set("bins", func() { p.NumFrequencyBins = o.bins })
	set("hop", func() { p.HopLength = o.hop })
	set("n-fft", func() { p.TransformWindow = o.nFFT })
	set("window", func() { p.Window = o.window })
	set("no-center", func() { p.Center = !o.noCenter })
	set("sigma", func() { p.Sigma = o.sigma })
	set("log-freq", func() { p.LogFrequency = o.logFreq })
	set("scale", func() { p.ScalingFactor = o.scale })
	set("decimals", func() { p.RoundDecimals = o.decimals })

	if flags.Changed("norm") {
		mode, err := frames.ParseNormalizationMode(o.norm)
		if err != nil {
			return nil, err
		}
		p.NormalizationMode = mode
	}

	compFlags := flags.Changed("threshold") || flags.Changed("ratio") || flags.Changed("gain")
	if o.compress || compFlags {
		if job.Compression == nil {
			c := temporal.DefaultCompressionParams()
			job.Compression = &c
		}
		set("threshold", func() { job.Compression.Threshold = o.threshold })
		set("ratio", func() { job.Compression.Ratio = o.ratio })
		set("gain", func() { job.Compression.Gain = o.gain })
	}

	if err := job.Validate(); err != nil {
		return nil, err
	}
	return job, nil
}

func runExtract(cmd *cobra.Command, root *rootOptions, job *config.Job) error {
	ctx := cmd.Context()

	level, err := logging.ParseLevel(job.LogLevel)
	if err != nil {
		return err
	}
	if root.verbose {
		level = logging.DebugLevel
	}
	logger := newLogger(cmd.ErrOrStderr(), level, job.Output == sink.Stdout)

	output, err := sink.ForPath(job.Output, job.Format)
	if err != nil {
		return err
	}

	loader := transcode.NewLoader(job.LoaderConfig(), transcode.WithLogger(logger))
	audio, err := loader.Load(ctx, job.Input)
	if err != nil {
		return err
	}

	extractor, err := frames.NewExtractor(job.FramesConfig(), frames.WithLogger(logger))
	if err != nil {
		return err
	}

	start, end := job.TimeRange(frames.Duration(len(audio.PCM), audio.SampleRate))
	ctx = logging.ContextWithFields(ctx, logging.Fields{"input": job.Input})

	out, err := extractor.Run(ctx, audio.PCM, audio.SampleRate, start, end)
	if err != nil {
		return fmt.Errorf("extract %s: %w", job.Input, err)
	}

	if err := output.Write(out); err != nil {
		return err
	}

	logger.Debug("Frames written", logging.Fields{
		"output": job.Output,
		"frames": out.Frames(),
		"bins":   out.Bins(),
	})
	return nil
}
