package commands

import (
	"context"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/RyanBlaney/sonido-frames/logging"
)

// Version is set at build time with -ldflags.
var Version = "dev"

type rootOptions struct {
	verbose bool
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "sonido-frames",
		Short: "Render audio into normalized spectral frames",
		Long: `sonido-frames - turn a section of an audio file into a sequence of
fixed-width spectral frames with values in [0, 1].

Each frame is the magnitude spectrum of one hop of audio, restricted to a
frequency band, averaged into a fixed number of bins, smoothed, normalized
and rounded. Frames are written as JSON (an array of arrays) or MessagePack.

Examples:
  # Seconds 30 to 37 of a song, 180 bins between 600 Hz and 16 kHz
  sonido-frames extract song.mp3 --start 30 --end 37 -o frames.json

  # Everything from a job file, overriding the bin count
  sonido-frames extract --config job.yaml --bins 64

  # Re-round an existing frame file to one decimal
  sonido-frames round frames.json --decimals 1`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(
		newExtractCmd(opts),
		newRoundCmd(opts),
		newVersionCmd(opts),
	)

	return cmd
}

// Execute runs the root command, cancelling it on interrupt.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return NewRootCmd().ExecuteContext(ctx)
}

// newLogger builds the CLI logger. When frames go to stdout every log line
// goes to stderr so the two never mix.
func newLogger(errOut io.Writer, level logging.Level, stdoutIsData bool) logging.Logger {
	var logger *logging.DefaultLogger
	switch {
	case stdoutIsData:
		logger = logging.NewWriterLogger(errOut, errOut)
	case errOut == os.Stderr:
		logger = logging.NewDefaultLogger()
		if os.Getenv("NO_COLOR") != "" {
			logger.SetColors(false)
		}
	default:
		logger = logging.NewWriterLogger(errOut, errOut)
	}
	logger.SetLevel(level)
	return logger
}
