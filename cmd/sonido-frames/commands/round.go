package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/RyanBlaney/sonido-frames/logging"
	"github.com/RyanBlaney/sonido-frames/sink"
)

func newRoundCmd(opts *rootOptions) *cobra.Command {
	var decimals int

	cmd := &cobra.Command{
		Use:   "round FILE...",
		Short: "Re-round frame files in place",
		Long: `Read each frame file (JSON or MessagePack, chosen by extension), round
every value half-to-even to --decimals places and write it back.

Rounding an already rounded file with the same precision leaves it
unchanged.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if decimals < 0 || decimals > 15 {
				return fmt.Errorf("--decimals must be in [0, 15], got %d", decimals)
			}

			level := logging.InfoLevel
			if opts.verbose {
				level = logging.DebugLevel
			}
			logger := newLogger(cmd.ErrOrStderr(), level, false).WithFields(logging.Fields{
				"command": "round",
			})

			for _, path := range args {
				if err := cmd.Context().Err(); err != nil {
					return err
				}

				m, err := sink.Read(path)
				if err != nil {
					return fmt.Errorf("read %s: %w", path, err)
				}
				if err := sink.Write(path, m.Round(decimals)); err != nil {
					return fmt.Errorf("write %s: %w", path, err)
				}

				logger.Info("Rounded frame file", logging.Fields{
					"path":     path,
					"frames":   m.Frames(),
					"bins":     m.Bins(),
					"decimals": decimals,
				})
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&decimals, "decimals", 2, "decimal places to keep")

	return cmd
}
