package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/GusBusDraws/aps-directional/internal/config"
	"github.com/GusBusDraws/aps-directional/internal/logging"
	"github.com/GusBusDraws/aps-directional/internal/sequence"
	"github.com/GusBusDraws/aps-directional/internal/services"
	"github.com/GusBusDraws/aps-directional/internal/services/viewer"
)

func newViewCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "view <directory>",
		Short: "Open a directory of images in the configured GUI viewer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger := ctx.loggerFor(cmd.Context())

			dir, err := config.ExpandPath(args[0])
			if err != nil {
				return services.Wrap(services.ErrValidation, "view", "resolve directory", "", err)
			}
			info, err := os.Stat(dir)
			if err != nil {
				return services.Wrap(services.ErrValidation, "view", "stat directory", "", err)
			}
			if !info.IsDir() {
				return services.Wrap(services.ErrValidation, "view", "stat directory", fmt.Sprintf("%s is not a directory", dir), nil)
			}

			// A directory without sequences still opens, the viewer may handle
			// loose images, but it is worth a warning.
			if sequences, err := sequence.Scan(dir, nil); err == nil && len(sequences) == 0 {
				logger.Warn("no numbered image sequences in directory", logging.String("dir", dir))
			}

			client, err := viewer.New(cfg.Tools.Viewer, cfg.Tools.ViewerArgs)
			if err != nil {
				return services.Wrap(services.ErrConfiguration, "view", "viewer", "set tools.viewer in the configuration", err)
			}
			pid, err := client.Open(cmd.Context(), dir)
			if err != nil {
				return services.Wrap(services.ErrExternalTool, "view", "launch viewer", "", err)
			}

			logger.Info("viewer launched",
				logging.String("viewer", cfg.Tools.Viewer),
				logging.Int("pid", pid),
				logging.String("dir", dir))
			fmt.Fprintf(cmd.OutOrStdout(), "Launched %s (pid %d) on %s\n", cfg.Tools.Viewer, pid, dir)
			return nil
		},
	}
}
