package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/GusBusDraws/aps-directional/internal/config"
	"github.com/GusBusDraws/aps-directional/internal/services"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:         "config",
		Short:       "Manage the configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(newConfigInitCommand())
	cmd.AddCommand(newConfigValidateCommand(ctx))
	return cmd
}

func newConfigInitCommand() *cobra.Command {
	var (
		path  string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a sample configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			target := path
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return services.Wrap(services.ErrConfiguration, "config", "init", "", err)
				}
				target = defaultPath
			} else {
				expanded, err := config.ExpandPath(target)
				if err != nil {
					return services.Wrap(services.ErrValidation, "config", "init", "", err)
				}
				target = expanded
			}

			if _, err := os.Stat(target); err == nil && !force {
				return services.Wrap(services.ErrValidation, "config", "init",
					fmt.Sprintf("%s already exists (pass --force to replace it)", target), nil)
			}

			if err := config.CreateSample(target); err != nil {
				return services.Wrap(services.ErrConfiguration, "config", "init", "", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote sample configuration to %s\n", target)
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "Where to write the file (default ~/.config/apsdir/config.toml)")
	cmd.Flags().BoolVar(&force, "force", false, "Replace an existing file")
	return cmd
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the configuration file and show the effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var requested string
			if ctx.configFlag != nil {
				requested = strings.TrimSpace(*ctx.configFlag)
			}

			cfg, path, exists, err := config.Load(requested)
			if err != nil {
				return services.Wrap(services.ErrConfiguration, "config", "validate", "", err)
			}

			out := cmd.OutOrStdout()
			if exists {
				fmt.Fprintf(out, "Configuration file %s is valid.\n", path)
			} else {
				fmt.Fprintf(out, "No configuration file at %s; built-in defaults are in effect.\n", path)
			}

			rows := [][]string{
				{"tools.ffmpeg", cfg.Tools.FFmpeg},
				{"tools.ffprobe", cfg.Tools.FFprobe},
				{"tools.viewer", cfg.Tools.Viewer},
				{"tools.render_timeout", fmt.Sprintf("%ds", cfg.Tools.RenderTimeout)},
				{"render.fps", fmt.Sprintf("%d", cfg.Render.FPS)},
				{"render.pixel_format", cfg.Render.PixelFormat},
				{"render.even_crop", fmt.Sprintf("%t", cfg.Render.EvenCrop)},
				{"gif.fps", fmt.Sprintf("%d", cfg.GIF.FPS)},
				{"history.enabled", fmt.Sprintf("%t", cfg.History.Enabled)},
				{"logging.format", cfg.Logging.Format},
				{"logging.level", cfg.Logging.Level},
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Setting", "Value"},
				rows,
				[]columnAlignment{alignLeft, alignLeft},
			))
			return nil
		},
	}
}
