package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"framelab/internal/config"
)

func newAudioCommand(ctx *commandContext) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "audio <video>",
		Short: "Extract the audio track of a video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			videoPath, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}
			dest := output
			if dest == "" {
				dest = filepath.Join(cfg.Paths.VideosDir, deriveName(videoPath)+".m4a")
			} else if dest, err = config.ExpandPath(dest); err != nil {
				return err
			}

			extractor, err := ctx.extractor()
			if err != nil {
				return err
			}
			if err := extractor.ExtractAudio(cmd.Context(), videoPath, dest); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote audio to %s\n", dest)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Destination audio file")
	return cmd
}
