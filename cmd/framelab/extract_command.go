package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"framelab/internal/catalog"
	"framelab/internal/chunkpath"
	"framelab/internal/config"
)

func newExtractCommand(ctx *commandContext) *cobra.Command {
	var nameFlag string
	var frames []int
	var slowCount bool

	cmd := &cobra.Command{
		Use:   "extract <video>",
		Short: "Extract frames from a video into the frames directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			videoPath, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}
			name := nameFlag
			if name == "" {
				name = deriveName(videoPath)
			}

			store, err := ctx.openCatalog()
			if err != nil {
				return err
			}
			defer store.Close()

			record, err := store.GetByName(cmd.Context(), name)
			if err != nil {
				return err
			}
			if record == nil {
				record, err = store.Register(cmd.Context(), name, videoPath)
				if err != nil {
					return err
				}
			}

			extractor, err := ctx.extractor()
			if err != nil {
				return err
			}
			count, err := extractor.Count(cmd.Context(), videoPath, cfg.Extract.FastCount && !slowCount)
			if err != nil {
				return err
			}

			framesDir := filepath.Join(cfg.Paths.FramesDir, name)
			suffix := cfg.Extract.FrameSuffix
			namer, err := chunkpath.NewNamer("", cfg.Extract.ChunkSizes, func(index int) string {
				return name + "_frame" + fmt.Sprintf("%d", index) + suffix
			})
			if err != nil {
				return err
			}

			var targets []int
			if cmd.Flags().Changed("frames") {
				targets = frames
			}

			if err := store.SetStatus(cmd.Context(), record.ID, catalog.StatusExtracting, ""); err != nil {
				return err
			}
			if err := extractor.Extract(cmd.Context(), videoPath, framesDir, namer, suffix, targets); err != nil {
				_ = store.SetStatus(cmd.Context(), record.ID, catalog.StatusFailed, err.Error())
				return err
			}

			record.FramesPath = framesDir
			record.FrameCount = count
			record.Status = catalog.StatusExtracted
			if err := store.Update(cmd.Context(), record); err != nil {
				return err
			}

			logger.Info("frames extracted",
				"component", "extract",
				"video", name,
				"frames", count,
				"output", framesDir,
			)
			fmt.Fprintf(cmd.OutOrStdout(), "Extracted %s into %s (%d frames in source)\n", name, framesDir, count)
			return nil
		},
	}

	cmd.Flags().StringVarP(&nameFlag, "name", "n", "", "Record name (defaults to the video filename stem)")
	cmd.Flags().IntSliceVar(&frames, "frames", nil, "Extract only these frame indices")
	cmd.Flags().BoolVar(&slowCount, "slow-count", false, "Count frames by decoding the stream instead of reading packet counts")
	return cmd
}
