package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"framelab/internal/config"
	"framelab/internal/dataset"
	"framelab/internal/faults"
	"framelab/internal/remote"
	"framelab/internal/tablestore"
	"framelab/internal/video"
)

func newDatasetCommand(ctx *commandContext) *cobra.Command {
	datasetCmd := &cobra.Command{
		Use:   "dataset",
		Short: "Persist and restore frame datasets",
	}

	datasetCmd.AddCommand(newDatasetSaveCommand(ctx))
	datasetCmd.AddCommand(newDatasetLoadCommand(ctx))

	return datasetCmd
}

// lockDataset serializes dataset tree writes across CLI invocations.
func lockDataset(root string) (*flock.Flock, error) {
	lock := flock.New(root + ".lock")
	if err := lock.Lock(); err != nil {
		return nil, fmt.Errorf("lock dataset %s: %w", root, err)
	}
	return lock, nil
}

func newDatasetSaveCommand(ctx *commandContext) *cobra.Command {
	var output string
	var push bool

	cmd := &cobra.Command{
		Use:   "save <name>",
		Short: "Persist a video's frames and derived table as a dataset tree",
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
			name := args[0]

			store, err := ctx.openCatalog()
			if err != nil {
				return err
			}
			defer store.Close()

			entry, err := store.GetByName(cmd.Context(), name)
			if err != nil {
				return err
			}
			if entry == nil || entry.TablePath == "" || entry.FramesPath == "" {
				return faults.Wrap(faults.ErrNotFound, "cli", "dataset save",
					fmt.Sprintf("video %q needs extracted frames and a derived table", name), nil)
			}

			table, err := tablestore.New().Load(entry.TablePath)
			if err != nil {
				return err
			}
			frames, err := video.GlobFrames(entry.FramesPath, cfg.Extract.FrameSuffix)
			if err != nil {
				return err
			}

			root := output
			if root == "" {
				root = filepath.Join(cfg.Paths.DatasetsDir, name)
			} else if root, err = config.ExpandPath(root); err != nil {
				return err
			}

			lock, err := lockDataset(root)
			if err != nil {
				return err
			}
			defer lock.Unlock()

			ds := &dataset.Frames{Table: table, FramePaths: frames}
			opts := dataset.Options{
				ChunkSizes:  cfg.Extract.ChunkSizes,
				FrameSuffix: cfg.Extract.FrameSuffix,
			}
			if err := dataset.Save(ds, root, opts); err != nil {
				return err
			}

			if push {
				backend, err := remote.FromConfig(cfg)
				if err != nil {
					return err
				}
				if !backend.Available() {
					return faults.Wrap(faults.ErrConfiguration, "cli", "dataset save",
						"remote storage is not configured; enable [remote] to push", nil)
				}
				if err := backend.Push(cmd.Context(), root, name); err != nil {
					return err
				}
			}

			logger.Info("dataset saved",
				"component", "dataset",
				"video", name,
				"rows", ds.Len(),
				"root", root,
				"pushed", push,
			)
			fmt.Fprintf(cmd.OutOrStdout(), "Saved dataset %s (%d frames) to %s\n", name, ds.Len(), root)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Dataset root (defaults to the datasets directory)")
	cmd.Flags().BoolVar(&push, "push", false, "Upload the dataset tree to remote storage")
	return cmd
}

func newDatasetLoadCommand(ctx *commandContext) *cobra.Command {
	var pull bool

	cmd := &cobra.Command{
		Use:   "load <root>",
		Short: "Inspect a persisted dataset tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			root, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}

			if pull {
				backend, err := remote.FromConfig(cfg)
				if err != nil {
					return err
				}
				if !backend.Available() {
					return faults.Wrap(faults.ErrConfiguration, "cli", "dataset load",
						"remote storage is not configured; enable [remote] to pull", nil)
				}
				if err := backend.Pull(cmd.Context(), filepath.Base(root), root); err != nil {
					return err
				}
			}

			ds, err := dataset.Load(root, dataset.Options{FrameSuffix: cfg.Extract.FrameSuffix})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Dataset at %s: %d frames, columns %s\n",
				root, ds.Len(), strings.Join(ds.Table.ColumnNames(), ", "))
			return nil
		},
	}

	cmd.Flags().BoolVar(&pull, "pull", false, "Download the dataset tree from remote storage first")
	return cmd
}
