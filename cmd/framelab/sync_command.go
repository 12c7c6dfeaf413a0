package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"framelab/internal/config"
	"framelab/internal/faults"
	"framelab/internal/frametable"
	"framelab/internal/tablestore"
)

func newSyncCommand(ctx *commandContext) *cobra.Command {
	var timeColumn string
	var allowExtrapolation bool

	cmd := &cobra.Command{
		Use:   "sync <name> <series>",
		Short: "Merge a time-stamped measurement series into a derived table",
		Long: `Merge interpolates each column of the series at every frame's elapsed
time and appends the results to the video's derived table. The series must
carry a numeric time column in the same clock as the table.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			name := args[0]
			seriesPath, err := config.ExpandPath(args[1])
			if err != nil {
				return err
			}

			store, err := ctx.openCatalog()
			if err != nil {
				return err
			}
			defer store.Close()

			entry, err := store.GetByName(cmd.Context(), name)
			if err != nil {
				return err
			}
			if entry == nil || entry.TablePath == "" {
				return faults.Wrap(faults.ErrNotFound, "cli", "sync",
					fmt.Sprintf("no derived table for %q; run table derive first", name), nil)
			}

			ts := tablestore.New()
			dst, err := ts.Load(entry.TablePath)
			if err != nil {
				return err
			}
			src, err := ts.Load(seriesPath)
			if err != nil {
				return err
			}

			elapsedColumn := frametable.DefaultNames().ElapsedTime
			if err := frametable.Merge(dst, elapsedColumn, src, timeColumn, frametable.MergeOptions{
				AllowExtrapolation: allowExtrapolation,
			}); err != nil {
				return err
			}
			if err := ts.Save(dst, entry.TablePath); err != nil {
				return err
			}

			logger.Info("series merged",
				"component", "sync",
				"video", name,
				"series", seriesPath,
				"columns", strings.Join(dst.ColumnNames(), ","),
			)
			fmt.Fprintf(cmd.OutOrStdout(), "Merged %s into %s (columns: %s)\n",
				seriesPath, entry.TablePath, strings.Join(dst.ColumnNames(), ", "))
			return nil
		},
	}

	cmd.Flags().StringVarP(&timeColumn, "time-column", "t", "time", "Name of the series time column")
	cmd.Flags().BoolVar(&allowExtrapolation, "allow-extrapolation", false, "Clamp frames outside the series range to the boundary samples")
	return cmd
}
