package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"framelab/internal/catalog"
	"framelab/internal/faults"
)

func newCatalogCommand(ctx *commandContext) *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect and manage the video catalog",
	}

	catalogCmd.AddCommand(newCatalogListCommand(ctx))
	catalogCmd.AddCommand(newCatalogShowCommand(ctx))
	catalogCmd.AddCommand(newCatalogRemoveCommand(ctx))

	return catalogCmd
}

func newCatalogListCommand(ctx *commandContext) *cobra.Command {
	var statusFilter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalogued videos",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openCatalog()
			if err != nil {
				return err
			}
			defer store.Close()

			var entries []*catalog.Video
			if statusFilter != "" {
				status := catalog.Status(statusFilter)
				if !status.Valid() {
					return faults.Wrap(faults.ErrConfiguration, "cli", "catalog list",
						fmt.Sprintf("unknown status %q", statusFilter), nil)
				}
				entries, err = store.ListByStatus(cmd.Context(), status)
			} else {
				entries, err = store.List(cmd.Context())
			}
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Catalog is empty")
				return nil
			}

			colorize := shouldColorize(cmd.OutOrStdout())
			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				rows = append(rows, []string{
					strconv.FormatInt(entry.ID, 10),
					displayTitle(entry.Name),
					colorizeStatus(entry.Status, colorize),
					formatCount(entry.FrameCount),
					entry.CreatedAt.Local().Format(time.DateTime),
				})
			}
			table := renderTable(
				[]string{"ID", "Title", "Status", "Frames", "Created"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignLeft},
			)
			fmt.Fprintln(cmd.OutOrStdout(), table)
			return nil
		},
	}

	cmd.Flags().StringVar(&statusFilter, "status", "", "Only list videos with this status")
	return cmd
}

func newCatalogShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show the full catalog record for a video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openCatalog()
			if err != nil {
				return err
			}
			defer store.Close()

			entry, err := store.GetByName(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if entry == nil {
				return faults.Wrap(faults.ErrNotFound, "cli", "catalog show",
					fmt.Sprintf("no video named %q", args[0]), nil)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Name:        %s\n", entry.Name)
			fmt.Fprintf(out, "Status:      %s\n", colorizeStatus(entry.Status, shouldColorize(out)))
			fmt.Fprintf(out, "Video:       %s\n", entry.VideoPath)
			fmt.Fprintf(out, "Frames dir:  %s\n", valueOrDash(entry.FramesPath))
			fmt.Fprintf(out, "Table:       %s\n", valueOrDash(entry.TablePath))
			fmt.Fprintf(out, "Audio:       %s\n", valueOrDash(entry.AudioPath))
			fmt.Fprintf(out, "Frame count: %s\n", formatCount(entry.FrameCount))
			if entry.FPS > 0 {
				fmt.Fprintf(out, "FPS:         %s\n", strconv.FormatFloat(entry.FPS, 'g', -1, 64))
			}
			if entry.ErrorMessage != "" {
				fmt.Fprintf(out, "Error:       %s\n", entry.ErrorMessage)
			}
			fmt.Fprintf(out, "Created:     %s\n", entry.CreatedAt.Local().Format(time.DateTime))
			fmt.Fprintf(out, "Updated:     %s\n", entry.UpdatedAt.Local().Format(time.DateTime))
			return nil
		},
	}
}

func newCatalogRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove a video from the catalog",
		Long: `Remove deletes the catalog record only. Extracted frames, tables, and
datasets on disk are left untouched.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openCatalog()
			if err != nil {
				return err
			}
			defer store.Close()

			entry, err := store.GetByName(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if entry == nil {
				return faults.Wrap(faults.ErrNotFound, "cli", "catalog remove",
					fmt.Sprintf("no video named %q", args[0]), nil)
			}
			if err := store.Remove(cmd.Context(), entry.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from the catalog\n", entry.Name)
			return nil
		},
	}
}

func valueOrDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
