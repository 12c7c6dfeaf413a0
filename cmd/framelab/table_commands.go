package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"framelab/internal/catalog"
	"framelab/internal/faults"
	"framelab/internal/frametable"
	"framelab/internal/tablestore"
	"framelab/internal/video"
)

func newTableCommand(ctx *commandContext) *cobra.Command {
	tableCmd := &cobra.Command{
		Use:   "table",
		Short: "Derive and inspect per-frame measurement tables",
	}

	tableCmd.AddCommand(newTableDeriveCommand(ctx))
	tableCmd.AddCommand(newTableShowCommand(ctx))

	return tableCmd
}

func newTableDeriveCommand(ctx *commandContext) *cobra.Command {
	var fps float64
	var refIndex int
	var refElapsed float64
	var categories []string
	var recalculate bool
	var withPaths bool
	var requireTime bool

	cmd := &cobra.Command{
		Use:   "derive <name>",
		Short: "Derive the canonical per-frame table for an extracted video",
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
			if entry == nil {
				return faults.Wrap(faults.ErrNotFound, "cli", "table derive",
					fmt.Sprintf("no video named %q in the catalog; run extract first", name), nil)
			}
			if entry.FramesPath == "" {
				return faults.Wrap(faults.ErrConfiguration, "cli", "table derive",
					fmt.Sprintf("video %q has no extracted frames", name), nil)
			}

			columns := frametable.DefaultNames()
			if withPaths {
				columns.Path = "path"
			}
			record, err := video.NewRecord(entry.VideoPath, video.Options{
				Name:        name,
				FramesPath:  entry.FramesPath,
				FrameSuffix: cfg.Extract.FrameSuffix,
				TableDir:    cfg.Paths.TablesDir,
				Columns:     columns,
			})
			if err != nil {
				return err
			}

			data := video.VideoData{}
			if cmd.Flags().Changed("fps") {
				data.FPS = &fps
				data.RefIndex = &refIndex
				data.RefElapsed = &refElapsed
			}
			if len(categories) > 0 {
				data.Categories = make(map[string]string, len(categories))
				for _, pair := range categories {
					key, value, ok := strings.Cut(pair, "=")
					if !ok {
						return faults.Wrap(faults.ErrConfiguration, "cli", "table derive",
							fmt.Sprintf("category %q is not key=value", pair), nil)
					}
					data.Categories[key] = value
				}
			}
			record.SetData(data)

			extractor, err := ctx.extractor()
			if err != nil {
				return err
			}
			ts := tablestore.New()
			table, err := record.DeriveTable(cmd.Context(), extractor.Counter(cfg.Extract.FastCount), video.DeriveOptions{
				Recalculate: recalculate,
				ExistLoad:   !recalculate,
				EnforceTime: requireTime,
				Store:       ts,
			})
			if err != nil {
				return err
			}
			if err := record.SaveTable(ts); err != nil {
				return err
			}

			entry.TablePath = record.TablePath()
			entry.FrameCount = table.Len()
			if data.FPS != nil {
				entry.FPS = *data.FPS
			}
			entry.Status = catalog.StatusDerived
			if err := store.Update(cmd.Context(), entry); err != nil {
				return err
			}

			logger.Info("table derived",
				"component", "table",
				"video", name,
				"rows", table.Len(),
				"columns", strings.Join(table.ColumnNames(), ","),
			)
			fmt.Fprintf(cmd.OutOrStdout(), "Derived table for %s: %d rows, columns %s\n",
				name, table.Len(), strings.Join(table.ColumnNames(), ", "))
			fmt.Fprintf(cmd.OutOrStdout(), "Saved to %s\n", record.TablePath())
			return nil
		},
	}

	cmd.Flags().Float64Var(&fps, "fps", 0, "Frame rate of the recording")
	cmd.Flags().IntVar(&refIndex, "ref-index", 0, "Reference frame index for the time basis")
	cmd.Flags().Float64Var(&refElapsed, "ref-elapsed", 0, "Elapsed seconds at the reference frame")
	cmd.Flags().StringArrayVar(&categories, "category", nil, "Constant category column as key=value (repeatable)")
	cmd.Flags().BoolVar(&recalculate, "recalculate", false, "Recompute even when a persisted table exists")
	cmd.Flags().BoolVar(&withPaths, "with-paths", false, "Include a per-frame file path column")
	cmd.Flags().BoolVar(&requireTime, "require-time", false, "Fail when no time basis is available")
	return cmd
}

func newTableShowCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Print the head of a derived table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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
			if entry == nil || entry.TablePath == "" {
				return faults.Wrap(faults.ErrNotFound, "cli", "table show",
					fmt.Sprintf("no derived table for %q", name), nil)
			}

			table, err := tablestore.New().Load(entry.TablePath)
			if err != nil {
				return err
			}

			headers := table.ColumnNames()
			rows := tableRows(table, limit)
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, nil))
			if table.Len() > len(rows) {
				fmt.Fprintf(cmd.OutOrStdout(), "(%d of %d rows)\n", len(rows), table.Len())
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum rows to print")
	return cmd
}

func tableRows(table *frametable.Table, limit int) [][]string {
	count := table.Len()
	if limit > 0 && count > limit {
		count = limit
	}
	names := table.ColumnNames()
	rows := make([][]string, count)
	for i := 0; i < count; i++ {
		row := make([]string, len(names))
		for j, name := range names {
			column, _ := table.Column(name)
			switch column.Kind {
			case frametable.KindInt:
				row[j] = strconv.Itoa(column.Ints[i])
			case frametable.KindFloat:
				row[j] = strconv.FormatFloat(column.Floats[i], 'g', -1, 64)
			default:
				row[j] = column.Strings[i]
			}
		}
		rows[i] = row
	}
	return rows
}
