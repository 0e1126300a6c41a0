package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"creditmarker/internal/history"
	"creditmarker/internal/report"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect and prune stored comparison results",
	}

	historyCmd.AddCommand(newHistoryListCommand(ctx))
	historyCmd.AddCommand(newHistoryShowCommand(ctx))
	historyCmd.AddCommand(newHistoryDeleteCommand(ctx))

	return historyCmd
}

func newHistoryListCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored comparisons, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withHistory(func(store *history.Store) error {
				entries, err := store.List(cmd.Context(), limit)
				if err != nil {
					return err
				}
				if asJSON {
					if entries == nil {
						entries = []history.Entry{}
					}
					return writeJSON(cmd, entries)
				}
				out := cmd.OutOrStdout()
				if len(entries) == 0 {
					fmt.Fprintln(out, "No stored comparisons")
					return nil
				}
				rows := make([][]string, 0, len(entries))
				for _, e := range entries {
					rows = append(rows, []string{
						shortID(e.ID),
						humanize.Time(e.CreatedAt),
						e.BaseTitle,
						e.CompTitle,
						strconv.Itoa(e.Seconds),
						strconv.Itoa(e.MatchedSeconds),
						strconv.Itoa(e.Blocks),
					})
				}
				fmt.Fprintln(out, report.Table(
					[]string{"ID", "Created", "Base", "Comparison", "Seconds", "Matched", "Blocks"},
					rows,
					[]report.Alignment{report.AlignLeft, report.AlignLeft, report.AlignLeft, report.AlignLeft, report.AlignRight, report.AlignRight, report.AlignRight},
				))
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of entries (0 lists all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print entries as JSON")
	return cmd
}

func newHistoryShowCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a stored comparison (an unambiguous ID prefix is enough)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withHistory(func(store *history.Store) error {
				result, err := store.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if result == nil {
					return fmt.Errorf("comparison %s not found", strings.TrimSpace(args[0]))
				}
				if asJSON {
					return report.JSON(cmd.OutOrStdout(), result)
				}
				return report.Text(cmd.OutOrStdout(), result)
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")
	return cmd
}

func newHistoryDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a stored comparison",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withHistory(func(store *history.Store) error {
				// Resolve prefixes first so deletes never guess.
				result, err := store.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if result == nil {
					return fmt.Errorf("comparison %s not found", strings.TrimSpace(args[0]))
				}
				if _, err := store.Delete(cmd.Context(), result.ID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted comparison %s\n", shortID(result.ID))
				return nil
			})
		},
	}
}
