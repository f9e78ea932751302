package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"specgrid/internal/store"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Synthesis history",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistoryList(ctx, cmd, 20)
		},
	}

	var limit int
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded syntheses, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistoryList(ctx, cmd, limit)
		},
	}
	listCmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum records to show (0 for all)")

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every history record",
		RunE: func(cmd *cobra.Command, args []string) error {
			history, err := openHistoryStrict(ctx)
			if err != nil {
				return err
			}
			defer history.Close()
			if err := history.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "History cleared")
			return nil
		},
	}

	historyCmd.AddCommand(listCmd)
	historyCmd.AddCommand(clearCmd)
	return historyCmd
}

func runHistoryList(ctx *commandContext, cmd *cobra.Command, limit int) error {
	history, err := openHistoryStrict(ctx)
	if err != nil {
		return err
	}
	defer history.Close()

	records, err := history.List(cmd.Context(), limit)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(records) == 0 {
		fmt.Fprintln(out, "No syntheses recorded")
		return nil
	}

	rows := make([][]string, 0, len(records))
	for _, record := range records {
		point := make([]string, len(record.Point))
		for i, v := range record.Point {
			point[i] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		detail := record.OutputPath
		if record.Status == store.StatusFailed {
			detail = record.ErrorMessage
		}
		rows = append(rows, []string{
			strconv.FormatInt(record.ID, 10),
			record.CreatedAt.Format("2006-01-02 15:04"),
			string(record.Status),
			record.Mode,
			strings.Join(point, " "),
			fmt.Sprintf("[%g, %g]", record.WMin, record.WMax),
			strconv.Itoa(record.Points),
			detail,
		})
	}
	fmt.Fprintln(out, renderTable(out,
		[]string{"ID", "Created", "Status", "Mode", "Point", "Window", "Points", "Output"},
		rows, 0, 6))
	return nil
}

func openHistoryStrict(ctx *commandContext) (*store.Store, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	if !cfg.History.Enabled {
		return nil, fmt.Errorf("history is disabled in the configuration")
	}
	return store.Open(cfg)
}
