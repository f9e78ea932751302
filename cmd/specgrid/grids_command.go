package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"specgrid/internal/grid"
)

func newGridsCommand(ctx *commandContext) *cobra.Command {
	gridsCmd := &cobra.Command{
		Use:   "grids",
		Short: "Inspect registered grid modes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGridsList(cmd)
		},
	}

	gridsCmd.AddCommand(newGridsShowCommand(ctx))
	return gridsCmd
}

func runGridsList(cmd *cobra.Command) error {
	var rows [][]string
	for _, absolute := range []bool{false, true} {
		kind := "relative"
		if absolute {
			kind = "absolute"
		}
		for _, name := range grid.ModeNames(absolute) {
			mode, err := grid.LookupMode(name, absolute)
			if err != nil {
				return err
			}
			rows = append(rows, []string{
				mode.Name,
				kind,
				strings.Join(mode.Directories, ", "),
			})
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderTable(out, []string{"Mode", "Kind", "Directories"}, rows))
	return nil
}

func newGridsShowCommand(ctx *commandContext) *cobra.Command {
	var absolute bool

	cmd := &cobra.Command{
		Use:   "show <mode>",
		Short: "Show the axes and node coverage of an installed grid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			synthesizer, err := ctx.ensureSynthesizer()
			if err != nil {
				return err
			}
			catalog, err := synthesizer.Catalog(args[0], absolute)
			if err != nil {
				return err
			}

			var rows [][]string
			for _, axis := range catalog.Axes() {
				rows = append(rows, []string{
					axis.Name,
					strconv.Itoa(len(axis.Nodes)),
					strconv.FormatFloat(axis.Min(), 'g', -1, 64),
					strconv.FormatFloat(axis.Max(), 'g', -1, 64),
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(out, []string{"Axis", "Nodes", "Min", "Max"}, rows, 1, 2, 3))
			printer := message.NewPrinter(language.English)
			printer.Fprintf(out, "%d grid nodes installed\n", catalog.NodeCount())
			return nil
		},
	}

	cmd.Flags().BoolVar(&absolute, "absolute", false, "Inspect the absolute-flux registry")
	return cmd
}
