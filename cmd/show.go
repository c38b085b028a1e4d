package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/KaramelBytes/pricebook-cli/internal/layout"
)

var (
	showFormat   string
	searchFormat string
)

var showCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a price list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		res, err := svc.LoadDataset(args[0])
		if err != nil {
			return err
		}
		return printResult(cmd.OutOrStdout(), res, showFormat)
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <name> <query>",
	Short: "Show the rows of a price list that contain a substring",
	Long:  "Matching is case-insensitive against the row's fields joined by a single space. An empty query shows the whole list.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		res, err := svc.SearchDataset(args[0], args[1])
		if err != nil {
			return err
		}
		if len(res.Cells) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "(no matching rows)")
			return nil
		}
		return printResult(cmd.OutOrStdout(), res, searchFormat)
	},
}

func printResult(w io.Writer, res layout.Result, format string) error {
	switch strings.ToLower(format) {
	case "", "table":
		fmt.Fprintln(w, renderTable(res))
	case "cells":
		for _, c := range res.Cells {
			fmt.Fprintf(w, "%d\t%d\t%d\t%s\n", c.Row, c.Col, c.Span, c.Text)
		}
	case "tsv":
		for _, row := range res.Table() {
			fmt.Fprintln(w, strings.Join(row, "\t"))
		}
	default:
		return fmt.Errorf("unsupported --format: %s (use table|cells|tsv)", format)
	}
	return nil
}

// renderTable draws the result with a leading source row number column.
// Spanning cells are drawn bold.
func renderTable(res layout.Result) string {
	rows := res.Table()
	rowNums := res.MatchedRows()
	spans := map[[2]int]bool{}
	line := map[int]int{}
	for i, r := range rowNums {
		line[r] = i
	}
	for _, c := range res.Cells {
		if c.Span > 1 {
			spans[[2]int{line[c.Row], c.Col + 1}] = true
		}
	}

	headers := make([]string, res.Cols+1)
	headers[0] = "#"
	for i := 1; i <= res.Cols; i++ {
		headers[i] = strconv.Itoa(i)
	}
	data := make([][]string, len(rows))
	for i, row := range rows {
		data[i] = append([]string{strconv.Itoa(rowNums[i] + 1)}, row...)
	}

	plain := lipgloss.NewStyle().Padding(0, 1)
	bold := plain.Bold(true)
	dim := plain.Foreground(lipgloss.Color("8"))
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow, col == 0:
				return dim
			case spans[[2]int{row, col}]:
				return bold
			}
			return plain
		})
	return t.Render()
}

func init() {
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(searchCmd)
	showCmd.Flags().StringVarP(&showFormat, "format", "f", "table", "output format: table|cells|tsv")
	searchCmd.Flags().StringVarP(&searchFormat, "format", "f", "table", "output format: table|cells|tsv")
}
