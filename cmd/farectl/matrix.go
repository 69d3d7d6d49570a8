package main

import (
	"fmt"
	"io"
	"strings"

	"faregrid.ticketconsole.org/internal/fares"
	"faregrid.ticketconsole.org/internal/logging"
	"faregrid.ticketconsole.org/internal/models"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func newMatrixCmd(opts *rootOptions) *cobra.Command {
	var tierName string
	var hints bool

	cmd := &cobra.Command{
		Use:   "matrix",
		Short: "Print the fare matrix between display stations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tier, err := models.ParseTier(tierName)
			if err != nil {
				return err
			}

			client, logger, err := opts.openStore(cmd)
			if err != nil {
				return err
			}
			defer logging.SafeCloseWithLogging(client, logger, "fare_store")

			snap, err := client.Snapshot(commandContext(cmd))
			if err != nil {
				return err
			}
			m := fares.BuildMatrix(snap, tier, fares.WithDiagnostics(logging.NewFareDiagnostics(logger)))
			renderMatrix(cmd.OutOrStdout(), m, hints)
			return nil
		},
	}

	cmd.Flags().StringVar(&tierName, "tier", string(models.TierRegular), "Fare tier (regular|express)")
	cmd.Flags().BoolVar(&hints, "hints", false, "Show line colour swatches next to each fare")
	return cmd
}

func renderMatrix(w io.Writer, m fares.Matrix, hints bool) {
	if len(m.Rows) == 0 {
		fmt.Fprintln(w, "no stations")
		return
	}

	headers := make([]string, 0, len(m.Rows)+1)
	headers = append(headers, string(m.Tier))
	for _, g := range m.Rows {
		headers = append(headers, g.Label())
	}

	rows := make([][]string, len(m.Rows))
	for i, g := range m.Rows {
		row := make([]string, 0, len(m.Rows)+1)
		row = append(row, g.Label())
		for j, cell := range m.Cells[i] {
			text := matrixCell(cell)
			if hints && len(m.LineHints[i][j]) > 0 {
				text += " " + swatches(m.LineHints[i][j])
			}
			row = append(row, text)
		}
		rows[i] = row
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow || col == 0 {
				return headerStyle
			}
			return cellStyle
		})
	fmt.Fprintln(w, t.Render())
	fmt.Fprintf(w, "max fare: %s\n", formatFare(m.MaxFare))
}

func matrixCell(c fares.Cell) string {
	switch c.State {
	case fares.CellPriced:
		return formatFare(c.Fare)
	case fares.CellNotApplicable:
		return "-"
	default:
		return "?"
	}
}

// swatches renders one coloured block per line colour.
func swatches(colors []string) string {
	parts := make([]string, len(colors))
	for i, c := range colors {
		parts[i] = lipgloss.NewStyle().Foreground(lipgloss.Color(c)).Render("██")
	}
	return strings.Join(parts, "")
}
