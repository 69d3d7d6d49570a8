package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"faregrid.ticketconsole.org/internal/fares"
	"faregrid.ticketconsole.org/internal/logging"
	"faregrid.ticketconsole.org/internal/models"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	fareStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
)

func newQuoteCmd(opts *rootOptions) *cobra.Command {
	var tierName string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "quote FROM TO",
		Short: "Resolve the fare between two station codes",
		Args:  cobra.ExactArgs(2),
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
			resolver := fares.NewResolver(snap, fares.WithDiagnostics(logging.NewFareDiagnostics(logger)))
			quote := resolver.Explain(args[0], args[1], tier)

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(quote)
			}
			printQuote(cmd.OutOrStdout(), resolver.Catalog(), quote)
			return nil
		},
	}

	cmd.Flags().StringVar(&tierName, "tier", string(models.TierRegular), "Fare tier (regular|express)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the quote as JSON")
	return cmd
}

func printQuote(w io.Writer, catalog *fares.Catalog, q fares.Quote) {
	fmt.Fprintf(w, "%s → %s (%s)\n", stationLabel(catalog, q.From), stationLabel(catalog, q.To), q.Tier)

	fare := "no fare"
	if q.Fare != nil {
		fare = formatFare(*q.Fare)
	}
	fmt.Fprintf(w, "%s %s %s\n", labelStyle.Render("fare:"), fareStyle.Render(fare), labelStyle.Render("("+string(q.Method)+")"))
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("line fare:"), optionalFare(q.LineFare))
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("transfer fare:"), optionalFare(q.TransferFare))
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("segment fare:"), formatFare(q.SegmentFare))
	if q.ViaFrom != "" {
		fmt.Fprintf(w, "%s %s / %s\n", labelStyle.Render("transfer at:"), q.ViaFrom, q.ViaTo)
	}
}

func stationLabel(catalog *fares.Catalog, code string) string {
	if s, ok := catalog.Station(code); ok && s.Name != "" {
		return fmt.Sprintf("%s %s", code, s.Name)
	}
	return code
}

func optionalFare(v *float64) string {
	if v == nil {
		return "-"
	}
	return formatFare(*v)
}

func formatFare(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
