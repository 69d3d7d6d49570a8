package main

import (
	"fmt"
	"strings"

	"faregrid.ticketconsole.org/internal/gtfsimport"
	"faregrid.ticketconsole.org/internal/logging"
	"faregrid.ticketconsole.org/internal/store"
	"github.com/spf13/cobra"
)

func newImportGTFSCmd(opts *rootOptions) *cobra.Command {
	var modeName string
	var segmentFare float64

	cmd := &cobra.Command{
		Use:   "import-gtfs SOURCE",
		Short: "Seed stations and lines from a GTFS static feed (file or URL)",
		Long: `import-gtfs turns every route of a GTFS static feed into a line. Stations
get codes of the form <line>-<sequence> from the route's longest trip, and
stops shared by several routes become transfer stations. With
--segment-fare, adjacent stations are priced at that amount in both tiers.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := store.ParseImportMode(modeName)
			if err != nil {
				return err
			}
			if segmentFare < 0 {
				return fmt.Errorf("--segment-fare must not be negative")
			}

			client, logger, err := opts.openStore(cmd)
			if err != nil {
				return err
			}
			defer logging.SafeCloseWithLogging(client, logger, "fare_store")

			report, err := gtfsimport.ImportFeed(commandContext(cmd), client, args[0], mode,
				gtfsimport.Options{SegmentFare: segmentFare, Logger: logger})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "lines: %d\nstations: %d\nfares: %d\ntransfer hubs: %d\n",
				report.Lines, report.Stations, report.Fares, report.TransferHubs)
			if len(report.SkippedRoutes) > 0 {
				fmt.Fprintf(out, "skipped routes without trips: %s\n", strings.Join(report.SkippedRoutes, ", "))
			}
			if report.Warnings > 0 {
				fmt.Fprintf(out, "feed warnings: %d\n", report.Warnings)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&modeName, "mode", "merge", "merge keeps existing data, replace clears it first")
	cmd.Flags().Float64Var(&segmentFare, "segment-fare", 0, "Price between adjacent stations, 0 to leave fares alone")
	return cmd
}
