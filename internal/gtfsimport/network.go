// Package gtfsimport seeds a fare network from a GTFS static feed.
//
// Each route becomes a line with a two-digit prefix in route ID order. The
// stops of the route's longest trip are numbered prefix-01, prefix-02, ... in
// stop sequence order and keep the stop name, so stops shared between routes
// become transfer hubs through their common name.
package gtfsimport

import (
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"faregrid.ticketconsole.org/internal/fares"
	"faregrid.ticketconsole.org/internal/logging"
	"faregrid.ticketconsole.org/internal/models"
	"github.com/jamespfennell/gtfs"
)

// Options tune the conversion.
type Options struct {
	// SegmentFare, when positive, is stored as the regular and express price
	// of every pair of adjacent stops.
	SegmentFare float64
	Logger      *slog.Logger
}

// Report summarises a conversion.
type Report struct {
	Lines         int      `json:"lines"`
	Stations      int      `json:"stations"`
	Fares         int      `json:"fares"`
	TransferHubs  int      `json:"transfer_hubs"`
	SkippedRoutes []string `json:"skipped_routes,omitempty"`
	Warnings      int      `json:"warnings"`
}

var hexColor = regexp.MustCompile(`^[0-9A-Fa-f]{6}$`)

// BuildSnapshot converts parsed static data into a network snapshot.
func BuildSnapshot(static *gtfs.Static, opts Options) (models.Snapshot, Report) {
	snap := models.Snapshot{
		Stations: []models.Station{},
		Lines:    []models.Line{},
		Fares:    []models.FareEntry{},
	}
	report := Report{Warnings: len(static.Warnings)}

	tripsByRoute := make(map[string][]gtfs.ScheduledTrip)
	for _, trip := range static.Trips {
		if trip.Route == nil {
			continue
		}
		tripsByRoute[trip.Route.Id] = append(tripsByRoute[trip.Route.Id], trip)
	}

	routes := append([]gtfs.Route(nil), static.Routes...)
	sort.Slice(routes, func(i, j int) bool { return routes[i].Id < routes[j].Id })

	lineNo := 0
	for _, route := range routes {
		stops := representativeStops(tripsByRoute[route.Id])
		if len(stops) == 0 {
			report.SkippedRoutes = append(report.SkippedRoutes, route.Id)
			continue
		}
		lineNo++
		prefix := fmt.Sprintf("%02d", lineNo)

		line := models.Line{
			ID:          route.Id,
			DisplayName: firstNonEmpty(route.ShortName, route.LongName, route.Id),
			EnName:      route.LongName,
			Color:       routeColor(route.Color),
			Stations:    make([]string, 0, len(stops)),
		}
		for i, stop := range stops {
			code := fares.FormatCode(prefix, i+1)
			line.Stations = append(line.Stations, code)
			snap.Stations = append(snap.Stations, models.Station{Code: code, Name: strings.TrimSpace(stop.Name)})
			if i > 0 && opts.SegmentFare > 0 {
				snap.Fares = append(snap.Fares, models.FareEntry{
					From:        line.Stations[i-1],
					To:          code,
					CostRegular: models.Amount(opts.SegmentFare),
					CostExpress: models.Amount(opts.SegmentFare),
				})
			}
		}
		snap.Lines = append(snap.Lines, line)
	}

	report.Lines = len(snap.Lines)
	report.Stations = len(snap.Stations)
	report.Fares = len(snap.Fares)
	report.TransferHubs = len(fares.NewCatalog(snap.Stations).TransferHubs())

	logging.LogOperation(opts.Logger, "gtfs_network_built",
		slog.Int("lines", report.Lines),
		slog.Int("stations", report.Stations),
		slog.Int("transfer_hubs", report.TransferHubs),
		slog.Int("skipped_routes", len(report.SkippedRoutes)),
		slog.Int("warnings", report.Warnings))

	return snap, report
}

// representativeStops returns the stops of the trip with the most stop
// times, ties broken by trip ID, in stop sequence order.
func representativeStops(trips []gtfs.ScheduledTrip) []*gtfs.Stop {
	var best *gtfs.ScheduledTrip
	for i := range trips {
		t := &trips[i]
		if best == nil || len(t.StopTimes) > len(best.StopTimes) ||
			(len(t.StopTimes) == len(best.StopTimes) && t.ID < best.ID) {
			best = t
		}
	}
	if best == nil {
		return nil
	}

	stopTimes := append([]gtfs.ScheduledStopTime(nil), best.StopTimes...)
	sort.SliceStable(stopTimes, func(i, j int) bool {
		return stopTimes[i].StopSequence < stopTimes[j].StopSequence
	})

	stops := make([]*gtfs.Stop, 0, len(stopTimes))
	for _, st := range stopTimes {
		if st.Stop != nil {
			stops = append(stops, st.Stop)
		}
	}
	return stops
}

func routeColor(c string) string {
	c = strings.TrimPrefix(strings.TrimSpace(c), "#")
	if !hexColor.MatchString(c) {
		return ""
	}
	return "#" + strings.ToLower(c)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
