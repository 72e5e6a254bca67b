package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Domenick1991/airroutes/internal/domain"
	"github.com/Domenick1991/airroutes/internal/repository"
	"github.com/Domenick1991/airroutes/internal/service/search"
	"github.com/spf13/cobra"
)

func importCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "import <fixture.yaml>",
		Short: "Replace the snapshot with the contents of a YAML fixture",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := loadFixture(args[0])
			if err != nil {
				return err
			}
			store, err := repository.OpenSQLite(g.db)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Load(cmd.Context(), snap); err != nil {
				return fmt.Errorf("load snapshot: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d segments, %d tariffs, %d airports, %d carriers, %d cities into %s\n",
				len(snap.Segments), len(snap.Tariffs), len(snap.Airports), len(snap.Carriers), len(snap.Cities), g.db)
			return nil
		},
	}
}

func searchCmd(g *globalFlags) *cobra.Command {
	var (
		origins      string
		destinations string
		dateFrom     string
		dateTo       string
		weight       float64
	)

	c := &cobra.Command{
		Use:   "search",
		Short: "Search itineraries and print them as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			from, err := time.Parse(domain.DateLayout, dateFrom)
			if err != nil {
				return fmt.Errorf("--date: %w", err)
			}
			req := search.Request{
				Origins:      splitCodes(origins),
				Destinations: splitCodes(destinations),
				DateFrom:     from,
				Weight:       weight,
			}
			if dateTo != "" {
				if req.DateTo, err = time.Parse(domain.DateLayout, dateTo); err != nil {
					return fmt.Errorf("--date-to: %w", err)
				}
			}

			store, err := repository.OpenSQLite(g.db)
			if err != nil {
				return err
			}
			defer store.Close()

			res, err := newService(store, g, cmd).Search(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(cmd, res)
		},
	}

	c.Flags().StringVar(&origins, "from", "", "origin IATA codes, comma separated (required)")
	c.Flags().StringVar(&destinations, "to", "", "destination IATA codes, comma separated (required)")
	c.Flags().StringVar(&dateFrom, "date", "", "first departure date, YYYY-MM-DD (required)")
	c.Flags().StringVar(&dateTo, "date-to", "", "last departure date, YYYY-MM-DD")
	c.Flags().Float64Var(&weight, "weight", 0, "shipment weight in kg (default from settings)")

	_ = c.MarkFlagRequired("from")
	_ = c.MarkFlagRequired("to")
	_ = c.MarkFlagRequired("date")
	return c
}

func nearestCmd(g *globalFlags) *cobra.Command {
	var (
		city, uf string
		lat, lon float64
	)

	c := &cobra.Command{
		Use:   "nearest",
		Short: "Find the active airport closest to a city or a coordinate",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := repository.OpenSQLite(g.db)
			if err != nil {
				return err
			}
			defer store.Close()
			svc := newService(store, g, cmd)

			if city != "" || uf != "" {
				res, err := svc.NearestAirportToCity(cmd.Context(), city, uf)
				if err != nil {
					return err
				}
				return printJSON(cmd, res)
			}
			if !cmd.Flags().Changed("lat") || !cmd.Flags().Changed("lon") {
				return fmt.Errorf("either --city and --uf or --lat and --lon are required")
			}
			res, err := svc.NearestAirport(cmd.Context(), lat, lon)
			if err != nil {
				return err
			}
			return printJSON(cmd, res)
		},
	}

	c.Flags().StringVar(&city, "city", "", "city name, accents optional")
	c.Flags().StringVar(&uf, "uf", "", "state of the city")
	c.Flags().Float64Var(&lat, "lat", 0, "latitude in degrees")
	c.Flags().Float64Var(&lon, "lon", 0, "longitude in degrees")
	return c
}

func newService(store *repository.SQLiteStore, g *globalFlags, cmd *cobra.Command) *search.SearchService {
	return search.NewSearchService(store.Segments(), store.Carriers(), store.Tariffs(), store.Airports(), store.Cities(),
		search.WithLogger(g.logger(cmd)))
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func splitCodes(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
}
