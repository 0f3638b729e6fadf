// Command ephemeris prints a sky report for a city: visibility tables
// for the Sun, Moon, and planets, lunar phase timing, close approaches,
// and the comets and satellites configured in objects.json.
package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/dbryant/ephemeris/internal/config"
	"github.com/dbryant/ephemeris/internal/ephem"
	"github.com/dbryant/ephemeris/internal/report"
	"github.com/dbryant/ephemeris/internal/sites"
	"github.com/dbryant/ephemeris/internal/version"
)

// fallbackCity is used when neither the flag nor the config names one.
const fallbackCity = "Los Gatos"

var (
	cityFlag   string
	dateFlag   string
	configFlag string
)

var rootCmd = &cobra.Command{
	Use:   "ephemeris",
	Short: "Print an ephemeris report for a city",
	Long: `Ephemeris computes a one-shot sky report for an observer city:
altitude, azimuth, rise/set times and magnitudes for the Sun, Moon,
planets, and any comets and satellites configured in objects.json.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runReport,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initLogging)

	rootCmd.PersistentFlags().StringVarP(&cityFlag, "city", "c", "", "Observer city name")
	rootCmd.PersistentFlags().StringVarP(&dateFlag, "date", "d", "", `Observation date, UT ("yyyy/mm/dd hh:mm", default now)`)
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", config.DefaultPath, "Path to the objects file")
	rootCmd.PersistentFlags().StringP("log-level", "l", "warn", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(tuiCmd)
}

func initLogging() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	levelStr, _ := rootCmd.PersistentFlags().GetString("log-level")
	level, err := zerolog.ParseLevel(levelStr)
	if err != nil {
		level = zerolog.WarnLevel
	}
	zerolog.SetGlobalLevel(level)
}

func runReport(cmd *cobra.Command, args []string) error {
	opts, cat, cfg, ok, err := setup()
	if err != nil || !ok {
		return err
	}
	return report.Run(os.Stdout, cat, cfg, opts)
}

// setup loads configuration and resolves the observer site and time.
// ok is false for the not-found city case, which prints its diagnostic
// and ends the run without an error.
func setup() (opts report.Options, cat *ephem.Catalog, cfg *config.Config, ok bool, err error) {
	cfg, err = config.Load(configFlag)
	if err != nil {
		log.Fatal().Err(err).Str("path", configFlag).Msg("Cannot load objects file")
	}

	city := cityFlag
	if city == "" {
		city = cfg.DefaultCity
	}
	if city == "" {
		city = fallbackCity
	}

	site, err := sites.Resolve(city, cfg.Cities)
	if err != nil {
		if errors.Is(err, sites.ErrNotFound) {
			fmt.Printf("City '%s' not found in global or local list\n", city)
			return report.Options{}, nil, nil, false, nil
		}
		return report.Options{}, nil, nil, false, err
	}

	now := time.Now().UTC()
	if dateFlag != "" {
		now, err = parseDate(dateFlag)
		if err != nil {
			return report.Options{}, nil, nil, false, err
		}
	}

	cat, err = ephem.NewCatalog()
	if err != nil {
		return report.Options{}, nil, nil, false, err
	}

	log.Debug().Str("city", site.Name).Time("at", now).Msg("Generating report")
	return report.Options{Site: site, Now: now}, cat, cfg, true, nil
}

// dateLayouts are accepted forms of the --date flag, read as UT.
var dateLayouts = []string{
	"2006/01/02 15:04:05",
	"2006/01/02 15:04",
	"2006/01/02",
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf(`date %q: want "yyyy/mm/dd hh:mm"`, s)
}
