package commands

import (
	"fmt"
	"log/slog"
	"os"

	"genyscrape/internal/geny"
	"genyscrape/internal/report"
	"genyscrape/lib/chrono"
	"genyscrape/lib/racedate"
	"genyscrape/lib/serviceutil"
	"genyscrape/lib/telemetry"

	"github.com/spf13/cobra"
)

var (
	scrapeDate   string
	scrapeDb     string
	scrapeOutput outputFlags
)

func init() {
	scrapeCmd.Flags().StringVar(&scrapeDate, "date", "", "The race day to scrape as DD/MM/YYYY, prompted for when absent.")
	scrapeCmd.Flags().StringVar(&scrapeOutput.out, "out", "", "The directory (or file) to write the report to.")
	scrapeCmd.Flags().StringVar(&scrapeOutput.format, "format", "", "The report format, xlsx or csv.")
	scrapeCmd.Flags().BoolVar(&scrapeOutput.preview, "preview", false, "Print the report to the console as well.")
	scrapeCmd.Flags().StringVar(&scrapeDb, "db", "", "The sqlite file or libsql url to store the run in.")
	rootCmd.AddCommand(scrapeCmd)
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape [--date DD/MM/YYYY] [--out <dir>] [--format xlsx|csv] [--db <path>]",
	Short: "Scrapes a day of races and writes the report.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		tel := telemetry.SlogAPI{}
		clock := chrono.NewStandardTime()

		var date racedate.Date
		var err error
		if scrapeDate != "" {
			date, err = racedate.Parse(scrapeDate)
		} else {
			date, err = promptDate(os.Stdin, os.Stdout, clock)
		}
		if err != nil {
			serviceutil.Fatal("failed to read the race date", err)
		}

		sink, dest, err := resolveOutput(scrapeOutput, func(dir string, format report.Format) string {
			return report.DestinationFor(dir, date, format)
		})
		if err != nil {
			serviceutil.Fatal("failed to resolve output", err)
		}

		dbPath := cfg.Database
		if scrapeDb != "" {
			dbPath = scrapeDb
		}
		store, closeStore, storing, err := openStore(dbPath)
		if err != nil {
			serviceutil.Fatal("failed to open db", err)
		}
		defer closeStore()

		shutdown := setupTelemetry(ctx, tel)
		defer shutdown()

		slog.Info("scraping", "date", date.String(), "base_url", cfg.BaseURL)
		started := clock.Now()
		result, err := geny.Scrape(ctx, newEngine(tel), geny.SpiderOptions{
			Date:    date,
			BaseURL: cfg.BaseURL,
			Host:    cfg.Host,
			Tel:     tel,
		})
		if err != nil {
			shutdown()
			serviceutil.Fatal("scrape interrupted", err)
		}
		slog.Info(
			"scraped",
			"rows", len(result.Rows),
			"race_pages", result.RacePages,
			"payout_pages", result.PayoutPages,
			"seconds", clock.Now().Sub(started).Seconds(),
		)

		if storing {
			id, err := store.SaveRun(ctx, result, started)
			if err != nil {
				serviceutil.Fatal("failed to store run", err)
			}
			slog.Info("stored run", "id", id)
		}

		table := report.Assemble(date, result.Rows)
		err = save(ctx, scrapeOutput, table, dest, sink, tel)
		if err != nil {
			serviceutil.Fatal(fmt.Sprintf("failed to save %s", dest), err)
		}
	},
}
