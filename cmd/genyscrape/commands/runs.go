package commands

import (
	"os"
	"time"

	"genyscrape/lib/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var runsDb string

func init() {
	runsCmd.Flags().StringVar(&runsDb, "db", "", "The sqlite database runs were stored in.")
	rootCmd.AddCommand(runsCmd)
}

var runsCmd = &cobra.Command{
	Use:   "runs [--db <path>]",
	Short: "Lists the stored scrape runs.",
	Run: func(cmd *cobra.Command, args []string) {
		dbPath := cfg.Database
		if runsDb != "" {
			dbPath = runsDb
		}
		store, closeStore, ok, err := openStore(dbPath)
		if err != nil {
			serviceutil.Fatal("failed to open db", err)
		}
		if !ok {
			serviceutil.Fatal("no database configured", errNoDatabase)
		}
		defer closeStore()

		runs, err := store.Runs(cmd.Context())
		if err != nil {
			serviceutil.Fatal("failed to list runs", err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Id", "Date", "Started", "Duration", "Races", "Payouts", "Rows"})
		for _, r := range runs {
			duration := ""
			if !r.FinishedAt.IsZero() {
				duration = r.FinishedAt.Sub(r.StartedAt).Round(time.Second).String()
			}
			t.AppendRow(table.Row{
				r.ID,
				r.Date.String(),
				r.StartedAt.Format(time.DateTime),
				duration,
				r.RacePages,
				r.PayoutPages,
				r.Rows,
			})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
