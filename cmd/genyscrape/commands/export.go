package commands

import (
	"errors"
	"fmt"

	"genyscrape/internal/report"
	"genyscrape/lib/serviceutil"
	"genyscrape/lib/telemetry"

	"github.com/spf13/cobra"
)

var errNoDatabase = errors.New("set --db or the database config field")

var (
	exportRun    string
	exportDb     string
	exportOutput outputFlags
)

func init() {
	exportCmd.Flags().StringVar(&exportRun, "run", "", "The id of the run to export.")
	exportCmd.Flags().StringVar(&exportDb, "db", "", "The sqlite database the run was stored in.")
	exportCmd.Flags().StringVar(&exportOutput.out, "out", "", "The directory (or file) to write the report to.")
	exportCmd.Flags().StringVar(&exportOutput.format, "format", "", "The report format, xlsx or csv.")
	exportCmd.Flags().BoolVar(&exportOutput.preview, "preview", false, "Print the report to the console as well.")
	exportCmd.MarkFlagRequired("run")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export --run <id> [--out <dir>] [--format xlsx|csv] [--db <path>]",
	Short: "Writes the report of a stored run again.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		dbPath := cfg.Database
		if exportDb != "" {
			dbPath = exportDb
		}
		store, closeStore, ok, err := openStore(dbPath)
		if err != nil {
			serviceutil.Fatal("failed to open db", err)
		}
		if !ok {
			serviceutil.Fatal("no database configured", errNoDatabase)
		}
		defer closeStore()

		run, rows, err := store.Rows(ctx, exportRun)
		if err != nil {
			serviceutil.Fatal(fmt.Sprintf("failed to read run %s", exportRun), err)
		}

		sink, dest, err := resolveOutput(exportOutput, func(dir string, format report.Format) string {
			return report.DestinationFor(dir, run.Date, format)
		})
		if err != nil {
			serviceutil.Fatal("failed to resolve output", err)
		}

		table := report.Assemble(run.Date, rows)
		err = save(ctx, exportOutput, table, dest, sink, telemetry.SlogAPI{})
		if err != nil {
			serviceutil.Fatal(fmt.Sprintf("failed to save %s", dest), err)
		}
	},
}
