package commands

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"genyscrape/internal/crawler"
	"genyscrape/internal/report"
	"genyscrape/internal/runstore"
	"genyscrape/lib/chrono"
	"genyscrape/lib/restyutil"
	"genyscrape/lib/telemetry"
)

// setupTelemetry exports traces and metrics when endpoints are configured,
// the returned function flushes them.
func setupTelemetry(ctx context.Context, tel telemetry.API) func() {
	t, err := telemetry.Setup(ctx, "genyscrape", cfg.Telemetry)
	if err != nil {
		tel.ReportWarning("telemetry.setup", "err", err)
		return func() {}
	}
	if !t.Enabled() {
		return func() {}
	}

	perfCtx, cancelPerf := context.WithCancel(ctx)
	telemetry.InstrumentPerfStats(perfCtx, 5*time.Second, tel)

	return func() {
		cancelPerf()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err := t.Shutdown(shutdownCtx)
		if err != nil {
			slog.Warn("failed to flush telemetry", "err", err)
		}
	}
}

func newEngine(tel telemetry.API) *crawler.Engine {
	var dump restyutil.InstrumentOutput
	if verbose && cfg.HttpDumpDir != "" {
		output, err := restyutil.NewFilesystemOutput(cfg.HttpDumpDir)
		if err != nil {
			tel.ReportWarning("http_dump.setup", "dir", cfg.HttpDumpDir, "err", err)
		} else {
			dump = output
		}
	}

	client := crawler.NewClient(crawler.ClientOptions{
		UserAgent:        cfg.UserAgent,
		Timeout:          cfg.Timeout(),
		RetryCount:       cfg.RetryCount,
		BypassCloudflare: cfg.BypassCloudflare,
		DumpOutput:       dump,
		Tel:              tel,
	})
	return crawler.NewEngine(crawler.Options{
		Client:      client,
		Concurrency: cfg.Concurrency,
		Tel:         tel,
	})
}

// openStore opens the run database, it returns ok = false when storage is disabled.
func openStore(path string) (store runstore.Store, close func(), ok bool, err error) {
	if path == "" {
		return runstore.Store{}, func() {}, false, nil
	}
	store, database, err := runstore.Open(path, chrono.NewStandardTime())
	if err != nil {
		return runstore.Store{}, nil, false, err
	}
	return store, func() { database.Close() }, true, nil
}

type outputFlags struct {
	out     string
	format  string
	preview bool
}

// resolveOutput decides the sink and destination, `out` may name a directory or
// a file whose extension picks the format.
func resolveOutput(flags outputFlags, name func(dir string, format report.Format) string) (report.Sink, string, error) {
	formatName := cfg.Format
	if flags.format != "" {
		formatName = flags.format
	}

	dir := cfg.OutputDir
	file := ""
	if flags.out != "" {
		ext := strings.TrimPrefix(filepath.Ext(flags.out), ".")
		if _, err := report.ParseFormat(ext); err == nil {
			file = flags.out
			if flags.format == "" {
				formatName = ext
			}
		} else {
			dir = flags.out
		}
	}

	format, err := report.ParseFormat(formatName)
	if err != nil {
		return nil, "", err
	}

	if file == "" {
		file = name(dir, format)
	}
	err = os.MkdirAll(filepath.Dir(file), 0755)
	if err != nil {
		return nil, "", err
	}
	return report.SinkFor(format), file, nil
}

func save(ctx context.Context, flags outputFlags, table report.Table, dest string, sink report.Sink, tel telemetry.API) error {
	if flags.preview {
		err := report.ConsoleSink{Out: os.Stdout}.Save(ctx, table, "")
		if err != nil {
			return err
		}
	}

	err := report.SaveWithRetry(ctx, sink, table, dest, report.RetryOptions{
		Interval:    cfg.SaveRetryInterval(),
		MaxAttempts: cfg.SaveMaxAttempts,
		Tel:         tel,
	})
	if err != nil {
		return err
	}
	slog.Info("saved report", "dest", dest, "rows", len(table.Rows))
	return nil
}
