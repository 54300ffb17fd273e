package report

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"genyscrape/lib/racedate"
	"genyscrape/lib/telemetry"
)

// ErrDestinationBusy is returned when the destination is held by another program,
// usually because it is open in a spreadsheet application. Saving can be retried.
var ErrDestinationBusy = errors.New("destination busy")

type Sink interface {
	Save(ctx context.Context, table Table, dest string) error
}

type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatXLSX, FormatCSV:
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown format %q (expected xlsx or csv)", s)
}

func SinkFor(format Format) Sink {
	if format == FormatCSV {
		return CSVSink{}
	}
	return XLSXSink{}
}

// DestinationFor returns dir/DD-MM-YYYY.<format>.
func DestinationFor(dir string, date racedate.Date, format Format) string {
	return filepath.Join(dir, date.FileStem()+"."+string(format))
}

// lockFile is the owner file office suites create next to a document they have open.
func lockFile(dest string) string {
	return filepath.Join(filepath.Dir(dest), "~$"+filepath.Base(dest))
}

// openDestination creates or truncates dest, reporting ErrDestinationBusy when
// another program holds it.
func openDestination(dest string) (*os.File, error) {
	if _, err := os.Stat(lockFile(dest)); err == nil {
		return nil, fmt.Errorf("%s is open in another program: %w", dest, ErrDestinationBusy)
	}
	file, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if errors.Is(err, fs.ErrPermission) {
		return nil, fmt.Errorf("%s: %w: %w", dest, ErrDestinationBusy, err)
	}
	if err != nil {
		return nil, err
	}
	return file, nil
}

// writeDestination opens `dest` and hands it to `write`, a failure to flush
// the file on close fails the save.
func writeDestination(dest string, write func(w io.Writer) error) error {
	file, err := openDestination(dest)
	if err != nil {
		return err
	}
	return writeAndClose(file, write)
}

func writeAndClose(wc io.WriteCloser, write func(w io.Writer) error) (err error) {
	defer func() {
		err = errors.Join(err, wc.Close())
	}()
	return write(wc)
}

const report_save_busy = "save.busy"

type RetryOptions struct {
	// Interval is the wait between two attempts, defaults to 5 seconds.
	Interval time.Duration
	// MaxAttempts bounds the number of attempts, 0 means retry until ctx is done.
	MaxAttempts int
	Tel         telemetry.API
}

// SaveWithRetry saves the table, waiting and trying again for as long as the
// destination is busy.
func SaveWithRetry(ctx context.Context, sink Sink, table Table, dest string, opts RetryOptions) error {
	interval := opts.Interval
	if interval <= 0 {
		interval = 5 * time.Second
	}
	tel := opts.Tel
	if tel == nil {
		tel = telemetry.SlogAPI{}
	}

	for attempt := 1; ; attempt++ {
		err := sink.Save(ctx, table, dest)
		if err == nil || !errors.Is(err, ErrDestinationBusy) {
			return err
		}
		tel.ReportWarning(report_save_busy, "dest", dest, "attempt", attempt, "err", err)
		if opts.MaxAttempts > 0 && attempt >= opts.MaxAttempts {
			return err
		}

		select {
		case <-ctx.Done():
			return errors.Join(err, ctx.Err())
		case <-time.After(interval):
		}
	}
}
