package telemetry

import (
	"context"
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v4/process"
	"go.opentelemetry.io/otel"
)

const report_perf_sample = "perf_stats.sample"

// PerfSample is a snapshot of the resources held by the current process.
type PerfSample struct {
	CPUPercent float64
	RSSBytes   uint64
	Goroutines int
}

// SamplePerf measures the current process, fields that could not be read
// are left zero and the first error is returned alongside.
func SamplePerf(ctx context.Context) (PerfSample, error) {
	sample := PerfSample{Goroutines: runtime.NumGoroutine()}

	proc, err := process.NewProcessWithContext(ctx, int32(os.Getpid()))
	if err != nil {
		return sample, err
	}
	sample.CPUPercent, err = proc.CPUPercentWithContext(ctx)
	if err != nil {
		return sample, err
	}
	mem, err := proc.MemoryInfoWithContext(ctx)
	if err != nil {
		return sample, err
	}
	sample.RSSBytes = mem.RSS
	return sample, nil
}

// InstrumentPerfStats records process gauges every `interval` until ctx is done.
func InstrumentPerfStats(ctx context.Context, interval time.Duration, tel API) {
	meter := otel.Meter("genyscrape.perf_stats")
	cpuGauge, _ := meter.Float64Gauge("process.cpu_percent")
	rssGauge, _ := meter.Int64Gauge("process.rss_mb")
	goroutineGauge, _ := meter.Int64Gauge("process.goroutines")

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}

			sample, err := SamplePerf(ctx)
			if err != nil {
				tel.ReportWarning(report_perf_sample, "err", err)
			}
			cpuGauge.Record(ctx, sample.CPUPercent)
			rssGauge.Record(ctx, int64(sample.RSSBytes/1_000_000))
			goroutineGauge.Record(ctx, int64(sample.Goroutines))
		}
	}()
}
