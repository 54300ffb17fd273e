package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScopedAPI(t *testing.T) {
	inner := NewTestAPI()
	scoped := NewScopedAPI("geny", inner)

	scoped.ReportBroken("payout.parse", "url")
	scoped.ReportWarning("race.hour", "x")
	scoped.ReportCount("join.rows", 3)

	broken := inner.Reports(KindBroken, "")
	require.Len(t, broken, 1)
	require.Equal(t, "geny: payout.parse", broken[0].Id)
	require.Equal(t, []any{"url"}, broken[0].Params)

	require.Len(t, inner.Reports(KindWarning, "race.hour"), 1)
	require.Len(t, inner.Reports(KindWarning, "payout"), 0)
	require.EqualValues(t, 3, inner.Count("join.rows"))
	require.EqualValues(t, -1, inner.Count("missing"))
}

func TestSetupWithoutEndpoints(t *testing.T) {
	tel, err := Setup(context.Background(), "test:telemetry", Config{})
	require.NoError(t, err)
	require.False(t, tel.Enabled())
	require.NoError(t, tel.Shutdown(context.Background()))
}

func TestSamplePerf(t *testing.T) {
	sample, err := SamplePerf(context.Background())
	require.NoError(t, err)
	require.Positive(t, sample.Goroutines)
	require.Positive(t, sample.RSSBytes)
	require.GreaterOrEqual(t, sample.CPUPercent, 0.0)
}

func captureSlog(t *testing.T) *bytes.Buffer {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	var out bytes.Buffer
	slog.SetDefault(slog.New(slog.NewJSONHandler(&out, nil)))
	return &out
}

func TestSlogAPIParams(t *testing.T) {
	out := captureSlog(t)
	SlogAPI{}.ReportWarning("engine.fetch", "url", "https://www.geny.com/x", "err", errors.New("timeout"))

	var line map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &line))
	require.Equal(t, "engine.fetch", line["id"])
	require.Equal(t, "https://www.geny.com/x", line["url"])
	require.Equal(t, "timeout", line["err"])
	require.NotContains(t, line, "params.0")

	out.Reset()
	SlogAPI{}.ReportWarning("perf_stats.sample", errors.New("no proc"))
	line = map[string]any{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &line))
	require.Equal(t, "no proc", line["params.0"])
}
