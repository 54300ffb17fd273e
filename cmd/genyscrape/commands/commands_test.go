package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"genyscrape/internal/report"
	"genyscrape/lib/chrono"
	"genyscrape/lib/racedate"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "genyscrape.json5")
	require.NoError(t, os.WriteFile(path, []byte(`{
		// tuned down for a slow connection
		concurrency: 2,
		format: "csv",
	}`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "genyscrape.local.json5"), []byte(`{
		database: "runs.db",
	}`), 0644))
	t.Setenv(envOutputDir, "/tmp/reports")

	config, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, 2, config.Concurrency)
	require.Equal(t, "csv", config.Format)
	require.Equal(t, "runs.db", config.Database)
	require.Equal(t, "/tmp/reports", config.OutputDir)
	require.Equal(t, DefaultConfig().BaseURL, config.BaseURL)
	require.Equal(t, 30*time.Second, config.Timeout())
	require.Equal(t, 5*time.Second, config.SaveRetryInterval())
}

func TestLoadConfigMissing(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "genyscrape.json5"))
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), config)
}

func TestPromptDate(t *testing.T) {
	var out bytes.Buffer
	date, err := promptDate(
		strings.NewReader("31/02/2020\nhier\n29/02/2020\n"),
		&out,
		chrono.FixedTime{},
	)
	require.NoError(t, err)
	require.Equal(t, racedate.MustParse("29/02/2020"), date)
	require.Equal(t, 2, strings.Count(out.String(), "not a valid date"))

	now := time.Date(2024, 5, 12, 10, 0, 0, 0, chrono.Paris())
	date, err = promptDate(strings.NewReader("\n"), &out, chrono.FixedTime{At: now})
	require.NoError(t, err)
	require.Equal(t, racedate.MustParse("12/05/2024"), date)

	_, err = promptDate(strings.NewReader(""), &out, chrono.FixedTime{At: now})
	require.Error(t, err)
}

func TestResolveOutput(t *testing.T) {
	cfg = DefaultConfig()
	date := racedate.MustParse("30/07/2018")
	name := func(dir string, format report.Format) string {
		return report.DestinationFor(dir, date, format)
	}

	dir := t.TempDir()
	sink, dest, err := resolveOutput(outputFlags{out: dir}, name)
	require.NoError(t, err)
	require.IsType(t, report.XLSXSink{}, sink)
	require.Equal(t, filepath.Join(dir, "30-07-2018.xlsx"), dest)

	file := filepath.Join(dir, "nested", "courses.csv")
	sink, dest, err = resolveOutput(outputFlags{out: file}, name)
	require.NoError(t, err)
	require.IsType(t, report.CSVSink{}, sink)
	require.Equal(t, file, dest)
	require.DirExists(t, filepath.Join(dir, "nested"))

	_, _, err = resolveOutput(outputFlags{out: dir, format: "ods"}, name)
	require.Error(t, err)
}
