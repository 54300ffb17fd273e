package runstore

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"genyscrape/internal/db"
	"genyscrape/internal/geny"
	"genyscrape/lib/chrono"
	"genyscrape/lib/racedate"
	"genyscrape/lib/testutil"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func sampleResult() geny.Result {
	date := racedate.MustParse("30/07/2018")
	return geny.Result{
		Date:        date,
		RacePages:   2,
		PayoutPages: 3,
		Rows: []geny.JoinedRow{
			{
				Race: geny.RaceMetadataRecord{
					Key: "lisieux_c3", Date: date, Hour: "13h50", Venue: "Cabourg",
					Reunion: "R1", Discipline: geny.DisciplineTrot, RaceNumber: 1, Runners: 7,
				},
				Payout: geny.PayoutRecord{
					Key: "lisieux_c3", Runners: 7, Size: geny.SmallField,
					Finishers: [4]geny.Finisher{{Number: 5, Present: true}, {Number: 3, Present: true}},
					Payouts: geny.Payouts{
						Win:    geny.PresentAmount("3,00 €"),
						Super4: geny.Amount{State: geny.NotFound},
					},
				},
			},
			{
				Race: geny.RaceMetadataRecord{
					Key: "nacre_c991181", Date: date, Hour: "15h05", Venue: "Clairefontaine-Deauville",
					Reunion: "R3", Discipline: geny.DisciplineFlat, RaceNumber: 4, Runners: 9,
				},
				Payout: geny.PayoutRecord{
					Key: "nacre_c991181", Runners: 9, Size: geny.LargeField,
					Payouts: geny.Payouts{
						ExactaOrder: geny.PresentAmount("47,80 €"),
						Stable:      geny.PresentAmount("1 - 2"),
					},
				},
			},
		},
	}
}

func TestStore(t *testing.T) {
	database := testutil.OpenMemoryDB(t, db.Schema)
	finished := time.Date(2018, 7, 30, 20, 0, 0, 0, chrono.Paris())
	store := NewStore(database, chrono.FixedTime{At: finished})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	started := finished.Add(-time.Minute)
	result := sampleResult()
	id, err := store.SaveRun(ctx, result, started)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	runs, err := store.Runs(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	require.Equal(t, id, runs[0].ID)
	require.Equal(t, result.Date, runs[0].Date)
	require.True(t, started.Equal(runs[0].StartedAt))
	require.True(t, finished.Equal(runs[0].FinishedAt))
	require.Equal(t, 2, runs[0].RacePages)
	require.Equal(t, 3, runs[0].PayoutPages)
	require.Equal(t, 2, runs[0].Rows)

	run, rows, err := store.Rows(ctx, id)
	require.NoError(t, err)
	require.Equal(t, id, run.ID)
	require.Empty(t, cmp.Diff(
		result.Rows, rows,
		cmp.AllowUnexported(racedate.Date{}),
	))
	for i := range rows {
		require.Equal(t, result.Rows[i].Cells(), rows[i].Cells())
	}

	require.NoError(t, store.Delete(ctx, id))
	_, _, err = store.Rows(ctx, id)
	require.True(t, errors.Is(err, sql.ErrNoRows))
}
