package runstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"genyscrape/internal/db"
	"genyscrape/internal/geny"
	"genyscrape/lib/chrono"
	"genyscrape/lib/racedate"

	"github.com/google/uuid"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

type Store struct {
	db     *sql.DB
	qry    *db.Queries
	makeTx db.MakeTx
	time   chrono.TimeAPI
}

func NewStore(database *sql.DB, time chrono.TimeAPI) Store {
	return Store{
		db:     database,
		qry:    db.New(database),
		makeTx: db.NewMakeTx(database),
		time:   time,
	}
}

func openDB(source string) (*sql.DB, error) {
	if strings.HasPrefix(source, "libsql://") ||
		strings.HasPrefix(source, "https://") ||
		strings.HasPrefix(source, "http://") {
		return sql.Open("libsql", source)
	}

	database, err := sql.Open("sqlite", source)
	if err != nil {
		return nil, err
	}
	// sqlite only allows a single writer
	database.SetMaxOpenConns(1)
	_, err = database.Exec("pragma journal_mode = wal")
	if err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}

// Open opens the run database at `source` and applies the schema.
//
// `source` is either a local sqlite file (created if needed) or a
// libsql/turso url, the auth token goes in the `authToken` query parameter.
func Open(source string, time chrono.TimeAPI) (Store, *sql.DB, error) {
	database, err := openDB(source)
	if err != nil {
		return Store{}, nil, err
	}
	_, err = database.Exec("pragma foreign_keys = on")
	if err != nil {
		database.Close()
		return Store{}, nil, err
	}
	_, err = database.Exec(db.Schema)
	if err != nil {
		database.Close()
		return Store{}, nil, fmt.Errorf("apply schema: %w", err)
	}
	return NewStore(database, time), database, nil
}

type Run struct {
	ID          string
	Date        racedate.Date
	StartedAt   time.Time
	FinishedAt  time.Time
	RacePages   int
	PayoutPages int
	Rows        int
}

func runFromModel(model db.ScrapeRun) (Run, error) {
	date, err := racedate.Parse(model.RaceDate)
	if err != nil {
		return Run{}, err
	}
	run := Run{
		ID:          model.ID,
		Date:        date,
		StartedAt:   time.Unix(model.StartedAt, 0).In(chrono.Paris()),
		RacePages:   int(model.RacePages),
		PayoutPages: int(model.PayoutPages),
		Rows:        int(model.RowCount),
	}
	if model.FinishedAt.Valid {
		run.FinishedAt = time.Unix(model.FinishedAt.Int64, 0).In(chrono.Paris())
	}
	return run, nil
}

// SaveRun stores the outcome of a scrape that began at `startedAt` and returns its id.
func (s Store) SaveRun(ctx context.Context, result geny.Result, startedAt time.Time) (string, error) {
	txqry, discard, commit, err := s.makeTx(ctx)
	if err != nil {
		return "", err
	}
	defer discard()

	id := uuid.NewString()
	err = txqry.CreateRun(ctx, db.CreateRunParams{
		ID:        id,
		RaceDate:  result.Date.String(),
		StartedAt: startedAt.Unix(),
	})
	if err != nil {
		return "", err
	}

	for i, row := range result.Rows {
		data, err := json.Marshal(row)
		if err != nil {
			return "", err
		}
		err = txqry.AddRow(ctx, db.AddRowParams{
			RunID:      id,
			Position:   int64(i),
			RaceKey:    row.Race.Key,
			Reunion:    row.Race.Reunion,
			RaceNumber: int64(row.Race.RaceNumber),
			Data:       string(data),
		})
		if err != nil {
			return "", err
		}
	}

	err = txqry.FinishRun(ctx, db.FinishRunParams{
		FinishedAt: sql.NullInt64{
			Int64: s.time.Now().Unix(),
			Valid: true,
		},
		RacePages:   int64(result.RacePages),
		PayoutPages: int64(result.PayoutPages),
		RowCount:    int64(len(result.Rows)),
		ID:          id,
	})
	if err != nil {
		return "", err
	}

	return id, commit()
}

// Runs lists stored runs, most recent first.
func (s Store) Runs(ctx context.Context) ([]Run, error) {
	models, err := s.qry.GetRuns(ctx)
	if err != nil {
		return nil, err
	}
	runs := make([]Run, 0, len(models))
	for _, m := range models {
		run, err := runFromModel(m)
		if err != nil {
			return nil, fmt.Errorf("run %s: %w", m.ID, err)
		}
		runs = append(runs, run)
	}
	return runs, nil
}

// Rows returns a stored run along with its rows in report order.
func (s Store) Rows(ctx context.Context, id string) (Run, []geny.JoinedRow, error) {
	model, err := s.qry.GetRun(ctx, id)
	if err != nil {
		return Run{}, nil, err
	}
	run, err := runFromModel(model)
	if err != nil {
		return Run{}, nil, err
	}

	stored, err := s.qry.GetRunRows(ctx, id)
	if err != nil {
		return Run{}, nil, err
	}
	rows := make([]geny.JoinedRow, len(stored))
	for i, r := range stored {
		err = json.Unmarshal([]byte(r.Data), &rows[i])
		if err != nil {
			return Run{}, nil, fmt.Errorf("row %d of run %s: %w", r.Position, id, err)
		}
	}
	return run, rows, nil
}

func (s Store) Delete(ctx context.Context, id string) error {
	return s.qry.DeleteRun(ctx, id)
}
