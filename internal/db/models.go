package db

import (
	"database/sql"
)

type ScrapeRow struct {
	RunID      string
	Position   int64
	RaceKey    string
	Reunion    string
	RaceNumber int64
	Data       string
}

type ScrapeRun struct {
	ID          string
	RaceDate    string
	StartedAt   int64
	FinishedAt  sql.NullInt64
	RacePages   int64
	PayoutPages int64
	RowCount    int64
}
