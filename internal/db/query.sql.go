// Queries over query.sql, written to the shape sqlc generates for it.

package db

import (
	"context"
	"database/sql"
)

const addRow = `-- name: AddRow :exec
insert into scrape_row(run_id, position, race_key, reunion, race_number, data)
values (?, ?, ?, ?, ?, ?)
`

type AddRowParams struct {
	RunID      string
	Position   int64
	RaceKey    string
	Reunion    string
	RaceNumber int64
	Data       string
}

func (q *Queries) AddRow(ctx context.Context, arg AddRowParams) error {
	_, err := q.db.ExecContext(ctx, addRow,
		arg.RunID,
		arg.Position,
		arg.RaceKey,
		arg.Reunion,
		arg.RaceNumber,
		arg.Data,
	)
	return err
}

const createRun = `-- name: CreateRun :exec
insert into scrape_run(id, race_date, started_at) values (?, ?, ?)
`

type CreateRunParams struct {
	ID        string
	RaceDate  string
	StartedAt int64
}

func (q *Queries) CreateRun(ctx context.Context, arg CreateRunParams) error {
	_, err := q.db.ExecContext(ctx, createRun, arg.ID, arg.RaceDate, arg.StartedAt)
	return err
}

const deleteRun = `-- name: DeleteRun :exec
delete from scrape_run where id = ?
`

func (q *Queries) DeleteRun(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, deleteRun, id)
	return err
}

const finishRun = `-- name: FinishRun :exec
update scrape_run
set finished_at = ?, race_pages = ?, payout_pages = ?, row_count = ?
where id = ?
`

type FinishRunParams struct {
	FinishedAt  sql.NullInt64
	RacePages   int64
	PayoutPages int64
	RowCount    int64
	ID          string
}

func (q *Queries) FinishRun(ctx context.Context, arg FinishRunParams) error {
	_, err := q.db.ExecContext(ctx, finishRun,
		arg.FinishedAt,
		arg.RacePages,
		arg.PayoutPages,
		arg.RowCount,
		arg.ID,
	)
	return err
}

const getRun = `-- name: GetRun :one
select id, race_date, started_at, finished_at, race_pages, payout_pages, row_count from scrape_run where id = ?
`

func (q *Queries) GetRun(ctx context.Context, id string) (ScrapeRun, error) {
	row := q.db.QueryRowContext(ctx, getRun, id)
	var i ScrapeRun
	err := row.Scan(
		&i.ID,
		&i.RaceDate,
		&i.StartedAt,
		&i.FinishedAt,
		&i.RacePages,
		&i.PayoutPages,
		&i.RowCount,
	)
	return i, err
}

const getRunRows = `-- name: GetRunRows :many
select run_id, position, race_key, reunion, race_number, data from scrape_row where run_id = ? order by position asc
`

func (q *Queries) GetRunRows(ctx context.Context, runID string) ([]ScrapeRow, error) {
	rows, err := q.db.QueryContext(ctx, getRunRows, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ScrapeRow
	for rows.Next() {
		var i ScrapeRow
		if err := rows.Scan(
			&i.RunID,
			&i.Position,
			&i.RaceKey,
			&i.Reunion,
			&i.RaceNumber,
			&i.Data,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getRuns = `-- name: GetRuns :many
select id, race_date, started_at, finished_at, race_pages, payout_pages, row_count from scrape_run order by started_at desc
`

func (q *Queries) GetRuns(ctx context.Context) ([]ScrapeRun, error) {
	rows, err := q.db.QueryContext(ctx, getRuns)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ScrapeRun
	for rows.Next() {
		var i ScrapeRun
		if err := rows.Scan(
			&i.ID,
			&i.RaceDate,
			&i.StartedAt,
			&i.FinishedAt,
			&i.RacePages,
			&i.PayoutPages,
			&i.RowCount,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
