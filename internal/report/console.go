package report

import (
	"context"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
)

// ConsoleSink renders the table to a terminal, the destination is ignored.
type ConsoleSink struct {
	Out io.Writer
}

func headerRow(values []string) table.Row {
	row := make(table.Row, len(values))
	for i, v := range values {
		row[i] = v
	}
	return row
}

func (c ConsoleSink) Save(ctx context.Context, t Table, _ string) error {
	out := c.Out
	if out == nil {
		out = os.Stdout
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(out)
	tw.SetTitle(t.Sheet)
	tw.AppendHeader(headerRow(t.Header[0]), table.RowConfig{AutoMerge: true})
	tw.AppendHeader(headerRow(t.Header[1]), table.RowConfig{AutoMerge: true})
	for _, cells := range t.Rows {
		tw.AppendRow(table.Row(cells))
	}
	tw.SetStyle(table.StyleRounded)
	tw.Render()
	return nil
}
