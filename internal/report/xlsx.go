package report

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("genyscrape/report")

var thinBorders = []excelize.Border{
	{Type: "left", Color: "000000", Style: 1},
	{Type: "right", Color: "000000", Style: 1},
	{Type: "top", Color: "000000", Style: 1},
	{Type: "bottom", Color: "000000", Style: 1},
}

var boldArial = &excelize.Font{Family: "Arial", Bold: true, Size: 8}

type XLSXSink struct{}

func cellName(col, row int) string {
	// only fails on out of range coordinates, the table is always 24 columns wide
	name, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		panic(err)
	}
	return name
}

type xlsxStyles struct {
	data   int
	header map[string]int
}

func (x XLSXSink) styles(f *excelize.File, table Table) (xlsxStyles, error) {
	data, err := f.NewStyle(&excelize.Style{
		Font:      boldArial,
		Border:    thinBorders,
		Alignment: &excelize.Alignment{Horizontal: "left"},
	})
	if err != nil {
		return xlsxStyles{}, err
	}
	styles := xlsxStyles{data: data, header: map[string]int{}}

	for col, fill := range table.Fills {
		key := fmt.Sprintf("%s/%v", fill, table.Centered[col])
		if _, ok := styles.header[key]; ok {
			continue
		}
		style := &excelize.Style{
			Font:   boldArial,
			Border: thinBorders,
			Fill:   excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{fill}},
		}
		if table.Centered[col] {
			style.Alignment = &excelize.Alignment{Horizontal: "center"}
		}
		id, err := f.NewStyle(style)
		if err != nil {
			return xlsxStyles{}, err
		}
		styles.header[key] = id
	}
	return styles, nil
}

func (x XLSXSink) build(table Table) (*excelize.File, error) {
	f := excelize.NewFile()
	err := f.SetSheetName("Sheet1", table.Sheet)
	if err != nil {
		return nil, err
	}
	sheet := table.Sheet

	styles, err := x.styles(f, table)
	if err != nil {
		return nil, err
	}

	for row, values := range table.Header {
		for col, value := range values {
			cell := cellName(col, row)
			err = f.SetCellValue(sheet, cell, value)
			if err != nil {
				return nil, err
			}
			key := fmt.Sprintf("%s/%v", table.Fills[col], table.Centered[col])
			err = f.SetCellStyle(sheet, cell, cell, styles.header[key])
			if err != nil {
				return nil, err
			}
		}
	}
	for _, m := range table.Merges {
		err = f.MergeCell(sheet, cellName(m.First, m.Row), cellName(m.Last, m.Row))
		if err != nil {
			return nil, err
		}
	}

	offset := len(table.Header)
	for i, values := range table.Rows {
		row := values
		err = f.SetSheetRow(sheet, cellName(0, offset+i), &row)
		if err != nil {
			return nil, err
		}
	}
	if len(table.Rows) > 0 {
		err = f.SetCellStyle(
			sheet,
			cellName(0, offset),
			cellName(len(table.Fills)-1, offset+len(table.Rows)-1),
			styles.data,
		)
		if err != nil {
			return nil, err
		}
	}

	return f, nil
}

func (x XLSXSink) Save(ctx context.Context, table Table, dest string) error {
	_, span := tracer.Start(ctx, "XLSXSink:Save")
	defer span.End()
	span.SetAttributes(
		attribute.String("dest", dest),
		attribute.Int("rows", len(table.Rows)),
	)

	f, err := x.build(table)
	if err != nil {
		return err
	}
	defer f.Close()

	return writeDestination(dest, func(w io.Writer) error {
		_, err := f.WriteTo(w)
		return err
	})
}
