package report

import (
	"context"
	"fmt"
	"io"

	"github.com/jszwec/csvutil"
)

// csvRow is a report row flattened with unique column names, the two row
// spreadsheet header does not fit a csv file.
type csvRow struct {
	Date           string `csv:"date"`
	Hour           string `csv:"heure"`
	Reunion        string `csv:"reunion"`
	Venue          string `csv:"hippo"`
	Discipline     string `csv:"discip"`
	RaceNumber     string `csv:"course"`
	Runners        string `csv:"partants"`
	Arrival1       string `csv:"arrivee_1"`
	Arrival2       string `csv:"arrivee_2"`
	Arrival3       string `csv:"arrivee_3"`
	Arrival4       string `csv:"arrivee_4"`
	Win            string `csv:"gagnant"`
	WinPlace       string `csv:"gagnant_place"`
	Place1         string `csv:"place_1"`
	Place2         string `csv:"place_2"`
	ExactaWin      string `csv:"cg"`
	ExactaOrder    string `csv:"co"`
	ExactaPlace1   string `csv:"cp1"`
	ExactaPlace2   string `csv:"cp2"`
	ExactaPlace3   string `csv:"cp3"`
	TrioDisordered string `csv:"trio_desordre"`
	TrioOrdered    string `csv:"trio_ordre"`
	Super4         string `csv:"super4"`
	Stable         string `csv:"ecurie"`
}

func toCSVRow(cells []any) csvRow {
	s := make([]string, 24)
	for i := 0; i < len(s) && i < len(cells); i++ {
		s[i] = fmt.Sprint(cells[i])
	}
	return csvRow{
		s[0], s[1], s[2], s[3], s[4], s[5], s[6],
		s[7], s[8], s[9], s[10],
		s[11], s[12], s[13], s[14],
		s[15], s[16], s[17], s[18], s[19],
		s[20], s[21], s[22], s[23],
	}
}

type CSVSink struct{}

func (CSVSink) Save(ctx context.Context, table Table, dest string) error {
	_, span := tracer.Start(ctx, "CSVSink:Save")
	defer span.End()

	rows := make([]csvRow, len(table.Rows))
	for i, cells := range table.Rows {
		rows[i] = toCSVRow(cells)
	}

	// the header is written even when there are no rows
	out, err := csvutil.Marshal(rows)
	if err != nil {
		return err
	}

	return writeDestination(dest, func(w io.Writer) error {
		_, err := w.Write(out)
		return err
	})
}
