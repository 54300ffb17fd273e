package report

import (
	"genyscrape/internal/geny"
	"genyscrape/lib/racedate"
)

// Fill colors of the header groups.
const (
	FillRace     = "969696"
	FillArrivals = "F79646"
	FillPayouts  = "92CDDC"
)

// Merge spans a header cell over the columns [First, Last] of a header row, zero based.
type Merge struct {
	Row   int
	First int
	Last  int
}

type Table struct {
	Sheet string
	// Header holds the two header rows, each geny.ColumnCount wide.
	Header [2][]string
	Merges []Merge
	// Fills is the header fill color of every column.
	Fills []string
	// Centered marks the header columns whose text is centered.
	Centered []bool
	Rows     [][]any
}

const (
	colArrivals = 7
	colSolos    = 11
	colDuos     = 15
	colTrios    = 20
)

func header() ([2][]string, []Merge) {
	top := []string{
		"Date", "Heure", "Reunion", "Hippo", "Discip", "Course", "Partpants",
		"ARRIVEES", "", "", "",
		"RAPPORTS JEUX SIMPLES G P Pour 1€", "", "", "",
		"COUPLES pour 1€", "", "", "", "",
		"TRIOS", "", "SUPER4", "Ecurie",
	}
	bottom := []string{
		"", "", "", "", "", "", "",
		"LES 4 PREMIERS CHEVAUX ARRIVES", "", "", "",
		"GAGNANT", "GAGNANT PLACE", "PLACE", "PLACE",
		"CG", "CO", "CP1", "CP2", "CP3",
		"Désordre", "Ordre", "", "",
	}
	merges := []Merge{
		{Row: 0, First: colArrivals, Last: colSolos - 1},
		{Row: 1, First: colArrivals, Last: colSolos - 1},
		{Row: 0, First: colSolos, Last: colDuos - 1},
		{Row: 0, First: colDuos, Last: colTrios - 1},
	}
	return [2][]string{top, bottom}, merges
}

func fills() ([]string, []bool) {
	fills := make([]string, geny.ColumnCount)
	centered := make([]bool, geny.ColumnCount)
	for i := range fills {
		switch {
		case i < colArrivals:
			fills[i] = FillRace
		case i < colSolos:
			fills[i] = FillArrivals
			centered[i] = true
		default:
			fills[i] = FillPayouts
			centered[i] = true
		}
	}
	return fills, centered
}

// Assemble lays out the ordered rows of a day under the two header rows.
func Assemble(date racedate.Date, rows []geny.JoinedRow) Table {
	head, merges := header()
	fills, centered := fills()

	cells := make([][]any, len(rows))
	for i, r := range rows {
		cells[i] = r.Cells()
	}

	return Table{
		Sheet:    date.ISO(),
		Header:   head,
		Merges:   merges,
		Fills:    fills,
		Centered: centered,
		Rows:     cells,
	}
}
