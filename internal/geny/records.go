package geny

import (
	"genyscrape/lib/racedate"
)

type RaceMetadataRecord struct {
	Key        string        `json:"key"`
	Date       racedate.Date `json:"date"`
	Hour       string        `json:"hour"`
	Venue      string        `json:"venue"`
	Reunion    string        `json:"reunion"`
	Discipline Discipline    `json:"discipline"`
	RaceNumber int           `json:"race_number"`
	Runners    int           `json:"runners"`
}

// Cells renders the record without its key, in report column order.
func (r RaceMetadataRecord) Cells() []any {
	date := ""
	if !r.Date.IsZero() {
		date = r.Date.String()
	}
	return []any{
		date,
		r.Hour,
		r.Reunion,
		r.Venue,
		string(r.Discipline),
		r.RaceNumber,
		r.Runners,
	}
}

// FieldSize decides which bets are offered on a race.
type FieldSize int

const (
	// SmallField races (7 runners or less) have trio ordre and super 4 but no couple placé.
	SmallField FieldSize = iota
	// LargeField races (more than 7 runners) have couple gagnant and couple placé.
	LargeField
)

const largeFieldThreshold = 7

func FieldSizeOf(runners int) FieldSize {
	if runners > largeFieldThreshold {
		return LargeField
	}
	return SmallField
}

func (s FieldSize) String() string {
	if s == LargeField {
		return "large"
	}
	return "small"
}

type Payouts struct {
	Win            Amount `json:"win"`
	WinPlace       Amount `json:"win_place"`
	Place1         Amount `json:"place_1"`
	Place2         Amount `json:"place_2"`
	ExactaWin      Amount `json:"exacta_win"`
	ExactaOrder    Amount `json:"exacta_order"`
	ExactaPlace1   Amount `json:"exacta_place_1"`
	ExactaPlace2   Amount `json:"exacta_place_2"`
	ExactaPlace3   Amount `json:"exacta_place_3"`
	TrioDisordered Amount `json:"trio_disordered"`
	TrioOrdered    Amount `json:"trio_ordered"`
	Super4         Amount `json:"super4"`
	Stable         Amount `json:"stable"`
}

// Vector returns the 13 payout fields in report column order.
func (p Payouts) Vector() [13]Amount {
	return [13]Amount{
		p.Win,
		p.WinPlace,
		p.Place1,
		p.Place2,
		p.ExactaWin,
		p.ExactaOrder,
		p.ExactaPlace1,
		p.ExactaPlace2,
		p.ExactaPlace3,
		p.TrioDisordered,
		p.TrioOrdered,
		p.Super4,
		p.Stable,
	}
}

type PayoutRecord struct {
	Key       string      `json:"key"`
	Runners   int         `json:"runners"`
	Size      FieldSize   `json:"size"`
	Finishers [4]Finisher `json:"finishers"`
	Payouts   Payouts     `json:"payouts"`
}

// Cells renders the record without its key, in report column order.
func (r PayoutRecord) Cells() []any {
	cells := make([]any, 0, len(r.Finishers)+13)
	for _, f := range r.Finishers {
		cells = append(cells, f.Cell())
	}
	for _, a := range r.Payouts.Vector() {
		cells = append(cells, a.Cell())
	}
	return cells
}

type JoinedRow struct {
	Race   RaceMetadataRecord `json:"race"`
	Payout PayoutRecord       `json:"payout"`
}

// ColumnCount is the width of a rendered JoinedRow.
const ColumnCount = 24

func (r JoinedRow) Cells() []any {
	return append(r.Race.Cells(), r.Payout.Cells()...)
}
