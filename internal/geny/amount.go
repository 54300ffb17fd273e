package geny

import (
	"encoding/json"
	"strconv"
	"strings"

	"genyscrape/lib/textutil"
)

type FieldState int

const (
	// NotApplicable is a payout that does not exist for races of this size.
	NotApplicable FieldState = iota
	// NotFound is a payout that should exist but could not be read from the page.
	NotFound
	Present
)

func (s FieldState) String() string {
	switch s {
	case NotApplicable:
		return "not_applicable"
	case NotFound:
		return "not_found"
	case Present:
		return "present"
	}
	return "unknown"
}

// Amount is a normalized payout (or label) read from a payout page.
type Amount struct {
	State FieldState `json:"state"`
	Text  string     `json:"text"`
}

func PresentAmount(raw string) Amount {
	return Amount{State: Present, Text: NormalizeAmount(raw)}
}

// NormalizeAmount strips the currency marker and whole euro decimals,
// "1 200,00 €" becomes "1200" and "47,80 €" becomes "47,80".
func NormalizeAmount(raw string) string {
	text := textutil.RemoveThousandsSeparators(raw)
	text = strings.TrimSpace(text)
	text = strings.ReplaceAll(text, " €", "")
	text = strings.ReplaceAll(text, "\u00a0€", "")
	text = strings.TrimSuffix(text, ",00")
	return text
}

// Int returns the amount as an integer when it is a whole number.
func (a Amount) Int() (int, bool) {
	if a.State != Present || !textutil.IsDigits(a.Text) {
		return 0, false
	}
	n, err := strconv.Atoi(a.Text)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Cell renders the amount for a report, whole numbers become ints and anything
// that is not present becomes an empty string.
func (a Amount) Cell() any {
	if a.State != Present {
		return ""
	}
	if n, ok := a.Int(); ok {
		return n
	}
	return a.Text
}

type Finisher struct {
	Number  int
	Present bool
}

func (f Finisher) Cell() any {
	if !f.Present {
		return ""
	}
	return f.Number
}

func (f Finisher) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Cell())
}

func (f *Finisher) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*f = Finisher{Number: n, Present: true}
		return nil
	}
	*f = Finisher{}
	return nil
}
