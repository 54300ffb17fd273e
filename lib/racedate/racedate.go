package racedate

import (
	"encoding/json"
	"fmt"
	"time"
)

// Layout is the only accepted input format, DD/MM/YYYY.
// Single digit days and months are tolerated the same way strptime tolerates them.
const Layout = "2/1/2006"

// InvalidDateError is returned when a string is not a real calendar date in DD/MM/YYYY form.
type InvalidDateError struct {
	Input string
	Err   error
}

func (e InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date %q (expected DD/MM/YYYY): %v", e.Input, e.Err)
}

func (e InvalidDateError) Unwrap() error {
	return e.Err
}

// Date is an immutable calendar day. The zero value is not a valid date, use Parse or FromTime.
type Date struct {
	day   int
	month time.Month
	year  int
}

func Parse(value string) (Date, error) {
	t, err := time.Parse(Layout, value)
	if err != nil {
		return Date{}, InvalidDateError{Input: value, Err: err}
	}
	return FromTime(t), nil
}

// MustParse is Parse but it panics on invalid input, it is meant for constants and tests.
func MustParse(value string) Date {
	d, err := Parse(value)
	if err != nil {
		panic(err)
	}
	return d
}

func FromTime(t time.Time) Date {
	return Date{day: t.Day(), month: t.Month(), year: t.Year()}
}

func (d Date) IsZero() bool {
	return d == Date{}
}

// Day returns the zero padded two digit day.
func (d Date) Day() string {
	return fmt.Sprintf("%02d", d.day)
}

// Month returns the zero padded two digit month.
func (d Date) Month() string {
	return fmt.Sprintf("%02d", int(d.month))
}

// Year returns the four digit year.
func (d Date) Year() string {
	return fmt.Sprintf("%04d", d.year)
}

// String renders the date as DD/MM/YYYY.
func (d Date) String() string {
	return fmt.Sprintf("%s/%s/%s", d.Day(), d.Month(), d.Year())
}

// ISO renders the date as YYYY-MM-DD, the form used in index page queries and sheet names.
func (d Date) ISO() string {
	return fmt.Sprintf("%s-%s-%s", d.Year(), d.Month(), d.Day())
}

// FileStem renders the date as DD-MM-YYYY, the form used for output file names.
func (d Date) FileStem() string {
	return fmt.Sprintf("%s-%s-%s", d.Day(), d.Month(), d.Year())
}

func (d Date) Time(loc *time.Location) time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, loc)
}

// MarshalJSON encodes the date as "DD/MM/YYYY", the zero date as "".
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return json.Marshal("")
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var value string
	err := json.Unmarshal(data, &value)
	if err != nil {
		return err
	}
	if value == "" {
		*d = Date{}
		return nil
	}
	parsed, err := Parse(value)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
