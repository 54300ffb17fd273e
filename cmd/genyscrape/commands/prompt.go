package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"genyscrape/lib/chrono"
	"genyscrape/lib/racedate"
)

// promptDate asks for a DD/MM/YYYY date until a valid one is entered, an empty
// answer picks today's date.
func promptDate(in io.Reader, out io.Writer, clock chrono.TimeAPI) (racedate.Date, error) {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "Date (DD/MM/YYYY): ")
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return racedate.Date{}, err
			}
			return racedate.Date{}, io.ErrUnexpectedEOF
		}

		answer := strings.TrimSpace(scanner.Text())
		if answer == "" {
			return racedate.FromTime(clock.Now()), nil
		}

		date, err := racedate.Parse(answer)
		var invalid racedate.InvalidDateError
		if errors.As(err, &invalid) {
			fmt.Fprintln(out, "That was not a valid date!")
			continue
		}
		if err != nil {
			return racedate.Date{}, err
		}
		return date, nil
	}
}
