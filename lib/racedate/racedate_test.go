package racedate

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseValid(t *testing.T) {
	testCases := []struct {
		input string
		day   string
		month string
		year  string
	}{
		{input: "30/07/2018", day: "30", month: "07", year: "2018"},
		{input: "29/02/2020", day: "29", month: "02", year: "2020"},
		{input: "01/01/1999", day: "01", month: "01", year: "1999"},
		{input: "31/12/2024", day: "31", month: "12", year: "2024"},
		{input: "5/7/2018", day: "05", month: "07", year: "2018"},
	}

	for _, test := range testCases {
		d, err := Parse(test.input)
		require.NoError(t, err, test.input)
		require.Equal(t, test.day, d.Day())
		require.Equal(t, test.month, d.Month())
		require.Equal(t, test.year, d.Year())
		require.False(t, d.IsZero())
	}
}

func TestParseRoundTrip(t *testing.T) {
	start := time.Date(2019, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 366; i++ {
		current := start.AddDate(0, 0, i)
		input := current.Format("02/01/2006")

		d, err := Parse(input)
		require.NoError(t, err)
		require.Equal(t, input, d.String())
		require.Equal(t, current, d.Time(time.UTC))
	}
}

func TestParseInvalid(t *testing.T) {
	inputs := []string{
		"31/02/2020",
		"29/02/2019",
		"00/01/2020",
		"12/13/2020",
		"32/01/2020",
		"aa/bb/cccc",
		"2020-01-01",
		"01/01/20",
		"",
		" 01/01/2020",
	}

	for _, input := range inputs {
		_, err := Parse(input)
		require.Error(t, err, input)

		var invalid InvalidDateError
		require.True(t, errors.As(err, &invalid), input)
		require.Equal(t, input, invalid.Input)
	}
}

func TestFormats(t *testing.T) {
	d := MustParse("30/07/2018")
	require.Equal(t, "2018-07-30", d.ISO())
	require.Equal(t, "30-07-2018", d.FileStem())
	require.Equal(t, "30/07/2018", d.String())
}

func TestJSON(t *testing.T) {
	type wrapper struct {
		Date Date `json:"date"`
	}

	out, err := json.Marshal(wrapper{Date: MustParse("05/03/2021")})
	require.NoError(t, err)
	require.JSONEq(t, `{"date":"05/03/2021"}`, string(out))

	var decoded wrapper
	require.NoError(t, json.Unmarshal(out, &decoded))
	require.Equal(t, MustParse("05/03/2021"), decoded.Date)

	out, err = json.Marshal(wrapper{})
	require.NoError(t, err)
	require.JSONEq(t, `{"date":""}`, string(out))
}
