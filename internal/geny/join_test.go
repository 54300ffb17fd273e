package geny

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func keysOf(rows []JoinedRow) []string {
	keys := make([]string, len(rows))
	for i, r := range rows {
		keys[i] = r.Race.Key
	}
	return keys
}

func TestJoin(t *testing.T) {
	races := []RaceMetadataRecord{{Key: "A"}, {Key: "B"}, {Key: "C"}}
	payouts := []PayoutRecord{{Key: "D"}, {Key: "C"}, {Key: "B"}}

	result := Join(races, payouts)
	require.Equal(t, []string{"B", "C"}, keysOf(result.Rows))
	require.Equal(t, []string{"A"}, result.UnmatchedRaces)
	require.Equal(t, []string{"D"}, result.UnmatchedPayouts)

	for _, row := range result.Rows {
		require.Equal(t, row.Race.Key, row.Payout.Key)
		require.Len(t, row.Cells(), ColumnCount)
	}
}

func TestJoinEmpty(t *testing.T) {
	result := Join(nil, []PayoutRecord{{Key: "A"}})
	require.Empty(t, result.Rows)
	require.Equal(t, []string{"A"}, result.UnmatchedPayouts)
}

func TestClosestKey(t *testing.T) {
	candidates := []string{"vincennes_c991181", "cagnes_sur_mer_c991190"}

	closest, ok := ClosestKey("vincenes_c991181", candidates)
	require.True(t, ok)
	require.Equal(t, "vincennes_c991181", closest)

	_, ok = ClosestKey("zzz", candidates)
	require.False(t, ok)

	_, ok = ClosestKey("vincennes_c991181", nil)
	require.False(t, ok)
}

func TestOrder(t *testing.T) {
	row := func(key, venue, reunion string, number int) JoinedRow {
		return JoinedRow{Race: RaceMetadataRecord{
			Key:        key,
			Venue:      venue,
			Reunion:    reunion,
			RaceNumber: number,
		}}
	}

	testCases := []struct {
		name     string
		rows     []JoinedRow
		expected []string
	}{
		{
			name: "grouped by venue",
			rows: []JoinedRow{
				row("v2-3", "V2", "R2", 3),
				row("v1-1", "V1", "R1", 1),
				row("v1-2", "V1", "R1", 2),
			},
			expected: []string{"v1-1", "v1-2", "v2-3"},
		},
		{
			name: "natural reunion order",
			rows: []JoinedRow{
				row("r10-1", "Vincennes", "R10", 1),
				row("r2-8", "Enghien", "R2", 8),
				row("unknown", "Cagnes", "", 1),
				row("r2-1", "Enghien", "R2", 1),
				row("r1-5", "Chantilly", "R1", 5),
			},
			expected: []string{"r1-5", "r2-1", "r2-8", "r10-1", "unknown"},
		},
	}

	for _, test := range testCases {
		rows := append([]JoinedRow{}, test.rows...)
		Order(rows)
		require.Empty(t, cmp.Diff(test.expected, keysOf(rows)), test.name)
	}
}
