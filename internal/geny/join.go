package geny

import (
	"cmp"
	"regexp"
	"slices"
	"strconv"

	"github.com/antzucaro/matchr"
)

type JoinResult struct {
	Rows []JoinedRow
	// UnmatchedRaces are keys of metadata records without a payout record.
	UnmatchedRaces []string
	// UnmatchedPayouts are keys of payout records without a metadata record.
	UnmatchedPayouts []string
}

// Join pairs metadata and payout records sharing a race key. Records without a
// counterpart produce no row, their keys are returned for diagnostics.
func Join(races []RaceMetadataRecord, payouts []PayoutRecord) JoinResult {
	var result JoinResult
	paidKeys := make(map[string]struct{}, len(payouts))
	for _, race := range races {
		matched := false
		for _, payout := range payouts {
			if race.Key != payout.Key {
				continue
			}
			matched = true
			paidKeys[payout.Key] = struct{}{}
			result.Rows = append(result.Rows, JoinedRow{Race: race, Payout: payout})
		}
		if !matched {
			result.UnmatchedRaces = append(result.UnmatchedRaces, race.Key)
		}
	}
	for _, payout := range payouts {
		if _, ok := paidKeys[payout.Key]; !ok {
			result.UnmatchedPayouts = append(result.UnmatchedPayouts, payout.Key)
		}
	}
	return result
}

var reunionRegex = regexp.MustCompile(`^R(\d+)$`)

// compareReunion orders codes naturally (R2 before R10), codes that are not of
// the RN form come after the others.
func compareReunion(a, b string) int {
	ma := reunionRegex.FindStringSubmatch(a)
	mb := reunionRegex.FindStringSubmatch(b)
	switch {
	case ma != nil && mb != nil:
		na, _ := strconv.Atoi(ma[1])
		nb, _ := strconv.Atoi(mb[1])
		if c := cmp.Compare(na, nb); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	case ma != nil:
		return -1
	case mb != nil:
		return 1
	}
	return cmp.Compare(a, b)
}

// Order sorts rows by reunion, then race number, in place.
func Order(rows []JoinedRow) {
	slices.SortStableFunc(rows, func(a, b JoinedRow) int {
		return cmp.Or(
			compareReunion(a.Race.Reunion, b.Race.Reunion),
			cmp.Compare(a.Race.RaceNumber, b.Race.RaceNumber),
			cmp.Compare(a.Race.Venue, b.Race.Venue),
			cmp.Compare(a.Race.Hour, b.Race.Hour),
			cmp.Compare(a.Race.Key, b.Race.Key),
		)
	})
}

// minKeySimilarity is the jaro-winkler score under which two race keys are
// considered unrelated.
const minKeySimilarity = 0.8

// ClosestKey returns the candidate most similar to `key`, it is used to
// point out slug typos between a race page and its payout page.
func ClosestKey(key string, candidates []string) (string, bool) {
	best := ""
	bestScore := 0.0
	for _, c := range candidates {
		score := matchr.JaroWinkler(key, c, false)
		if score > bestScore {
			best = c
			bestScore = score
		}
	}
	if bestScore < minKeySimilarity {
		return "", false
	}
	return best, true
}
