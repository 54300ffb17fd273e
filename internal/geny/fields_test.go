package geny

import (
	"errors"
	"testing"

	"genyscrape/lib/racedate"

	"github.com/stretchr/testify/require"
)

func TestRaceKeyAndDate(t *testing.T) {
	testCases := []struct {
		url  string
		key  string
		date string
	}{
		{
			url:  "https://www.geny.com" + fixtureRacePath,
			key:  fixtureKey,
			date: "30/07/2018",
		},
		{
			url:  "https://www.geny.com" + fixturePayoutPath + "?from=index",
			key:  fixtureKey,
			date: "30/07/2018",
		},
		{
			url:  "https://www.geny.com/partants-pmu/prix-de-vincennes_c1",
			key:  "vincennes_c1",
			date: "",
		},
		{
			url:  "https://www.geny.com/partants-pmu/2018-02-31-vincennes_c2",
			key:  "vincennes_c2",
			date: "",
		},
	}

	for _, test := range testCases {
		key, err := RaceKey(test.url)
		require.NoError(t, err, test.url)
		require.Equal(t, test.key, key)

		date, err := RaceDate(test.url)
		if test.date == "" {
			require.Error(t, err, test.url)
			require.True(t, date.IsZero())
			continue
		}
		require.NoError(t, err, test.url)
		require.Equal(t, racedate.MustParse(test.date), date)
	}

	_, err := RaceKey("https://www.geny.com/")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestExtractRaceFields(t *testing.T) {
	doc := parseDoc(t, defaultRaceFixture().html())

	hour, err := ExtractHour(doc)
	require.NoError(t, err)
	require.Equal(t, "15h05", hour)

	venue, err := ExtractVenue(doc)
	require.NoError(t, err)
	require.Equal(t, "Clairefontaine-Deauville", venue)

	reunion, err := ExtractReunion(doc)
	require.NoError(t, err)
	require.Equal(t, "R3", reunion)

	discipline, err := ExtractDiscipline(doc)
	require.NoError(t, err)
	require.Equal(t, DisciplineTrot, discipline)

	number, err := ExtractRaceNumber(doc)
	require.NoError(t, err)
	require.Equal(t, 4, number)

	runners, err := ExtractRunners(doc)
	require.NoError(t, err)
	require.Equal(t, 9, runners)
}

func TestExtractHourWithoutSeparator(t *testing.T) {
	fixture := defaultRaceFixture()
	fixture.Hour = "Non communiquée"
	_, err := ExtractHour(parseDoc(t, fixture.html()))
	require.ErrorIs(t, err, ErrMalformed)
}

func TestExtractReunionWithoutFragment(t *testing.T) {
	fixture := defaultRaceFixture()
	fixture.ReunionRef = "/reunions-courses-pmu"
	_, err := ExtractReunion(parseDoc(t, fixture.html()))
	require.ErrorIs(t, err, ErrNotFound)
}

func TestExtractDiscipline(t *testing.T) {
	testCases := []struct {
		facts      string
		discipline Discipline
		err        error
	}{
		{
			facts:      "Plat -\u00a02400 mètres - Corde à droite - 12 partants - Terrain bon - Départ aux stalles",
			discipline: DisciplineFlat,
		},
		{
			facts:      "Monté -\u00a02850 mètres - Grande piste - 14 partants - Départ volté",
			discipline: DisciplineTrot,
		},
		{
			facts:      "Haies -\u00a03600 mètres - Corde à gauche - 10 partants - Terrain souple",
			discipline: DisciplineObstacle,
		},
		{
			facts:      "Steeple-chase -\u00a04300 mètres - Corde à gauche - 11 partants - Terrain lourd",
			discipline: DisciplineObstacle,
		},
		{
			facts:      "Cross -\u00a05000 mètres - Corde à gauche - 11 partants - Terrain lourd",
			discipline: DisciplineNone,
			err:        ErrMalformed,
		},
		{
			// no non-breaking space, these are not the race facts
			facts:      "Attelé - 2700 mètres - Grande piste - 9 partants - Départ à l'autostart",
			discipline: DisciplineNone,
			err:        ErrNotFound,
		},
		{
			facts:      "Attelé -\u00a02700 mètres",
			discipline: DisciplineNone,
			err:        ErrNotFound,
		},
	}

	for _, test := range testCases {
		fixture := defaultRaceFixture()
		fixture.Facts = test.facts

		discipline, err := ExtractDiscipline(parseDoc(t, fixture.html()))
		require.Equal(t, test.discipline, discipline, test.facts)
		if test.err == nil {
			require.NoError(t, err, test.facts)
		} else {
			require.ErrorIs(t, err, test.err, test.facts)
		}
	}
}

func TestExtractRaceNumberIsRequired(t *testing.T) {
	fixture := defaultRaceFixture()
	fixture.Heading = "Course : Prix de la Côte de Nacre"
	_, err := ExtractRaceNumber(parseDoc(t, fixture.html()))
	require.ErrorIs(t, err, ErrMalformed)

	fixture = defaultRaceFixture()
	fixture.Runners = "NP"
	_, err = ExtractRunners(parseDoc(t, fixture.html()))
	require.ErrorIs(t, err, ErrMalformed)
}

func TestExtractFinishers(t *testing.T) {
	testCases := []struct {
		name      string
		arrivals  []arrival
		finishers [4]Finisher
		err       error
	}{
		{
			name:     "two placed",
			arrivals: []arrival{{"1", "6"}, {"2", "11"}},
			finishers: [4]Finisher{
				{Number: 6, Present: true},
				{Number: 11, Present: true},
				{}, {},
			},
		},
		{
			name:     "dead heat",
			arrivals: []arrival{{"1", "6"}, {"2", "11"}, {"3", "2"}, {"3", "4"}, {"4", "8"}, {"5", "1"}},
			finishers: [4]Finisher{
				{Number: 6, Present: true},
				{Number: 11, Present: true},
				{Number: 2, Present: true},
				{Number: 4, Present: true},
			},
		},
		{
			name:     "unreadable number",
			arrivals: []arrival{{"1", "6"}, {"2", "NP"}},
			err:      ErrMalformed,
		},
		{
			name: "empty table",
			err:  ErrNotFound,
		},
	}

	for _, test := range testCases {
		doc := parseDoc(t, "<html><body>"+arrivalsTable(test.arrivals)+"</body></html>")
		finishers, err := ExtractFinishers(doc)
		require.Equal(t, test.finishers, finishers, test.name)
		if test.err == nil {
			require.NoError(t, err, test.name)
		} else {
			require.True(t, errors.Is(err, test.err), test.name)
		}
	}
}

func TestExtractFinalRunners(t *testing.T) {
	doc := parseDoc(t, "<html><body>"+arrivalsTable(largeFieldArrivals)+"</body></html>")
	runners, err := ExtractFinalRunners(doc)
	require.NoError(t, err)
	require.Equal(t, 9, runners)

	doc = parseDoc(t, "<html><body>"+arrivalsTable(nil)+"</body></html>")
	runners, err = ExtractFinalRunners(doc)
	require.ErrorIs(t, err, ErrNotFound)
	require.Equal(t, 0, runners)
}

func TestExtractPayoutUsesPmuCell(t *testing.T) {
	doc := parseDoc(t, payoutPage(largeFieldArrivals))

	win, err := ExtractPayout(doc, lookupWin)
	require.NoError(t, err)
	require.Equal(t, "4,00 €", win)

	place, err := ExtractPayout(doc, lookupPlace2)
	require.NoError(t, err)
	require.Equal(t, "3,00 €", place)

	_, err = ExtractPayout(doc, payoutLookup{table: "lesSolos", label: "Placé", nth: 4})
	require.ErrorIs(t, err, ErrNotFound)

	_, err = ExtractPayout(doc, payoutLookup{table: "lesMultis", label: "Gagnant", nth: 1})
	require.ErrorIs(t, err, ErrNotFound)

	stable, err := ExtractStable(doc)
	require.NoError(t, err)
	require.Equal(t, "1 - 2", stable)

	trio, err := ExtractTrioDisordered(doc)
	require.NoError(t, err)
	require.Equal(t, "120,50 €", trio)

	super4, err := ExtractSuper4(doc)
	require.NoError(t, err)
	require.Equal(t, "1\u00a0250,00 €", super4)
}
