package geny

import (
	"fmt"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

const (
	fixtureRacePath   = "/partants-pmu/2018-07-30-clairefontaine-deauville-pmu-prix-de-la-cote-de-nacre_c991181"
	fixturePayoutPath = "/arrivee-et-rapports-pmu/2018-07-30-clairefontaine-deauville-pmu-prix-de-la-cote-de-nacre_c991181"
	fixtureKey        = "nacre_c991181"
)

func parseDoc(t testing.TB, body string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	require.NoError(t, err)
	return doc
}

func indexPage(blocks ...string) string {
	return "<html><body><div id=\"reunions\">" + strings.Join(blocks, "\n") + "</div></body></html>"
}

func raceBlock(racePath, payoutPath string) string {
	var links []string
	if racePath != "" {
		links = append(links, fmt.Sprintf(`<a href="%s">partants/stats/prono</a>`, racePath))
	}
	links = append(links, `<a href="/pronostics">pronos</a>`)
	if payoutPath != "" {
		links = append(links, fmt.Sprintf(`<a href="%s"> rapports </a>`, payoutPath))
	}
	return `<div class="yui-g courseLiens  alternate"><span>` + strings.Join(links, " | ") + `</span></div>`
}

type raceFixture struct {
	Hour       string
	Facts      string
	Heading    string
	ReunionRef string
	Runners    string
}

func defaultRaceFixture() raceFixture {
	return raceFixture{
		Hour:       "15h05",
		Facts:      "Attelé -\u00a02700 mètres - Grande piste - 9 partants - Départ à l'autostart - Corde à gauche",
		Heading:    "Course 4 : Prix de la Côte de Nacre",
		ReunionRef: "/reunions-courses-pmu?date=2018-07-30#reunion3",
		Runners:    "9",
	}
}

func (f raceFixture) html() string {
	return fmt.Sprintf(`<html><body>
<div id="navigation"><a href="/">Accueil</a> &gt; <a href="/reunions-courses-pmu">Courses</a> &gt; <a href="%s">Clairefontaine-Deauville</a></div>
<div class="yui-u first nomCourse"><h1><strong>%s</strong></h1></div>
<p><span class="infoCourse"><strong>%s</strong><br/>
%s<br/>Prix : 30 000 €</span></p>
<div class="yui-content"><table>
<thead><tr><th>N°</th><th>Cheval</th></tr></thead>
<tbody>
<tr><td>1</td><td>Alpha</td></tr>
<tr><td>%s</td><td>Omega</td></tr>
</tbody></table></div>
</body></html>`, f.ReunionRef, f.Heading, f.Hour, f.Facts, f.Runners)
}

// arrival is a row of the arrivals table: position, horse number.
type arrival [2]string

func arrivalsTable(rows []arrival) string {
	var b strings.Builder
	b.WriteString(`<table id="arrivees"><tr><th>Place</th><th>N°</th><th>Cheval</th></tr>`)
	for _, r := range rows {
		fmt.Fprintf(&b, "<tr><td>%s</td><td>%s</td><td>Horse</td></tr>", r[0], r[1])
	}
	b.WriteString("</table>")
	return b.String()
}

func betRow(label, value string) string {
	return fmt.Sprintf(`<tr><td><div class="libelle">%s</div></td><td>%s</td></tr>`, label, value)
}

func operatorCell(operator, header string, rows ...string) string {
	return fmt.Sprintf(
		`<td>%s<div class="operateur"><span><b><i>%s</i></b></span></div><table>%s</table></td>`,
		header, operator, strings.Join(rows, ""),
	)
}

func payoutPage(arrivals []arrival) string {
	solos := fmt.Sprintf(`<table id="lesSolos"><tr>%s%s</tr></table>`,
		operatorCell("ZEturf", "",
			betRow("Gagnant", "<b>9,90 €</b>"),
			betRow("Placé", "9,90 €"),
		),
		operatorCell("PMU", `<div><span>Ecurie : 1 - 2</span></div>`,
			betRow("Gagnant", "<span>G</span> <b>4,00 €</b>"),
			betRow("Placé", "\n  1,80 €"),
			betRow("Placé", "2,50 €"),
			betRow("Placé", "3,00 €"),
		),
	)
	duos := fmt.Sprintf(`<table id="lesDuos"><tr>%s</tr></table>`,
		operatorCell("PMU", "",
			betRow("Gagnant", "<b>12,40 €</b>"),
			betRow("Placé", "4,10 €"),
			betRow("Placé", "6,00 €"),
			betRow("Placé", "7,30 €"),
			betRow("Ordre", "47,80 €"),
		),
	)
	trios := fmt.Sprintf(`<table id="lesTrios"><tr>%s</tr></table>`,
		operatorCell("PMU", "",
			`<tr><th>Combinaison</th><th>Rapport</th></tr>`,
			betRow("Désordre", "<b>120,50 €</b>"),
			betRow("Ordre", "640,00 €"),
		),
	)
	quartos := fmt.Sprintf(`<table id="lesQuartos"><tr>%s</tr></table>`,
		operatorCell("PMU", "",
			`<tr><td>Super  4</td><td>1&nbsp;250,00 €</td></tr>`,
		),
	)
	return "<html><body>" + arrivalsTable(arrivals) + solos + duos + trios + quartos + "</body></html>"
}

var largeFieldArrivals = []arrival{{"1", "5"}, {"2", "3"}, {"3", "9"}, {"4", "1"}, {"5", "2"}}

// eightRunnerArrivals is the smallest field that still offers couplé placé.
var eightRunnerArrivals = []arrival{{"1", "8"}, {"2", "3"}, {"3", "5"}, {"4", "1"}}

var smallFieldArrivals = []arrival{{"1", "5"}, {"2", "3"}, {"3", "7"}, {"4", "1"}}
