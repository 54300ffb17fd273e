package geny

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"strconv"
	"strings"

	"genyscrape/lib/htmlutil"
	"genyscrape/lib/racedate"
	"genyscrape/lib/textutil"

	"github.com/PuerkitoBio/goquery"
)

// ErrNotFound means the element a field lives in is absent from the page.
var ErrNotFound = errors.New("not found")

// ErrMalformed means the element was found but its text does not have the expected shape.
var ErrMalformed = errors.New("malformed")

func malformed(field, value string) error {
	return fmt.Errorf("%s %q: %w", field, value, ErrMalformed)
}

// pageSlug returns the last path segment of a race page url, ex.
// 2018-07-30-clairefontaine-deauville-pmu-prix-de-la-cote-de-nacre_c991181
func pageSlug(rawUrl string) (string, error) {
	u, err := url.Parse(rawUrl)
	if err != nil {
		return "", err
	}
	slug := path.Base(strings.TrimSuffix(u.Path, "/"))
	if slug == "." || slug == "/" || slug == "" {
		return "", fmt.Errorf("race key in %q: %w", rawUrl, ErrNotFound)
	}
	return slug, nil
}

// RaceKey derives the identifier shared by the metadata and payout pages of a race,
// the token after the last dash of the url slug (ex. nacre_c991181).
func RaceKey(rawUrl string) (string, error) {
	slug, err := pageSlug(rawUrl)
	if err != nil {
		return "", err
	}
	idx := strings.LastIndex(slug, "-")
	key := slug[idx+1:]
	if key == "" {
		return "", fmt.Errorf("race key in %q: %w", rawUrl, ErrNotFound)
	}
	return key, nil
}

// RaceDate reads the YYYY-MM-DD prefix of the url slug.
func RaceDate(rawUrl string) (racedate.Date, error) {
	slug, err := pageSlug(rawUrl)
	if err != nil {
		return racedate.Date{}, err
	}
	tokens := strings.Split(slug, "-")
	if len(tokens) < 3 {
		return racedate.Date{}, fmt.Errorf("race date in %q: %w", rawUrl, ErrNotFound)
	}
	return racedate.Parse(fmt.Sprintf("%s/%s/%s", tokens[2], tokens[1], tokens[0]))
}

func ExtractHour(doc *goquery.Document) (string, error) {
	strong := doc.Find("span.infoCourse > strong").First()
	if strong.Length() == 0 {
		return "", fmt.Errorf("hour: %w", ErrNotFound)
	}
	hour := strings.TrimSpace(strong.Text())
	if !strings.Contains(hour, "h") {
		return "", malformed("hour", hour)
	}
	return hour, nil
}

func breadcrumbReunion(doc *goquery.Document) *goquery.Selection {
	return doc.Find("div#navigation > a").Eq(2)
}

func ExtractVenue(doc *goquery.Document) (string, error) {
	a := breadcrumbReunion(doc)
	if a.Length() == 0 {
		return "", fmt.Errorf("venue: %w", ErrNotFound)
	}
	texts := htmlutil.OwnTexts(a)
	if len(texts) == 0 {
		return "", fmt.Errorf("venue: %w", ErrNotFound)
	}
	return strings.TrimSpace(texts[0]), nil
}

// ExtractReunion turns the breadcrumb link fragment (#reunion3) into a reunion code (R3).
func ExtractReunion(doc *goquery.Document) (string, error) {
	a := breadcrumbReunion(doc)
	href, ok := a.Attr("href")
	if !ok {
		return "", fmt.Errorf("reunion: %w", ErrNotFound)
	}
	_, fragment, found := strings.Cut(href, "#")
	if !found {
		return "", fmt.Errorf("reunion fragment in %q: %w", href, ErrNotFound)
	}
	return strings.ReplaceAll(fragment, "reunion", "R"), nil
}

// the info span holds the race facts in one of its first text nodes, ex.
// "Attelé -  2700 mètres - Grande piste - 16 partants - Départ à l'autostart"
const disciplineCandidates = 5

const nbsp = '\u00a0'

func isRaceFacts(text string) bool {
	return strings.Count(text, "-") >= 4 && strings.ContainsRune(text, nbsp)
}

func ExtractDiscipline(doc *goquery.Document) (Discipline, error) {
	texts := htmlutil.OwnTexts(doc.Find("span.infoCourse").First())
	if len(texts) > disciplineCandidates {
		texts = texts[:disciplineCandidates]
	}

	for _, text := range texts {
		if !isRaceFacts(text) {
			continue
		}
		token, _, _ := strings.Cut(text, string(nbsp))
		token = textutil.RemoveSpaces(token)
		runes := []rune(token)
		if len(runes) == 0 {
			return DisciplineNone, malformed("discipline", text)
		}
		token = string(runes[:len(runes)-1])

		discipline := DisciplineFromLabel(token)
		if discipline == DisciplineNone {
			return DisciplineNone, malformed("discipline", token)
		}
		return discipline, nil
	}
	return DisciplineNone, fmt.Errorf("discipline: %w", ErrNotFound)
}

func ExtractRaceNumber(doc *goquery.Document) (int, error) {
	texts := htmlutil.OwnTexts(doc.Find("div.nomCourse strong").First())
	if len(texts) == 0 {
		return 0, fmt.Errorf("race number: %w", ErrNotFound)
	}
	digits := textutil.Digits(texts[0])
	number, err := strconv.Atoi(digits)
	if err != nil {
		return 0, malformed("race number", texts[0])
	}
	return number, nil
}

func ExtractRunners(doc *goquery.Document) (int, error) {
	cell := doc.Find("div.yui-content tbody").First().
		ChildrenFiltered("tr").Last().
		ChildrenFiltered("td").First()
	texts := htmlutil.OwnTexts(cell)
	if len(texts) == 0 {
		return 0, fmt.Errorf("runner count: %w", ErrNotFound)
	}
	runners, err := strconv.Atoi(strings.TrimSpace(texts[0]))
	if err != nil {
		return 0, malformed("runner count", texts[0])
	}
	return runners, nil
}

func arrivalRows(doc *goquery.Document) *goquery.Selection {
	return doc.Find("table#arrivees tr")
}

// ExtractFinalRunners infers the runner count of a finished race as the highest
// horse number listed in the arrivals table.
func ExtractFinalRunners(doc *goquery.Document) (int, error) {
	highest := -1
	arrivalRows(doc).Each(func(_ int, tr *goquery.Selection) {
		for _, text := range htmlutil.OwnTexts(tr.ChildrenFiltered("td").Eq(1)) {
			text = strings.TrimSpace(text)
			if !textutil.IsDigits(text) {
				continue
			}
			n, err := strconv.Atoi(text)
			if err == nil && n > highest {
				highest = n
			}
		}
	})
	if highest < 0 {
		return 0, fmt.Errorf("final runner count: %w", ErrNotFound)
	}
	return highest, nil
}

// ExtractFinishers returns the numbers of the horses placed 1st to 4th. Dead heats
// can list more than 4 rows, only the first 4 are kept.
func ExtractFinishers(doc *goquery.Document) ([4]Finisher, error) {
	var numbers []int
	var err error
	arrivalRows(doc).EachWithBreak(func(_ int, tr *goquery.Selection) bool {
		cells := tr.ChildrenFiltered("td")
		position, ok := htmlutil.FirstText(cells.Eq(0))
		if !ok {
			return true
		}
		rank, perr := strconv.ParseFloat(strings.TrimSpace(position), 64)
		if perr != nil || rank > 4 {
			return true
		}
		for _, text := range htmlutil.OwnTexts(cells.Eq(1)) {
			text = strings.TrimSpace(text)
			if text == "" {
				continue
			}
			n, aerr := strconv.Atoi(text)
			if aerr != nil {
				err = malformed("finisher", text)
				return false
			}
			numbers = append(numbers, n)
		}
		return true
	})

	var finishers [4]Finisher
	if err != nil {
		return finishers, err
	}
	if len(numbers) == 0 {
		return finishers, fmt.Errorf("finishers: %w", ErrNotFound)
	}
	for i := 0; i < len(finishers) && i < len(numbers); i++ {
		finishers[i] = Finisher{Number: numbers[i], Present: true}
	}
	return finishers, nil
}

// pmuCell returns the cell of a bet table that holds the PMU operator's payouts.
func pmuCell(doc *goquery.Document, tableId string) (*goquery.Selection, error) {
	cell := doc.Find(fmt.Sprintf("table#%s tr > td", tableId)).FilterFunction(func(_ int, td *goquery.Selection) bool {
		found := false
		td.Children().Find("i").EachWithBreak(func(_ int, i *goquery.Selection) bool {
			found = i.Text() == "PMU"
			return !found
		})
		return found
	}).First()
	if cell.Length() == 0 {
		return nil, fmt.Errorf("%s pmu cell: %w", tableId, ErrNotFound)
	}
	return cell, nil
}

// labeledRow returns the nth (starting at 1) row of the cell that has a label div
// reading `label`.
func labeledRow(cell *goquery.Selection, label string, nth int) *goquery.Selection {
	return cell.Find("tr").FilterFunction(func(_ int, tr *goquery.Selection) bool {
		return tr.Children().Find("div").FilterFunction(func(_ int, div *goquery.Selection) bool {
			return htmlutil.NormalizeSpace(div.Text()) == label
		}).Length() > 0
	}).Eq(nth - 1)
}

// cellValue reads the payout amount in the second cell of a row, `within` narrows
// the lookup to a specific element (ex. "b") of that cell.
func cellValue(row *goquery.Selection, within string) (string, bool) {
	value := row.ChildrenFiltered("td").Eq(1)
	if within != "" {
		value = value.Find(within)
	}
	return htmlutil.FirstText(value)
}

type payoutLookup struct {
	table  string
	label  string
	nth    int
	within string
}

func (l payoutLookup) String() string {
	return fmt.Sprintf("%s/%s[%d]", l.table, l.label, l.nth)
}

// ExtractPayout runs a single labeled lookup against the PMU cell of a bet table,
// the returned text is not normalized yet.
func ExtractPayout(doc *goquery.Document, l payoutLookup) (string, error) {
	cell, err := pmuCell(doc, l.table)
	if err != nil {
		return "", err
	}
	row := labeledRow(cell, l.label, l.nth)
	if row.Length() == 0 {
		return "", fmt.Errorf("%s: %w", l, ErrNotFound)
	}
	text, ok := cellValue(row, l.within)
	if !ok {
		return "", fmt.Errorf("%s value: %w", l, ErrNotFound)
	}
	return text, nil
}

// ExtractTrioDisordered reads the second row of the first table nested in the trio PMU cell.
func ExtractTrioDisordered(doc *goquery.Document) (string, error) {
	cell, err := pmuCell(doc, "lesTrios")
	if err != nil {
		return "", err
	}
	row := cell.ChildrenFiltered("table").First().Find("tr").Eq(1)
	text, ok := htmlutil.FirstText(row.ChildrenFiltered("td").Eq(1).ChildrenFiltered("b"))
	if !ok {
		return "", fmt.Errorf("trio disordered: %w", ErrNotFound)
	}
	return text, nil
}

func ExtractSuper4(doc *goquery.Document) (string, error) {
	cell, err := pmuCell(doc, "lesQuartos")
	if err != nil {
		return "", err
	}
	row := cell.Find("tr").FilterFunction(func(_ int, tr *goquery.Selection) bool {
		return tr.Children().FilterFunction(func(_ int, child *goquery.Selection) bool {
			return htmlutil.NormalizeSpace(child.Text()) == "Super 4"
		}).Length() > 0
	}).First()
	if row.Length() == 0 {
		return "", fmt.Errorf("super 4: %w", ErrNotFound)
	}
	text, ok := cellValue(row, "")
	if !ok {
		return "", fmt.Errorf("super 4 value: %w", ErrNotFound)
	}
	return text, nil
}

// ExtractStable reads the "Ecurie : 1 - 2" label that sits above the solo bet tables.
func ExtractStable(doc *goquery.Document) (string, error) {
	cell, err := pmuCell(doc, "lesSolos")
	if err != nil {
		return "", err
	}
	texts := htmlutil.OwnTexts(cell.ChildrenFiltered("div").ChildrenFiltered("span").First())
	if len(texts) == 0 {
		return "", fmt.Errorf("stable: %w", ErrNotFound)
	}
	stable := strings.ReplaceAll(texts[0], string(nbsp), "")
	stable = strings.ReplaceAll(stable, "Ecurie : ", "")
	return stable, nil
}
