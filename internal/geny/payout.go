package geny

import (
	"genyscrape/lib/telemetry"

	"github.com/PuerkitoBio/goquery"
)

const (
	report_payout_runners   = "payout.runners"
	report_payout_finishers = "payout.finishers"
	report_payout_amount    = "payout.amount"
)

var (
	lookupWin          = payoutLookup{table: "lesSolos", label: "Gagnant", nth: 1, within: "b"}
	lookupWinPlace     = payoutLookup{table: "lesSolos", label: "Placé", nth: 1}
	lookupPlace1       = payoutLookup{table: "lesSolos", label: "Placé", nth: 2}
	lookupPlace2       = payoutLookup{table: "lesSolos", label: "Placé", nth: 3}
	lookupExactaWin    = payoutLookup{table: "lesDuos", label: "Gagnant", nth: 1, within: "b"}
	lookupExactaOrder  = payoutLookup{table: "lesDuos", label: "Ordre", nth: 1}
	lookupExactaPlace1 = payoutLookup{table: "lesDuos", label: "Placé", nth: 1}
	lookupExactaPlace2 = payoutLookup{table: "lesDuos", label: "Placé", nth: 2}
	lookupExactaPlace3 = payoutLookup{table: "lesDuos", label: "Placé", nth: 3}
	lookupTrioOrdered  = payoutLookup{table: "lesTrios", label: "Ordre", nth: 1}
)

type payoutParser struct {
	url string
	doc *goquery.Document
	tel telemetry.API
}

func (p payoutParser) amount(text string, err error) Amount {
	if err != nil {
		soft(p.tel, report_payout_amount, p.url, err)
		return Amount{State: NotFound}
	}
	return PresentAmount(text)
}

func (p payoutParser) lookup(l payoutLookup) Amount {
	return p.amount(ExtractPayout(p.doc, l))
}

// ParsePayout reads a "rapports" page. Which bets are looked up depends on the
// field size inferred from the arrivals table.
func ParsePayout(url string, doc *goquery.Document, tel telemetry.API) (PayoutRecord, error) {
	key, err := RaceKey(url)
	if err != nil {
		return PayoutRecord{}, err
	}
	p := payoutParser{url: url, doc: doc, tel: tel}
	record := PayoutRecord{Key: key}

	record.Runners, err = ExtractFinalRunners(doc)
	if err != nil {
		soft(tel, report_payout_runners, url, err)
	}
	record.Size = FieldSizeOf(record.Runners)

	record.Finishers, err = ExtractFinishers(doc)
	if err != nil {
		soft(tel, report_payout_finishers, url, err)
		record.Finishers = [4]Finisher{}
	}

	payouts := Payouts{
		Win:            p.lookup(lookupWin),
		WinPlace:       p.lookup(lookupWinPlace),
		Place1:         p.lookup(lookupPlace1),
		Place2:         p.lookup(lookupPlace2),
		Stable:         p.amount(ExtractStable(doc)),
		ExactaOrder:    p.lookup(lookupExactaOrder),
		TrioDisordered: p.amount(ExtractTrioDisordered(doc)),
	}

	switch record.Size {
	case LargeField:
		payouts.ExactaWin = p.lookup(lookupExactaWin)
		payouts.ExactaPlace1 = p.lookup(lookupExactaPlace1)
		payouts.ExactaPlace2 = p.lookup(lookupExactaPlace2)
		payouts.ExactaPlace3 = p.lookup(lookupExactaPlace3)
	case SmallField:
		payouts.TrioOrdered = p.lookup(lookupTrioOrdered)
		payouts.Super4 = p.amount(ExtractSuper4(doc))
	}
	record.Payouts = payouts

	return record, nil
}
