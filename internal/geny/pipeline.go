package geny

import (
	"context"
	"fmt"

	"genyscrape/internal/crawler"
	"genyscrape/lib/racedate"
	"genyscrape/lib/telemetry"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("genyscrape/geny")

const (
	report_scrape_unmatched_race   = "scrape.unmatched-race"
	report_scrape_unmatched_payout = "scrape.unmatched-payout"
	report_scrape_races            = "scrape.races"
	report_scrape_payouts          = "scrape.payouts"
	report_scrape_rows             = "scrape.rows"
)

// Crawler runs a spider to completion.
type Crawler interface {
	Crawl(ctx context.Context, spider crawler.Spider) crawler.Stats
}

type Result struct {
	Date  racedate.Date
	Rows  []JoinedRow
	Stats crawler.Stats

	RacePages        int
	PayoutPages      int
	UnmatchedRaces   []string
	UnmatchedPayouts []string
}

// Scrape crawls every race of a day and returns the joined rows in report order.
// Rows are only joined once every page of the crawl has settled. When ctx ends
// before the crawl does, pages that were never fetched cannot be told apart from
// pages without a counterpart, so no rows are joined and ctx's error is returned.
func Scrape(ctx context.Context, c Crawler, opts SpiderOptions) (Result, error) {
	ctx, span := tracer.Start(ctx, "Scrape")
	defer span.End()

	tel := opts.Tel
	if tel == nil {
		tel = telemetry.SlogAPI{}
	}
	tel = telemetry.NewScopedAPI("geny", tel)

	spider := NewSpider(ctx, opts)
	stats := c.Crawl(ctx, spider)
	collected := spider.Collected()

	if err := ctx.Err(); err != nil {
		span.RecordError(err)
		return Result{
			Date:        opts.Date,
			Stats:       stats,
			RacePages:   len(collected.Races),
			PayoutPages: len(collected.Payouts),
		}, fmt.Errorf("scrape of %s interrupted: %w", opts.Date, err)
	}

	joined := Join(collected.Races, collected.Payouts)
	Order(joined.Rows)

	for _, key := range joined.UnmatchedRaces {
		tel.ReportWarning(report_scrape_unmatched_race, "key", key)
	}
	for _, key := range joined.UnmatchedPayouts {
		closest, ok := ClosestKey(key, joined.UnmatchedRaces)
		if ok {
			tel.ReportWarning(report_scrape_unmatched_payout, "key", key, "closest_race", closest)
			continue
		}
		tel.ReportWarning(report_scrape_unmatched_payout, "key", key)
	}
	tel.ReportCount(report_scrape_races, int64(len(collected.Races)))
	tel.ReportCount(report_scrape_payouts, int64(len(collected.Payouts)))
	tel.ReportCount(report_scrape_rows, int64(len(joined.Rows)))

	span.SetAttributes(
		attribute.String("date", opts.Date.ISO()),
		attribute.Int("rows", len(joined.Rows)),
	)

	return Result{
		Date:             opts.Date,
		Rows:             joined.Rows,
		Stats:            stats,
		RacePages:        len(collected.Races),
		PayoutPages:      len(collected.Payouts),
		UnmatchedRaces:   joined.UnmatchedRaces,
		UnmatchedPayouts: joined.UnmatchedPayouts,
	}, nil
}
