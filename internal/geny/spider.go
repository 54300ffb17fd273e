package geny

import (
	"context"
	"fmt"

	"genyscrape/internal/assert"
	"genyscrape/internal/crawler"
	"genyscrape/lib/racedate"
	"genyscrape/lib/telemetry"
)

const (
	DefaultBaseURL = "https://www.geny.com/reunions-courses-pmu"
	DefaultHost    = "https://www.geny.com"
)

const (
	report_spider_index_links = "spider.index-links"
	report_spider_no_races    = "spider.no-races"
)

// Collector accumulates the records of one scrape, it is only written from
// HandleResponse which the crawler never runs concurrently.
type Collector struct {
	Races   []RaceMetadataRecord
	Payouts []PayoutRecord
}

type requestKind int

const (
	request_index requestKind = iota
	request_race
	request_payout
)

type requestMeta struct {
	kind requestKind
}

type SpiderOptions struct {
	Date    racedate.Date
	BaseURL string
	Host    string
	Tel     telemetry.API
}

type Spider struct {
	date    racedate.Date
	baseUrl string
	host    string
	tel     telemetry.API
	ctx     context.Context

	collector Collector
}

func NewSpider(ctx context.Context, opts SpiderOptions) *Spider {
	baseUrl := opts.BaseURL
	if baseUrl == "" {
		baseUrl = DefaultBaseURL
	}
	host := opts.Host
	if host == "" {
		host = DefaultHost
	}
	tel := opts.Tel
	if tel == nil {
		tel = telemetry.SlogAPI{}
	}
	return &Spider{
		date:    opts.Date,
		baseUrl: baseUrl,
		host:    host,
		tel:     telemetry.NewScopedAPI("geny", tel),
		ctx:     ctx,
	}
}

func (s *Spider) StartingRequests() []crawler.Request {
	return []crawler.Request{
		crawler.NewRequest(IndexURL(s.baseUrl, s.date), requestMeta{kind: request_index}),
	}
}

func (s *Spider) HandleResponse(nav crawler.Navigator, res crawler.Response) error {
	meta, ok := crawler.GetMeta[requestMeta](res.Request)
	assert.True(ok, "request %s carries no geny meta", res.Request.Url)

	switch meta.kind {
	case request_index:
		links := ParseIndex(s.ctx, res.Document)
		s.tel.ReportDebug(
			report_spider_index_links,
			"races", len(links.Races),
			"payouts", len(links.Payouts),
		)
		if len(links.Races) == 0 && len(links.Payouts) == 0 {
			s.tel.ReportWarning(report_spider_no_races, "url", res.Url)
		}
		for _, href := range links.Races {
			nav.Request(crawler.NewRequest(AbsoluteURL(s.host, href), requestMeta{kind: request_race}))
		}
		for _, href := range links.Payouts {
			nav.Request(crawler.NewRequest(AbsoluteURL(s.host, href), requestMeta{kind: request_payout}))
		}
		return nil
	case request_race:
		record, err := ParseRaceMetadata(res.Url, res.Document, s.tel)
		if err != nil {
			return err
		}
		s.collector.Races = append(s.collector.Races, record)
		return nil
	case request_payout:
		record, err := ParsePayout(res.Url, res.Document, s.tel)
		if err != nil {
			return err
		}
		s.collector.Payouts = append(s.collector.Payouts, record)
		return nil
	}

	return fmt.Errorf("unknown request kind %d", meta.kind)
}

// Collected returns what the spider gathered, it must only be called once the crawl is over.
func (s *Spider) Collected() Collector {
	return s.collector
}
