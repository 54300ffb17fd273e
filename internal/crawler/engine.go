package crawler

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"genyscrape/lib/telemetry"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/semaphore"
)

var tracer = otel.Tracer("genyscrape/crawler")

const (
	report_engine_fetch      = "engine.fetch"
	report_engine_parse_html = "engine.parse-html"
	report_engine_handle     = "engine.handle-response"
	report_engine_duplicate  = "engine.duplicate-request"
	report_engine_requests   = "engine.requests"
	report_engine_failed     = "engine.failed"
)

type Options struct {
	Client *resty.Client
	// Concurrency bounds the number of in-flight fetches, defaults to 8.
	Concurrency int
	Tel         telemetry.API
}

type Engine struct {
	client      *resty.Client
	concurrency int64
	tel         telemetry.API
}

func NewEngine(opts Options) *Engine {
	tel := opts.Tel
	if tel == nil {
		tel = telemetry.SlogAPI{}
	}
	client := opts.Client
	if client == nil {
		client = NewClient(ClientOptions{Tel: tel})
	}
	concurrency := int64(opts.Concurrency)
	if concurrency <= 0 {
		concurrency = 8
	}
	return &Engine{
		client:      client,
		concurrency: concurrency,
		tel:         telemetry.NewScopedAPI("crawler", tel),
	}
}

// Crawl runs the spider and blocks until every submitted request has been fetched
// and handled, or has failed. A failed fetch is reported and otherwise ignored.
func (e *Engine) Crawl(ctx context.Context, spider Spider) Stats {
	ctx, span := tracer.Start(ctx, "engine:Crawl")
	defer span.End()

	r := &run{
		ctx:    ctx,
		engine: e,
		spider: spider,
		sem:    semaphore.NewWeighted(e.concurrency),
		seen:   map[string]struct{}{},
	}
	for _, req := range spider.StartingRequests() {
		r.Request(req)
	}
	r.pending.Wait()

	e.tel.ReportCount(report_engine_requests, int64(r.stats.Submitted))
	e.tel.ReportCount(report_engine_failed, int64(r.stats.Failed))
	span.SetAttributes(
		attribute.Int("submitted", r.stats.Submitted),
		attribute.Int("failed", r.stats.Failed),
	)
	return r.stats
}

// run is the state of a single Crawl, it is the Navigator handed to the spider.
type run struct {
	ctx    context.Context
	engine *Engine
	spider Spider
	sem    *semaphore.Weighted

	// pending counts every submitted request that has not settled yet,
	// Add always happens before the submitting request calls Done.
	pending sync.WaitGroup

	statsLock sync.Mutex
	stats     Stats
	seen      map[string]struct{}

	// handlerLock serializes calls into the spider.
	handlerLock sync.Mutex
}

func (r *run) Request(req Request) {
	r.statsLock.Lock()
	_, duplicate := r.seen[req.Url]
	if duplicate {
		r.stats.Duplicates++
	} else {
		r.seen[req.Url] = struct{}{}
		r.stats.Submitted++
	}
	r.statsLock.Unlock()

	if duplicate {
		r.engine.tel.ReportDebug(report_engine_duplicate, "url", req.Url)
		return
	}

	r.pending.Add(1)
	go func() {
		defer r.pending.Done()
		r.execute(req)
	}()
}

func (r *run) count(update func(s *Stats)) {
	r.statsLock.Lock()
	defer r.statsLock.Unlock()
	update(&r.stats)
}

func (r *run) execute(req Request) {
	ctx, span := tracer.Start(r.ctx, "engine:execute")
	defer span.End()
	span.SetAttributes(attribute.String("url", req.Url))

	res, err := r.fetch(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch failed")
		r.engine.tel.ReportWarning(report_engine_fetch, "url", req.Url, "err", err)
		r.count(func(s *Stats) { s.Failed++ })
		return
	}
	r.count(func(s *Stats) { s.Fetched++ })

	r.handlerLock.Lock()
	err = r.spider.HandleResponse(r, res)
	r.handlerLock.Unlock()

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "handler rejected response")
		r.engine.tel.ReportBroken(report_engine_handle, "url", req.Url, "err", err)
		r.count(func(s *Stats) { s.Rejected++ })
		return
	}
	r.count(func(s *Stats) { s.Handled++ })
}

func (r *run) fetch(ctx context.Context, req Request) (Response, error) {
	err := r.sem.Acquire(ctx, 1)
	if err != nil {
		return Response{}, err
	}
	defer r.sem.Release(1)

	res, err := r.engine.client.R().
		SetContext(ctx).
		Get(req.Url)
	if err != nil {
		return Response{}, err
	}
	if res.IsError() {
		return Response{}, fmt.Errorf("unexpected status %s", res.Status())
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		r.engine.tel.ReportWarning(report_engine_parse_html, "url", req.Url, "err", err)
		return Response{}, err
	}

	finalUrl := req.Url
	if res.RawResponse != nil && res.RawResponse.Request != nil {
		finalUrl = res.RawResponse.Request.URL.String()
		doc.Url = res.RawResponse.Request.URL
	}

	return Response{
		Request:  req,
		Url:      finalUrl,
		Status:   res.StatusCode(),
		Document: doc,
	}, nil
}
