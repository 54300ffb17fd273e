package crawler

import (
	"genyscrape/internal/assert"

	"github.com/PuerkitoBio/goquery"
)

type Request struct {
	Url  string
	meta any
}

// NewRequest creates a request carrying `meta`, spiders use it to route the response.
func NewRequest(url string, meta any) Request {
	assert.NotEmptyStr(url, "request url")
	return Request{Url: url, meta: meta}
}

// GetMeta returns the meta attached to the request if it is of type T.
func GetMeta[T any](r Request) (T, bool) {
	meta, ok := r.meta.(T)
	return meta, ok
}

type Response struct {
	Request Request
	// Url is the final url of the response, after redirects.
	Url      string
	Status   int
	Document *goquery.Document
}

// Navigator lets a spider enqueue more requests while handling a response.
type Navigator interface {
	Request(req Request)
}

type Spider interface {
	StartingRequests() []Request
	// HandleResponse is never called concurrently with itself for a single Crawl.
	HandleResponse(nav Navigator, res Response) error
}

// Stats describes how the requests of a crawl settled.
type Stats struct {
	Submitted  int
	Duplicates int
	Fetched    int
	Failed     int
	Handled    int
	Rejected   int
}
