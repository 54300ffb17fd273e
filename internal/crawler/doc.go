// Package crawler is a small crawl engine: spiders hand it requests, it fetches
// them concurrently and delivers parsed documents back to the spider one at a
// time. Crawl returns only once every request, including the ones submitted
// from inside response handlers, has settled.
package crawler
