package geny

import (
	"context"
	"net/url"
	"strings"

	"genyscrape/lib/htmlutil"
	"genyscrape/lib/racedate"

	"github.com/PuerkitoBio/goquery"
)

const (
	linkRace   = "partants/stats/prono"
	linkPayout = "rapports"
)

type IndexLinks struct {
	// Races are the relative urls of the metadata pages.
	Races []string
	// Payouts are the relative urls of the payout pages.
	Payouts []string
}

// ParseIndex collects the sub page links of every race block of a day's index page.
func ParseIndex(ctx context.Context, doc *goquery.Document) IndexLinks {
	var links IndexLinks
	anchors := htmlutil.GetAnchors(ctx, doc.Find("div.courseLiens a"))
	for _, a := range anchors {
		switch htmlutil.NormalizeSpace(a.Name) {
		case linkRace:
			links.Races = append(links.Races, a.Href)
		case linkPayout:
			links.Payouts = append(links.Payouts, a.Href)
		}
	}
	return links
}

// IndexURL returns the url of the index page listing the races of `date`.
func IndexURL(base string, date racedate.Date) string {
	u, err := url.Parse(base)
	if err != nil {
		return base + "?date=" + date.ISO()
	}
	query := u.Query()
	query.Set("date", date.ISO())
	u.RawQuery = query.Encode()
	return u.String()
}

// AbsoluteURL resolves a link of the index page against the site host,
// absolute and protocol-relative links keep their own host.
func AbsoluteURL(host, href string) string {
	base, err := url.Parse(host)
	if err != nil {
		return strings.TrimSuffix(host, "/") + "/" + strings.TrimPrefix(href, "/")
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return strings.TrimSuffix(host, "/") + "/" + strings.TrimPrefix(href, "/")
	}
	return base.ResolveReference(ref).String()
}
