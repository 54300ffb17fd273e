package htmlutil

import (
	"context"
	"net/url"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/net/html"
)

var tracer = otel.Tracer("genyscrape.lib.htmlutil")

// GetText concatenates every descendant text node of `node`, it is the
// html.Node counterpart of goquery's Selection.Text.
func GetText(node *html.Node) string {
	var out strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			out.WriteString(n.Data)
			return
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	if node != nil {
		walk(node)
	}
	return out.String()
}

// NormalizeSpace trims the string and collapses inner runs of whitespace into a single space,
// like the XPath normalize-space() function but also treating non-breaking spaces as whitespace.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// OwnTexts returns the text nodes that are direct children of the first node of the selection,
// in document order, blank ones included.
func OwnTexts(sel *goquery.Selection) []string {
	if sel.Length() == 0 {
		return nil
	}
	var out []string
	for child := sel.Nodes[0].FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.TextNode {
			out = append(out, child.Data)
		}
	}
	return out
}

// FirstText returns the first descendant text node (of the first node in the selection)
// that is not blank, trimmed. ok is false when there is none.
func FirstText(sel *goquery.Selection) (text string, ok bool) {
	if sel.Length() == 0 {
		return "", false
	}
	return firstTextRecursive(sel.Nodes[0])
}

func firstTextRecursive(node *html.Node) (string, bool) {
	if node.Type == html.TextNode {
		trimmed := strings.TrimSpace(node.Data)
		return trimmed, trimmed != ""
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		text, ok := firstTextRecursive(child)
		if ok {
			return text, true
		}
	}
	return "", false
}

// Anchor is a link with its visible, whitespace-normalized text.
type Anchor struct {
	Name string
	Href string
}

func printable(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, s)
}

// GetAnchors turns every <a> node in the selection into an Anchor. Anchors
// without an href or whose href cannot be parsed are skipped.
func GetAnchors(ctx context.Context, sel *goquery.Selection) []Anchor {
	_, span := tracer.Start(ctx, "GetAnchors")
	defer span.End()

	var anchors []Anchor
	sel.Each(func(_ int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		if !ok {
			return
		}
		link, err := url.Parse(strings.TrimSpace(href))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "unparsable href")
			return
		}

		anchor := Anchor{
			Name: NormalizeSpace(printable(GetText(a.Nodes[0]))),
			Href: link.String(),
		}
		anchors = append(anchors, anchor)
		span.AddEvent("anchor", trace.WithAttributes(
			attribute.String("name", anchor.Name),
			attribute.String("url", anchor.Href),
		))
	})
	span.SetAttributes(attribute.Int("count", len(anchors)))
	return anchors
}
