package restyutil

import (
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"
)

// Exchange is a completed request/response pair.
type Exchange struct {
	ID uint64
	// URL is the final url after redirects.
	URL  string
	Dump string
}

func writeHeaders(out *strings.Builder, headers http.Header) {
	names := make([]string, 0, len(headers))
	for name := range headers {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		for _, value := range headers[name] {
			out.WriteString(name)
			out.WriteString(": ")
			out.WriteString(value)
			out.WriteByte('\n')
		}
	}
}

func finalURL(res *resty.Response) string {
	if res.RawResponse != nil && res.RawResponse.Request != nil {
		return res.RawResponse.Request.URL.String()
	}
	return res.Request.URL
}

// dumpExchange renders the request line and headers followed by the status
// line, headers and body of the response. Request bodies are left out since
// scraped pages are only ever fetched with GET.
func dumpExchange(res *resty.Response) string {
	var out strings.Builder

	out.WriteString("> ")
	out.WriteString(res.Request.Method)
	out.WriteByte(' ')
	out.WriteString(res.Request.URL)
	out.WriteByte('\n')
	if res.Request.RawRequest != nil {
		writeHeaders(&out, res.Request.RawRequest.Header)
	}

	out.WriteString("\n< ")
	out.WriteString(strconv.Itoa(res.StatusCode()))
	out.WriteByte(' ')
	out.WriteString(finalURL(res))
	out.WriteByte('\n')
	writeHeaders(&out, res.Header())
	out.WriteByte('\n')
	out.Write(res.Body())

	return out.String()
}
