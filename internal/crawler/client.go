package crawler

import (
	"time"

	"genyscrape/lib/restyutil"
	"genyscrape/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

type ClientOptions struct {
	UserAgent  string
	Timeout    time.Duration
	RetryCount int
	// BypassCloudflare wraps the transport so requests look like they come from a browser.
	BypassCloudflare bool
	// DumpOutput receives every HTTP exchange, it can be nil.
	DumpOutput restyutil.InstrumentOutput
	Tel        telemetry.API
}

func NewClient(opts ClientOptions) *resty.Client {
	client := resty.New()
	if opts.BypassCloudflare {
		client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	}

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	client.SetHeader("user-agent", userAgent)

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = time.Second * 30
	}
	client.SetTimeout(timeout)
	client.SetRetryCount(opts.RetryCount)

	tel := opts.Tel
	if tel == nil {
		tel = telemetry.SlogAPI{}
	}
	restyutil.InstrumentClient(client, tel, tracer, opts.DumpOutput)

	return client
}
