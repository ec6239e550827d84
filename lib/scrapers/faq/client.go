package faq

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"faqwatch/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("scrapers/faq")

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

type ClientOptions struct {
	// BaseUrl is the FAQ listing endpoint, without query parameters.
	BaseUrl string
	// RequestTimeout bounds a single GET, not the whole retry sequence.
	RequestTimeout time.Duration
	// MaxRetries is the number of additional attempts after the first
	// failed one.
	MaxRetries int
	// RetryDelay is the backoff base, attempt n waits RetryDelay * n.
	RetryDelay time.Duration
	// DelayMin/DelayMax bound the randomized politeness pause issued
	// before every request.
	DelayMin time.Duration
	DelayMax time.Duration
}

type Client struct {
	http *resty.Client
	opts ClientOptions
}

func NewClient(opts ClientOptions) *Client {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = time.Second * 30
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	if opts.DelayMax < opts.DelayMin {
		opts.DelayMax = opts.DelayMin
	}

	client := resty.New()
	client.SetBaseURL(opts.BaseUrl)
	client.SetHeader("user-agent", userAgent)
	client.SetTimeout(opts.RequestTimeout)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	telemetry.InstrumentResty(client, "scrapers/faq/http")

	return &Client{http: client, opts: opts}
}

// politenessDelay blocks for a duration drawn uniformly from
// [DelayMin, DelayMax]. Independent of retry backoff.
func (c *Client) politenessDelay() {
	span := c.opts.DelayMax - c.opts.DelayMin
	d := c.opts.DelayMin
	if span > 0 {
		d += time.Duration(rand.Int63n(int64(span) + 1))
	}
	if d > 0 {
		time.Sleep(d)
	}
}

// FetchPage retrieves the raw markup of one listing page. Failed requests
// are retried with linear backoff, an explicit loop keeps the attempt
// counter in one place. After MaxRetries additional attempts it fails
// with a *FetchError wrapping the last cause.
func (c *Client) FetchPage(ctx context.Context, page int) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "FetchPage")
	defer span.End()

	span.SetAttributes(attribute.Int("page", page))

	var lastErr error
	for attempt := 0; ; attempt++ {
		c.politenessDelay()

		res, err := c.http.R().
			SetContext(ctx).
			SetQueryParam("ses", "1").
			SetQueryParam("page", strconv.Itoa(page)).
			Get("")
		if err == nil && res.StatusCode() != http.StatusOK {
			err = fmt.Errorf("unexpected status %d", res.StatusCode())
		}
		if err == nil {
			return res.Body(), nil
		}
		lastErr = err

		if attempt >= c.opts.MaxRetries {
			break
		}
		backoff := c.opts.RetryDelay * time.Duration(attempt+1)
		slog.WarnContext(ctx, "page fetch failed, retrying",
			"page", page,
			"attempt", attempt+1,
			"max_retries", c.opts.MaxRetries,
			"backoff", backoff,
			"err", err,
		)
		time.Sleep(backoff)
	}

	fetchErr := &FetchError{Page: page, Err: lastErr}
	span.RecordError(fetchErr)
	span.SetStatus(codes.Error, "exhausted retry attempts")
	return nil, fetchErr
}
