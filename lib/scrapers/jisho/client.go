package jisho

import (
	"context"
	"fmt"
	"net/http/cookiejar"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"jishodash/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
)

// DefaultBaseUrl is the JLPT N1 word search the dashboard is built from.
const DefaultBaseUrl = "https://jisho.org/search/%23jlpt-n1%20%23words"

type ClientOptions struct {
	BaseUrl string
	// PageDir caches fetched pages on disk when set; pages already
	// present there are served without hitting the network.
	PageDir string
	// Delay is the polite pause after every fetched page.
	Delay time.Duration
}

type Client struct {
	BaseUrl string
	Http    *resty.Client
	pageDir string
	delay   time.Duration
}

func NewClient(opts ClientOptions) (*Client, error) {
	if opts.BaseUrl == "" {
		opts.BaseUrl = DefaultBaseUrl
	}

	client := resty.New()
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	client.SetTimeout(time.Second * 30)

	telemetry.InstrumentResty(client, "scrapers/jisho/http")

	return &Client{
		BaseUrl: opts.BaseUrl,
		Http:    client,
		pageDir: opts.PageDir,
		delay:   opts.Delay,
	}, nil
}

func (c *Client) cachePath(page int) string {
	return filepath.Join(c.pageDir, fmt.Sprintf("page_%d.html", page))
}

// FetchSearchPage returns the raw html of one search result page.
func (c *Client) FetchSearchPage(ctx context.Context, page int) (string, error) {
	if c.pageDir != "" {
		cached, err := os.ReadFile(c.cachePath(page))
		if err == nil {
			return string(cached), nil
		}
		if !os.IsNotExist(err) {
			return "", err
		}
	}

	res, err := c.Http.R().
		SetContext(ctx).
		SetQueryParam("page", strconv.Itoa(page)).
		Get(c.BaseUrl)
	if err != nil {
		return "", err
	}
	if res.StatusCode() != 200 {
		return "", fmt.Errorf("fetch page %d: status %s", page, res.Status())
	}
	body := res.String()

	if c.pageDir != "" {
		if err := os.MkdirAll(c.pageDir, 0o755); err != nil {
			return "", err
		}
		if err := os.WriteFile(c.cachePath(page), []byte(body), 0o644); err != nil {
			return "", err
		}
	}

	if c.delay > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(c.delay):
		}
	}

	return body, nil
}
