package cdx

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/net/idna"
	"golang.org/x/net/proxy"
)

const (
	// DefaultEndpoint is the public Wayback Machine CDX search API.
	DefaultEndpoint = "http://web.archive.org/cdx/search/cdx"

	// DefaultTimeout bounds a single index request, including reading the body.
	DefaultTimeout = 30 * time.Second

	// HeaderLine is the column header the index may emit before the records
	// when only the "original" field is requested.
	HeaderLine = "original"

	// maxLineSize bounds a single returned record.
	maxLineSize = 1024 * 1024
)

// Client fetches archived URL records from a CDX index.
type Client struct {
	// endpoint is the CDX search URL without query parameters.
	endpoint string

	// timeout bounds each request.
	timeout time.Duration

	// userAgent is sent with each request when non-empty.
	userAgent string

	// proxyAddress routes requests through a SOCKS5 proxy when non-empty.
	proxyAddress string

	// httpClient is built by NewClient unless supplied with WithHTTPClient.
	httpClient *http.Client

	// logger for structured logging.
	logger *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithEndpoint overrides the CDX search URL.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		c.endpoint = endpoint
	}
}

// WithTimeout sets the per-request timeout. Non-positive values are ignored.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithProxy routes requests through the SOCKS5 proxy at address ("host:port").
func WithProxy(address string) Option {
	return func(c *Client) {
		c.proxyAddress = address
	}
}

// WithHTTPClient uses client as-is instead of building one.
// The timeout and proxy options are ignored in that case.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a Client. It validates the endpoint and proxy address
// but does not contact either.
func NewClient(opts ...Option) (*Client, error) {
	c := &Client{
		endpoint: DefaultEndpoint,
		timeout:  DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}

	u, err := url.Parse(c.endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidEndpoint, c.endpoint)
	}

	if c.httpClient == nil {
		transport := http.DefaultTransport.(*http.Transport).Clone() //nolint:forcetypeassert // DefaultTransport is always *http.Transport
		if c.proxyAddress != "" {
			if !isValidProxyAddress(c.proxyAddress) {
				return nil, ErrInvalidProxyAddress
			}
			dialer, err := proxy.SOCKS5("tcp", c.proxyAddress, nil, proxy.Direct)
			if err != nil {
				return nil, fmt.Errorf("failed to create SOCKS5 dialer: %w", err)
			}
			transport.Proxy = nil
			if cd, ok := dialer.(proxy.ContextDialer); ok {
				transport.DialContext = cd.DialContext
			} else {
				transport.DialContext = func(_ context.Context, network, addr string) (net.Conn, error) {
					return dialer.Dial(network, addr)
				}
			}
		}
		c.httpClient = &http.Client{
			Transport: transport,
			Timeout:   c.timeout,
		}
	}

	return c, nil
}

// Endpoint returns the CDX search URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// QueryURL returns the request URL used for domain.
// Internationalized domains are converted to their ASCII form; if the
// conversion fails the domain is used as given.
func (c *Client) QueryURL(domain string) string {
	asciiDomain, err := idna.Punycode.ToASCII(domain)
	if err != nil {
		asciiDomain = domain
	}

	params := url.Values{}
	params.Set("url", asciiDomain+"/*")
	params.Set("output", "text")
	params.Set("matchType", "domain")
	params.Set("collapse", "urlkey")
	params.Set("fl", "original")

	return c.endpoint + "?" + params.Encode()
}

// Fetch returns the raw response lines for domain. Lines are returned as
// sent, including a header line if the index emitted one; filtering is the
// caller's job.
//
// A transport failure, timeout or non-2xx status is returned as an error.
func (c *Client) Fetch(ctx context.Context, domain string) ([]string, error) {
	queryURL := c.QueryURL(domain)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, queryURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", domain, err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	c.logger.Debug("querying CDX index", "domain", domain, "url", queryURL)
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request for %s failed: %w", domain, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{
			Domain:     domain,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
		}
	}

	var lines []string
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read response for %s: %w", domain, err)
	}

	c.logger.Debug("CDX index responded",
		"domain", domain,
		"lines", len(lines),
		"elapsed", time.Since(start),
	)

	return lines, nil
}

// isValidProxyAddress checks that address is "host:port" with a port in
// 1-65535.
func isValidProxyAddress(address string) bool {
	host, port, err := net.SplitHostPort(address)
	if err != nil || host == "" {
		return false
	}
	n, err := strconv.Atoi(port)
	return err == nil && n >= 1 && n <= 65535
}
