package templatefetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net"
	"net/http"
	"net/url"
	"strings"
	"syscall"
	"time"

	"golang.org/x/net/html/charset"

	"openinvite/internal/domain"
)

const (
	userAgent    = "OpenInvite-TemplateFetcher/1.0"
	maxRedirects = 5
)

var (
	ErrInvalidURL       = errors.New("template url is not allowed")
	ErrBlockedAddress   = errors.New("template host resolves to a private address")
	ErrTooLarge         = errors.New("template exceeds size limit")
	ErrUnexpectedStatus = errors.New("template server returned unexpected status")
	ErrNotHTML          = errors.New("template is not html")
)

// Config controls fetch limits.
type Config struct {
	Timeout   time.Duration
	MaxBytes  int64
	AllowHTTP bool
}

// Cache stores fetched templates by URL. A miss returns ok=false and no error.
type Cache interface {
	Get(ctx context.Context, url string) (body string, ok bool, err error)
	Set(ctx context.Context, url, body string) error
}

type httpFetcher struct {
	client *http.Client
	cfg    Config
	cache  Cache
	logger *slog.Logger
}

// NewHTTPFetcher returns a TemplateFetcher that downloads host templates over
// HTTP(S). A nil client gets NewSafeClient; cache may be nil.
func NewHTTPFetcher(client *http.Client, cfg Config, cache Cache, logger *slog.Logger) domain.TemplateFetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = 1 << 20
	}
	if client == nil {
		client = NewSafeClient()
	}
	f := &httpFetcher{cfg: cfg, cache: cache, logger: logger}
	c := *client
	c.CheckRedirect = f.checkRedirect
	f.client = &c
	return f
}

func (f *httpFetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	target, err := f.validate(rawURL)
	if err != nil {
		return "", err
	}

	if f.cache != nil {
		body, ok, err := f.cache.Get(ctx, target)
		if err != nil {
			f.logger.WarnContext(ctx, "template cache read failed", "err", err)
		} else if ok {
			return body, nil
		}
	}

	body, err := f.download(ctx, target)
	if err != nil {
		return "", err
	}

	if f.cache != nil {
		if err := f.cache.Set(ctx, target, body); err != nil {
			f.logger.WarnContext(ctx, "template cache write failed", "err", err)
		}
	}
	return body, nil
}

func (f *httpFetcher) validate(rawURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if err := f.checkURL(u); err != nil {
		return "", err
	}
	u.Fragment = ""
	return u.String(), nil
}

func (f *httpFetcher) checkURL(u *url.URL) error {
	switch u.Scheme {
	case "https":
	case "http":
		if !f.cfg.AllowHTTP {
			return fmt.Errorf("%w: plain http", ErrInvalidURL)
		}
	default:
		return fmt.Errorf("%w: scheme %q", ErrInvalidURL, u.Scheme)
	}
	if u.Host == "" || u.User != nil {
		return fmt.Errorf("%w: host", ErrInvalidURL)
	}
	return nil
}

// checkRedirect holds every hop to the same URL rules as the first request.
func (f *httpFetcher) checkRedirect(req *http.Request, via []*http.Request) error {
	if len(via) >= maxRedirects {
		return errors.New("too many redirects")
	}
	return f.checkURL(req.URL)
}

func (f *httpFetcher) download(ctx context.Context, target string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, f.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "text/html, application/xhtml+xml;q=0.9")
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch template: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}
	contentType := resp.Header.Get("Content-Type")
	if contentType != "" {
		mediaType, _, err := mime.ParseMediaType(contentType)
		if err != nil || (mediaType != "text/html" && mediaType != "application/xhtml+xml") {
			return "", fmt.Errorf("%w: %s", ErrNotHTML, contentType)
		}
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, f.cfg.MaxBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read template: %w", err)
	}
	if int64(len(raw)) > f.cfg.MaxBytes {
		return "", ErrTooLarge
	}

	utf8Reader, err := charset.NewReader(bytes.NewReader(raw), contentType)
	if err != nil {
		return "", fmt.Errorf("failed to decode template: %w", err)
	}
	decoded, err := io.ReadAll(utf8Reader)
	if err != nil {
		return "", fmt.Errorf("failed to decode template: %w", err)
	}
	return strings.ToValidUTF8(string(decoded), "\uFFFD"), nil
}

// NewSafeClient returns an HTTP client whose dialer refuses loopback, private,
// link-local and unspecified addresses, including after redirects. The fetcher
// installs its own redirect policy on top.
func NewSafeClient() *http.Client {
	dialer := &net.Dialer{
		Timeout: 5 * time.Second,
		Control: blockPrivate,
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = dialer.DialContext
	transport.Proxy = nil
	return &http.Client{Transport: transport}
}

func blockPrivate(_, address string, _ syscall.RawConn) error {
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return err
	}
	ip := net.ParseIP(host)
	if ip == nil || isPrivateIP(ip) {
		return fmt.Errorf("%w: %s", ErrBlockedAddress, host)
	}
	return nil
}

func isPrivateIP(ip net.IP) bool {
	return ip.IsLoopback() || ip.IsPrivate() || ip.IsLinkLocalUnicast() ||
		ip.IsLinkLocalMulticast() || ip.IsInterfaceLocalMulticast() ||
		ip.IsMulticast() || ip.IsUnspecified()
}
