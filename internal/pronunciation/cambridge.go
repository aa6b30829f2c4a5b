// Package pronunciation finds US-English pronunciation recordings on the
// Cambridge dictionary site.
package pronunciation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/lexicard/lexicard-api/internal/config"
)

// ErrNotFound is returned when the dictionary has no US recording for a term.
var ErrNotFound = errors.New("pronunciation not found")

const (
	entryPath      = "/dictionary/english/"
	userAgent      = "Mozilla/5.0 (compatible; lexicard-api/1.0)"
	maxPageBytes   = 4 << 20
	defaultTimeout = 5 * time.Second
)

var whitespace = regexp.MustCompile(`\s+`)

// Client scrapes dictionary entry pages.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a Client from configuration.
func NewClient(cfg config.PronunciationConfig, logger *slog.Logger) *Client {
	timeout := time.Duration(cfg.RequestTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With(slog.String("component", "pronunciation")),
	}
}

// Lookup returns the absolute URL of the US mp3 recording for term.
func (c *Client) Lookup(ctx context.Context, term string) (string, error) {
	slug := whitespace.ReplaceAllString(strings.ToLower(strings.TrimSpace(term)), "-")
	if slug == "" {
		return "", ErrNotFound
	}
	pageURL := c.baseURL + entryPath + url.PathEscape(slug)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build dictionary request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("dictionary request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("dictionary returned status %d", resp.StatusCode)
	}

	doc, err := html.Parse(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return "", fmt.Errorf("failed to parse dictionary page: %w", err)
	}

	src := findUSAudio(doc)
	if src == "" {
		c.logger.Debug("no US pronunciation on page", slog.String("term", term))
		return "", ErrNotFound
	}
	return c.absolute(src), nil
}

func (c *Client) absolute(src string) string {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		return src
	}
	if !strings.HasPrefix(src, "/") {
		src = "/" + src
	}
	return c.baseURL + src
}

// findUSAudio looks for an mp3 source inside a ".us.dpron-i" block first and
// falls back to any audio element whose id mentions "us_pron".
func findUSAudio(doc *html.Node) string {
	for _, block := range findAll(doc, func(n *html.Node) bool {
		return hasClass(n, "us") && hasClass(n, "dpron-i")
	}) {
		for _, audio := range findAll(block, func(n *html.Node) bool {
			return n.Data == "audio" && hasClass(n, "hdn")
		}) {
			if src := mpegSource(audio); src != "" {
				return src
			}
		}
	}

	for _, audio := range findAll(doc, func(n *html.Node) bool {
		return n.Data == "audio" && strings.Contains(attr(n, "id"), "us_pron")
	}) {
		if src := mpegSource(audio); src != "" {
			return src
		}
	}
	return ""
}

func mpegSource(audio *html.Node) string {
	for _, source := range findAll(audio, func(n *html.Node) bool {
		return n.Data == "source" && attr(n, "type") == "audio/mpeg"
	}) {
		if src := attr(source, "src"); src != "" {
			return src
		}
	}
	return ""
}

func findAll(root *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && match(n) {
			out = append(out, n)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(root)
	return out
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}
