// Package cover finds a cover image for a book from a web page about it.
package cover

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// ErrNoCover is returned when a page carries no usable image
var ErrNoCover = errors.New("no cover image found")

// maxBody caps how much of a page is read
const maxBody = 5 * 1024 * 1024

// Resolver fetches pages and extracts cover image URLs
type Resolver struct {
	client *http.Client
}

// New creates a Resolver with a 30 second timeout
func New() *Resolver {
	return &Resolver{client: &http.Client{Timeout: 30 * time.Second}}
}

// NewWithClient uses client for all requests
func NewWithClient(client *http.Client) *Resolver {
	return &Resolver{client: client}
}

// Resolve returns an absolute image URL for rawURL. A URL serving an image is
// returned as is; an HTML page yields its og:image, then twitter:image, then
// its first <img>.
func (r *Resolver) Resolve(ctx context.Context, rawURL string) (string, error) {
	u, err := normalizeURL(rawURL)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "planner/1.0 (cover lookup)")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if strings.HasPrefix(mediaType, "image/") {
		return u.String(), nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	src := extractImage(string(body))
	if src == "" {
		return "", ErrNoCover
	}

	ref, err := url.Parse(src)
	if err != nil {
		return "", fmt.Errorf("invalid image URL %q: %w", src, err)
	}
	return u.ResolveReference(ref).String(), nil
}

// IsURL checks if a string looks like a URL
func IsURL(s string) bool {
	s = strings.TrimSpace(s)
	return strings.HasPrefix(s, "http://") ||
		strings.HasPrefix(s, "https://") ||
		strings.HasPrefix(s, "www.")
}

func normalizeURL(rawURL string) (*url.URL, error) {
	rawURL = strings.TrimSpace(rawURL)
	if strings.HasPrefix(rawURL, "www.") {
		rawURL = "https://" + rawURL
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme == "" {
		u.Scheme = "https"
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported scheme: %s", u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid URL: missing host")
	}
	return u, nil
}

// extractImage walks the HTML and returns the best image reference, or ""
func extractImage(htmlContent string) string {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return ""
	}

	var ogImage, twitterImage, firstImg string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "meta":
				key := strings.ToLower(attr(n, "property"))
				if key == "" {
					key = strings.ToLower(attr(n, "name"))
				}
				content := strings.TrimSpace(attr(n, "content"))
				switch {
				case content == "":
				case key == "og:image" && ogImage == "":
					ogImage = content
				case key == "twitter:image" && twitterImage == "":
					twitterImage = content
				}
			case "img":
				if src := strings.TrimSpace(attr(n, "src")); src != "" && firstImg == "" {
					firstImg = src
				}
			case "script", "style", "noscript":
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	switch {
	case ogImage != "":
		return ogImage
	case twitterImage != "":
		return twitterImage
	default:
		return firstImg
	}
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, name) {
			return a.Val
		}
	}
	return ""
}
