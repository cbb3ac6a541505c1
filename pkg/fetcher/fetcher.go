package fetcher

import (
	"fmt"
	"io"
	"net/http"
	"time"
)

const fetchTimeout = 30 * time.Second

type Fetcher struct {
	client *http.Client
}

func NewFetcher() *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: fetchTimeout},
	}
}

// Page is one fetched document plus the response metadata worth keeping.
type Page struct {
	HTML         []byte
	StatusCode   int
	LastModified string // Last-Modified header, verbatim
	FinalURL     string // after redirects
}

// FetchPage retrieves a page over HTTP. Non-2xx responses are errors.
func (f *Fetcher) FetchPage(url string) (*Page, error) {
	resp, err := f.client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to make HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("failed to fetch page, status code: %d", resp.StatusCode)
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &Page{
		HTML:         bodyBytes,
		StatusCode:   resp.StatusCode,
		LastModified: resp.Header.Get("Last-Modified"),
		FinalURL:     resp.Request.URL.String(),
	}, nil
}
