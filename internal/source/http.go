package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const maxDocumentBytes = 4 << 20

type Options struct {
	Timeout    time.Duration
	HTTPClient *http.Client
	UserAgent  string
}

type HTTPSource struct {
	baseURL    *url.URL
	httpClient *http.Client
	userAgent  string
}

func NewHTTPSource(baseURL string, opts Options) (*HTTPSource, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("base URL is required")
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid base URL %q: scheme must be http or https", baseURL)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}

	client := opts.HTTPClient
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	ua := opts.UserAgent
	if ua == "" {
		ua = "yearcfg"
	}
	return &HTTPSource{baseURL: u, httpClient: client, userAgent: ua}, nil
}

func (s *HTTPSource) URL(path string) string {
	ref := &url.URL{Path: strings.TrimPrefix(path, "/")}
	return s.baseURL.ResolveReference(ref).String()
}

func (s *HTTPSource) Fetch(ctx context.Context, path string) ([]byte, error) {
	target := s.URL(path)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "application/yaml, text/yaml, text/plain, */*")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return nil, &StatusError{URL: target, StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", target, err)
	}
	if len(data) > maxDocumentBytes {
		return nil, fmt.Errorf("read %s: document exceeds %d bytes", target, maxDocumentBytes)
	}
	return data, nil
}
