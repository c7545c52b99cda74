package naver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ckdqja135/salermoon/internal/domain"
	"golang.org/x/time/rate"
)

const (
	// PageSize is the fixed number of items requested per page (upstream maximum).
	PageSize = 100

	// maxOffset is the highest start offset the shopping API accepts.
	maxOffset = 1000

	defaultTimeout = 10 * time.Second
)

// Client handles communication with the Naver shopping search API
type Client struct {
	httpClient   *http.Client
	clientID     string
	clientSecret string
	baseURL      string
	timeout      time.Duration
	rateLimiter  *rate.Limiter
}

// NewClient creates a new Naver shopping API client.
// timeout bounds each individual page call; zero selects the default.
func NewClient(clientID, clientSecret, baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	// The open API budget is 25,000 calls/day. A couple of calls per second
	// with a small burst keeps multi-page searches well inside that.
	limiter := rate.NewLimiter(rate.Limit(2), 5)

	return &Client{
		httpClient:   &http.Client{},
		clientID:     clientID,
		clientSecret: clientSecret,
		baseURL:      strings.TrimRight(baseURL, "/"),
		timeout:      timeout,
		rateLimiter:  limiter,
	}
}

// FetchPages walks page offsets 1, 101, 201, ... strictly sequentially and
// returns the concatenated raw items from all pages. The returned total is
// the hit count reported by the last fetched page; upstream documents it as
// approximate, so it is advisory rather than authoritative.
//
// A failure on any page aborts the whole fetch. There are no per-page
// retries; the caller decides whether to re-fetch under different parameters.
func (c *Client) FetchPages(ctx context.Context, query string, pages int, sortHint string, exclude []string) ([]domain.RawCatalogItem, int, error) {
	log.Printf("[NAVER] FetchPages query=%q pages=%d sort=%q exclude=%v", query, pages, sortHint, exclude)

	var all []domain.RawCatalogItem
	total := 0

	for i := 0; i < pages; i++ {
		offset := 1 + i*PageSize
		if offset > maxOffset {
			break
		}

		page, err := c.fetchPage(ctx, query, offset, sortHint, exclude)
		if err != nil {
			return nil, 0, err
		}

		all = append(all, page.Items...)
		total = page.Total
	}

	log.Printf("[NAVER] FetchPages query=%q fetched=%d totalReported=%d", query, len(all), total)
	return all, total, nil
}

// fetchPage issues one GET for a single page offset.
func (c *Client) fetchPage(ctx context.Context, query string, offset int, sortHint string, exclude []string) (*domain.CatalogSearchResponse, error) {
	// Sequential calls plus the limiter keep us inside the upstream rate budget.
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1/search/shop.json", c.baseURL)
	params := url.Values{}
	params.Add("query", query)
	params.Add("display", strconv.Itoa(PageSize))
	params.Add("start", strconv.Itoa(offset))
	if sortHint != "" {
		params.Add("sort", sortHint)
	}
	if len(exclude) > 0 {
		params.Add("exclude", strings.Join(exclude, ":"))
	}

	reqURL := fmt.Sprintf("%s?%s", endpoint, params.Encode())

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(callCtx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Naver-Client-Id", c.clientID)
	req.Header.Set("X-Naver-Client-Secret", c.clientSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			log.Printf("[NAVER] Request timed out at offset %d: %v", offset, err)
			return nil, fmt.Errorf("%w: offset %d", domain.ErrUpstreamTimeout, offset)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamFailure, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		log.Printf("[NAVER] API error at offset %d - Status: %d, Body: %s", offset, resp.StatusCode, string(body))
		return nil, fmt.Errorf("%w: status %d, body: %s", domain.ErrUpstreamFailure, resp.StatusCode, string(body))
	}

	if !json.Valid(body) {
		log.Printf("[NAVER] Unparseable response at offset %d", offset)
		return nil, fmt.Errorf("%w: unparseable response body", domain.ErrUpstreamFailure)
	}

	// Best-effort parse: a shape-incompatible but valid JSON body degrades to
	// an empty page rather than failing the round.
	var page domain.CatalogSearchResponse
	if err := json.Unmarshal(body, &page); err != nil {
		log.Printf("[NAVER] Incompatible response shape at offset %d: %v", offset, err)
		page = domain.CatalogSearchResponse{}
	}

	return &page, nil
}

// isTimeout reports whether the request failed on a deadline rather than a
// transport or protocol error.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Timeout()
	}
	return false
}
