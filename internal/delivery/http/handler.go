package http

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ckdqja135/salermoon/internal/domain"
	"github.com/ckdqja135/salermoon/internal/usecase"
)

// Searcher is the usecase surface the HTTP layer depends on.
type Searcher interface {
	Search(ctx context.Context, query string, filters domain.SearchFilters) (*domain.SearchResult, error)
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	searcher Searcher
}

// NewHandler creates a new HTTP handler
func NewHandler(searcher Searcher) *Handler {
	return &Handler{searcher: searcher}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "salermoon-backend",
		"version": "1.0.0",
	})
}

// Search handles GET /api/v1/search. It parses the raw query parameters into
// typed, bounded SearchFilters and hands them to the search service.
func (h *Handler) Search(c *gin.Context) {
	if h.searcher == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "search service not configured"})
		return
	}

	query := strings.TrimSpace(c.Query("query"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrEmptyQuery.Error()})
		return
	}

	filters, err := parseFilters(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.searcher.Search(c.Request.Context(), query, filters)
	if err != nil {
		h.writeSearchError(c, query, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Refine handles POST /api/v1/refine: a pure re-computation over an item
// list the caller already holds. No upstream call is made.
func (h *Handler) Refine(c *gin.Context) {
	var req struct {
		Items        []domain.Item `json:"items"`
		TrimOutliers bool          `json:"trimOutliers"`
		Malls        []string      `json:"malls"`
		Sort         string        `json:"sort"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result := usecase.Refine(req.Items, usecase.RefineOptions{
		TrimOutliers: req.TrimOutliers,
		Malls:        req.Malls,
		Sort:         req.Sort,
	})

	c.JSON(http.StatusOK, result)
}

// parseFilters converts raw query parameters into SearchFilters. Values are
// validated here so the core only ever sees typed, bounded input.
func parseFilters(c *gin.Context) (domain.SearchFilters, error) {
	var filters domain.SearchFilters

	minPrice, err := optionalInt(c, "minPrice")
	if err != nil {
		return filters, err
	}
	maxPrice, err := optionalInt(c, "maxPrice")
	if err != nil {
		return filters, err
	}
	filters.MinPrice = minPrice
	filters.MaxPrice = maxPrice

	if raw := strings.TrimSpace(c.Query("exclude")); raw != "" {
		for _, cat := range strings.Split(raw, ",") {
			cat = strings.TrimSpace(cat)
			if cat != "" {
				filters.Exclude = append(filters.Exclude, cat)
			}
		}
	}

	filters.FilterNoise = c.Query("filterNoise") == "true" || c.Query("filterNoise") == "1"

	filters.Pages = 1
	if raw := c.Query("pages"); raw != "" {
		pages, err := strconv.Atoi(raw)
		if err != nil || pages < 1 {
			return filters, errors.New("pages must be a positive integer")
		}
		filters.Pages = pages
	}

	filters.Sort = c.DefaultQuery("sort", "sim")

	return filters, nil
}

// optionalInt parses an optional integer query parameter; absent means nil.
func optionalInt(c *gin.Context, name string) (*int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, errors.New(name + " must be an integer")
	}
	return &n, nil
}

// writeSearchError maps core errors to responses. Validation errors surface
// verbatim; upstream detail is logged, never returned to the caller.
func (h *Handler) writeSearchError(c *gin.Context, query string, err error) {
	switch {
	case errors.Is(err, domain.ErrEmptyQuery):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrUpstreamTimeout):
		log.Printf("[HTTP] Search %q timed out: %v", query, err)
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "catalog search timed out, please try again later"})
	default:
		log.Printf("[HTTP] Search %q failed: %v", query, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "catalog search is temporarily unavailable, please try again later"})
	}
}
