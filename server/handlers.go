// Package server exposes the HTTP surface over gin: GET /, GET
// /autocomplete, GET /search, and an ambient GET /healthz every gin
// service in the corpus carries.
package server

import (
	"context"
	"net/http"
	"strconv"

	"github.com/DanielHalachev/WikiSearch/query"
	"github.com/DanielHalachev/WikiSearch/schema"
	"github.com/gin-gonic/gin"
)

// Searcher is the narrow QueryOrchestrator capability the HTTP surface
// needs.
type Searcher interface {
	Search(ctx context.Context, q string, index query.Index, limit, offset int, spellcheck bool) (schema.SearchResponse, error)
}

// Suggester is the narrow Autocompleter capability the HTTP surface
// needs.
type Suggester interface {
	Suggest(input string) []string
}

// ErrorResponse is the uniform JSON shape for 4xx/5xx bodies.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Handlers binds the HTTP surface to the orchestration layer. ready
// reports true once the service registry has finished loading every
// index, so /healthz can distinguish "starting" from "serving".
type Handlers struct {
	searcher  Searcher
	suggester Suggester
	ready     func() bool
}

func NewHandlers(searcher Searcher, suggester Suggester, ready func() bool) *Handlers {
	return &Handlers{searcher: searcher, suggester: suggester, ready: ready}
}

// RegisterRoutes wires the HTTP surface onto rg.
func RegisterRoutes(rg gin.IRouter, h *Handlers) {
	rg.GET("/", h.HandleIndex)
	rg.GET("/autocomplete", h.HandleAutocomplete)
	rg.GET("/search", h.HandleSearch)
	rg.GET("/healthz", h.HandleHealthz)
}

func (h *Handlers) HandleIndex(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "WikiSearch is running"})
}

func (h *Handlers) HandleHealthz(c *gin.Context) {
	if h.ready != nil && !h.ready() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "starting"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handlers) HandleAutocomplete(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		c.JSON(http.StatusOK, []string{})
		return
	}
	c.JSON(http.StatusOK, h.suggester.Suggest(q))
}

func (h *Handlers) HandleSearch(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "q parameter is required"})
		return
	}

	index := query.Index(c.DefaultQuery("index", string(query.IndexInverted)))
	if index != query.IndexInverted && index != query.IndexSemantic {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "index must be one of: inverted, semantic"})
		return
	}

	limit, ok := queryInt(c, "limit", 20)
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "limit must be an integer"})
		return
	}
	offset, ok := queryInt(c, "offset", 0)
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "offset must be an integer"})
		return
	}
	spellcheck, ok := queryBool(c, "spellcheck", true)
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "spellcheck must be a boolean"})
		return
	}

	resp, err := h.searcher.Search(c.Request.Context(), q, index, limit, offset, spellcheck)
	if err != nil {
		if c.Request.Context().Err() != nil {
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "search failed"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

func queryInt(c *gin.Context, key string, def int) (int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}

func queryBool(c *gin.Context, key string, def bool) (bool, bool) {
	raw := c.Query(key)
	if raw == "" {
		return def, true
	}
	switch raw {
	case "true", "1":
		return true, true
	case "false", "0":
		return false, true
	default:
		return false, false
	}
}
