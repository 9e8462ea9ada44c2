package pagination

import (
	"encoding/json"
	"net/http"
	"strconv"
)

const (
	// DefaultPageNumber is the first page; pages are 1-indexed.
	DefaultPageNumber = 1
	// DefaultPageSize is used when the request does not ask for a size.
	DefaultPageSize = 10
	// MaxPageSize caps the page size a client may request.
	MaxPageSize = 50

	// HeaderName is the response header carrying the page metadata.
	HeaderName = "Pagination"
)

// Params holds the page coordinates parsed from a request
type Params struct {
	PageNumber int
	PageSize   int
}

// FromRequest parses "pageNumber" and "pageSize" from the query string.
// Unparseable or non-positive values fall back to the defaults and sizes
// above MaxPageSize are clamped to it.
func FromRequest(r *http.Request) Params {
	pageNumber := parseIntParam(r, "pageNumber", DefaultPageNumber)
	pageSize := parseIntParam(r, "pageSize", DefaultPageSize)

	if pageNumber < 1 {
		pageNumber = DefaultPageNumber
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	return Params{PageNumber: pageNumber, PageSize: pageSize}
}

func parseIntParam(r *http.Request, key string, defaultVal int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return defaultVal
	}
	return n
}

// Header is the JSON body of the Pagination response header
type Header struct {
	CurrentPage  int `json:"currentPage"`
	ItemsPerPage int `json:"itemsPerPage"`
	TotalItems   int `json:"totalItems"`
	TotalPages   int `json:"totalPages"`
}

// HeaderFor extracts the header metadata of a page.
func HeaderFor[T any](page *PagedList[T]) Header {
	return Header{
		CurrentPage:  page.CurrentPage,
		ItemsPerPage: page.PageSize,
		TotalItems:   page.TotalCount,
		TotalPages:   page.TotalPages,
	}
}

// WriteHeader sets the Pagination header and exposes it to browser clients.
// It must run before the response status is written.
func WriteHeader(w http.ResponseWriter, h Header) {
	data, err := json.Marshal(h)
	if err != nil {
		return
	}
	w.Header().Set(HeaderName, string(data))
	w.Header().Set("Access-Control-Expose-Headers", HeaderName)
}
