// Package pagination slices ordered gorm queries into pages and carries the
// paging metadata back to HTTP clients.
package pagination

import (
	"context"
	"fmt"
	"math"

	"gorm.io/gorm"
)

// PagedList is one page of an ordered result set plus its metadata.
type PagedList[T any] struct {
	Items       []T
	CurrentPage int
	TotalPages  int
	PageSize    int
	TotalCount  int
}

// New builds a page from already fetched items.
func New[T any](items []T, count, pageNumber, pageSize int) *PagedList[T] {
	if items == nil {
		items = []T{}
	}

	totalPages := 0
	if pageSize > 0 {
		totalPages = int(math.Ceil(float64(count) / float64(pageSize)))
	}

	return &PagedList[T]{
		Items:       items,
		CurrentPage: pageNumber,
		TotalPages:  totalPages,
		PageSize:    pageSize,
		TotalCount:  count,
	}
}

// Create counts the rows matched by source and then fetches the slice
// [(pageNumber-1)*pageSize, pageNumber*pageSize) of its ordering.
//
// The count and the fetch are two separate reads without a transaction, so a
// concurrent write between them can leave TotalPages out of step with the
// returned items. Scopes are applied to the fetch only, which is where
// preloads belong.
func Create[T any](ctx context.Context, source *gorm.DB, pageNumber, pageSize int, scopes ...func(*gorm.DB) *gorm.DB) (*PagedList[T], error) {
	source = source.WithContext(ctx)

	var count int64
	if err := source.Session(&gorm.Session{}).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to count page source: %w", err)
	}

	var items []T
	fetch := source.Session(&gorm.Session{}).
		Scopes(scopes...).
		Offset((pageNumber - 1) * pageSize).
		Limit(pageSize)
	if err := fetch.Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch page %d: %w", pageNumber, err)
	}

	return New(items, int(count), pageNumber, pageSize), nil
}

// Map converts the items of a page and keeps its metadata.
func Map[T, U any](page *PagedList[T], convert func(T) U) *PagedList[U] {
	items := make([]U, 0, len(page.Items))
	for _, item := range page.Items {
		items = append(items, convert(item))
	}
	return &PagedList[U]{
		Items:       items,
		CurrentPage: page.CurrentPage,
		TotalPages:  page.TotalPages,
		PageSize:    page.PageSize,
		TotalCount:  page.TotalCount,
	}
}
