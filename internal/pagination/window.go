// Package pagination bounds how many entries of a bucket are rendered at once.
package pagination

import "sync"

// Defaults.
const (
	DefaultPageSize  = 24
	DefaultThreshold = 50
)

// Window is the collapsed or expanded disclosure state of one bucket.
//
// Collapsed, a bucket larger than Threshold is cut to PageSize and a load
// more action is offered. Buckets up to Threshold are shown in full. Once
// expanded a window stays expanded until Reset.
type Window struct {
	mu        sync.Mutex
	pageSize  int
	threshold int
	expanded  bool
}

// New creates a collapsed window. Non-positive values fall back to the defaults,
// and a threshold below the page size is raised to it.
func New(pageSize, threshold int) *Window {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	if threshold < pageSize {
		threshold = pageSize
	}
	return &Window{pageSize: pageSize, threshold: threshold}
}

// Page is the rendered part of a bucket.
type Page[T any] struct {
	Items []T
	// Total is the untruncated bucket length.
	Total int
	// HasMore reports whether a load more action is offered.
	HasMore bool
}

// Apply returns the visible part of items for the window's current state.
func Apply[T any](w *Window, items []T) Page[T] {
	w.mu.Lock()
	expanded, size, threshold := w.expanded, w.pageSize, w.threshold
	w.mu.Unlock()

	return Slice(items, expanded, size, threshold)
}

// Slice is the stateless form of Apply.
func Slice[T any](items []T, expanded bool, pageSize, threshold int) Page[T] {
	p := Page[T]{Items: items, Total: len(items)}
	if expanded || len(items) <= threshold {
		return p
	}
	p.Items = items[:min(pageSize, len(items))]
	p.HasMore = true
	return p
}

// Expand shows the whole bucket.
func (w *Window) Expand() {
	w.mu.Lock()
	w.expanded = true
	w.mu.Unlock()
}

// Reset collapses the window.
func (w *Window) Reset() {
	w.mu.Lock()
	w.expanded = false
	w.mu.Unlock()
}

// Expanded reports whether the window is expanded.
func (w *Window) Expanded() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.expanded
}

// PageSize returns the collapsed length.
func (w *Window) PageSize() int {
	return w.pageSize
}

// Threshold returns the bucket length above which truncation applies.
func (w *Window) Threshold() int {
	return w.threshold
}
