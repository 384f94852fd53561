// Package page holds the pagination types shared by list operations.
package page

const (
	// DefaultSize is the page size used when a request does not set one.
	DefaultSize = 12

	// MaxSize caps the page size a caller may ask for.
	MaxSize = 100
)

// Request holds zero-based pagination parameters.
type Request struct {
	Page int
	Size int
}

// Of builds a Request, mirroring the way callers usually spell it.
func Of(number, size int) Request {
	return Request{Page: number, Size: size}
}

// Limit returns the effective page size, clamped to [1, MaxSize].
func (r Request) Limit() int {
	if r.Size <= 0 {
		return DefaultSize
	}
	if r.Size > MaxSize {
		return MaxSize
	}
	return r.Size
}

// Number returns the effective page index; negative indexes become 0.
func (r Request) Number() int {
	if r.Page < 0 {
		return 0
	}
	return r.Page
}

// Offset is the number of rows to skip for this request.
func (r Request) Offset() int {
	return r.Number() * r.Limit()
}

// Page is one slice of a larger result set.
type Page[T any] struct {
	Content       []T   `json:"content"`
	Number        int   `json:"number"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
}

// New builds a Page for content fetched with r out of total rows.
func New[T any](content []T, r Request, total int64) Page[T] {
	if content == nil {
		content = []T{}
	}
	size := r.Limit()
	pages := int((total + int64(size) - 1) / int64(size))
	return Page[T]{
		Content:       content,
		Number:        r.Number(),
		Size:          size,
		TotalElements: total,
		TotalPages:    pages,
	}
}

// Empty returns a page with no content for r.
func Empty[T any](r Request) Page[T] {
	return New[T](nil, r, 0)
}

// Map converts the content of p with fn, keeping the paging metadata.
func Map[T, U any](p Page[T], fn func(T) U) Page[U] {
	content := make([]U, len(p.Content))
	for i, item := range p.Content {
		content[i] = fn(item)
	}
	return Page[U]{
		Content:       content,
		Number:        p.Number,
		Size:          p.Size,
		TotalElements: p.TotalElements,
		TotalPages:    p.TotalPages,
	}
}

// IsEmpty reports whether the page carries no content.
func (p Page[T]) IsEmpty() bool {
	return len(p.Content) == 0
}
