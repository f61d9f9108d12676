package pagination

import (
	"errors"
	"fmt"
)

var (
	ErrNegativePage = errors.New("page must not be negative")
	ErrInvalidSize  = errors.New("page sizes must be positive")
)

// Range is an inclusive [From, To] window over a collection ordered newest first.
type Range struct {
	From      int `json:"from"`
	To        int `json:"to"`
	BatchSize int `json:"batch_size"`
}

// Offset returns the SQL OFFSET for the range.
func (r Range) Offset() int {
	return r.From
}

// Limit returns the SQL LIMIT for the range.
func (r Range) Limit() int {
	return r.To - r.From + 1
}

// Back moves the window n rows towards the start, for collections that
// lost n rows ahead of it since the earlier pages were read.
func (r Range) Back(n int) Range {
	if n <= 0 {
		return r
	}
	n = min(n, r.From)
	return Range{From: r.From - n, To: r.To - n, BatchSize: r.BatchSize}
}

// ComputeRange returns the window for a zero-based page. Page 0 spans
// initialSize items, every later page spans loadMoreSize items, so
// successive pages partition the collection without gaps or overlaps.
func ComputeRange(page, initialSize, loadMoreSize int) (Range, error) {
	if page < 0 {
		return Range{}, fmt.Errorf("%w: %d", ErrNegativePage, page)
	}
	if initialSize <= 0 || loadMoreSize <= 0 {
		return Range{}, fmt.Errorf("%w: initial=%d loadMore=%d", ErrInvalidSize, initialSize, loadMoreSize)
	}

	if page == 0 {
		return Range{From: 0, To: initialSize - 1, BatchSize: initialSize}, nil
	}

	from := initialSize + (page-1)*loadMoreSize
	return Range{From: from, To: from + loadMoreSize - 1, BatchSize: loadMoreSize}, nil
}

// Sizes is the (initial, load more) pair a view pages with.
type Sizes struct {
	Initial  int `json:"initial"`
	LoadMore int `json:"load_more"`
}

var (
	GalleryImages = Sizes{Initial: 16, LoadMore: 8}
	GalleryVideos = Sizes{Initial: 8, LoadMore: 4}
	AdminMedia    = Sizes{Initial: 16, LoadMore: 8}
	AdminVideos   = Sizes{Initial: 8, LoadMore: 4}
)

func (s Sizes) Range(page int) (Range, error) {
	return ComputeRange(page, s.Initial, s.LoadMore)
}
