package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeRange(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		sizes    Sizes
		expected Range
	}{
		{name: "first page images", page: 0, sizes: GalleryImages, expected: Range{From: 0, To: 15, BatchSize: 16}},
		{name: "second page images", page: 1, sizes: GalleryImages, expected: Range{From: 16, To: 23, BatchSize: 8}},
		{name: "third page images", page: 2, sizes: GalleryImages, expected: Range{From: 24, To: 31, BatchSize: 8}},
		{name: "first page videos", page: 0, sizes: GalleryVideos, expected: Range{From: 0, To: 7, BatchSize: 8}},
		{name: "second page videos", page: 1, sizes: GalleryVideos, expected: Range{From: 8, To: 11, BatchSize: 4}},
		{name: "fifth page admin videos", page: 4, sizes: AdminVideos, expected: Range{From: 20, To: 23, BatchSize: 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeRange(tt.page, tt.sizes.Initial, tt.sizes.LoadMore)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, tt.expected.BatchSize, got.Limit())
			assert.Equal(t, tt.expected.From, got.Offset())
		})
	}
}

func TestComputeRangeRejectsInvalidInput(t *testing.T) {
	_, err := ComputeRange(-1, 16, 8)
	assert.ErrorIs(t, err, ErrNegativePage)

	_, err = ComputeRange(0, 0, 8)
	assert.ErrorIs(t, err, ErrInvalidSize)

	_, err = ComputeRange(3, 16, -2)
	assert.ErrorIs(t, err, ErrInvalidSize)
}

func TestSuccessivePagesPartitionTheCollection(t *testing.T) {
	for _, sizes := range []Sizes{GalleryImages, GalleryVideos, {Initial: 1, LoadMore: 1}, {Initial: 3, LoadMore: 7}} {
		next := 0
		for page := 0; page < 50; page++ {
			r, err := sizes.Range(page)
			require.NoError(t, err)
			assert.Equal(t, next, r.From, "gap or overlap before page %d", page)
			assert.GreaterOrEqual(t, r.To, r.From)
			assert.Equal(t, r.BatchSize, r.To-r.From+1)
			next = r.To + 1
		}
	}
}

func TestCursorAdvance(t *testing.T) {
	c := NewCursor()
	assert.Equal(t, Cursor{Page: 0, HasMore: true}, c)

	c = c.Advance(16, 16)
	assert.Equal(t, Cursor{Page: 1, HasMore: true}, c)

	c = c.Advance(5, 8)
	assert.Equal(t, Cursor{Page: 1, HasMore: false}, c)
}

func TestRangeBack(t *testing.T) {
	r := Range{From: 16, To: 23, BatchSize: 8}
	assert.Equal(t, Range{From: 14, To: 21, BatchSize: 8}, r.Back(2))
	assert.Equal(t, r, r.Back(0))
	assert.Equal(t, Range{From: 0, To: 7, BatchSize: 8}, r.Back(20))
}
