package listing

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/rpupo63/crpix-studio-backend/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	id uuid.UUID
}

func (r row) Key() uuid.UUID { return r.id }

func rows(n int) []row {
	out := make([]row, n)
	for i := range out {
		out[i] = row{id: uuid.New()}
	}
	return out
}

type fakeStore struct {
	mu     sync.Mutex
	data   []row
	ranges []pagination.Range
	err    error
}

func (s *fakeStore) load(ctx context.Context, rng pagination.Range) (Batch[row], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ranges = append(s.ranges, rng)
	if s.err != nil {
		return Batch[row]{}, s.err
	}
	if rng.From >= len(s.data) {
		return Batch[row]{Total: int64(len(s.data))}, nil
	}
	to := rng.To + 1
	if to > len(s.data) {
		to = len(s.data)
	}
	return Batch[row]{Items: s.data[rng.From:to], Total: int64(len(s.data))}, nil
}

func (s *fakeStore) delete(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = slices.DeleteFunc(slices.Clone(s.data), func(r row) bool { return r.id == id })
}

func (s *fakeStore) snapshot() []row {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.data)
}

func TestListAppendSkipsDuplicates(t *testing.T) {
	l := NewList[row]()
	items := rows(3)

	assert.Equal(t, 3, l.Append(items))
	assert.Equal(t, 1, l.Append([]row{items[0], {id: uuid.New()}}))
	assert.Equal(t, 4, l.Len())
}

func TestListRemoveDecrementsTotal(t *testing.T) {
	l := NewList[row]()
	items := rows(2)
	l.Replace(items)
	l.SetTotal(2)

	assert.True(t, l.Remove(items[0].id))
	assert.Equal(t, int64(1), l.Total())

	// deleted in the store but never loaded here
	assert.False(t, l.Remove(uuid.New()))
	assert.Equal(t, int64(0), l.Total())

	assert.True(t, l.Remove(items[1].id))
	assert.Equal(t, int64(0), l.Total(), "total never goes below zero")
	assert.Equal(t, 0, l.Len())
}

func TestListRemoveWithUnknownTotal(t *testing.T) {
	l := NewList[row]()
	l.Replace(rows(1))
	l.Remove(uuid.New())
	assert.Equal(t, int64(-1), l.Total())
}

func TestPagerLoadsPagesUntilShortBatch(t *testing.T) {
	store := &fakeStore{data: rows(21)}
	p := NewPager[row](pagination.GalleryImages, store.load)

	page, err := p.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 16, page.Count)
	assert.True(t, page.HasMore)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, int64(21), page.Total)

	page, err = p.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 21, page.Count)
	assert.False(t, page.HasMore)

	// nothing left to fetch
	page, err = p.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 21, page.Count)

	assert.Equal(t, []pagination.Range{
		{From: 0, To: 15, BatchSize: 16},
		{From: 16, To: 23, BatchSize: 8},
	}, store.ranges)
}

func TestPagerFailureKeepsItems(t *testing.T) {
	store := &fakeStore{data: rows(40)}
	p := NewPager[row](pagination.GalleryImages, store.load)

	_, err := p.Load(context.Background())
	require.NoError(t, err)

	store.err = errors.New("connection refused")
	page, err := p.Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, 16, page.Count)
	assert.Equal(t, 1, page.Page, "cursor does not move on failure")
	assert.False(t, page.Loading)

	store.err = nil
	page, err = p.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 24, page.Count)
}

func TestPagerDiscardsStaleResult(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	slow := func(ctx context.Context, rng pagination.Range) (Batch[row], error) {
		close(started)
		<-release
		return Batch[row]{Items: rows(16), Total: -1}, nil
	}
	p := NewPager[row](pagination.GalleryImages, slow)

	done := make(chan error, 1)
	go func() {
		_, err := p.Load(context.Background())
		done <- err
	}()
	<-started

	fresh := &fakeStore{data: rows(3)}
	p.Reset(pagination.GalleryVideos, fresh.load)
	page, err := p.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, page.Count)

	close(release)
	assert.ErrorIs(t, <-done, ErrStale)

	page = p.Snapshot()
	assert.Equal(t, 3, page.Count, "stale page must not overwrite the new view")
	assert.False(t, page.HasMore)
}

func TestPagerRefusesConcurrentLoad(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	slow := func(ctx context.Context, rng pagination.Range) (Batch[row], error) {
		close(started)
		<-release
		return Batch[row]{Items: rows(16), Total: -1}, nil
	}
	p := NewPager[row](pagination.GalleryImages, slow)

	done := make(chan error, 1)
	go func() {
		_, err := p.Load(context.Background())
		done <- err
	}()
	<-started

	page, err := p.Load(context.Background())
	assert.ErrorIs(t, err, ErrInFlight)
	assert.True(t, page.Loading)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, 16, p.Snapshot().Count)
}

func TestPagerRemove(t *testing.T) {
	store := &fakeStore{data: rows(5)}
	p := NewPager[row](pagination.AdminVideos, store.load)

	page, err := p.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(5), page.Total)

	assert.True(t, p.Remove(store.data[2].id))
	page = p.Snapshot()
	assert.Equal(t, 4, page.Count)
	assert.Equal(t, int64(4), page.Total)

	assert.False(t, p.Remove(uuid.New()))
	assert.Equal(t, int64(3), p.Snapshot().Total)
}

// Deleting loaded rows moves the next page back so no row is skipped.
func TestPagerLoadAfterRemoveReachesEveryRow(t *testing.T) {
	store := &fakeStore{data: rows(12)}
	p := NewPager[row](pagination.AdminVideos, store.load)

	_, err := p.Load(context.Background())
	require.NoError(t, err)

	deleted := []row{store.data[0], store.data[5]}
	for _, r := range deleted {
		store.delete(r.id)
		require.True(t, p.Remove(r.id))
	}

	page, err := p.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10, page.Count)
	assert.Equal(t, int64(10), page.Total)
	assert.ElementsMatch(t, store.snapshot(), page.Items)

	page, err = p.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10, page.Count)
	assert.False(t, page.HasMore)
	assert.Equal(t, pagination.Range{From: 10, To: 13, BatchSize: 4}, store.ranges[len(store.ranges)-1])
}
