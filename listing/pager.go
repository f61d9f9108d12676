package listing

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/rpupo63/crpix-studio-backend/pagination"
)

var (
	// ErrStale is returned when a fetch finished after the view was reset.
	// Its result has been discarded.
	ErrStale = errors.New("page result is stale")
	// ErrInFlight is returned when a page is already loading for the current view.
	ErrInFlight = errors.New("a page is already loading")
)

// Batch is what a loader returns for one range. Total is -1 when the
// loader does not count.
type Batch[T Keyed] struct {
	Items []T
	Total int64
}

// Loader fetches one range from the store.
type Loader[T Keyed] func(ctx context.Context, rng pagination.Range) (Batch[T], error)

// Page is a snapshot of a pager.
type Page[T Keyed] struct {
	Items   []T   `json:"items"`
	Count   int   `json:"count"`
	Total   int64 `json:"total,omitempty"`
	Page    int   `json:"page"`
	HasMore bool  `json:"has_more"`
	Loading bool  `json:"loading"`
}

// Pager pages a remote collection into a List. Every Reset starts a new
// generation; results of fetches issued under an older generation are
// never applied.
type Pager[T Keyed] struct {
	mu         sync.Mutex
	sizes      pagination.Sizes
	load       Loader[T]
	list       List[T]
	cursor     pagination.Cursor
	generation uint64
	loading    bool
	loadingGen uint64
	// rows deleted from the loaded part of the collection; later pages
	// start that many rows earlier
	removed int
}

func NewPager[T Keyed](sizes pagination.Sizes, load Loader[T]) *Pager[T] {
	return &Pager[T]{
		sizes:  sizes,
		load:   load,
		list:   NewList[T](),
		cursor: pagination.NewCursor(),
	}
}

// Reset swaps sizes and loader, clears the items, rewinds the cursor to
// page 0 and invalidates any fetch in flight.
func (p *Pager[T]) Reset(sizes pagination.Sizes, load Loader[T]) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.sizes = sizes
	p.load = load
	p.list.Clear()
	p.cursor = pagination.NewCursor()
	p.removed = 0
	p.generation++
}

// Load fetches the page under the cursor. Page 0 replaces the items,
// later pages append. On error the items are left untouched.
func (p *Pager[T]) Load(ctx context.Context) (Page[T], error) {
	p.mu.Lock()
	if !p.cursor.HasMore {
		defer p.mu.Unlock()
		return p.snapshotLocked(), nil
	}
	if p.loading && p.loadingGen == p.generation {
		defer p.mu.Unlock()
		return p.snapshotLocked(), ErrInFlight
	}

	gen := p.generation
	page := p.cursor.Page
	rng, err := p.sizes.Range(page)
	if err != nil {
		defer p.mu.Unlock()
		return p.snapshotLocked(), err
	}
	if page > 0 {
		rng = rng.Back(p.removed)
	}
	load := p.load
	p.loading = true
	p.loadingGen = gen
	p.mu.Unlock()

	batch, err := load(ctx, rng)

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.loadingGen == gen {
		p.loading = false
	}
	if gen != p.generation {
		return p.snapshotLocked(), ErrStale
	}
	if err != nil {
		return p.snapshotLocked(), err
	}

	if page == 0 {
		p.list.Replace(batch.Items)
		p.removed = 0
	} else {
		p.list.Append(batch.Items)
	}
	if batch.Total >= 0 {
		p.list.SetTotal(batch.Total)
	}
	p.cursor = p.cursor.Advance(len(batch.Items), rng.BatchSize)

	return p.snapshotLocked(), nil
}

// Remove applies a successful remote delete to the loaded list.
func (p *Pager[T]) Remove(id uuid.UUID) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.list.Remove(id) {
		return false
	}
	p.removed++
	return true
}

func (p *Pager[T]) Snapshot() Page[T] {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshotLocked()
}

// Loaded reports whether the current generation has fetched anything yet.
func (p *Pager[T]) Loaded() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cursor.Page > 0 || !p.cursor.HasMore
}

func (p *Pager[T]) snapshotLocked() Page[T] {
	total := p.list.Total()
	if total < 0 {
		total = 0
	}
	return Page[T]{
		Items:   p.list.Items(),
		Count:   p.list.Len(),
		Total:   total,
		Page:    p.cursor.Page,
		HasMore: p.cursor.HasMore,
		Loading: p.loading && p.loadingGen == p.generation,
	}
}
