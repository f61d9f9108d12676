package gallery

import (
	"context"
	"fmt"
	"sync"

	"github.com/rpupo63/crpix-studio-backend/listing"
	"github.com/rpupo63/crpix-studio-backend/models"
	"github.com/rpupo63/crpix-studio-backend/pagination"
)

// Tab selects the collection the gallery shows.
type Tab string

const (
	TabGallery Tab = "gallery"
	TabVideos  Tab = "videos"
)

func ParseTab(s string) (Tab, error) {
	switch Tab(s) {
	case TabGallery, TabVideos:
		return Tab(s), nil
	default:
		return "", fmt.Errorf("unknown tab %q", s)
	}
}

// Sizes returns the (initial, load more) pair for the tab.
func (t Tab) Sizes() pagination.Sizes {
	if t == TabVideos {
		return pagination.GalleryVideos
	}
	return pagination.GalleryImages
}

// Collection names the backing table, for logs and metrics.
func (t Tab) Collection() string {
	if t == TabVideos {
		return "videos"
	}
	return "projects"
}

type ProjectFinder interface {
	FindPage(ctx context.Context, categories []string, rng pagination.Range) ([]*models.Project, error)
}

type VideoFinder interface {
	FindPage(ctx context.Context, categories []string, rng pagination.Range) ([]*models.Video, error)
}

// LoadPage fetches one page of a tab without any view state.
func LoadPage(ctx context.Context, projects ProjectFinder, videos VideoFinder, tab Tab, categories []string, page int) ([]Item, pagination.Range, error) {
	rng, err := tab.Sizes().Range(page)
	if err != nil {
		return nil, rng, err
	}
	batch, err := loader(projects, videos, tab, categories)(ctx, rng)
	return batch.Items, rng, err
}

func loader(projects ProjectFinder, videos VideoFinder, tab Tab, categories []string) listing.Loader[Item] {
	if tab == TabVideos {
		return func(ctx context.Context, rng pagination.Range) (listing.Batch[Item], error) {
			rows, err := videos.FindPage(ctx, categories, rng)
			if err != nil {
				return listing.Batch[Item]{}, err
			}
			items := make([]Item, 0, len(rows))
			for _, v := range rows {
				items = append(items, FromVideo(v))
			}
			return listing.Batch[Item]{Items: items, Total: -1}, nil
		}
	}
	return func(ctx context.Context, rng pagination.Range) (listing.Batch[Item], error) {
		rows, err := projects.FindPage(ctx, categories, rng)
		if err != nil {
			return listing.Batch[Item]{}, err
		}
		items := make([]Item, 0, len(rows))
		for _, p := range rows {
			items = append(items, FromProject(p))
		}
		return listing.Batch[Item]{Items: items, Total: -1}, nil
	}
}

// State is a snapshot of a View.
type State struct {
	Tab       Tab               `json:"tab"`
	Filter    []string          `json:"filter"`
	Working   []string          `json:"working,omitempty"`
	ModalOpen bool              `json:"modal_open"`
	Page      listing.Page[Item] `json:"page"`
}

// View is one visitor's public gallery: the selected tab, the category
// filter and the items loaded so far. Any committed change of tab or
// filter clears the items and fetches page 0 again; fetches started
// before the change are discarded when they return.
type View struct {
	mu       sync.Mutex
	projects ProjectFinder
	videos   VideoFinder
	tab      Tab
	filter   Filter
	pager    *listing.Pager[Item]
}

func NewView(projects ProjectFinder, videos VideoFinder) *View {
	v := &View{
		projects: projects,
		videos:   videos,
		tab:      TabGallery,
		filter:   NewFilter(),
	}
	v.pager = listing.NewPager(v.tab.Sizes(), loader(projects, videos, v.tab, nil))
	return v
}

// Tab returns the selected tab.
func (v *View) Tab() Tab {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.tab
}

// Ensure loads page 0 if nothing has been fetched yet.
func (v *View) Ensure(ctx context.Context) (State, error) {
	if v.pager.Loaded() {
		return v.Snapshot(), nil
	}
	return v.load(ctx)
}

// LoadMore fetches the next page. It does nothing once a short batch has
// been seen.
func (v *View) LoadMore(ctx context.Context) (State, error) {
	return v.load(ctx)
}

// SelectTab switches collection and resets the filter to All. Selecting
// the current tab changes nothing.
func (v *View) SelectTab(ctx context.Context, tab Tab) (State, error) {
	v.mu.Lock()
	if tab == v.tab {
		v.mu.Unlock()
		return v.Snapshot(), nil
	}
	v.tab = tab
	v.filter = NewFilter()
	v.resetLocked()
	v.mu.Unlock()

	return v.load(ctx)
}

// SelectQuick applies a single category from the quick-select row. It
// always resets, even when the category is already the active filter.
func (v *View) SelectQuick(ctx context.Context, category string) (State, error) {
	v.mu.Lock()
	if err := v.filter.SelectQuick(category); err != nil {
		v.mu.Unlock()
		return v.Snapshot(), err
	}
	v.resetLocked()
	v.mu.Unlock()

	return v.load(ctx)
}

func (v *View) OpenFilterModal() State {
	v.mu.Lock()
	v.filter.OpenModal()
	v.mu.Unlock()
	return v.Snapshot()
}

func (v *View) ToggleInWorkingSet(category string) (State, error) {
	v.mu.Lock()
	err := v.filter.Toggle(category)
	v.mu.Unlock()
	return v.Snapshot(), err
}

// ApplyWorkingSet commits the working set. An unchanged filter keeps the
// loaded items and cursor.
func (v *View) ApplyWorkingSet(ctx context.Context) (State, error) {
	v.mu.Lock()
	changed, err := v.filter.Apply()
	if err != nil || !changed {
		v.mu.Unlock()
		return v.Snapshot(), err
	}
	v.resetLocked()
	v.mu.Unlock()

	return v.load(ctx)
}

func (v *View) Cancel() State {
	v.mu.Lock()
	v.filter.Cancel()
	v.mu.Unlock()
	return v.Snapshot()
}

func (v *View) Snapshot() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return State{
		Tab:       v.tab,
		Filter:    v.filter.Active(),
		Working:   v.filter.Working(),
		ModalOpen: v.filter.IsOpen(),
		Page:      v.pager.Snapshot(),
	}
}

func (v *View) resetLocked() {
	v.pager.Reset(v.tab.Sizes(), loader(v.projects, v.videos, v.tab, v.filter.Categories()))
}

func (v *View) load(ctx context.Context) (State, error) {
	_, err := v.pager.Load(ctx)
	return v.Snapshot(), err
}
