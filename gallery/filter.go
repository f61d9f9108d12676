package gallery

import (
	"errors"
	"slices"
	"strings"
)

// All is the sentinel filter entry meaning "no category constraint".
const All = "All"

var (
	ErrModalClosed   = errors.New("filter modal is not open")
	ErrEmptyCategory = errors.New("category must not be empty")
)

// Filter is the category filter of a gallery view. The active set is what
// queries are constrained by; the working set only exists while the
// multi-select modal is open. Neither is ever empty, and neither ever holds
// All together with a concrete category.
//
// Filter is not safe for concurrent use; View serializes access.
type Filter struct {
	active  []string
	working []string
	open    bool
}

func NewFilter() Filter {
	return Filter{active: []string{All}}
}

// SelectQuick replaces the active set with a single category.
func (f *Filter) SelectQuick(category string) error {
	category = strings.TrimSpace(category)
	if category == "" {
		return ErrEmptyCategory
	}
	f.active = []string{category}
	f.working = nil
	f.open = false
	return nil
}

// OpenModal snapshots the active set into the working set.
func (f *Filter) OpenModal() {
	f.working = slices.Clone(f.active)
	f.open = true
}

// Toggle flips one category in the working set. Toggling All, or toggling
// off the last concrete category, leaves the working set at {All}.
func (f *Filter) Toggle(category string) error {
	if !f.open {
		return ErrModalClosed
	}
	category = strings.TrimSpace(category)
	if category == "" {
		return ErrEmptyCategory
	}
	if category == All {
		f.working = []string{All}
		return nil
	}

	next := slices.DeleteFunc(slices.Clone(f.working), func(c string) bool { return c == All })
	if i := slices.Index(next, category); i >= 0 {
		next = slices.Delete(next, i, i+1)
	} else {
		next = append(next, category)
	}
	if len(next) == 0 {
		next = []string{All}
	}
	f.working = next
	return nil
}

// Apply commits the working set and closes the modal. It reports whether
// the active set actually changed.
func (f *Filter) Apply() (bool, error) {
	if !f.open {
		return false, ErrModalClosed
	}
	changed := !sameSet(f.active, f.working)
	f.active = f.working
	f.working = nil
	f.open = false
	return changed, nil
}

// Cancel discards the working set and closes the modal.
func (f *Filter) Cancel() {
	f.working = nil
	f.open = false
}

func (f *Filter) Active() []string {
	return slices.Clone(f.active)
}

// Working returns the working set, or nil when the modal is closed.
func (f *Filter) Working() []string {
	if !f.open {
		return nil
	}
	return slices.Clone(f.working)
}

func (f *Filter) IsOpen() bool {
	return f.open
}

// Categories returns the store constraint for the active set, nil when
// the filter is All.
func (f *Filter) Categories() []string {
	if len(f.active) == 1 && f.active[0] == All {
		return nil
	}
	return slices.Clone(f.active)
}

func sameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for _, c := range a {
		if !slices.Contains(b, c) {
			return false
		}
	}
	return true
}
