package api

import (
	"errors"

	"github.com/rpupo63/crpix-studio-backend/errs"
	"github.com/rpupo63/crpix-studio-backend/listing"
	"github.com/rpupo63/crpix-studio-backend/metrics"
)

// pageError records the outcome of a page load and returns the error to
// report, or nil when the snapshot should be written as is. A stale result
// was dropped in favour of a newer view, so the current snapshot stands.
func pageError(collection string, err error) error {
	switch {
	case err == nil:
		metrics.RecordPageFetch(collection, metrics.ResultOK)
		return nil
	case errors.Is(err, listing.ErrStale):
		metrics.RecordPageFetch(collection, metrics.ResultStale)
		return nil
	case errors.Is(err, listing.ErrInFlight):
		metrics.RecordPageFetch(collection, metrics.ResultBusy)
		return errs.NewPageLoadingError()
	}

	metrics.RecordPageFetch(collection, metrics.ResultError)
	var apiErr *errs.ApiErr
	if errors.As(err, &apiErr) {
		return err
	}
	return wrapDatabaseError("list", collection, err).WithHint("Failed to load " + collection)
}
