package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"handymanquotes/logger"
	"handymanquotes/services"
)

// HandleQuoteDelete permanently removes a quote. Deleting an id that is
// already gone answers 404 and changes nothing.
func HandleQuoteDelete(store *services.QuoteStore) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id, ok := quoteIDFromPath(e)
		if !ok {
			return ErrorToast(e, http.StatusBadRequest, "Invalid quote ID")
		}

		err := store.Delete(id)
		switch {
		case errors.Is(err, services.ErrQuoteNotFound):
			return ErrorToast(e, http.StatusNotFound, "Quote not found")
		case errors.Is(err, services.ErrStoreUnavailable):
			return ErrorToast(e, http.StatusServiceUnavailable, "Quote store is unavailable")
		case err != nil:
			logger.Log.WithError(err).WithField("id", id).Error("quote_delete: failed to delete quote")
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		logger.Log.WithField("id", id).Info("quote_delete: deleted quote")

		if !isHTMX(e) {
			return e.NoContent(http.StatusNoContent)
		}

		SetToast(e, "success", fmt.Sprintf("Quote #%d deleted", id))
		h, err := loadHistory(store, filterFromQuery(e))
		if err != nil {
			logger.Log.WithError(err).Error("quote_delete: could not reload quotes")
			return ErrorToast(e, http.StatusInternalServerError, "Could not load quotes")
		}
		return renderHistory(e, h)
	}
}
