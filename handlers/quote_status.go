package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/pocketbase/pocketbase/core"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"

	"handymanquotes/logger"
	"handymanquotes/services"
)

// quoteIDFromPath parses the {id} path segment. Ids are positive integers.
func quoteIDFromPath(e *core.RequestEvent) (int, bool) {
	id, err := cast.ToIntE(e.Request.PathValue("id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// HandleQuoteStatus marks a quote won or lost, or resets it to quoted.
// HTMX requests get the refreshed history fragment back.
func HandleQuoteStatus(store *services.QuoteStore) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id, ok := quoteIDFromPath(e)
		if !ok {
			return ErrorToast(e, http.StatusBadRequest, "Invalid quote ID")
		}

		values, err := bindValues(e)
		if err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}
		status, err := services.ParseStatus(values.String("status"))
		if err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Status must be quoted, won or lost")
		}

		err = store.UpdateStatus(id, status)
		switch {
		case errors.Is(err, services.ErrQuoteNotFound):
			return ErrorToast(e, http.StatusNotFound, "Quote not found")
		case errors.Is(err, services.ErrStoreUnavailable):
			return ErrorToast(e, http.StatusServiceUnavailable, "Quote store is unavailable")
		case err != nil:
			logger.Log.WithError(err).WithField("id", id).Error("quote_status: update failed")
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		logger.Log.WithFields(logrus.Fields{"id": id, "status": status}).Info("quote_status: updated")

		if !isHTMX(e) {
			q, err := store.Get(id)
			if err != nil {
				logger.Log.WithError(err).WithField("id", id).Error("quote_status: reload failed")
				return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
			}
			return e.JSON(http.StatusOK, q)
		}

		SetToast(e, "success", statusToast(id, status))
		h, err := loadHistory(store, filterFromQuery(e))
		if err != nil {
			logger.Log.WithError(err).Error("quote_status: could not reload quotes")
			return ErrorToast(e, http.StatusInternalServerError, "Could not load quotes")
		}
		return renderHistory(e, h)
	}
}

func statusToast(id int, status services.Status) string {
	if status == services.StatusQuoted {
		return fmt.Sprintf("Quote #%d reset", id)
	}
	return fmt.Sprintf("Quote #%d marked %s", id, status)
}
