package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase/core"

	"handymanquotes/logger"
	"handymanquotes/services"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// HandleQuotesExportExcel downloads the filtered quote history as a workbook.
func HandleQuotesExportExcel(store *services.QuoteStore) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		h, err := loadHistory(store, filterFromQuery(e))
		if err != nil {
			logger.Log.WithError(err).Error("quote_export: could not load quotes")
			return ErrorToast(e, http.StatusInternalServerError, "Could not load quotes")
		}

		now := time.Now()
		data, err := services.GenerateQuotesExcel(services.QuoteExport{
			Filter:      h.Filter,
			Quotes:      h.Quotes,
			Stats:       h.Stats,
			GeneratedAt: now,
		})
		if err != nil {
			logger.Log.WithError(err).Error("quote_export: excel generation failed")
			return ErrorToast(e, http.StatusInternalServerError, "Failed to generate Excel file")
		}

		filename := fmt.Sprintf("quotes_%s.xlsx", now.Format("2006-01-02"))
		e.Response.Header().Set("Content-Type", xlsxContentType)
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(data)
		return nil
	}
}

// HandleQuotePDF downloads a customer-facing estimate for one quote.
func HandleQuotePDF(store *services.QuoteStore) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id, ok := quoteIDFromPath(e)
		if !ok {
			return ErrorToast(e, http.StatusBadRequest, "Invalid quote ID")
		}

		q, err := store.Get(id)
		switch {
		case errors.Is(err, services.ErrQuoteNotFound):
			return ErrorToast(e, http.StatusNotFound, "Quote not found")
		case errors.Is(err, services.ErrStoreUnavailable):
			return ErrorToast(e, http.StatusServiceUnavailable, "Quote store is unavailable")
		case err != nil:
			logger.Log.WithError(err).WithField("id", id).Error("quote_pdf: could not load quote")
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		data, err := services.GenerateQuotePDF(q)
		if err != nil {
			logger.Log.WithError(err).WithField("id", id).Error("quote_pdf: generation failed")
			return ErrorToast(e, http.StatusInternalServerError, "Failed to generate PDF")
		}

		filename := fmt.Sprintf("estimate_%d.pdf", q.ID)
		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(data)
		return nil
	}
}
