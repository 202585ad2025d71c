package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase/core"

	"handymanquotes/logger"
	"handymanquotes/services"
	"handymanquotes/templates"
)

const emptyHistoryMessage = "No quotes yet. Go create some!"

// quoteHistory is the filtered history plus stats over every saved quote.
type quoteHistory struct {
	Filter     services.QuoteFilter
	Quotes     []services.Quote
	Stats      services.QuoteStats
	Categories []string
	// Message is set when the store has nothing to show yet.
	Message string
}

func filterFromQuery(e *core.RequestEvent) services.QuoteFilter {
	q := e.Request.URL.Query()
	return services.QuoteFilter{
		Status:   strings.TrimSpace(q.Get("status")),
		Category: strings.TrimSpace(q.Get("category")),
	}
}

// loadHistory reads the store. An unavailable store yields an empty history
// with a message rather than an error.
func loadHistory(store *services.QuoteStore, filter services.QuoteFilter) (quoteHistory, error) {
	h := quoteHistory{Filter: filter, Quotes: []services.Quote{}, Categories: []string{}}

	all, err := store.ListAll()
	if errors.Is(err, services.ErrStoreUnavailable) {
		logger.Log.WithError(err).Warn("quote_history: store unavailable")
		h.Message = emptyHistoryMessage
		return h, nil
	}
	if err != nil {
		return h, err
	}

	if len(all) == 0 {
		h.Message = emptyHistoryMessage
	}
	h.Stats = services.SummarizeQuotes(all)
	h.Categories = services.QuoteCategories(all)
	h.Quotes = services.FilterQuotes(all, filter)
	return h, nil
}

func (h quoteHistory) templateData() templates.QuoteHistoryData {
	statuses := make([]string, 0, len(services.AllStatuses))
	for _, s := range services.AllStatuses {
		statuses = append(statuses, string(s))
	}

	rows := make([]templates.QuoteRow, 0, len(h.Quotes))
	for _, q := range h.Quotes {
		rows = append(rows, templates.QuoteRow{
			ID:       q.ID,
			Date:     q.CreatedAt.Local().Format("2006-01-02 15:04"),
			Customer: q.CustomerName,
			Phone:    q.CustomerPhone,
			Category: q.JobCategory,
			JobType:  q.JobType,
			Price:    services.FormatPriceRange(q.PriceLow, q.PriceHigh),
			Notes:    q.Notes,
			Status:   string(q.Status),
		})
	}

	return templates.QuoteHistoryData{
		Quotes: rows,
		Stats: templates.QuoteStatsData{
			Total:     h.Stats.Total,
			Won:       h.Stats.Won,
			Lost:      h.Stats.Lost,
			CloseRate: h.Stats.CloseRateLabel(),
		},
		StatusFilter:   h.Filter.Status,
		CategoryFilter: h.Filter.Category,
		StatusOptions:  statuses,
		Categories:     h.Categories,
		Message:        h.Message,
	}
}

type quoteListResponse struct {
	Quotes    []services.Quote    `json:"quotes"`
	Stats     services.QuoteStats `json:"stats"`
	CloseRate string              `json:"close_rate"`
	Message   string              `json:"message,omitempty"`
}

func wantsJSON(e *core.RequestEvent) bool {
	return !isHTMX(e) && strings.Contains(e.Request.Header.Get("Accept"), "application/json")
}

// renderHistory writes the history as JSON, an HTMX fragment or a full page.
func renderHistory(e *core.RequestEvent, h quoteHistory) error {
	if wantsJSON(e) {
		return e.JSON(http.StatusOK, quoteListResponse{
			Quotes:    h.Quotes,
			Stats:     h.Stats,
			CloseRate: h.Stats.CloseRateLabel(),
			Message:   h.Message,
		})
	}

	var component templ.Component
	if isHTMX(e) {
		component = templates.QuoteHistoryContent(h.templateData())
	} else {
		component = templates.QuoteHistoryPage(h.templateData())
	}
	return component.Render(e.Request.Context(), e.Response)
}

// HandleQuoteList shows the saved quotes, newest first, with stats and the
// status and category filters taken from the query string.
func HandleQuoteList(store *services.QuoteStore) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		h, err := loadHistory(store, filterFromQuery(e))
		if err != nil {
			logger.Log.WithError(err).Error("quote_list: could not load quotes")
			return ErrorToast(e, http.StatusInternalServerError, "Could not load quotes")
		}
		return renderHistory(e, h)
	}
}
