// Package templates renders the HTML fragments served to HTMX requests.
package templates

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/a-h/templ"
)

// QuoteRow is one quote as shown in the history list.
type QuoteRow struct {
	ID       int
	Date     string
	Customer string
	Phone    string
	Category string
	JobType  string
	Price    string
	Notes    string
	Status   string
}

// QuoteStatsData is the stats strip above the history list.
type QuoteStatsData struct {
	Total     int
	Won       int
	Lost      int
	CloseRate string
}

// QuoteHistoryData is the data for the quote history fragment.
type QuoteHistoryData struct {
	Quotes         []QuoteRow
	Stats          QuoteStatsData
	StatusFilter   string
	CategoryFilter string
	StatusOptions  []string
	Categories     []string
	// Message replaces the list when there is nothing to show.
	Message string
}

// QuoteHistoryContent renders the stats strip, the filters and the quote list.
func QuoteHistoryContent(data QuoteHistoryData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder

		b.WriteString(`<section id="quote-history">`)
		if data.Message != "" && len(data.Quotes) == 0 && data.Stats.Total == 0 {
			fmt.Fprintf(&b, `<p class="empty-state">%s</p>`, templ.EscapeString(data.Message))
			b.WriteString(`</section>`)
			_, err := io.WriteString(w, b.String())
			return err
		}

		b.WriteString(`<div class="quote-stats">`)
		writeMetric(&b, "Total Quotes", fmt.Sprintf("%d", data.Stats.Total))
		writeMetric(&b, "Won", fmt.Sprintf("%d", data.Stats.Won))
		writeMetric(&b, "Lost", fmt.Sprintf("%d", data.Stats.Lost))
		writeMetric(&b, "Close Rate", data.Stats.CloseRate)
		b.WriteString(`</div>`)

		b.WriteString(`<form class="quote-filters" hx-get="/quotes" hx-target="#quote-history" hx-swap="outerHTML" hx-trigger="change">`)
		writeSelect(&b, "status", append([]string{"All"}, data.StatusOptions...), data.StatusFilter)
		writeSelect(&b, "category", append([]string{"All"}, data.Categories...), data.CategoryFilter)
		b.WriteString(`</form>`)

		if len(data.Quotes) == 0 {
			b.WriteString(`<p class="empty-state">No quotes match these filters.</p>`)
		}

		b.WriteString(`<ul class="quote-list">`)
		query := data.filterQuery()
		for _, q := range data.Quotes {
			writeQuoteRow(&b, q, query)
		}
		b.WriteString(`</ul></section>`)

		_, err := io.WriteString(w, b.String())
		return err
	})
}

// filterQuery carries the active filters onto row actions so the refreshed
// fragment keeps them.
func (d QuoteHistoryData) filterQuery() string {
	v := url.Values{}
	if d.StatusFilter != "" && d.StatusFilter != "All" {
		v.Set("status", d.StatusFilter)
	}
	if d.CategoryFilter != "" && d.CategoryFilter != "All" {
		v.Set("category", d.CategoryFilter)
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}

func writeMetric(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, `<div class="metric"><span class="metric-label">%s</span><span class="metric-value">%s</span></div>`,
		templ.EscapeString(label), templ.EscapeString(value))
}

func writeSelect(b *strings.Builder, name string, options []string, selected string) {
	if selected == "" {
		selected = "All"
	}
	fmt.Fprintf(b, `<select name="%s">`, templ.EscapeString(name))
	for _, opt := range options {
		sel := ""
		if opt == selected {
			sel = " selected"
		}
		fmt.Fprintf(b, `<option value="%s"%s>%s</option>`,
			templ.EscapeString(opt), sel, templ.EscapeString(opt))
	}
	b.WriteString(`</select>`)
}

func writeQuoteRow(b *strings.Builder, q QuoteRow, query string) {
	fmt.Fprintf(b, `<li class="quote status-%s" id="quote-%d">`, templ.EscapeString(q.Status), q.ID)
	fmt.Fprintf(b, `<details><summary><strong>%s</strong> - %s | %s</summary>`,
		templ.EscapeString(q.JobType), templ.EscapeString(q.Price), templ.EscapeString(strings.ToUpper(q.Status)))

	fmt.Fprintf(b, `<dl><dt>Customer</dt><dd>%s</dd><dt>Phone</dt><dd>%s</dd><dt>Category</dt><dd>%s</dd>`,
		templ.EscapeString(orDefault(q.Customer, "N/A")),
		templ.EscapeString(orDefault(q.Phone, "N/A")),
		templ.EscapeString(q.Category))
	fmt.Fprintf(b, `<dt>Date</dt><dd>%s</dd><dt>Notes</dt><dd>%s</dd></dl>`,
		templ.EscapeString(q.Date), templ.EscapeString(orDefault(q.Notes, "None")))

	query = templ.EscapeString(query)
	b.WriteString(`<div class="quote-actions" hx-target="#quote-history" hx-swap="outerHTML">`)
	for _, action := range []struct{ status, label string }{
		{"won", "Won"},
		{"lost", "Lost"},
		{"quoted", "Reset"},
	} {
		fmt.Fprintf(b, `<button hx-post="/quotes/%d/status%s" hx-vals='{"status":"%s"}'>%s</button>`,
			q.ID, query, action.status, action.label)
	}
	fmt.Fprintf(b, `<button hx-delete="/quotes/%d%s" hx-confirm="Delete this quote?">Delete</button>`, q.ID, query)
	fmt.Fprintf(b, `<a href="/quotes/%d/pdf">PDF</a>`, q.ID)
	b.WriteString(`</div></details></li>`)
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// QuoteHistoryPage wraps the history fragment in a standalone document.
func QuoteHistoryPage(data QuoteHistoryData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, pageHead("Quote History")); err != nil {
			return err
		}
		if err := QuoteHistoryContent(data).Render(ctx, w); err != nil {
			return err
		}
		link := `<p><a href="/quotes/export` + templ.EscapeString(data.filterQuery()) + `">Download Excel</a></p>`
		if _, err := io.WriteString(w, link); err != nil {
			return err
		}
		_, err := io.WriteString(w, pageFoot)
		return err
	})
}

func pageHead(title string) string {
	return `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">` +
		`<meta name="viewport" content="width=device-width, initial-scale=1">` +
		`<title>` + templ.EscapeString(title) + `</title>` +
		`<script src="https://unpkg.com/htmx.org@2.0.4"></script>` +
		`</head><body><main><h1>` + templ.EscapeString(title) + `</h1>`
}

const pageFoot = `</main></body></html>`
