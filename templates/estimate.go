package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// EstimateData is a priced job selection ready to be saved.
type EstimateData struct {
	Category string
	JobType  string
	Price    string
	Basis    string
	Note     string
	// Hint explains the low and high bounds of a painting range.
	Hint string
}

// EstimateResult renders the price block shown after a job is priced.
func EstimateResult(data EstimateData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w,
			`<div class="estimate" data-category="%s" data-job-type="%s"><h2>%s</h2><p class="caption">%s</p>`,
			templ.EscapeString(data.Category),
			templ.EscapeString(data.JobType),
			templ.EscapeString(data.Price),
			templ.EscapeString(data.Basis))
		if err != nil {
			return err
		}
		if data.Hint != "" {
			if _, err := fmt.Fprintf(w, `<p class="hint">%s</p>`, templ.EscapeString(data.Hint)); err != nil {
				return err
			}
		}
		_, err = fmt.Fprintf(w, `<input type="hidden" name="notes" value="%s"></div>`, templ.EscapeString(data.Note))
		return err
	})
}
