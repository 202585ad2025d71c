// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"handymanquotes/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	app := NewBareTestApp(t)
	if err := collections.Setup(app); err != nil {
		t.Fatalf("failed to set up collections: %v", err)
	}

	return app
}

// NewBareTestApp is like NewTestApp but skips collections.Setup, leaving the
// quote store without its schema.
func NewBareTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}
	t.Cleanup(func() {
		_ = app.ResetBootstrapState()
	})

	return app
}

// TestQuote describes a quote row inserted directly into the quotes
// collection, bypassing the store and its id sequence. Use numbers that do
// not collide with quotes created through the store in the same test.
type TestQuote struct {
	Number    int
	Customer  string
	Phone     string
	Category  string
	JobType   string
	PriceLow  float64
	PriceHigh float64
	Notes     string
	Status    string
}

// CreateTestQuote inserts a quote record and returns it. Status defaults to
// "quoted".
func CreateTestQuote(t *testing.T, app core.App, q TestQuote) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId(collections.QuotesCollection)
	if err != nil {
		t.Fatalf("failed to find quotes collection: %v", err)
	}

	if q.Status == "" {
		q.Status = "quoted"
	}

	record := core.NewRecord(col)
	record.Set("number", q.Number)
	record.Set("customer_name", q.Customer)
	record.Set("customer_phone", q.Phone)
	record.Set("job_category", q.Category)
	record.Set("job_type", q.JobType)
	record.Set("price_low", q.PriceLow)
	record.Set("price_high", q.PriceHigh)
	record.Set("notes", q.Notes)
	record.Set("status", q.Status)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test quote: %v", err)
	}

	return record
}

// AssertHTMLContains checks that body contains all specified fragments.
func AssertHTMLContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected HTML to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

// AssertHXRedirect checks that the response has an HX-Redirect header with the expected URL.
func AssertHXRedirect(t *testing.T, headerVal, expectedURL string) {
	t.Helper()

	if headerVal != expectedURL {
		t.Errorf("expected HX-Redirect %q, got %q", expectedURL, headerVal)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
