package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase/core"

	"handymanquotes/collections"
)

// Status is the outcome of a quote.
type Status string

const (
	StatusQuoted Status = "quoted"
	StatusWon    Status = "won"
	StatusLost   Status = "lost"
)

// AllStatuses lists the statuses in display order.
var AllStatuses = []Status{StatusQuoted, StatusWon, StatusLost}

var (
	// ErrStoreUnavailable means the store is not bootstrapped or its schema is
	// missing. Callers show an empty history instead of failing.
	ErrStoreUnavailable = errors.New("quote store unavailable")

	// ErrQuoteNotFound is returned by Get, UpdateStatus and Delete for an
	// unknown id.
	ErrQuoteNotFound = errors.New("quote not found")

	ErrInvalidStatus = errors.New("invalid quote status")
)

// ParseStatus accepts the stored status names, case-insensitively.
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllStatuses {
		if st == known {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// Quote is a saved price quote. Only Status changes after creation.
type Quote struct {
	ID            int       `json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	CustomerName  string    `json:"customer_name"`
	CustomerPhone string    `json:"customer_phone"`
	JobType       string    `json:"job_type"`
	JobCategory   string    `json:"job_category"`
	PriceLow      float64   `json:"price_low"`
	PriceHigh     float64   `json:"price_high"`
	Notes         string    `json:"notes"`
	Status        Status    `json:"status"`
}

// NewQuote holds the caller-supplied fields of a quote.
type NewQuote struct {
	CustomerName  string
	CustomerPhone string
	JobType       string
	JobCategory   string
	PriceLow      float64
	PriceHigh     float64
	Notes         string
}

const quoteSequenceName = "quotes"

// QuoteStore persists quotes in the PocketBase data directory.
type QuoteStore struct {
	app core.App
}

// NewQuoteStore returns a store backed by app. The app must be bootstrapped
// and collections.Setup must have run before quotes can be saved.
func NewQuoteStore(app core.App) *QuoteStore {
	return &QuoteStore{app: app}
}

func (s *QuoteStore) quotesCollection(app core.App) (*core.Collection, error) {
	if app == nil || !app.IsBootstrapped() {
		return nil, ErrStoreUnavailable
	}
	col, err := app.FindCollectionByNameOrId(collections.QuotesCollection)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return col, nil
}

// Create saves a new quote with status "quoted" and returns its id. Ids come
// from a persisted sequence and are never reused, even after deletes. Field
// values are stored as given.
func (s *QuoteStore) Create(in NewQuote) (int, error) {
	if _, err := s.quotesCollection(s.app); err != nil {
		return 0, err
	}

	var id int
	err := s.app.RunInTransaction(func(txApp core.App) error {
		col, err := s.quotesCollection(txApp)
		if err != nil {
			return err
		}

		next, err := nextSequence(txApp, quoteSequenceName)
		if err != nil {
			return err
		}

		record := core.NewRecord(col)
		record.Set("number", next)
		record.Set("customer_name", in.CustomerName)
		record.Set("customer_phone", in.CustomerPhone)
		record.Set("job_type", in.JobType)
		record.Set("job_category", in.JobCategory)
		record.Set("price_low", in.PriceLow)
		record.Set("price_high", in.PriceHigh)
		record.Set("notes", in.Notes)
		record.Set("status", string(StatusQuoted))

		if err := txApp.Save(record); err != nil {
			return fmt.Errorf("save quote: %w", err)
		}
		id = next
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// nextSequence increments and returns the named counter.
func nextSequence(app core.App, name string) (int, error) {
	col, err := app.FindCollectionByNameOrId(collections.SequencesCollection)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	seq, err := app.FindFirstRecordByFilter(col, "name = {:name}", map[string]any{"name": name})
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("read sequence %q: %w", name, err)
		}
		seq = core.NewRecord(col)
		seq.Set("name", name)
	}

	next := seq.GetInt("value") + 1
	seq.Set("value", next)
	if err := app.Save(seq); err != nil {
		return 0, fmt.Errorf("advance sequence %q: %w", name, err)
	}
	return next, nil
}

// ListAll returns every quote, newest first.
func (s *QuoteStore) ListAll() ([]Quote, error) {
	col, err := s.quotesCollection(s.app)
	if err != nil {
		return nil, err
	}

	records, err := s.app.FindRecordsByFilter(col, "1=1", "-created,-number", 0, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	quotes := make([]Quote, 0, len(records))
	for _, rec := range records {
		quotes = append(quotes, quoteFromRecord(rec))
	}
	return quotes, nil
}

// List returns the quotes matching filter, newest first.
func (s *QuoteStore) List(filter QuoteFilter) ([]Quote, error) {
	quotes, err := s.ListAll()
	if err != nil {
		return nil, err
	}
	return FilterQuotes(quotes, filter), nil
}

// Get returns the quote with the given id.
func (s *QuoteStore) Get(id int) (Quote, error) {
	rec, err := s.findRecord(id)
	if err != nil {
		return Quote{}, err
	}
	return quoteFromRecord(rec), nil
}

// UpdateStatus sets the status of one quote. No other field changes.
func (s *QuoteStore) UpdateStatus(id int, status Status) error {
	if _, err := ParseStatus(string(status)); err != nil {
		return err
	}

	rec, err := s.findRecord(id)
	if err != nil {
		return err
	}

	rec.Set("status", string(status))
	if err := s.app.Save(rec); err != nil {
		return fmt.Errorf("update quote %d status: %w", id, err)
	}
	return nil
}

// Delete removes a quote permanently.
func (s *QuoteStore) Delete(id int) error {
	rec, err := s.findRecord(id)
	if err != nil {
		return err
	}

	if err := s.app.Delete(rec); err != nil {
		return fmt.Errorf("delete quote %d: %w", id, err)
	}
	return nil
}

func (s *QuoteStore) findRecord(id int) (*core.Record, error) {
	col, err := s.quotesCollection(s.app)
	if err != nil {
		return nil, err
	}

	rec, err := s.app.FindFirstRecordByFilter(col, "number = {:number}", map[string]any{"number": id})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %d", ErrQuoteNotFound, id)
		}
		return nil, fmt.Errorf("find quote %d: %w", id, err)
	}
	return rec, nil
}

func quoteFromRecord(rec *core.Record) Quote {
	q := Quote{
		ID:            rec.GetInt("number"),
		CustomerName:  rec.GetString("customer_name"),
		CustomerPhone: rec.GetString("customer_phone"),
		JobType:       rec.GetString("job_type"),
		JobCategory:   rec.GetString("job_category"),
		PriceLow:      rec.GetFloat("price_low"),
		PriceHigh:     rec.GetFloat("price_high"),
		Notes:         rec.GetString("notes"),
		Status:        Status(rec.GetString("status")),
	}
	if dt := rec.GetDateTime("created"); !dt.IsZero() {
		q.CreatedAt = dt.Time()
	}
	return q
}
