package collections

import (
	"fmt"

	"github.com/pocketbase/pocketbase/core"
	"github.com/sirupsen/logrus"

	"handymanquotes/logger"
)

// Collection names used by the quote store.
const (
	QuotesCollection    = "quotes"
	SequencesCollection = "sequences"
)

// QuoteTextMax is the length limit of the quote text fields. PocketBase
// caps text at 5000 characters unless Max is set.
const QuoteTextMax = 1 << 20

// quoteTextFields are the free-text columns of quotes.
var quoteTextFields = []string{"customer_name", "customer_phone", "job_type", "job_category", "notes"}

// QuoteStatusValues are the allowed values of quotes.status.
var QuoteStatusValues = []string{"quoted", "won", "lost"}

// Setup ensures the quotes and sequences collections exist. It is safe to
// call on every start; existing collections only get their quote text limits
// raised.
func Setup(app core.App) error {
	if _, err := ensureCollection(app, SequencesCollection, func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.NumberField{Name: "value", OnlyInt: true})
		c.AddIndex("idx_sequences_name", true, "name", "")
	}); err != nil {
		return err
	}

	if _, err := ensureCollection(app, QuotesCollection, func(c *core.Collection) {
		c.Fields.Add(&core.NumberField{Name: "number", Required: true, OnlyInt: true})
		for _, name := range quoteTextFields {
			c.Fields.Add(&core.TextField{Name: name, Max: QuoteTextMax})
		}
		c.Fields.Add(&core.NumberField{Name: "price_low"})
		c.Fields.Add(&core.NumberField{Name: "price_high"})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  true,
			Values:    QuoteStatusValues,
			MaxSelect: 1,
		})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.AddIndex("idx_quotes_number", true, "number", "")
		c.AddIndex("idx_quotes_created", false, "created", "")
	}); err != nil {
		return err
	}

	return widenQuoteTextFields(app)
}

// widenQuoteTextFields raises the limit of text fields on a quotes collection
// created before QuoteTextMax existed.
func widenQuoteTextFields(app core.App) error {
	col, err := app.FindCollectionByNameOrId(QuotesCollection)
	if err != nil {
		return fmt.Errorf("find collection %q: %w", QuotesCollection, err)
	}

	changed := false
	for _, name := range quoteTextFields {
		if f, ok := col.Fields.GetByName(name).(*core.TextField); ok && f.Max < QuoteTextMax {
			f.Max = QuoteTextMax
			changed = true
		}
	}
	if !changed {
		return nil
	}

	if err := app.Save(col); err != nil {
		return fmt.Errorf("widen text fields of %q: %w", QuotesCollection, err)
	}
	logger.Log.WithField("collection", QuotesCollection).Info("raised quote text field limits")
	return nil
}

// ensureCollection returns the named collection, creating it with the fields
// added by addFields when it does not exist yet.
func ensureCollection(app core.App, name string, addFields func(*core.Collection)) (*core.Collection, error) {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		logger.Log.WithField("collection", name).Debug("collection already exists, skipping creation")
		return existing, nil
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		return nil, fmt.Errorf("create collection %q: %w", name, err)
	}

	logger.Log.WithFields(logrus.Fields{
		"collection": name,
		"id":         collection.Id,
	}).Info("created collection")
	return collection, nil
}
