package handlers

import (
	"errors"
	"fmt"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pocketbase/pocketbase/core"
	"github.com/sirupsen/logrus"

	"handymanquotes/logger"
	"handymanquotes/services"
)

type saveQuoteRequest struct {
	CustomerName  string  `json:"customer_name"`
	CustomerPhone string  `json:"customer_phone"`
	JobCategory   string  `json:"job_category"`
	JobType       string  `json:"job_type"`
	PriceLow      float64 `json:"price_low"`
	PriceHigh     float64 `json:"price_high"`
	Notes         string  `json:"notes"`
}

// Validate gates what reaches the store, which keeps whatever it is given.
func (r saveQuoteRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.JobCategory, validation.Required),
		validation.Field(&r.JobType, validation.Required),
		validation.Field(&r.PriceLow, validation.Required, validation.Min(0.0).Exclusive()),
		validation.Field(&r.PriceHigh, validation.Min(r.PriceLow).Error("must not be less than price_low")),
		validation.Field(&r.CustomerName, validation.Length(0, 200)),
		validation.Field(&r.CustomerPhone, validation.Length(0, 50)),
	)
}

func parseSaveQuote(values requestValues) (saveQuoteRequest, error) {
	low, err := values.Float("price_low")
	if err != nil {
		return saveQuoteRequest{}, err
	}
	high, err := values.Float("price_high")
	if err != nil {
		return saveQuoteRequest{}, err
	}
	return saveQuoteRequest{
		CustomerName:  values.String("customer_name"),
		CustomerPhone: values.String("customer_phone"),
		JobCategory:   values.String("job_category"),
		JobType:       values.String("job_type"),
		PriceLow:      low,
		PriceHigh:     high,
		Notes:         values.String("notes"),
	}, nil
}

// HandleQuoteSave stores a priced job as a new quote with status "quoted".
func HandleQuoteSave(store *services.QuoteStore) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		values, err := bindValues(e)
		if err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		req, err := parseSaveQuote(values)
		if err != nil {
			return ErrorToast(e, http.StatusBadRequest, err.Error())
		}
		if err := req.Validate(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Cannot save quote: "+err.Error())
		}

		id, err := store.Create(services.NewQuote{
			CustomerName:  req.CustomerName,
			CustomerPhone: req.CustomerPhone,
			JobType:       req.JobType,
			JobCategory:   req.JobCategory,
			PriceLow:      req.PriceLow,
			PriceHigh:     req.PriceHigh,
			Notes:         req.Notes,
		})
		if errors.Is(err, services.ErrStoreUnavailable) {
			return ErrorToast(e, http.StatusServiceUnavailable, "Quote store is unavailable")
		}
		if err != nil {
			logger.Log.WithError(err).Error("quote_save: failed to save quote")
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		logger.Log.WithFields(logrus.Fields{
			"id":       id,
			"category": req.JobCategory,
			"job_type": req.JobType,
		}).Info("quote_save: saved quote")

		SetToast(e, "success", fmt.Sprintf("Quote #%d saved", id))

		if isHTMX(e) {
			e.Response.Header().Set("HX-Redirect", "/quotes")
			return e.String(http.StatusOK, "")
		}
		return e.JSON(http.StatusCreated, map[string]int{"id": id})
	}
}
