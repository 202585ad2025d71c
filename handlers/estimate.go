package handlers

import (
	"errors"
	"net/http"

	"github.com/pocketbase/pocketbase/core"
	"github.com/sirupsen/logrus"

	"handymanquotes/logger"
	"handymanquotes/services"
	"handymanquotes/templates"
)

// HandleEstimate prices a job selection. HTMX requests get the estimate
// block, everything else gets JSON.
func HandleEstimate(catalog *services.Catalog) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		values, err := bindValues(e)
		if err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		quantity, err := values.Float("quantity")
		if err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Quantity must be a number")
		}
		extraColors, err := values.Int("extra_colors")
		if err != nil || extraColors < 0 {
			return ErrorToast(e, http.StatusBadRequest, "Extra colors must be a whole number")
		}

		in := services.EstimateInput{
			Category: services.Category(values.String("category")),
			JobType:  values.String("job_type"),
			Quantity: quantity,
			Paint: services.PaintOptions{
				Ceilings:              values.Bool("ceilings"),
				DarkToLight:           values.Bool("dark_to_light"),
				HighCeilings:          values.Bool("high_ceilings"),
				Trim:                  values.Bool("trim"),
				WallpaperRemoval:      values.Bool("wallpaper_removal"),
				CustomerSuppliesPaint: values.Bool("customer_supplies_paint"),
				ExtraColors:           extraColors,
			},
		}

		est, err := services.ComputePrice(catalog, in)
		switch {
		case errors.Is(err, services.ErrNoJobSelected):
			return ErrorToast(e, http.StatusBadRequest, "Select a job type to see a price")
		case errors.Is(err, services.ErrInvalidQuantity):
			return ErrorToast(e, http.StatusBadRequest, "Enter a quantity greater than zero")
		case err != nil:
			logger.Log.WithError(err).Error("estimate: pricing failed")
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		logger.Log.WithFields(logrus.Fields{
			"category": est.Category,
			"job_type": est.JobType,
			"low":      est.Low,
			"high":     est.High,
		}).Debug("estimate: priced job")

		if !isHTMX(e) {
			return e.JSON(http.StatusOK, est)
		}

		data := templates.EstimateData{
			Category: string(est.Category),
			JobType:  est.JobType,
			Price:    services.FormatPriceRange(est.Low, est.High),
			Basis:    est.Basis,
			Note:     est.Note,
		}
		if est.Category == services.CategoryPainting && est.IsRange() {
			data.Hint = services.PaintRangeHint
		}
		return templates.EstimateResult(data).Render(e.Request.Context(), e.Response)
	}
}
