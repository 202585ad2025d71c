package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"handymanquotes/services"
)

type catalogJob struct {
	Name    string `json:"name"`
	Unit    string `json:"unit,omitempty"`
	Caption string `json:"caption,omitempty"`
}

type catalogCategory struct {
	Name     string       `json:"name"`
	JobTypes []catalogJob `json:"job_types"`
}

type catalogResponse struct {
	Categories     []catalogCategory        `json:"categories"`
	PaintModifiers []services.PaintModifier `json:"paint_modifiers"`
}

// HandleCatalog lists the categories, their job types and the painting add-ons.
func HandleCatalog(catalog *services.Catalog) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		resp := catalogResponse{PaintModifiers: services.PaintModifiers}
		for _, cat := range catalog.Categories() {
			entry := catalogCategory{Name: string(cat), JobTypes: []catalogJob{}}
			for _, job := range catalog.JobTypes(cat) {
				entry.JobTypes = append(entry.JobTypes, catalogJob{
					Name:    job.Name,
					Unit:    string(job.Unit()),
					Caption: job.Caption,
				})
			}
			resp.Categories = append(resp.Categories, entry)
		}
		return e.JSON(http.StatusOK, resp)
	}
}
