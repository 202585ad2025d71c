package services

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// BusinessName heads the printed estimate.
const BusinessName = "LV Handyman Pro"

const estimateFooter = "Minimum job: $120 - Flooring minimum: $500"

// PaintRangeHint explains the low and high bounds of a painting range.
const PaintRangeHint = "Low: one coat, light colors, easy access. High: two coats, dark-to-light, more prep."

// GenerateQuotePDF renders a one-page customer estimate for a saved quote.
func GenerateQuotePDF(q Quote) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.Letter).
		WithLeftMargin(15).
		WithTopMargin(15).
		WithRightMargin(15).
		Build()

	m := maroto.New(cfg)

	addEstimateHeader(m, q)
	addEstimateCustomer(m, q)
	addEstimateJob(m, q)
	addEstimateFooter(m)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

var mutedText = &props.Color{Red: 90, Green: 90, Blue: 90}

func addEstimateHeader(m core.Maroto, q Quote) {
	m.AddRows(
		row.New(12).Add(
			col.New(8).Add(
				text.New(BusinessName, props.Text{
					Size:  18,
					Style: fontstyle.Bold,
					Align: align.Left,
				}),
			),
			col.New(4).Add(
				text.New(fmt.Sprintf("Estimate #%d", q.ID), props.Text{
					Size:  12,
					Style: fontstyle.Bold,
					Align: align.Right,
				}),
			),
		),
		row.New(6).Add(
			col.New(12).Add(
				text.New("Date: "+formatQuoteDate(q.CreatedAt), props.Text{
					Size:  9,
					Align: align.Right,
					Color: mutedText,
				}),
			),
		),
	)
	m.AddRows(row.New(6))
}

func addEstimateCustomer(m core.Maroto, q Quote) {
	label := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Left}
	value := props.Text{Size: 9, Align: align.Left}

	m.AddRows(
		row.New(6).Add(
			col.New(3).Add(text.New("Customer", label)),
			col.New(9).Add(text.New(orNA(q.CustomerName), value)),
		),
		row.New(6).Add(
			col.New(3).Add(text.New("Phone", label)),
			col.New(9).Add(text.New(orNA(q.CustomerPhone), value)),
		),
	)
	m.AddRows(row.New(6))
}

func addEstimateJob(m core.Maroto, q Quote) {
	headerBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	headerCell := props.Cell{BackgroundColor: headerBg}
	headerText := props.Text{
		Size:  9,
		Style: fontstyle.Bold,
		Align: align.Left,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerRight := headerText
	headerRight.Align = align.Right

	m.AddRows(
		row.New(8).Add(
			col.New(4).Add(text.New("Category", headerText)).WithStyle(&headerCell),
			col.New(5).Add(text.New("Job", headerText)).WithStyle(&headerCell),
			col.New(3).Add(text.New("Price", headerRight)).WithStyle(&headerCell),
		),
		row.New(8).Add(
			col.New(4).Add(text.New(q.JobCategory, props.Text{Size: 9})),
			col.New(5).Add(text.New(q.JobType, props.Text{Size: 9})),
			col.New(3).Add(text.New(FormatPriceRange(q.PriceLow, q.PriceHigh), props.Text{
				Size:  9,
				Style: fontstyle.Bold,
				Align: align.Right,
			})),
		),
	)

	if q.Notes != "" {
		m.AddRows(
			row.New(4),
			row.New(10).Add(
				col.New(12).Add(text.New("Notes: "+q.Notes, props.Text{Size: 9, Color: mutedText})),
			),
		)
	}

	if q.JobCategory == string(CategoryPainting) && q.PriceLow != q.PriceHigh {
		m.AddRows(
			row.New(10).Add(
				col.New(12).Add(text.New(PaintRangeHint, props.Text{Size: 8, Color: mutedText})),
			),
		)
	}
}

func addEstimateFooter(m core.Maroto) {
	m.AddRows(row.New(10))
	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(text.New(BusinessName+" | "+estimateFooter, props.Text{
				Size:  7,
				Align: align.Center,
				Color: &props.Color{Red: 140, Green: 140, Blue: 140},
			})),
		),
	)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
