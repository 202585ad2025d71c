package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// QuoteExport holds the quote history selected for export.
type QuoteExport struct {
	Filter      QuoteFilter
	Quotes      []Quote
	Stats       QuoteStats
	GeneratedAt time.Time
}

const quotesSheet = "Quotes"

// GenerateQuotesExcel writes the quote history to a single-sheet workbook
// and returns the file contents.
func GenerateQuotesExcel(data QuoteExport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, quotesSheet); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	columns := []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J"}
	lastCol := columns[len(columns)-1]

	widths := []float64{6, 12, 22, 16, 16, 32, 12, 12, 10, 40}
	for i, col := range columns {
		if err := f.SetColWidth(quotesSheet, col, col, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	// ── Styles ──────────────────────────────────────────────────────────

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}

	subtitleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 11},
	})
	if err != nil {
		return nil, fmt.Errorf("create subtitle style: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#333333"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	rowStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create row style: %w", err)
	}

	moneyStyle, err := f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Size: 10},
		Border:       thinBorders(),
		CustomNumFmt: strPtr("$#,##0"),
	})
	if err != nil {
		return nil, fmt.Errorf("create money style: %w", err)
	}

	// ── Header rows (1-3) ───────────────────────────────────────────────

	if err := f.MergeCell(quotesSheet, "A1", lastCol+"1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(quotesSheet, "A1", "Quote History")
	f.SetCellStyle(quotesSheet, "A1", lastCol+"1", titleStyle)

	if err := f.MergeCell(quotesSheet, "A2", lastCol+"2"); err != nil {
		return nil, fmt.Errorf("merge summary: %w", err)
	}
	summary := fmt.Sprintf("Total: %d | Won: %d | Lost: %d | Close rate: %s",
		data.Stats.Total, data.Stats.Won, data.Stats.Lost, data.Stats.CloseRateLabel())
	f.SetCellValue(quotesSheet, "A2", summary)
	f.SetCellStyle(quotesSheet, "A2", lastCol+"2", subtitleStyle)

	if err := f.MergeCell(quotesSheet, "A3", lastCol+"3"); err != nil {
		return nil, fmt.Errorf("merge filter: %w", err)
	}
	f.SetCellValue(quotesSheet, "A3", sanitizeExcelCell(describeFilter(data.Filter, data.GeneratedAt)))
	f.SetCellStyle(quotesSheet, "A3", lastCol+"3", subtitleStyle)

	// ── Row 5: column headers ───────────────────────────────────────────

	headers := []string{"#", "Date", "Customer", "Phone", "Category", "Job Type", "Price Low", "Price High", "Status", "Notes"}
	for i, h := range headers {
		f.SetCellValue(quotesSheet, fmt.Sprintf("%s5", columns[i]), h)
	}
	f.SetCellStyle(quotesSheet, "A5", lastCol+"5", headerStyle)

	// ── Data rows (starting row 6) ──────────────────────────────────────

	row := 6
	for _, q := range data.Quotes {
		r := fmt.Sprintf("%d", row)

		f.SetCellValue(quotesSheet, "A"+r, q.ID)
		f.SetCellValue(quotesSheet, "B"+r, formatQuoteDate(q.CreatedAt))
		f.SetCellValue(quotesSheet, "C"+r, sanitizeExcelCell(q.CustomerName))
		f.SetCellValue(quotesSheet, "D"+r, sanitizeExcelCell(q.CustomerPhone))
		f.SetCellValue(quotesSheet, "E"+r, sanitizeExcelCell(q.JobCategory))
		f.SetCellValue(quotesSheet, "F"+r, sanitizeExcelCell(q.JobType))
		f.SetCellValue(quotesSheet, "G"+r, q.PriceLow)
		f.SetCellValue(quotesSheet, "H"+r, q.PriceHigh)
		f.SetCellValue(quotesSheet, "I"+r, string(q.Status))
		f.SetCellValue(quotesSheet, "J"+r, sanitizeExcelCell(q.Notes))

		f.SetCellStyle(quotesSheet, "A"+r, lastCol+r, rowStyle)
		f.SetCellStyle(quotesSheet, "G"+r, "H"+r, moneyStyle)
		row++
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}

	return buf.Bytes(), nil
}

func describeFilter(filter QuoteFilter, generatedAt time.Time) string {
	var parts []string
	if s := strings.TrimSpace(filter.Status); s != "" && s != FilterAll {
		parts = append(parts, "status "+s)
	}
	if c := strings.TrimSpace(filter.Category); c != "" && c != FilterAll {
		parts = append(parts, "category "+c)
	}
	scope := "All quotes"
	if len(parts) > 0 {
		scope = "Filtered by " + strings.Join(parts, ", ")
	}
	if generatedAt.IsZero() {
		return scope
	}
	return scope + " | Generated " + generatedAt.Format("2006-01-02 15:04")
}

func formatQuoteDate(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.Local().Format("2006-01-02")
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote. Excel interprets cells starting with =, +, -,
// @, \t or \r as formulas, which can be abused for code execution or data theft.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns a slice of excelize.Border for thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1, // thin
		}
	}
	return borders
}

func strPtr(s string) *string {
	return &s
}
