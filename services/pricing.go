// Package services provides the job pricing engine, the quote store and the
// quote export functions.
package services

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Category is one of the fixed job categories offered by the estimator.
type Category string

const (
	CategoryElectrical Category = "Electrical"
	CategoryPlumbing   Category = "Plumbing"
	CategoryOther      Category = "Other"
	CategoryDrywall    Category = "Drywall Repair"
	CategoryPainting   Category = "Painting"
	CategoryFlooring   Category = "Flooring"
)

// AllCategories lists the categories in the order the estimator presents them.
var AllCategories = []Category{
	CategoryElectrical,
	CategoryPlumbing,
	CategoryOther,
	CategoryDrywall,
	CategoryPainting,
	CategoryFlooring,
}

func (c Category) valid() bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Unit is the measurement a variable job is priced against.
type Unit string

const (
	UnitSquareFeet Unit = "sq ft"
	UnitLinearFeet Unit = "linear ft"
)

var (
	// ErrNoJobSelected is returned when the category or job type is empty or
	// not in the catalog. Such a selection has no price and cannot be saved.
	ErrNoJobSelected = errors.New("no job type selected")

	// ErrInvalidQuantity is returned for a variable job without a positive
	// quantity, or for a negative extra colour count.
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")

	// ErrInvalidCatalog is returned by NewCatalog for malformed pricing tables.
	ErrInvalidCatalog = errors.New("invalid pricing catalog")
)

// PricingRule is the pricing policy attached to a job type. The set of
// implementations is closed: FixedPrice, AreaRate and PaintRate.
type PricingRule interface {
	price(in EstimateInput) (Estimate, error)
	check() error
}

// FixedPrice is a single catalog price with no variable inputs.
type FixedPrice struct {
	Price float64
}

func (r FixedPrice) check() error {
	if r.Price < 0 {
		return fmt.Errorf("fixed price %v is negative", r.Price)
	}
	return nil
}

func (r FixedPrice) price(EstimateInput) (Estimate, error) {
	return Estimate{Low: r.Price, High: r.Price}, nil
}

// AreaRate prices a job per unit of area or length, with a minimum charge
// applied to each bound on its own.
type AreaRate struct {
	Unit     Unit
	RateLow  float64
	RateHigh float64
	Minimum  float64
}

func (r AreaRate) check() error {
	if r.Unit != UnitSquareFeet && r.Unit != UnitLinearFeet {
		return fmt.Errorf("unknown unit %q", r.Unit)
	}
	if r.RateLow < 0 || r.RateHigh < 0 || r.Minimum < 0 {
		return errors.New("rates and minimum must not be negative")
	}
	if r.RateLow > r.RateHigh {
		return fmt.Errorf("low rate %v exceeds high rate %v", r.RateLow, r.RateHigh)
	}
	return nil
}

func (r AreaRate) price(in EstimateInput) (Estimate, error) {
	if !validQuantity(in.Quantity) {
		return Estimate{}, ErrInvalidQuantity
	}
	est := Estimate{
		Low:  math.Max(r.Minimum, in.Quantity*r.RateLow),
		High: math.Max(r.Minimum, in.Quantity*r.RateHigh),
	}
	if r.RateLow == r.RateHigh {
		est.Basis = fmt.Sprintf("%s %s × %s/%s", formatQuantity(in.Quantity), r.Unit,
			formatRate(r.RateLow), shortUnit(r.Unit))
	} else {
		est.Basis = fmt.Sprintf("%s %s × %s-%s/%s (min %s)", formatQuantity(in.Quantity), r.Unit,
			formatRate(r.RateLow), formatRate(r.RateHigh), shortUnit(r.Unit), FormatUSD(r.Minimum))
	}
	return est, nil
}

// PaintOptions are the painting add-ons. Each flag adds a fixed amount to
// both bounds; ExtraColors adds a per-colour amount.
type PaintOptions struct {
	Ceilings              bool `json:"ceilings" form:"ceilings"`
	DarkToLight           bool `json:"dark_to_light" form:"dark_to_light"`
	HighCeilings          bool `json:"high_ceilings" form:"high_ceilings"`
	Trim                  bool `json:"trim" form:"trim"`
	WallpaperRemoval      bool `json:"wallpaper_removal" form:"wallpaper_removal"`
	CustomerSuppliesPaint bool `json:"customer_supplies_paint" form:"customer_supplies_paint"`
	ExtraColors           int  `json:"extra_colors" form:"extra_colors"`
}

// PaintModifier describes one painting add-on and its dollar amount.
type PaintModifier struct {
	Key    string  `json:"key"`
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
	// PerUnit is set for modifiers charged per counted unit (extra colours).
	PerUnit bool `json:"per_unit"`
}

// PaintModifiers is the painting modifier table. The customer-supplied paint
// entry carries no amount; it is recorded in the note only.
var PaintModifiers = []PaintModifier{
	{Key: "ceilings", Label: "Ceilings", Amount: 150},
	{Key: "dark_to_light", Label: "Dark to light", Amount: 100},
	{Key: "high_ceilings", Label: "High ceilings", Amount: 100},
	{Key: "trim", Label: "Trim/baseboards", Amount: 150},
	{Key: "wallpaper_removal", Label: "Wallpaper removal", Amount: 200},
	{Key: "extra_colors", Label: "Extra colors", Amount: 75, PerUnit: true},
	{Key: "customer_supplies_paint", Label: "Customer supplies paint", Amount: 0},
}

func paintModifier(key string) PaintModifier {
	for _, m := range PaintModifiers {
		if m.Key == key {
			return m
		}
	}
	panic("services: unknown paint modifier " + key)
}

// apply returns the modifier sum and the labels of the applied modifiers.
func (o PaintOptions) apply() (float64, []string) {
	var total float64
	var applied []string
	flags := []struct {
		on  bool
		key string
	}{
		{o.Ceilings, "ceilings"},
		{o.DarkToLight, "dark_to_light"},
		{o.HighCeilings, "high_ceilings"},
		{o.Trim, "trim"},
		{o.WallpaperRemoval, "wallpaper_removal"},
	}
	for _, f := range flags {
		if !f.on {
			continue
		}
		m := paintModifier(f.key)
		total += m.Amount
		applied = append(applied, m.Label)
	}
	if o.ExtraColors > 0 {
		m := paintModifier("extra_colors")
		total += float64(o.ExtraColors) * m.Amount
		applied = append(applied, fmt.Sprintf("%d extra colors", o.ExtraColors))
	}
	if o.CustomerSuppliesPaint {
		applied = append(applied, paintModifier("customer_supplies_paint").Label)
	}
	return total, applied
}

// PaintRate prices painting from wall area, then adds modifiers and floors
// each bound at the minimum.
type PaintRate struct {
	RateLow  float64
	RateHigh float64
	Minimum  float64
}

func (r PaintRate) check() error {
	if r.RateLow < 0 || r.RateHigh < 0 || r.Minimum < 0 {
		return errors.New("rates and minimum must not be negative")
	}
	if r.RateLow > r.RateHigh {
		return fmt.Errorf("low rate %v exceeds high rate %v", r.RateLow, r.RateHigh)
	}
	return nil
}

func (r PaintRate) price(in EstimateInput) (Estimate, error) {
	if !validQuantity(in.Quantity) || in.Paint.ExtraColors < 0 {
		return Estimate{}, ErrInvalidQuantity
	}
	modifierTotal, applied := in.Paint.apply()

	est := Estimate{
		Low:  math.Max(r.Minimum, in.Quantity*r.RateLow+modifierTotal),
		High: math.Max(r.Minimum, in.Quantity*r.RateHigh+modifierTotal),
		Note: strings.Join(applied, ", "),
	}
	est.Basis = fmt.Sprintf("%s sq ft × %s-%s/sq ft", formatQuantity(in.Quantity),
		formatRate(r.RateLow), formatRate(r.RateHigh))
	if modifierTotal > 0 {
		est.Basis += fmt.Sprintf(" + %s modifiers", FormatUSD(modifierTotal))
	}
	return est, nil
}

// JobType is a priced entry in the catalog.
type JobType struct {
	Name     string
	Category Category
	Rule     PricingRule
	// Caption is a short description shown with fixed-price results.
	Caption string
}

// Unit returns the measurement the job is priced against, or "" for jobs
// that take no quantity.
func (j JobType) Unit() Unit {
	switch r := j.Rule.(type) {
	case AreaRate:
		return r.Unit
	case PaintRate:
		return UnitSquareFeet
	}
	return ""
}

// EstimateInput is a job selection plus its dimensional inputs.
type EstimateInput struct {
	Category Category
	JobType  string
	// Quantity is square feet or linear feet, depending on the job type.
	Quantity float64
	Paint    PaintOptions
}

// Estimate is the priced result for one job selection.
type Estimate struct {
	Category Category `json:"category"`
	JobType  string   `json:"job_type"`
	Low      float64  `json:"price_low"`
	High     float64  `json:"price_high"`
	// Note lists the applied modifiers and is the default quote note.
	Note string `json:"note"`
	// Basis explains how the price was derived.
	Basis string `json:"basis"`
}

// IsRange reports whether the low and high bounds differ.
func (e Estimate) IsRange() bool {
	return e.Low != e.High
}

// Catalog is a validated set of job types grouped by category.
type Catalog struct {
	jobs []JobType
}

// NewCatalog validates the given job types and returns a catalog. Job types
// keep their given order within each category.
func NewCatalog(jobs ...JobType) (*Catalog, error) {
	seen := make(map[Category]map[string]bool)
	for _, j := range jobs {
		if strings.TrimSpace(j.Name) == "" {
			return nil, fmt.Errorf("%w: job type with empty name in %q", ErrInvalidCatalog, j.Category)
		}
		if !j.Category.valid() {
			return nil, fmt.Errorf("%w: %q has unknown category %q", ErrInvalidCatalog, j.Name, j.Category)
		}
		if j.Rule == nil {
			return nil, fmt.Errorf("%w: %q has no pricing rule", ErrInvalidCatalog, j.Name)
		}
		if err := j.Rule.check(); err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidCatalog, j.Name, err)
		}
		if seen[j.Category] == nil {
			seen[j.Category] = make(map[string]bool)
		}
		if seen[j.Category][j.Name] {
			return nil, fmt.Errorf("%w: duplicate job type %q in %q", ErrInvalidCatalog, j.Name, j.Category)
		}
		seen[j.Category][j.Name] = true
	}
	return &Catalog{jobs: append([]JobType(nil), jobs...)}, nil
}

// MustNewCatalog is like NewCatalog but panics on an invalid table.
func MustNewCatalog(jobs ...JobType) *Catalog {
	c, err := NewCatalog(jobs...)
	if err != nil {
		panic(err)
	}
	return c
}

// Categories returns the categories that have at least one job type, in
// estimator order.
func (c *Catalog) Categories() []Category {
	var out []Category
	for _, cat := range AllCategories {
		if len(c.JobTypes(cat)) > 0 {
			out = append(out, cat)
		}
	}
	return out
}

// JobTypes returns the job types of a category in catalog order.
func (c *Catalog) JobTypes(category Category) []JobType {
	var out []JobType
	for _, j := range c.jobs {
		if j.Category == category {
			out = append(out, j)
		}
	}
	return out
}

// Lookup finds a job type. A category with a single job type resolves an
// empty name to that job type.
func (c *Catalog) Lookup(category Category, name string) (JobType, bool) {
	jobs := c.JobTypes(category)
	if name == "" {
		if len(jobs) == 1 {
			return jobs[0], true
		}
		return JobType{}, false
	}
	for _, j := range jobs {
		if j.Name == name {
			return j, true
		}
	}
	return JobType{}, false
}

// ComputePrice prices a job selection against the catalog.
func ComputePrice(c *Catalog, in EstimateInput) (Estimate, error) {
	job, ok := c.Lookup(in.Category, strings.TrimSpace(in.JobType))
	if !ok {
		return Estimate{}, ErrNoJobSelected
	}

	est, err := job.Rule.price(in)
	if err != nil {
		return Estimate{}, fmt.Errorf("%s / %s: %w", job.Category, job.Name, err)
	}
	est.Category = job.Category
	est.JobType = job.Name
	switch {
	case est.Basis == "":
		est.Basis = job.Caption
	case job.Caption != "":
		est.Basis += " (" + job.Caption + ")"
	}
	return est, nil
}

// validQuantity accepts finite quantities above zero. NaN fails the
// comparison.
func validQuantity(q float64) bool {
	return q > 0 && !math.IsInf(q, 0)
}

func formatQuantity(q float64) string {
	if q == math.Trunc(q) {
		return fmt.Sprintf("%.0f", q)
	}
	return fmt.Sprintf("%.2f", q)
}

func formatRate(rate float64) string {
	return fmt.Sprintf("$%.2f", rate)
}

func shortUnit(u Unit) string {
	if u == UnitLinearFeet {
		return "ft"
	}
	return "sq ft"
}
