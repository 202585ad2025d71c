package services

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputePrice_FixedJobs(t *testing.T) {
	catalog := DefaultCatalog()

	tests := []struct {
		category Category
		jobType  string
		expect   float64
	}{
		{CategoryElectrical, "Ceiling fan install", 150},
		{CategoryElectrical, "Outlet replacement/repair", 120},
		{CategoryElectrical, "Light switch replacement", 120},
		{CategoryElectrical, "Light fixture", 120},
		{CategoryElectrical, "Replace breaker", 120},
		{CategoryPlumbing, "Faucet replacement", 150},
		{CategoryPlumbing, "Garbage disposal replacement", 200},
		{CategoryPlumbing, "Toilet repair/replacement", 300},
		{CategoryPlumbing, "Kitchen sink install", 300},
		{CategoryOther, "Door lock replacement", 120},
		{CategoryOther, "TV wall mounting", 120},
		{CategoryOther, "Picture hanging/mirrors", 120},
		{CategoryOther, "Fire alarm battery/unit", 120},
		{CategoryOther, "A/C filter replace", 120},
		{CategoryDrywall, "Small patch (under 1 sq ft)", 150},
	}

	for _, tt := range tests {
		t.Run(tt.jobType, func(t *testing.T) {
			est, err := ComputePrice(catalog, EstimateInput{Category: tt.category, JobType: tt.jobType})
			require.NoError(t, err)
			assert.Equal(t, tt.expect, est.Low)
			assert.Equal(t, tt.expect, est.High)
			assert.Equal(t, tt.category, est.Category)
			assert.Equal(t, tt.jobType, est.JobType)
			assert.False(t, est.IsRange())
		})
	}
}

func TestComputePrice_FixedJobIgnoresQuantity(t *testing.T) {
	est, err := ComputePrice(DefaultCatalog(), EstimateInput{
		Category: CategoryElectrical,
		JobType:  "Ceiling fan install",
		Quantity: 500,
	})
	require.NoError(t, err)
	assert.Equal(t, 150.0, est.Low)
	assert.Equal(t, "Fixed price", est.Basis)
}

func TestComputePrice_LargeDrywall(t *testing.T) {
	catalog := DefaultCatalog()

	for _, area := range []float64{1, 2, 4, 4.8, 5, 10, 37, 200} {
		est, err := ComputePrice(catalog, EstimateInput{
			Category: CategoryDrywall,
			JobType:  "Large drywall repair",
			Quantity: area,
		})
		require.NoError(t, err, "area %v", area)
		want := math.Max(120, area*25)
		assert.InDelta(t, want, est.Low, 1e-9, "area %v", area)
		assert.Equal(t, est.Low, est.High, "area %v", area)
	}
}

func TestComputePrice_LargeDrywallBasis(t *testing.T) {
	est, err := ComputePrice(DefaultCatalog(), EstimateInput{
		Category: CategoryDrywall,
		JobType:  "Large drywall repair",
		Quantity: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, 250.0, est.Low)
	assert.Equal(t,
		"10 sq ft × $25.00/sq ft (includes removal, install, texture, paint, materials)",
		est.Basis)
}

func TestComputePrice_Painting(t *testing.T) {
	catalog := DefaultCatalog()

	tests := []struct {
		name        string
		area        float64
		paint       PaintOptions
		modifierSum float64
		note        string
	}{
		{"no modifiers", 200, PaintOptions{}, 0, ""},
		{"ceilings", 200, PaintOptions{Ceilings: true}, 150, "Ceilings"},
		{"tiny room floored", 10, PaintOptions{}, 0, ""},
		{
			"all flags",
			150,
			PaintOptions{Ceilings: true, DarkToLight: true, HighCeilings: true, Trim: true, WallpaperRemoval: true},
			700,
			"Ceilings, Dark to light, High ceilings, Trim/baseboards, Wallpaper removal",
		},
		{"extra colors", 100, PaintOptions{ExtraColors: 2}, 150, "2 extra colors"},
		{
			"customer paint has no effect",
			100,
			PaintOptions{CustomerSuppliesPaint: true},
			0,
			"Customer supplies paint",
		},
		{
			"mixed",
			1,
			PaintOptions{DarkToLight: true, ExtraColors: 1, CustomerSuppliesPaint: true},
			175,
			"Dark to light, 1 extra colors, Customer supplies paint",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			est, err := ComputePrice(catalog, EstimateInput{
				Category: CategoryPainting,
				JobType:  "Interior paint",
				Quantity: tt.area,
				Paint:    tt.paint,
			})
			require.NoError(t, err)
			assert.InDelta(t, math.Max(120, tt.area*1.5+tt.modifierSum), est.Low, 1e-9)
			assert.InDelta(t, math.Max(120, tt.area*3.5+tt.modifierSum), est.High, 1e-9)
			assert.LessOrEqual(t, est.Low, est.High)
			assert.Equal(t, tt.note, est.Note)
		})
	}
}

func TestComputePrice_PaintingExample(t *testing.T) {
	est, err := ComputePrice(DefaultCatalog(), EstimateInput{
		Category: CategoryPainting,
		Quantity: 200,
		Paint:    PaintOptions{Ceilings: true},
	})
	require.NoError(t, err)
	assert.Equal(t, "Interior paint", est.JobType, "single job category defaults its job type")
	assert.Equal(t, 450.0, est.Low)
	assert.Equal(t, 850.0, est.High)
	assert.Equal(t, "200 sq ft × $1.50-$3.50/sq ft + $150 modifiers", est.Basis)
}

func TestComputePrice_Flooring(t *testing.T) {
	catalog := DefaultCatalog()

	tests := []struct {
		jobType  string
		rateLow  float64
		rateHigh float64
		minimum  float64
	}{
		{"LVP flooring (click-lock)", 1.50, 4.00, 500},
		{"Tile install", 4.00, 12.00, 500},
		{"Tile removal", 2.50, 5.00, 500},
		{"Baseboards", 1.50, 4.00, 120},
	}

	for _, tt := range tests {
		for _, qty := range []float64{1, 50, 100, 150, 333, 1000} {
			est, err := ComputePrice(catalog, EstimateInput{
				Category: CategoryFlooring,
				JobType:  tt.jobType,
				Quantity: qty,
			})
			require.NoError(t, err, "%s qty %v", tt.jobType, qty)
			assert.InDelta(t, math.Max(tt.minimum, qty*tt.rateLow), est.Low, 1e-9, "%s qty %v", tt.jobType, qty)
			assert.InDelta(t, math.Max(tt.minimum, qty*tt.rateHigh), est.High, 1e-9, "%s qty %v", tt.jobType, qty)
			assert.LessOrEqual(t, est.Low, est.High)
		}
	}
}

func TestComputePrice_FlooringMinimumPerBound(t *testing.T) {
	// 200 sq ft of LVP: low is floored at 500, high is 800. The minimum is
	// never averaged into the high bound.
	est, err := ComputePrice(DefaultCatalog(), EstimateInput{
		Category: CategoryFlooring,
		JobType:  "LVP flooring (click-lock)",
		Quantity: 200,
	})
	require.NoError(t, err)
	assert.Equal(t, 500.0, est.Low)
	assert.Equal(t, 800.0, est.High)
	assert.Equal(t, "200 sq ft × $1.50-$4.00/sq ft (min $500)", est.Basis)
}

func TestComputePrice_BaseboardsLinearFeet(t *testing.T) {
	est, err := ComputePrice(DefaultCatalog(), EstimateInput{
		Category: CategoryFlooring,
		JobType:  "Baseboards",
		Quantity: 50,
	})
	require.NoError(t, err)
	assert.Equal(t, 120.0, est.Low)
	assert.Equal(t, 200.0, est.High)
	assert.Equal(t, "50 linear ft × $1.50-$4.00/ft (min $120)", est.Basis)
}

func TestComputePrice_NoSelection(t *testing.T) {
	catalog := DefaultCatalog()

	tests := []struct {
		name  string
		input EstimateInput
	}{
		{"empty input", EstimateInput{}},
		{"unknown category", EstimateInput{Category: "Roofing", JobType: "Shingles"}},
		{"category without job type", EstimateInput{Category: CategoryElectrical}},
		{"unknown job type", EstimateInput{Category: CategoryPlumbing, JobType: "Ceiling fan install"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputePrice(catalog, tt.input)
			assert.True(t, errors.Is(err, ErrNoJobSelected), "got %v", err)
		})
	}
}

func TestComputePrice_InvalidQuantity(t *testing.T) {
	catalog := DefaultCatalog()

	tests := []struct {
		name  string
		input EstimateInput
	}{
		{"drywall zero area", EstimateInput{Category: CategoryDrywall, JobType: "Large drywall repair"}},
		{"flooring negative", EstimateInput{Category: CategoryFlooring, JobType: "Tile install", Quantity: -5}},
		{"painting zero area", EstimateInput{Category: CategoryPainting, JobType: "Interior paint"}},
		{"drywall NaN area", EstimateInput{Category: CategoryDrywall, JobType: "Large drywall repair", Quantity: math.NaN()}},
		{"flooring infinite", EstimateInput{Category: CategoryFlooring, JobType: "Baseboards", Quantity: math.Inf(1)}},
		{"painting NaN area", EstimateInput{Category: CategoryPainting, JobType: "Interior paint", Quantity: math.NaN()}},
		{"painting negative infinity", EstimateInput{Category: CategoryPainting, JobType: "Interior paint", Quantity: math.Inf(-1)}},
		{
			"painting negative colors",
			EstimateInput{Category: CategoryPainting, JobType: "Interior paint", Quantity: 100, Paint: PaintOptions{ExtraColors: -1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputePrice(catalog, tt.input)
			assert.True(t, errors.Is(err, ErrInvalidQuantity), "got %v", err)
		})
	}
}

func TestNewCatalog_Rejects(t *testing.T) {
	tests := []struct {
		name string
		job  JobType
	}{
		{"empty name", JobType{Name: " ", Category: CategoryOther, Rule: FixedPrice{Price: 10}}},
		{"unknown category", JobType{Name: "Roof", Category: "Roofing", Rule: FixedPrice{Price: 10}}},
		{"missing rule", JobType{Name: "Roof", Category: CategoryOther}},
		{"negative fixed", JobType{Name: "Refund", Category: CategoryOther, Rule: FixedPrice{Price: -1}}},
		{"inverted rates", JobType{Name: "Tile", Category: CategoryFlooring, Rule: AreaRate{Unit: UnitSquareFeet, RateLow: 5, RateHigh: 2}}},
		{"unknown unit", JobType{Name: "Tile", Category: CategoryFlooring, Rule: AreaRate{Unit: "acre", RateLow: 1, RateHigh: 2}}},
		{"negative minimum", JobType{Name: "Paint", Category: CategoryPainting, Rule: PaintRate{RateLow: 1, RateHigh: 2, Minimum: -1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCatalog(tt.job)
			assert.True(t, errors.Is(err, ErrInvalidCatalog), "got %v", err)
		})
	}
}

func TestNewCatalog_RejectsDuplicates(t *testing.T) {
	job := JobType{Name: "Light fixture", Category: CategoryElectrical, Rule: FixedPrice{Price: 120}}
	_, err := NewCatalog(job, job)
	assert.ErrorIs(t, err, ErrInvalidCatalog)

	// The same name in another category is a different job.
	other := job
	other.Category = CategoryOther
	_, err = NewCatalog(job, other)
	assert.NoError(t, err)
}

func TestCatalog_Listing(t *testing.T) {
	catalog := DefaultCatalog()

	assert.Equal(t, AllCategories, catalog.Categories())

	names := func(jobs []JobType) []string {
		var out []string
		for _, j := range jobs {
			out = append(out, j.Name)
		}
		return out
	}
	assert.Equal(t,
		[]string{"Faucet replacement", "Garbage disposal replacement", "Toilet repair/replacement", "Kitchen sink install"},
		names(catalog.JobTypes(CategoryPlumbing)))
	assert.Empty(t, catalog.JobTypes("Roofing"))

	baseboards, ok := catalog.Lookup(CategoryFlooring, "Baseboards")
	require.True(t, ok)
	assert.Equal(t, UnitLinearFeet, baseboards.Unit())

	fan, ok := catalog.Lookup(CategoryElectrical, "Ceiling fan install")
	require.True(t, ok)
	assert.Equal(t, Unit(""), fan.Unit())
}

func TestMustNewCatalog_Panics(t *testing.T) {
	assert.Panics(t, func() {
		MustNewCatalog(JobType{Name: "", Category: CategoryOther, Rule: FixedPrice{}})
	})
}
