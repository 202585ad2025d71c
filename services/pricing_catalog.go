package services

// DefaultCatalog returns the shop's standard pricing tables.
func DefaultCatalog() *Catalog {
	return MustNewCatalog(defaultJobs()...)
}

func fixed(category Category, name string, price float64) JobType {
	return JobType{Name: name, Category: category, Rule: FixedPrice{Price: price}, Caption: "Fixed price"}
}

func defaultJobs() []JobType {
	return []JobType{
		fixed(CategoryElectrical, "Ceiling fan install", 150),
		fixed(CategoryElectrical, "Outlet replacement/repair", 120),
		fixed(CategoryElectrical, "Light switch replacement", 120),
		fixed(CategoryElectrical, "Light fixture", 120),
		fixed(CategoryElectrical, "Replace breaker", 120),

		fixed(CategoryPlumbing, "Faucet replacement", 150),
		fixed(CategoryPlumbing, "Garbage disposal replacement", 200),
		fixed(CategoryPlumbing, "Toilet repair/replacement", 300),
		fixed(CategoryPlumbing, "Kitchen sink install", 300),

		fixed(CategoryOther, "Door lock replacement", 120),
		fixed(CategoryOther, "TV wall mounting", 120),
		fixed(CategoryOther, "Picture hanging/mirrors", 120),
		fixed(CategoryOther, "Fire alarm battery/unit", 120),
		fixed(CategoryOther, "A/C filter replace", 120),

		{
			Name:     "Small patch (under 1 sq ft)",
			Category: CategoryDrywall,
			Rule:     FixedPrice{Price: 150},
			Caption:  "Includes texture match",
		},
		{
			Name:     "Large drywall repair",
			Category: CategoryDrywall,
			Rule:     AreaRate{Unit: UnitSquareFeet, RateLow: 25, RateHigh: 25, Minimum: 120},
			Caption:  "includes removal, install, texture, paint, materials",
		},

		{
			Name:     "Interior paint",
			Category: CategoryPainting,
			Rule:     PaintRate{RateLow: 1.50, RateHigh: 3.50, Minimum: 120},
		},

		{
			Name:     "LVP flooring (click-lock)",
			Category: CategoryFlooring,
			Rule:     AreaRate{Unit: UnitSquareFeet, RateLow: 1.50, RateHigh: 4.00, Minimum: 500},
		},
		{
			Name:     "Tile install",
			Category: CategoryFlooring,
			Rule:     AreaRate{Unit: UnitSquareFeet, RateLow: 4.00, RateHigh: 12.00, Minimum: 500},
		},
		{
			Name:     "Tile removal",
			Category: CategoryFlooring,
			Rule:     AreaRate{Unit: UnitSquareFeet, RateLow: 2.50, RateHigh: 5.00, Minimum: 500},
		},
		{
			Name:     "Baseboards",
			Category: CategoryFlooring,
			Rule:     AreaRate{Unit: UnitLinearFeet, RateLow: 1.50, RateHigh: 4.00, Minimum: 120},
		},
	}
}
