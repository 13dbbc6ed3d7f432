package economy

import "fmt"

// ParamError reports an invalid policy parameter.
type ParamError struct {
	Policy Name
	Field  string
	Reason string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%s.%s: %s", e.Policy, e.Field, e.Reason)
}

// Params holds the tunables of every policy. Only the active policy's block is read.
type Params struct {
	Capitalism CapitalismParams `yaml:"capitalism"`
	Fascism    FascismParams    `yaml:"fascism"`
	Patron     PatronParams     `yaml:"patron"`
	UBI        UBIParams        `yaml:"ubi"`
}

// DefaultParams returns the defaults for every policy.
func DefaultParams() Params {
	return Params{
		Capitalism: DefaultCapitalismParams(),
		Fascism:    DefaultFascismParams(),
		Patron:     DefaultPatronParams(),
		UBI:        DefaultUBIParams(),
	}
}

// CapitalismParams tunes innovation.
type CapitalismParams struct {
	// StartupLevel picks the startup capital from the Sturges bins of the
	// wealth distribution: 1 = lowest bin, 2 = middle bin, 3 = top bin.
	StartupLevel      int     `yaml:"startup_level"`
	MinStartupCapital float64 `yaml:"min_startup_capital"`
	FundingShare      float64 `yaml:"funding_share"`  // fraction of startup capital paid out on starting to innovate
	ReturnRate        float64 `yaml:"return_rate"`    // innovating agents earn wealth·W·ReturnRate per step
	GrowthCeiling     float64 `yaml:"growth_ceiling"` // cap on W after the innovation boost
}

// DefaultCapitalismParams returns the capitalism defaults.
func DefaultCapitalismParams() CapitalismParams {
	return CapitalismParams{
		StartupLevel:      1,
		MinStartupCapital: 1.5,
		FundingShare:      0.1,
		ReturnRate:        0.05,
		GrowthCeiling:     1.0,
	}
}

// Validate checks capitalism parameters.
func (p CapitalismParams) Validate() error {
	switch {
	case p.StartupLevel < 1 || p.StartupLevel > 3:
		return &ParamError{Capitalism, "startup_level", fmt.Sprintf("must be 1, 2 or 3, got %d", p.StartupLevel)}
	case p.MinStartupCapital < 0:
		return &ParamError{Capitalism, "min_startup_capital", "must be >= 0"}
	case p.FundingShare < 0 || p.FundingShare > 1:
		return &ParamError{Capitalism, "funding_share", "must be in [0, 1]"}
	case p.ReturnRate < 0:
		return &ParamError{Capitalism, "return_rate", "must be >= 0"}
	case p.GrowthCeiling <= 0:
		return &ParamError{Capitalism, "growth_ceiling", "must be > 0"}
	}
	return nil
}

// FascismParams tunes the party elite.
type FascismParams struct {
	EliteFraction float64 `yaml:"elite_fraction"`
	TaxRate       float64 `yaml:"tax_rate"`
}

// DefaultFascismParams returns the fascism defaults: 20% elite, 20% party tax.
func DefaultFascismParams() FascismParams {
	return FascismParams{
		EliteFraction: 0.2,
		TaxRate:       0.2,
	}
}

// Validate checks fascism parameters.
func (p FascismParams) Validate() error {
	switch {
	case p.EliteFraction <= 0 || p.EliteFraction >= 1:
		return &ParamError{Fascism, "elite_fraction", "must be in (0, 1)"}
	case p.TaxRate < 0 || p.TaxRate > 1:
		return &ParamError{Fascism, "tax_rate", "must be in [0, 1]"}
	}
	return nil
}

// PatronParams tunes patronage.
type PatronParams struct {
	PatronFraction float64 `yaml:"patron_fraction"` // wealthiest share acting as patrons
	NetworkShare   float64 `yaml:"network_share"`   // share of the non-patron pool each patron knows
	DonationShare  float64 `yaml:"donation_share"`  // fraction of patron wealth given per step
}

// DefaultPatronParams returns the patron defaults.
func DefaultPatronParams() PatronParams {
	return PatronParams{
		PatronFraction: 0.2,
		NetworkShare:   0.3,
		DonationShare:  0.1,
	}
}

// Validate checks patron parameters.
func (p PatronParams) Validate() error {
	switch {
	case p.PatronFraction <= 0 || p.PatronFraction >= 1:
		return &ParamError{Patron, "patron_fraction", "must be in (0, 1)"}
	case p.NetworkShare <= 0 || p.NetworkShare > 1:
		return &ParamError{Patron, "network_share", "must be in (0, 1]"}
	case p.DonationShare < 0 || p.DonationShare > 1:
		return &ParamError{Patron, "donation_share", "must be in [0, 1]"}
	}
	return nil
}

// UBIParams tunes universal basic income.
type UBIParams struct {
	SurvivalAmount    float64 `yaml:"survival_amount"`
	RedistributionPct float64 `yaml:"redistribution_percentage"`
	ExternalFunding   bool    `yaml:"external_funding"` // top up any shortfall from outside the economy
}

// DefaultUBIParams returns the UBI defaults.
func DefaultUBIParams() UBIParams {
	return UBIParams{
		SurvivalAmount:    1.0,
		RedistributionPct: 0.1,
	}
}

// Validate checks UBI parameters.
func (p UBIParams) Validate() error {
	switch {
	case p.SurvivalAmount < 0:
		return &ParamError{UBI, "survival_amount", "must be >= 0"}
	case p.RedistributionPct < 0 || p.RedistributionPct > 1:
		return &ParamError{UBI, "redistribution_percentage", "must be in [0, 1]"}
	}
	return nil
}
