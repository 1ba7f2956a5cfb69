package model

// PlanDefinition is one time-of-use plan from the provider catalog.
// The day/time fields are kept as the raw catalog strings; parsing into
// a discount window happens in the recommendation engine so that one
// malformed catalog entry can be isolated instead of failing the batch.
type PlanDefinition struct {
	Provider           string  `yaml:"provider" json:"provider"`
	PlanName           string  `yaml:"plan_name" json:"plan_name"`
	WeekDaysApplicable string  `yaml:"week_days_applicable" json:"week_days_applicable"`
	HoursApplicable    string  `yaml:"hours_applicable" json:"hours_applicable"`
	PricePercentageOff float64 `yaml:"price_percentage_off" json:"price_percentage_off"`
	LogoFilename       string  `yaml:"logo_filename,omitempty" json:"logo_filename,omitempty"`
	ProviderURL        string  `yaml:"provider_url,omitempty" json:"provider_url,omitempty"`
}
