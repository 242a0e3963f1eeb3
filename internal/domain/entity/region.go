package entity

// Region is a sales region dimension row. FXRateUSD converts local-currency
// amounts (line subtotals) into USD.
type Region struct {
	ID        string // Source region identifier.
	Name      string // Region label, e.g. "EMEA".
	Country   string // Country within the region.
	Channel   string // Sales channel, e.g. "Online", "Marketplace".
	Currency  string // ISO currency code of local amounts.
	FXRateUSD float64 `validate:"gt=0"` // Multiplier from local currency to USD.
}
