package catalog

// Marketplace describes one regional catalog API endpoint.
type Marketplace struct {
	// Code is the short marketplace identifier, e.g. "US".
	Code string

	// Host is the API endpoint hostname.
	Host string

	// Region is the signing region for this endpoint.
	Region string

	// Currency is the ISO 4217 currency code for prices.
	Currency string

	// Domain is the storefront domain used in product links.
	Domain string
}

var marketplaces = map[string]Marketplace{
	"US": {
		Code:     "US",
		Host:     "webservices.amazon.com",
		Region:   "us-east-1",
		Currency: "USD",
		Domain:   "amazon.com",
	},
	"IN": {
		Code:     "IN",
		Host:     "webservices.amazon.in",
		Region:   "eu-west-1",
		Currency: "INR",
		Domain:   "amazon.in",
	},
	"UK": {
		Code:     "UK",
		Host:     "webservices.amazon.co.uk",
		Region:   "eu-west-1",
		Currency: "GBP",
		Domain:   "amazon.co.uk",
	},
	"JP": {
		Code:     "JP",
		Host:     "webservices.amazon.co.jp",
		Region:   "us-west-2",
		Currency: "JPY",
		Domain:   "amazon.co.jp",
	},
}

// MarketplaceFor returns the marketplace for the given code. Unknown codes
// fall back to the US marketplace.
func MarketplaceFor(code string) Marketplace {
	if m, ok := marketplaces[code]; ok {
		return m
	}
	return marketplaces["US"]
}

// KnownMarketplace reports whether the code maps to a registered marketplace.
func KnownMarketplace(code string) bool {
	_, ok := marketplaces[code]
	return ok
}
