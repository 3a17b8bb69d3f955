package catalog

import (
	"strconv"
	"strings"
)

// SearchItemsRequest describes a catalog search.
type SearchItemsRequest struct {
	// Keywords is the search query. Required.
	Keywords string

	// SearchIndex narrows the search to a category. Default: "All"
	SearchIndex string

	// ItemCount is the number of results, clamped to the API limit of 10.
	// Default: 10
	ItemCount int

	// MinPrice and MaxPrice filter by price in the marketplace's lowest
	// currency denomination. Zero means no bound.
	MinPrice int
	MaxPrice int

	// MinSavingPercent filters to discounted items. Zero means no filter.
	MinSavingPercent int

	// DeliveryFlags filters by delivery program, e.g. "Prime".
	DeliveryFlags []string

	// Resources selects the response fields. Empty applies a default set.
	Resources []string
}

func (r *SearchItemsRequest) normalize() {
	if r.SearchIndex == "" {
		r.SearchIndex = "All"
	}
	if r.ItemCount <= 0 || r.ItemCount > 10 {
		r.ItemCount = 10
	}
}

// params flattens the request into the canonical fingerprint parameters.
// Resources are excluded: they shape the response payload size, not its
// identity, and the default set is stable per deployment.
func (r SearchItemsRequest) params() map[string]string {
	p := map[string]string{
		"keywords":     r.Keywords,
		"search_index": r.SearchIndex,
		"item_count":   strconv.Itoa(r.ItemCount),
	}
	if r.MinPrice > 0 {
		p["min_price"] = strconv.Itoa(r.MinPrice)
	}
	if r.MaxPrice > 0 {
		p["max_price"] = strconv.Itoa(r.MaxPrice)
	}
	if r.MinSavingPercent > 0 {
		p["min_saving_percent"] = strconv.Itoa(r.MinSavingPercent)
	}
	if len(r.DeliveryFlags) > 0 {
		p["delivery_flags"] = strings.Join(r.DeliveryFlags, ",")
	}
	return p
}

// GetItemsRequest fetches details for specific items.
type GetItemsRequest struct {
	// ItemIDs is the list of catalog item identifiers, truncated to the
	// API limit of 10 per request. Required.
	ItemIDs []string

	// Resources selects the response fields. Empty applies a default set.
	Resources []string
}

func (r *GetItemsRequest) normalize() {
	if len(r.ItemIDs) > 10 {
		r.ItemIDs = r.ItemIDs[:10]
	}
}

func (r GetItemsRequest) params() map[string]string {
	return map[string]string{
		"item_ids": strings.Join(r.ItemIDs, ","),
	}
}

// GetBrowseNodesRequest fetches category nodes and their ancestry.
type GetBrowseNodesRequest struct {
	// BrowseNodeIDs is the list of node identifiers. Required.
	BrowseNodeIDs []string

	// Resources selects the response fields. Empty applies a default set.
	Resources []string
}

func (r GetBrowseNodesRequest) params() map[string]string {
	return map[string]string{
		"browse_node_ids": strings.Join(r.BrowseNodeIDs, ","),
	}
}

// Default resource sets, chosen to keep response payloads lean while
// covering the fields downstream formatters actually read.
var (
	defaultSearchResources = []string{
		"Images.Primary.Large",
		"ItemInfo.Title",
		"ItemInfo.ByLineInfo",
		"ItemInfo.Features",
		"Offers.Listings.Price",
		"Offers.Listings.DeliveryInfo.IsPrimeEligible",
		"CustomerReviews.StarRating",
		"CustomerReviews.Count",
	}

	defaultItemResources = []string{
		"Images.Primary.Large",
		"Images.Variants.Large",
		"ItemInfo.Title",
		"ItemInfo.ByLineInfo",
		"ItemInfo.Features",
		"ItemInfo.ProductInfo",
		"ItemInfo.TechnicalInfo",
		"Offers.Listings.Price",
		"Offers.Listings.DeliveryInfo",
		"Offers.Listings.Availability",
		"CustomerReviews.StarRating",
		"CustomerReviews.Count",
	}

	defaultBrowseResources = []string{
		"BrowseNodes.Ancestor",
		"BrowseNodes.Children",
	}
)

// Wire types for the JSON request bodies.

type searchItemsBody struct {
	PartnerTag       string   `json:"PartnerTag"`
	PartnerType      string   `json:"PartnerType"`
	Marketplace      string   `json:"Marketplace"`
	Keywords         string   `json:"Keywords"`
	SearchIndex      string   `json:"SearchIndex"`
	ItemCount        int      `json:"ItemCount"`
	MinPrice         int      `json:"MinPrice,omitempty"`
	MaxPrice         int      `json:"MaxPrice,omitempty"`
	MinSavingPercent int      `json:"MinSavingPercent,omitempty"`
	DeliveryFlags    []string `json:"DeliveryFlags,omitempty"`
	Resources        []string `json:"Resources"`
}

type getItemsBody struct {
	PartnerTag  string   `json:"PartnerTag"`
	PartnerType string   `json:"PartnerType"`
	Marketplace string   `json:"Marketplace"`
	ItemIDs     []string `json:"ItemIds"`
	Resources   []string `json:"Resources"`
}

type getBrowseNodesBody struct {
	PartnerTag    string   `json:"PartnerTag"`
	PartnerType   string   `json:"PartnerType"`
	Marketplace   string   `json:"Marketplace"`
	BrowseNodeIDs []string `json:"BrowseNodeIds"`
	Resources     []string `json:"Resources"`
}
