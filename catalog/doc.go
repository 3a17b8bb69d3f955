// Package catalog is a governed client for a remote product catalog API.
//
// The client exposes three operations, SearchItems, GetItems, and
// GetBrowseNodes, each routed through a govern.Facade so that every
// outbound request passes the quota limiter, the circuit breaker, and the
// tiered cache. Responses cross the governance boundary as opaque JSON
// payloads; the client does not model the remote data schema.
//
// Each operation family has its own cache namespace and lifetime: search
// results live one hour, product details two hours, and browse nodes a
// full day. Cache keys are canonical fingerprints of the request
// parameters, so logically identical requests hit the same entry
// regardless of construction order.
//
// Requests are authenticated with HMAC request signing against the
// marketplace's regional endpoint. Configuration comes from a Config
// struct, optionally populated from the environment with strict ${VAR}
// expansion.
//
//	config, err := catalog.FromEnv()
//	if err != nil {
//	    return err
//	}
//	client, err := catalog.New(config)
//	if err != nil {
//	    return err
//	}
//	payload, err := client.SearchItems(ctx, catalog.SearchItemsRequest{
//	    Keywords: "mechanical keyboard",
//	})
package catalog
