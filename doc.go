// Package dealersearch provides a Go client for unified search and fitment
// recommendations over a BMW dealership storefront: vehicle listings from a
// Sanity content backend and a parts catalog from a Shopify storefront.
//
// The client embeds the search engine in-process. Indexes are fetched from
// the upstream sources, cached with a short TTL and searched with a
// typo-tolerant fuzzy matcher:
//
//	client, _ := dealersearch.New(
//	    dealersearch.WithContent("project-id", "production"),
//	    dealersearch.WithCatalog("shop.example.com", token),
//	)
//	defer client.Close()
//
//	results, _ := client.SearchAll(ctx, "e46 brake", 10)
//	parts, _ := client.GetCompatibleParts(ctx, "2003-bmw-m3-coupe")
//	fits, _ := client.GetVehiclesWithPart(ctx, "carbon-fiber-spoiler")
//
// By default everything is cached in-process; WithRedis switches to a
// shared Redis cache so several instances stay warm together.
package dealersearch
