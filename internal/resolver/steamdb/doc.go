// Package steamdb resolves latest depot manifests by fetching and parsing
// SteamDB depot history pages over plain HTTP.
//
// The site fronts its pages with anti-bot interstitials, so the client does
// not trust a single fetch: it sends a browser-like user agent plus any
// configured cookies, re-polls while the response looks like a challenge
// page (bounded by the configured challenge wait), then re-polls briefly
// for the manifest history table (bounded by the table wait) before giving
// up. A page with no recognizable history table yields resolver.ErrNoData
// rather than an error.
package steamdb
