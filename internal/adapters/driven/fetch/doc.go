// Package fetch provides the HTTP implementation of driven.AssetFetcher.
//
// Requests are throttled by a shared token bucket. A 429 response pauses
// every later request until the server's Retry-After has passed.
package fetch
