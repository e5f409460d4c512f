package driven

import "context"

// AssetFetcher resolves remote image URLs to bytes.
type AssetFetcher interface {
	// Fetch downloads the resource at url.
	// Failures wrap domain.ErrAssetFetch.
	Fetch(ctx context.Context, url string) (*Asset, error)
}

// Asset is a fetched binary resource.
type Asset struct {
	// Data is the raw body.
	Data []byte

	// ContentType is the declared media type, which may be empty or wrong.
	ContentType string
}
