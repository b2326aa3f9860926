package api

const (
	// v1BaseURL is the base URL of the version 1 itch.io API.
	v1BaseURL = "https://itch.io/api/1"
	// v2BaseURL is the base URL of the version 2 itch.io API.
	v2BaseURL = "https://api.itch.io"
)

// urlVersion identifies which API version (and thus which authentication
// scheme) a URL belongs to.
type urlVersion uint8

const (
	// urlVersionV1 is the version 1 API, authenticated with a bearer token.
	urlVersionV1 urlVersion = iota
	// urlVersionV2 is the version 2 API, authenticated with a raw key header.
	urlVersionV2
	// urlVersionExternal is an address outside the API, left unauthenticated.
	urlVersionExternal
)

// URL is an itch.io API address. Construct values with V1, V2, or External.
type URL struct {
	// version is the API version that the address belongs to.
	version urlVersion
	// endpoint is the resource path (for API versions) or the full address
	// (for external URLs).
	endpoint string
}

// V1 creates an address for a version 1 API resource.
func V1(endpoint string) URL {
	return URL{version: urlVersionV1, endpoint: endpoint}
}

// V2 creates an address for a version 2 API resource.
func V2(endpoint string) URL {
	return URL{version: urlVersionV2, endpoint: endpoint}
}

// External creates an address for a full URL outside the API, such as a cover
// image address. Requests to external addresses aren't authenticated.
func External(address string) URL {
	return URL{version: urlVersionExternal, endpoint: address}
}

// String renders the full URL.
func (u URL) String() string {
	switch u.version {
	case urlVersionV1:
		return v1BaseURL + "/" + u.endpoint
	case urlVersionV2:
		return v2BaseURL + "/" + u.endpoint
	default:
		return u.endpoint
	}
}
