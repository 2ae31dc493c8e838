package v1

// BasePath prefixes every versioned route.
const BasePath = "/api/v1"

// Per-service route groups below BasePath.
const (
	CommunityPath   = BasePath + "/community"
	MarketplacePath = BasePath + "/marketplace"
	AcademyPath     = BasePath + "/academy"
	BusinessPath    = BasePath + "/business"
)
