package constants

// Static route constants
const (
	APIPrefix   = "/api"
	APIV1Prefix = "/v1"

	ListingsRoute   = "/listings"
	PartnersRoute   = "/partners"
	PincodesRoute   = "/pincodes"
	PlansRoute      = "/plans"
	CategoriesRoute = "/categories"
	DashboardRoute  = "/dashboard"
)
