package constants

const (
	// Context Keys
	ContextKeyIsLoggedIn = "isLoggedIn"
	ContextKeyProfile    = "profile"

	// Session Keys
	SessionKeyAuthenticated = "authenticated"
	SessionKeySuccessFlash  = "success_flash"

	// Query / form parameter names shared between handlers and templates.
	ParamQuery    = "query"
	ParamCategory = "category"
	ParamStatus   = "status"
	ParamPage     = "page"
	ParamSession  = "sid"
)
