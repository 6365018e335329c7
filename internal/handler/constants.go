package handler

// Route pattern constants for chi router registration.
const (
	// RouteRoot is the root path.
	RouteRoot = "/"
	// RouteAdmin is the dashboard route.
	RouteAdmin = "/admin"
	// RouteSuffixNew is the suffix for "new" routes.
	RouteSuffixNew = "/new"
	// RouteSuffixSave is the suffix for create-or-update routes.
	RouteSuffixSave = "/save"

	// RouteParamID is the ID parameter pattern.
	RouteParamID = "/{id}"
	// RouteSuffixEdit is the edit suffix under an ID.
	RouteSuffixEdit = RouteParamID + "/edit"
	// RouteSuffixToggle is the status toggle suffix under an ID.
	RouteSuffixToggle = RouteParamID + "/toggle"
	// RouteSuffixDelete is the delete suffix under an ID.
	RouteSuffixDelete = RouteParamID + "/delete"

	// RouteCategories is the categories admin route.
	RouteCategories = "/categories"
	// RouteParts is the parts admin route.
	RouteParts = "/parts"
	// RouteImport is the import admin route.
	RouteImport = "/import"

	// RouteLogin is the login route.
	RouteLogin = "/login"
	// RouteLogout is the logout route.
	RouteLogout = "/logout"
	// RouteSetLanguage is the language switch route.
	RouteSetLanguage = "/set_language/{code}"
	// RouteHealth is the health check route.
	RouteHealth = "/health"
	// RouteHealthLive is the liveness route.
	RouteHealthLive = "/health/live"
	// RouteStatic is the embedded assets route.
	RouteStatic = "/static/*"
)

// Dashboard tabs.
const (
	TabParts      = "parts"
	TabCategories = "categories"
)

const (
	redirectAdmin           = RouteAdmin
	redirectAdminParts      = RouteAdmin + "?tab=" + TabParts
	redirectAdminCategories = RouteAdmin + "?tab=" + TabCategories
	redirectLogin           = RouteLogin
)

// paramNext names the form or query field carrying the dashboard view to
// return to after a modal or mutation.
const paramNext = "next"

// Page template names.
const (
	pageDashboard    = "admin/dashboard"
	pageCategoryForm = "admin/category_form"
	pagePartForm     = "admin/part_form"
	pageConfirm      = "admin/confirm"
	pageLogin        = "auth/login"
)

// HeaderContentType is the Content-Type HTTP header name.
const HeaderContentType = "Content-Type"
