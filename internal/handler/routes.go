package handler

import "github.com/go-chi/chi/v5"

// Routes mounts the catalog admin pages on r, which is expected to be
// mounted at RouteAdmin.
func (h *AdminHandler) Routes(r chi.Router) {
	r.Get(RouteRoot, h.Dashboard)

	r.Route(RouteCategories, func(r chi.Router) {
		r.Get(RouteSuffixNew, h.NewCategory)
		r.Post(RouteSuffixSave, h.SaveCategory)
		r.Get(RouteSuffixEdit, h.EditCategory)
		r.Post(RouteSuffixToggle, h.ToggleCategory)
		r.Get(RouteSuffixDelete, h.ConfirmDeleteCategory)
		r.Post(RouteSuffixDelete, h.DeleteCategory)
	})

	r.Route(RouteParts, func(r chi.Router) {
		r.Get(RouteSuffixNew, h.NewPart)
		r.Post(RouteSuffixSave, h.SavePart)
		r.Get(RouteSuffixEdit, h.EditPart)
		r.Post(RouteSuffixToggle, h.TogglePart)
		r.Get(RouteSuffixDelete, h.ConfirmDeletePart)
		r.Post(RouteSuffixDelete, h.DeletePart)
	})

	r.Get(RouteImport, h.ConfirmImport)
	r.Post(RouteImport, h.Import)
}
