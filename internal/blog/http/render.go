package http

import (
	"net/http"

	"simpleblog/pkg/slogx"
)

// render executes a page template with the common fields every page expects,
// merging in the handler's own data.
func (rt *Router) render(w http.ResponseWriter, r *http.Request, status int, page string, data map[string]any) {
	if data == nil {
		data = make(map[string]any)
	}

	if identity, ok := identityFrom(r); ok {
		data["User"] = identity
	}
	if flash := popFlash(w, r); flash != nil {
		data["Flash"] = flash
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := rt.views.Render(w, page, data); err != nil {
		slogx.FromContext(r.Context()).Error("failed to render template",
			"page", page,
			"error", err,
		)
	}
}

func (rt *Router) renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	rt.render(w, r, status, "error", map[string]any{
		"Status":  status,
		"Message": message,
	})
}
