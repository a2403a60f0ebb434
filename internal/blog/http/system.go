package http

import (
	"net/http"
	"time"

	"simpleblog/internal/blog/store"
	"simpleblog/pkg/httpx"
	"simpleblog/pkg/slogx"
)

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
}

// LivezHandler reports process liveness. It never touches dependencies.
func LivezHandler(start time.Time, version string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, healthResponse{
			Status:  "ok",
			Version: version,
			Uptime:  time.Since(start).Round(time.Second).String(),
		})
	})
}

// ReadyzHandler reports readiness to serve traffic, which requires a
// reachable database.
func ReadyzHandler(start time.Time, version string, st store.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := st.Ping(r.Context()); err != nil {
			slogx.FromContext(r.Context()).Error("readiness check failed", "error", err)
			httpx.WriteJSON(w, http.StatusServiceUnavailable, healthResponse{
				Status:  "unavailable",
				Version: version,
				Uptime:  time.Since(start).Round(time.Second).String(),
			})
			return
		}

		httpx.WriteJSON(w, http.StatusOK, healthResponse{
			Status:  "ok",
			Version: version,
			Uptime:  time.Since(start).Round(time.Second).String(),
		})
	})
}
