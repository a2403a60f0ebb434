package http

import (
	"log/slog"
	"net/http"
	"time"

	"simpleblog/internal/blog/service"
	"simpleblog/internal/blog/store"
	"simpleblog/pkg/httpx"
	"simpleblog/pkg/slogx"
	"simpleblog/web"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	logger       *slog.Logger
	startTime    time.Time
	buildVersion string

	store store.Store
	views *web.Templates

	AccountService *service.AccountService
	SessionService *service.SessionService
	ContentService *service.ContentService
}

func NewRouter(buildVersion string, st store.Store, views *web.Templates, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		logger:       logger,
		startTime:    time.Now(),
		buildVersion: buildVersion,
		store:        st,
		views:        views,
	}

	// Global middleware chain. Identity resolution runs on every request so
	// even public pages can show the logged-in state.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		r.withIdentity(),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerHome()
	r.registerAccount()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAccount() {
	r.Mux.Handle("GET /login", http.HandlerFunc(r.handleLoginForm))

	// Credential endpoints get the strict limit keyed by IP and account, so
	// guessing one account's password is throttled across IPs too.
	r.Mux.Handle("POST /login",
		httpx.Chain(http.HandlerFunc(r.handleLogin),
			httpx.RateLimitByIPAndFormField(httpx.StrictLimit, "email"),
		),
	)

	r.Mux.Handle("GET /register", http.HandlerFunc(r.handleRegisterForm))
	r.Mux.Handle("POST /register",
		httpx.Chain(http.HandlerFunc(r.handleRegister),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// Logout accepts GET as well so plain links work.
	r.Mux.Handle("POST /logout", http.HandlerFunc(r.handleLogout))
	r.Mux.Handle("GET /logout", http.HandlerFunc(r.handleLogout))
}

func (r *Router) registerHome() {
	r.Mux.Handle("GET /{$}", http.HandlerFunc(r.handleIndex))

	r.Mux.Handle("GET /posts/new", r.requireModerator(r.handleNewPostForm))
	r.Mux.Handle("POST /posts", r.requireModerator(r.handleCreatePost))

	r.Mux.Handle("POST /comments", r.requireUser(r.handleAddComment))
	r.Mux.Handle("POST /comments/delete", r.requireUser(r.handleDeleteComment))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
