package http

import (
	"context"
	"errors"
	"net/http"

	"simpleblog/internal/blog/domain"
	"simpleblog/internal/blog/service"
	"simpleblog/pkg/httpx"
	"simpleblog/pkg/slogx"
)

const sessionCookieName = "blog_session"

type identityCtxKey struct{}

// withIdentity resolves the session cookie into an Identity and stores it on
// the request context. Missing or invalid sessions leave the context empty,
// handlers decide whether that matters.
func (rt *Router) withIdentity() httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(sessionCookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			identity, err := rt.SessionService.Current(r.Context(), cookie.Value)
			if err != nil {
				if !errors.Is(err, service.ErrNoSession) {
					slogx.FromContext(r.Context()).Warn("failed to resolve session",
						"error", err,
					)
				}
				clearSessionCookie(w)
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), identityCtxKey{}, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// identityFrom returns the authenticated identity for the request, if any.
func identityFrom(r *http.Request) (domain.Identity, bool) {
	id, ok := r.Context().Value(identityCtxKey{}).(domain.Identity)
	return id, ok
}

// requireUser redirects anonymous requests to the login page.
func (rt *Router) requireUser(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := identityFrom(r); !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next(w, r)
	})
}

// requireModerator redirects anonymous requests to the login page and sends
// authenticated non-moderators back home with a flash.
func (rt *Router) requireModerator(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := identityFrom(r)
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		if !identity.IsModerator() {
			setFlash(w, flashError, "Only moderators can do that.")
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		next(w, r)
	})
}
