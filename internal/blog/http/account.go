package http

import (
	"errors"
	"net/http"

	"simpleblog/internal/blog/service"
	"simpleblog/pkg/slogx"
)

func setSessionCookie(w http.ResponseWriter, token string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (rt *Router) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	if _, ok := identityFrom(r); ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	rt.render(w, r, http.StatusOK, "login", map[string]any{"Email": ""})
}

func (rt *Router) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		rt.renderError(w, r, http.StatusBadRequest, "The submitted form could not be read.")
		return
	}

	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	user, err := rt.AccountService.Login(r.Context(), email, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			rt.render(w, r, http.StatusUnprocessableEntity, "login", map[string]any{
				"Error": "Invalid email or password.",
				"Email": email,
			})
			return
		}
		slogx.FromContext(r.Context()).Error("login failed", "error", err)
		rt.renderError(w, r, http.StatusInternalServerError, "Something went wrong. Please try again.")
		return
	}

	token, err := rt.SessionService.Establish(r.Context(), user)
	if err != nil {
		slogx.FromContext(r.Context()).Error("failed to establish session", "error", err)
		rt.renderError(w, r, http.StatusInternalServerError, "Something went wrong. Please try again.")
		return
	}

	ttl := rt.SessionService.TTL
	if ttl <= 0 {
		ttl = service.DefaultSessionTTL
	}
	setSessionCookie(w, token, int(ttl.Seconds()))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (rt *Router) handleRegisterForm(w http.ResponseWriter, r *http.Request) {
	if _, ok := identityFrom(r); ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	rt.render(w, r, http.StatusOK, "register", map[string]any{"Username": "", "Email": ""})
}

func (rt *Router) handleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		rt.renderError(w, r, http.StatusBadRequest, "The submitted form could not be read.")
		return
	}

	username := r.PostFormValue("username")
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	user, err := rt.AccountService.Register(r.Context(), username, email, password)
	if err != nil {
		msg, ok := registrationError(err)
		if !ok {
			slogx.FromContext(r.Context()).Error("registration failed", "error", err)
			rt.renderError(w, r, http.StatusInternalServerError, "Something went wrong. Please try again.")
			return
		}
		rt.render(w, r, http.StatusUnprocessableEntity, "register", map[string]any{
			"Error":    msg,
			"Username": username,
			"Email":    email,
		})
		return
	}

	// Registration logs the new user straight in.
	token, err := rt.SessionService.Establish(r.Context(), user)
	if err != nil {
		slogx.FromContext(r.Context()).Error("failed to establish session", "error", err)
		setFlash(w, flashSuccess, "Account created. You can log in now.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	ttl := rt.SessionService.TTL
	if ttl <= 0 {
		ttl = service.DefaultSessionTTL
	}
	setSessionCookie(w, token, int(ttl.Seconds()))
	setFlash(w, flashSuccess, "Welcome, "+user.Username+"!")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// registrationError maps service validation failures to user-facing messages.
func registrationError(err error) (string, bool) {
	switch {
	case errors.Is(err, service.ErrInvalidUsername):
		return "Usernames must be between 3 and 50 characters.", true
	case errors.Is(err, service.ErrInvalidEmail):
		return "That email address does not look valid.", true
	case errors.Is(err, service.ErrInvalidPassword):
		return "Passwords must be between 6 and 100 characters.", true
	case errors.Is(err, service.ErrUsernameTaken):
		return "That username is already taken.", true
	case errors.Is(err, service.ErrEmailTaken):
		return "An account with that email already exists.", true
	default:
		return "", false
	}
}

func (rt *Router) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		if err := rt.SessionService.Terminate(r.Context(), cookie.Value); err != nil {
			slogx.FromContext(r.Context()).Warn("failed to revoke session", "error", err)
		}
	}
	clearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
