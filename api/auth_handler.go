package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/rpupo63/crpix-studio-backend/auth"
	"github.com/rpupo63/crpix-studio-backend/errs"
	"github.com/rpupo63/crpix-studio-backend/metrics"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type authHandler struct {
	responder     Responder
	logger        zerolog.Logger
	authenticator *auth.Authenticator
}

func newAuthHandler(authenticator *auth.Authenticator) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder:     NewResponder(logger),
		logger:        logger,
		authenticator: authenticator,
	}
}

// login checks the admin credentials and starts a session
// @Summary Admin login
// @Description Accepts JSON or a form post. On success sets the admin_authenticated session cookie; form posts are redirected to /admin.
// @Tags Admin
// @Accept json
// @Accept x-www-form-urlencoded
// @Produce json
// @Param request body CredentialsRequest true "Credentials"
// @Success 200 {object} SessionResponse
// @Failure 401 {object} ErrorResponse "Unauthorized - Invalid credentials"
// @Router /admin/login [post]
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CredentialsRequest
		isForm := strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded")
		if isForm {
			r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
			if err := r.ParseForm(); err != nil {
				h.responder.WriteError(w, errs.NewMalformedPayloadError("login form", err))
				return
			}
			req.Username = r.PostForm.Get("username")
			req.Password = r.PostForm.Get("password")
		} else if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		token, expires, err := h.authenticator.Login(req.Username, req.Password)
		metrics.RecordLogin(err == nil)
		if err != nil {
			h.logger.Warn().Str("remote_addr", r.RemoteAddr).Msg("admin login failed")
			h.responder.WriteError(w, err)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     auth.CookieName,
			Value:    token,
			Path:     "/",
			MaxAge:   int(h.authenticator.TTL().Seconds()),
			Expires:  expires,
			HttpOnly: true,
			Secure:   r.TLS != nil,
			SameSite: http.SameSiteLaxMode,
		})
		h.logger.Info().Str("remote_addr", r.RemoteAddr).Msg("admin logged in")

		if isForm {
			http.Redirect(w, r, "/admin", http.StatusSeeOther)
			return
		}
		h.responder.WriteJSON(w, SessionResponse{
			Authenticated: true,
			ExpiresAt:     expires.UTC().Format(time.RFC3339),
		})
	}
}

const loginForm = `<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><meta name="robots" content="noindex"><title>Admin Login</title></head>
<body>
<form method="post" action="/admin/login">
<label>Username <input name="username" autocomplete="username" required></label>
<label>Password <input name="password" type="password" autocomplete="current-password" required></label>
<button type="submit">Login</button>
</form>
</body>
</html>
`

// loginPage serves the admin login form
// @Summary Admin login page
// @Tags Admin
// @Produce html
// @Router /admin/login [get]
func (h authHandler) loginPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ctxIsAdmin(r.Context()) {
			http.Redirect(w, r, "/admin", http.StatusFound)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(loginForm))
	}
}

// logout ends the admin session
// @Summary Admin logout
// @Tags Admin
// @Produce json
// @Success 200 {object} SessionResponse
// @Router /admin/logout [post]
func (h authHandler) logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{
			Name:     auth.CookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		h.responder.WriteJSON(w, SessionResponse{Authenticated: false})
	}
}

// session reports whether the caller holds an admin session
// @Summary Admin session
// @Tags Admin
// @Produce json
// @Success 200 {object} SessionResponse
// @Router /admin/session [get]
func (h authHandler) session() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, SessionResponse{Authenticated: ctxIsAdmin(r.Context())})
	}
}
