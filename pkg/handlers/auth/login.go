package auth

import (
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/chris/money-movements/pkg/auth"
	"github.com/go-chi/chi/v5"
)

// HomePath is where a browser lands after signing in through the login form.
const HomePath = "/api/dashboard"

var loginPage = template.Must(template.New("login").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Sign in</title>
</head>
<body>
<main>
<h1>Sign in</h1>
{{if .Error}}<p role="alert">{{.Error}}</p>{{end}}
<form method="post" action="{{.Action}}">
<label>Email <input type="email" name="email" value="{{.Email}}" autocomplete="email" required></label>
<label>Password <input type="password" name="password" autocomplete="current-password" required></label>
<button type="submit">Sign in</button>
</form>
</main>
</body>
</html>
`))

type loginPageData struct {
	Action string
	Email  string
	Error  string
}

// LoginRoutes mounts the browser login form.
func (h *AuthHandler) LoginRoutes(r chi.Router) {
	r.Get(auth.LoginPath, h.ShowLogin)
	r.Post(auth.LoginPath, h.SubmitLogin)
}

// ShowLogin renders the login form.
func (h *AuthHandler) ShowLogin(w http.ResponseWriter, r *http.Request) {
	h.renderLogin(w, http.StatusOK, loginPageData{Action: auth.LoginPath})
}

// SubmitLogin signs in from the login form and sends the browser home.
func (h *AuthHandler) SubmitLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	email := strings.TrimSpace(r.PostFormValue("email"))

	_, token, err := h.Service.SignIn(r.Context(), email, r.PostFormValue("password"))
	h.Metrics.AuthAttempt("signin", auth.Code(err))
	if err != nil {
		if code := auth.Code(err); code == "" || code == auth.CodeNetworkRequestFailed {
			slog.ErrorContext(r.Context(), "authentication failed", "error", err)
		}
		h.renderLogin(w, status(auth.Code(err)), loginPageData{Action: auth.LoginPath, Email: email, Error: auth.Message(err)})
		return
	}

	auth.SetSessionCookie(w, token, h.SessionTTL, h.SecureCookie)
	http.Redirect(w, r, HomePath, http.StatusSeeOther)
}

func (h *AuthHandler) renderLogin(w http.ResponseWriter, status int, data loginPageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if err := loginPage.Execute(w, data); err != nil {
		slog.Error("failed to render login page", "error", err)
	}
}
