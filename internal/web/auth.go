package web

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/erazemk/najdeno/internal/api"
	"github.com/erazemk/najdeno/internal/auth"
	"github.com/erazemk/najdeno/internal/model"
	"github.com/erazemk/najdeno/internal/store"
)

type signupForm struct {
	PageData
	Fullname string
	Email    string
}

// LoginPage handles GET /login.
func (s *Server) LoginPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "login.html", &PageData{Title: "Log in"})
}

// LoginSubmit handles POST /login.
func (s *Server) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")

	if strings.TrimSpace(email) == "" || password == "" {
		s.Templates.RenderStatus(w, http.StatusBadRequest, "login.html", &PageData{
			Title: "Log in",
			Error: "Email and password are required.",
		})
		return
	}

	user, token, err := api.Authenticate(r.Context(), s.DB, s.JWTSecret, email, password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		slog.Warn("login failed", "email", model.NormalizeEmail(email), "remote", r.RemoteAddr)
		s.Templates.RenderStatus(w, http.StatusUnauthorized, "login.html", &PageData{
			Title: "Log in",
			Error: "Invalid email or password.",
		})
		return
	}
	if err != nil {
		slog.Error("login error", "error", err)
		s.Templates.RenderStatus(w, http.StatusInternalServerError, "login.html", &PageData{
			Title: "Log in",
			Error: "Something went wrong. Please try again.",
		})
		return
	}

	slog.Info("user logged in", "user", user.ID)
	setAuthCookie(w, token, s.SecureCookie)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// SignupPage handles GET /signup.
func (s *Server) SignupPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "signup.html", &signupForm{PageData: PageData{Title: "Sign up"}})
}

// SignupSubmit handles POST /signup.
func (s *Server) SignupSubmit(w http.ResponseWriter, r *http.Request) {
	form := &signupForm{
		PageData: PageData{Title: "Sign up"},
		Fullname: strings.TrimSpace(r.FormValue("fullname")),
		Email:    strings.TrimSpace(r.FormValue("email")),
	}
	password := r.FormValue("password")
	fail := func(status int, msg string) {
		form.Error = msg
		s.Templates.RenderStatus(w, status, "signup.html", form)
	}

	if form.Fullname == "" || form.Email == "" || password == "" {
		fail(http.StatusBadRequest, "All fields are required.")
		return
	}
	if password != r.FormValue("confirm") {
		fail(http.StatusBadRequest, "Passwords do not match.")
		return
	}
	if err := model.ValidatePassword(password); err != nil {
		msg := "Password must be at least 6 characters."
		if errors.Is(err, model.ErrPasswordTooLong) {
			msg = "Password must be at most 72 bytes."
		}
		fail(http.StatusBadRequest, msg)
		return
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		fail(http.StatusInternalServerError, "Something went wrong. Please try again.")
		return
	}

	user, err := store.CreateUser(r.Context(), s.DB, form.Fullname, form.Email, hash)
	if errors.Is(err, store.ErrDuplicateEmail) {
		fail(http.StatusBadRequest, "Email already registered.")
		return
	}
	if err != nil {
		slog.Error("failed to create user", "error", err)
		fail(http.StatusInternalServerError, "Something went wrong. Please try again.")
		return
	}

	token, err := auth.GenerateToken(s.JWTSecret, user.ID, user.Email)
	if err != nil {
		slog.Error("failed to generate token", "error", err)
		fail(http.StatusInternalServerError, "Something went wrong. Please try again.")
		return
	}

	slog.Info("user signed up", "user", user.ID, "email", user.Email)
	setAuthCookie(w, token, s.SecureCookie)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout handles POST /logout. The token is revoked so a copied cookie stops
// working too.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	if claims, ok := cookieClaims(r, s.JWTSecret, s.DB); ok {
		if err := store.RevokeToken(r.Context(), s.DB, claims.ID, claims.ExpiresAt.Time); err != nil {
			slog.Error("failed to revoke token", "error", err)
		} else {
			slog.Info("user logged out", "user", claims.UserID)
		}
	}
	clearAuthCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
