package web

import (
	"database/sql"
	"net/http"

	"github.com/erazemk/najdeno/internal/model"
	webembed "github.com/erazemk/najdeno/web"
)

// NewRouter creates the web page router with all page routes registered.
func NewRouter(db *sql.DB, jwtSecret string, secureCookie bool) (http.Handler, error) {
	templates, err := LoadTemplates()
	if err != nil {
		return nil, err
	}

	s := &Server{
		DB:           db,
		Templates:    templates,
		JWTSecret:    jwtSecret,
		SecureCookie: secureCookie,
	}

	mux := http.NewServeMux()
	cookieAuth := CookieAuthMiddleware(jwtSecret, db)

	// Static assets.
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(webembed.StaticFS()))))

	// Public routes.
	mux.HandleFunc("GET /login", s.LoginPage)
	mux.HandleFunc("POST /login", s.LoginSubmit)
	mux.HandleFunc("GET /signup", s.SignupPage)
	mux.HandleFunc("POST /signup", s.SignupSubmit)
	mux.HandleFunc("POST /logout", s.Logout)

	// Authenticated routes.
	mux.Handle("GET /{$}", cookieAuth(http.HandlerFunc(s.ReportPage)))
	mux.Handle("POST /report", cookieAuth(http.HandlerFunc(s.ReportSubmit)))
	mux.Handle("GET /lost", cookieAuth(s.ListPage(model.ItemStatusLost)))
	mux.Handle("GET /found", cookieAuth(s.ListPage(model.ItemStatusFound)))
	mux.Handle("GET /items/{id}", cookieAuth(http.HandlerFunc(s.ItemDetailPage)))

	return mux, nil
}
