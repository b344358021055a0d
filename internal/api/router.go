package api

import (
	"database/sql"
	"net/http"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB, jwtSecret string) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{DB: db, JWTSecret: jwtSecret}
	itemsHandler := &ItemsHandler{DB: db}
	imagesHandler := &ImagesHandler{DB: db}

	authMW := AuthMiddleware(jwtSecret, db)

	// Public: signup and login.
	mux.HandleFunc("POST /api/auth/signup", authHandler.Signup)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)

	// Authenticated account routes.
	mux.Handle("POST /api/auth/logout", authMW(http.HandlerFunc(authHandler.Logout)))
	mux.Handle("GET /api/auth/me", authMW(http.HandlerFunc(authHandler.Me)))

	// Items: anyone can report and browse. The short paths are aliases.
	mux.HandleFunc("POST /api/items/add", itemsHandler.Create)
	mux.HandleFunc("POST /api/items", itemsHandler.Create)
	mux.HandleFunc("GET /api/items/get", itemsHandler.List)
	mux.HandleFunc("GET /api/items", itemsHandler.List)

	// Photos: upload needs an account, reading is public.
	mux.Handle("POST /api/images", authMW(http.HandlerFunc(imagesHandler.Upload)))
	mux.HandleFunc("GET /api/images/{id}", imagesHandler.Get)

	mux.HandleFunc("GET /healthz", Health(db))

	return mux
}

// Health reports whether the database is reachable.
func Health(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			jsonError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
		jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
