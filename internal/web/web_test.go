package web

import (
	"bytes"
	"context"
	"database/sql"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/erazemk/najdeno/internal/auth"
	"github.com/erazemk/najdeno/internal/db"
	"github.com/erazemk/najdeno/internal/model"
	"github.com/erazemk/najdeno/internal/store"
)

const testJWTSecret = "test-secret"

func setupTestRouter(t *testing.T) (http.Handler, *sql.DB) {
	t.Helper()
	database := db.NewTestDB(t)
	router, err := NewRouter(database, testJWTSecret, false)
	if err != nil {
		t.Fatalf("NewRouter: %v", err)
	}
	return router, database
}

// loginCookie creates a user and returns a valid auth cookie for them.
func loginCookie(t *testing.T, database *sql.DB) *http.Cookie {
	t.Helper()
	hash, _ := auth.HashPassword("password")
	user, err := store.CreateUser(context.Background(), database, "Jane Doe", "jane@example.com", hash)
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	token, err := auth.GenerateToken(testJWTSecret, user.ID, user.Email)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	return &http.Cookie{Name: cookieName, Value: token}
}

func do(router http.Handler, req *http.Request, cookie *http.Cookie) *httptest.ResponseRecorder {
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func postForm(path string, values url.Values) *http.Request {
	req := httptest.NewRequest("POST", path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func responseCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == cookieName {
			return c
		}
	}
	return nil
}

func TestPagesRequireLogin(t *testing.T) {
	router, _ := setupTestRouter(t)

	for _, path := range []string{"/", "/lost", "/found", "/items/abc"} {
		rec := do(router, httptest.NewRequest("GET", path, nil), nil)
		if rec.Code != http.StatusSeeOther {
			t.Errorf("%s: expected 303, got %d", path, rec.Code)
		}
		if loc := rec.Header().Get("Location"); loc != "/login" {
			t.Errorf("%s: expected redirect to /login, got %q", path, loc)
		}
	}

	rec := do(router, httptest.NewRequest("GET", "/", nil), &http.Cookie{Name: cookieName, Value: "garbage"})
	if rec.Code != http.StatusSeeOther {
		t.Errorf("expected 303 for invalid cookie, got %d", rec.Code)
	}
}

func TestPublicPages(t *testing.T) {
	router, _ := setupTestRouter(t)

	for _, path := range []string{"/login", "/signup", "/static/style.css"} {
		rec := do(router, httptest.NewRequest("GET", path, nil), nil)
		if rec.Code != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", path, rec.Code)
		}
	}
}

func TestSignupAndLogin(t *testing.T) {
	router, _ := setupTestRouter(t)

	rec := do(router, postForm("/signup", url.Values{
		"fullname": {"Ana Novak"},
		"email":    {"ana@example.com"},
		"password": {"secret1"},
		"confirm":  {"secret1"},
	}), nil)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 after signup, got %d: %s", rec.Code, rec.Body.String())
	}
	cookie := responseCookie(rec)
	if cookie == nil || cookie.Value == "" {
		t.Fatal("expected auth cookie after signup")
	}

	rec = do(router, httptest.NewRequest("GET", "/", nil), cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with cookie, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Report an item") {
		t.Error("expected report form")
	}

	rec = do(router, postForm("/login", url.Values{"email": {"ANA@example.com"}, "password": {"secret1"}}), nil)
	if rec.Code != http.StatusSeeOther || responseCookie(rec) == nil {
		t.Errorf("expected login redirect with cookie, got %d", rec.Code)
	}

	rec = do(router, postForm("/login", url.Values{"email": {"ana@example.com"}, "password": {"wrong"}}), nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for wrong password, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Invalid email or password.") {
		t.Error("expected error message on login page")
	}
}

func TestSignupRejections(t *testing.T) {
	router, database := setupTestRouter(t)
	loginCookie(t, database)

	tests := []struct {
		name   string
		values url.Values
		msg    string
	}{
		{"missing field", url.Values{"email": {"a@example.com"}, "password": {"secret1"}, "confirm": {"secret1"}}, "All fields are required."},
		{"mismatch", url.Values{"fullname": {"A"}, "email": {"a@example.com"}, "password": {"secret1"}, "confirm": {"secret2"}}, "Passwords do not match."},
		{"short", url.Values{"fullname": {"A"}, "email": {"a@example.com"}, "password": {"123"}, "confirm": {"123"}}, "Password must be at least 6 characters."},
		{"long", url.Values{"fullname": {"A"}, "email": {"a@example.com"}, "password": {strings.Repeat("x", 73)}, "confirm": {strings.Repeat("x", 73)}}, "Password must be at most 72 bytes."},
		{"duplicate", url.Values{"fullname": {"J"}, "email": {"jane@example.com"}, "password": {"secret1"}, "confirm": {"secret1"}}, "Email already registered."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(router, postForm("/signup", tt.values), nil)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", rec.Code)
			}
			if !strings.Contains(rec.Body.String(), tt.msg) {
				t.Errorf("expected %q in page", tt.msg)
			}
		})
	}
}

func TestReportListAndDetail(t *testing.T) {
	router, database := setupTestRouter(t)
	cookie := loginCookie(t, database)

	rec := do(router, postForm("/report", url.Values{
		"Type":        {"Found"},
		"ItemName":    {"Blue Umbrella"},
		"Location":    {"Main Hall"},
		"Description": {"Folding, with a wooden handle"},
		"Name":        {"Jane"},
	}), cookie)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d: %s", rec.Code, rec.Body.String())
	}
	loc := rec.Header().Get("Location")
	if !strings.HasPrefix(loc, "/items/") {
		t.Fatalf("expected redirect to detail page, got %q", loc)
	}

	items, _ := store.ListItems(context.Background(), database)
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].Status != model.ItemStatusFound || items[0].ReporterID == nil {
		t.Errorf("unexpected stored item: %+v", items[0])
	}

	rec = do(router, httptest.NewRequest("GET", loc, nil), cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for detail, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"Blue Umbrella", "Main Hall", "Folding, with a wooden handle", "Jane"} {
		if !strings.Contains(body, want) {
			t.Errorf("detail page missing %q", want)
		}
	}

	rec = do(router, httptest.NewRequest("GET", "/found?q=umbrella", nil), cookie)
	if !strings.Contains(rec.Body.String(), "Blue Umbrella") {
		t.Error("expected search on item name to match")
	}

	rec = do(router, httptest.NewRequest("GET", "/found?q=wooden", nil), cookie)
	if strings.Contains(rec.Body.String(), "Blue Umbrella") {
		t.Error("description must not be searched")
	}
	if !strings.Contains(rec.Body.String(), "No found items at the moment.") {
		t.Error("expected found empty-state message")
	}

	rec = do(router, httptest.NewRequest("GET", "/lost", nil), cookie)
	if strings.Contains(rec.Body.String(), "Blue Umbrella") {
		t.Error("found item listed on lost page")
	}
	if !strings.Contains(rec.Body.String(), "No lost items found.") {
		t.Error("expected lost empty-state message")
	}
}

func TestReportMissingLocation(t *testing.T) {
	router, database := setupTestRouter(t)
	cookie := loginCookie(t, database)

	rec := do(router, postForm("/report", url.Values{"Type": {"lost"}, "ItemName": {"Scarf"}}), cookie)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "location") {
		t.Error("expected location error on page")
	}
	if !strings.Contains(rec.Body.String(), `value="Scarf"`) {
		t.Error("expected form values to be kept")
	}

	items, _ := store.ListItems(context.Background(), database)
	if len(items) != 0 {
		t.Errorf("expected nothing persisted, got %d", len(items))
	}
}

func TestReportWithPhoto(t *testing.T) {
	router, database := setupTestRouter(t)
	cookie := loginCookie(t, database)

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.RGBA{200, 0, 0, 255})
		}
	}
	var pngBuf bytes.Buffer
	png.Encode(&pngBuf, img)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	mw.WriteField("Type", "lost")
	mw.WriteField("ItemName", "Red Hat")
	mw.WriteField("Location", "Park")
	fw, _ := mw.CreateFormFile("photo", "hat.png")
	fw.Write(pngBuf.Bytes())
	mw.Close()

	req := httptest.NewRequest("POST", "/report", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := do(router, req, cookie)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d: %s", rec.Code, rec.Body.String())
	}

	items, _ := store.ListItems(context.Background(), database)
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if !strings.HasPrefix(items[0].Image, store.ImagePath) {
		t.Errorf("expected image reference, got %q", items[0].Image)
	}
}

func TestLogoutRevokesCookie(t *testing.T) {
	router, database := setupTestRouter(t)
	cookie := loginCookie(t, database)

	rec := do(router, httptest.NewRequest("POST", "/logout", nil), cookie)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}

	rec = do(router, httptest.NewRequest("GET", "/", nil), cookie)
	if rec.Code != http.StatusSeeOther {
		t.Errorf("expected revoked cookie to be rejected, got %d", rec.Code)
	}
}

func TestItemDetailNotFound(t *testing.T) {
	router, database := setupTestRouter(t)
	cookie := loginCookie(t, database)

	rec := do(router, httptest.NewRequest("GET", "/items/missing", nil), cookie)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}
