package web

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/erazemk/najdeno/internal/api"
	"github.com/erazemk/najdeno/internal/imaging"
	"github.com/erazemk/najdeno/internal/listing"
	"github.com/erazemk/najdeno/internal/model"
	"github.com/erazemk/najdeno/internal/normalize"
	"github.com/erazemk/najdeno/internal/store"
)

// reportFields are the form fields the report page posts, named in the
// legacy client vocabulary.
var reportFields = []string{"Type", "Name", "ItemName", "Description", "Location", "ContactInformation"}

type reportPage struct {
	PageData
	Form map[string]string
}

func emptyReportForm() map[string]string {
	form := make(map[string]string, len(reportFields))
	for _, k := range reportFields {
		form[k] = ""
	}
	form["Type"] = model.ItemStatusLost
	return form
}

// ReportPage handles GET /.
func (s *Server) ReportPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "report.html", &reportPage{
		PageData: PageData{Title: "Report an item", User: GetWebClaims(r.Context()), Active: "report"},
		Form:     emptyReportForm(),
	})
}

// ReportSubmit handles POST /report. The photo is optional.
func (s *Server) ReportSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	page := &reportPage{
		PageData: PageData{Title: "Report an item", User: claims, Active: "report"},
		Form:     emptyReportForm(),
	}
	fail := func(status int, msg string) {
		page.Error = msg
		s.Templates.RenderStatus(w, status, "report.html", page)
	}

	r.Body = http.MaxBytesReader(w, r.Body, imaging.MaxUploadSize+1<<20)
	if err := r.ParseMultipartForm(imaging.MaxUploadSize); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		fail(http.StatusBadRequest, "The photo is too large.")
		return
	}

	body := map[string]any{}
	for _, k := range reportFields {
		v := strings.TrimSpace(r.FormValue(k))
		page.Form[k] = v
		if v != "" {
			body[k] = v
		}
	}
	var userID string
	if claims != nil {
		userID = claims.UserID
		body["userId"] = userID
	}

	file, _, err := r.FormFile("photo")
	switch {
	case err == nil:
		defer file.Close()
		ref, err := api.SavePhoto(r.Context(), s.DB, file)
		if errors.Is(err, imaging.ErrUnsupportedFormat) || errors.Is(err, imaging.ErrTooLarge) {
			fail(http.StatusBadRequest, "Photos must be JPEG or PNG images up to 10 MB.")
			return
		}
		if err != nil {
			slog.Error("failed to save photo", "error", err)
			fail(http.StatusInternalServerError, "Failed to save the photo.")
			return
		}
		body["image"] = ref
	case !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart):
		fail(http.StatusBadRequest, "Invalid photo upload.")
		return
	}

	item, err := store.CreateItem(r.Context(), s.DB, normalize.Inbound(body))
	var verr *store.ValidationError
	if errors.As(err, &verr) {
		fail(http.StatusBadRequest, "Please check the "+verr.Field+" field: "+verr.Message+".")
		return
	}
	if err != nil {
		slog.Error("failed to create item", "error", err)
		fail(http.StatusInternalServerError, "Failed to report the item. Please try again.")
		return
	}

	slog.Info("item reported", "id", item.ID, "status", item.Status, "name", item.Name, "user", userID)
	http.Redirect(w, r, "/items/"+item.ID, http.StatusSeeOther)
}

type listPage struct {
	PageData
	Kind  string
	Query string
	Items []model.Listing
	Empty string
}

// ListPage returns the handler for GET /lost and GET /found. The q query
// parameter searches item names and locations.
func (s *Server) ListPage(kind string) http.HandlerFunc {
	title := "Lost items"
	if kind == model.ItemStatusFound {
		title = "Found items"
	}

	return func(w http.ResponseWriter, r *http.Request) {
		page := &listPage{
			PageData: PageData{Title: title, User: GetWebClaims(r.Context()), Active: kind},
			Kind:     kind,
			Query:    strings.TrimSpace(r.URL.Query().Get("q")),
		}

		items, err := store.ListItems(r.Context(), s.DB)
		if err != nil {
			slog.Error("failed to list items", "error", err)
			page.Empty = listing.LoadFailedMessage
			s.Templates.Render(w, "items.html", page)
			return
		}

		page.Items = listing.Search(normalize.OutboundAll(items), kind, page.Query)
		if len(page.Items) == 0 {
			page.Empty = listing.EmptyMessage(kind)
		}
		s.Templates.Render(w, "items.html", page)
	}
}

// ItemDetailPage handles GET /items/{id}.
func (s *Server) ItemDetailPage(w http.ResponseWriter, r *http.Request) {
	item, err := store.GetItem(r.Context(), s.DB, r.PathValue("id"))
	if err != nil {
		slog.Error("failed to get item", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if item == nil {
		http.Error(w, "item not found", http.StatusNotFound)
		return
	}

	s.Templates.Render(w, "item_detail.html", &struct {
		PageData
		Item     model.Listing
		Category string
	}{
		PageData: PageData{Title: item.Name, User: GetWebClaims(r.Context()), Active: item.Status},
		Item:     normalize.Outbound(*item),
		Category: item.Category,
	})
}
