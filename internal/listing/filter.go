package listing

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/erazemk/najdeno/internal/model"
)

// LoadFailedMessage is shown in place of a listing that could not be fetched.
const LoadFailedMessage = "Unable to load items. Please try again later."

// EmptyMessage is shown when a page of the given kind has nothing to list.
func EmptyMessage(kind string) string {
	if kind == model.ItemStatusFound {
		return "No found items at the moment."
	}
	return "No lost items found."
}

// Filter keeps the items whose Type is exactly kind, in order.
func Filter(items []model.Listing, kind string) []model.Listing {
	out := make([]model.Listing, 0, len(items))
	for _, it := range items {
		if it.Type == kind {
			out = append(out, it)
		}
	}
	return out
}

// Search filters by kind and keeps items whose ItemName or Location contains
// term, ignoring case. Description and reporter name are not searched. An
// empty term matches everything of that kind.
func Search(items []model.Listing, kind, term string) []model.Listing {
	items = Filter(items, kind)
	term = strings.TrimSpace(term)
	if term == "" {
		return items
	}

	fold := cases.Fold()
	needle := fold.String(term)
	out := items[:0]
	for _, it := range items {
		if strings.Contains(fold.String(it.ItemName), needle) ||
			strings.Contains(fold.String(it.Location), needle) {
			out = append(out, it)
		}
	}
	return out
}
