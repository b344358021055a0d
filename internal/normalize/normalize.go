// Package normalize maps item reports between the legacy client vocabulary
// (ItemName, Type, Location, ...) and the canonical stored form.
package normalize

import (
	"strconv"
	"strings"

	"github.com/erazemk/najdeno/internal/model"
)

// Logical item fields a creation request can carry.
const (
	FieldName               = "name"
	FieldDescription        = "description"
	FieldCategory           = "category"
	FieldLocation           = "location"
	FieldImage              = "image"
	FieldStatus             = "status"
	FieldReporterID         = "reporterId"
	FieldReporterName       = "reporterName"
	FieldContactInformation = "contactInformation"
)

// DefaultItemName is stored when a request carries no name-family field.
const DefaultItemName = "Unnamed Item"

// Rule describes how one logical field is read from a request body.
// Aliases are tried in order and the first non-empty value wins. When none
// match, Default is used unless Optional is set, in which case the field is
// left unset.
type Rule struct {
	Field    string
	Aliases  []string
	Default  string
	Optional bool
	Lower    bool
}

// Rules is the complete alias policy for item creation. Name is read twice
// on purpose: as the last fallback for the item name and as the reporter's
// name.
var Rules = []Rule{
	{Field: FieldName, Aliases: []string{"ItemName", "name", "Name"}, Default: DefaultItemName},
	{Field: FieldDescription, Aliases: []string{"Description", "description"}},
	{Field: FieldCategory, Aliases: []string{"Category", "category"}, Default: model.DefaultCategory},
	{Field: FieldLocation, Aliases: []string{"Location", "location"}},
	{Field: FieldImage, Aliases: []string{"image"}},
	{Field: FieldStatus, Aliases: []string{"Type", "type", "status"}, Default: model.ItemStatusLost, Lower: true},
	{Field: FieldReporterID, Aliases: []string{"userId", "userID", "user"}, Optional: true},
	{Field: FieldReporterName, Aliases: []string{"Name"}, Optional: true},
	{Field: FieldContactInformation, Aliases: []string{"ContactInformation"}, Optional: true},
}

// Resolve applies the rule to body. The boolean is false only for optional
// fields that no alias supplied.
func (r Rule) Resolve(body map[string]any) (string, bool) {
	for _, alias := range r.Aliases {
		if v, ok := text(body[alias]); ok {
			if r.Lower {
				v = strings.ToLower(v)
			}
			return v, true
		}
	}
	if r.Optional {
		return "", false
	}
	return r.Default, true
}

// Inbound builds an item draft from an arbitrarily shaped request body.
func Inbound(body map[string]any) model.ItemDraft {
	var d model.ItemDraft
	for _, r := range Rules {
		v, ok := r.Resolve(body)
		if !ok {
			continue
		}
		switch r.Field {
		case FieldName:
			d.Name = v
		case FieldDescription:
			d.Description = v
		case FieldCategory:
			d.Category = v
		case FieldLocation:
			d.Location = v
		case FieldImage:
			d.Image = v
		case FieldStatus:
			d.Status = v
		case FieldReporterID:
			d.ReporterID = &v
		case FieldReporterName:
			d.ReporterName = &v
		case FieldContactInformation:
			d.ContactInformation = &v
		}
	}
	return d
}

// text converts a decoded JSON value to the string a report field holds.
// Empty strings, null, false and zero count as missing. Objects and arrays
// are never accepted as field values.
func text(v any) (string, bool) {
	switch v := v.(type) {
	case string:
		return v, v != ""
	case float64:
		if v == 0 {
			return "", false
		}
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case bool:
		if !v {
			return "", false
		}
		return "true", true
	default:
		return "", false
	}
}

// Outbound maps a stored item into the display vocabulary.
func Outbound(item model.Item) model.Listing {
	return model.Listing{
		ID:                 item.ID,
		Type:               item.Status,
		ItemName:           item.Name,
		Name:               deref(item.ReporterName),
		Description:        item.Description,
		Location:           item.Location,
		ContactInformation: deref(item.ContactInformation),
		Date:               item.CreatedAt,
		Image:              item.Image,
	}
}

// OutboundAll maps items in order. The result is never nil so it encodes
// as an empty JSON array.
func OutboundAll(items []model.Item) []model.Listing {
	out := make([]model.Listing, 0, len(items))
	for _, item := range items {
		out = append(out, Outbound(item))
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
