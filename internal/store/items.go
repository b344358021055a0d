package store

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/erazemk/najdeno/internal/model"
)

// now is the clock used for created_at. Millisecond precision.
var now = func() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

const itemColumns = `id, name, description, reporter_name, contact_information,
	category, location, image, status, reporter_id, created_at`

// ValidateItemDraft checks the fields the items table requires.
func ValidateItemDraft(d model.ItemDraft) error {
	if strings.TrimSpace(d.Name) == "" {
		return &ValidationError{Field: "name", Message: "is required"}
	}
	if strings.TrimSpace(d.Location) == "" {
		return &ValidationError{Field: "location", Message: "is required"}
	}
	if d.Status == "" {
		return &ValidationError{Field: "status", Message: "is required"}
	}
	if !model.ValidItemStatus(d.Status) {
		return &ValidationError{Field: "status", Message: "`" + d.Status + "` is not a valid status, expected lost or found"}
	}
	return nil
}

// CreateItem validates and stores a new item, assigning its ID and creation
// time. It returns the stored record.
func CreateItem(ctx context.Context, db *sql.DB, d model.ItemDraft) (*model.Item, error) {
	if err := ValidateItemDraft(d); err != nil {
		return nil, err
	}

	category := d.Category
	if category == "" {
		category = model.DefaultCategory
	}

	item := &model.Item{
		ID:                 uuid.NewString(),
		Name:               d.Name,
		Description:        d.Description,
		ReporterName:       d.ReporterName,
		ContactInformation: d.ContactInformation,
		Category:           category,
		Location:           d.Location,
		Image:              d.Image,
		Status:             d.Status,
		ReporterID:         d.ReporterID,
		CreatedAt:          now(),
	}

	_, err := db.ExecContext(ctx,
		`INSERT INTO items (`+itemColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.Name, item.Description, item.ReporterName, item.ContactInformation,
		item.Category, item.Location, item.Image, item.Status, item.ReporterID, item.CreatedAt,
	)
	if err != nil {
		return nil, persistence("creating item", err)
	}

	return item, nil
}

// GetItem returns an item by ID, or nil if there is none.
func GetItem(ctx context.Context, db *sql.DB, id string) (*model.Item, error) {
	row := db.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM items WHERE id = ?`, id)
	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, persistence("getting item", err)
	}
	return item, nil
}

// ListItems returns every item, newest first. Items created in the same
// millisecond keep insertion order, newest first.
func ListItems(ctx context.Context, db *sql.DB) ([]model.Item, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM items ORDER BY created_at DESC, rowid DESC`,
	)
	if err != nil {
		return nil, persistence("listing items", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, persistence("scanning item", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, persistence("listing items", err)
	}
	return items, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(s scanner) (*model.Item, error) {
	item := &model.Item{}
	var reporterName, contact, reporterID sql.NullString
	err := s.Scan(&item.ID, &item.Name, &item.Description, &reporterName, &contact,
		&item.Category, &item.Location, &item.Image, &item.Status, &reporterID, &item.CreatedAt)
	if err != nil {
		return nil, err
	}
	item.ReporterName = nullable(reporterName)
	item.ContactInformation = nullable(contact)
	item.ReporterID = nullable(reporterID)
	item.CreatedAt = item.CreatedAt.UTC()
	return item, nil
}

func nullable(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}
