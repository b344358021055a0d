package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

// ImagePath is the URL prefix under which stored photos are served. Items
// reference photos by ImageRef.
const ImagePath = "/api/images/"

// Image is a stored item photo.
type Image struct {
	ID     string
	Data   []byte
	MIME   string
	Width  int
	Height int
}

// ImageRef returns the opaque reference an item stores for an image ID.
func ImageRef(id string) string {
	return ImagePath + id
}

// CreateImage stores a processed photo and returns its ID.
func CreateImage(ctx context.Context, db *sql.DB, data []byte, mime string, width, height int) (string, error) {
	id := uuid.NewString()
	_, err := db.ExecContext(ctx,
		`INSERT INTO images (id, data, mime, width, height) VALUES (?, ?, ?, ?, ?)`,
		id, data, mime, width, height,
	)
	if err != nil {
		return "", persistence("storing image", err)
	}
	return id, nil
}

// GetImage returns a stored photo, or nil if there is none.
func GetImage(ctx context.Context, db *sql.DB, id string) (*Image, error) {
	img := &Image{}
	err := db.QueryRowContext(ctx,
		`SELECT id, data, mime, width, height FROM images WHERE id = ?`, id,
	).Scan(&img.ID, &img.Data, &img.MIME, &img.Width, &img.Height)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, persistence("getting image", err)
	}
	return img, nil
}
