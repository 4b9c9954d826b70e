package dto

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/jsamuelsen/proverb-service/internal/domain"
)

// ErrInvalidCursor is returned when cursor decoding fails.
var ErrInvalidCursor = errors.New("invalid cursor")

// ListQuery holds the optional listing parameters of GET /api/proverbs.
type ListQuery struct {
	// Limit is the maximum number of items to return (1-100). Zero returns all.
	Limit int `form:"limit" json:"limit" validate:"omitempty,gte=1,lte=100"`

	// Cursor is an opaque value from a previous response's X-Next-Cursor.
	Cursor string `form:"cursor" json:"cursor"`

	// Fields is a comma-separated projection, e.g. "originalText,country".
	Fields string `form:"fields" json:"fields"`
}

// Options converts the query into domain listing options.
func (q *ListQuery) Options() (domain.ListOptions, error) {
	opts := domain.ListOptions{Limit: q.Limit}

	if q.Cursor != "" {
		after, err := DecodeCursor(q.Cursor)
		if err != nil {
			return domain.ListOptions{}, domain.NewValidationError("cursor", "is not valid")
		}

		opts.After = after
	}

	opts.Fields = ParseFields(q.Fields)

	return opts, nil
}

// ParseFields splits a comma-separated field list. The id field is always
// included so projected records stay addressable.
func ParseFields(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	fields := []string{"id"}

	for _, f := range strings.Split(raw, ",") {
		f = strings.TrimSpace(f)
		if f == "" || f == "id" {
			continue
		}

		fields = append(fields, f)
	}

	return fields
}

// cursorData is the JSON payload of a cursor.
type cursorData struct {
	CreatedAt string `json:"t"`
	ID        string `json:"id"`
}

// EncodeCursor encodes a listing position to an opaque string.
func EncodeCursor(c *domain.ListCursor) string {
	if c == nil {
		return ""
	}

	jsonBytes, err := json.Marshal(cursorData{
		CreatedAt: c.CreatedAt.UTC().Format(time.RFC3339Nano),
		ID:        c.ID,
	})
	if err != nil {
		return ""
	}

	return base64.RawURLEncoding.EncodeToString(jsonBytes)
}

// DecodeCursor reverses EncodeCursor.
func DecodeCursor(encoded string) (*domain.ListCursor, error) {
	jsonBytes, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, ErrInvalidCursor
	}

	var data cursorData

	if err := json.Unmarshal(jsonBytes, &data); err != nil {
		return nil, ErrInvalidCursor
	}

	createdAt, err := time.Parse(time.RFC3339Nano, data.CreatedAt)
	if err != nil || data.ID == "" {
		return nil, ErrInvalidCursor
	}

	return &domain.ListCursor{CreatedAt: createdAt, ID: data.ID}, nil
}
