package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/MKhiriev/go-req-sync/models"
)

// toJSON encodes list-like values for TEXT columns. Nil slices are stored
// as an empty JSON array.
func toJSON[T any](v []T) (string, error) {
	if v == nil {
		return "[]", nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncodingColumn, err)
	}
	return string(b), nil
}

func fromJSON[T any](raw string) ([]T, error) {
	if raw == "" || raw == "null" {
		return nil, nil
	}
	var out []T
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodingColumn, err)
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}

func authToColumn(a *models.Auth) (any, error) {
	if a == nil {
		return nil, nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodingColumn, err)
	}
	return string(b), nil
}

func authFromColumn(raw sql.NullString) (*models.Auth, error) {
	if !raw.Valid || raw.String == "" {
		return nil, nil
	}
	var a models.Auth
	if err := json.Unmarshal([]byte(raw.String), &a); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodingColumn, err)
	}
	return &a, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
