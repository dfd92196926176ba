// internal/models/common.go
package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"

	"github.com/mittirang/mittirang-backend/internal/catalog"
)

// Base model with common fields. Rows are hard deleted.
type BaseModel struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// JSONB type for PostgreSQL, plain text elsewhere
type JSONB map[string]interface{}

func (JSONB) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "jsonb"
	}
	return "text"
}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	b, err := json.Marshal(j)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (j *JSONB) Scan(value interface{}) error {
	raw, ok := rawBytes(value)
	if !ok {
		*j = nil
		return nil
	}
	return json.Unmarshal(raw, j)
}

// ImageList is an ordered list of image references. PostgreSQL stores it
// as text[], other dialects as the same array literal in a text column.
type ImageList []string

func (ImageList) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "text[]"
	}
	return "text"
}

func (l ImageList) Value() (driver.Value, error) {
	if l == nil {
		l = ImageList{}
	}
	return pq.StringArray(l).Value()
}

// Scan accepts an array literal or a JSON array and never fails: unreadable
// values become an empty list.
func (l *ImageList) Scan(value interface{}) error {
	*l = ImageList(catalog.NormalizeImages(decodeList(value)))
	return nil
}

func (l ImageList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(l))
}

// SizeList is the canonical, ascending and deduplicated size set.
type SizeList []float64

func (SizeList) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "double precision[]"
	}
	return "text"
}

func (s SizeList) Value() (driver.Value, error) {
	return pq.Float64Array(catalog.NormalizeSizes([]float64(s))).Value()
}

// Scan re-normalizes whatever is stored, so legacy rows read back canonical.
func (s *SizeList) Scan(value interface{}) error {
	*s = SizeList(catalog.NormalizeSizes(decodeList(value)))
	return nil
}

func (s SizeList) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]float64(s))
}

// decodeList reads a stored list column into loosely typed elements for the
// catalog normalizers. Anything unreadable yields nil.
func decodeList(value interface{}) any {
	raw, ok := rawBytes(value)
	if !ok {
		return nil
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil
	}

	switch raw[0] {
	case '[':
		var items []any
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil
		}
		return items
	case '{':
		var items pq.StringArray
		if err := items.Scan(raw); err != nil {
			return nil
		}
		return []string(items)
	}
	return nil
}

func rawBytes(value interface{}) ([]byte, bool) {
	switch v := value.(type) {
	case []byte:
		return v, true
	case string:
		return []byte(v), true
	}
	return nil, false
}
