package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Base holds the columns shared by every MySQL table. IDs are uuid strings.
type Base struct {
	ID        string `gorm:"primaryKey;size:64"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (b Base) PrimaryKey() string {
	return b.ID
}

// Array stores a slice as a JSON text column. A NULL column scans to nil and
// a nil slice is written as "[]".
type Array[T any] []T

func (a *Array[T]) Scan(src any) error {
	var raw []byte
	switch t := src.(type) {
	case nil:
		*a = nil
		return nil
	case string:
		raw = []byte(t)
	case []byte:
		raw = t
	default:
		return fmt.Errorf("cannot scan %T into a json array", src)
	}

	return json.Unmarshal(raw, a)
}

func (a Array[T]) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}

	b, err := json.Marshal([]T(a))
	return string(b), err
}
