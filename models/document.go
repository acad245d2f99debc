package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// The types below are stored as JSON text columns. They implement
// driver.Valuer so that map based gorm Updates serialize them as well.

type StringList []string

type CartLine struct {
	FoodID string       `json:"foodId"`
	Unit   int          `json:"unit"`
	Food   FoodSnapshot `json:"food"`
}

type CartLines []CartLine

type OrderItem struct {
	Food FoodSnapshot `json:"food"`
	Unit int          `json:"unit"`
}

type OrderItems []OrderItem

func (StringList) GormDataType() string { return "text" }
func (CartLines) GormDataType() string  { return "text" }
func (OrderItems) GormDataType() string { return "text" }

func (l StringList) Value() (driver.Value, error) { return marshalDocument(l, "[]") }
func (l CartLines) Value() (driver.Value, error)  { return marshalDocument(l, "[]") }
func (l OrderItems) Value() (driver.Value, error) { return marshalDocument(l, "[]") }

func (l *StringList) Scan(src any) error { return scanDocument(src, l) }
func (l *CartLines) Scan(src any) error  { return scanDocument(src, l) }
func (l *OrderItems) Scan(src any) error { return scanDocument(src, l) }

func marshalDocument[T any](v []T, empty string) (driver.Value, error) {
	if len(v) == 0 {
		return empty, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func scanDocument(src any, dst any) error {
	var b []byte
	switch v := src.(type) {
	case nil:
		return nil
	case string:
		b = []byte(v)
	case []byte:
		b = v
	default:
		return fmt.Errorf("unsupported document column type %T", src)
	}
	if len(b) == 0 {
		return nil
	}
	return json.Unmarshal(b, dst)
}
