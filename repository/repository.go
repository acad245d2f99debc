// Package repository holds the gorm backed persistence for every record kind.
package repository

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
	ErrStaleCart = errors.New("cart was modified concurrently")
)

// translate needs gorm.Config.TranslateError so unique violations arrive as ErrDuplicatedKey
func translate(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	}
	return err
}
