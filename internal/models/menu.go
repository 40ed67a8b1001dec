package models

import (
	"fmt"

	"github.com/jinzhu/gorm"
)

// MenuItem represents a dish on the restaurant catalog. Names are unique and
// act as the canonical identity used by item extraction and order snapshots.
type MenuItem struct {
	gorm.Model
	Name         string `gorm:"unique_index" json:"name"`
	Description  string `json:"description"`
	Price        float64 `json:"price"`
	Currency     string  `json:"currency"`
	SpecialNotes string  `json:"special_notes"`
}

// ValidateMenuItem validates a menu item before it enters the catalog.
func ValidateMenuItem(item *MenuItem) error {
	if item.Name == "" {
		return fmt.Errorf("menu item name is required")
	}
	if item.Price < 0 {
		return fmt.Errorf("menu item price must not be negative")
	}
	return nil
}
