package menu

import (
	"fmt"

	"comanda/internal/models"

	"github.com/jinzhu/gorm"
)

// Catalog is the read-mostly store for menu items. Extraction and order
// creation always read through ListMenu so prices stay current.
type Catalog struct {
	db *gorm.DB
}

// NewCatalog creates a catalog backed by db.
func NewCatalog(db *gorm.DB) *Catalog {
	return &Catalog{db: db}
}

// ListMenu returns all menu items in insertion order.
func (c *Catalog) ListMenu() ([]models.MenuItem, error) {
	var items []models.MenuItem
	if err := c.db.Order("id ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list menu: %w", err)
	}
	return items, nil
}

// Add inserts or replaces an item by name.
func (c *Catalog) Add(item *models.MenuItem) error {
	if err := models.ValidateMenuItem(item); err != nil {
		return err
	}
	var existing models.MenuItem
	err := c.db.Where("name = ?", item.Name).First(&existing).Error
	switch {
	case err == nil:
		item.ID = existing.ID
		item.CreatedAt = existing.CreatedAt
		return c.db.Save(item).Error
	case gorm.IsRecordNotFoundError(err):
		return c.db.Create(item).Error
	default:
		return fmt.Errorf("failed to upsert menu item: %w", err)
	}
}

// Delete removes an item by name.
func (c *Catalog) Delete(name string) error {
	res := c.db.Where("name = ?", name).Delete(&models.MenuItem{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete menu item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("menu item %q not found", name)
	}
	return nil
}
