package database

import (
	"fmt"
	"os"
	"path/filepath"

	"comanda/internal/models"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres" // PostgreSQL dialect
	_ "github.com/jinzhu/gorm/dialects/sqlite"   // SQLite dialect
)

// Open connects to the configured database and migrates the schema.
// SQLite is the default; postgres is selected via the config driver.
func Open(driver, dsn string) (*gorm.DB, error) {
	if driver == "" {
		driver = "sqlite3"
	}
	if driver == "sqlite3" && dsn != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	db, err := gorm.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driver, err)
	}

	if err := Migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the tables used by the core.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.PendingQuestion{},
		&models.FAQ{},
	).Error; err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// Seed inserts the demo menu and default FAQ entries when the respective
// tables are empty. Safe to call on every start.
func Seed(db *gorm.DB, currency string) error {
	var n int
	if err := db.Model(&models.MenuItem{}).Count(&n).Error; err != nil {
		return fmt.Errorf("failed to count menu items: %w", err)
	}
	if n == 0 {
		seedMenu := []models.MenuItem{
			{Name: "Hamburguesa", Description: "Clásica con queso", Price: 5.50, Currency: currency},
			{Name: "Agua", Description: "Botella 500 ml", Price: 1.00, Currency: currency},
			{Name: "Postre", Description: "Brownie de chocolate", Price: 3.25, Currency: currency, SpecialNotes: "brownie, dulce"},
		}
		for i := range seedMenu {
			if err := db.Create(&seedMenu[i]).Error; err != nil {
				return fmt.Errorf("failed to seed menu: %w", err)
			}
		}
	}

	if err := db.Model(&models.FAQ{}).Count(&n).Error; err != nil {
		return fmt.Errorf("failed to count faqs: %w", err)
	}
	if n == 0 {
		seedFAQ := []models.FAQ{
			{Language: "es", Pattern: `horario|abren|cierran`, Answer: "Nuestro horario es de 11:00 a 22:00, todos los días."},
			{Language: "es", Pattern: `\bdelivery\b|domicilio`, Answer: "Hacemos delivery en un radio de 5 km. Costo según distancia."},
			{Language: "en", Pattern: `hours|open|close`, Answer: "We open 11:00 to 22:00, every day."},
			{Language: "en", Pattern: `delivery`, Answer: "We deliver within 5 km radius. Cost varies by distance."},
		}
		for i := range seedFAQ {
			if err := db.Create(&seedFAQ[i]).Error; err != nil {
				return fmt.Errorf("failed to seed faqs: %w", err)
			}
		}
	}
	return nil
}
