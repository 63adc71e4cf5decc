package database

import (
	"fmt"

	"github.com/danielalasn/pivot/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate runs database schema migrations for all models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Account{},
		&models.Transaction{},
		&models.Installment{},
		&models.IOU{},
		&models.Investment{},
		&models.InvestmentTransaction{},
		&models.PLAdjustment{},
		&models.AbonoReserve{},
		&models.Category{},
		&models.Subcategory{},
		&models.PriceCache{},
		&models.AuditLog{},
		&models.Backup{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// defaultCategories are created on an empty database so the first
// transaction form has something to offer.
var defaultCategories = []string{
	"Costos Fijos",
	"Libres (Guilt Free)",
	"Inversión",
	"Ahorro",
	"Deudas/Cobros",
	"Ingresos",
}

// Seed inserts the singleton abono reserve row and the default categories.
// Idempotent, runs at every startup.
func Seed(db *gorm.DB) error {
	var reserveCount int64
	if err := db.Model(&models.AbonoReserve{}).Count(&reserveCount).Error; err != nil {
		return fmt.Errorf("seed reserve: %w", err)
	}
	if reserveCount == 0 {
		if err := db.Create(&models.AbonoReserve{ID: 1, Balance: 0}).Error; err != nil {
			return fmt.Errorf("seed reserve: %w", err)
		}
	}

	var catCount int64
	if err := db.Model(&models.Category{}).Count(&catCount).Error; err != nil {
		return fmt.Errorf("seed categories: %w", err)
	}
	if catCount == 0 {
		for _, name := range defaultCategories {
			if err := db.Create(&models.Category{Name: name}).Error; err != nil {
				return fmt.Errorf("seed categories: %w", err)
			}
		}
	}
	return nil
}
