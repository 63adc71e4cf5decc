package service

import (
	"math"
	"testing"

	"github.com/danielalasn/pivot/internal/database"
	"github.com/danielalasn/pivot/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory database, migrated and seeded
// like a fresh install.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql db: %v", err)
	}
	// a second connection would see an empty memory database
	sqlDB.SetMaxOpenConns(1)
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	if err := database.Seed(db); err != nil {
		t.Fatalf("seed test db: %v", err)
	}
	return db
}

func seedAccount(t *testing.T, db *gorm.DB, acc models.Account) *models.Account {
	t.Helper()
	if acc.BankName == "" {
		acc.BankName = "-"
	}
	if err := db.Create(&acc).Error; err != nil {
		t.Fatalf("seed account %s: %v", acc.Name, err)
	}
	return &acc
}

func accountBalance(t *testing.T, db *gorm.DB, id uint) float64 {
	t.Helper()
	var acc models.Account
	if err := db.First(&acc, id).Error; err != nil {
		t.Fatalf("load account %d: %v", id, err)
	}
	return acc.CurrentBalance
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}
