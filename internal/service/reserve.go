package service

import (
	"github.com/danielalasn/pivot/internal/models"

	"gorm.io/gorm"
)

// ReserveService exposes the singleton abono reserve: a non-negative
// pool netted against credit-card exigible debt.
type ReserveService struct {
	DB *gorm.DB
}

func NewReserveService(db *gorm.DB) *ReserveService {
	return &ReserveService{DB: db}
}

// Get returns the reserve balance; a missing row reads as zero.
func (s *ReserveService) Get() (float64, error) {
	var reserve models.AbonoReserve
	if err := s.DB.First(&reserve, 1).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, nil
		}
		return 0, storagef(err)
	}
	return reserve.Balance, nil
}

// Set replaces the reserve balance.
func (s *ReserveService) Set(amount float64) error {
	if amount < 0 {
		return Validationf("reserve cannot be negative, got %.2f", amount)
	}
	reserve := models.AbonoReserve{ID: 1, Balance: amount}
	return storagef(s.DB.Save(&reserve).Error)
}
