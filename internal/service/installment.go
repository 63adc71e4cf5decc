package service

import (
	"errors"

	"github.com/danielalasn/pivot/internal/models"

	"gorm.io/gorm"
)

// InstallmentService manages credit-card installment plans. Plans
// never touch account balances: their debt is derived on read.
type InstallmentService struct {
	DB *gorm.DB
}

func NewInstallmentService(db *gorm.DB) *InstallmentService {
	return &InstallmentService{DB: db}
}

// InstallmentInput carries the caller-editable fields of a plan.
type InstallmentInput struct {
	AccountID    uint    `json:"account_id"`
	Name         string  `json:"name"`
	TotalAmount  float64 `json:"total_amount"`
	InterestRate float64 `json:"interest_rate"`
	TotalQuotas  int     `json:"total_quotas"`
	PaidQuotas   int     `json:"paid_quotas"`
	PaymentDay   int     `json:"payment_day"`
}

func (in *InstallmentInput) validate() error {
	switch {
	case in.Name == "":
		return Validationf("name is required")
	case in.TotalAmount <= 0:
		return Validationf("principal must be positive, got %.2f", in.TotalAmount)
	case in.InterestRate < 0:
		return Validationf("interest rate cannot be negative")
	case in.TotalQuotas <= 0:
		return Validationf("total quotas must be positive, got %d", in.TotalQuotas)
	case in.PaidQuotas < 0 || in.PaidQuotas > in.TotalQuotas:
		return Validationf("paid quotas must be between 0 and %d", in.TotalQuotas)
	case in.PaymentDay < 1 || in.PaymentDay > 31:
		return Validationf("payment day must be between 1 and 31")
	}
	return nil
}

// creditAccount loads the plan's account and checks it is a card.
func (s *InstallmentService) creditAccount(id uint) error {
	var acc models.Account
	if err := s.DB.First(&acc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NotFoundf("account %d does not exist", id)
		}
		return storagef(err)
	}
	if !acc.IsCredit() {
		return Validationf("installment plans require a Credit account, %q is %s", acc.Name, acc.Kind)
	}
	return nil
}

// Add creates a plan on a credit account.
func (s *InstallmentService) Add(in InstallmentInput) (*models.Installment, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if err := s.creditAccount(in.AccountID); err != nil {
		return nil, err
	}
	inst := models.Installment{
		AccountID:    in.AccountID,
		Name:         in.Name,
		TotalAmount:  in.TotalAmount,
		InterestRate: in.InterestRate,
		TotalQuotas:  in.TotalQuotas,
		PaidQuotas:   in.PaidQuotas,
		PaymentDay:   in.PaymentDay,
	}
	if err := s.DB.Create(&inst).Error; err != nil {
		return nil, storagef(err)
	}
	return &inst, nil
}

// Update rewrites the plan fields; the owning account cannot change.
func (s *InstallmentService) Update(id uint, in InstallmentInput) (*models.Installment, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var inst models.Installment
	if err := s.DB.First(&inst, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundf("installment %d does not exist", id)
		}
		return nil, storagef(err)
	}
	inst.Name = in.Name
	inst.TotalAmount = in.TotalAmount
	inst.InterestRate = in.InterestRate
	inst.TotalQuotas = in.TotalQuotas
	inst.PaidQuotas = in.PaidQuotas
	inst.PaymentDay = in.PaymentDay
	if err := s.DB.Save(&inst).Error; err != nil {
		return nil, storagef(err)
	}
	return &inst, nil
}

// Delete removes the plan; the card's running debt is independent.
func (s *InstallmentService) Delete(id uint) error {
	res := s.DB.Delete(&models.Installment{}, id)
	if res.Error != nil {
		return storagef(res.Error)
	}
	if res.RowsAffected == 0 {
		return NotFoundf("installment %d does not exist", id)
	}
	return nil
}

// InstallmentView is a plan with its derived amortization numbers.
type InstallmentView struct {
	models.Installment
	Quota             float64 `json:"quota"`
	PendingBalance    float64 `json:"pending_balance"`
	TotalWithInterest float64 `json:"total_with_interest"`
}

// ListForAccount returns the plans of one account with quota math.
func (s *InstallmentService) ListForAccount(accountID uint) ([]InstallmentView, error) {
	var plans []models.Installment
	if err := s.DB.Where("account_id = ?", accountID).Order("id ASC").Find(&plans).Error; err != nil {
		return nil, storagef(err)
	}
	views := make([]InstallmentView, 0, len(plans))
	for _, p := range plans {
		views = append(views, InstallmentView{
			Installment:       p,
			Quota:             Quota(p.TotalAmount, p.InterestRate, p.TotalQuotas),
			PendingBalance:    PlanPending(&p),
			TotalWithInterest: TotalWithInterest(p.TotalAmount, p.InterestRate, p.TotalQuotas),
		})
	}
	return views, nil
}
