package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/danielalasn/pivot/internal/models"

	"gorm.io/gorm"
)

// payTolerance absorbs float drift on partial payments: anything at or
// below it counts as fully settled.
const payTolerance = 0.01

// IOUService manages informal debts and receivables and their partial
// payments, keeping the paired account movement in the same scope.
type IOUService struct {
	DB *gorm.DB
}

func NewIOUService(db *gorm.DB) *IOUService {
	return &IOUService{DB: db}
}

// IOUInput carries the caller-editable fields of a new IOU.
type IOUInput struct {
	Name        string  `json:"name"`
	Amount      float64 `json:"amount"`
	Type        string  `json:"type"`
	DueDate     string  `json:"due_date"`
	PersonName  string  `json:"person_name"`
	Description string  `json:"description"`
}

func (in *IOUInput) validate() error {
	in.Name = strings.TrimSpace(in.Name)
	switch {
	case in.Name == "":
		return Validationf("name is required")
	case in.Amount <= 0:
		return Validationf("amount must be positive, got %.2f", in.Amount)
	case in.Type != models.IOUReceivable && in.Type != models.IOUPayable:
		return Validationf("type must be Receivable or Payable, got %q", in.Type)
	case in.DueDate != "" && !validDate(in.DueDate):
		return Validationf("due date must be YYYY-MM-DD, got %q", in.DueDate)
	}
	return nil
}

// Add creates a pending IOU with the full amount outstanding.
func (s *IOUService) Add(in IOUInput) (*models.IOU, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	iou := models.IOU{
		Name:          in.Name,
		Amount:        in.Amount,
		Type:          in.Type,
		CurrentAmount: in.Amount,
		DateCreated:   dayString(time.Now()),
		DueDate:       in.DueDate,
		Status:        models.IOUPending,
		PersonName:    in.PersonName,
		Description:   in.Description,
	}
	if err := s.DB.Create(&iou).Error; err != nil {
		return nil, storagef(err)
	}
	return &iou, nil
}

// Pay registers a partial or full payment. When an account is given
// the matching cash movement is booked on it: collecting a receivable
// credits the account, settling a payable debits it. The IOU flips to
// Paid exactly when the remaining amount reaches zero.
func (s *IOUService) Pay(id uint, amount float64, accountID *uint) (*models.IOU, error) {
	if amount <= 0 {
		return nil, Validationf("payment must be positive, got %.2f", amount)
	}
	var iou models.IOU
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&iou, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFoundf("iou %d does not exist", id)
			}
			return storagef(err)
		}
		if iou.Status == models.IOUPaid {
			return Validationf("%q is already paid", iou.Name)
		}
		if amount > iou.CurrentAmount+payTolerance {
			return Validationf("payment exceeds outstanding amount ($%.2f)", iou.CurrentAmount)
		}

		iou.CurrentAmount -= amount
		if iou.CurrentAmount <= payTolerance {
			iou.CurrentAmount = 0
			iou.Status = models.IOUPaid
		}
		if err := tx.Save(&iou).Error; err != nil {
			return storagef(err)
		}

		if accountID != nil {
			kind := models.TxExpense
			if iou.Type == models.IOUReceivable {
				kind = models.TxIncome
			}
			t := models.Transaction{
				Date:      dayString(time.Now()),
				Name:      fmt.Sprintf("Abono IOU: %s", iou.Name),
				Amount:    amount,
				Category:  "Deudas/Cobros",
				Kind:      kind,
				AccountID: *accountID,
			}
			if err := tx.Create(&t).Error; err != nil {
				return storagef(err)
			}
			if err := applyBalance(tx, *accountID, amount, kind, false); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &iou, nil
}

// IOUUpdate carries a full edit of an IOU, including status and the
// outstanding amount. Contradictory states are rejected: Paid requires
// a zero remainder, Pending a positive one, and the remainder can
// never exceed the original amount.
type IOUUpdate struct {
	IOUInput
	CurrentAmount float64 `json:"current_amount"`
	Status        string  `json:"status"`
}

// Update rewrites an IOU. Money already moved by past payments is not
// reconciled here; the edit only reshapes the recorded state.
func (s *IOUService) Update(id uint, in IOUUpdate) (*models.IOU, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	switch {
	case in.Status != models.IOUPending && in.Status != models.IOUPaid:
		return nil, Validationf("status must be Pending or Paid, got %q", in.Status)
	case in.CurrentAmount < 0:
		return nil, Validationf("outstanding amount cannot be negative")
	case in.CurrentAmount > in.Amount+payTolerance:
		return nil, Validationf("outstanding amount ($%.2f) cannot exceed the original ($%.2f)", in.CurrentAmount, in.Amount)
	case in.Status == models.IOUPaid && in.CurrentAmount > payTolerance:
		return nil, Validationf("a paid IOU cannot keep an outstanding amount")
	case in.Status == models.IOUPending && in.CurrentAmount <= payTolerance:
		return nil, Validationf("a pending IOU needs a positive outstanding amount")
	}

	var iou models.IOU
	if err := s.DB.First(&iou, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundf("iou %d does not exist", id)
		}
		return nil, storagef(err)
	}
	iou.Name = in.Name
	iou.Amount = in.Amount
	iou.Type = in.Type
	iou.DueDate = in.DueDate
	iou.PersonName = in.PersonName
	iou.Description = in.Description
	iou.CurrentAmount = in.CurrentAmount
	iou.Status = in.Status
	if iou.Status == models.IOUPaid {
		iou.CurrentAmount = 0
	}
	if err := s.DB.Save(&iou).Error; err != nil {
		return nil, storagef(err)
	}
	return &iou, nil
}

// Delete removes the IOU without touching balances: past payments
// already moved money through their paired transactions.
func (s *IOUService) Delete(id uint) error {
	res := s.DB.Delete(&models.IOU{}, id)
	if res.Error != nil {
		return storagef(res.Error)
	}
	if res.RowsAffected == 0 {
		return NotFoundf("iou %d does not exist", id)
	}
	return nil
}

// ByID loads one IOU.
func (s *IOUService) ByID(id uint) (*models.IOU, error) {
	var iou models.IOU
	if err := s.DB.First(&iou, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundf("iou %d does not exist", id)
		}
		return nil, storagef(err)
	}
	return &iou, nil
}

// ListPending returns open IOUs, receivables first, newest first.
func (s *IOUService) ListPending() ([]models.IOU, error) {
	var list []models.IOU
	err := s.DB.
		Where("status = ? AND current_amount > 0", models.IOUPending).
		Order("type ASC, date_created DESC, id DESC").
		Find(&list).Error
	if err != nil {
		return nil, storagef(err)
	}
	return list, nil
}
