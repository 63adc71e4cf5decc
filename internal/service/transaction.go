package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/danielalasn/pivot/internal/models"

	"gorm.io/gorm"
)

// TransactionService owns the lifecycle of financial transactions.
// Every mutator applies the compensating balance delta on the target
// account in the same atomic scope as the row write.
type TransactionService struct {
	DB *gorm.DB
}

func NewTransactionService(db *gorm.DB) *TransactionService {
	return &TransactionService{DB: db}
}

// TransactionInput carries the caller-editable fields of a transaction.
type TransactionInput struct {
	Date        string  `json:"date"`
	Name        string  `json:"name"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Subcategory string  `json:"subcategory"`
	Kind        string  `json:"kind"`
	AccountID   uint    `json:"account_id"`
}

func (in *TransactionInput) validate() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.TrimSpace(in.Category)
	switch {
	case !validDate(in.Date):
		return Validationf("date must be YYYY-MM-DD, got %q", in.Date)
	case in.Name == "":
		return Validationf("name is required")
	case in.Amount <= 0:
		return Validationf("amount must be positive, got %.2f", in.Amount)
	case in.Category == "":
		return Validationf("category is required")
	case in.Kind != models.TxIncome && in.Kind != models.TxExpense:
		return Validationf("kind must be Income or Expense, got %q", in.Kind)
	case in.AccountID == 0:
		return Validationf("account is required")
	}
	return nil
}

// Add inserts the row and applies the balance delta on its account.
func (s *TransactionService) Add(in TransactionInput) (*models.Transaction, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	t := models.Transaction{
		Date:        in.Date,
		Name:        in.Name,
		Amount:      in.Amount,
		Category:    in.Category,
		Subcategory: in.Subcategory,
		Kind:        in.Kind,
		AccountID:   in.AccountID,
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := applyBalance(tx, t.AccountID, t.Amount, t.Kind, false); err != nil {
			return err
		}
		return storagef(tx.Create(&t).Error)
	})
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Update reverses the prior delta on the old account, writes the new
// row and applies the new delta; old and new account may differ.
func (s *TransactionService) Update(id uint, in TransactionInput) (*models.Transaction, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var t models.Transaction
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&t, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFoundf("transaction %d does not exist", id)
			}
			return storagef(err)
		}
		if err := applyBalance(tx, t.AccountID, t.Amount, t.Kind, true); err != nil {
			return err
		}
		t.Date = in.Date
		t.Name = in.Name
		t.Amount = in.Amount
		t.Category = in.Category
		t.Subcategory = in.Subcategory
		t.Kind = in.Kind
		t.AccountID = in.AccountID
		if err := tx.Save(&t).Error; err != nil {
			return storagef(err)
		}
		return applyBalance(tx, t.AccountID, t.Amount, t.Kind, false)
	})
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Delete reverses the delta on the owning account and removes the row.
func (s *TransactionService) Delete(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var t models.Transaction
		if err := tx.First(&t, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFoundf("transaction %d does not exist", id)
			}
			return storagef(err)
		}
		if err := applyBalance(tx, t.AccountID, t.Amount, t.Kind, true); err != nil {
			return err
		}
		return storagef(tx.Delete(&t).Error)
	})
}

// ByID loads one transaction.
func (s *TransactionService) ByID(id uint) (*models.Transaction, error) {
	var t models.Transaction
	if err := s.DB.First(&t, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundf("transaction %d does not exist", id)
		}
		return nil, storagef(err)
	}
	return &t, nil
}

// All returns every transaction, newest first.
func (s *TransactionService) All() ([]models.Transaction, error) {
	var list []models.Transaction
	if err := s.DB.Order("date DESC, id DESC").Find(&list).Error; err != nil {
		return nil, storagef(err)
	}
	return list, nil
}

// AddTransfer books an internal transfer as two paired movements: an
// expense on the source account and an income on the destination, both
// in the Transferencia category. Both balances commit together.
func (s *TransactionService) AddTransfer(date, name string, amount float64, sourceID, destID uint) error {
	if !validDate(date) {
		return Validationf("date must be YYYY-MM-DD, got %q", date)
	}
	if amount <= 0 {
		return Validationf("amount must be positive, got %.2f", amount)
	}
	if sourceID == destID {
		return Validationf("source and destination accounts must differ")
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var src, dst models.Account
		if err := tx.First(&src, sourceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFoundf("source account %d does not exist", sourceID)
			}
			return storagef(err)
		}
		if err := tx.First(&dst, destID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFoundf("destination account %d does not exist", destID)
			}
			return storagef(err)
		}

		detail := ""
		if name != "" && name != "-" {
			detail = ": " + name
		}

		out := models.Transaction{
			Date:        date,
			Name:        fmt.Sprintf("Transferencia a %s%s", dst.Name, detail),
			Amount:      amount,
			Category:    "Transferencia",
			Subcategory: "Movimiento Interno",
			Kind:        models.TxExpense,
			AccountID:   sourceID,
		}
		if err := tx.Create(&out).Error; err != nil {
			return storagef(err)
		}
		if err := applyBalance(tx, sourceID, amount, models.TxExpense, false); err != nil {
			return err
		}

		in := models.Transaction{
			Date:        date,
			Name:        fmt.Sprintf("Transferencia desde %s%s", src.Name, detail),
			Amount:      amount,
			Category:    "Transferencia",
			Subcategory: "Movimiento Interno",
			Kind:        models.TxIncome,
			AccountID:   destID,
		}
		if err := tx.Create(&in).Error; err != nil {
			return storagef(err)
		}
		return applyBalance(tx, destID, amount, models.TxIncome, false)
	})
}

// Today returns today's storage date; split out so tests can pin time.
func Today() string { return dayString(time.Now()) }
