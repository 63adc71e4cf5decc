package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/danielalasn/pivot/internal/models"

	"gorm.io/gorm"
)

// Account category groups used by list and reorder filters.
const (
	GroupCredit   = "Credit"
	GroupStandard = "Standard" // Debit and Cash
)

// AccountService manages accounts: CRUD, ordering and option lists.
type AccountService struct {
	DB *gorm.DB
}

func NewAccountService(db *gorm.DB) *AccountService {
	return &AccountService{DB: db}
}

// AccountInput carries the caller-editable fields of an account.
type AccountInput struct {
	Name            string  `json:"name"`
	Kind            string  `json:"kind"`
	Balance         float64 `json:"current_balance"`
	BankName        string  `json:"bank_name"`
	CreditLimit     float64 `json:"credit_limit"`
	PaymentDay      int     `json:"payment_day"`
	CutoffDay       int     `json:"cutoff_day"`
	InterestRate    float64 `json:"interest_rate"`
	DeferredBalance float64 `json:"deferred_balance"`
}

func (in *AccountInput) validate() error {
	in.Name = strings.TrimSpace(in.Name)
	in.BankName = strings.TrimSpace(in.BankName)
	if in.BankName == "" {
		in.BankName = "-"
	}
	switch {
	case in.Name == "":
		return Validationf("name is required")
	case in.Kind != models.AccountDebit && in.Kind != models.AccountCash && in.Kind != models.AccountCredit:
		return Validationf("kind must be Debit, Cash or Credit, got %q", in.Kind)
	case in.CreditLimit < 0:
		return Validationf("credit limit cannot be negative")
	case in.PaymentDay != 0 && (in.PaymentDay < 1 || in.PaymentDay > 31):
		return Validationf("payment day must be between 1 and 31")
	case in.CutoffDay != 0 && (in.CutoffDay < 1 || in.CutoffDay > 31):
		return Validationf("cutoff day must be between 1 and 31")
	}
	return nil
}

// Add creates the account at the end of the display order.
func (s *AccountService) Add(in AccountInput) (*models.Account, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	acc := models.Account{
		Name:            in.Name,
		Kind:            in.Kind,
		CurrentBalance:  in.Balance,
		BankName:        in.BankName,
		CreditLimit:     in.CreditLimit,
		PaymentDay:      in.PaymentDay,
		CutoffDay:       in.CutoffDay,
		InterestRate:    in.InterestRate,
		DeferredBalance: in.DeferredBalance,
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var maxOrder int
		row := tx.Model(&models.Account{}).Select("COALESCE(MAX(display_order), 0)").Row()
		if err := row.Scan(&maxOrder); err != nil {
			return storagef(err)
		}
		acc.DisplayOrder = maxOrder + 1
		return storagef(tx.Create(&acc).Error)
	})
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

// Update rewrites the editable fields, including a direct balance edit.
func (s *AccountService) Update(id uint, in AccountInput) (*models.Account, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var acc models.Account
	if err := s.DB.First(&acc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundf("account %d does not exist", id)
		}
		return nil, storagef(err)
	}
	acc.Name = in.Name
	acc.Kind = in.Kind
	acc.CurrentBalance = in.Balance
	acc.BankName = in.BankName
	acc.CreditLimit = in.CreditLimit
	acc.PaymentDay = in.PaymentDay
	acc.CutoffDay = in.CutoffDay
	acc.InterestRate = in.InterestRate
	acc.DeferredBalance = in.DeferredBalance
	if err := s.DB.Save(&acc).Error; err != nil {
		return nil, storagef(err)
	}
	return &acc, nil
}

// Delete removes the account and cascades to its transactions and
// installment plans. Balances of other accounts are untouched.
func (s *AccountService) Delete(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var acc models.Account
		if err := tx.First(&acc, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFoundf("account %d does not exist", id)
			}
			return storagef(err)
		}
		if err := tx.Where("account_id = ?", id).Delete(&models.Transaction{}).Error; err != nil {
			return storagef(err)
		}
		if err := tx.Where("account_id = ?", id).Delete(&models.Installment{}).Error; err != nil {
			return storagef(err)
		}
		return storagef(tx.Delete(&acc).Error)
	})
}

// AccountView is an account augmented with the derived installment
// debt, filled only for Credit accounts.
type AccountView struct {
	models.Account
	InstallmentsPendingTotal float64 `json:"installments_pending_total"`
}

// ListByCategory returns accounts in display order, filtered to Credit
// or to Debit/Cash, with Credit rows carrying their pending quota debt.
func (s *AccountService) ListByCategory(group string) ([]AccountView, error) {
	q := s.DB.Order("display_order ASC")
	if group == GroupCredit {
		q = q.Where("kind = ?", models.AccountCredit)
	} else {
		q = q.Where("kind <> ?", models.AccountCredit)
	}
	var accounts []models.Account
	if err := q.Find(&accounts).Error; err != nil {
		return nil, storagef(err)
	}

	views := make([]AccountView, 0, len(accounts))
	for _, acc := range accounts {
		view := AccountView{Account: acc}
		if acc.IsCredit() {
			var plans []models.Installment
			if err := s.DB.Where("account_id = ?", acc.ID).Find(&plans).Error; err != nil {
				return nil, storagef(err)
			}
			for i := range plans {
				view.InstallmentsPendingTotal += PlanPending(&plans[i])
			}
		}
		views = append(views, view)
	}
	return views, nil
}

// Reorder swaps the account's display order with its neighbor inside
// the same category group. When two neighbors share an order value the
// whole slice is reassigned from the current list index.
func (s *AccountService) Reorder(id uint, direction, group string) error {
	if direction != "up" && direction != "down" {
		return Validationf("direction must be up or down, got %q", direction)
	}
	list, err := s.ListByCategory(group)
	if err != nil {
		return err
	}
	idx := -1
	for i := range list {
		if list[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return NotFoundf("account %d not in %s group", id, group)
	}

	swap := -1
	if direction == "up" && idx > 0 {
		swap = idx - 1
	} else if direction == "down" && idx < len(list)-1 {
		swap = idx + 1
	}
	if swap < 0 {
		return nil // already at the edge
	}

	order1, order2 := list[idx].DisplayOrder, list[swap].DisplayOrder
	if order1 == order2 {
		order1, order2 = idx+1, swap+1
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Account{}).Where("id = ?", list[idx].ID).
			Update("display_order", order2).Error; err != nil {
			return storagef(err)
		}
		return storagef(tx.Model(&models.Account{}).Where("id = ?", list[swap].ID).
			Update("display_order", order1).Error)
	})
}

// AccountOption is a labeled picker entry for the UI, with the abono
// reserve appended as the pseudo-account "RESERVE".
type AccountOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Options lists every account plus the reserve, with balance labels.
func (s *AccountService) Options() ([]AccountOption, error) {
	var accounts []models.Account
	if err := s.DB.Order("display_order ASC").Find(&accounts).Error; err != nil {
		return nil, storagef(err)
	}
	options := make([]AccountOption, 0, len(accounts)+1)
	for _, acc := range accounts {
		var amt string
		if acc.IsCredit() {
			amt = fmt.Sprintf("Disponible: $%.2f", acc.CreditLimit-acc.CurrentBalance)
		} else {
			amt = fmt.Sprintf("Saldo: $%.2f", acc.CurrentBalance)
		}
		options = append(options, AccountOption{
			Value: fmt.Sprintf("%d", acc.ID),
			Label: fmt.Sprintf("%s - %s (%s)\n%s", acc.Name, acc.BankName, acc.Kind, amt),
		})
	}

	var reserve models.AbonoReserve
	if err := s.DB.First(&reserve, 1).Error; err == nil {
		options = append(options, AccountOption{
			Value: "RESERVE",
			Label: fmt.Sprintf("Reserva de Abono\nDisponible: $%.2f", reserve.Balance),
		})
	}
	return options, nil
}

// CardPaymentSource selects where a card payment is funded from:
// a regular account, the abono reserve, or an external origin when
// both fields are unset.
type CardPaymentSource struct {
	AccountID   *uint `json:"account_id"`
	FromReserve bool  `json:"from_reserve"`
}

// PayCard applies a payment to a credit card. A funded source is
// balance-checked and debited (expense row for accounts, direct
// decrement for the reserve); the card debt always shrinks through a
// paired income row. Everything commits atomically.
func (s *AccountService) PayCard(cardID uint, amount float64, source CardPaymentSource) error {
	if amount <= 0 {
		return Validationf("amount must be positive, got %.2f", amount)
	}
	today := dayString(time.Now())
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var card models.Account
		if err := tx.First(&card, cardID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFoundf("card %d does not exist", cardID)
			}
			return storagef(err)
		}
		if !card.IsCredit() {
			return Validationf("account %q is not a credit card", card.Name)
		}

		sourceName := "Origen Externo"
		switch {
		case source.FromReserve:
			var reserve models.AbonoReserve
			if err := tx.First(&reserve, 1).Error; err != nil {
				return storagef(err)
			}
			if amount > reserve.Balance+0.01 {
				return Validationf("insufficient reserve balance ($%.2f)", reserve.Balance)
			}
			if err := tx.Model(&reserve).Update("balance", reserve.Balance-amount).Error; err != nil {
				return storagef(err)
			}
			sourceName = "Reserva de Abono"

		case source.AccountID != nil:
			var src models.Account
			if err := tx.First(&src, *source.AccountID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return NotFoundf("source account %d does not exist", *source.AccountID)
				}
				return storagef(err)
			}
			if amount > src.CurrentBalance+0.01 {
				return Validationf("insufficient balance in %s ($%.2f)", src.Name, src.CurrentBalance)
			}
			out := models.Transaction{
				Date:      today,
				Name:      fmt.Sprintf("Pago a %s", card.Name),
				Amount:    amount,
				Category:  "Transferencia/Pago",
				Kind:      models.TxExpense,
				AccountID: src.ID,
			}
			if err := tx.Create(&out).Error; err != nil {
				return storagef(err)
			}
			if err := applyBalance(tx, src.ID, amount, models.TxExpense, false); err != nil {
				return err
			}
			sourceName = src.Name
		}

		in := models.Transaction{
			Date:      today,
			Name:      fmt.Sprintf("Pago desde %s", sourceName),
			Amount:    amount,
			Category:  "Transferencia/Pago",
			Kind:      models.TxIncome,
			AccountID: card.ID,
		}
		if err := tx.Create(&in).Error; err != nil {
			return storagef(err)
		}
		return applyBalance(tx, card.ID, amount, models.TxIncome, false)
	})
}
