package service

import (
	"errors"

	"github.com/danielalasn/pivot/internal/models"

	"gorm.io/gorm"
)

// BalanceDelta maps an (account kind, transaction kind) pair and a
// positive amount to the signed change of the account balance.
// For credit cards an expense grows the debt and an income shrinks it;
// for debit and cash accounts the polarity is the usual cash one.
// A reversal negates the sign, undoing a previously applied move.
func BalanceDelta(accountKind, txKind string, amount float64, reversal bool) float64 {
	var delta float64
	if accountKind == models.AccountCredit {
		if txKind == models.TxExpense {
			delta = amount
		} else {
			delta = -amount
		}
	} else {
		if txKind == models.TxExpense {
			delta = -amount
		} else {
			delta = amount
		}
	}
	if reversal {
		delta = -delta
	}
	return delta
}

// applyBalance adjusts the target account balance inside tx. The
// caller is responsible for running it within an atomic scope.
func applyBalance(tx *gorm.DB, accountID uint, amount float64, txKind string, reversal bool) error {
	var acc models.Account
	if err := tx.First(&acc, accountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NotFoundf("account %d does not exist", accountID)
		}
		return storagef(err)
	}
	delta := BalanceDelta(acc.Kind, txKind, amount, reversal)
	if err := tx.Model(&models.Account{}).Where("id = ?", acc.ID).
		Update("current_balance", gorm.Expr("current_balance + ?", delta)).Error; err != nil {
		return storagef(err)
	}
	return nil
}
