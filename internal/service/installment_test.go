package service

import (
	"errors"
	"testing"

	"github.com/danielalasn/pivot/internal/models"
)

func TestInstallmentAdd_RequiresCreditAccount(t *testing.T) {
	db := newTestDB(t)
	svc := NewInstallmentService(db)
	debit := seedAccount(t, db, models.Account{Name: "Nomina", Kind: models.AccountDebit})
	card := seedAccount(t, db, models.Account{Name: "Visa", Kind: models.AccountCredit})

	in := InstallmentInput{
		AccountID: debit.ID, Name: "Laptop", TotalAmount: 1200,
		TotalQuotas: 12, PaymentDay: 5,
	}
	if _, err := svc.Add(in); !errors.Is(err, ErrValidation) {
		t.Errorf("plan on debit err = %v, want ErrValidation", err)
	}

	in.AccountID = card.ID
	if _, err := svc.Add(in); err != nil {
		t.Fatalf("plan on card: %v", err)
	}

	in.AccountID = 999
	if _, err := svc.Add(in); !errors.Is(err, ErrNotFound) {
		t.Errorf("plan on missing account err = %v, want ErrNotFound", err)
	}
}

func TestInstallmentAdd_Validation(t *testing.T) {
	db := newTestDB(t)
	svc := NewInstallmentService(db)
	card := seedAccount(t, db, models.Account{Name: "Visa", Kind: models.AccountCredit})

	base := InstallmentInput{
		AccountID: card.ID, Name: "Laptop", TotalAmount: 1200,
		TotalQuotas: 12, PaymentDay: 5,
	}
	cases := []struct {
		name   string
		mutate func(*InstallmentInput)
	}{
		{"empty name", func(in *InstallmentInput) { in.Name = "" }},
		{"zero principal", func(in *InstallmentInput) { in.TotalAmount = 0 }},
		{"negative rate", func(in *InstallmentInput) { in.InterestRate = -1 }},
		{"zero quotas", func(in *InstallmentInput) { in.TotalQuotas = 0 }},
		{"paid beyond total", func(in *InstallmentInput) { in.PaidQuotas = 13 }},
		{"bad payment day", func(in *InstallmentInput) { in.PaymentDay = 0 }},
	}
	for _, c := range cases {
		in := base
		c.mutate(&in)
		if _, err := svc.Add(in); !errors.Is(err, ErrValidation) {
			t.Errorf("%s: err = %v, want ErrValidation", c.name, err)
		}
	}
}

func TestInstallmentListForAccount_DerivedMath(t *testing.T) {
	db := newTestDB(t)
	svc := NewInstallmentService(db)
	card := seedAccount(t, db, models.Account{Name: "Visa", Kind: models.AccountCredit})

	if _, err := svc.Add(InstallmentInput{
		AccountID: card.ID, Name: "TV", TotalAmount: 240,
		TotalQuotas: 12, PaidQuotas: 3, PaymentDay: 10,
	}); err != nil {
		t.Fatalf("add: %v", err)
	}

	views, err := svc.ListForAccount(card.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("views = %d, want 1", len(views))
	}
	v := views[0]
	if !almostEqual(v.Quota, 20) {
		t.Errorf("quota = %v, want 20", v.Quota)
	}
	if !almostEqual(v.PendingBalance, 180) {
		t.Errorf("pending = %v, want 180", v.PendingBalance)
	}
	if !almostEqual(v.TotalWithInterest, 240) {
		t.Errorf("total = %v, want 240", v.TotalWithInterest)
	}
}

func TestInstallmentUpdateAndDelete(t *testing.T) {
	db := newTestDB(t)
	svc := NewInstallmentService(db)
	card := seedAccount(t, db, models.Account{Name: "Visa", Kind: models.AccountCredit})

	inst, err := svc.Add(InstallmentInput{
		AccountID: card.ID, Name: "TV", TotalAmount: 240,
		TotalQuotas: 12, PaymentDay: 10,
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	updated, err := svc.Update(inst.ID, InstallmentInput{
		AccountID: card.ID, Name: "TV", TotalAmount: 240,
		TotalQuotas: 12, PaidQuotas: 6, PaymentDay: 10,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.PaidQuotas != 6 {
		t.Errorf("paid quotas = %d, want 6", updated.PaidQuotas)
	}

	if err := svc.Delete(inst.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(inst.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}
}
