package service

import (
	"testing"
	"time"

	"github.com/danielalasn/pivot/internal/models"
)

func TestCreditSummary(t *testing.T) {
	db := newTestDB(t)
	card := seedAccount(t, db, models.Account{
		Name: "Visa", Kind: models.AccountCredit, CreditLimit: 1000,
	})

	// 300 of card spending, 240 of it financed over 12 quotas
	if _, err := NewTransactionService(db).Add(TransactionInput{
		Date: "2026-08-01", Name: "Laptop", Amount: 300,
		Category: "Libres (Guilt Free)", Kind: models.TxExpense, AccountID: card.ID,
	}); err != nil {
		t.Fatalf("add expense: %v", err)
	}
	if _, err := NewInstallmentService(db).Add(InstallmentInput{
		AccountID: card.ID, Name: "Laptop", TotalAmount: 240,
		TotalQuotas: 12, PaymentDay: 5,
	}); err != nil {
		t.Fatalf("add plan: %v", err)
	}
	if err := NewReserveService(db).Set(40); err != nil {
		t.Fatalf("set reserve: %v", err)
	}

	sum, err := NewCreditService(db).Summary()
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if sum.TotalLimit != 1000 || sum.TotalDebt != 300 {
		t.Errorf("limit/debt = %v/%v, want 1000/300", sum.TotalLimit, sum.TotalDebt)
	}
	if !almostEqual(sum.TotalInstallments, 240) {
		t.Errorf("installments = %v, want 240", sum.TotalInstallments)
	}
	if !almostEqual(sum.ExigibleGross, 60) {
		t.Errorf("exigible gross = %v, want 60", sum.ExigibleGross)
	}
	if !almostEqual(sum.ExigibleNet, 20) {
		t.Errorf("exigible net = %v, want 20", sum.ExigibleNet)
	}
}

func TestCreditSummary_FloorsAtZero(t *testing.T) {
	db := newTestDB(t)
	card := seedAccount(t, db, models.Account{
		Name: "Visa", Kind: models.AccountCredit, CreditLimit: 1000, CurrentBalance: 100,
	})
	// plans cover more than the running debt
	if err := db.Create(&models.Installment{
		AccountID: card.ID, Name: "TV", TotalAmount: 360, TotalQuotas: 12, PaymentDay: 5,
	}).Error; err != nil {
		t.Fatalf("seed plan: %v", err)
	}
	if err := NewReserveService(db).Set(500); err != nil {
		t.Fatalf("set reserve: %v", err)
	}

	sum, err := NewCreditService(db).Summary()
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if sum.ExigibleGross != 0 || sum.ExigibleNet != 0 {
		t.Errorf("gross/net = %v/%v, want 0/0", sum.ExigibleGross, sum.ExigibleNet)
	}
}

func TestCreditCards_DerivedFields(t *testing.T) {
	db := newTestDB(t)
	svc := NewCreditService(db)
	svc.now = func() time.Time {
		return time.Date(2026, time.August, 15, 10, 0, 0, 0, time.UTC)
	}
	card := seedAccount(t, db, models.Account{
		Name: "Visa", Kind: models.AccountCredit,
		CreditLimit: 1000, CurrentBalance: 300, PaymentDay: 10,
	})
	if err := db.Create(&models.Installment{
		AccountID: card.ID, Name: "TV", TotalAmount: 240, TotalQuotas: 12, PaymentDay: 10,
	}).Error; err != nil {
		t.Fatalf("seed plan: %v", err)
	}

	views, err := svc.Cards()
	if err != nil {
		t.Fatalf("cards: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("cards = %d, want 1", len(views))
	}
	v := views[0]
	if v.Available != 700 {
		t.Errorf("available = %v, want 700", v.Available)
	}
	if !almostEqual(v.PlanPending, 240) {
		t.Errorf("plan pending = %v, want 240", v.PlanPending)
	}
	if !almostEqual(v.PayableNow, 60) {
		t.Errorf("payable now = %v, want 60", v.PayableNow)
	}
	// the 10th already passed this month
	if v.NextPaymentDate != "2026-09-10" {
		t.Errorf("next payment = %q, want 2026-09-10", v.NextPaymentDate)
	}
}

func TestNextPaymentDate(t *testing.T) {
	loc := time.UTC
	cases := []struct {
		now  time.Time
		day  int
		want string
	}{
		// still ahead this month
		{time.Date(2026, time.January, 5, 0, 0, 0, 0, loc), 20, "2026-01-20"},
		// today counts as the next date
		{time.Date(2026, time.January, 20, 23, 0, 0, 0, loc), 20, "2026-01-20"},
		// already passed, roll to next month
		{time.Date(2026, time.January, 25, 0, 0, 0, 0, loc), 20, "2026-02-20"},
		// day 31 clamps to the end of a short month
		{time.Date(2026, time.February, 1, 0, 0, 0, 0, loc), 31, "2026-02-28"},
		// roll from a short month into one that has the day
		{time.Date(2026, time.April, 15, 0, 0, 0, 0, loc), 10, "2026-05-10"},
	}
	for _, c := range cases {
		if got := dayString(nextPaymentDate(c.now, c.day)); got != c.want {
			t.Errorf("nextPaymentDate(%s, %d) = %s, want %s",
				dayString(c.now), c.day, got, c.want)
		}
	}
}
