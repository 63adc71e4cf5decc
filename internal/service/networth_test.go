package service

import (
	"errors"
	"testing"
	"time"

	"github.com/danielalasn/pivot/internal/models"
)

func TestNetWorthBreakdown(t *testing.T) {
	db := newTestDB(t)
	seedAccount(t, db, models.Account{Name: "Nomina", Kind: models.AccountDebit, CurrentBalance: 500})
	seedAccount(t, db, models.Account{Name: "Caja", Kind: models.AccountCash, CurrentBalance: 100})
	seedAccount(t, db, models.Account{Name: "Visa", Kind: models.AccountCredit, CurrentBalance: 200})

	ious := NewIOUService(db)
	if _, err := ious.Add(IOUInput{Name: "Cobrar Juan", Amount: 80, Type: models.IOUReceivable}); err != nil {
		t.Fatalf("add receivable: %v", err)
	}
	if _, err := ious.Add(IOUInput{Name: "Pagar Maria", Amount: 50, Type: models.IOUPayable}); err != nil {
		t.Fatalf("add payable: %v", err)
	}
	// the reserve is earmarked money, never part of net worth
	if err := NewReserveService(db).Set(999); err != nil {
		t.Fatalf("set reserve: %v", err)
	}

	b, err := NewNetWorthService(db).Breakdown()
	if err != nil {
		t.Fatalf("breakdown: %v", err)
	}
	if b.Assets.Liquid != 600 || b.Assets.Receivables != 80 || b.Assets.Total != 680 {
		t.Errorf("assets = %+v", b.Assets)
	}
	if b.Liabilities.CreditCards != 200 || b.Liabilities.Payables != 50 || b.Liabilities.Total != 250 {
		t.Errorf("liabilities = %+v", b.Liabilities)
	}
	if b.NetWorth != 430 {
		t.Errorf("net worth = %v, want 430", b.NetWorth)
	}
}

func TestHistoricalTrend_WalksBackward(t *testing.T) {
	db := newTestDB(t)
	svc := NewNetWorthService(db)
	svc.now = func() time.Time {
		return time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	}
	acc := seedAccount(t, db, models.Account{Name: "Nomina", Kind: models.AccountDebit})

	// 100 came in yesterday; applying it brings the balance to 100
	if _, err := NewTransactionService(db).Add(TransactionInput{
		Date: "2026-03-09", Name: "Sueldo", Amount: 100,
		Category: "Ingresos", Kind: models.TxIncome, AccountID: acc.ID,
	}); err != nil {
		t.Fatalf("add income: %v", err)
	}

	points, err := svc.HistoricalTrend("2026-03-08", "2026-03-12")
	if err != nil {
		t.Fatalf("trend: %v", err)
	}
	want := []TrendPoint{
		{Date: "2026-03-08", Value: 0},
		{Date: "2026-03-09", Value: 100},
		{Date: "2026-03-10", Value: 100},
		// days after today stay flat at the current value
		{Date: "2026-03-11", Value: 100},
		{Date: "2026-03-12", Value: 100},
	}
	if len(points) != len(want) {
		t.Fatalf("points = %d, want %d", len(points), len(want))
	}
	for i := range want {
		if points[i] != want[i] {
			t.Errorf("point %d = %+v, want %+v", i, points[i], want[i])
		}
	}
}

func TestHistoricalTrend_SingleDay(t *testing.T) {
	db := newTestDB(t)
	svc := NewNetWorthService(db)
	svc.now = func() time.Time {
		return time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	}
	seedAccount(t, db, models.Account{Name: "Caja", Kind: models.AccountCash, CurrentBalance: 75})

	points, err := svc.HistoricalTrend("2026-03-10", "2026-03-10")
	if err != nil {
		t.Fatalf("trend: %v", err)
	}
	if len(points) != 1 {
		t.Fatalf("points = %d, want 1", len(points))
	}
	if points[0].Date != "2026-03-10" || points[0].Value != 75 {
		t.Errorf("point = %+v", points[0])
	}
}

func TestHistoricalTrend_FlatWithoutTransactions(t *testing.T) {
	db := newTestDB(t)
	svc := NewNetWorthService(db)
	svc.now = func() time.Time {
		return time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	}
	seedAccount(t, db, models.Account{Name: "Caja", Kind: models.AccountCash, CurrentBalance: 300})

	points, err := svc.HistoricalTrend("2026-03-01", "2026-03-10")
	if err != nil {
		t.Fatalf("trend: %v", err)
	}
	for _, p := range points {
		if p.Value != 300 {
			t.Errorf("point %s = %v, want flat 300", p.Date, p.Value)
		}
	}
}

func TestHistoricalTrend_Validation(t *testing.T) {
	db := newTestDB(t)
	svc := NewNetWorthService(db)

	if _, err := svc.HistoricalTrend("hoy", "2026-03-10"); !errors.Is(err, ErrValidation) {
		t.Errorf("bad from err = %v, want ErrValidation", err)
	}
	if _, err := svc.HistoricalTrend("2026-03-10", "mañana"); !errors.Is(err, ErrValidation) {
		t.Errorf("bad to err = %v, want ErrValidation", err)
	}
	if _, err := svc.HistoricalTrend("2026-03-10", "2026-03-01"); !errors.Is(err, ErrValidation) {
		t.Errorf("inverted range err = %v, want ErrValidation", err)
	}
}
