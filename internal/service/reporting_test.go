package service

import (
	"testing"

	"github.com/danielalasn/pivot/internal/models"
)

func TestCategorySummary_IgnoresCardMovements(t *testing.T) {
	db := newTestDB(t)
	txs := NewTransactionService(db)
	debit := seedAccount(t, db, models.Account{Name: "Nomina", Kind: models.AccountDebit, CurrentBalance: 1000})
	card := seedAccount(t, db, models.Account{Name: "Visa", Kind: models.AccountCredit})

	add := func(amount float64, category, kind string, accountID uint) {
		t.Helper()
		if _, err := txs.Add(TransactionInput{
			Date: "2026-08-01", Name: "x", Amount: amount,
			Category: category, Kind: kind, AccountID: accountID,
		}); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	add(100, "Costos Fijos", models.TxExpense, debit.ID)
	add(50, "Costos Fijos", models.TxExpense, debit.ID)
	add(200, "Ingresos", models.TxIncome, debit.ID)
	add(400, "Costos Fijos", models.TxExpense, card.ID) // card spending stays out

	rows, err := NewReportingService(db).CategorySummary()
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	totals := make(map[string]float64)
	for _, r := range rows {
		totals[r.Category+"/"+r.Kind] = r.Total
	}
	if totals["Costos Fijos/Expense"] != 150 {
		t.Errorf("fixed costs = %v, want 150", totals["Costos Fijos/Expense"])
	}
	if totals["Ingresos/Income"] != 200 {
		t.Errorf("income = %v, want 200", totals["Ingresos/Income"])
	}
}

func TestExpenseByCategory_AllAccounts(t *testing.T) {
	db := newTestDB(t)
	txs := NewTransactionService(db)
	debit := seedAccount(t, db, models.Account{Name: "Nomina", Kind: models.AccountDebit, CurrentBalance: 1000})
	card := seedAccount(t, db, models.Account{Name: "Visa", Kind: models.AccountCredit})

	txs.Add(TransactionInput{Date: "2026-08-01", Name: "a", Amount: 100,
		Category: "Costos Fijos", Kind: models.TxExpense, AccountID: debit.ID})
	txs.Add(TransactionInput{Date: "2026-08-01", Name: "b", Amount: 400,
		Category: "Costos Fijos", Kind: models.TxExpense, AccountID: card.ID})
	txs.Add(TransactionInput{Date: "2026-08-01", Name: "c", Amount: 200,
		Category: "Ingresos", Kind: models.TxIncome, AccountID: debit.ID})

	rows, err := NewReportingService(db).ExpenseByCategory()
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want income left out", len(rows))
	}
	if rows[0].Name != "Costos Fijos" || rows[0].Value != 500 {
		t.Errorf("row = %+v", rows[0])
	}
}

func TestBankSummary_PositiveBalancesOnly(t *testing.T) {
	db := newTestDB(t)
	seedAccount(t, db, models.Account{Name: "Nomina", Kind: models.AccountDebit, BankName: "BBVA", CurrentBalance: 800})
	seedAccount(t, db, models.Account{Name: "Gastos", Kind: models.AccountDebit, BankName: "BBVA", CurrentBalance: 200})
	seedAccount(t, db, models.Account{Name: "Caja", Kind: models.AccountCash, BankName: "-", CurrentBalance: 50})
	seedAccount(t, db, models.Account{Name: "Visa", Kind: models.AccountCredit, BankName: "BBVA", CurrentBalance: 999})
	seedAccount(t, db, models.Account{Name: "Rota", Kind: models.AccountDebit, BankName: "Quiebra", CurrentBalance: -10})

	rows, err := NewReportingService(db).BankSummary()
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0].Name != "BBVA" || rows[0].Value != 1000 {
		t.Errorf("top bank = %+v", rows[0])
	}
	if rows[1].Name != "-" || rows[1].Value != 50 {
		t.Errorf("cash bucket = %+v", rows[1])
	}
}

func TestAccountTypeSummary(t *testing.T) {
	db := newTestDB(t)
	seedAccount(t, db, models.Account{Name: "Nomina", Kind: models.AccountDebit, CurrentBalance: 600})
	card := seedAccount(t, db, models.Account{Name: "Visa", Kind: models.AccountCredit, CurrentBalance: 300})
	if err := db.Create(&models.Installment{
		AccountID: card.ID, Name: "TV", TotalAmount: 240, TotalQuotas: 12, PaymentDay: 5,
	}).Error; err != nil {
		t.Fatalf("seed plan: %v", err)
	}
	if err := NewReserveService(db).Set(100); err != nil {
		t.Fatalf("set reserve: %v", err)
	}
	if _, err := NewIOUService(db).Add(IOUInput{Name: "Pagar Maria", Amount: 50, Type: models.IOUPayable}); err != nil {
		t.Fatalf("add payable: %v", err)
	}

	out, err := NewReportingService(db).AccountTypeSummary()
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if out.LiquidAssets != 600 || out.ReserveAssets != 100 || out.TotalAssets != 700 {
		t.Errorf("assets = %+v", out)
	}
	if out.TotalLiabilities != 350 {
		t.Errorf("liabilities = %v, want 350", out.TotalLiabilities)
	}
	if !almostEqual(out.InstallmentsDebt, 240) {
		t.Errorf("installments = %v, want 240", out.InstallmentsDebt)
	}
	if !almostEqual(out.ImmediateDebt, 110) {
		t.Errorf("immediate = %v, want 110", out.ImmediateDebt)
	}
}

func TestMonthlySummary_GroupsByMonth(t *testing.T) {
	db := newTestDB(t)
	txs := NewTransactionService(db)
	acc := seedAccount(t, db, models.Account{Name: "Nomina", Kind: models.AccountDebit, CurrentBalance: 1000})

	txs.Add(TransactionInput{Date: "2026-07-15", Name: "a", Amount: 100,
		Category: "Costos Fijos", Kind: models.TxExpense, AccountID: acc.ID})
	txs.Add(TransactionInput{Date: "2026-07-28", Name: "b", Amount: 50,
		Category: "Costos Fijos", Kind: models.TxExpense, AccountID: acc.ID})
	txs.Add(TransactionInput{Date: "2026-08-02", Name: "c", Amount: 900,
		Category: "Ingresos", Kind: models.TxIncome, AccountID: acc.ID})

	rows, err := NewReportingService(db).MonthlySummary()
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0].Month != "2026-07" || rows[0].Kind != models.TxExpense || rows[0].Total != 150 {
		t.Errorf("july = %+v", rows[0])
	}
	if rows[1].Month != "2026-08" || rows[1].Kind != models.TxIncome || rows[1].Total != 900 {
		t.Errorf("august = %+v", rows[1])
	}
}

func TestFullDebtSummary(t *testing.T) {
	db := newTestDB(t)
	seedAccount(t, db, models.Account{Name: "Visa", Kind: models.AccountCredit, CreditLimit: 1000, CurrentBalance: 300})
	ious := NewIOUService(db)
	ious.Add(IOUInput{Name: "Pagar Maria", Amount: 120, Type: models.IOUPayable})
	ious.Add(IOUInput{Name: "Cobrar Juan", Amount: 80, Type: models.IOUReceivable})
	if err := NewReserveService(db).Set(50); err != nil {
		t.Fatalf("set reserve: %v", err)
	}

	out, err := NewReportingService(db).FullDebtSummary()
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if out.InformalDebt != 120 || out.InformalCollectible != 80 {
		t.Errorf("informal = %+v", out)
	}
	// 300 of card debt, nothing financed, minus the 50 reserve
	if !almostEqual(out.CreditExigibleNet, 250) {
		t.Errorf("exigible net = %v, want 250", out.CreditExigibleNet)
	}
	if !almostEqual(out.TotalGrossDebt, 370) {
		t.Errorf("gross = %v, want 370", out.TotalGrossDebt)
	}
	if !almostEqual(out.NetExposure, 290) {
		t.Errorf("exposure = %v, want 290", out.NetExposure)
	}
	if !almostEqual(out.InformalNetBalance, -40) {
		t.Errorf("informal net = %v, want -40", out.InformalNetBalance)
	}
}

func TestSortedNamedValues(t *testing.T) {
	got := sortedNamedValues(map[string]float64{
		"b": 10, "a": 10, "c": 50, "zero": 0,
	})
	want := []NamedValue{{"c", 50}, {"a", 10}, {"b", 10}}
	if len(got) != len(want) {
		t.Fatalf("values = %d, want zero buckets dropped", len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("value %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestTrimFloat(t *testing.T) {
	cases := map[float64]string{
		3:       "3",
		0.5:     "0.5",
		10.25:   "10.25",
		0.00001: "0.00001",
	}
	for in, want := range cases {
		if got := trimFloat(in); got != want {
			t.Errorf("trimFloat(%v) = %q, want %q", in, got, want)
		}
	}
}
