package mysql

import (
	"context"
	"errors"
	"testing"

	"microfinance-ledger/internal/domain/errs"
	"microfinance-ledger/internal/domain/ledger"
	domain "microfinance-ledger/internal/domain/loan"
	"microfinance-ledger/internal/domain/numeric"
	"microfinance-ledger/internal/domain/params"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB creates an in-memory sqlite DB with the full schema. One
// connection only, or every new connection would see an empty database.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(&domain.Loan{}, &domain.Update{}, &params.ParameterSet{}, &ledger.Transfer{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func makeLoan(loanID uint64, borrower string) *domain.Loan {
	return &domain.Loan{
		LoanID:            loanID,
		Borrower:          borrower,
		Amount:            decimal.NewFromInt(1000),
		InterestRate:      decimal.NewFromInt(10),
		RepaymentDuration: 60,
		StartTimestamp:    5,
		GracePeriod:       10,
		PenaltyRate:       decimal.NewFromInt(5),
		Currency:          domain.CurrencySTX,
		Status:            domain.StatusActive,
		CollateralAmount:  decimal.NewFromInt(2000),
		RepaidAmount:      decimal.Zero,
		PoolID:            1,
	}
}

func TestCreateAndGetByLoanID(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	l := makeLoan(0, "ST1BORROWER")
	if err := repo.Create(ctx, l); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if l.ID == 0 {
		t.Fatalf("Create did not set auto-increment ID")
	}

	got, err := repo.GetByLoanID(ctx, 0)
	if err != nil {
		t.Fatalf("GetByLoanID: %v", err)
	}
	if got.LoanID != 0 || got.Borrower != "ST1BORROWER" {
		t.Errorf("unexpected loan: %+v", got)
	}
	if !got.Amount.Equal(decimal.NewFromInt(1000)) || !got.CollateralAmount.Equal(decimal.NewFromInt(2000)) {
		t.Errorf("amounts not round-tripped: amount=%s collateral=%s", got.Amount, got.CollateralAmount)
	}
	if got.Currency != domain.CurrencySTX || got.Status != domain.StatusActive {
		t.Errorf("currency/status: %s/%s", got.Currency, got.Status)
	}
}

func TestLoanColumns_RoundTripAtLedgerBounds(t *testing.T) {
	tests := []struct {
		name         string
		amount, rate string
	}{
		{"largest money and rate", "999999999.999999", "999999.9999"},
		{"smallest units", "0.000001", "0.0001"},
		{"mixed digits", "123456789.123456", "15.1234"},
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, rate := decimal.RequireFromString(tt.amount), decimal.RequireFromString(tt.rate)
			if !numeric.Money.Fits(amount) || !numeric.Rate.Fits(rate) {
				t.Fatalf("fixture outside ledger bounds")
			}

			repo := NewLoanRepository(openTestDB(t))
			ctx := context.Background()
			l := makeLoan(uint64(i), "ST1BORROWER")
			l.Amount, l.CollateralAmount, l.RepaidAmount = amount, amount, amount
			l.InterestRate, l.PenaltyRate = rate, rate
			if err := repo.Create(ctx, l); err != nil {
				t.Fatalf("Create: %v", err)
			}

			got, err := repo.GetByLoanID(ctx, uint64(i))
			if err != nil {
				t.Fatalf("GetByLoanID: %v", err)
			}
			for col, v := range map[string]decimal.Decimal{"amount": got.Amount, "collateral": got.CollateralAmount, "repaid": got.RepaidAmount} {
				if !v.Equal(amount) {
					t.Errorf("%s = %s, want %s", col, v, amount)
				}
			}
			if !got.InterestRate.Equal(rate) || !got.PenaltyRate.Equal(rate) {
				t.Errorf("rates = %s/%s, want %s", got.InterestRate, got.PenaltyRate, rate)
			}
		})
	}
}

func TestLoanColumns_UnstorableValuesNotAdmitted(t *testing.T) {
	// values that would read back altered are refused before they reach a column
	for _, s := range []string{"999999.1234567890123", "1000000000", "0.0000001"} {
		if numeric.Money.Fits(decimal.RequireFromString(s)) {
			t.Fatalf("%s admitted for a money column", s)
		}
	}
}

func TestSaveUpdates(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	l := makeLoan(3, "ST1BORROWER")
	if err := repo.Create(ctx, l); err != nil {
		t.Fatalf("Create: %v", err)
	}

	l.RepaidAmount = decimal.RequireFromString("1100")
	l.Status = domain.StatusRepaid
	if err := repo.Save(ctx, l); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.GetByLoanID(ctx, 3)
	if err != nil {
		t.Fatalf("GetByLoanID: %v", err)
	}
	if !got.RepaidAmount.Equal(decimal.NewFromInt(1100)) || got.Status != domain.StatusRepaid {
		t.Errorf("not updated: repaid=%s status=%s", got.RepaidAmount, got.Status)
	}
}

func TestGetByLoanID_NotFound(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRepository(db)

	_, err := repo.GetByLoanID(context.Background(), 42)
	if !errors.Is(err, errs.ErrLoanNotFound) {
		t.Fatalf("expected ErrLoanNotFound, got %v", err)
	}
}

func TestExists(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	if ok, err := repo.Exists(ctx, 7); err != nil || ok {
		t.Fatalf("Exists before create: ok=%v err=%v", ok, err)
	}
	if err := repo.Create(ctx, makeLoan(7, "ST1BORROWER")); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if ok, err := repo.Exists(ctx, 7); err != nil || !ok {
		t.Fatalf("Exists after create: ok=%v err=%v", ok, err)
	}
}

func TestCreate_DuplicateLoanIDRejected(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	if err := repo.Create(ctx, makeLoan(1, "ST1A")); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.Create(ctx, makeLoan(1, "ST1B")); err == nil {
		t.Fatalf("expected unique index violation on loan_id")
	}
}
