package params

import (
	"context"
	"errors"
	"testing"

	"microfinance-ledger/internal/domain/caller"
	"microfinance-ledger/internal/domain/errs"
	domain "microfinance-ledger/internal/domain/params"
	"microfinance-ledger/internal/domain/uow"
	"microfinance-ledger/internal/testutil/paramsmock"
	"microfinance-ledger/internal/testutil/uowmock"

	"github.com/shopspring/decimal"
	logtest "github.com/sirupsen/logrus/hooks/test"
)

var admin = caller.Env{Principal: "ST1AUTHORITY", Now: 3}

// newUsecase wires a usecase around one in-test parameter row; saved reports
// whether Save was reached.
func newUsecase(t *testing.T, initial domain.ParameterSet) (*Usecase, *domain.ParameterSet, *bool) {
	t.Helper()
	row := initial
	saved := false
	repo := &paramsmock.Repo{
		GetFn: func(context.Context) (*domain.ParameterSet, error) {
			p := row
			return &p, nil
		},
		SaveFn: func(_ context.Context, p *domain.ParameterSet) error {
			saved = true
			row = *p
			return nil
		},
	}
	log, _ := logtest.NewNullLogger()
	return NewUsecase(uowmock.Passthrough(uow.Repos{Params: repo}), repo, log), &row, &saved
}

func bound(t *testing.T) domain.ParameterSet {
	t.Helper()
	p := domain.Defaults()
	if err := p.BindAuthority("ST1AUTHORITY"); err != nil {
		t.Fatalf("bind: %v", err)
	}
	return p
}

func TestSetAuthorityContract_BindsOnce(t *testing.T) {
	uc, row, _ := newUsecase(t, domain.Defaults())
	ctx := context.Background()

	dto, err := uc.SetAuthorityContract(ctx, admin, "ST1AUTHORITY")
	if err != nil {
		t.Fatalf("first bind: %v", err)
	}
	if dto.AuthorityContract != "ST1AUTHORITY" {
		t.Fatalf("dto authority = %q", dto.AuthorityContract)
	}

	for _, p := range []string{"ST1AUTHORITY", "ST1OTHER"} {
		if _, err := uc.SetAuthorityContract(ctx, admin, p); !errors.Is(err, errs.ErrAuthorityAlreadyBound) {
			t.Fatalf("rebind to %s: want ErrAuthorityAlreadyBound, got %v", p, err)
		}
	}
	if got, _ := row.Authority.Principal(); got != "ST1AUTHORITY" {
		t.Fatalf("binding changed to %q", got)
	}
}

func TestSetAuthorityContract_RejectsNullPrincipal(t *testing.T) {
	uc, row, saved := newUsecase(t, domain.Defaults())
	for _, p := range []string{domain.NullPrincipal, ""} {
		if _, err := uc.SetAuthorityContract(context.Background(), admin, p); !errors.Is(err, errs.ErrInvalidAuthority) {
			t.Fatalf("bind %q: want ErrInvalidAuthority, got %v", p, err)
		}
	}
	if *saved || row.Authority.IsBound() {
		t.Fatalf("rejected bind persisted")
	}
}

func TestSetters(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		initial func(*testing.T) domain.ParameterSet
		call    func(*Usecase) (*ParamsDTO, error)
		wantErr error
		check   func(*testing.T, *domain.ParameterSet)
	}{
		{
			name:    "fee unbound",
			initial: func(*testing.T) domain.ParameterSet { return domain.Defaults() },
			call: func(u *Usecase) (*ParamsDTO, error) {
				return u.SetIssuanceFee(ctx, admin, decimal.NewFromInt(1))
			},
			wantErr: errs.ErrAuthorityNotVerified,
		},
		{
			name:    "fee negative",
			initial: bound,
			call: func(u *Usecase) (*ParamsDTO, error) {
				return u.SetIssuanceFee(ctx, admin, decimal.NewFromInt(-1))
			},
			wantErr: errs.ErrInvalidIssuanceFee,
		},
		{
			name:    "fee beyond ledger scale",
			initial: bound,
			call: func(u *Usecase) (*ParamsDTO, error) {
				return u.SetIssuanceFee(ctx, admin, decimal.RequireFromString("500.0000001"))
			},
			wantErr: errs.ErrInvalidPrecision,
		},
		{
			name:    "fee zero",
			initial: bound,
			call: func(u *Usecase) (*ParamsDTO, error) {
				return u.SetIssuanceFee(ctx, admin, decimal.Zero)
			},
			check: func(t *testing.T, p *domain.ParameterSet) {
				if !p.IssuanceFee.IsZero() {
					t.Fatalf("fee = %s", p.IssuanceFee)
				}
			},
		},
		{
			name:    "min score unbound",
			initial: func(*testing.T) domain.ParameterSet { return domain.Defaults() },
			call:    func(u *Usecase) (*ParamsDTO, error) { return u.SetMinTrustScore(ctx, admin, 10) },
			wantErr: errs.ErrAuthorityNotVerified,
		},
		{
			name:    "min score zero",
			initial: bound,
			call:    func(u *Usecase) (*ParamsDTO, error) { return u.SetMinTrustScore(ctx, admin, 0) },
			check: func(t *testing.T, p *domain.ParameterSet) {
				if p.MinTrustScore != 0 {
					t.Fatalf("min score = %d", p.MinTrustScore)
				}
			},
		},
		{
			name:    "max rate zero",
			initial: bound,
			call: func(u *Usecase) (*ParamsDTO, error) {
				return u.SetMaxInterestRate(ctx, admin, decimal.Zero)
			},
			wantErr: errs.ErrInvalidMaxInterest,
		},
		{
			name:    "max rate beyond ledger scale",
			initial: bound,
			call: func(u *Usecase) (*ParamsDTO, error) {
				return u.SetMaxInterestRate(ctx, admin, decimal.RequireFromString("1e-50000000"))
			},
			wantErr: errs.ErrInvalidPrecision,
		},
		{
			name:    "max rate",
			initial: bound,
			call: func(u *Usecase) (*ParamsDTO, error) {
				return u.SetMaxInterestRate(ctx, admin, decimal.NewFromInt(20))
			},
			check: func(t *testing.T, p *domain.ParameterSet) {
				if !p.MaxInterestRate.Equal(decimal.NewFromInt(20)) {
					t.Fatalf("max rate = %s", p.MaxInterestRate)
				}
				if !p.IssuanceFee.Equal(decimal.NewFromInt(500)) || p.MinTrustScore != 50 {
					t.Fatalf("setter touched other fields: %+v", p)
				}
			},
		},
		{
			name:    "duration min zero",
			initial: bound,
			call: func(u *Usecase) (*ParamsDTO, error) {
				return u.SetRepaymentDurationRange(ctx, admin, 0, 10)
			},
			wantErr: errs.ErrInvalidMinDuration,
		},
		{
			name:    "duration max below min",
			initial: bound,
			call: func(u *Usecase) (*ParamsDTO, error) {
				return u.SetRepaymentDurationRange(ctx, admin, 10, 9)
			},
			wantErr: errs.ErrInvalidMaxDuration,
		},
		{
			name:    "duration equal bounds",
			initial: bound,
			call: func(u *Usecase) (*ParamsDTO, error) {
				return u.SetRepaymentDurationRange(ctx, admin, 45, 45)
			},
			check: func(t *testing.T, p *domain.ParameterSet) {
				if p.MinRepaymentDuration != 45 || p.MaxRepaymentDuration != 45 {
					t.Fatalf("range = [%d,%d]", p.MinRepaymentDuration, p.MaxRepaymentDuration)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, row, saved := newUsecase(t, tt.initial(t))
			dto, err := tt.call(uc)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("want %v, got %v", tt.wantErr, err)
				}
				if *saved {
					t.Fatalf("rejected setter persisted")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if dto == nil || !*saved {
				t.Fatalf("success without dto or save")
			}
			tt.check(t, row)
		})
	}
}

func TestGet(t *testing.T) {
	p := bound(t)
	p.NextLoanID = 4
	uc, _, _ := newUsecase(t, p)

	dto, err := uc.Get(context.Background())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if dto.LoanCount != 4 || dto.AuthorityContract != "ST1AUTHORITY" || dto.MaxRepaymentDuration != 365 {
		t.Fatalf("unexpected dto: %+v", dto)
	}
}

func TestMutate_StoreFailure(t *testing.T) {
	down := errors.New("db down")
	repo := &paramsmock.Repo{GetFn: func(context.Context) (*domain.ParameterSet, error) { return nil, down }}
	log, hook := logtest.NewNullLogger()
	uc := NewUsecase(uowmock.Passthrough(uow.Repos{Params: repo}), repo, log)

	if _, err := uc.SetMinTrustScore(context.Background(), admin, 1); !errors.Is(err, down) {
		t.Fatalf("want db error, got %v", err)
	}
	if last := hook.LastEntry(); last == nil || last.Message != "parameter change failed" {
		t.Fatalf("expected failure log, got %+v", last)
	}
}
