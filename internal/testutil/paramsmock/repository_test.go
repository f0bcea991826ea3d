package paramsmock

import (
	"context"
	"errors"
	"testing"

	"microfinance-ledger/internal/domain/params"
)

func TestRepo_GetDefault(t *testing.T) {
	got, err := (&Repo{}).Get(context.Background())
	if err != nil {
		t.Fatalf("Get default: %v", err)
	}
	if got.MinTrustScore != 50 || got.MaxLoans != 10_000 {
		t.Fatalf("Get default: unexpected %+v", got)
	}
}

func TestRepo_Funcs(t *testing.T) {
	ctx := context.Background()
	wantErr := errors.New("down")
	var saved *params.ParameterSet

	m := &Repo{
		GetFn:  func(context.Context) (*params.ParameterSet, error) { return nil, wantErr },
		SaveFn: func(_ context.Context, p *params.ParameterSet) error { saved = p; return nil },
	}
	if _, err := m.Get(ctx); !errors.Is(err, wantErr) {
		t.Fatalf("Get: want %v, got %v", wantErr, err)
	}
	p := params.Defaults()
	if err := m.Save(ctx, &p); err != nil || saved != &p {
		t.Fatalf("Save not forwarded: %v", err)
	}
}
