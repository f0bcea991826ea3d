package authority

import (
	"context"
	"sort"
	"sync"

	"microfinance-ledger/internal/domain/authority"
)

var _ authority.Registry = (*StaticOracle)(nil)

// StaticOracle keeps the verified set in process memory.
type StaticOracle struct {
	mu  sync.RWMutex
	set map[string]struct{}
}

func NewStaticOracle(principals ...string) *StaticOracle {
	o := &StaticOracle{set: make(map[string]struct{}, len(principals))}
	for _, p := range principals {
		o.set[p] = struct{}{}
	}
	return o
}

func (o *StaticOracle) IsVerifiedAuthority(_ context.Context, principal string) (bool, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	_, ok := o.set[principal]
	return ok, nil
}

func (o *StaticOracle) Add(_ context.Context, principals ...string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, p := range principals {
		o.set[p] = struct{}{}
	}
	return nil
}

func (o *StaticOracle) Remove(_ context.Context, principal string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.set, principal)
	return nil
}

func (o *StaticOracle) List(_ context.Context) ([]string, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	out := make([]string, 0, len(o.set))
	for p := range o.set {
		out = append(out, p)
	}
	sort.Strings(out)
	return out, nil
}
