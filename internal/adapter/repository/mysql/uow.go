package mysql

import (
	"context"
	"sync"

	"microfinance-ledger/internal/domain/uow"

	"gorm.io/gorm"
)

// GormUoW runs each unit of work in a db transaction. The mutex keeps units
// of work strictly sequential in this process, which covers drivers without
// row locks (sqlite) and the read-check-write on the parameters row.
type GormUoW struct {
	mu sync.Mutex
	db *gorm.DB
}

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(reposFor(tx))
	})
}

// Repos returns repositories over committed state, for reads.
func (u *GormUoW) Repos() uow.Repos { return reposFor(u.db) }

func reposFor(db *gorm.DB) uow.Repos {
	return uow.Repos{
		Loans:     &LoanRepository{db: db},
		Updates:   &UpdateRepository{db: db},
		Params:    &ParamsRepository{db: db},
		Transfers: &TransferJournal{db: db},
	}
}
