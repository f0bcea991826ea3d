package mysql

import (
	"context"
	"errors"
	"fmt"

	"microfinance-ledger/internal/domain/params"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ParamsRepository struct{ db *gorm.DB }

func NewParamsRepository(db *gorm.DB) *ParamsRepository { return &ParamsRepository{db: db} }

func (r *ParamsRepository) Get(ctx context.Context) (*params.ParameterSet, error) {
	var out params.ParameterSet
	err := r.db.WithContext(ctx).Where("id = ?", params.SingletonID).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("parameters row missing: %w", err)
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *ParamsRepository) Save(ctx context.Context, p *params.ParameterSet) error {
	p.ID = params.SingletonID
	return r.db.WithContext(ctx).Save(p).Error
}

// Seed inserts the initial row unless one already exists. Existing
// parameters are never overwritten by a restart.
func (r *ParamsRepository) Seed(ctx context.Context, initial params.ParameterSet) error {
	initial.ID = params.SingletonID
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&initial).Error
}
