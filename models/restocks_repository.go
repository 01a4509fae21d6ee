package models

import (
	"context"

	"github.com/jerikareyna/modasnansi-backend-main/app/logger"
	"gorm.io/gorm"
)

// RestocksRepository stores increments that failed and await reconciliation.
type RestocksRepository struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRestocksRepository(db *gorm.DB, baseLog *logger.Logger) *RestocksRepository {
	return &RestocksRepository{
		db:  db,
		log: baseLog.With("repo", "RestocksRepository"),
	}
}

func (r *RestocksRepository) conn(ctx context.Context, tx *gorm.DB) *gorm.DB {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx)
}

func (r *RestocksRepository) Record(ctx context.Context, tx *gorm.DB, pending *PendingRestock) error {
	return r.conn(ctx, tx).Create(pending).Error
}

// Pending lists unreconciled increments, oldest first.
func (r *RestocksRepository) Pending(ctx context.Context, tx *gorm.DB) ([]PendingRestock, error) {
	pending := []PendingRestock{}
	if err := r.conn(ctx, tx).Order("id ASC").Find(&pending).Error; err != nil {
		return nil, err
	}
	return pending, nil
}

// Resolve deletes a pending row. It reports false when the row was already
// gone, i.e. another reconciliation claimed it first.
func (r *RestocksRepository) Resolve(ctx context.Context, tx *gorm.DB, id uint) (bool, error) {
	res := r.conn(ctx, tx).Delete(&PendingRestock{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// MarkAttempt bumps the attempt counter and stores the latest failure.
func (r *RestocksRepository) MarkAttempt(ctx context.Context, tx *gorm.DB, id uint, reason string) error {
	return r.conn(ctx, tx).Model(&PendingRestock{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"attempts": gorm.Expr("attempts + 1"),
			"reason":   reason,
		}).Error
}
