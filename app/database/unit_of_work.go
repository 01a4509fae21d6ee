package database

import (
	"context"

	"github.com/jerikareyna/modasnansi-backend-main/app/apperr"
	"github.com/jerikareyna/modasnansi-backend-main/app/logger"
	"gorm.io/gorm"
)

// TxFunc is the body of a unit of work. Every statement it issues must go
// through tx.
type TxFunc func(tx *gorm.DB) error

// Transactor runs a TxFunc as one unit of work.
type Transactor interface {
	Do(ctx context.Context, action string, fn TxFunc) error
}

type UnitOfWork struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUnitOfWork(db *gorm.DB, baseLog *logger.Logger) *UnitOfWork {
	return &UnitOfWork{db: db, log: baseLog.With("component", "UnitOfWork")}
}

// Do begins a transaction, runs fn and commits when it returns nil. An
// error or a panic in fn rolls the transaction back; the panic is re-raised
// after the rollback. The connection goes back to the pool on every path.
// Errors that are not already classified come back as InternalError
// carrying the cause.
func (u *UnitOfWork) Do(ctx context.Context, action string, fn TxFunc) error {
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(tx)
	})
	if err != nil {
		u.log.Warn("transaction rolled back", "action", action, "error", err.Error())
		return apperr.Wrap(err, action)
	}
	u.log.Debug("transaction committed", "action", action)
	return nil
}
