package database_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jerikareyna/modasnansi-backend-main/app/apperr"
	"github.com/jerikareyna/modasnansi-backend-main/app/database"
	"github.com/jerikareyna/modasnansi-backend-main/app/database/dbtest"
	"github.com/jerikareyna/modasnansi-backend-main/app/logger"
	"github.com/jerikareyna/modasnansi-backend-main/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestUnitOfWorkDo(t *testing.T) {
	ctx := context.Background()

	t.Run("commits on success", func(t *testing.T) {
		db := dbtest.Open(t)
		uow := database.NewUnitOfWork(db, logger.NewNop())

		err := uow.Do(ctx, "create brand", func(tx *gorm.DB) error {
			return tx.Create(&models.Brand{Name: "ACME"}).Error
		})

		require.NoError(t, err)
		assert.Equal(t, int64(1), dbtest.Count(t, db, &models.Brand{}))
	})

	t.Run("rolls back and keeps classified errors", func(t *testing.T) {
		db := dbtest.Open(t)
		uow := database.NewUnitOfWork(db, logger.NewNop())

		err := uow.Do(ctx, "create brand", func(tx *gorm.DB) error {
			if err := tx.Create(&models.Brand{Name: "ACME"}).Error; err != nil {
				return err
			}
			return apperr.NotFound("category 9 not found")
		})

		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
		assert.Equal(t, "category 9 not found", err.Error())
		assert.Equal(t, int64(0), dbtest.Count(t, db, &models.Brand{}))
	})

	t.Run("wraps unknown errors as internal", func(t *testing.T) {
		db := dbtest.Open(t)
		uow := database.NewUnitOfWork(db, logger.NewNop())

		err := uow.Do(ctx, "saving", func(tx *gorm.DB) error {
			return errors.New("disk full")
		})

		assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
		assert.Equal(t, "saving: disk full", err.Error())
	})

	t.Run("duplicate keys become conflict", func(t *testing.T) {
		db := dbtest.Open(t)
		require.NoError(t, db.Create(&models.Brand{Name: "ACME"}).Error)
		uow := database.NewUnitOfWork(db, logger.NewNop())

		err := uow.Do(ctx, "create brand", func(tx *gorm.DB) error {
			return tx.Create(&models.Brand{Name: "ACME"}).Error
		})

		assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
		assert.Equal(t, int64(1), dbtest.Count(t, db, &models.Brand{}))
	})

	t.Run("rolls back on panic and releases the connection", func(t *testing.T) {
		db := dbtest.Open(t)
		uow := database.NewUnitOfWork(db, logger.NewNop())

		assert.Panics(t, func() {
			_ = uow.Do(ctx, "create brand", func(tx *gorm.DB) error {
				if err := tx.Create(&models.Brand{Name: "ACME"}).Error; err != nil {
					return err
				}
				panic("unexpected fault")
			})
		})

		// The single test connection is usable again only if it was released.
		assert.Equal(t, int64(0), dbtest.Count(t, db, &models.Brand{}))
	})
}
