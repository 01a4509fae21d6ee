// Package inventory adjusts product stock counters.
//
// Decreases are strict: every item of a batch must apply or the caller's
// transaction is rolled back. Increases are a best-effort compensation:
// failures are logged, recorded as pending restocks and never returned.
// Reconcile retries the recorded increments.
package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/jerikareyna/modasnansi-backend-main/app/apperr"
	"github.com/jerikareyna/modasnansi-backend-main/app/database"
	"github.com/jerikareyna/modasnansi-backend-main/app/logger"
	"github.com/jerikareyna/modasnansi-backend-main/models"
	"gorm.io/gorm"
)

// Item is one (product, quantity) pair of a stock batch.
type Item struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// ReconcileReport summarises one reconciliation run.
type ReconcileReport struct {
	Applied int `json:"applied"`
	Dropped int `json:"dropped"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
}

type Ledger struct {
	uow      database.Transactor
	products *models.ProductsRepository
	restocks *models.RestocksRepository
	log      *logger.Logger
}

func NewLedger(uow database.Transactor, products *models.ProductsRepository, restocks *models.RestocksRepository, baseLog *logger.Logger) *Ledger {
	return &Ledger{
		uow:      uow,
		products: products,
		restocks: restocks,
		log:      baseLog.With("component", "InventoryLedger"),
	}
}

// DecreaseStock applies the batch in its own unit of work.
func (l *Ledger) DecreaseStock(ctx context.Context, items []Item) error {
	return l.uow.Do(ctx, "decrease stock", func(tx *gorm.DB) error {
		return l.DecreaseStockTx(ctx, tx, items)
	})
}

// DecreaseStockTx decrements every item inside the caller's transaction.
// The first failing item stops the batch and its error is returned; the
// caller must roll back so earlier decrements of the batch are undone.
func (l *Ledger) DecreaseStockTx(ctx context.Context, tx *gorm.DB, items []Item) error {
	for _, item := range items {
		if err := l.decrease(ctx, tx, item); err != nil {
			l.log.Error("stock decrease failed",
				"product_id", item.ProductID,
				"quantity", item.Quantity,
				"error", err.Error(),
			)
			return err
		}
		l.log.Info("stock decreased", "product_id", item.ProductID, "quantity", item.Quantity)
	}
	return nil
}

func (l *Ledger) decrease(ctx context.Context, tx *gorm.DB, item Item) error {
	if item.Quantity <= 0 {
		return invalidQuantity(item)
	}
	ok, err := l.products.DecrementStock(ctx, tx, item.ProductID, item.Quantity)
	if err != nil {
		return apperr.Internal(err, "decrease stock")
	}
	if ok {
		return nil
	}

	// Zero rows changed: either the product is gone or its stock is short.
	stock, err := l.products.GetStock(ctx, tx, item.ProductID)
	if errors.Is(err, models.ErrProductNotFound) {
		return productNotFound(item.ProductID)
	}
	if err != nil {
		return apperr.Internal(err, "decrease stock")
	}
	return &apperr.Error{
		Kind:    apperr.KindConflict,
		Message: fmt.Sprintf("insufficient stock: have %d, need %d", stock, item.Quantity),
		IDs:     []uint{item.ProductID},
	}
}

// IncreaseStock adds every item's quantity back to stock. With a nil tx it
// runs against the database directly; otherwise each item's increment and
// each pending-restock insert runs under its own savepoint so a failed
// statement does not poison the caller's transaction.
// Per-item failures are logged and recorded for Reconcile, never returned.
func (l *Ledger) IncreaseStock(ctx context.Context, tx *gorm.DB, items []Item) {
	for i, item := range items {
		if item.Quantity <= 0 {
			l.log.Error("stock increase skipped",
				"product_id", item.ProductID,
				"quantity", item.Quantity,
				"error", invalidQuantity(item).Error(),
			)
			continue
		}

		err := l.withSavepoint(tx, fmt.Sprintf("restock_%d", i), func(db *gorm.DB) error {
			return l.increment(ctx, db, item)
		})
		if err == nil {
			l.log.Info("stock increased", "product_id", item.ProductID, "quantity", item.Quantity)
			continue
		}

		l.log.Error("stock increase failed",
			"product_id", item.ProductID,
			"quantity", item.Quantity,
			"error", err.Error(),
		)
		pending := &models.PendingRestock{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Reason:    err.Error(),
		}
		recErr := l.withSavepoint(tx, fmt.Sprintf("restock_record_%d", i), func(db *gorm.DB) error {
			return l.restocks.Record(ctx, db, pending)
		})
		if recErr != nil {
			l.log.Error("pending restock not recorded",
				"product_id", item.ProductID,
				"quantity", item.Quantity,
				"error", recErr.Error(),
			)
		}
	}
}

// withSavepoint runs fn on tx under a savepoint and rolls back to it when fn
// fails, leaving the rest of tx usable. A nil tx runs fn directly.
func (l *Ledger) withSavepoint(tx *gorm.DB, name string, fn func(db *gorm.DB) error) error {
	if tx == nil {
		return fn(nil)
	}

	if err := tx.SavePoint(name).Error; err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.RollbackTo(name).Error; rbErr != nil {
			return fmt.Errorf("%w (rollback to savepoint: %v)", err, rbErr)
		}
		return err
	}
	return nil
}

func (l *Ledger) increment(ctx context.Context, tx *gorm.DB, item Item) error {
	ok, err := l.products.IncrementStock(ctx, tx, item.ProductID, item.Quantity)
	if err != nil {
		return err
	}
	if !ok {
		return productNotFound(item.ProductID)
	}
	return nil
}

// CheckStock reports whether the product currently has at least quantity
// units. The answer is advisory: a concurrent decrease may change it before
// the caller acts on it.
func (l *Ledger) CheckStock(ctx context.Context, productID uint, quantity int) (bool, error) {
	if quantity <= 0 {
		return false, invalidQuantity(Item{ProductID: productID, Quantity: quantity})
	}
	stock, err := l.products.GetStock(ctx, nil, productID)
	if errors.Is(err, models.ErrProductNotFound) {
		return false, productNotFound(productID)
	}
	if err != nil {
		return false, apperr.Internal(err, "check stock")
	}
	return stock >= quantity, nil
}

// Reconcile retries every pending restock, oldest first. Each retry claims
// its pending row and applies the increment in one unit of work. Rows whose
// product no longer exists are dropped; other failures stay pending with
// their attempt counter bumped.
func (l *Ledger) Reconcile(ctx context.Context) (ReconcileReport, error) {
	var report ReconcileReport

	pending, err := l.restocks.Pending(ctx, nil)
	if err != nil {
		return report, apperr.Internal(err, "list pending restocks")
	}

	for _, p := range pending {
		claimed := false
		err := l.uow.Do(ctx, "reconcile restock", func(tx *gorm.DB) error {
			ok, err := l.restocks.Resolve(ctx, tx, p.ID)
			if err != nil || !ok {
				return err
			}
			claimed = true
			return l.increment(ctx, tx, Item{ProductID: p.ProductID, Quantity: p.Quantity})
		})

		switch {
		case err == nil && !claimed:
			report.Skipped++
		case err == nil:
			report.Applied++
			l.log.Info("pending restock applied", "pending_id", p.ID, "product_id", p.ProductID, "quantity", p.Quantity)
		case apperr.KindOf(err) == apperr.KindNotFound:
			if _, dropErr := l.restocks.Resolve(ctx, nil, p.ID); dropErr != nil {
				report.Failed++
				l.log.Error("pending restock not dropped", "pending_id", p.ID, "error", dropErr.Error())
				continue
			}
			report.Dropped++
			l.log.Error("pending restock dropped",
				"pending_id", p.ID,
				"product_id", p.ProductID,
				"quantity", p.Quantity,
				"error", err.Error(),
			)
		default:
			report.Failed++
			if markErr := l.restocks.MarkAttempt(ctx, nil, p.ID, err.Error()); markErr != nil {
				l.log.Error("pending restock attempt not recorded", "pending_id", p.ID, "error", markErr.Error())
			}
			l.log.Error("pending restock failed", "pending_id", p.ID, "product_id", p.ProductID, "error", err.Error())
		}
	}

	return report, nil
}

func invalidQuantity(item Item) *apperr.Error {
	return &apperr.Error{
		Kind:    apperr.KindBadRequest,
		Message: fmt.Sprintf("quantity must be greater than zero, got %d", item.Quantity),
	}
}

func productNotFound(id uint) *apperr.Error {
	return &apperr.Error{
		Kind:    apperr.KindNotFound,
		Message: fmt.Sprintf("product %d not found", id),
		IDs:     []uint{id},
	}
}
