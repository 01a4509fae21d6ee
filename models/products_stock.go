package models

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// DecrementStock subtracts quantity from the product's stock only when the
// current stock covers it. The guard is evaluated by the UPDATE itself, so
// concurrent decrements are serialised by the row lock. It reports whether a
// row was changed; false means missing product or insufficient stock.
func (r *ProductsRepository) DecrementStock(ctx context.Context, tx *gorm.DB, id uint, quantity int) (bool, error) {
	res := r.conn(ctx, tx).Model(&Product{}).
		Where("id = ? AND stock >= ?", id, quantity).
		Update("stock", gorm.Expr("stock - ?", quantity))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// IncrementStock adds quantity to the product's stock. It reports whether
// the product exists.
func (r *ProductsRepository) IncrementStock(ctx context.Context, tx *gorm.DB, id uint, quantity int) (bool, error) {
	res := r.conn(ctx, tx).Model(&Product{}).
		Where("id = ?", id).
		Update("stock", gorm.Expr("stock + ?", quantity))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// GetStock reads the current stock of one product.
func (r *ProductsRepository) GetStock(ctx context.Context, tx *gorm.DB, id uint) (int, error) {
	var product Product
	if err := r.conn(ctx, tx).
		Select("id", "stock").
		Where("id = ?", id).
		Take(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrProductNotFound
		}
		return 0, err
	}
	return product.Stock, nil
}
