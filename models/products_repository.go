package models

import (
	"context"
	"errors"

	"github.com/jerikareyna/modasnansi-backend-main/app/logger"
	"github.com/jerikareyna/modasnansi-backend-main/app/query"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductsRepository struct {
	db  *gorm.DB
	log *logger.Logger
}

// ErrProductNotFound is returned when a product is not found.
var ErrProductNotFound = errors.New("product not found")

const (
	joinBrands          = "LEFT JOIN brands ON brands.id = products.brand_id"
	joinTargetAudiences = "LEFT JOIN target_audiences ON target_audiences.id = products.target_audience_id"
	joinEducationLevels = "LEFT JOIN education_levels ON education_levels.id = products.education_level_id"
	joinCategories      = "LEFT JOIN categories ON categories.id = products.category_id"
	joinSizes           = "LEFT JOIN sizes ON sizes.id = products.size_id"
)

// ProductSchema lists the sortable product columns.
var ProductSchema = query.Schema{
	Table: "products",
	Sortable: map[string]string{
		"id":           "products.id",
		"code":         "products.code",
		"name":         "products.name",
		"price":        "products.price",
		"stock":        "products.stock",
		"date_created": "products.date_created",
		"date_updated": "products.date_updated",
	},
	DefaultSort: "date_updated",
}

type ProductFilters struct {
	Code               string
	Name               string
	Description        string
	Genre              string
	Price              *decimal.Decimal
	BrandName          string
	TargetAudienceName string
	EducationLevelName string
	CategoryName       string
	SizeName           string
}

// Filters converts the filter set into composer filters. Empty fields are
// dropped by the composer.
func (f ProductFilters) Filters() []query.Filter {
	var price any
	if f.Price != nil {
		price = *f.Price
	}
	return []query.Filter{
		query.Contains("products.code", f.Code),
		query.Contains("products.name", f.Name),
		query.Contains("products.description", f.Description),
		query.Equals("products.genre", nonEmpty(f.Genre)),
		query.Equals("products.price", price),
		query.Contains("brands.name", f.BrandName).Via(joinBrands),
		query.Contains("target_audiences.name", f.TargetAudienceName).Via(joinTargetAudiences),
		query.Contains("education_levels.name", f.EducationLevelName).Via(joinEducationLevels),
		query.Contains("categories.name", f.CategoryName).Via(joinCategories),
		query.Contains("sizes.name", f.SizeName).Via(joinSizes),
	}
}

func nonEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func NewProductsRepository(db *gorm.DB, baseLog *logger.Logger) *ProductsRepository {
	return &ProductsRepository{
		db:  db,
		log: baseLog.With("repo", "ProductsRepository"),
	}
}

func (r *ProductsRepository) conn(ctx context.Context, tx *gorm.DB) *gorm.DB {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx)
}

func preloadProductReferences(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Brand").
		Preload("TargetAudience").
		Preload("EducationLevel").
		Preload("Category").
		Preload("Size")
}

func (r *ProductsRepository) GetFilteredProducts(ctx context.Context, params query.Params) (query.Result[Product], error) {
	plan, err := ProductSchema.Compose(r.db.Dialector.Name(), params)
	if err != nil {
		return query.Result[Product]{}, err
	}

	var total int64
	// Count total after filtering
	if err := r.conn(ctx, nil).Model(&Product{}).
		Scopes(plan.FilterScope()).
		Count(&total).Error; err != nil {
		return query.Result[Product]{}, err
	}

	products := []Product{}
	if err := r.conn(ctx, nil).Model(&Product{}).
		Scopes(plan.FilterScope(), plan.PageScope(), preloadProductReferences).
		Find(&products).Error; err != nil {
		return query.Result[Product]{}, err
	}

	return query.Result[Product]{
		Data:       products,
		Pagination: query.NewPagination(total, plan.Page, plan.Limit),
	}, nil
}

func (r *ProductsRepository) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*Product, error) {
	var product Product
	if err := r.conn(ctx, tx).
		Scopes(preloadProductReferences).
		Where("products.id = ?", id).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err // Other DB error
	}
	return &product, nil
}

// FindByIDs returns the products that exist among ids, in no particular order.
func (r *ProductsRepository) FindByIDs(ctx context.Context, tx *gorm.DB, ids []uint) ([]Product, error) {
	products := []Product{}
	if len(ids) == 0 {
		return products, nil
	}
	if err := r.conn(ctx, tx).
		Where("id IN ?", ids).
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// NameTaken reports whether another product already uses name, ignoring case.
func (r *ProductsRepository) NameTaken(ctx context.Context, tx *gorm.DB, name string, excludeID uint) (bool, error) {
	return r.taken(ctx, tx, "name", name, excludeID)
}

// CodeTaken reports whether another product already uses code, ignoring case.
func (r *ProductsRepository) CodeTaken(ctx context.Context, tx *gorm.DB, code string, excludeID uint) (bool, error) {
	return r.taken(ctx, tx, "code", code, excludeID)
}

func (r *ProductsRepository) taken(ctx context.Context, tx *gorm.DB, column, value string, excludeID uint) (bool, error) {
	var count int64
	q := r.conn(ctx, tx).Model(&Product{}).Where("LOWER("+column+") = LOWER(?)", value)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ProductsRepository) Create(ctx context.Context, tx *gorm.DB, product *Product) error {
	return r.conn(ctx, tx).Omit(clause.Associations).Create(product).Error
}

// Update writes the given columns of one product. Callers load the row in
// the same transaction first; RowsAffected is not checked because MySQL
// reports changed rows, not matched ones.
func (r *ProductsRepository) Update(ctx context.Context, tx *gorm.DB, id uint, changes map[string]any) error {
	return r.conn(ctx, tx).Model(&Product{}).Where("id = ?", id).Updates(changes).Error
}

// Delete removes the product and the recommendation rows pointing at it.
func (r *ProductsRepository) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	db := r.conn(ctx, tx)
	if err := db.Where("recommended_product_id = ?", id).Delete(&productGroupRecommendation{}).Error; err != nil {
		return err
	}
	res := db.Delete(&Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}
