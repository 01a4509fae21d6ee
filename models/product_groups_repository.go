package models

import (
	"context"
	"errors"
	"time"

	"github.com/jerikareyna/modasnansi-backend-main/app/logger"
	"github.com/jerikareyna/modasnansi-backend-main/app/query"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrProductGroupNotFound is returned when a product group is not found.
var ErrProductGroupNotFound = errors.New("product group not found")

const (
	joinGroupBrands          = "LEFT JOIN brands ON brands.id = product_groups.brand_id"
	joinGroupTargetAudiences = "LEFT JOIN target_audiences ON target_audiences.id = product_groups.target_audience_id"
	joinGroupCategories      = "LEFT JOIN categories ON categories.id = product_groups.category_id"
)

var ProductGroupSchema = query.Schema{
	Table: "product_groups",
	Sortable: map[string]string{
		"id":           "product_groups.id",
		"name":         "product_groups.name",
		"date_created": "product_groups.date_created",
		"date_updated": "product_groups.date_updated",
	},
	DefaultSort: "date_updated",
}

type ProductGroupFilters struct {
	Name               string
	Description        string
	BrandName          string
	TargetAudienceName string
	CategoryName       string
}

func (f ProductGroupFilters) Filters() []query.Filter {
	return []query.Filter{
		query.Contains("product_groups.name", f.Name),
		query.Contains("product_groups.description", f.Description),
		query.Contains("brands.name", f.BrandName).Via(joinGroupBrands),
		query.Contains("target_audiences.name", f.TargetAudienceName).Via(joinGroupTargetAudiences),
		query.Contains("categories.name", f.CategoryName).Via(joinGroupCategories),
	}
}

// GroupPatch describes which parts of a group a persist call overwrites.
// Nil fields are left untouched; a nil relation slice keeps the relation.
type GroupPatch struct {
	Name             *string
	Description      *string
	Image            *string
	CategoryID       *uint
	BrandID          *uint
	TargetAudienceID *uint

	Variations          []Product
	RecommendedProducts []Product
}

// ApplyTo returns a copy of g with the patch applied.
func (p GroupPatch) ApplyTo(g ProductGroup) ProductGroup {
	if p.Name != nil {
		g.Name = *p.Name
	}
	if p.Description != nil {
		g.Description = *p.Description
	}
	if p.Image != nil {
		g.Image = *p.Image
	}
	if p.CategoryID != nil {
		g.CategoryID = *p.CategoryID
	}
	if p.BrandID != nil {
		g.BrandID = *p.BrandID
	}
	if p.TargetAudienceID != nil {
		g.TargetAudienceID = *p.TargetAudienceID
	}
	if p.Variations != nil {
		g.Variations = append([]Product(nil), p.Variations...)
	}
	if p.RecommendedProducts != nil {
		g.RecommendedProducts = append([]Product(nil), p.RecommendedProducts...)
	}
	return g
}

// columns returns the row columns the patch touches, read from g.
func (p GroupPatch) columns(g *ProductGroup) map[string]any {
	cols := map[string]any{"date_updated": time.Now()}
	if p.Name != nil {
		cols["name"] = g.Name
	}
	if p.Description != nil {
		cols["description"] = g.Description
	}
	if p.Image != nil {
		cols["image"] = g.Image
	}
	if p.CategoryID != nil {
		cols["category_id"] = g.CategoryID
	}
	if p.BrandID != nil {
		cols["brand_id"] = g.BrandID
	}
	if p.TargetAudienceID != nil {
		cols["target_audience_id"] = g.TargetAudienceID
	}
	return cols
}

type ProductGroupsRepository struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProductGroupsRepository(db *gorm.DB, baseLog *logger.Logger) *ProductGroupsRepository {
	return &ProductGroupsRepository{
		db:  db,
		log: baseLog.With("repo", "ProductGroupsRepository"),
	}
}

func (r *ProductGroupsRepository) conn(ctx context.Context, tx *gorm.DB) *gorm.DB {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx)
}

func preloadGroupAggregate(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Brand").
		Preload("Category").
		Preload("TargetAudience").
		Preload("Variations", func(db *gorm.DB) *gorm.DB { return db.Order("products.id ASC") }).
		Preload("Variations.Brand").
		Preload("Variations.Size").
		Preload("Variations.TargetAudience").
		Preload("Variations.Category").
		Preload("Variations.EducationLevel").
		Preload("RecommendedProducts", func(db *gorm.DB) *gorm.DB { return db.Order("products.id ASC") })
}

func (r *ProductGroupsRepository) GetFilteredGroups(ctx context.Context, params query.Params) (query.Result[ProductGroup], error) {
	plan, err := ProductGroupSchema.Compose(r.db.Dialector.Name(), params)
	if err != nil {
		return query.Result[ProductGroup]{}, err
	}

	var total int64
	if err := r.conn(ctx, nil).Model(&ProductGroup{}).
		Scopes(plan.FilterScope()).
		Count(&total).Error; err != nil {
		return query.Result[ProductGroup]{}, err
	}

	groups := []ProductGroup{}
	if err := r.conn(ctx, nil).Model(&ProductGroup{}).
		Scopes(plan.FilterScope(), plan.PageScope(), preloadGroupAggregate).
		Find(&groups).Error; err != nil {
		return query.Result[ProductGroup]{}, err
	}

	return query.Result[ProductGroup]{
		Data:       groups,
		Pagination: query.NewPagination(total, plan.Page, plan.Limit),
	}, nil
}

// GetByID loads the full aggregate.
func (r *ProductGroupsRepository) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*ProductGroup, error) {
	var group ProductGroup
	if err := r.conn(ctx, tx).
		Scopes(preloadGroupAggregate).
		Where("product_groups.id = ?", id).
		First(&group).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductGroupNotFound
		}
		return nil, err
	}
	return &group, nil
}

// Create inserts the group row and links its variations and recommended
// products.
func (r *ProductGroupsRepository) Create(ctx context.Context, tx *gorm.DB, group *ProductGroup) error {
	db := r.conn(ctx, tx)
	if err := db.Omit(clause.Associations).Create(group).Error; err != nil {
		return err
	}
	if err := r.replaceVariations(db, group.ID, group.VariationIDs()); err != nil {
		return err
	}
	return r.replaceRecommendations(db, group.ID, group.RecommendedProductIDs())
}

// Persist writes the patched group in one call: the row columns the patch
// names, then each relation the patch replaces wholesale. The group must
// have been loaded in the same transaction.
func (r *ProductGroupsRepository) Persist(ctx context.Context, tx *gorm.DB, group *ProductGroup, patch GroupPatch) error {
	db := r.conn(ctx, tx)
	if err := db.Model(&ProductGroup{}).Where("id = ?", group.ID).Updates(patch.columns(group)).Error; err != nil {
		return err
	}
	if patch.Variations != nil {
		if err := r.replaceVariations(db, group.ID, group.VariationIDs()); err != nil {
			return err
		}
	}
	if patch.RecommendedProducts != nil {
		if err := r.replaceRecommendations(db, group.ID, group.RecommendedProductIDs()); err != nil {
			return err
		}
	}
	return nil
}

// Delete detaches every variation in one statement, clears the
// recommended-products relation and removes the group row.
func (r *ProductGroupsRepository) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	db := r.conn(ctx, tx)
	if err := r.replaceVariations(db, id, nil); err != nil {
		return err
	}
	if err := r.replaceRecommendations(db, id, nil); err != nil {
		return err
	}
	res := db.Delete(&ProductGroup{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrProductGroupNotFound
	}
	return nil
}

func (r *ProductGroupsRepository) replaceVariations(db *gorm.DB, groupID uint, ids []uint) error {
	detach := db.Model(&Product{}).Where("product_group_id = ?", groupID)
	if len(ids) > 0 {
		detach = detach.Where("id NOT IN ?", ids)
	}
	if err := detach.Update("product_group_id", nil).Error; err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}
	return db.Model(&Product{}).
		Where("id IN ?", ids).
		Update("product_group_id", groupID).Error
}

func (r *ProductGroupsRepository) replaceRecommendations(db *gorm.DB, groupID uint, ids []uint) error {
	if err := db.Where("product_group_id = ?", groupID).Delete(&productGroupRecommendation{}).Error; err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}
	rows := make([]productGroupRecommendation, len(ids))
	for i, id := range ids {
		rows[i] = productGroupRecommendation{ProductGroupID: groupID, RecommendedProductID: id}
	}
	return db.Create(&rows).Error
}
