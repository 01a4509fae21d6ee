package models

import "time"

// ProductGroup is the aggregate root for a set of variation products, the
// products recommended alongside them and the group's reference attributes.
type ProductGroup struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:191;not null" json:"name"`
	Description string `json:"description"`
	Image       string `gorm:"not null" json:"image"`

	Variations          []Product `gorm:"foreignKey:ProductGroupID" json:"variations"`
	RecommendedProducts []Product `gorm:"many2many:product_group_recommendations;joinForeignKey:ProductGroupID;joinReferences:RecommendedProductID" json:"recommended_products"`

	CategoryID       uint           `gorm:"not null" json:"-"`
	Category         Category       `gorm:"foreignKey:CategoryID" json:"category"`
	BrandID          uint           `gorm:"not null" json:"-"`
	Brand            Brand          `gorm:"foreignKey:BrandID" json:"brand"`
	TargetAudienceID uint           `gorm:"not null" json:"-"`
	TargetAudience   TargetAudience `gorm:"foreignKey:TargetAudienceID" json:"target_audience"`

	CreatedAt time.Time `gorm:"column:date_created" json:"date_created"`
	UpdatedAt time.Time `gorm:"column:date_updated" json:"date_updated"`
}

func (g *ProductGroup) TableName() string {
	return "product_groups"
}

// productGroupRecommendation is a row of the recommended-products relation.
type productGroupRecommendation struct {
	ProductGroupID       uint `gorm:"primaryKey"`
	RecommendedProductID uint `gorm:"primaryKey"`
}

func (productGroupRecommendation) TableName() string {
	return "product_group_recommendations"
}

// VariationIDs returns the ids of the group's loaded variations.
func (g *ProductGroup) VariationIDs() []uint {
	return productIDs(g.Variations)
}

// RecommendedProductIDs returns the ids of the loaded recommended products.
func (g *ProductGroup) RecommendedProductIDs() []uint {
	return productIDs(g.RecommendedProducts)
}

func productIDs(products []Product) []uint {
	ids := make([]uint, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	return ids
}
