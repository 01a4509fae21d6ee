package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultImageURL is used when a product or group is created without an image.
const DefaultImageURL = "https://placehold.co/300x300/png"

// Genres accepted for Product.Genre.
const (
	GenreMale   = "MASCULINO"
	GenreFemale = "FEMENINO"
	GenreUnisex = "UNISEX"
)

func ValidGenre(g string) bool {
	switch g {
	case GenreMale, GenreFemale, GenreUnisex:
		return true
	}
	return false
}

// Product represents a product in the catalog.
// Code and name are unique; stock never goes below zero at rest.
// ProductGroupID is set while the product is a variation of a group.
type Product struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Code        string          `gorm:"uniqueIndex;size:191;not null" json:"code"`
	Name        string          `gorm:"uniqueIndex;size:191;not null" json:"name"`
	Description string          `json:"description"`
	Stock       int             `gorm:"not null;check:stock >= 0" json:"stock"`
	Genre       string          `gorm:"size:32;not null" json:"genre"`
	Image       string          `gorm:"not null" json:"image"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`

	BrandID          uint           `gorm:"not null" json:"-"`
	Brand            Brand          `gorm:"foreignKey:BrandID" json:"brand"`
	TargetAudienceID uint           `gorm:"not null" json:"-"`
	TargetAudience   TargetAudience `gorm:"foreignKey:TargetAudienceID" json:"target_audience"`
	EducationLevelID uint           `gorm:"not null" json:"-"`
	EducationLevel   EducationLevel `gorm:"foreignKey:EducationLevelID" json:"education_level"`
	CategoryID       uint           `gorm:"not null" json:"-"`
	Category         Category       `gorm:"foreignKey:CategoryID" json:"category"`
	SizeID           uint           `gorm:"not null" json:"-"`
	Size             Size           `gorm:"foreignKey:SizeID" json:"size"`

	ProductGroupID *uint `gorm:"index" json:"product_group_id"`

	CreatedAt time.Time `gorm:"column:date_created" json:"date_created"`
	UpdatedAt time.Time `gorm:"column:date_updated" json:"date_updated"`
}

func (p *Product) TableName() string {
	return "products"
}
