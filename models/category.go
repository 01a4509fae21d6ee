package models

import "time"

// Category represents a product category.
// Names are stored trimmed and upper-cased and are unique.
type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:191;not null" json:"name"`
	CreatedAt time.Time `gorm:"column:date_created" json:"date_created"`
	UpdatedAt time.Time `gorm:"column:date_updated" json:"date_updated"`
}

func (c *Category) TableName() string {
	return "categories"
}
