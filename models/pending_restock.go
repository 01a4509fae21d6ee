package models

import "time"

// PendingRestock records a stock increment that failed and still has to be
// applied by reconciliation.
type PendingRestock struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProductID uint      `gorm:"index;not null" json:"product_id"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	Reason    string    `json:"reason"`
	Attempts  int       `gorm:"not null;default:0" json:"attempts"`
	CreatedAt time.Time `gorm:"column:date_created" json:"date_created"`
	UpdatedAt time.Time `gorm:"column:date_updated" json:"date_updated"`
}

func (p *PendingRestock) TableName() string {
	return "pending_restocks"
}
