package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Invoice statuses. A flat classification set directly by the caller;
// nothing advances an invoice between them automatically.
const (
	InvoiceStatusPending = "pending"
	InvoiceStatusPaid    = "paid"
)

type Invoice struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	CustomerID string    `gorm:"type:uuid;index;not null" json:"customer_id"`
	Amount     int64     `gorm:"not null" json:"amount"`       // minor units (cents)
	Status     string    `gorm:"size:20;not null" json:"status"` // pending, paid
	Date       string    `gorm:"size:10;not null" json:"date"`   // YYYY-MM-DD, fixed at creation
}

// BeforeCreate assigns the store-generated id.
func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName overrides the table name
func (Invoice) TableName() string {
	return "invoices"
}
