// Package directoryrepo adapts the order/part directory tables. The
// directory owns order and part records; this core reads ids and display
// fields from it and writes back the derived lifecycle status. Sharing the
// shop database lets the write-back commit atomically with ledger appends.
package directoryrepo

import (
	"github.com/google/uuid"
)

// OrderDTO maps directory orders to the orders table. Status holds the
// derived lifecycle string kept refreshed by scan processing; everything
// else is owned by the order intake system.
type OrderDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Number     string    `gorm:"index"`
	Customer   string
	PanelCount int
	Status     string
}

// TableName overrides GORM's default naming to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// PartDTO maps directory parts to the parts table. The part set of an order
// is fixed when it is sent to production.
type PartDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID uuid.UUID `gorm:"type:uuid;index"`
	Label   string
}

// TableName overrides GORM's default naming to use "parts".
func (PartDTO) TableName() string {
	return "parts"
}
