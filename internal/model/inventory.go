package model

import (
	"time"

	"github.com/google/uuid"
)

// InventoryItem represents one stocked product. SKU is business-unique per
// owner (case-insensitive, trimmed) — enforced in the service layer before
// any write is attempted. Deleting an item does not cascade to orders; they
// keep their snapshot fields.
type InventoryItem struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`

	SKU      string `gorm:"type:varchar(100);not null;index" json:"sku"`
	Name     string `gorm:"type:varchar(255);not null" json:"name"`
	Category string `gorm:"type:varchar(100)" json:"category"`

	StockLevel        int       `gorm:"type:int;default:0;not null" json:"stock_level"`
	UnitCost          FlexFloat `gorm:"type:decimal(12,2)" json:"unit_cost"`
	RetailPrice       FlexFloat `gorm:"type:decimal(12,2)" json:"retail_price"`
	BankSettledAmount FlexFloat `gorm:"type:decimal(12,2)" json:"bank_settled_amount"` // pre-fills settled_amount on new orders
	MinStockLevel     int       `gorm:"type:int;default:0" json:"min_stock_level"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LowStock reports whether the item sits at or below its reorder threshold.
func (i *InventoryItem) LowStock() bool {
	return i.MinStockLevel > 0 && i.StockLevel <= i.MinStockLevel
}
