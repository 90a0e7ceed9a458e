package model

import (
	"time"

	"github.com/google/uuid"
)

// Return type of a returned order
const (
	ReturnTypeCourier  = "courier"
	ReturnTypeCustomer = "customer"
)

// Claim status for customer returns
const (
	ClaimNone        = "none"
	ClaimPending     = "pending"
	ClaimApproved    = "approved"
	ClaimRejected    = "rejected"
	ClaimNotRequired = "not_required"
)

// Received status of the returned goods
const (
	ReceivedPending     = "pending"
	ReceivedReceived    = "received"
	ReceivedNotReceived = "not_received"
)

// Order represents one sales transaction. ProductName, Category and the
// monetary fields are snapshots taken at creation — deleting the referenced
// inventory item later leaves the order fully reportable.
type Order struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"owner_id"`
	Date        string     `gorm:"type:varchar(10);not null;index" json:"date"` // YYYY-MM-DD
	ProductID   *uuid.UUID `gorm:"type:uuid;index" json:"product_id"`           // may dangle after item deletion
	ProductName string     `gorm:"type:varchar(255)" json:"product_name"`
	Category    string     `gorm:"type:varchar(100);index" json:"category"`

	ListingPrice  FlexFloat `gorm:"type:decimal(12,2)" json:"listing_price"`
	SettledAmount FlexFloat `gorm:"type:decimal(12,2)" json:"settled_amount"`
	// Profit is computed once at creation from the item's unit cost and then
	// stored. It is NOT recomputed when settled_amount changes later —
	// whoever corrects the amount must recompute profit from the original
	// unit cost (old settled − old profit).
	Profit FlexFloat `gorm:"type:decimal(12,2)" json:"profit"`

	// Status is a free-text label from the workspace vocabulary. Stored rows
	// may reference a label that was since removed from the vocabulary.
	Status string `gorm:"type:varchar(50);not null;index" json:"status"`

	// Return bookkeeping, meaningful only while Status carries the
	// workspace's returned label.
	ReturnType     string    `gorm:"type:varchar(20)" json:"return_type"`
	LossAmount     FlexFloat `gorm:"type:decimal(12,2)" json:"loss_amount"`
	ClaimStatus    string    `gorm:"type:varchar(20)" json:"claim_status"`
	ReceivedStatus string    `gorm:"type:varchar(20)" json:"received_status"`
	BankSettled    bool      `json:"bank_settled"`

	// StockDeducted records that this order already consumed a unit of the
	// referenced item's stock, so bouncing through other statuses and
	// re-settling never deducts twice.
	StockDeducted bool `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UnitCost recovers the per-unit cost captured at creation time.
func (o *Order) UnitCost() float64 {
	return o.SettledAmount.Float64() - o.Profit.Float64()
}
