package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionCreateOrder         = "CREATE_ORDER"
	ActionUpdateOrder         = "UPDATE_ORDER"
	ActionDeleteOrder         = "DELETE_ORDER"
	ActionChangeOrderStatus   = "CHANGE_ORDER_STATUS"
	ActionUpdateReturnDetails = "UPDATE_RETURN_DETAILS"

	ActionCreateItem = "CREATE_ITEM"
	ActionUpdateItem = "UPDATE_ITEM"
	ActionDeleteItem = "DELETE_ITEM"

	ActionShareData       = "SHARE_DATA"
	ActionUpdateWorkspace = "UPDATE_WORKSPACE"
)

// AuditLog tracks Who, What, and When for critical system changes
type AuditLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     *uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	User       *User      `gorm:"foreignKey:UserID" json:"user"`
	Action     string     `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID   string     `gorm:"type:varchar(50);index" json:"entity_id"`
	EntityName string     `gorm:"type:varchar(255)" json:"entity_name,omitempty"`
	Details    string     `gorm:"type:jsonb" json:"details"` // serialized JSON payload of the action
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
}
