package domain

import (
	"time"

	"gorm.io/datatypes"
)

const (
	InteractionView      = "view"
	InteractionClick     = "click"
	InteractionAddToCart = "add_to_cart"
	InteractionPurchase  = "purchase"
)

type UserInteraction struct {
	ID               uint              `gorm:"primaryKey" json:"id"`
	UserID           uint              `gorm:"column:user_id;not null;index" json:"user_id"`
	ProductID        uint64            `gorm:"column:product_id;not null;index" json:"product_id"`
	InteractionType  string            `gorm:"column:interaction_type;not null;index" json:"interaction_type"`
	InteractionValue int               `gorm:"column:interaction_value;not null;default:1" json:"interaction_value"`
	InteractionTime  time.Time         `gorm:"column:interaction_time;autoCreateTime" json:"interaction_time"`
	Context          datatypes.JSONMap `gorm:"column:context;type:jsonb" json:"context,omitempty"`
}

func (UserInteraction) TableName() string {
	return "user_interactions"
}
