package model

import "time"

// swagger:model UserSubscription
type UserSubscription struct {
	ID                     uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID                 string    `gorm:"size:64;not null;unique" json:"userId"`
	StripeCustomerID       string    `gorm:"size:255;not null;unique" json:"stripeCustomerId"`
	StripeSubscriptionID   string    `gorm:"size:255;not null;unique" json:"stripeSubscriptionId"`
	StripePriceID          string    `gorm:"size:255;not null" json:"stripePriceId"`
	StripeCurrentPeriodEnd time.Time `gorm:"not null" json:"stripeCurrentPeriodEnd"`

	// 非数据库字段：price id 存在且 periodEnd+宽限期 尚未过期
	IsActive bool `gorm:"-" json:"isActive"`
}

func (UserSubscription) TableName() string {
	return "user_subscription"
}
