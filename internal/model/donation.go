package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Donation 捐赠记录，写入后不可修改
type Donation struct {
	Id        string    `json:"id" gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	CampaignId string          `json:"campaign_id" gorm:"type:uuid;not null;index"`
	UserId     string          `json:"user_id" gorm:"type:uuid;not null"`
	Amount     decimal.Decimal `json:"amount" gorm:"type:numeric;not null"`
	Anonymous  bool            `json:"anonymous" gorm:"default:false"`
}

// TableName 自定义表名
func (Donation) TableName() string {
	return "donations"
}
