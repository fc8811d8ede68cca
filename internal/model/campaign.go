package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Campaign 众筹活动模型
type Campaign struct {
	Id        string    `json:"id" gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 基本信息
	Title       string `json:"title" gorm:"not null" binding:"required"`
	Description string `json:"description" gorm:"type:text"`
	Category    string `json:"category"`
	ImageURL    string `json:"image_url"`

	// 筹款信息
	GoalAmount decimal.Decimal `json:"goal_amount" gorm:"type:numeric;not null"`
	// CurrentAmount 是捐赠流水的冗余汇总，以流水为准，由对账逻辑维护
	CurrentAmount decimal.Decimal `json:"current_amount" gorm:"type:numeric;default:0"`

	// 审核状态
	Status CampaignStatus `json:"status" gorm:"default:'pending'"`

	// 创建者
	UserId string `json:"user_id" gorm:"type:uuid;not null;index"`
}

// CampaignStatus 活动审核状态
type CampaignStatus string

const (
	CampaignStatusPending  CampaignStatus = "pending"  // 待审核
	CampaignStatusApproved CampaignStatus = "approved" // 已通过
	CampaignStatusRejected CampaignStatus = "rejected" // 已拒绝
)

// TableName 自定义表名
func (Campaign) TableName() string {
	return "campaigns"
}
