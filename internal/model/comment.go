package model

import (
	"time"
)

// Comment 活动评论
type Comment struct {
	Id        string    `json:"id" gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	CampaignId string `json:"campaign_id" gorm:"type:uuid;not null;index"`
	UserId     string `json:"user_id" gorm:"type:uuid;not null"`
	Content    string `json:"content" gorm:"type:text;not null"`
}

// TableName 自定义表名
func (Comment) TableName() string {
	return "comments"
}
