package model

import (
	"time"
)

// Like 点赞记录，同一用户对同一活动只能点赞一次
type Like struct {
	Id        string    `json:"id" gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	CampaignId string `json:"campaign_id" gorm:"type:uuid;not null;uniqueIndex:idx_like_campaign_user"`
	UserId     string `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_like_campaign_user"`
}

// TableName 自定义表名
func (Like) TableName() string {
	return "likes"
}
