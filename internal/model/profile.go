package model

import (
	"time"
)

// Profile 用户资料，Id与身份提供方的用户Id一致
type Profile struct {
	Id        string    `json:"id" gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}

// TableName 自定义表名
func (Profile) TableName() string {
	return "profiles"
}
