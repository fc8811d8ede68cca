package logic

import (
	"context"
	"strings"

	"github.com/blues/cfp/internal/model"
	"github.com/blues/cfp/internal/store"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProfileLogic 用户资料业务逻辑
type ProfileLogic struct {
	db *gorm.DB
}

// NewProfileLogic 创建资料业务逻辑
func NewProfileLogic(db *gorm.DB) *ProfileLogic {
	return &ProfileLogic{db: db}
}

// GetProfile 获取用户资料
func (l *ProfileLogic) GetProfile(ctx context.Context, id string) (*model.Profile, error) {
	var profile model.Profile
	if err := l.db.WithContext(ctx).First(&profile, "id = ?", id).Error; err != nil {
		return nil, store.Classify(err)
	}
	return &profile, nil
}

// UpsertProfile 创建或更新本人资料，Id以身份提供方给出的用户Id为准
func (l *ProfileLogic) UpsertProfile(ctx context.Context, userId string, profile *model.Profile) error {
	if strings.TrimSpace(userId) == "" {
		return ErrUnauthenticated
	}
	profile.Id = userId

	err := l.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "email", "avatar_url", "updated_at"}),
	}).Create(profile).Error
	if err != nil {
		return store.Classify(err)
	}
	return nil
}
