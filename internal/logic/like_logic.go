package logic

import (
	"context"
	"strings"

	"github.com/blues/cfp/internal/model"
	"github.com/blues/cfp/internal/store"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LikeLogic 点赞业务逻辑
type LikeLogic struct {
	db *gorm.DB
}

// NewLikeLogic 创建点赞业务逻辑
func NewLikeLogic(db *gorm.DB) *LikeLogic {
	return &LikeLogic{db: db}
}

// Toggle 切换点赞状态，返回切换后是否为已点赞
func (l *LikeLogic) Toggle(ctx context.Context, userId, campaignId string) (bool, error) {
	if strings.TrimSpace(userId) == "" {
		return false, ErrUnauthenticated
	}

	var existing model.Like
	err := l.db.WithContext(ctx).
		Where("campaign_id = ? AND user_id = ?", campaignId, userId).
		First(&existing).Error

	if err == nil {
		if err := l.db.WithContext(ctx).Delete(&model.Like{}, "id = ?", existing.Id).Error; err != nil {
			return true, store.Classify(err)
		}
		return false, nil
	}
	if !store.IsNotFound(err) {
		return false, store.Classify(err)
	}

	like := &model.Like{
		Id:         uuid.NewString(),
		CampaignId: campaignId,
		UserId:     userId,
	}
	if err := l.db.WithContext(ctx).Create(like).Error; err != nil {
		// 并发下的唯一索引冲突按已点赞处理
		if store.IsConstraint(store.Classify(err)) {
			return true, nil
		}
		return false, store.Classify(err)
	}
	return true, nil
}

// Count 活动点赞数
func (l *LikeLogic) Count(ctx context.Context, campaignId string) (int64, error) {
	var count int64
	if err := l.db.WithContext(ctx).Model(&model.Like{}).
		Where("campaign_id = ?", campaignId).
		Count(&count).Error; err != nil {
		return 0, store.Classify(err)
	}
	return count, nil
}

// Liked 用户是否已点赞该活动
func (l *LikeLogic) Liked(ctx context.Context, userId, campaignId string) (bool, error) {
	if userId == "" {
		return false, nil
	}
	var count int64
	if err := l.db.WithContext(ctx).Model(&model.Like{}).
		Where("campaign_id = ? AND user_id = ?", campaignId, userId).
		Count(&count).Error; err != nil {
		return false, store.Classify(err)
	}
	return count > 0, nil
}
