package logic

import (
	"context"
	"fmt"
	"strings"

	"github.com/blues/cfp/internal/model"
	"github.com/blues/cfp/internal/store"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CommentLogic 评论业务逻辑
type CommentLogic struct {
	db *gorm.DB
}

// NewCommentLogic 创建评论业务逻辑
func NewCommentLogic(db *gorm.DB) *CommentLogic {
	return &CommentLogic{db: db}
}

// CreateComment 发表评论
func (l *CommentLogic) CreateComment(ctx context.Context, userId, campaignId, content string) (*model.Comment, error) {
	if strings.TrimSpace(userId) == "" {
		return nil, ErrUnauthenticated
	}
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("评论内容不能为空")
	}

	// 评论只挂在存在的活动下
	var campaign model.Campaign
	if err := l.db.WithContext(ctx).First(&campaign, "id = ?", campaignId).Error; err != nil {
		if store.IsNotFound(err) {
			return nil, ErrCampaignNotFound
		}
		return nil, store.Classify(err)
	}

	comment := &model.Comment{
		Id:         uuid.NewString(),
		CampaignId: campaignId,
		UserId:     userId,
		Content:    strings.TrimSpace(content),
	}
	if err := l.db.WithContext(ctx).Create(comment).Error; err != nil {
		return nil, store.Classify(err)
	}
	return comment, nil
}

// ListComments 获取活动评论，最新的在前
func (l *CommentLogic) ListComments(ctx context.Context, campaignId string) ([]model.Comment, error) {
	var comments []model.Comment
	if err := l.db.WithContext(ctx).
		Where("campaign_id = ?", campaignId).
		Order("created_at DESC").
		Find(&comments).Error; err != nil {
		return nil, store.Classify(err)
	}
	return comments, nil
}
