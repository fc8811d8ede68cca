package logic

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/blues/cfp/internal/imagestore"
	"github.com/blues/cfp/internal/logger"
	"github.com/blues/cfp/internal/model"
	"github.com/blues/cfp/internal/store"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CampaignLogic 活动业务逻辑
type CampaignLogic struct {
	db     *gorm.DB
	images imagestore.Store
}

// NewCampaignLogic 创建活动业务逻辑
func NewCampaignLogic(db *gorm.DB, images imagestore.Store) *CampaignLogic {
	return &CampaignLogic{db: db, images: images}
}

// CampaignFilter 活动列表查询条件
type CampaignFilter struct {
	Status   model.CampaignStatus
	Category string
	Creator  string
	Search   string
	Page     int
	PageSize int
}

// DeleteStepError 级联删除的某一步失败，Step标明失败位置，之后的步骤不再执行
type DeleteStepError struct {
	Step string
	Err  error
}

func (e *DeleteStepError) Error() string {
	return fmt.Sprintf("级联删除在步骤 %s 失败: %v", e.Step, e.Err)
}

func (e *DeleteStepError) Unwrap() error {
	return e.Err
}

// CreateCampaign 创建活动，初始状态为待审核
func (c *CampaignLogic) CreateCampaign(ctx context.Context, ownerId string, campaign *model.Campaign) error {
	if strings.TrimSpace(ownerId) == "" {
		return ErrUnauthenticated
	}
	if err := c.validateCampaign(campaign); err != nil {
		return err
	}

	campaign.Id = uuid.NewString()
	campaign.UserId = ownerId
	campaign.Status = model.CampaignStatusPending
	campaign.CurrentAmount = decimal.Zero

	if err := c.db.WithContext(ctx).Create(campaign).Error; err != nil {
		return store.Classify(err)
	}
	return nil
}

// GetCampaign 获取活动详情
func (c *CampaignLogic) GetCampaign(ctx context.Context, id string) (*model.Campaign, error) {
	var campaign model.Campaign
	if err := c.db.WithContext(ctx).First(&campaign, "id = ?", id).Error; err != nil {
		if store.IsNotFound(err) {
			return nil, ErrCampaignNotFound
		}
		return nil, store.Classify(err)
	}
	return &campaign, nil
}

// ListCampaigns 按条件分页查询活动
func (c *CampaignLogic) ListCampaigns(ctx context.Context, filter CampaignFilter) ([]model.Campaign, int64, error) {
	query := c.db.WithContext(ctx).Model(&model.Campaign{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Creator != "" {
		query = query.Where("user_id = ?", filter.Creator)
	}
	if filter.Search != "" {
		query = query.Where("title LIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, store.Classify(err)
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 10
	}

	var campaigns []model.Campaign
	offset := (filter.Page - 1) * filter.PageSize
	if err := query.Offset(offset).Limit(filter.PageSize).
		Order("created_at DESC").
		Find(&campaigns).Error; err != nil {
		return nil, 0, store.Classify(err)
	}

	return campaigns, total, nil
}

// UpdateCampaign 活动创建者修改基本信息，状态不在可修改范围内
func (c *CampaignLogic) UpdateCampaign(ctx context.Context, actorId, id string, updates map[string]interface{}) error {
	campaign, err := c.GetCampaign(ctx, id)
	if err != nil {
		return err
	}
	if campaign.UserId != actorId {
		return ErrPermissionDenied
	}

	allowed := map[string]struct{}{
		"title": {}, "description": {}, "category": {}, "goal_amount": {}, "image_url": {},
	}
	for field := range updates {
		if _, ok := allowed[field]; !ok {
			delete(updates, field)
		}
	}
	if len(updates) == 0 {
		return nil
	}

	if v, ok := updates["title"].(string); ok {
		if err := validateTitle(v); err != nil {
			return err
		}
	}
	if v, ok := updates["description"].(string); ok {
		if err := validateDescription(v); err != nil {
			return err
		}
	}
	if v, ok := updates["goal_amount"].(decimal.Decimal); ok {
		if v.Sign() <= 0 {
			return fmt.Errorf("目标金额必须大于0")
		}
	}

	if err := c.db.WithContext(ctx).Model(&model.Campaign{}).
		Where("id = ?", id).
		Updates(updates).Error; err != nil {
		return store.Classify(err)
	}
	return nil
}

// Moderate 管理员审核活动。pending 是唯一可流出的状态，
// approved/rejected 均为终态，不允许再次变更。
// isAdmin 由身份提供方给出，这里只做能力判定不做认证。
func (c *CampaignLogic) Moderate(ctx context.Context, isAdmin bool, id string, status model.CampaignStatus) error {
	if !isAdmin {
		return ErrPermissionDenied
	}
	if status != model.CampaignStatusApproved && status != model.CampaignStatusRejected {
		return ErrInvalidTransition
	}

	campaign, err := c.GetCampaign(ctx, id)
	if err != nil {
		return err
	}
	if campaign.Status != model.CampaignStatusPending {
		return ErrInvalidTransition
	}

	if err := c.db.WithContext(ctx).Model(&model.Campaign{}).
		Where("id = ? AND status = ?", id, model.CampaignStatusPending).
		Update("status", status).Error; err != nil {
		return store.Classify(err)
	}

	logger.Info("Campaign %s moderated to %s", id, status)
	return nil
}

// DeleteCampaign 级联删除活动及其全部从属数据。
// 删除顺序：捐赠流水 → 点赞 → 评论 → 活动本身 → 存储的图片。
// 任何一步失败立即停止并报告失败的步骤，不静默继续。
func (c *CampaignLogic) DeleteCampaign(ctx context.Context, actorId string, isAdmin bool, id string) error {
	campaign, err := c.GetCampaign(ctx, id)
	if err != nil {
		return err
	}
	if campaign.UserId != actorId && !isAdmin {
		return ErrPermissionDenied
	}

	db := c.db.WithContext(ctx)

	if err := db.Where("campaign_id = ?", id).Delete(&model.Donation{}).Error; err != nil {
		return &DeleteStepError{Step: "donations", Err: store.Classify(err)}
	}
	if err := db.Where("campaign_id = ?", id).Delete(&model.Like{}).Error; err != nil {
		return &DeleteStepError{Step: "likes", Err: store.Classify(err)}
	}
	if err := db.Where("campaign_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
		return &DeleteStepError{Step: "comments", Err: store.Classify(err)}
	}
	if err := db.Delete(&model.Campaign{}, "id = ?", id).Error; err != nil {
		return &DeleteStepError{Step: "campaign", Err: store.Classify(err)}
	}
	if err := c.images.Delete(campaign.ImageURL); err != nil {
		return &DeleteStepError{Step: "image", Err: err}
	}

	logger.Info("Campaign %s deleted by %s", id, actorId)
	return nil
}

// validateCampaign 验证活动数据
func (c *CampaignLogic) validateCampaign(campaign *model.Campaign) error {
	if err := validateTitle(campaign.Title); err != nil {
		return err
	}
	if err := validateDescription(campaign.Description); err != nil {
		return err
	}
	if campaign.Category == "" {
		return fmt.Errorf("请选择活动分类")
	}
	if campaign.GoalAmount.Sign() <= 0 {
		return fmt.Errorf("目标金额必须大于0")
	}
	return nil
}

func validateTitle(title string) error {
	n := utf8.RuneCountInString(strings.TrimSpace(title))
	if n < 5 {
		return fmt.Errorf("活动标题至少5个字符")
	}
	if n > 100 {
		return fmt.Errorf("活动标题不能超过100个字符")
	}
	return nil
}

func validateDescription(description string) error {
	if utf8.RuneCountInString(strings.TrimSpace(description)) < 50 {
		return fmt.Errorf("活动描述至少50个字符")
	}
	return nil
}
