package logic

import (
	"context"
	"strings"
	"time"

	"github.com/blues/cfp/internal/config"
	"github.com/blues/cfp/internal/model"
	"github.com/blues/cfp/internal/store"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DonationLogic 捐赠记录业务逻辑
type DonationLogic struct {
	db         *gorm.DB
	reconciler *ReconcileLogic
	maxRetries int
	backoff    time.Duration
}

// NewDonationLogic 创建捐赠业务逻辑
func NewDonationLogic(db *gorm.DB, reconciler *ReconcileLogic, cfg config.ReconcilerConfig) *DonationLogic {
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.BackoffMs <= 0 {
		cfg.BackoffMs = 200
	}
	return &DonationLogic{
		db:         db,
		reconciler: reconciler,
		maxRetries: cfg.MaxRetries,
		backoff:    time.Duration(cfg.BackoffMs) * time.Millisecond,
	}
}

// ParseAmount 解析捐赠金额，必须是大于0的有效数字
func ParseAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if amount.Sign() <= 0 {
		return decimal.Zero, ErrInvalidAmount
	}
	return amount, nil
}

// CreateDonation 记录一笔捐赠
//
// 全部校验在任何写入之前完成：未登录、金额非法、活动不可捐都同步返回，
// 不会留下半条数据。写入成功后触发对账；对账失败不回滚捐赠，
// 流水为权威数据，展示的总额允许短暂滞后。
func (l *DonationLogic) CreateDonation(ctx context.Context, donorId, campaignId, rawAmount string, anonymous bool) (*model.Donation, error) {
	if strings.TrimSpace(donorId) == "" {
		return nil, ErrUnauthenticated
	}

	amount, err := ParseAmount(rawAmount)
	if err != nil {
		return nil, err
	}

	// 检查活动是否存在且已通过审核
	var campaign model.Campaign
	if err := l.db.WithContext(ctx).First(&campaign, "id = ?", campaignId).Error; err != nil {
		if store.IsNotFound(err) {
			return nil, ErrCampaignNotAvailable
		}
		return nil, store.Classify(err)
	}
	if campaign.Status != model.CampaignStatusApproved {
		return nil, ErrCampaignNotAvailable
	}

	donation := &model.Donation{
		Id:         uuid.NewString(),
		CampaignId: campaignId,
		UserId:     donorId,
		Amount:     amount,
		Anonymous:  anonymous,
	}

	// 瞬时错误有界重试；重试前没有任何写入落地，整个提交失败是安全的
	err = store.Retry(ctx, l.maxRetries, l.backoff, func() error {
		return l.db.WithContext(ctx).Create(donation).Error
	})
	if err != nil {
		return nil, err
	}

	// 捐赠已落库，触发汇总对账；同一活动的并发触发会被合并
	l.reconciler.Trigger(campaignId)

	return donation, nil
}

// ListDonations 获取活动的全部捐赠流水
func (l *DonationLogic) ListDonations(ctx context.Context, campaignId string) ([]model.Donation, error) {
	var donations []model.Donation
	if err := l.db.WithContext(ctx).
		Where("campaign_id = ?", campaignId).
		Order("created_at DESC, id ASC").
		Find(&donations).Error; err != nil {
		return nil, store.Classify(err)
	}
	return donations, nil
}

// LoadDonorProfiles 批量加载捐赠者资料，供视图层解析展示名。
// 匿名捐赠不需要资料，直接跳过。
func (l *DonationLogic) LoadDonorProfiles(ctx context.Context, donations []model.Donation) (map[string]model.Profile, error) {
	ids := make([]string, 0, len(donations))
	seen := make(map[string]struct{})
	for _, d := range donations {
		if d.Anonymous {
			continue
		}
		if _, ok := seen[d.UserId]; ok {
			continue
		}
		seen[d.UserId] = struct{}{}
		ids = append(ids, d.UserId)
	}

	profiles := make(map[string]model.Profile, len(ids))
	if len(ids) == 0 {
		return profiles, nil
	}

	var rows []model.Profile
	if err := l.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, store.Classify(err)
	}
	for _, p := range rows {
		profiles[p.Id] = p
	}
	return profiles, nil
}
