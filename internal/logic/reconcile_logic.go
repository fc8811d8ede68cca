package logic

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/blues/cfp/internal/config"
	"github.com/blues/cfp/internal/logger"
	"github.com/blues/cfp/internal/model"
	"github.com/blues/cfp/internal/store"
	"github.com/panjf2000/ants/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ReconcileLogic 筹款金额对账
//
// 汇总金额永远从捐赠流水重算（COALESCE(SUM(amount), 0)）再整体写回，
// 不做原地累加。重算是幂等的，重复执行或并发执行都会收敛到同一个值，
// 因此不需要对活动加锁。
type ReconcileLogic struct {
	db         *gorm.DB
	pool       *ants.Pool
	maxRetries int
	backoff    time.Duration

	mu     sync.Mutex
	states map[string]*reconcileState
}

// reconcileState 单个活动的对账调度状态：
// 同一活动最多一个对账在执行，执行期间的新请求合并为一次补跑
type reconcileState struct {
	pending bool
}

// NewReconcileLogic 创建对账逻辑
func NewReconcileLogic(db *gorm.DB, cfg config.ReconcilerConfig) (*ReconcileLogic, error) {
	if cfg.PoolSize <= 0 {
		cfg.PoolSize = 16
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.BackoffMs <= 0 {
		cfg.BackoffMs = 200
	}

	pool, err := ants.NewPool(cfg.PoolSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create reconcile pool: %w", err)
	}

	return &ReconcileLogic{
		db:         db,
		pool:       pool,
		maxRetries: cfg.MaxRetries,
		backoff:    time.Duration(cfg.BackoffMs) * time.Millisecond,
		states:     make(map[string]*reconcileState),
	}, nil
}

// Reconcile 同步对账：从流水重算活动总额并写回，返回新的汇总值。
// 读写都按瞬时错误重试，重试耗尽返回 ErrReconciliationFailed，
// 已落库的捐赠不回滚，流水始终是权威数据，后续对账会自愈。
func (r *ReconcileLogic) Reconcile(ctx context.Context, campaignId string) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	err := store.Retry(ctx, r.maxRetries, r.backoff, func() error {
		return r.db.WithContext(ctx).
			Model(&model.Donation{}).
			Where("campaign_id = ?", campaignId).
			Select("COALESCE(SUM(amount), 0) AS total").
			Scan(&result).Error
	})
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrReconciliationFailed, err)
	}

	// 负数只可能来自计算故障，保留旧的汇总值
	if result.Total.Sign() < 0 {
		prev := r.currentAmount(ctx, campaignId)
		logger.Error("Reconcile computed negative total %s for campaign %s, keeping previous amount %s",
			result.Total, campaignId, prev)
		return prev, fmt.Errorf("%w: negative total %s", ErrReconciliationFailed, result.Total)
	}

	err = store.Retry(ctx, r.maxRetries, r.backoff, func() error {
		return r.db.WithContext(ctx).
			Model(&model.Campaign{}).
			Where("id = ?", campaignId).
			Update("current_amount", result.Total).Error
	})
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrReconciliationFailed, err)
	}

	return result.Total, nil
}

// Trigger 异步请求一次对账。同一活动的并发请求被合并：
// 正在执行时到达的请求只标记一次补跑，不会并行执行。
func (r *ReconcileLogic) Trigger(campaignId string) {
	r.mu.Lock()
	if st, ok := r.states[campaignId]; ok {
		st.pending = true
		r.mu.Unlock()
		return
	}
	r.states[campaignId] = &reconcileState{}
	r.mu.Unlock()

	run := func() { r.drain(campaignId) }
	if err := r.pool.Submit(run); err != nil {
		// 池已满或已关闭，降级为普通协程执行
		logger.Warn("Reconcile pool submit failed, falling back to goroutine: %v", err)
		go run()
	}
}

// drain 执行对账并消化执行期间积累的补跑标记
func (r *ReconcileLogic) drain(campaignId string) {
	for {
		if _, err := r.Reconcile(context.Background(), campaignId); err != nil {
			logger.Error("Reconcile failed for campaign %s: %v", campaignId, err)
		}

		r.mu.Lock()
		st := r.states[campaignId]
		if st != nil && st.pending {
			st.pending = false
			r.mu.Unlock()
			continue
		}
		delete(r.states, campaignId)
		r.mu.Unlock()
		return
	}
}

// currentAmount 读取当前存储的汇总值，读不到时按0处理
func (r *ReconcileLogic) currentAmount(ctx context.Context, campaignId string) decimal.Decimal {
	var campaign model.Campaign
	if err := r.db.WithContext(ctx).First(&campaign, "id = ?", campaignId).Error; err != nil {
		return decimal.Zero
	}
	return campaign.CurrentAmount
}

// Close 释放对账协程池
func (r *ReconcileLogic) Close() {
	r.pool.Release()
}
