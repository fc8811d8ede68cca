package scheduler

import (
	"context"
	"time"

	"github.com/blues/cfp/internal/config"
	"github.com/blues/cfp/internal/logger"
	"github.com/blues/cfp/internal/logic"
	"github.com/blues/cfp/internal/model"
	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

// ReconcileSweepJob 金额对账巡检任务
//
// 对账在捐赠落库后可能失败而捐赠不回滚，汇总值允许短暂滞后。
// 巡检周期性地对所有已通过审核的活动重算一遍汇总，保证最终收敛。
type ReconcileSweepJob struct {
	db         *gorm.DB
	reconciler *logic.ReconcileLogic
	config     *config.Config
}

// NewReconcileSweepJob 创建对账巡检任务
func NewReconcileSweepJob(db *gorm.DB, reconciler *logic.ReconcileLogic, cfg *config.Config) *ReconcileSweepJob {
	return &ReconcileSweepJob{
		db:         db,
		reconciler: reconciler,
		config:     cfg,
	}
}

// GetName 获取任务名称
func (j *ReconcileSweepJob) GetName() string {
	return "reconcile_sweep"
}

// GetSchedule 获取调度配置
func (j *ReconcileSweepJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Scheduler.SweepInterval) * time.Second)
}

// Execute 执行任务
func (j *ReconcileSweepJob) Execute() {
	logger.Info("Starting reconcile sweep")

	var ids []string
	err := j.db.Model(&model.Campaign{}).
		Where("status = ?", model.CampaignStatusApproved).
		Pluck("id", &ids).Error
	if err != nil {
		logger.Error("Failed to fetch campaigns for sweep: %v", err)
		return
	}

	swept := 0
	for _, id := range ids {
		if _, err := j.reconciler.Reconcile(context.Background(), id); err != nil {
			logger.Error("Sweep reconcile failed for campaign %s: %v", id, err)
			continue
		}
		swept++
	}

	logger.Info("Reconcile sweep completed. Reconciled %d/%d campaigns", swept, len(ids))
}
