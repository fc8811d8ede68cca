package logic

import (
	"testing"

	"github.com/blues/cfp/internal/config"
	"github.com/blues/cfp/internal/database"
	"github.com/blues/cfp/internal/model"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB 打开内存数据库并迁移全部表结构。
// 限制单连接，避免每个连接各持一份内存库。
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func newTestReconciler(t *testing.T, db *gorm.DB) *ReconcileLogic {
	t.Helper()

	reconciler, err := NewReconcileLogic(db, config.ReconcilerConfig{
		MaxRetries: 2,
		BackoffMs:  1,
		PoolSize:   4,
	})
	if err != nil {
		t.Fatalf("Failed to create reconciler: %v", err)
	}
	t.Cleanup(reconciler.Close)
	return reconciler
}

func seedCampaign(t *testing.T, db *gorm.DB, status model.CampaignStatus, goal int64) *model.Campaign {
	t.Helper()

	campaign := &model.Campaign{
		Id:            uuid.NewString(),
		Title:         "Help rebuild the school",
		Description:   "A fundraising campaign created for testing, with a description long enough to pass validation.",
		Category:      "education",
		GoalAmount:    decimal.NewFromInt(goal),
		CurrentAmount: decimal.Zero,
		Status:        status,
		UserId:        uuid.NewString(),
	}
	if err := db.Create(campaign).Error; err != nil {
		t.Fatalf("Failed to seed campaign: %v", err)
	}
	return campaign
}

func donationCount(t *testing.T, db *gorm.DB, campaignId string) int64 {
	t.Helper()

	var count int64
	if err := db.Model(&model.Donation{}).Where("campaign_id = ?", campaignId).Count(&count).Error; err != nil {
		t.Fatalf("Failed to count donations: %v", err)
	}
	return count
}
