package logic

import (
	"context"
	"testing"
	"time"

	"github.com/blues/cfp/internal/config"
	"github.com/blues/cfp/internal/model"
	"github.com/blues/cfp/internal/view"
	"github.com/shopspring/decimal"
)

// 完整链路：审核通过的活动收到两笔捐赠（一笔匿名300，一笔具名800），
// 对账后总额1100，进度封顶在100%，捐赠者列表最新在前且匿名展示正确。
func TestDonationFlow_EndToEnd(t *testing.T) {
	db := setupTestDB(t)
	reconciler := newTestReconciler(t, db)
	donations := NewDonationLogic(db, reconciler, config.ReconcilerConfig{})
	campaign := seedCampaign(t, db, model.CampaignStatusApproved, 1000)

	ctx := context.Background()

	bob := &model.Profile{Id: "user-b", Name: "Bob"}
	if err := db.Create(bob).Error; err != nil {
		t.Fatalf("Failed to seed profile: %v", err)
	}

	if _, err := donations.CreateDonation(ctx, "user-a", campaign.Id, "300", true); err != nil {
		t.Fatalf("donation A failed: %v", err)
	}
	time.Sleep(5 * time.Millisecond) // 保证两笔捐赠时间戳可区分
	if _, err := donations.CreateDonation(ctx, "user-b", campaign.Id, "800", false); err != nil {
		t.Fatalf("donation B failed: %v", err)
	}

	total, err := reconciler.Reconcile(ctx, campaign.Id)
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}
	if !total.Equal(decimal.NewFromInt(1100)) {
		t.Fatalf("expected raised 1100, got %s", total)
	}

	ledger, err := donations.ListDonations(ctx, campaign.Id)
	if err != nil {
		t.Fatalf("ListDonations failed: %v", err)
	}
	profiles, err := donations.LoadDonorProfiles(ctx, ledger)
	if err != nil {
		t.Fatalf("LoadDonorProfiles failed: %v", err)
	}

	projection := view.Project(*campaign, ledger, profiles)

	if projection.PercentRaised != 100 {
		t.Errorf("expected percent clamped to 100, got %v", projection.PercentRaised)
	}
	if !projection.Raised.Equal(decimal.NewFromInt(1100)) {
		t.Errorf("expected projected raised 1100, got %s", projection.Raised)
	}
	if len(projection.Donors) != 2 {
		t.Fatalf("expected 2 donor rows, got %d", len(projection.Donors))
	}

	// 最新的捐赠（B，800，具名）在前
	if projection.Donors[0].Name != "Bob" || !projection.Donors[0].Amount.Equal(decimal.NewFromInt(800)) {
		t.Errorf("expected first row Bob/800, got %s/%s", projection.Donors[0].Name, projection.Donors[0].Amount)
	}
	if projection.Donors[1].Name != view.AnonymousName || !projection.Donors[1].Amount.Equal(decimal.NewFromInt(300)) {
		t.Errorf("expected second row Anonymous/300, got %s/%s", projection.Donors[1].Name, projection.Donors[1].Amount)
	}
}
