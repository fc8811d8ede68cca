package view

import (
	"testing"
	"time"

	"github.com/blues/cfp/internal/model"
	"github.com/shopspring/decimal"
)

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func TestPercentRaised_Boundaries(t *testing.T) {
	cases := []struct {
		name   string
		raised int64
		goal   int64
		want   float64
	}{
		{"zero raised", 0, 100, 0},
		{"half", 50, 100, 50},
		{"exact", 100, 100, 100},
		{"over goal clamped", 150, 100, 100},
		{"zero goal fails closed", 100, 0, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := PercentRaised(dec(tc.raised), dec(tc.goal))
			if got != tc.want {
				t.Errorf("PercentRaised(%d, %d) = %v, want %v", tc.raised, tc.goal, got, tc.want)
			}
		})
	}
}

func TestPercentRaised_NegativeGoalFailsClosed(t *testing.T) {
	if got := PercentRaised(dec(100), dec(-10)); got != 0 {
		t.Errorf("expected 0%% for negative goal, got %v", got)
	}
}

func TestDonorRows_AnonymityProjection(t *testing.T) {
	now := time.Now()
	donations := []model.Donation{
		{Id: "d1", UserId: "u1", Amount: dec(100), Anonymous: true, CreatedAt: now},
		{Id: "d2", UserId: "u2", Amount: dec(200), Anonymous: false, CreatedAt: now.Add(-time.Minute)},
		{Id: "d3", UserId: "u3", Amount: dec(300), Anonymous: false, CreatedAt: now.Add(-2 * time.Minute)},
	}
	profiles := map[string]model.Profile{
		"u1": {Id: "u1", Name: "Alice"}, // 匿名捐赠即使资料可查也不展示
		"u2": {Id: "u2", Name: "Bob"},
		// u3 没有资料
	}

	rows := DonorRows(donations, profiles)

	if rows[0].Name != AnonymousName {
		t.Errorf("anonymous donation must render %q even with a resolvable profile, got %q", AnonymousName, rows[0].Name)
	}
	if rows[1].Name != "Bob" {
		t.Errorf("named donation with profile: expected Bob, got %q", rows[1].Name)
	}
	if rows[2].Name != AnonymousName {
		t.Errorf("missing profile must fall back to %q, got %q", AnonymousName, rows[2].Name)
	}
}

func TestDonorRows_OrderingMostRecentFirst(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	donations := []model.Donation{
		{Id: "b", UserId: "u1", Amount: dec(10), CreatedAt: base},
		{Id: "a", UserId: "u2", Amount: dec(20), CreatedAt: base}, // 同时刻，按Id升序
		{Id: "c", UserId: "u3", Amount: dec(30), CreatedAt: base.Add(time.Hour)},
	}

	rows := DonorRows(donations, nil)

	wantOrder := []string{"c", "a", "b"}
	for i, want := range wantOrder {
		if rows[i].DonationId != want {
			t.Fatalf("row %d: expected donation %q, got %q", i, want, rows[i].DonationId)
		}
	}
}

func TestDonorRows_Deterministic(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	donations := []model.Donation{
		{Id: "x", UserId: "u1", Amount: dec(1), CreatedAt: base},
		{Id: "y", UserId: "u2", Amount: dec(2), CreatedAt: base},
	}
	reversed := []model.Donation{donations[1], donations[0]}

	first := DonorRows(donations, nil)
	second := DonorRows(reversed, nil)

	for i := range first {
		if first[i].DonationId != second[i].DonationId {
			t.Fatalf("ordering depends on input order: %v vs %v", first[i].DonationId, second[i].DonationId)
		}
	}
}

func TestProject_DerivesAggregatesFromLedger(t *testing.T) {
	campaign := model.Campaign{
		Id:         "c1",
		GoalAmount: dec(1000),
		// CurrentAmount 过期也无所谓，投影以流水为准
		CurrentAmount: dec(1),
	}
	now := time.Now()
	donations := []model.Donation{
		{Id: "d1", UserId: "u1", Amount: dec(300), CreatedAt: now},
		{Id: "d2", UserId: "u1", Amount: dec(200), CreatedAt: now.Add(time.Second)},
		{Id: "d3", UserId: "u2", Amount: dec(100), CreatedAt: now.Add(2 * time.Second)},
	}

	projection := Project(campaign, donations, nil)

	if !projection.Raised.Equal(dec(600)) {
		t.Errorf("expected raised 600, got %s", projection.Raised)
	}
	if projection.PercentRaised != 60 {
		t.Errorf("expected 60%%, got %v", projection.PercentRaised)
	}
	if projection.DonationCount != 3 {
		t.Errorf("expected 3 donations, got %d", projection.DonationCount)
	}
	if projection.DonorCount != 2 {
		t.Errorf("expected 2 unique donors, got %d", projection.DonorCount)
	}
}

func TestProject_EmptyLedger(t *testing.T) {
	campaign := model.Campaign{Id: "c1", GoalAmount: dec(100)}

	projection := Project(campaign, nil, nil)

	if !projection.Raised.IsZero() {
		t.Errorf("expected zero raised, got %s", projection.Raised)
	}
	if projection.PercentRaised != 0 {
		t.Errorf("expected 0%%, got %v", projection.PercentRaised)
	}
	if len(projection.Donors) != 0 {
		t.Errorf("expected no donor rows, got %d", len(projection.Donors))
	}
}
