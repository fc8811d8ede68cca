package view

import (
	"sort"
	"time"

	"github.com/blues/cfp/internal/model"
	"github.com/shopspring/decimal"
)

// AnonymousName 匿名捐赠者的展示名，资料缺失时也回退到它
const AnonymousName = "Anonymous"

// DonorRow 捐赠者展示行
type DonorRow struct {
	DonationId string          `json:"donation_id"`
	Name       string          `json:"name"`
	Amount     decimal.Decimal `json:"amount"`
	Anonymous  bool            `json:"anonymous"`
	DonatedAt  time.Time       `json:"donated_at"`
}

// CampaignView 活动详情页所需的全部派生数据，
// 渲染层只依赖这里的输出，不直接读流水
type CampaignView struct {
	CampaignId    string          `json:"campaign_id"`
	Raised        decimal.Decimal `json:"raised"`
	Goal          decimal.Decimal `json:"goal"`
	PercentRaised float64         `json:"percent_raised"`
	DonationCount int             `json:"donation_count"`
	DonorCount    int             `json:"donor_count"`
	Donors        []DonorRow      `json:"donors"`
}

// PercentRaised 计算筹款进度百分比，上限100。
// goal不大于0属于不变量被破坏的输入，按0%处理而不是除零。
func PercentRaised(raised, goal decimal.Decimal) float64 {
	if goal.Sign() <= 0 {
		return 0
	}
	pct, _ := raised.Div(goal).Mul(decimal.NewFromInt(100)).Float64()
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// DonorRows 生成捐赠者展示行：最新的在前，时间相同按捐赠Id升序保证确定性。
// 匿名捐赠以及查不到资料的捐赠者都显示为 Anonymous。
func DonorRows(donations []model.Donation, profiles map[string]model.Profile) []DonorRow {
	rows := make([]DonorRow, len(donations))
	for i, d := range donations {
		name := AnonymousName
		if !d.Anonymous {
			if p, ok := profiles[d.UserId]; ok && p.Name != "" {
				name = p.Name
			}
		}
		rows[i] = DonorRow{
			DonationId: d.Id,
			Name:       name,
			Amount:     d.Amount,
			Anonymous:  d.Anonymous,
			DonatedAt:  d.CreatedAt,
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].DonatedAt.Equal(rows[j].DonatedAt) {
			return rows[i].DonatedAt.After(rows[j].DonatedAt)
		}
		return rows[i].DonationId < rows[j].DonationId
	})

	return rows
}

// Project 从活动、完整捐赠列表和资料映射派生详情视图，纯函数，不做任何I/O
func Project(campaign model.Campaign, donations []model.Donation, profiles map[string]model.Profile) CampaignView {
	raised := decimal.Zero
	donors := make(map[string]struct{})
	for _, d := range donations {
		raised = raised.Add(d.Amount)
		donors[d.UserId] = struct{}{}
	}

	return CampaignView{
		CampaignId:    campaign.Id,
		Raised:        raised,
		Goal:          campaign.GoalAmount,
		PercentRaised: PercentRaised(raised, campaign.GoalAmount),
		DonationCount: len(donations),
		DonorCount:    len(donors),
		Donors:        DonorRows(donations, profiles),
	}
}
