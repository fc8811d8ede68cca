package handler

import (
	"net/http"

	"github.com/blues/cfp/internal/auth"
	"github.com/blues/cfp/internal/logic"
	"github.com/blues/cfp/internal/model"
	"github.com/blues/cfp/internal/view"
	"github.com/gin-gonic/gin"
)

type DonationHandler struct {
	donationLogic *logic.DonationLogic
	campaignLogic *logic.CampaignLogic
}

func NewDonationHandler(donationLogic *logic.DonationLogic, campaignLogic *logic.CampaignLogic) *DonationHandler {
	return &DonationHandler{
		donationLogic: donationLogic,
		campaignLogic: campaignLogic,
	}
}

// CreateDonation 记录一笔捐赠
func (h *DonationHandler) CreateDonation(c *gin.Context) {
	identity, _ := auth.FromContext(c)

	var req CreateDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	donation, err := h.donationLogic.CreateDonation(
		c.Request.Context(), identity.UserId, c.Param("id"), req.Amount, req.Anonymous)
	if err != nil {
		FailWithError(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "感谢您的捐赠", ToDonationResponse(donation))
}

// GetDonors 活动的捐赠者展示行，渲染层只依赖这份投影输出
func (h *DonationHandler) GetDonors(c *gin.Context) {
	projection, err := h.project(c)
	if err != nil {
		FailWithError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{"donors": projection.Donors})
}

// GetStats 活动筹款统计：总额、进度、捐赠人数
func (h *DonationHandler) GetStats(c *gin.Context) {
	projection, err := h.project(c)
	if err != nil {
		FailWithError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{
		"raised":         projection.Raised,
		"goal":           projection.Goal,
		"percent_raised": projection.PercentRaised,
		"donation_count": projection.DonationCount,
		"donor_count":    projection.DonorCount,
	})
}

// project 读取活动、流水和资料并交给视图投影
func (h *DonationHandler) project(c *gin.Context) (*view.CampaignView, error) {
	ctx := c.Request.Context()

	campaign, err := h.campaignLogic.GetCampaign(ctx, c.Param("id"))
	if err != nil {
		return nil, err
	}

	// 与活动详情同样的可见性规则：未通过审核的活动对外等同于不存在
	if campaign.Status != model.CampaignStatusApproved {
		identity, ok := auth.FromContext(c)
		if !ok || (campaign.UserId != identity.UserId && !identity.IsAdmin) {
			return nil, logic.ErrCampaignNotFound
		}
	}

	donations, err := h.donationLogic.ListDonations(ctx, campaign.Id)
	if err != nil {
		return nil, err
	}

	profiles, err := h.donationLogic.LoadDonorProfiles(ctx, donations)
	if err != nil {
		return nil, err
	}

	projection := view.Project(*campaign, donations, profiles)
	return &projection, nil
}
