package handler

import (
	"net/http"
	"strconv"

	"github.com/blues/cfp/internal/auth"
	"github.com/blues/cfp/internal/imagestore"
	"github.com/blues/cfp/internal/logic"
	"github.com/blues/cfp/internal/model"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CampaignHandler struct {
	campaignLogic *logic.CampaignLogic
}

func NewCampaignHandler(db *gorm.DB, images imagestore.Store) *CampaignHandler {
	return &CampaignHandler{
		campaignLogic: logic.NewCampaignLogic(db, images),
	}
}

// CreateCampaign 创建活动，初始为待审核状态
func (h *CampaignHandler) CreateCampaign(c *gin.Context) {
	identity, _ := auth.FromContext(c)

	var req CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	campaign := &model.Campaign{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		GoalAmount:  req.GoalAmount,
		ImageURL:    req.ImageURL,
	}

	if err := h.campaignLogic.CreateCampaign(c.Request.Context(), identity.UserId, campaign); err != nil {
		FailWithError(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "活动创建成功，等待审核", ToCampaignResponse(campaign))
}

// GetCampaigns 公开活动列表，只返回已通过审核的活动
func (h *CampaignHandler) GetCampaigns(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	filter := logic.CampaignFilter{
		Status:   model.CampaignStatusApproved,
		Category: c.Query("category"),
		Creator:  c.Query("creator"),
		Search:   c.Query("search"),
		Page:     page,
		PageSize: pageSize,
	}

	campaigns, total, err := h.campaignLogic.ListCampaigns(c.Request.Context(), filter)
	if err != nil {
		FailWithError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", GetCampaignsResponse{
		Campaigns: ToCampaignResponseList(campaigns),
		Pagination: Pagination{
			Page:     page,
			PageSize: pageSize,
			Total:    total,
		},
	})
}

// GetCampaign 活动详情。未通过审核的活动只有创建者和管理员可见
func (h *CampaignHandler) GetCampaign(c *gin.Context) {
	campaign, err := h.campaignLogic.GetCampaign(c.Request.Context(), c.Param("id"))
	if err != nil {
		FailWithError(c, err)
		return
	}

	if campaign.Status != model.CampaignStatusApproved {
		identity, ok := auth.FromContext(c)
		if !ok || (campaign.UserId != identity.UserId && !identity.IsAdmin) {
			ErrorResponse(c, http.StatusNotFound, logic.ErrCampaignNotFound.Error())
			return
		}
	}

	SuccessResponse(c, http.StatusOK, "", ToCampaignResponse(campaign))
}

// UpdateCampaign 创建者修改活动基本信息
func (h *CampaignHandler) UpdateCampaign(c *gin.Context) {
	identity, _ := auth.FromContext(c)

	var req UpdateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	updates := make(map[string]interface{})
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.GoalAmount != nil {
		updates["goal_amount"] = *req.GoalAmount
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}

	if len(updates) == 0 {
		ErrorResponse(c, http.StatusBadRequest, "没有要更新的字段")
		return
	}

	if err := h.campaignLogic.UpdateCampaign(c.Request.Context(), identity.UserId, c.Param("id"), updates); err != nil {
		FailWithError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "活动更新成功", nil)
}

// DeleteCampaign 级联删除活动及其从属数据
func (h *CampaignHandler) DeleteCampaign(c *gin.Context) {
	identity, _ := auth.FromContext(c)

	err := h.campaignLogic.DeleteCampaign(c.Request.Context(), identity.UserId, identity.IsAdmin, c.Param("id"))
	if err != nil {
		FailWithError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "活动已删除", nil)
}
