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

// AdminHandler 管理后台：待审核列表与审核操作
type AdminHandler struct {
	campaignLogic *logic.CampaignLogic
}

func NewAdminHandler(db *gorm.DB, images imagestore.Store) *AdminHandler {
	return &AdminHandler{
		campaignLogic: logic.NewCampaignLogic(db, images),
	}
}

// GetCampaigns 按状态查询活动，默认返回待审核
func (h *AdminHandler) GetCampaigns(c *gin.Context) {
	status := model.CampaignStatus(c.DefaultQuery("status", string(model.CampaignStatusPending)))
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	campaigns, total, err := h.campaignLogic.ListCampaigns(c.Request.Context(), logic.CampaignFilter{
		Status:   status,
		Page:     page,
		PageSize: pageSize,
	})
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

// ApproveCampaign 审核通过
func (h *AdminHandler) ApproveCampaign(c *gin.Context) {
	h.moderate(c, model.CampaignStatusApproved)
}

// RejectCampaign 审核拒绝
func (h *AdminHandler) RejectCampaign(c *gin.Context) {
	h.moderate(c, model.CampaignStatusRejected)
}

func (h *AdminHandler) moderate(c *gin.Context, status model.CampaignStatus) {
	identity, _ := auth.FromContext(c)

	err := h.campaignLogic.Moderate(c.Request.Context(), identity.IsAdmin, c.Param("id"), status)
	if err != nil {
		FailWithError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "审核完成", gin.H{"status": status})
}
