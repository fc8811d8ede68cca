package handler

import (
	"net/http"

	"github.com/blues/cfp/internal/auth"
	"github.com/blues/cfp/internal/logic"
	"github.com/blues/cfp/internal/model"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ProfileHandler struct {
	profileLogic *logic.ProfileLogic
}

func NewProfileHandler(db *gorm.DB) *ProfileHandler {
	return &ProfileHandler{
		profileLogic: logic.NewProfileLogic(db),
	}
}

// GetProfile 获取用户资料
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile, err := h.profileLogic.GetProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		FailWithError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", profile)
}

// UpsertProfile 创建或更新本人资料
func (h *ProfileHandler) UpsertProfile(c *gin.Context) {
	identity, _ := auth.FromContext(c)

	var req UpsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	profile := &model.Profile{
		Name:      req.Name,
		Email:     req.Email,
		AvatarURL: req.AvatarURL,
	}
	if err := h.profileLogic.UpsertProfile(c.Request.Context(), identity.UserId, profile); err != nil {
		FailWithError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "资料已更新", profile)
}
