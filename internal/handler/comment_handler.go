package handler

import (
	"net/http"

	"github.com/blues/cfp/internal/auth"
	"github.com/blues/cfp/internal/logic"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CommentHandler 活动评论与点赞
type CommentHandler struct {
	commentLogic *logic.CommentLogic
	likeLogic    *logic.LikeLogic
}

func NewCommentHandler(db *gorm.DB) *CommentHandler {
	return &CommentHandler{
		commentLogic: logic.NewCommentLogic(db),
		likeLogic:    logic.NewLikeLogic(db),
	}
}

// CreateComment 发表评论
func (h *CommentHandler) CreateComment(c *gin.Context) {
	identity, _ := auth.FromContext(c)

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	comment, err := h.commentLogic.CreateComment(c.Request.Context(), identity.UserId, c.Param("id"), req.Content)
	if err != nil {
		FailWithError(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "评论成功", ToCommentResponse(comment))
}

// GetComments 活动评论列表
func (h *CommentHandler) GetComments(c *gin.Context) {
	comments, err := h.commentLogic.ListComments(c.Request.Context(), c.Param("id"))
	if err != nil {
		FailWithError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{"comments": ToCommentResponseList(comments)})
}

// ToggleLike 切换点赞状态
func (h *CommentHandler) ToggleLike(c *gin.Context) {
	identity, _ := auth.FromContext(c)

	liked, err := h.likeLogic.Toggle(c.Request.Context(), identity.UserId, c.Param("id"))
	if err != nil {
		FailWithError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{"liked": liked})
}

// GetLikes 活动点赞数与当前用户是否已点赞
func (h *CommentHandler) GetLikes(c *gin.Context) {
	count, err := h.likeLogic.Count(c.Request.Context(), c.Param("id"))
	if err != nil {
		FailWithError(c, err)
		return
	}

	liked := false
	if identity, ok := auth.FromContext(c); ok {
		liked, err = h.likeLogic.Liked(c.Request.Context(), identity.UserId, c.Param("id"))
		if err != nil {
			FailWithError(c, err)
			return
		}
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{"count": count, "liked": liked})
}
