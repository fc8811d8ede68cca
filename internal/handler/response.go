package handler

import (
	"errors"
	"net/http"

	"github.com/blues/cfp/internal/logic"
	"github.com/blues/cfp/internal/store"
	"github.com/gin-gonic/gin"
)

// SuccessResponse 成功响应
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse 错误响应
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Message: message,
		Data:    nil,
	})
}

// FailWithError 按业务错误类型映射HTTP状态码
func FailWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	var stepErr *logic.DeleteStepError
	switch {
	case errors.Is(err, logic.ErrUnauthenticated):
		status = http.StatusUnauthorized
	case errors.Is(err, logic.ErrPermissionDenied):
		status = http.StatusForbidden
	case errors.Is(err, logic.ErrCampaignNotFound):
		status = http.StatusNotFound
	case errors.Is(err, logic.ErrInvalidAmount),
		errors.Is(err, logic.ErrCampaignNotAvailable),
		errors.Is(err, logic.ErrInvalidTransition):
		status = http.StatusBadRequest
	case errors.As(err, &stepErr):
		status = http.StatusInternalServerError
	case store.IsNotFound(err):
		status = http.StatusNotFound
	case store.IsConstraint(err):
		status = http.StatusConflict
	}

	ErrorResponse(c, status, err.Error())
}
