package handler

import (
	"time"

	"github.com/blues/cfp/internal/model"
	"github.com/blues/cfp/internal/view"
	"github.com/shopspring/decimal"
)

// 通用响应结构
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// 分页信息结构
type Pagination struct {
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
	Total    int64 `json:"total"`
}

// 活动相关请求/响应模型

// CreateCampaignRequest 创建活动请求
type CreateCampaignRequest struct {
	Title       string          `json:"title" binding:"required"`
	Description string          `json:"description" binding:"required"`
	Category    string          `json:"category" binding:"required"`
	GoalAmount  decimal.Decimal `json:"goal_amount" binding:"required"`
	ImageURL    string          `json:"image_url"`
}

// UpdateCampaignRequest 更新活动请求，零值字段不更新
type UpdateCampaignRequest struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Category    *string          `json:"category"`
	GoalAmount  *decimal.Decimal `json:"goal_amount"`
	ImageURL    *string          `json:"image_url"`
}

// CampaignResponse 活动响应模型
type CampaignResponse struct {
	Id            string          `json:"id"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	ImageURL      string          `json:"imageUrl"`
	GoalAmount    decimal.Decimal `json:"goalAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
	PercentRaised float64         `json:"percentRaised"`
	Status        string          `json:"status"`
	UserId        string          `json:"userId"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// GetCampaignsResponse 活动列表响应
type GetCampaignsResponse struct {
	Campaigns  []CampaignResponse `json:"campaigns"`
	Pagination Pagination         `json:"pagination"`
}

// 捐赠相关请求/响应模型

// CreateDonationRequest 捐赠请求，金额以字符串提交由服务端解析
type CreateDonationRequest struct {
	Amount    string `json:"amount" binding:"required"`
	Anonymous bool   `json:"anonymous"`
}

// DonationResponse 捐赠记录响应模型
type DonationResponse struct {
	Id         string          `json:"id"`
	CampaignId string          `json:"campaignId"`
	Amount     decimal.Decimal `json:"amount"`
	Anonymous  bool            `json:"anonymous"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// 评论相关请求/响应模型

// CreateCommentRequest 发表评论请求
type CreateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// CommentResponse 评论响应模型
type CommentResponse struct {
	Id         string    `json:"id"`
	CampaignId string    `json:"campaignId"`
	UserId     string    `json:"userId"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
}

// UpsertProfileRequest 更新本人资料请求
type UpsertProfileRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}

// 转换函数

// ToCampaignResponse 将数据库模型转换为响应模型
func ToCampaignResponse(campaign *model.Campaign) CampaignResponse {
	return CampaignResponse{
		Id:            campaign.Id,
		Title:         campaign.Title,
		Description:   campaign.Description,
		Category:      campaign.Category,
		ImageURL:      campaign.ImageURL,
		GoalAmount:    campaign.GoalAmount,
		CurrentAmount: campaign.CurrentAmount,
		PercentRaised: view.PercentRaised(campaign.CurrentAmount, campaign.GoalAmount),
		Status:        string(campaign.Status),
		UserId:        campaign.UserId,
		CreatedAt:     campaign.CreatedAt,
		UpdatedAt:     campaign.UpdatedAt,
	}
}

// ToCampaignResponseList 将数据库模型列表转换为响应模型列表
func ToCampaignResponseList(campaigns []model.Campaign) []CampaignResponse {
	result := make([]CampaignResponse, len(campaigns))
	for i, campaign := range campaigns {
		result[i] = ToCampaignResponse(&campaign)
	}
	return result
}

// ToDonationResponse 将捐赠记录转换为响应模型
func ToDonationResponse(donation *model.Donation) DonationResponse {
	return DonationResponse{
		Id:         donation.Id,
		CampaignId: donation.CampaignId,
		Amount:     donation.Amount,
		Anonymous:  donation.Anonymous,
		CreatedAt:  donation.CreatedAt,
	}
}

// ToCommentResponse 将评论转换为响应模型
func ToCommentResponse(comment *model.Comment) CommentResponse {
	return CommentResponse{
		Id:         comment.Id,
		CampaignId: comment.CampaignId,
		UserId:     comment.UserId,
		Content:    comment.Content,
		CreatedAt:  comment.CreatedAt,
	}
}

// ToCommentResponseList 将评论列表转换为响应模型列表
func ToCommentResponseList(comments []model.Comment) []CommentResponse {
	result := make([]CommentResponse, len(comments))
	for i, comment := range comments {
		result[i] = ToCommentResponse(&comment)
	}
	return result
}
