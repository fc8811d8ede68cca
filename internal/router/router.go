package router

import (
	"github.com/blues/cfp/internal/auth"
	"github.com/blues/cfp/internal/config"
	"github.com/blues/cfp/internal/handler"
	"github.com/blues/cfp/internal/imagestore"
	"github.com/blues/cfp/internal/logic"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(db *gorm.DB, images imagestore.Store, donationLogic *logic.DonationLogic, campaignLogic *logic.CampaignLogic, cfg *config.Config) *gin.Engine {
	r := gin.Default()

	// 中间件
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())
	r.Use(auth.Middleware(cfg.Auth.JWTSecret))

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "crowdfunding-platform",
		})
	})

	// API版本组
	v1 := r.Group("/api/v1")
	{
		// 活动相关路由
		campaignHandler := handler.NewCampaignHandler(db, images)
		donationHandler := handler.NewDonationHandler(donationLogic, campaignLogic)
		commentHandler := handler.NewCommentHandler(db)
		campaigns := v1.Group("/campaigns")
		{
			campaigns.POST("", auth.RequireAuth(), campaignHandler.CreateCampaign)
			campaigns.GET("", campaignHandler.GetCampaigns)
			campaigns.GET("/:id", campaignHandler.GetCampaign)
			campaigns.PUT("/:id", auth.RequireAuth(), campaignHandler.UpdateCampaign)
			campaigns.DELETE("/:id", auth.RequireAuth(), campaignHandler.DeleteCampaign)

			campaigns.POST("/:id/donations", auth.RequireAuth(), donationHandler.CreateDonation)
			campaigns.GET("/:id/donors", donationHandler.GetDonors)
			campaigns.GET("/:id/stats", donationHandler.GetStats)

			campaigns.POST("/:id/comments", auth.RequireAuth(), commentHandler.CreateComment)
			campaigns.GET("/:id/comments", commentHandler.GetComments)
			campaigns.POST("/:id/like", auth.RequireAuth(), commentHandler.ToggleLike)
			campaigns.GET("/:id/likes", commentHandler.GetLikes)
		}

		// 用户资料路由
		profileHandler := handler.NewProfileHandler(db)
		profiles := v1.Group("/profiles")
		{
			profiles.GET("/:id", profileHandler.GetProfile)
			profiles.PUT("/me", auth.RequireAuth(), profileHandler.UpsertProfile)
		}

		// 管理后台路由
		adminHandler := handler.NewAdminHandler(db, images)
		admin := v1.Group("/admin", auth.RequireAdmin())
		{
			admin.GET("/campaigns", adminHandler.GetCampaigns)
			admin.POST("/campaigns/:id/approve", adminHandler.ApproveCampaign)
			admin.POST("/campaigns/:id/reject", adminHandler.RejectCampaign)
		}
	}

	return r
}

// CORS中间件
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
