package main

import (
	"github.com/blues/cfp/internal/config"
	"github.com/blues/cfp/internal/database"
	"github.com/blues/cfp/internal/imagestore"
	"github.com/blues/cfp/internal/logger"
	"github.com/blues/cfp/internal/logic"
	"github.com/blues/cfp/internal/router"
	"github.com/blues/cfp/internal/scheduler"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// 加载 .env（本地开发用，文件不存在不报错）
	_ = godotenv.Load()

	// 加载配置
	cfg := config.Load()

	// 初始化日志
	level := logger.ParseLogLevel(cfg.Log.Level)
	if cfg.Log.Output == "file" {
		l, err := logger.NewWithRotation(level, logger.RotationConfig{Filename: cfg.Log.File})
		if err != nil {
			logger.Fatal("Failed to initialize file logger: %v", err)
		}
		logger.SetDefaultLogger(l)
	}
	defer logger.Sync()

	// 初始化数据库
	db, err := database.Init(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database: %v", err)
	}

	// 初始化图片存储
	images, err := imagestore.NewLocalStore(cfg.Storage.ImageDir, cfg.Storage.BaseURL)
	if err != nil {
		logger.Fatal("Failed to initialize image store: %v", err)
	}

	// 初始化对账与捐赠逻辑
	reconciler, err := logic.NewReconcileLogic(db, cfg.Reconciler)
	if err != nil {
		logger.Fatal("Failed to initialize reconciler: %v", err)
	}
	defer reconciler.Close()
	donationLogic := logic.NewDonationLogic(db, reconciler, cfg.Reconciler)
	campaignLogic := logic.NewCampaignLogic(db, images)

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化路由
	r := router.Setup(db, images, donationLogic, campaignLogic, cfg)

	// 启动对账巡检任务
	manager := scheduler.Start(db, reconciler, cfg)
	defer manager.Stop()

	// 启动服务器
	logger.Info("Server starting on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("Failed to start server: %v", err)
	}
}
