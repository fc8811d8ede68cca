package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/blues/cfp/internal/auth"
	"github.com/blues/cfp/internal/config"
	"github.com/blues/cfp/internal/database"
	"github.com/blues/cfp/internal/logic"
	"github.com/blues/cfp/internal/model"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const testSecret = "test-secret"

// setupTestDB 打开内存数据库并迁移全部表结构。
// 限制单连接，避免每个连接各持一份内存库。
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	t.Cleanup(func() { sqlDB.Close() })
	return db
}

// newDonationRouter 组装捐赠展示路由，中间件与正式路由一致
func newDonationRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	reconciler, err := logic.NewReconcileLogic(db, config.ReconcilerConfig{
		MaxRetries: 2,
		BackoffMs:  1,
		PoolSize:   4,
	})
	if err != nil {
		t.Fatalf("Failed to create reconciler: %v", err)
	}
	t.Cleanup(reconciler.Close)

	donationLogic := logic.NewDonationLogic(db, reconciler, config.ReconcilerConfig{})
	campaignLogic := logic.NewCampaignLogic(db, nil)
	h := NewDonationHandler(donationLogic, campaignLogic)

	r := gin.New()
	r.Use(auth.Middleware(testSecret))
	r.GET("/api/v1/campaigns/:id/donors", h.GetDonors)
	r.GET("/api/v1/campaigns/:id/stats", h.GetStats)
	return r
}

func seedHandlerCampaign(t *testing.T, db *gorm.DB, status model.CampaignStatus, ownerId string) *model.Campaign {
	t.Helper()

	campaign := &model.Campaign{
		Id:            uuid.NewString(),
		Title:         "Help rebuild the school",
		Description:   "A fundraising campaign created for testing, with a description long enough to pass validation.",
		Category:      "education",
		GoalAmount:    decimal.NewFromInt(5000),
		CurrentAmount: decimal.Zero,
		Status:        status,
		UserId:        ownerId,
	}
	if err := db.Create(campaign).Error; err != nil {
		t.Fatalf("Failed to seed campaign: %v", err)
	}
	return campaign
}

func signTestToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()

	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}
	return raw
}

func doGet(t *testing.T, r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestStats_PendingCampaignHiddenFromAnonymous(t *testing.T) {
	db := setupTestDB(t)
	r := newDonationRouter(t, db)
	campaign := seedHandlerCampaign(t, db, model.CampaignStatusPending, uuid.NewString())

	for _, path := range []string{
		"/api/v1/campaigns/" + campaign.Id + "/stats",
		"/api/v1/campaigns/" + campaign.Id + "/donors",
	} {
		w := doGet(t, r, path, "")
		if w.Code != http.StatusNotFound {
			t.Errorf("anonymous GET %s: expected 404, got %d, body %s", path, w.Code, w.Body.String())
		}
	}
}

func TestStats_PendingCampaignVisibleToOwnerAndAdmin(t *testing.T) {
	db := setupTestDB(t)
	r := newDonationRouter(t, db)
	ownerId := uuid.NewString()
	campaign := seedHandlerCampaign(t, db, model.CampaignStatusPending, ownerId)
	path := "/api/v1/campaigns/" + campaign.Id + "/stats"

	tests := []struct {
		name   string
		claims jwt.MapClaims
		want   int
	}{
		{"owner", jwt.MapClaims{"user_id": ownerId}, http.StatusOK},
		{"admin", jwt.MapClaims{"user_id": uuid.NewString(), "is_admin": true}, http.StatusOK},
		{"unrelated user", jwt.MapClaims{"user_id": uuid.NewString()}, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doGet(t, r, path, signTestToken(t, tt.claims))
			if w.Code != tt.want {
				t.Errorf("expected %d, got %d, body %s", tt.want, w.Code, w.Body.String())
			}
		})
	}
}

func TestStats_ApprovedCampaignPublic(t *testing.T) {
	db := setupTestDB(t)
	r := newDonationRouter(t, db)
	campaign := seedHandlerCampaign(t, db, model.CampaignStatusApproved, uuid.NewString())

	w := doGet(t, r, "/api/v1/campaigns/"+campaign.Id+"/stats", "")
	if w.Code != http.StatusOK {
		t.Fatalf("anonymous GET stats on approved campaign: expected 200, got %d", w.Code)
	}

	var resp Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if !resp.Success {
		t.Errorf("expected success response, got %+v", resp)
	}
}
