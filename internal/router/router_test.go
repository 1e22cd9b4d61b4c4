package router

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ganeshai/config"
	"ganeshai/internal/database"
	"ganeshai/internal/repository"
	"ganeshai/internal/responder"
	"ganeshai/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cfg := &config.Config{
		AppName: "Ganesh A.I.",
		Domain:  "http://localhost:8080",
		JWT: config.JWTConfig{
			AccessSecret:  "test-access",
			RefreshSecret: "test-refresh",
			AccessExpiry:  15 * time.Minute,
			RefreshExpiry: 24 * time.Hour,
			Issuer:        "ganeshai",
		},
		Rewards: config.RewardsConfig{
			ChatPayRate:   decimal.RequireFromString("0.05"),
			ReferralBonus: decimal.RequireFromString("10.0"),
			WelcomeBonus:  decimal.RequireFromString("10.0"),
			VisitPayRate:  decimal.RequireFromString("0.001"),
		},
		Premium: config.PremiumConfig{
			Multiplier:   decimal.NewFromInt(2),
			MonthlyPrice: decimal.RequireFromString("99.0"),
			YearlyPrice:  decimal.RequireFromString("999.0"),
		},
		RateLimitRequests: 1000,
		RateLimitWindow:   time.Minute,
	}

	userRepo := repository.NewUserRepository(db)
	ledger := service.NewLedgerService(db, cfg)
	accounts := service.NewAccountService(cfg, db, userRepo, ledger)
	rsp := responder.New(cfg, nil, rand.New(rand.NewSource(1)))

	engine := Setup(cfg, db, Deps{
		Accounts:  accounts,
		Ledger:    ledger,
		Responder: rsp,
		UserRepo:  userRepo,
	})
	return engine, db
}

func doJSON(t *testing.T, engine *gin.Engine, method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	var out map[string]any
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
			t.Fatalf("decode %s %s: %v (%s)", method, path, err, w.Body.String())
		}
	}
	return w, out
}

func registerUser(t *testing.T, engine *gin.Engine, username string) (token string) {
	t.Helper()
	w, out := doJSON(t, engine, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "secret123",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register %s: status %d (%s)", username, w.Code, w.Body.String())
	}
	tok, _ := out["access_token"].(string)
	if tok == "" {
		t.Fatalf("register %s: no access token", username)
	}
	return tok
}

func TestHealthz(t *testing.T) {
	engine, _ := newTestRouter(t)
	w, out := doJSON(t, engine, http.MethodGet, "/healthz", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if out["status"] != "ok" {
		t.Errorf("status field = %v", out["status"])
	}
}

func TestRegisterLoginFlow(t *testing.T) {
	engine, _ := newTestRouter(t)
	registerUser(t, engine, "alice")

	w, out := doJSON(t, engine, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": "alice",
		"password": "secret123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login: status %d (%s)", w.Code, w.Body.String())
	}
	if out["access_token"] == "" || out["refresh_token"] == "" {
		t.Error("login response missing tokens")
	}

	w, _ = doJSON(t, engine, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": "alice",
		"password": "wrong",
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("bad login: status %d, want 401", w.Code)
	}
}

func TestRegisterValidation(t *testing.T) {
	engine, _ := newTestRouter(t)

	tests := []struct {
		name string
		body map[string]string
	}{
		{"short username", map[string]string{"username": "ab", "email": "a@b.com", "password": "secret123"}},
		{"bad email", map[string]string{"username": "alice", "email": "not-an-email", "password": "secret123"}},
		{"short password", map[string]string{"username": "alice", "email": "a@b.com", "password": "123"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _ := doJSON(t, engine, http.MethodPost, "/api/v1/auth/register", "", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
		})
	}
}

func TestRefresh(t *testing.T) {
	engine, _ := newTestRouter(t)
	_, out := doJSON(t, engine, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username": "alice", "email": "alice@example.com", "password": "secret123",
	})
	refresh, _ := out["refresh_token"].(string)

	w, out := doJSON(t, engine, http.MethodPost, "/api/v1/auth/refresh", "", map[string]string{
		"refresh_token": refresh,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("refresh: status %d (%s)", w.Code, w.Body.String())
	}
	if out["access_token"] == "" {
		t.Error("refresh response missing access token")
	}

	w, _ = doJSON(t, engine, http.MethodPost, "/api/v1/auth/refresh", "", map[string]string{
		"refresh_token": "garbage",
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("bogus refresh: status %d, want 401", w.Code)
	}
}

func TestChatEarnsReward(t *testing.T) {
	engine, _ := newTestRouter(t)
	token := registerUser(t, engine, "alice")

	w, out := doJSON(t, engine, http.MethodPost, "/api/v1/chat", token, map[string]string{
		"message": "hello",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("chat: status %d (%s)", w.Code, w.Body.String())
	}
	if out["response"] == "" {
		t.Error("chat response is empty")
	}
	if earned, _ := out["earned"].(string); earned != "0.05" {
		t.Errorf("earned = %v, want 0.05", out["earned"])
	}
	// welcome 10.00 + chat 0.05
	if balance, _ := out["balance"].(string); balance != "10.05" {
		t.Errorf("balance = %v, want 10.05", out["balance"])
	}
}

func TestChatRequiresAuth(t *testing.T) {
	engine, _ := newTestRouter(t)
	w, _ := doJSON(t, engine, http.MethodPost, "/api/v1/chat", "", map[string]string{"message": "hello"})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestQuickChatIsPublic(t *testing.T) {
	engine, db := newTestRouter(t)

	w, out := doJSON(t, engine, http.MethodPost, "/api/v1/quick-chat", "", map[string]string{
		"message": "hello",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d (%s)", w.Code, w.Body.String())
	}
	if out["response"] == "" {
		t.Error("empty response")
	}
	if _, ok := out["earned"]; ok {
		t.Error("public chat must not pay a reward")
	}

	var count int64
	db.Table("chat_records").Count(&count)
	if count != 0 {
		t.Errorf("public chat stored %d records, want none", count)
	}
}

func TestDashboard(t *testing.T) {
	engine, _ := newTestRouter(t)
	token := registerUser(t, engine, "alice")

	w, out := doJSON(t, engine, http.MethodGet, "/api/v1/me/dashboard", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d (%s)", w.Code, w.Body.String())
	}
	if out["user"] == nil {
		t.Error("dashboard missing user")
	}
	if out["referral_link"] == "" {
		t.Error("dashboard missing referral link")
	}
}

func TestAdminGuard(t *testing.T) {
	engine, _ := newTestRouter(t)
	token := registerUser(t, engine, "alice")

	w, _ := doJSON(t, engine, http.MethodGet, "/api/v1/admin/overview", token, nil)
	if w.Code != http.StatusForbidden {
		t.Errorf("non-admin overview: status %d, want 403", w.Code)
	}

	w, _ = doJSON(t, engine, http.MethodGet, "/api/v1/admin/overview", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("anonymous overview: status %d, want 401", w.Code)
	}
}
