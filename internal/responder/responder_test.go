package responder

import (
	"context"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ganeshai/config"
	"ganeshai/internal/domain"
	"ganeshai/pkg/openai"

	"github.com/shopspring/decimal"
)

func testConfig() *config.Config {
	return &config.Config{
		AppName: "Ganesh A.I.",
		Rewards: config.RewardsConfig{
			ChatPayRate:   decimal.RequireFromString("0.05"),
			ReferralBonus: decimal.RequireFromString("10.0"),
		},
		Premium: config.PremiumConfig{
			Multiplier:   decimal.NewFromInt(2),
			MonthlyPrice: decimal.RequireFromString("99.0"),
		},
	}
}

func newLocalResponder() *Responder {
	return New(testConfig(), nil, rand.New(rand.NewSource(1)))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		message string
		want    string
	}{
		{"hello there", CategoryGreeting},
		{"HELLO", CategoryGreeting},
		{"namaste bhai", CategoryGreeting},
		{"what can you do", CategoryHelp},
		{"tell me about premium plans", CategoryPremium},
		{"how do I earn money here", CategoryEarnings},
		{"solve 2+2", CategoryMath},
		{"write me some python code", CategoryCoding},
		{"write a poem about rain", CategoryCreative},
		{"quantum entanglement basics", CategoryDefault},
		{"", CategoryDefault},
	}
	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			if got := Classify(tt.message); got != tt.want {
				t.Errorf("Classify(%q) = %s, want %s", tt.message, got, tt.want)
			}
		})
	}
}

// Greeting outranks earnings for a message matching both keyword sets.
func TestClassifyPriority(t *testing.T) {
	if got := Classify("hello, how do I earn money"); got != CategoryGreeting {
		t.Errorf("Classify = %s, want %s", got, CategoryGreeting)
	}
}

func TestLocalReplyComesFromCategoryTable(t *testing.T) {
	r := newLocalResponder()

	reply := r.Generate(context.Background(), "hello", Context{Platform: domain.PlatformWeb})
	if reply.Category != CategoryGreeting {
		t.Fatalf("category = %s, want %s", reply.Category, CategoryGreeting)
	}
	if reply.ModelTag != domain.ModelTagLocal {
		t.Errorf("model tag = %s, want %s", reply.ModelTag, domain.ModelTagLocal)
	}

	found := false
	for _, opt := range r.replies[CategoryGreeting] {
		if strings.HasPrefix(reply.Text, opt) {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("reply %q does not start with any greeting option", reply.Text)
	}
}

func TestLocalReplyTips(t *testing.T) {
	r := newLocalResponder()

	free := r.Generate(context.Background(), "hello", Context{Platform: domain.PlatformWeb})
	if !strings.Contains(free.Text, "Upgrade to Premium") {
		t.Errorf("free reply missing the upsell tip: %q", free.Text)
	}

	prem := r.Generate(context.Background(), "hello", Context{IsPremium: true, Platform: domain.PlatformWeb})
	if !strings.Contains(prem.Text, "Premium user") {
		t.Errorf("premium reply missing the premium note: %q", prem.Text)
	}
	if strings.Contains(prem.Text, "Upgrade to Premium") {
		t.Errorf("premium reply still carries the upsell tip: %q", prem.Text)
	}
}

func TestRepliesInterpolateRates(t *testing.T) {
	r := newLocalResponder()

	earnings := r.replies[CategoryEarnings][0]
	if !strings.Contains(earnings, "₹0.05") {
		t.Errorf("earnings reply missing the chat rate: %q", earnings)
	}
	if !strings.Contains(earnings, "₹10.00") {
		t.Errorf("earnings reply missing the referral bonus: %q", earnings)
	}
	premium := r.replies[CategoryPremium][0]
	if !strings.Contains(premium, "₹99/month") {
		t.Errorf("premium reply missing the monthly price: %q", premium)
	}
}

func TestGenerateUsesRemoteWhenAvailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Path != "/v1/chat/completions" {
			t.Errorf("path = %s", req.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"remote answer"}}]}`))
	}))
	defer srv.Close()

	remote := openai.NewClient(srv.URL, "test-key", "gpt-4o-mini", 5*time.Second)
	r := New(testConfig(), remote, rand.New(rand.NewSource(1)))

	reply := r.Generate(context.Background(), "hello", Context{Platform: domain.PlatformWeb})
	if reply.Text != "remote answer" {
		t.Errorf("text = %q, want remote answer", reply.Text)
	}
	if reply.ModelTag != domain.ModelTagRemote {
		t.Errorf("model tag = %s, want %s", reply.ModelTag, domain.ModelTagRemote)
	}
}

func TestGenerateFallsBackOnRemoteFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	remote := openai.NewClient(srv.URL, "test-key", "gpt-4o-mini", 5*time.Second)
	r := New(testConfig(), remote, rand.New(rand.NewSource(1)))

	reply := r.Generate(context.Background(), "hello", Context{Platform: domain.PlatformWeb})
	if reply.ModelTag != domain.ModelTagLocal {
		t.Errorf("model tag = %s, want local fallback", reply.ModelTag)
	}
	if reply.Text == "" {
		t.Error("fallback produced an empty reply")
	}
}

func TestSystemPrompt(t *testing.T) {
	r := newLocalResponder()

	base := r.systemPrompt(Context{Platform: domain.PlatformWeb})
	if !strings.Contains(base, "Ganesh A.I.") {
		t.Errorf("prompt missing app name: %q", base)
	}
	if strings.Contains(base, "premium access") {
		t.Error("non-premium prompt mentions premium access")
	}

	prem := r.systemPrompt(Context{IsPremium: true, Platform: domain.PlatformTelegram})
	if !strings.Contains(prem, "premium access") {
		t.Error("premium prompt missing the premium clause")
	}
	if !strings.Contains(prem, "Telegram") {
		t.Error("telegram prompt missing the platform clause")
	}
}
