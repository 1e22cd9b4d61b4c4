// Package responder turns an inbound message into a reply. Classification is a
// fixed keyword scan; reply selection within a category is pseudo-random.
// When a remote credential is configured the responder delegates generation
// upstream, falling back to the local tables on any failure.
package responder

import (
	"context"
	"math/rand"
	"strings"
	"sync"

	"ganeshai/config"
	"ganeshai/internal/domain"
	"ganeshai/pkg/openai"

	log "github.com/sirupsen/logrus"
)

// Context describes the caller of a single exchange. No conversation state is
// kept between calls.
type Context struct {
	IsPremium bool
	Platform  string // web | telegram
}

type Reply struct {
	Text     string
	Category string
	ModelTag string
}

type Responder struct {
	appName string
	replies map[string][]string
	remote  *openai.Client

	mu  sync.Mutex
	rng *rand.Rand
}

// New builds a responder from config. rng is the selection source; tests pass
// a seeded one, main passes a time-seeded one.
func New(cfg *config.Config, remote *openai.Client, rng *rand.Rand) *Responder {
	return &Responder{
		appName: cfg.AppName,
		replies: buildReplies(
			cfg.AppName,
			cfg.Rewards.ChatPayRate.StringFixed(2),
			cfg.Rewards.ReferralBonus.StringFixed(2),
			cfg.Premium.MonthlyPrice.StringFixed(0),
		),
		remote: remote,
		rng:    rng,
	}
}

// Classify lower-cases the message and returns the first category whose
// keyword set matches, in fixed priority order.
func Classify(message string) string {
	lower := strings.ToLower(message)
	for _, cat := range categoryOrder {
		for _, kw := range keywords[cat] {
			if strings.Contains(lower, kw) {
				return cat
			}
		}
	}
	return CategoryDefault
}

// Generate always returns a reply: remote failures are absorbed, never
// surfaced to the caller.
func (r *Responder) Generate(ctx context.Context, message string, cc Context) Reply {
	if r.remote.Enabled() {
		text, err := r.remote.Complete(ctx, r.systemPrompt(cc), message)
		if err == nil {
			return Reply{Text: text, Category: Classify(message), ModelTag: domain.ModelTagRemote}
		}
		log.WithError(err).Debug("remote generation failed, using local fallback")
	}
	return r.local(message, cc)
}

func (r *Responder) local(message string, cc Context) Reply {
	category := Classify(message)
	options := r.replies[category]

	r.mu.Lock()
	text := options[r.rng.Intn(len(options))]
	r.mu.Unlock()

	if cc.IsPremium {
		text += "\n\n⭐ Premium user - You have access to all advanced features!"
	} else {
		text += "\n\n💡 Tip: Upgrade to Premium for enhanced AI capabilities and 2x earnings!"
	}
	return Reply{Text: text, Category: category, ModelTag: domain.ModelTagLocal}
}

func (r *Responder) systemPrompt(cc Context) string {
	prompt := "You are " + r.appName + ", an advanced and helpful AI assistant. " +
		"You are knowledgeable, creative, and always aim to provide accurate and useful responses. " +
		"Always be helpful, respectful, and provide detailed responses when appropriate."
	if cc.IsPremium {
		prompt += "\n\nThe user has premium access, so provide enhanced and detailed responses."
	}
	if cc.Platform == domain.PlatformTelegram {
		prompt += "\n\nYou are responding via Telegram, so keep responses concise but informative."
	}
	return prompt
}
