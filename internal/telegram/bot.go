package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"ganeshai/config"
	"ganeshai/internal/domain"
	"ganeshai/internal/models"
	"ganeshai/internal/repository"
	"ganeshai/internal/responder"
	"ganeshai/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// Telegram hard-caps messages at 4096 characters; stay under with headroom.
const maxMessageLen = 4000

var nowFunc = time.Now

// Bot serves the Telegram front end over long polling. It shares the account
// and ledger services with the HTTP layer, so both surfaces pay out of the
// same books.
type Bot struct {
	api       *tgbotapi.BotAPI
	cfg       *config.Config
	accounts  *service.AccountService
	ledger    *service.LedgerService
	responder *responder.Responder
	userRepo  *repository.UserRepository
	ledgers   *repository.LedgerRepository
	chats     *repository.ChatRepository
}

func NewBot(cfg *config.Config, accounts *service.AccountService, ledger *service.LedgerService, rsp *responder.Responder, userRepo *repository.UserRepository, ledgers *repository.LedgerRepository, chats *repository.ChatRepository) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		return nil, fmt.Errorf("telegram: %w", err)
	}
	return &Bot{
		api:       api,
		cfg:       cfg,
		accounts:  accounts,
		ledger:    ledger,
		responder: rsp,
		userRepo:  userRepo,
		ledgers:   ledgers,
		chats:     chats,
	}, nil
}

// Run polls for updates until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) {
	logrus.WithField("bot", b.api.Self.UserName).Info("telegram bot started")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			logrus.Info("telegram bot stopped")
			return
		case update := <-updates:
			if update.Message == nil || update.Message.Text == "" {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	defer func() {
		if r := recover(); r != nil {
			logrus.WithField("panic", r).Error("telegram handler panicked")
		}
	}()

	if msg.IsCommand() {
		b.handleCommand(msg)
		return
	}
	b.handleChat(ctx, msg)
}

func (b *Bot) handleCommand(msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		b.cmdStart(msg)
	case "help":
		b.reply(msg.Chat.ID, b.helpText())
	case "premium":
		b.cmdPremium(msg)
	case "balance":
		b.cmdBalance(msg)
	case "referral":
		b.cmdReferral(msg)
	case "stats":
		b.cmdStats(msg)
	default:
		b.reply(msg.Chat.ID, "Unknown command. Try /help.")
	}
}

func (b *Bot) cmdStart(msg *tgbotapi.Message) {
	telegramID := strconv.FormatInt(msg.From.ID, 10)
	referralCode := strings.TrimSpace(msg.CommandArguments())

	user, isNew, err := b.accounts.RegisterTelegram(telegramID, msg.From.UserName, referralCode)
	if err != nil {
		logrus.WithError(err).Error("telegram register failed")
		b.reply(msg.Chat.ID, "Something went wrong, please try again later.")
		return
	}

	if isNew {
		b.reply(msg.Chat.ID, fmt.Sprintf(
			"🎉 Welcome to %s!\n\n"+
				"You've received ₹%s as a welcome bonus!\n\n"+
				"💬 Chat with me and earn ₹%s per message.\n"+
				"👥 Invite friends with /referral and earn ₹%s per signup.\n\n"+
				"Type /help to see everything I can do.",
			b.cfg.AppName,
			b.cfg.Rewards.WelcomeBonus.StringFixed(2),
			b.cfg.Rewards.ChatPayRate.StringFixed(2),
			b.cfg.Rewards.ReferralBonus.StringFixed(2),
		))
		return
	}
	b.reply(msg.Chat.ID, fmt.Sprintf(
		"👋 Welcome back, %s!\n\nYour balance: ₹%s\nJust send me a message to keep earning.",
		user.Username, user.Balance.StringFixed(2),
	))
}

func (b *Bot) cmdPremium(msg *tgbotapi.Message) {
	user := b.requireUser(msg)
	if user == nil {
		return
	}
	if user.PremiumActive(nowFunc()) {
		b.reply(msg.Chat.ID, "⭐ You are already a premium member! Enjoy your 2x earnings.")
		return
	}
	b.reply(msg.Chat.ID, fmt.Sprintf(
		"⭐ Premium Membership\n\n"+
			"• %sx earnings on every chat\n"+
			"• Priority responses\n\n"+
			"Monthly: ₹%s\nYearly: ₹%s\n\n"+
			"Visit %s to upgrade.",
		b.cfg.Premium.Multiplier.String(),
		b.cfg.Premium.MonthlyPrice.StringFixed(0),
		b.cfg.Premium.YearlyPrice.StringFixed(0),
		b.cfg.Domain,
	))
}

func (b *Bot) cmdBalance(msg *tgbotapi.Message) {
	user := b.requireUser(msg)
	if user == nil {
		return
	}
	b.reply(msg.Chat.ID, fmt.Sprintf(
		"💰 Your Balance\n\nCurrent: ₹%s\nTotal earned: ₹%s",
		user.Balance.StringFixed(2), user.TotalEarned.StringFixed(2),
	))
}

func (b *Bot) cmdReferral(msg *tgbotapi.Message) {
	user := b.requireUser(msg)
	if user == nil {
		return
	}
	count, err := b.userRepo.CountReferredBy(user.ReferralCode)
	if err != nil {
		logrus.WithError(err).Warn("referral count failed")
	}
	earned, err := b.ledgers.SumByCategory(user.ID, domain.LedgerReferralBonus)
	if err != nil {
		logrus.WithError(err).Warn("referral earnings sum failed")
	}
	b.reply(msg.Chat.ID, fmt.Sprintf(
		"👥 Your Referrals\n\n"+
			"Code: %s\n"+
			"Link: https://t.me/%s?start=%s\n\n"+
			"Referrals: %d\n"+
			"Earned: ₹%s\n\n"+
			"You earn ₹%s for every friend who joins!",
		user.ReferralCode,
		b.cfg.Telegram.BotUsername, user.ReferralCode,
		count,
		earned.StringFixed(2),
		b.cfg.Rewards.ReferralBonus.StringFixed(2),
	))
}

func (b *Bot) cmdStats(msg *tgbotapi.Message) {
	user := b.requireUser(msg)
	if user == nil {
		return
	}
	chatCount, err := b.chats.CountByUser(user.ID)
	if err != nil {
		logrus.WithError(err).Warn("chat count failed")
	}
	referralCount, err := b.userRepo.CountReferredBy(user.ReferralCode)
	if err != nil {
		logrus.WithError(err).Warn("referral count failed")
	}
	premium := "No"
	if user.PremiumActive(nowFunc()) {
		premium = "Yes ⭐"
	}
	b.reply(msg.Chat.ID, fmt.Sprintf(
		"📊 Your Stats\n\n"+
			"Chats: %d\n"+
			"Referrals: %d\n"+
			"Balance: ₹%s\n"+
			"Total earned: ₹%s\n"+
			"Premium: %s",
		chatCount, referralCount,
		user.Balance.StringFixed(2), user.TotalEarned.StringFixed(2),
		premium,
	))
}

func (b *Bot) handleChat(ctx context.Context, msg *tgbotapi.Message) {
	user := b.requireUser(msg)
	if user == nil {
		return
	}

	reply := b.responder.Generate(ctx, msg.Text, responder.Context{
		IsPremium: user.PremiumActive(nowFunc()),
		Platform:  domain.PlatformTelegram,
	})

	text := reply.Text
	record, balance, err := b.ledger.CreditChatReward(user, msg.Text, reply.Text, reply.ModelTag, domain.PlatformTelegram)
	if err != nil {
		// The answer still goes out without the earnings line; this
		// exchange's reward is forfeit, not queued.
		logrus.WithError(err).WithField("user_id", user.ID).Error("chat reward failed")
	} else {
		text += fmt.Sprintf("\n\n💰 +₹%s earned | Balance: ₹%s",
			record.Earned.StringFixed(2), balance.StringFixed(2))
	}

	b.reply(msg.Chat.ID, text)
	b.accounts.TouchLastActive(user.ID)
}

// requireUser resolves the sender's account, prompting for /start if absent.
func (b *Bot) requireUser(msg *tgbotapi.Message) *models.User {
	telegramID := strconv.FormatInt(msg.From.ID, 10)
	user, err := b.userRepo.GetByTelegramID(telegramID)
	if err != nil {
		b.reply(msg.Chat.ID, "Please use /start first to register!")
		return nil
	}
	return user
}

func (b *Bot) reply(chatID int64, text string) {
	if len(text) > maxMessageLen {
		text = text[:maxMessageLen]
	}
	out := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(out); err != nil {
		logrus.WithError(err).Warn("telegram send failed")
	}
}

func (b *Bot) helpText() string {
	return fmt.Sprintf(
		"🤖 %s Commands\n\n"+
			"/start — register and claim your welcome bonus\n"+
			"/balance — check your earnings\n"+
			"/referral — your referral code and link\n"+
			"/stats — your activity summary\n"+
			"/premium — premium membership info\n"+
			"/help — this message\n\n"+
			"Or just send me any message to chat and earn ₹%s per message!",
		b.cfg.AppName, b.cfg.Rewards.ChatPayRate.StringFixed(2),
	)
}
