package domain

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

const (
	PlatformWeb      = "web"
	PlatformTelegram = "telegram"
)

// Ledger entry categories. Every balance change carries exactly one of these.
const (
	LedgerWelcomeBonus  = "WELCOME_BONUS"
	LedgerReferralBonus = "REFERRAL_BONUS"
	LedgerVisitBonus    = "VISIT_BONUS"
	LedgerChatReward    = "CHAT_REWARD"
)

const (
	ModelTagLocal  = "ganesh-ai"
	ModelTagRemote = "ganesh-ai-remote"
)

// ReferralCodeLength matches the 8-char upper-case codes the platform hands out.
const ReferralCodeLength = 8
