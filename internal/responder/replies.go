package responder

import "fmt"

// Category names, in match priority order. First match wins.
const (
	CategoryGreeting = "greeting"
	CategoryHelp     = "help"
	CategoryPremium  = "premium"
	CategoryEarnings = "earnings"
	CategoryMath     = "math"
	CategoryCoding   = "coding"
	CategoryCreative = "creative"
	CategoryDefault  = "default"
)

var categoryOrder = []string{
	CategoryGreeting,
	CategoryHelp,
	CategoryPremium,
	CategoryEarnings,
	CategoryMath,
	CategoryCoding,
	CategoryCreative,
}

var keywords = map[string][]string{
	CategoryGreeting: {"hello", "hi", "hey", "namaste", "start", "good morning", "good evening"},
	CategoryHelp:     {"help", "what can you do", "capabilities", "commands"},
	CategoryPremium:  {"premium", "upgrade", "subscription", "plan", "paid"},
	CategoryEarnings: {"earn", "money", "payment", "balance", "income", "cash"},
	CategoryMath:     {"math", "calculate", "equation", "number", "solve", "+", "-", "*", "/"},
	CategoryCoding:   {"code", "programming", "python", "javascript", "html", "css", "java"},
	CategoryCreative: {"write", "story", "poem", "creative", "idea", "brainstorm"},
}

// buildReplies renders the canned reply table. Rate and price strings are
// interpolated once at construction.
func buildReplies(appName, chatRate, referralBonus, monthlyPrice string) map[string][]string {
	return map[string][]string{
		CategoryGreeting: {
			fmt.Sprintf("Hello! I'm %s, your intelligent AI assistant. How can I help you today?", appName),
			fmt.Sprintf("Hi there! Welcome to %s. What would you like to explore?", appName),
			"Namaste! 🙏 I'm here to assist you with any questions or tasks.",
			"Greetings! I'm ready to help you with information, creative tasks, and much more!",
		},
		CategoryHelp: {
			"I can help you with various tasks:\n\n🤖 Answering questions on any topic\n💡 Creative writing and brainstorming\n🔍 Research and analysis\n💻 Coding assistance\n📚 Educational support\n🎯 Problem-solving\n\nJust ask me anything!",
			"My capabilities include:\n\n📖 General knowledge\n✍️ Writing and editing\n🧮 Math and calculations\n🔬 Science explanations\n🎨 Creative projects\n💼 Business advice\n\nWhat would you like to explore?",
		},
		CategoryPremium: {
			fmt.Sprintf("🌟 Premium features:\n\n✅ Advanced AI models\n✅ Unlimited conversations\n✅ Priority support\n✅ 2x earning rates\n✅ Exclusive features\n\nUpgrade for just ₹%s/month!", monthlyPrice),
		},
		CategoryEarnings: {
			fmt.Sprintf("💰 Earning opportunities:\n\n💬 Chat: ₹%s per message\n👥 Referrals: ₹%s per friend\n⭐ Premium users earn 2x\n🎯 Daily bonuses available\n\nStart chatting to earn!", chatRate, referralBonus),
		},
		CategoryMath: {
			"I can help you with mathematical calculations, equations, statistics, and problem-solving. What math question do you have?",
			"Mathematics is one of my strong areas! I can assist with algebra, calculus, geometry, statistics, and more. What would you like to calculate?",
		},
		CategoryCoding: {
			"I can help you with programming in various languages like Python, JavaScript, Java, C++, and more. What coding challenge are you working on?",
			"Programming assistance is available! I can help with debugging, code optimization, algorithm design, and learning new technologies. What do you need help with?",
		},
		CategoryCreative: {
			"I'd love to help with your creative projects! I can assist with writing stories, poems, scripts, brainstorming ideas, or any creative endeavor. What are you working on?",
			"Creative writing and ideation are exciting! Whether it's fiction, poetry, marketing copy, or brainstorming, I'm here to help. What's your creative challenge?",
		},
		CategoryDefault: {
			"That's an interesting question! Let me provide you with a helpful response based on what you're asking.",
			"I understand what you're looking for. Here's my analysis and suggestions for your query.",
			"Great question! Let me share some insights and information that might be useful to you.",
			"Thank you for asking! I'll do my best to provide you with accurate and helpful information.",
			"I appreciate your question. Let me give you a comprehensive answer based on my knowledge.",
			"That's a thoughtful inquiry. Here's what I can tell you about that topic.",
			"Excellent question! I'm happy to help you understand this better.",
			"I see what you're getting at. Let me provide you with detailed information on this subject.",
		},
	}
}
