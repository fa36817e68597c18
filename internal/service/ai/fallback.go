package ai

import "regexp"

// fallbackRule pairs a pattern with a canned reply. Rules are evaluated in
// order against the raw user message, first match wins. This cascade is
// deliberately separate from the retrieval trigger cascade: its input is the
// user's text, not the assembled prompt.
type fallbackRule struct {
	pattern *regexp.Regexp
	reply   string
}

var fallbackRules = []fallbackRule{
	{
		pattern: regexp.MustCompile(`(?i)hello|hi|hey|greetings`),
		reply: "Hello! I'm Blogify's assistant. I'm currently experiencing some " +
			"technical difficulties, but I'm here to help with your blog-related " +
			"questions when I'm back online!",
	},
	{
		pattern: regexp.MustCompile(`(?i)write|writing|tip|advice|help`),
		reply: "I'd love to help with writing tips! Unfortunately, I'm temporarily " +
			"unavailable due to high demand. Please try again in a few minutes, or " +
			"feel free to explore our blog posts for inspiration!",
	},
	{
		pattern: regexp.MustCompile(`(?i)blog|post|article|content`),
		reply: "I can help you find and discuss blog posts! I'm currently " +
			"experiencing some technical issues, but I'll be back to assist you " +
			"shortly. In the meantime, you can browse our blog section!",
	},
}

const fallbackDefault = "I'm sorry, but I'm currently experiencing technical " +
	"difficulties. Please try again in a few moments, or contact support if the " +
	"issue persists."

// FallbackReply returns the canned response for a user message when the
// upstream reports transient unavailability. Deterministic: identical input
// always selects the same reply.
func FallbackReply(userMessage string) string {
	for _, rule := range fallbackRules {
		if rule.pattern.MatchString(userMessage) {
			return rule.reply
		}
	}
	return fallbackDefault
}
