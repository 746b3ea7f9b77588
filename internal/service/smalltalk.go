package service

import (
	"regexp"
	"strings"
)

// Conversational patterns that short-circuit the retrieval pipeline.
// Checked against the lower-cased message before any database access.
var smallTalkPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(hi|hey|hello|yo|sup|howdy)\b`),
	regexp.MustCompile(`\b(how are you|how's it going|hows it going|what's up|whats up)\b`),
	regexp.MustCompile(`\b(thank(s| you)|thanks a lot|appreciate it)\b`),
	regexp.MustCompile(`\b(who are you|what are you|what can you do)\b`),
	regexp.MustCompile(`\b(help|instructions|how do i use|what can i ask)\b`),
	regexp.MustCompile(`\b(joke|fun fact|tell me something)\b`),
	regexp.MustCompile(`\b(good (morning|afternoon|evening|night))\b`),
}

// IsSmallTalk reports whether the message should be answered by the persona
// branch instead of the recommendation pipeline. An empty or whitespace-only
// message counts as an implicit greeting.
func IsSmallTalk(message string) bool {
	m := strings.TrimSpace(strings.ToLower(message))
	if m == "" {
		return true
	}
	for _, re := range smallTalkPatterns {
		if re.MatchString(m) {
			return true
		}
	}
	return false
}
