package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"bevin/internal/model"

	"go.uber.org/zap"
)

const composerSystemPrompt = "You recommend drinks using the provided 'database rows'. " +
	"Always: 1) pick 1-3 best fits, 2) say why, 3) include price & rating, " +
	"4) if over budget, suggest cheaper similar options, 5) keep it under 120 words."

const personaPrompt = "You are Bevin, a friendly barista-buddy chatbot that can also recommend drinks. " +
	"For casual greetings and small talk: keep replies warm, concise (max 60 words), " +
	"and mention that the user can ask for drink ideas anytime. Avoid making up facts."

const personaDefaultPrompt = "Say hello to the user and mention you can suggest drinks."

// PersonaFallback is the canned greeting used when the persona generation
// call fails or generation is disabled.
const PersonaFallback = "Hey! I'm Bevin. I can chat and suggest great drinks - what are you in the mood for?"

// NoMatchMessage is returned verbatim whenever the cascade comes back
// empty. No generation call is made in that case.
const NoMatchMessage = "I couldn't find a great match for that. Try tweaking it: set a budget (e.g., under $8), name a vibe (tropical/citrus/creamy), or a base (coffee/tea/fruit)."

// ErrorMessage is the user-facing apology for store failures.
const ErrorMessage = "Whoops, something glitched on my end. I can still suggest a few popular picks if you tell me a vibe (e.g., tropical, citrus, or creamy) and a budget."

// Composer turns the shortlisted candidates into a natural-language reply,
// via the generation service when available and a deterministic template
// otherwise. Generation failures never surface to the caller.
type Composer struct {
	generator    TextGenerator
	previewCount int
	logger       *zap.Logger
}

// NewComposer creates a new reply composer. generator may be nil to force
// deterministic replies.
func NewComposer(generator TextGenerator, previewCount int, logger *zap.Logger) *Composer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Composer{
		generator:    generator,
		previewCount: previewCount,
		logger:       logger,
	}
}

// Compose produces the recommendation reply for a non-empty pipeline run.
// An empty candidate list yields the fixed no-match message without
// touching the generation service.
func (c *Composer) Compose(ctx context.Context, userMessage string, intent model.Intent, picks []model.Pick) string {
	if len(picks) == 0 {
		return NoMatchMessage
	}

	if c.generator != nil && c.generator.IsEnabled() {
		if text := c.generativeReply(ctx, userMessage, picks); text != "" {
			return text
		}
	}

	return c.deterministicReply(intent, picks)
}

// PersonaReply answers small talk in Bevin's voice, skipping retrieval
// entirely.
func (c *Composer) PersonaReply(ctx context.Context, message string) string {
	if c.generator == nil || !c.generator.IsEnabled() {
		return PersonaFallback
	}

	prompt := strings.TrimSpace(message)
	if prompt == "" {
		prompt = personaDefaultPrompt
	}

	text, err := c.generator.Complete(ctx, []ChatMessage{
		{Role: "system", Content: personaPrompt},
		{Role: "user", Content: prompt},
	}, 0.6)
	if err != nil {
		c.logger.Warn("persona generation failed", zap.Error(err))
		return PersonaFallback
	}
	if text == "" {
		return PersonaFallback
	}
	return text
}

// generativeReply asks the generation service for a reply; returns "" on
// any failure so the caller falls through to the template.
func (c *Composer) generativeReply(ctx context.Context, userMessage string, picks []model.Pick) string {
	preview := picks
	if len(preview) > c.previewCount {
		preview = preview[:c.previewCount]
	}

	payload, err := json.Marshal(preview)
	if err != nil {
		c.logger.Warn("failed to marshal candidates for generation", zap.Error(err))
		return ""
	}

	msg := userMessage
	if msg == "" {
		msg = "(none)"
	}

	text, err := c.generator.Complete(ctx, []ChatMessage{
		{Role: "system", Content: composerSystemPrompt},
		{Role: "user", Content: fmt.Sprintf("User message: %s\nCandidates (JSON): %s", msg, payload)},
	}, 0.4)
	if err != nil {
		c.logger.Warn("generation failed, using deterministic reply", zap.Error(err))
		return ""
	}
	return text
}

// deterministicReply builds a templated reply from the top candidates: a
// lead line with count/vibe/budget context, one bullet per pick, and a
// static usage tip.
func (c *Composer) deterministicReply(intent model.Intent, picks []model.Pick) string {
	top := picks
	if len(top) > 3 {
		top = top[:3]
	}

	var b strings.Builder
	b.WriteString(leadLine(intent, len(top)))
	for _, p := range top {
		b.WriteString("\n- ")
		b.WriteString(p.Name)
		b.WriteString(" (")
		b.WriteString(fmtPrice(p.Price))
		b.WriteString(", ")
		b.WriteString(fmtRating(p.Rating))
		if p.Location != nil && *p.Location != "" {
			b.WriteString(", ")
			b.WriteString(*p.Location)
		}
		b.WriteString(")")
	}
	b.WriteString("\nTip: name a vibe (tropical/citrus/creamy) and a budget to narrow things down.")
	return b.String()
}

func leadLine(intent model.Intent, n int) string {
	s := fmt.Sprintf("Here are %d strong picks", n)
	if n == 1 {
		s = "Here is a strong pick"
	}
	if intent.Tag != nil && *intent.Tag != "" {
		s += fmt.Sprintf(" for a %s vibe", *intent.Tag)
	}
	if intent.MaxPrice != nil {
		s += fmt.Sprintf(" under $%.2f", *intent.MaxPrice)
	}
	return s + ":"
}

func fmtPrice(p *float64) string {
	if p == nil {
		return "price n/a"
	}
	return fmt.Sprintf("$%.2f", *p)
}

func fmtRating(r *float64) string {
	if r == nil {
		return "unrated"
	}
	return fmt.Sprintf("★%.1f", *r)
}
