package service

import (
	"context"

	"bevin/internal/cache"
	"bevin/internal/config"
	"bevin/internal/model"

	"go.uber.org/zap"
)

// previewClipLen bounds the free-text fields forwarded to the generation
// call and the response payload.
const previewClipLen = 120

// ReplyCache is the optional response cache surface. *cache.ReplyCache
// implements it; a nil cache disables caching.
type ReplyCache interface {
	Get(ctx context.Context, key string) (*model.ChatResponse, bool)
	Set(ctx context.Context, key string, resp *model.ChatResponse)
}

// ChatService runs the whole pipeline for one request: small-talk
// detection, intent parsing, tiered retrieval, proximity re-sort, reply
// composition. It never returns an error; failures become Done-shaped
// responses with the error fields set.
type ChatService struct {
	intent    *IntentParser
	retriever *Retriever
	composer  *Composer
	replies   ReplyCache
	cfg       config.ChatConfig
	logger    *zap.Logger
}

// NewChatService creates a new chat service. replies may be nil.
func NewChatService(
	intent *IntentParser,
	retriever *Retriever,
	composer *Composer,
	replies ReplyCache,
	cfg config.ChatConfig,
	logger *zap.Logger,
) *ChatService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChatService{
		intent:    intent,
		retriever: retriever,
		composer:  composer,
		replies:   replies,
		cfg:       cfg,
		logger:    logger,
	}
}

// Chat handles one message end to end and always produces a response with
// a non-empty Message.
func (s *ChatService) Chat(ctx context.Context, req *model.ChatRequest) *model.ChatResponse {
	msg := clip(req.Message, s.cfg.MaxMessageLen)

	limit := req.Limit
	if limit <= 0 {
		limit = s.cfg.DefaultLimit
	}
	if limit > s.cfg.MaxLimit {
		limit = s.cfg.MaxLimit
	}

	// Small talk never touches the database.
	if IsSmallTalk(msg) {
		return &model.ChatResponse{
			Message: s.composer.PersonaReply(ctx, msg),
			Picks:   []model.Pick{},
		}
	}

	var key string
	if s.replies != nil {
		key = cache.Key(msg, limit, req.Filters)
		if cached, ok := s.replies.Get(ctx, key); ok {
			s.logger.Debug("reply cache hit")
			return cached
		}
	}

	intent := s.intent.Merge(s.intent.Parse(msg), req.Filters)

	recipes, err := s.retriever.Retrieve(ctx, intent, limit)
	if err != nil {
		s.logger.Error("retrieval failed", zap.Error(err))
		return &model.ChatResponse{
			Message: ErrorMessage,
			Picks:   []model.Pick{},
			Error:   "internal_error",
			Detail:  err.Error(),
		}
	}

	// Re-order only; selection and count stay as the cascade produced them.
	if intent.NearMe && len(recipes) > 0 {
		recipes = SortByProximity(recipes)
	}

	picks := buildPicks(recipes)
	text := s.composer.Compose(ctx, msg, intent, picks)

	top := picks
	if len(top) > s.cfg.PickCount {
		top = top[:s.cfg.PickCount]
	}

	resp := &model.ChatResponse{
		Message: text,
		Picks:   top,
		Raw:     &model.ChatMeta{Count: len(picks)},
	}

	if s.replies != nil {
		s.replies.Set(ctx, key, resp)
	}
	return resp
}

// buildPicks shapes recipes for the generation call and the response,
// clipping the free-text fields.
func buildPicks(recipes []model.Recipe) []model.Pick {
	picks := make([]model.Pick, 0, len(recipes))
	for i, r := range recipes {
		picks = append(picks, model.Pick{
			Index:       i,
			UUID:        r.UUID,
			Name:        r.DrinkName,
			Price:       r.Price,
			Rating:      r.Rating,
			RatingCount: r.RatingCount,
			Tags:        []string(r.Tags),
			Location:    r.LocationPurchased,
			Thoughts:    clipPtr(r.Thoughts, previewClipLen),
			Recipe:      clipPtr(r.Recipe, previewClipLen),
			ImageURL:    r.ImageURL,
		})
	}
	return picks
}

func clip(s string, n int) string {
	runes := []rune(s)
	if len(runes) > n {
		return string(runes[:n])
	}
	return s
}

func clipPtr(s *string, n int) string {
	if s == nil {
		return ""
	}
	return clip(*s, n)
}
