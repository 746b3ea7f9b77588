package model

// ChatRequest is the body of POST /api/v1/chat. Explicit filter values,
// when present, take precedence over ones inferred from the message.
type ChatRequest struct {
	Message string       `json:"message"`
	Limit   int          `json:"limit,omitempty"`
	Filters *ChatFilters `json:"filters,omitempty"`
}

// ChatFilters carries caller-supplied overrides for the intent parser.
type ChatFilters struct {
	MaxPrice  *float64 `json:"maxPrice,omitempty"`
	MinRating *float64 `json:"minRating,omitempty"`
	Tag       *string  `json:"tag,omitempty"`
}

// ChatResponse is always returned with HTTP 200; Error/Detail are only set
// when retrieval failed, and Message always carries a human-readable
// sentence regardless.
type ChatResponse struct {
	Message string    `json:"message"`
	Picks   []Pick    `json:"picks"`
	Raw     *ChatMeta `json:"raw,omitempty"`
	Error   string    `json:"error,omitempty"`
	Detail  string    `json:"detail,omitempty"`
}

// ChatMeta exposes retrieval metadata alongside the reply.
type ChatMeta struct {
	Count int `json:"count"`
}
