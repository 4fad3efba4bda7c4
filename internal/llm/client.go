// Package llm wraps an OpenAI-compatible vision model behind the three
// operations the analysis pipeline needs: attribute extraction from a crop,
// candidate reranking, and refinement-query parsing.
package llm

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/stylelens/stylelens/internal/adapterr"
	"github.com/stylelens/stylelens/internal/logger"
)

const attributesPrompt = `You are a fashion expert. Analyze the %s in this image and return ONLY a JSON object:
{"colors": ["dominant colors"], "materials": ["visible materials"], "pattern": "solid|striped|checked|floral|graphic|other", "style": "casual|formal|sporty|street|classic|other", "details": ["notable design details"]}`

const rerankPrompt = `You are a fashion expert comparing a query item against catalog products.
The image shows the query item (category: %s). Candidate products:
%s
Return ONLY a JSON object {"ranking": ["product_id", ...]} listing the %d best visual matches, most similar first. Use only product IDs from the list.`

const refinePrompt = `Interpret a shopping refinement request for a detected %s.
Request: %q
Return ONLY a JSON object {"colors": [], "materials": [], "pattern": "", "brand": "", "category": "", "price_sort": ""} with the constraints the request expresses. Use "asc" or "desc" for price_sort only when the request mentions price. Leave fields empty when the request says nothing about them.`

// Client talks to the vision-language model.
type Client struct {
	api *openai.Client
	cfg Config
	log logger.Logger
}

// NewClient validates the config and builds the API client.
func NewClient(cfg Config, log logger.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("llm: missing api key")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultConfig().Model
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultConfig().MaxTokens
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	clientConfig.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &Client{
		api: openai.NewClientWithConfig(clientConfig),
		cfg: cfg,
		log: log,
	}, nil
}

// ExtractAttributes asks the model to describe the cropped item.
func (c *Client) ExtractAttributes(ctx context.Context, crop []byte, category string) (*Attributes, error) {
	prompt := fmt.Sprintf(attributesPrompt, category)

	content, err := c.visionCompletion(ctx, prompt, crop)
	if err != nil {
		return nil, err
	}

	var attrs Attributes
	if err := decodeJSONReply(content, &attrs); err != nil {
		return nil, adapterr.Transient("llm: parse attributes", err)
	}
	return &attrs, nil
}

// RerankProducts asks the model to order the candidates by visual similarity
// to the crop and returns at most topK product IDs, best first. IDs the model
// invents are dropped; duplicates keep their first position.
func (c *Client) RerankProducts(ctx context.Context, crop []byte, category string, candidates []Candidate, topK int) ([]string, error) {
	if len(candidates) == 0 {
		return nil, nil
	}

	listing, err := json.Marshal(candidates)
	if err != nil {
		return nil, adapterr.Permanent("llm: encode candidates", err)
	}
	prompt := fmt.Sprintf(rerankPrompt, category, string(listing), topK)

	content, err := c.visionCompletion(ctx, prompt, crop)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Ranking []string `json:"ranking"`
	}
	if err := decodeJSONReply(content, &parsed); err != nil {
		return nil, adapterr.Transient("llm: parse ranking", err)
	}

	known := make(map[string]bool, len(candidates))
	for _, cand := range candidates {
		known[cand.ProductID] = true
	}

	out := make([]string, 0, topK)
	seen := make(map[string]bool, topK)
	for _, id := range parsed.Ranking {
		if !known[id] {
			c.log.Warn("model ranked unknown product id", nil, map[string]interface{}{"product_id": id})
			continue
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
		if len(out) == topK {
			break
		}
	}

	if len(out) == 0 {
		return nil, adapterr.Transient("llm: parse ranking", errors.New("no usable product ids in ranking"))
	}
	return out, nil
}

// ParseRefineQuery turns the free-text refinement request into structured
// filter hints.
func (c *Client) ParseRefineQuery(ctx context.Context, query, category string) (*RefineHints, error) {
	prompt := fmt.Sprintf(refinePrompt, category, query)

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.cfg.Model,
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return nil, classify("llm: chat", err)
	}
	if len(resp.Choices) == 0 {
		return nil, adapterr.Transient("llm: chat", errors.New("empty response"))
	}

	var hints RefineHints
	if err := decodeJSONReply(resp.Choices[0].Message.Content, &hints); err != nil {
		return nil, adapterr.Transient("llm: parse refine hints", err)
	}
	return &hints, nil
}

func (c *Client) visionCompletion(ctx context.Context, prompt string, image []byte) (string, error) {
	dataURL := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(image)

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.cfg.Model,
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: prompt},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL:    dataURL,
							Detail: openai.ImageURLDetailLow,
						},
					},
				},
			},
		},
	})
	if err != nil {
		return "", classify("llm: vision", err)
	}
	if len(resp.Choices) == 0 {
		return "", adapterr.Transient("llm: vision", errors.New("empty response"))
	}
	return resp.Choices[0].Message.Content, nil
}

// decodeJSONReply tolerates the model wrapping its JSON in a markdown code
// fence.
func decodeJSONReply(content string, out any) error {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	}
	return json.Unmarshal([]byte(strings.TrimSpace(content)), out)
}

func classify(op string, err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.HTTPStatusCode == http.StatusTooManyRequests,
			apiErr.HTTPStatusCode >= 500:
			return adapterr.Transient(op, err)
		case apiErr.HTTPStatusCode >= 400:
			return adapterr.Permanent(op, err)
		}
	}
	return adapterr.Transient(op, err)
}
