// Package vectorindex is the Qdrant-backed vector index adapter: similarity
// search over the product catalog's embedding collection.
//
// The pipeline treats this adapter as a potentially slow, potentially failing
// black box; gRPC transport errors are classified transient so the worker's
// retry loop can take another pass.
package vectorindex

import (
	"context"
	"fmt"
	"time"

	qdrant "github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/stylelens/stylelens/internal/adapterr"
	"github.com/stylelens/stylelens/internal/logger"
)

// Client wraps the official Qdrant client with the product-search operation.
type Client struct {
	api *qdrant.Client
	cfg Config
	log logger.Logger
}

// NewClient constructs the client and validates connectivity with an
// immediate health check, failing fast if Qdrant is unreachable.
func NewClient(cfg Config, log logger.Logger) (*Client, error) {
	port := cfg.Port
	if port == 0 {
		port = 6334
	}

	api, err := qdrant.NewClient(&qdrant.Config{
		Host:   cfg.Host,
		Port:   port,
		APIKey: cfg.APIKey,
		UseTLS: cfg.UseTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("vectorindex: init client: %w", err)
	}

	c := &Client{api: api, cfg: cfg, log: log}
	if err := c.healthCheck(); err != nil {
		return nil, err
	}

	log.Info("connected to qdrant", nil, map[string]interface{}{
		"host":       cfg.Host,
		"port":       port,
		"collection": cfg.Collection,
	})
	return c, nil
}

func (c *Client) healthCheck() error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if _, err := c.api.HealthCheck(ctx); err != nil {
		return fmt.Errorf("vectorindex: health check: %w", err)
	}
	return nil
}

// Close shuts down the underlying gRPC connection.
func (c *Client) Close() error {
	return c.api.Close()
}

// Search runs a top-k similarity query against the product collection,
// optionally restricted by an attribute filter. Results include payload
// attributes and the stored vector so the reranker can blend scores without
// further round trips.
func (c *Client) Search(ctx context.Context, vector []float32, k int, filter *Filter) ([]Match, error) {
	if len(vector) == 0 {
		return nil, adapterr.Permanent("vectorindex: search", fmt.Errorf("empty query vector"))
	}
	if k <= 0 {
		return nil, adapterr.Permanent("vectorindex: search", fmt.Errorf("non-positive k %d", k))
	}

	limit := uint64(k)
	points, err := c.api.Query(ctx, &qdrant.QueryPoints{
		CollectionName: c.cfg.Collection,
		Query:          qdrant.NewQuery(vector...),
		Limit:          &limit,
		Filter:         buildFilter(filter),
		WithPayload:    qdrant.NewWithPayload(true),
		WithVectors:    qdrant.NewWithVectors(true),
	})
	if err != nil {
		return nil, c.classify(err)
	}

	matches := make([]Match, 0, len(points))
	for _, p := range points {
		matches = append(matches, pointToMatch(p))
	}
	return matches, nil
}

func pointToMatch(p *qdrant.ScoredPoint) Match {
	m := Match{
		ProductID:  pointID(p.GetId()),
		IndexScore: p.GetScore(),
	}

	if v := p.GetVectors().GetVector(); v != nil {
		m.Vector = v.GetData()
	}

	payload := p.GetPayload()
	m.Name = payloadString(payload, "name")
	m.Brand = payloadString(payload, "brand")
	m.Category = payloadString(payload, "category")
	m.Pattern = payloadString(payload, "pattern")
	m.Style = payloadString(payload, "style")
	m.ImageURL = payloadString(payload, "image_url")
	m.Colors = payloadStrings(payload, "colors")
	m.Materials = payloadStrings(payload, "materials")
	if v, ok := payload["price"]; ok {
		m.Price = v.GetDoubleValue()
	}
	return m
}

func pointID(id *qdrant.PointId) string {
	if id == nil {
		return ""
	}
	if u := id.GetUuid(); u != "" {
		return u
	}
	return fmt.Sprintf("%d", id.GetNum())
}

func payloadString(payload map[string]*qdrant.Value, key string) string {
	if v, ok := payload[key]; ok {
		return v.GetStringValue()
	}
	return ""
}

func payloadStrings(payload map[string]*qdrant.Value, key string) []string {
	v, ok := payload[key]
	if !ok {
		return nil
	}
	list := v.GetListValue()
	if list == nil {
		return nil
	}
	out := make([]string, 0, len(list.Values))
	for _, item := range list.Values {
		if s := item.GetStringValue(); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// classify maps gRPC errors onto the transient/permanent taxonomy.
// InvalidArgument and NotFound indicate a bad request or a misconfigured
// collection and will not improve with retries.
func (c *Client) classify(err error) error {
	switch status.Code(err) {
	case codes.InvalidArgument, codes.NotFound, codes.PermissionDenied, codes.Unauthenticated:
		return adapterr.Permanent("vectorindex: search", err)
	default:
		return adapterr.Transient("vectorindex: search", err)
	}
}
