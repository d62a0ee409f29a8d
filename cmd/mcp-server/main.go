// MCP server exposing the offer aggregation pipeline as a tool, so agent
// integrations can pull ranked offers without handling the provider
// credential themselves.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/patrickwarner/offergate/internal/clientip"
	"github.com/patrickwarner/offergate/internal/config"
	"github.com/patrickwarner/offergate/internal/logic"
	"github.com/patrickwarner/offergate/internal/models"
	"github.com/patrickwarner/offergate/internal/observability"
	"github.com/patrickwarner/offergate/internal/upstream"
	"go.uber.org/zap"
)

type GetOffersInput struct {
	UserAgent string `json:"user_agent,omitempty"`
	IP        string `json:"ip,omitempty"`
	Max       int    `json:"max,omitempty"`
}

type GetOffersOutput struct {
	Count  int               `json:"count"`
	Offers []json.RawMessage `json:"offers"`
}

// OfferServer holds our dependencies
type OfferServer struct {
	client *upstream.Client
	logger *zap.Logger
}

// GetOffers fetches an oversampled pool from the provider, deduplicates and
// ranks it, and returns the top offers.
func (s *OfferServer) GetOffers(ctx context.Context, req *mcp.CallToolRequest, input GetOffersInput) (*mcp.CallToolResult, GetOffersOutput, error) {
	limit := input.Max
	if limit <= 0 {
		limit = logic.DefaultLimit
	}
	ip, usedFallback := clientip.Resolve("", input.IP, "")
	if usedFallback {
		s.logger.Info("no usable ip supplied, using fallback", zap.String("ip", ip))
	}

	body, err := s.client.FetchOffers(ctx, upstream.Query{
		UserAgent: input.UserAgent,
		IP:        ip,
		CType:     upstream.CTypeMask,
		Max:       logic.OversampleCount,
	})
	if err != nil {
		return nil, GetOffersOutput{}, fmt.Errorf("fetch offers: %w", err)
	}

	env, hasOffers, err := models.ParseEnvelope(body)
	if err != nil {
		return nil, GetOffersOutput{}, fmt.Errorf("parse offers: %w", err)
	}
	if !hasOffers {
		return nil, GetOffersOutput{Offers: []json.RawMessage{}}, nil
	}

	ranked := logic.Rank(logic.Dedupe(env.Offers), limit)
	out := GetOffersOutput{Count: len(ranked), Offers: make([]json.RawMessage, 0, len(ranked))}
	for _, o := range ranked {
		raw, err := json.Marshal(o)
		if err != nil {
			return nil, GetOffersOutput{}, fmt.Errorf("encode offer: %w", err)
		}
		out.Offers = append(out.Offers, raw)
	}
	return nil, out, nil
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	logger, err := observability.InitLogger(cfg.ServiceName + "-mcp")
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.OffersAPIKey == "" {
		logger.Fatal("OFFERS_API_KEY is required")
	}

	offerServer := &OfferServer{
		client: upstream.New(cfg.OffersAPIURL, cfg.OffersAPIKey, cfg.UpstreamTimeout, logger, observability.NewNoOpRegistry()),
		logger: logger,
	}

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "offergate",
		Version: "1.0.0",
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_offers",
		Description: "Fetch deduplicated, priority-ranked advertising offers for a client",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"user_agent": map[string]interface{}{
					"type":        "string",
					"description": "Client user agent string (optional, a default is substituted)",
				},
				"ip": map[string]interface{}{
					"type":        "string",
					"description": "Client IP address (optional, a fallback is substituted)",
				},
				"max": map[string]interface{}{
					"type":        "integer",
					"minimum":     1,
					"description": "Maximum number of offers to return (optional, defaults to 5)",
				},
			},
		},
	}, offerServer.GetOffers)

	logger.Info("MCP Server running via stdio")

	if err := server.Run(context.Background(), &mcp.StdioTransport{}); err != nil {
		logger.Fatal("Server error", zap.Error(err))
	}
}
