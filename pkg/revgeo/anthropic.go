package revgeo

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/pergazuz/thai-map/pkg/anthropic"
)

const anthropicSystem = `You are a reverse geocoder for Thailand. The user sends a numbered list of WGS84 coordinates (latitude, longitude). Reply with a JSON array of strings only: the English name of the Thai province containing each coordinate, in input order. Use "Unknown" for coordinates outside Thailand. No prose, no code fences.`

// AnthropicProvider asks a language model to name the province of each
// coordinate, one message per batch.
type AnthropicProvider struct {
	client    anthropic.Client
	model     string
	maxTokens int64
}

// AnthropicOption configures an AnthropicProvider.
type AnthropicOption func(*AnthropicProvider)

// WithAnthropicMaxTokens overrides the reply token limit.
func WithAnthropicMaxTokens(n int64) AnthropicOption {
	return func(p *AnthropicProvider) {
		if n > 0 {
			p.maxTokens = n
		}
	}
}

// NewAnthropicProvider creates a provider backed by the given client.
func NewAnthropicProvider(client anthropic.Client, model string, opts ...AnthropicOption) *AnthropicProvider {
	p := &AnthropicProvider{
		client:    client,
		model:     model,
		maxTokens: 2048,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name implements Provider.
func (p *AnthropicProvider) Name() string { return "anthropic" }

// Available implements Provider.
func (p *AnthropicProvider) Available() bool { return p.client != nil && p.model != "" }

// ResolveBatch implements Provider with a single model call.
func (p *AnthropicProvider) ResolveBatch(ctx context.Context, coords []Coord) ([]string, error) {
	var sb strings.Builder
	for i, c := range coords {
		fmt.Fprintf(&sb, "%d. %.6f, %.6f\n", i+1, c.Lat, c.Lng)
	}

	resp, err := p.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     p.model,
		MaxTokens: p.maxTokens,
		System:    anthropicSystem,
		Messages:  []anthropic.Message{{Role: "user", Content: sb.String()}},
	})
	if err != nil {
		return nil, eris.Wrap(err, "revgeo: anthropic resolve")
	}

	zap.L().Debug("revgeo: anthropic usage",
		zap.String("model", p.model),
		zap.Int64("input_tokens", resp.Usage.InputTokens),
		zap.Int64("output_tokens", resp.Usage.OutputTokens),
	)

	provinces, err := parseProvinceArray(resp.Text())
	if err != nil {
		return nil, err
	}
	if len(provinces) != len(coords) {
		return nil, eris.Errorf("revgeo: anthropic returned %d provinces for %d coordinates",
			len(provinces), len(coords))
	}
	return provinces, nil
}

// parseProvinceArray extracts the first JSON string array from model output,
// tolerating stray text or code fences around it.
func parseProvinceArray(text string) ([]string, error) {
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start < 0 || end <= start {
		return nil, eris.New("revgeo: no JSON array in model output")
	}

	var out []string
	if err := json.Unmarshal([]byte(text[start:end+1]), &out); err != nil {
		return nil, eris.Wrap(err, "revgeo: parse model output")
	}
	return out, nil
}
