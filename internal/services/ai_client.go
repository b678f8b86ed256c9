package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fvstudio/fvs-backend/internal/logger"
	"github.com/fvstudio/fvs-backend/internal/repos"
)

// IdeaContext is the aggregated signal bundle handed to the generator.
type IdeaContext struct {
	Format        string                 `json:"format"`
	Range         string                 `json:"range"`
	Analytics     repos.AnalyticsSummary `json:"analytics"`
	RecentTopics  []string               `json:"recent_topics"`
	SignalSamples []ExternalSignal       `json:"signal_samples"`
}

type ExternalSignal struct {
	Source string `json:"source"`
	Topic  string `json:"topic"`
	Trend  string `json:"trend"`
}

type IdeaCandidate struct {
	Topic           string  `json:"topic"`
	Hypothesis      string  `json:"hypothesis"`
	Source          string  `json:"source"`
	Format          string  `json:"format"`
	ConvictionScore float64 `json:"convictionScore"`
}

// IdeaGenerator is the AI collaborator behind idea proposal. The real
// provider may be unavailable; proposal never hard-fails on it.
type IdeaGenerator interface {
	GenerateIdeas(ctx context.Context, ideaCtx IdeaContext) ([]IdeaCandidate, error)
}

// SelectIdeaGenerator decides the provider once, based on configuration
// presence: a configured API key selects the OpenAI-backed generator,
// otherwise the deterministic stub.
func SelectIdeaGenerator(log *logger.Logger) IdeaGenerator {
	if strings.TrimSpace(os.Getenv("OPENAI_API_KEY")) == "" {
		log.Info("No OPENAI_API_KEY configured, using deterministic idea generator")
		return NewMockIdeaGenerator(0)
	}
	gen, err := NewOpenAIIdeaGenerator(log)
	if err != nil {
		log.Warn("OpenAI idea generator init failed, using deterministic generator", "error", err)
		return NewMockIdeaGenerator(0)
	}
	return gen
}

// =========================
// OpenAI-backed generator
// =========================

type openAIIdeaGenerator struct {
	log        *logger.Logger
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

func NewOpenAIIdeaGenerator(log *logger.Logger) (IdeaGenerator, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("missing OPENAI_API_KEY")
	}
	baseURL := os.Getenv("OPENAI_BASE_URL")
	if baseURL == "" {
		baseURL = "https://api.openai.com"
	}
	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = "gpt-4o-mini"
	}
	timeoutSec := 60
	if v := os.Getenv("OPENAI_TIMEOUT_SECONDS"); v != "" {
		if parsed, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && parsed > 0 {
			timeoutSec = parsed
		}
	}
	return &openAIIdeaGenerator{
		log:        log.With("service", "OpenAIIdeaGenerator"),
		baseURL:    baseURL,
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
	}, nil
}

func (g *openAIIdeaGenerator) GenerateIdeas(ctx context.Context, ideaCtx IdeaContext) ([]IdeaCandidate, error) {
	ctxJSON, err := json.Marshal(ideaCtx)
	if err != nil {
		return nil, err
	}
	payload := map[string]any{
		"model": g.model,
		"messages": []map[string]string{
			{"role": "system", "content": "You are a content strategist. Respond with a JSON object {\"ideas\": [{topic, hypothesis, source, format, convictionScore}]} of exactly 5 ideas."},
			{"role": "user", "content": string(ctxJSON)},
		},
		"response_format": map[string]string{"type": "json_object"},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: openai http %d", ErrProviderUnavailable, resp.StatusCode)
	}

	var completion struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &completion); err != nil {
		return nil, fmt.Errorf("decode completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("%w: empty completion", ErrProviderUnavailable)
	}

	var parsed struct {
		Ideas []IdeaCandidate `json:"ideas"`
	}
	if err := json.Unmarshal([]byte(completion.Choices[0].Message.Content), &parsed); err != nil {
		return nil, fmt.Errorf("decode ideas: %w", err)
	}
	return parsed.Ideas, nil
}

// =========================
// Deterministic generator
// =========================

// mockIdeaGenerator derives ideas from the context alone so proposal
// still works with zero analytics history and no provider.
type mockIdeaGenerator struct {
	rng *rand.Rand
}

// NewMockIdeaGenerator builds the stub; seed 0 means time-seeded.
func NewMockIdeaGenerator(seed int64) IdeaGenerator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &mockIdeaGenerator{rng: rand.New(rand.NewSource(seed))}
}

var mockAngles = []struct {
	angle      string
	hypothesis string
	conviction float64
}{
	{"beginner mistakes in", "Corrective content around common failure points retains new audiences", 0.82},
	{"the economics of", "Numbers-first breakdowns outperform opinion pieces in this niche", 0.74},
	{"a week of", "Diary-format episodes drive above-average completion rates", 0.66},
	{"what nobody tells you about", "Contrarian framings earn disproportionate click-through", 0.78},
	{"tools we actually use for", "Practical walkthroughs convert casual viewers into subscribers", 0.7},
}

func (g *mockIdeaGenerator) GenerateIdeas(ctx context.Context, ideaCtx IdeaContext) ([]IdeaCandidate, error) {
	seeds := make([]string, 0, len(ideaCtx.RecentTopics)+len(ideaCtx.SignalSamples))
	seeds = append(seeds, ideaCtx.RecentTopics...)
	for _, s := range ideaCtx.SignalSamples {
		seeds = append(seeds, s.Topic)
	}
	if len(seeds) == 0 {
		seeds = []string{"your niche", "audience growth", "content repurposing", "episode formats", "community building"}
	}

	format := ideaCtx.Format
	if format == "" {
		format = "video"
	}

	out := make([]IdeaCandidate, 0, len(mockAngles))
	for i, a := range mockAngles {
		seed := seeds[i%len(seeds)]
		out = append(out, IdeaCandidate{
			Topic:           fmt.Sprintf("%s %s", a.angle, seed),
			Hypothesis:      a.hypothesis,
			Source:          "fallback_generator",
			Format:          format,
			ConvictionScore: a.conviction + g.rng.Float64()*0.05,
		})
	}
	return out, nil
}
