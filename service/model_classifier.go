package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/ludo-technologies/cobscan/domain"
	"github.com/ludo-technologies/cobscan/internal/config"
)

const (
	// maxPromptSourceChars bounds the source excerpt sent to the model
	maxPromptSourceChars = 8000

	// maxExplanationChars bounds the explanation taken from the reply
	maxExplanationChars = 500

	// confidenceScanWindow is how far past "confidence" digits are searched
	confidenceScanWindow = 30

	// defaultModelConfidence applies when the reply carries no usable figure
	defaultModelConfidence = 75.0
)

const promptTemplate = `You are a COBOL code analysis expert. Analyze the following code and provide:
1. A brief explanation of what this code does (max 3 sentences).
2. Classify the complexity as Simple, Moderate, or Complex.
3. Provide a confidence score for your classification (0-100).
4. List key factors that influenced your classification.

Code to analyze:
` + "```\n%s\n```" + `

Format your response in plain text with clear sections.`

// GeminiClassifier implements the Classifier interface against the Google
// AI Studio API. Every failure degrades to the fallback classifier; the
// caller never sees a model error.
type GeminiClassifier struct {
	modelName string
	baseURL   string
	apiKey    string
	timeout   time.Duration
	client    *http.Client
	sem       *semaphore.Weighted
	fallback  domain.Classifier
	logger    *slog.Logger
}

// NewGeminiClassifier creates a Gemini-backed classifier with the given
// fallback. An empty API key is allowed; it routes every call to the
// fallback.
func NewGeminiClassifier(cfg config.ModelConfig, fallback domain.Classifier, logger *slog.Logger) *GeminiClassifier {
	if logger == nil {
		logger = slog.Default()
	}
	maxConcurrent := cfg.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = config.DefaultModelMaxConcurrent
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = config.DefaultModelTimeoutSeconds * time.Second
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = config.DefaultModelBaseURL
	}

	return &GeminiClassifier{
		modelName: cfg.Name,
		baseURL:   baseURL,
		apiKey:    cfg.APIKey,
		timeout:   timeout,
		client:    &http.Client{},
		sem:       semaphore.NewWeighted(maxConcurrent),
		fallback:  fallback,
		logger:    logger,
	}
}

// Classify attempts one model round-trip and parses the free-text reply.
// The call runs as a bounded background task so a slow model never holds up
// other requests; on any failure the heuristic result is returned instead.
func (c *GeminiClassifier) Classify(ctx context.Context, source string, metrics domain.Metrics) (*domain.ClassificationResult, error) {
	if c.apiKey == "" {
		return c.fallback.Classify(ctx, source, metrics)
	}

	type outcome struct {
		reply string
		err   error
	}
	ch := make(chan outcome, 1)

	go func() {
		if err := c.sem.Acquire(ctx, 1); err != nil {
			ch <- outcome{err: fmt.Errorf("waiting for model slot: %w", err)}
			return
		}
		defer c.sem.Release(1)

		reply, err := c.generate(ctx, buildPrompt(source))
		ch <- outcome{reply: reply, err: err}
	}()

	out := <-ch
	if out.err != nil {
		// No retry: one failed attempt is terminal for this request.
		c.logger.Warn("model call failed, using heuristic fallback", "error", out.err)
		return c.fallback.Classify(ctx, source, metrics)
	}

	return parseModelReply(out.reply), nil
}

// generate performs one non-streaming generateContent call.
func (c *GeminiClassifier) generate(ctx context.Context, prompt string) (string, error) {
	body := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: prompt}}},
		},
	}
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.modelName, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("API error: status %d: %s", resp.StatusCode, string(respBody))
	}

	var parsed geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}

	var text strings.Builder
	for _, candidate := range parsed.Candidates {
		for _, part := range candidate.Content.Parts {
			text.WriteString(part.Text)
		}
	}
	if text.Len() == 0 {
		return "", fmt.Errorf("empty model reply")
	}

	return text.String(), nil
}

func buildPrompt(source string) string {
	if runes := []rune(source); len(runes) > maxPromptSourceChars {
		source = string(runes[:maxPromptSourceChars])
	}
	return fmt.Sprintf(promptTemplate, source)
}

// parseModelReply extracts a classification result from free-form reply
// text. The rules are deliberately crude substring heuristics; parse
// ambiguity never fails the request.
func parseModelReply(reply string) *domain.ClassificationResult {
	explanation := reply
	if runes := []rune(explanation); len(runes) > maxExplanationChars {
		explanation = string(runes[:maxExplanationChars])
	}

	lower := strings.ToLower(reply)

	// "simple" wins over "complex" when both appear; this priority is
	// part of the contract.
	classification := domain.ClassificationModerate
	if strings.Contains(lower, "simple") {
		classification = domain.ClassificationSimple
	} else if strings.Contains(lower, "complex") {
		classification = domain.ClassificationComplex
	}

	return &domain.ClassificationResult{
		Classification:  classification,
		ConfidenceScore: parseConfidence(lower),
		Explanation:     explanation,
	}
}

// parseConfidence finds the first digit run shortly after the first
// occurrence of "confidence", clamped to [0, 100]. Missing marker or
// digits yield the fixed default. The scan stays entirely within the
// lowercased text: case folding can change byte offsets for non-ASCII
// runes, so indexes into it must not be reused against the original.
func parseConfidence(lower string) float64 {
	idx := strings.Index(lower, "confidence")
	if idx < 0 {
		return defaultModelConfidence
	}

	end := idx + confidenceScanWindow
	if end > len(lower) {
		end = len(lower)
	}
	window := lower[idx:end]

	start := -1
	for i := 0; i < len(window); i++ {
		if window[i] >= '0' && window[i] <= '9' {
			start = i
			break
		}
	}
	if start < 0 {
		return defaultModelConfidence
	}

	stop := start
	for stop < len(window) && window[stop] >= '0' && window[stop] <= '9' {
		stop++
	}

	value, err := strconv.ParseFloat(window[start:stop], 64)
	if err != nil {
		return defaultModelConfidence
	}
	return clampConfidence(value)
}

// Request/response shapes for the generateContent endpoint.

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}
