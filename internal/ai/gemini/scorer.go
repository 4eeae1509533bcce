package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

const (
	// Rate-limit responses are retried up to maxRetries additional times
	// (4 attempts total), doubling the wait before each retry.
	maxRetries        = 3
	initialRetryDelay = 2 * time.Second
)

// Analysis is the parsed verdict of one scoring call.
type Analysis struct {
	MatchPercentage int
	Explanation     string
}

// ContentGenerator is the slice of the Gemini client the scorer needs.
// Tests substitute a stub.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Scorer turns a scoring prompt into an Analysis. It retries rate-limited
// calls with exponential backoff and gives up immediately on any other
// failure; the caller decides what to do when no result comes back.
type Scorer struct {
	generator ContentGenerator
	logger    *zap.Logger
	sleep     func(time.Duration)
}

func NewScorer(generator ContentGenerator, logger *zap.Logger) *Scorer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scorer{generator: generator, logger: logger, sleep: time.Sleep}
}

// Score sends the prompt and parses the reply. A nil error means the
// returned Analysis is usable; any error means the scorer produced no
// result and was abandoned (rate-limit retries exhausted or a permanent
// failure).
func (s *Scorer) Score(ctx context.Context, prompt, resumeID string) (Analysis, error) {
	retryDelay := initialRetryDelay

	for attempt := 1; attempt <= maxRetries+1; attempt++ {
		s.logger.Debug("gemini scoring attempt",
			zap.String("resume_id", resumeID),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", maxRetries+1),
		)

		raw, err := s.generator.GenerateContent(ctx, prompt)
		if err == nil {
			return parseAnalysis(raw), nil
		}

		if !isRateLimited(err) {
			s.logger.Warn("gemini scoring failed",
				zap.String("resume_id", resumeID),
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
			return Analysis{}, err
		}

		if attempt == maxRetries+1 {
			break
		}

		s.logger.Info("gemini rate limit hit, retrying",
			zap.String("resume_id", resumeID),
			zap.Duration("retry_in", retryDelay),
		)
		s.sleep(retryDelay)
		retryDelay *= 2
	}

	err := fmt.Errorf("rate limit exceeded after %d attempts", maxRetries+1)
	s.logger.Warn("gemini scoring abandoned",
		zap.String("resume_id", resumeID),
		zap.Error(err),
	)
	return Analysis{}, err
}

// isRateLimited reports whether the failure is worth retrying. Only 429s
// and replies that explicitly say so qualify; everything else is permanent.
func isRateLimited(err error) bool {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) && apiErr.Code == 429 {
		return true
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "resource_exhausted") ||
		strings.Contains(msg, "429")
}

// parseAnalysis digs a JSON object out of the free-form model reply. The
// model is asked for pure JSON but is not contract-bound to comply, so the
// first brace-delimited substring is the parse target. Unparseable replies
// degrade to a zero score rather than an error.
func parseAnalysis(raw string) Analysis {
	parsed := struct {
		MatchPercentage float64 `json:"matchPercentage"`
		Explanation     string  `json:"explanation"`
	}{}

	obj, ok := extractJSONObject(raw)
	if !ok || json.Unmarshal([]byte(obj), &parsed) != nil {
		return Analysis{MatchPercentage: 0, Explanation: "Failed to parse response"}
	}

	explanation := strings.TrimSpace(parsed.Explanation)
	if explanation == "" {
		explanation = "No explanation provided"
	}

	percentage := int(parsed.MatchPercentage)
	if percentage < 0 {
		percentage = 0
	}
	if percentage > 100 {
		percentage = 100
	}

	return Analysis{MatchPercentage: percentage, Explanation: explanation}
}

// extractJSONObject returns the substring spanning the first opening brace
// through the last closing brace.
func extractJSONObject(raw string) (string, bool) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return "", false
	}
	return raw[start : end+1], true
}
