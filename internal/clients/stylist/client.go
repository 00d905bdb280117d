package stylist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aurawear/aurawear-backend/internal/platform/envutil"
	"github.com/aurawear/aurawear-backend/internal/platform/logger"
)

// Client talks to the external stylist AI service. It performs no retries;
// a single failure is surfaced to the caller, which rolls back and leaves
// resubmission to the end user.
type Client interface {
	AnalyzeColor(ctx context.Context, req AnalyzeColorRequest) (*AnalyzeColorResponse, error)
	Recommend(ctx context.Context, req RecommendRequest) (*RecommendResponse, error)
	Regenerate(ctx context.Context, req RegenerateRequest) (*RecommendResponse, error)
}

// StatusError is a non-2xx answer from the stylist service. The status code
// is passed through to the API client unchanged.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("stylist service returned %d: %s", e.Code, e.Body)
}

func (e *StatusError) HTTPStatusCode() int { return e.Code }

type Config struct {
	BaseURL string
	// Analysis is quick classification; recommendation runs retrieval and
	// may take considerably longer, so each gets its own bound.
	AnalyzeTimeout   time.Duration
	RecommendTimeout time.Duration
}

func ConfigFromEnv() Config {
	return Config{
		BaseURL:          strings.TrimRight(envutil.String("STYLIST_BASE_URL", "http://localhost:8001"), "/"),
		AnalyzeTimeout:   time.Duration(envutil.Int("STYLIST_ANALYZE_TIMEOUT_SECONDS", 30)) * time.Second,
		RecommendTimeout: time.Duration(envutil.Int("STYLIST_RECOMMEND_TIMEOUT_SECONDS", 60)) * time.Second,
	}
}

type client struct {
	log     *logger.Logger
	baseURL string

	analyzeHTTP   *http.Client
	recommendHTTP *http.Client
}

func NewClient(baseLog *logger.Logger, cfg Config) Client {
	return &client{
		log:           baseLog.With("client", "StylistClient"),
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		analyzeHTTP:   &http.Client{Timeout: cfg.AnalyzeTimeout},
		recommendHTTP: &http.Client{Timeout: cfg.RecommendTimeout},
	}
}

func (c *client) AnalyzeColor(ctx context.Context, req AnalyzeColorRequest) (*AnalyzeColorResponse, error) {
	var out AnalyzeColorResponse
	if err := c.postJSON(ctx, c.analyzeHTTP, "/analyze-color", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *client) Recommend(ctx context.Context, req RecommendRequest) (*RecommendResponse, error) {
	var out RecommendResponse
	if err := c.postJSON(ctx, c.recommendHTTP, "/recommend", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *client) Regenerate(ctx context.Context, req RegenerateRequest) (*RecommendResponse, error) {
	var out RecommendResponse
	if err := c.postJSON(ctx, c.recommendHTTP, "/recommend", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *client) postJSON(ctx context.Context, httpClient *http.Client, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal stylist request: %w", err)
	}

	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build stylist request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		c.log.Warn("Stylist call failed", "path", path, "error", err, "duration_ms", time.Since(start).Milliseconds())
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("read stylist response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Warn("Stylist call returned non-success status",
			"path", path, "status", resp.StatusCode, "duration_ms", time.Since(start).Milliseconds())
		return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode stylist response: %w", err)
	}
	c.log.Debug("Stylist call succeeded", "path", path, "duration_ms", time.Since(start).Milliseconds())
	return nil
}
