package fallback

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"golang.org/x/time/rate"

	"realty_extractor/internal/domain/entity"
	"realty_extractor/internal/domain/value"
	"realty_extractor/pkg/httpx"
	"realty_extractor/pkg/logx"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals

const (
	categoryPath = "/v1/classify/category"
	dealPath     = "/v1/classify/deal"
	layoutPath   = "/v1/entities/layout"

	logFieldMaxLen = 4096
)

type classifyRequest struct {
	Text string `json:"text"`
}

type classifyResponse struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

type layoutResponse struct {
	Rooms       *int `json:"rooms"`
	Floor       *int `json:"floor"`
	TotalFloors *int `json:"total_floors"`
}

// HTTPClient — клиент внешнего ML-сервиса классификации.
type HTTPClient struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

func NewHTTPClient(baseURL, token string, timeout time.Duration) *HTTPClient {
	var transport http.RoundTripper = httpx.NewLoggingRoundTripper(
		http.DefaultTransport,
		httpx.WithLogFieldMaxLen(logFieldMaxLen),
		httpx.WithSensitiveDataMasker(logx.NewSensitiveDataMasker()),
	)
	if token != "" {
		transport = httpx.NewAuthBearerRoundTripper(transport, staticToken(token))
	}

	return &HTTPClient{
		baseURL: baseURL,
		client: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
		limiter: rate.NewLimiter(rate.Inf, 0),
	}
}

// WithRateLimit ограничивает число запросов в секунду. rps <= 0 — без ограничений.
func (c *HTTPClient) WithRateLimit(rps float64, burst int) *HTTPClient {
	if rps > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(rps), max(burst, 1))
	}
	return c
}

func (c *HTTPClient) ClassifyCategory(ctx context.Context, text string) (value.PropertyType, float64, error) {
	var resp classifyResponse
	if err := c.post(ctx, categoryPath, classifyRequest{Text: text}, &resp); err != nil {
		return "", 0, fmt.Errorf("classify category: %w", err)
	}
	return value.PropertyType(resp.Label), resp.Confidence, nil
}

func (c *HTTPClient) ClassifyDeal(ctx context.Context, text string) (value.ListingType, float64, error) {
	var resp classifyResponse
	if err := c.post(ctx, dealPath, classifyRequest{Text: text}, &resp); err != nil {
		return "", 0, fmt.Errorf("classify deal: %w", err)
	}
	return value.ListingType(resp.Label), resp.Confidence, nil
}

func (c *HTTPClient) ProposeLayout(ctx context.Context, text string) (entity.LayoutHint, error) {
	var resp layoutResponse
	if err := c.post(ctx, layoutPath, classifyRequest{Text: text}, &resp); err != nil {
		return entity.LayoutHint{}, fmt.Errorf("propose layout: %w", err)
	}
	return entity.LayoutHint{
		Rooms:       resp.Rooms,
		Floor:       resp.Floor,
		TotalFloors: resp.TotalFloors,
	}, nil
}

func (c *HTTPClient) post(ctx context.Context, path string, body, dest any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("limiter.Wait: %w", err)
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("http.NewRequestWithContext: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("client.Do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if err = json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

// staticToken — токен из конфига, обновлять нечего.
type staticToken string

func (t staticToken) Authenticate(context.Context) error {
	return nil
}

func (t staticToken) BearerToken() string {
	return string(t)
}
