package acquire

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"brandrank/internal/diag"
)

// RenderConfig configures the hosted rendering API client.
type RenderConfig struct {
	Endpoint    string
	Username    string
	Password    string
	GeoLocation string
	Timeout     time.Duration
}

// renderRequest asks the realtime API for JS-rendered HTML as a mobile user
// agent pinned to a fixed geography.
type renderRequest struct {
	Source        string `json:"source"`
	URL           string `json:"url"`
	Render        string `json:"render"`
	GeoLocation   string `json:"geo_location"`
	UserAgentType string `json:"user_agent_type"`
}

type renderResponse struct {
	Results []struct {
		Content string `json:"content"`
	} `json:"results"`
}

// RenderClient fetches rendered markup from a realtime scraping API over
// basic auth.
type RenderClient struct {
	cfg    RenderConfig
	client *resty.Client
	diags  *diag.Store
}

func NewRenderClient(cfg RenderConfig, diags *diag.Store) *RenderClient {
	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetRetryCount(3).
		SetRetryWaitTime(2 * time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil || r == nil {
				return false
			}
			return r.StatusCode() == http.StatusTooManyRequests || r.StatusCode() >= 500
		})
	return &RenderClient{cfg: cfg, client: client, diags: diags}
}

// Render requests fully rendered markup for url. Transport errors,
// non-success statuses and a missing content field all count as failures.
func (c *RenderClient) Render(ctx context.Context, url string) (string, error) {
	var out renderResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetBasicAuth(c.cfg.Username, c.cfg.Password).
		SetHeader("Content-Type", "application/json").
		SetBody(renderRequest{
			Source:        "universal",
			URL:           url,
			Render:        "html",
			GeoLocation:   c.cfg.GeoLocation,
			UserAgentType: "mobile",
		}).
		SetResult(&out).
		Post(c.cfg.Endpoint)
	if err != nil {
		return "", fmt.Errorf("render request failed: %w", err)
	}

	c.diags.SaveBytes(diag.RenderResponseFile, resp.Body())

	if !resp.IsSuccess() {
		return "", fmt.Errorf("render API returned status %d", resp.StatusCode())
	}
	if len(out.Results) == 0 || out.Results[0].Content == "" {
		return "", fmt.Errorf("render API response has no content")
	}
	return out.Results[0].Content, nil
}
