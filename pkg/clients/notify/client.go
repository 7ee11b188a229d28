// Package notify delivers health-alert summaries to an external webhook.
package notify

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/herdtrack/herdtrack/internal/config"
)

// Client exposes the alert delivery operation used by the scheduler.
type Client interface {
	SendAlertSummary(ctx context.Context, req AlertSummaryRequest) error
}

// WebhookClient is a resty-backed implementation of Client.
type WebhookClient struct {
	httpClient *resty.Client
	webhookURL string
}

// NewClient builds a webhook client using the provided configuration values.
func NewClient(cfg config.NotifyConfig) *WebhookClient {
	restyClient := resty.New()
	restyClient.
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)

	return &WebhookClient{
		httpClient: restyClient,
		webhookURL: cfg.WebhookURL,
	}
}

// CowAlert is one cow's active alerts.
type CowAlert struct {
	CowID  string   `json:"cowId"`
	Name   string   `json:"name"`
	Alerts []string `json:"alerts"`
}

// AlertSummaryRequest is the webhook payload for one snapshot run.
type AlertSummaryRequest struct {
	FarmName     string     `json:"farmName"`
	Date         string     `json:"date"`
	HealthAlerts int        `json:"healthAlerts"`
	Cows         []CowAlert `json:"cows"`
}

// SendAlertSummary posts the summary to the configured webhook.
func (c *WebhookClient) SendAlertSummary(ctx context.Context, req AlertSummaryRequest) error {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(req).
		Post(c.webhookURL)
	if err != nil {
		return fmt.Errorf("send alert summary: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		return fmt.Errorf("alert webhook error: status=%d, body=%s", resp.StatusCode(), resp.String())
	}
	return nil
}
