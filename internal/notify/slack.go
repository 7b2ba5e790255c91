package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

type slackText struct {
	Type  string `json:"type"`
	Text  string `json:"text"`
	Emoji bool   `json:"emoji,omitempty"`
}

type slackBlock struct {
	Type string     `json:"type"`
	Text *slackText `json:"text,omitempty"`
}

type slackPayload struct {
	Blocks []slackBlock `json:"blocks"`
}

// Slack posts Block Kit messages to an incoming-webhook URL.
type Slack struct {
	webhookURL string
	client     *resty.Client
}

func NewSlack(webhookURL string) *Slack {
	return &Slack{
		webhookURL: webhookURL,
		client:     resty.New().SetTimeout(12 * time.Second),
	}
}

func (s *Slack) Top10(ctx context.Context, report Report) error {
	title := fmt.Sprintf("📊 올리브영 데일리 브랜드 랭킹 Top10 — %s (KST)", report.Date.Format("2006-01-02"))
	body := formatLines(report.Entries)
	if len(report.Commentary) > 0 {
		body += "\n\n" + formatBulletList(report.Commentary)
	}
	return s.post(ctx, slackPayload{
		Blocks: []slackBlock{
			{Type: "header", Text: &slackText{Type: "plain_text", Text: title, Emoji: true}},
			{Type: "section", Text: &slackText{Type: "mrkdwn", Text: body}},
		},
	})
}

func (s *Slack) Failure(ctx context.Context, when time.Time, detail string) error {
	text := fmt.Sprintf("❌ 브랜드 랭킹 수집 실패 — %s\n%s", when.Format("2006-01-02 15:04 MST"), detail)
	return s.post(ctx, slackPayload{
		Blocks: []slackBlock{
			{Type: "section", Text: &slackText{Type: "mrkdwn", Text: text}},
		},
	})
}

func (s *Slack) post(ctx context.Context, payload slackPayload) error {
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(s.webhookURL)
	if err != nil {
		return fmt.Errorf("slack webhook post failed: %w", err)
	}
	if !resp.IsSuccess() {
		return fmt.Errorf("slack webhook returned status %d", resp.StatusCode())
	}
	return nil
}
