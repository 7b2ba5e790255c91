/*
Package ai generates a short Gemini commentary on notable day-over-day rank
movements, appended to the daily notification. Commentary is a supplement:
callers treat any error here as skippable.
*/
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"brandrank/internal/notify"
)

type rankingCommentary struct {
	Highlights []string `json:"highlights"`
}

// Commentary asks Gemini for highlight bullets about today's Top-10 and its
// movements.
func Commentary(ctx context.Context, entries []notify.Entry, apiKey string, modelName string) ([]string, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	var sb strings.Builder
	for _, e := range entries {
		sb.WriteString(fmt.Sprintf("%d. %s %s\n", e.Rank, e.Delta, e.Name))
	}
	prompt := fmt.Sprintf("Today's Top-10 brand ranking with day-over-day movement:\n\n%s", sb.String())

	systemContent := &genai.Content{
		Parts: []*genai.Part{
			{Text: commentaryInstruction},
		},
		Role: "system",
	}
	userContent := &genai.Content{
		Parts: []*genai.Part{
			{Text: prompt},
		},
		Role: "user",
	}

	resp, err := client.Models.GenerateContent(ctx, modelName, []*genai.Content{systemContent, userContent}, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   getResponseSchema(),
	})
	if err != nil {
		return nil, fmt.Errorf("gemini API call failed: %w", err)
	}

	respText := resp.Text()

	var out rankingCommentary
	if err := json.Unmarshal([]byte(respText), &out); err != nil {
		return nil, fmt.Errorf("failed to unmarshal gemini JSON response: %w. Raw text: %s", err, respText)
	}

	return out.Highlights, nil
}

func getResponseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"highlights": {
				Type:        genai.TypeArray,
				Items:       &genai.Schema{Type: genai.TypeString},
				Description: "2-4 concise observations about notable rank movements, written in Korean.",
			},
		},
		Required: []string{"highlights"},
	}
}
