package analysis

import (
	"context"
	"fmt"

	anthropic "github.com/liushuangls/go-anthropic/v2"
)

// ClaudeSummarizer implements Summarizer against the Anthropic Messages API.
type ClaudeSummarizer struct {
	client *anthropic.Client
	model  string
}

// NewClaudeSummarizer creates a summarizer for the given API key and model,
// e.g. "claude-3-5-sonnet-latest".
func NewClaudeSummarizer(apiKey, model string, opts ...anthropic.ClientOption) *ClaudeSummarizer {
	return &ClaudeSummarizer{
		client: anthropic.NewClient(apiKey, opts...),
		model:  model,
	}
}

func (s *ClaudeSummarizer) Summarize(ctx context.Context, reportText string) (string, error) {
	resp, err := s.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:  anthropic.Model(s.model),
		System: systemPrompt,
		// A full multi-section analysis with estimates runs well past 1k
		// tokens; 4096 leaves headroom for the closing urgency summary.
		MaxTokens: 4096,
		Messages: []anthropic.Message{
			anthropic.NewUserTextMessage(userPrompt(reportText)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to call claude: %w", err)
	}

	text := resp.GetFirstContentText()
	if text == "" {
		return "", fmt.Errorf("claude returned no text content")
	}
	return text, nil
}
