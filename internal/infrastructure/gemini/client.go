package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Client wraps a Gemini model used to suggest conversation openers for
// fresh matches. The client is optional; callers must tolerate a nil Client.
type Client struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewClient(apiKey string) (*Client, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := client.GenerativeModel("gemini-1.5-pro")
	model.SetTemperature(0.7)

	return &Client{
		client: client,
		model:  model,
	}, nil
}

func (c *Client) Close() {
	c.client.Close()
}

// GenerateOpeners suggests short opening messages two freshly matched
// travelers could send each other, based on their bios.
func (c *Client) GenerateOpeners(ctx context.Context, bio1, bio2 string) ([]string, error) {
	prompt := fmt.Sprintf(`
		Generate 3 short opening messages for two van-life travelers who just
		matched in a travel community app.
		Traveler 1 bio: %q
		Traveler 2 bio: %q

		Task: Create 3 distinct, friendly opening lines referencing travel,
		routes or shared interests. Keep each under 120 characters.
		Output: JSON array of strings. Example: ["Hey...", "Hi..."]
	`, bio1, bio2)

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, err
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("no content generated")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}

	responseText := strings.TrimSpace(sb.String())
	// The model sometimes wraps JSON in a markdown fence.
	responseText = strings.TrimPrefix(responseText, "```json")
	responseText = strings.TrimPrefix(responseText, "```")
	responseText = strings.TrimSuffix(responseText, "```")
	responseText = strings.TrimSpace(responseText)

	var openers []string
	if err := json.Unmarshal([]byte(responseText), &openers); err != nil {
		// Fall back to plain lines when the model ignored the JSON format.
		for _, line := range strings.Split(responseText, "\n") {
			line = strings.TrimSpace(line)
			if line != "" && !strings.HasPrefix(line, "[") && !strings.HasSuffix(line, "]") {
				openers = append(openers, line)
			}
		}
		if len(openers) == 0 {
			return nil, fmt.Errorf("failed to parse openers: %w", err)
		}
	}

	return openers, nil
}
