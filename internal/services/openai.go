package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"speaker-event-finder/internal/config"
	"speaker-event-finder/internal/models"
)

// OpenAIClient turns scraped page content into structured event records
type OpenAIClient struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
	log         *zap.Logger
}

// NewOpenAIClient creates an OpenAI extraction client from the service config
func NewOpenAIClient(cfg *config.Config, log *zap.Logger) *OpenAIClient {
	return &OpenAIClient{
		client:      openai.NewClient(cfg.OpenAIAPIKey),
		model:       cfg.OpenAIModel,
		temperature: 0.1,
		maxTokens:   4000,
		log:         log,
	}
}

// ExtractEvents extracts structured events featuring the given speaker
// from page content. The content is assumed to be markdown from the
// scraper; sourceURL is attached to records that lack their own URL.
func (o *OpenAIClient) ExtractEvents(ctx context.Context, content, speaker, sourceURL string) ([]models.RawEvent, error) {
	if content == "" {
		return nil, fmt.Errorf("content cannot be empty")
	}

	resp, err := o.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model:       o.model,
			Temperature: o.temperature,
			MaxTokens:   o.maxTokens,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: extractionSystemPrompt,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: o.buildUserPrompt(content, speaker, sourceURL),
				},
			},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("openai request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response choices from OpenAI")
	}

	cleaned := cleanJSONResponse(resp.Choices[0].Message.Content)

	var payload struct {
		Events []models.RawEvent `json:"events"`
	}
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse OpenAI response JSON: %w", err)
	}

	for i := range payload.Events {
		if payload.Events[i].URL == "" {
			payload.Events[i].URL = sourceURL
		}
		if payload.Events[i].Speakers == nil {
			payload.Events[i].Speakers = []string{}
		}
		// A response omitting event_type entirely never passes through
		// EventType.UnmarshalJSON, so the zero value must be mapped here.
		if payload.Events[i].EventType == "" {
			payload.Events[i].EventType = models.EventTypeUnknown
		}
	}

	o.log.Debug("Extracted events from page",
		zap.String("url", sourceURL),
		zap.Int("events", len(payload.Events)),
		zap.Int("tokens_used", resp.Usage.TotalTokens))

	return payload.Events, nil
}

// extractionSystemPrompt fixes the output schema the model must follow.
// Field names and the event_type enum mirror the RawEvent model exactly.
const extractionSystemPrompt = `You are an expert at extracting structured data about public speaking events (talks, panels, conferences, webinars) from web content.

Extract every event mentioned in the provided content where the named speaker appears.

OUTPUT FORMAT:
Return a JSON object with this exact structure and nothing else:
{
  "events": [
    {
      "event_name": "Event Name",
      "date": "ISO 8601 date or date-time, e.g. 2026-03-14 or 2026-03-14T09:00:00Z",
      "location": {
        "name": "Venue Name",
        "address": "Street address",
        "city": "City",
        "country": "Country"
      },
      "url": "event page URL",
      "speakers": ["Speaker Name"],
      "event_type": "in_person|online|unknown"
    }
  ]
}

EXTRACTION RULES:
- Only include real events; never invent details not present in the content.
- Leave a field as an empty string if the content does not state it.
- Use "unknown" for event_type when the format is not stated.
- Dates must be ISO 8601; omit the time component if only a date is given.
- Return {"events": []} if the content contains no matching events.`

// buildUserPrompt creates the user prompt with the content and speaker
func (o *OpenAIClient) buildUserPrompt(content, speaker, sourceURL string) string {
	return fmt.Sprintf(`Please analyze the following web content from %s and extract all events featuring the speaker %q.

Source URL: %s

Content to analyze:
%s

CRITICAL: You MUST respond with valid JSON only, following the schema in the system prompt. If no events are found, respond with {"events": []}.`, sourceURL, speaker, sourceURL, content)
}

// cleanJSONResponse removes markdown code fences the model sometimes
// wraps around its JSON output.
func cleanJSONResponse(response string) string {
	cleaned := strings.TrimSpace(response)

	if strings.HasPrefix(cleaned, "```json") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
	}
	if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```")
	}
	if strings.HasSuffix(cleaned, "```") {
		cleaned = strings.TrimSuffix(cleaned, "```")
	}

	return strings.TrimSpace(cleaned)
}
