package extract

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/leadgen-cli/pkg/anthropic"
)

// LLMFields are the profile fields a model can pull out of messy snippet
// text when the regex heuristics come up empty.
type LLMFields struct {
	CurrentPosition string `json:"current_position"`
	Company         string `json:"company"`
	Location        string `json:"location"`
	FollowerCount   string `json:"follower_count"`
	ConnectionCount string `json:"connection_count"`
}

// FieldExtractor extracts structured profile fields from free text.
type FieldExtractor interface {
	ProfileFields(ctx context.Context, name, title, summary string) (LLMFields, error)
}

const extractionSystemPrompt = `You are a professional data extraction assistant. Extract structured information from LinkedIn profiles and return only valid JSON.`

const extractionPromptTemplate = `Extract structured information from this LinkedIn profile and return ONLY a valid JSON object:

Name: %NAME%
Title: %TITLE%
Summary: %SUMMARY%

Extract the following fields (return null for any field you cannot determine confidently):

1. current_position: Person's current job title/role
2. company: Current company name
3. location: Geographic location (city, country)
4. follower_count: LinkedIn follower count (if mentioned)
5. connection_count: LinkedIn connection count (if mentioned)

Return format (JSON only, no other text):
{
    "current_position": "...",
    "company": "...",
    "location": "...",
    "follower_count": "...",
    "connection_count": "..."
}

Company extraction rules:
- Text after "Experience:" or "Berufserfahrung:" is the current employer. Always extract it.
- "[Title] at [COMPANY]", "[Title] bei [COMPANY]", "[Title] of [COMPANY]", "[Title] von [COMPANY]", "[Title] @ [COMPANY]", and "[Title] | [COMPANY]" all name the current company.
- Company suffixes like GmbH, AG, Inc, LLC, Ltd, Corp, Group, SE confirm a company name.
- Skip employers marked as past ("former", "previously", "ex-"), educational institutions, and bare geographic locations.

Other rules:
- For follower_count look for patterns like "1K followers", "4540 Follower", "2.5K followers".
- For connection_count look for patterns like "500+ connections", "1K+ Kontakte", "5000 connections".
- Prefer the current location over past locations.
- Keep numbers exactly as shown (e.g. "1K", "500+", "2.5K").
- Return only the JSON object, no explanations.`

// AnthropicFieldExtractor implements FieldExtractor on the Anthropic
// messages API.
type AnthropicFieldExtractor struct {
	client anthropic.Client
	model  string
}

// NewAnthropicFieldExtractor builds a field extractor bound to one model.
func NewAnthropicFieldExtractor(client anthropic.Client, model string) *AnthropicFieldExtractor {
	return &AnthropicFieldExtractor{client: client, model: model}
}

func (a *AnthropicFieldExtractor) ProfileFields(ctx context.Context, name, title, summary string) (LLMFields, error) {
	prompt := strings.NewReplacer(
		"%NAME%", name,
		"%TITLE%", title,
		"%SUMMARY%", summary,
	).Replace(extractionPromptTemplate)

	temp := 0.0
	resp, err := a.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     a.model,
		MaxTokens: 500,
		System: []anthropic.SystemBlock{
			{Text: extractionSystemPrompt, CacheControl: &anthropic.CacheControl{TTL: "5m"}},
		},
		Messages:    []anthropic.Message{{Role: "user", Content: prompt}},
		Temperature: &temp,
	})
	if err != nil {
		return LLMFields{}, eris.Wrap(err, "extract: profile fields")
	}
	resp.Usage.LogCost(a.model, "profile_extraction")

	var fields LLMFields
	if err := json.Unmarshal([]byte(cleanJSON(extractText(resp))), &fields); err != nil {
		return LLMFields{}, eris.Wrap(err, "extract: parse profile fields")
	}
	return sanitizeLLMFields(fields), nil
}

// sanitizeLLMFields drops null-ish and implausible values so a chatty model
// cannot smuggle prose into a field.
func sanitizeLLMFields(f LLMFields) LLMFields {
	clean := func(s string) string {
		s = strings.TrimSpace(s)
		switch strings.ToLower(s) {
		case "null", "none", "n/a", "":
			return ""
		}
		if len(s) < 2 || len(s) >= 200 {
			return ""
		}
		return s
	}
	return LLMFields{
		CurrentPosition: clean(f.CurrentPosition),
		Company:         clean(f.Company),
		Location:        clean(f.Location),
		FollowerCount:   clean(f.FollowerCount),
		ConnectionCount: clean(f.ConnectionCount),
	}
}

func extractText(resp *anthropic.MessageResponse) string {
	if resp == nil {
		return ""
	}
	var parts []string
	for _, block := range resp.Content {
		if block.Text != "" {
			parts = append(parts, block.Text)
		}
	}
	return strings.Join(parts, "\n")
}

// cleanJSON attempts to extract a JSON object from text that may contain
// markdown code fences or other wrapping.
func cleanJSON(text string) string {
	text = strings.TrimSpace(text)

	// Strip markdown code fences.
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	}

	// Find first { and last }.
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		text = text[start : end+1]
	}

	return strings.TrimSpace(text)
}
