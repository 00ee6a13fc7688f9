package enrich

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/leadgen-cli/internal/model"
	"github.com/sells-group/leadgen-cli/pkg/anthropic"
	"github.com/sells-group/leadgen-cli/pkg/perplexity"
)

// Provider researches one company and returns structured enrichment data.
// The implementation is picked once at config time.
type Provider interface {
	Research(ctx context.Context, name, domain string) (*model.CompanyEnrichment, error)
}

const enrichmentSystemPrompt = `You are a precise business analyst researching German companies. Output only valid JSON when asked.`

const enrichmentPromptTemplate = `Research the company below and return ONLY a JSON object with exactly these keys:
- "Company": official company name (string)
- "Legal_Form": German legal form such as GmbH, AG, SE, UG, KG, OHG, e.K., GmbH & Co. KG (string or null)
- "Industries": industries the company operates in (array of strings)
- "Locations_Germany": German cities with offices or plants (array of strings)
- "Multinational": whether it operates outside Germany (boolean)
- "Website": official website URL (string or null)
- "Size_Employees": approximate employee count as an integer (number or null)
- "Business_Model_Key_Points": how the company makes money, short points (array of strings)
- "Products_and_Services": main products and services (array of strings)
- "Recent_News": notable news from the last year, short points (array of strings)

Use null for unknown scalar values and [] for unknown lists. Keep German names
and umlauts exactly as written. Do not invent facts.

Target company: %NAME%. Domain: %DOMAIN%`

func renderEnrichmentPrompt(name, domain string) string {
	if domain == "" {
		domain = "unknown"
	}
	return strings.NewReplacer("%NAME%", name, "%DOMAIN%", domain).
		Replace(enrichmentPromptTemplate)
}

// AnthropicProvider implements Provider on the Anthropic messages API.
type AnthropicProvider struct {
	client anthropic.Client
	model  string
}

// NewAnthropicProvider builds a provider bound to one model.
func NewAnthropicProvider(client anthropic.Client, model string) *AnthropicProvider {
	return &AnthropicProvider{client: client, model: model}
}

// Research asks the model for the enrichment JSON contract.
func (p *AnthropicProvider) Research(ctx context.Context, name, domain string) (*model.CompanyEnrichment, error) {
	temp := 0.0
	resp, err := p.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:       p.model,
		MaxTokens:   1024,
		Temperature: &temp,
		System: []anthropic.SystemBlock{{
			Text:         enrichmentSystemPrompt,
			CacheControl: &anthropic.CacheControl{TTL: "5m"},
		}},
		Messages: []anthropic.Message{
			{Role: "user", Content: renderEnrichmentPrompt(name, domain)},
		},
	})
	if err != nil {
		return nil, eris.Wrapf(err, "enrich: anthropic research %s", name)
	}
	resp.Usage.LogCost(p.model, "company_enrichment")

	var parts []string
	for _, block := range resp.Content {
		if block.Text != "" {
			parts = append(parts, block.Text)
		}
	}
	return parseEnrichment(strings.Join(parts, "\n"))
}

// PerplexityProvider implements Provider on the Perplexity chat API, which
// grounds answers in live web search.
type PerplexityProvider struct {
	client perplexity.Client
}

// NewPerplexityProvider wraps a configured Perplexity client.
func NewPerplexityProvider(client perplexity.Client) *PerplexityProvider {
	return &PerplexityProvider{client: client}
}

// Research asks the search-grounded model for the enrichment JSON contract.
func (p *PerplexityProvider) Research(ctx context.Context, name, domain string) (*model.CompanyEnrichment, error) {
	temp := 0.0
	maxTokens := 1024
	resp, err := p.client.ChatCompletion(ctx, perplexity.ChatCompletionRequest{
		Temperature:         &temp,
		MaxTokens:           &maxTokens,
		SearchRecencyFilter: "month",
		Messages: []perplexity.Message{
			{Role: "system", Content: enrichmentSystemPrompt},
			{Role: "user", Content: renderEnrichmentPrompt(name, domain)},
		},
	})
	if err != nil {
		return nil, eris.Wrapf(err, "enrich: perplexity research %s", name)
	}
	if len(resp.Choices) == 0 {
		return nil, eris.Errorf("enrich: perplexity research %s: empty response", name)
	}
	return parseEnrichment(resp.Choices[0].Message.Content)
}

// parseEnrichment pulls the JSON object out of a model answer that may wrap
// it in code fences or prose.
func parseEnrichment(text string) (*model.CompanyEnrichment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, eris.New("enrich: empty model answer")
	}

	var payload model.CompanyEnrichment
	if err := json.Unmarshal([]byte(text), &payload); err == nil {
		return &payload, nil
	}

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &payload); err == nil {
			return &payload, nil
		}
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		if err := json.Unmarshal([]byte(text[start:end+1]), &payload); err == nil {
			return &payload, nil
		}
	}
	return nil, eris.New("enrich: no JSON object in model answer")
}
