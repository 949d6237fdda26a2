package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/ZaguanLabs/chattr"
	"github.com/sashabaranov/go-openai"
)

// OpenAIProvider implements Provider using OpenAI's chat completion API.
type OpenAIProvider struct {
	client      *openai.Client
	model       string
	temperature float32
}

// OpenAIConfig holds configuration for the OpenAI provider.
type OpenAIConfig struct {
	APIKey      string  // OpenAI API key
	Model       string  // Model to use (default: "gpt-4o-mini")
	Temperature float32 // Temperature for generation (default: 0.3)
	BaseURL     string  // Custom base URL (optional)
}

// NewOpenAIProvider creates a new OpenAI provider.
func NewOpenAIProvider(cfg OpenAIConfig) *OpenAIProvider {
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}

	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.3
	}

	return &OpenAIProvider{
		client:      openai.NewClientWithConfig(config),
		model:       model,
		temperature: temperature,
	}
}

// Translate translates a batch of locale strings.
func (p *OpenAIProvider) Translate(ctx context.Context, req Request) ([]string, error) {
	if len(req.Texts) == 0 {
		return []string{}, nil
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: p.buildSystemPrompt(req)},
			{Role: openai.ChatMessageRoleUser, Content: p.buildUserMessage(req)},
		},
		Temperature: p.temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, &ProviderError{
			Message:   "OpenAI API call failed",
			Cause:     err,
			Retryable: isRetryableError(err),
		}
	}

	if len(resp.Choices) == 0 {
		return nil, &ProviderError{
			Message:   "no response from OpenAI",
			Retryable: true,
		}
	}

	return p.parseResponse(resp.Choices[0].Message.Content, len(req.Texts))
}

func (p *OpenAIProvider) buildSystemPrompt(req Request) string {
	sourceLang := req.SourceLang
	if sourceLang == "" {
		sourceLang = "en_us"
	}

	sourceName := chattr.LanguageName(sourceLang)
	targetName := chattr.LanguageName(req.TargetLang)

	contextText := "The strings are user interface and chat messages of a multiplayer game."
	if req.Context != "" {
		contextText = fmt.Sprintf("The strings are for: %s. Adapt the tone to be appropriate for this context.", req.Context)
	}

	prompt := fmt.Sprintf(`# Role
You are an expert game localizer. You translate %s game text to %s with the fluency of a native speaker.

# Context
%s

# Task
Translate the provided strings into idiomatic %s.

# Rules
- **Placeholders**: Keep every %%s and %%1$s style placeholder exactly as written. You may reorder positional placeholders (%%1$s, %%2$s) to fit the grammar, but never add, drop or renumber them. Keep the number of %%s placeholders unchanged.
- **Length**: Keep strings short. They are shown on buttons, tooltips and chat lines.
- **Formatting**: Preserve leading/trailing whitespace, newlines and section sign color codes such as §a.
- **Keys**: If a translation key is given, use it only as a hint for meaning. Never output the key.`, sourceName, targetName, contextText, targetName)

	if len(req.Glossary) > 0 {
		terms := make([]string, 0, len(req.Glossary))
		for source := range req.Glossary {
			terms = append(terms, source)
		}
		sort.Strings(terms)

		prompt += "\n\n# Glossary\nWhen you encounter these terms, use these translations:"
		for _, source := range terms {
			prompt += fmt.Sprintf("\n- \"%s\" → %s", source, req.Glossary[source])
		}
	}

	prompt += `

# Format
Return a valid JSON object with a single key "translations" containing an array of strings in the exact same order as the input.
Example: { "translations": ["translated string 1", "translated string 2"] }
- Do NOT wrap in Markdown code blocks.`

	return prompt
}

func (p *OpenAIProvider) buildUserMessage(req Request) string {
	if len(req.Keys) != len(req.Texts) {
		data, _ := json.Marshal(req.Texts)
		return string(data)
	}

	type item struct {
		Key  string `json:"key"`
		Text string `json:"text"`
	}

	items := make([]item, len(req.Texts))
	for i, text := range req.Texts {
		items[i] = item{Key: req.Keys[i], Text: text}
	}

	data, _ := json.Marshal(map[string][]item{"items": items})
	return string(data)
}

func (p *OpenAIProvider) parseResponse(content string, expectedCount int) ([]string, error) {
	var objResult map[string]any
	if err := json.Unmarshal([]byte(content), &objResult); err == nil {
		if translations, ok := objResult["translations"]; ok {
			if arr, ok := translations.([]any); ok {
				return toStringSlice(arr, expectedCount)
			}
		}

		// Some models pick their own key.
		for _, v := range objResult {
			if arr, ok := v.([]any); ok {
				return toStringSlice(arr, expectedCount)
			}
		}
	}

	var arrResult []any
	if err := json.Unmarshal([]byte(content), &arrResult); err == nil {
		return toStringSlice(arrResult, expectedCount)
	}

	return nil, &ProviderError{
		Message:   "invalid response format from OpenAI",
		Retryable: false,
	}
}

func toStringSlice(arr []any, expectedCount int) ([]string, error) {
	result := make([]string, len(arr))
	for i, v := range arr {
		if s, ok := v.(string); ok {
			result[i] = s
		} else {
			result[i] = fmt.Sprintf("%v", v)
		}
	}

	if len(result) != expectedCount {
		return nil, &CountMismatchError{
			Expected: expectedCount,
			Got:      len(result),
		}
	}

	return result, nil
}

func isRetryableError(err error) bool {
	errStr := strings.ToLower(err.Error())
	retryablePatterns := []string{
		"rate limit",
		"timeout",
		"connection refused",
		"temporary",
		"503",
		"502",
		"429",
	}

	for _, pattern := range retryablePatterns {
		if strings.Contains(errStr, pattern) {
			return true
		}
	}
	return false
}

var _ Provider = (*OpenAIProvider)(nil)
