package azure

import (
	"context"
	"fmt"
	"log"

	openai "github.com/sashabaranov/go-openai"

	"sheetdoc/internal/config"
	"sheetdoc/internal/llm"
	"sheetdoc/internal/port"
)

// maxCompletionTokens bounds the structured-Markdown output per sheet.
const maxCompletionTokens = 32768

func init() {
	llm.RegisterProvider(config.ProviderAzure, func(cfg *config.LLMConfig) (port.Completer, error) {
		return NewClient(&cfg.Azure), nil
	})
}

// Client implements port.Completer using the Azure OpenAI chat completions
// API.
type Client struct {
	client     *openai.Client
	deployment string
}

// NewClient creates an Azure OpenAI completer from config.
func NewClient(cfg *config.AzureConfig) *Client {
	clientCfg := openai.DefaultAzureConfig(cfg.APIKey, cfg.Endpoint)
	if cfg.APIVersion != "" {
		clientCfg.APIVersion = cfg.APIVersion
	}
	deployment := cfg.Deployment
	clientCfg.AzureModelMapperFunc = func(model string) string {
		return deployment
	}
	return &Client{
		client:     openai.NewClientWithConfig(clientCfg),
		deployment: deployment,
	}
}

// Complete sends a two-message chat request (system, user) to the configured
// deployment and returns the first choice's message content.
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.deployment,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		MaxCompletionTokens: maxCompletionTokens,
	})
	if err != nil {
		return "", fmt.Errorf("azure openai chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		raw := fmt.Sprintf("%+v", resp)
		log.Printf("azure openai returned no choices: %s", raw)
		return "", &llm.MalformedResponseError{Provider: "azure", Raw: raw}
	}

	return resp.Choices[0].Message.Content, nil
}
