package bedrock

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"

	"sheetdoc/internal/config"
	"sheetdoc/internal/llm"
	"sheetdoc/internal/port"
)

const (
	// maxOutputTokens bounds the structured-Markdown output per sheet.
	maxOutputTokens = 64000

	// Long read timeout: a single Converse call can run for many minutes
	// on large sheets.
	readTimeout    = 600 * time.Second
	connectTimeout = 60 * time.Second
)

func init() {
	llm.RegisterProvider(config.ProviderBedrock, func(cfg *config.LLMConfig) (port.Completer, error) {
		return NewClient(&cfg.Bedrock)
	})
}

// Client implements port.Completer using the AWS Bedrock Converse API.
type Client struct {
	client  *bedrockruntime.Client
	modelID string
}

// NewClient creates a Bedrock completer from config.
func NewClient(cfg *config.BedrockConfig) (*Client, error) {
	return newClient(cfg, "")
}

// NewClientWithEndpoint creates a completer pointing at a custom API
// endpoint (for testing).
func NewClientWithEndpoint(cfg *config.BedrockConfig, endpoint string) (*Client, error) {
	return newClient(cfg, endpoint)
}

func newClient(cfg *config.BedrockConfig, endpoint string) (*Client, error) {
	httpClient := &http.Client{
		Timeout: readTimeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{Timeout: connectTimeout}).DialContext,
		},
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		),
		awsconfig.WithHTTPClient(httpClient),
		// The retry gateway owns throttling retries; the SDK's built-in
		// retryer would stack a second backoff under it.
		awsconfig.WithRetryer(func() aws.Retryer { return aws.NopRetryer{} }),
	)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	var opts []func(*bedrockruntime.Options)
	if endpoint != "" {
		opts = append(opts, func(o *bedrockruntime.Options) {
			o.BaseEndpoint = aws.String(endpoint)
		})
	}

	return &Client{
		client:  bedrockruntime.NewFromConfig(awsCfg, opts...),
		modelID: cfg.ModelID,
	}, nil
}

// Complete sends a Converse request with the system prompt as a separate
// system block and returns the text of the first content block of the
// response message.
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	out, err := c.client.Converse(ctx, &bedrockruntime.ConverseInput{
		ModelId: aws.String(c.modelID),
		Messages: []types.Message{
			{
				Role: types.ConversationRoleUser,
				Content: []types.ContentBlock{
					&types.ContentBlockMemberText{Value: userPrompt},
				},
			},
		},
		System: []types.SystemContentBlock{
			&types.SystemContentBlockMemberText{Value: systemPrompt},
		},
		InferenceConfig: &types.InferenceConfiguration{
			MaxTokens: aws.Int32(maxOutputTokens),
		},
	})
	if err != nil {
		return "", fmt.Errorf("bedrock converse: %w", err)
	}

	msg, ok := out.Output.(*types.ConverseOutputMemberMessage)
	if !ok || len(msg.Value.Content) == 0 {
		return "", malformed(out)
	}
	text, ok := msg.Value.Content[0].(*types.ContentBlockMemberText)
	if !ok {
		return "", malformed(out)
	}
	return text.Value, nil
}

func malformed(out *bedrockruntime.ConverseOutput) error {
	raw := fmt.Sprintf("%+v", out)
	log.Printf("bedrock returned an unexpected response structure: %s", raw)
	return &llm.MalformedResponseError{Provider: "bedrock", Raw: raw}
}
