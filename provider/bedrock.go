package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
)

const defaultBedrockRegion = "us-east-1"

const defaultBedrockModel = "anthropic.claude-sonnet-4-5"

const bedrockMaxTokens = 4096

// Bedrock talks to AWS Bedrock using the default credential chain. Unlike the
// cloud chat providers it carries no API key; missing AWS credentials surface
// as an invocation error and route the caller to fallback.
type Bedrock struct {
	client  *bedrockruntime.Client
	modelID string
}

// NewBedrock creates the Bedrock provider.
func NewBedrock(region, modelID string) (*Bedrock, error) {
	if region == "" {
		region = defaultBedrockRegion
	}
	if modelID == "" {
		modelID = defaultBedrockModel
	}

	cfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion(region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &Bedrock{
		client:  bedrockruntime.NewFromConfig(cfg),
		modelID: modelID,
	}, nil
}

// Name returns the provider identifier.
func (b *Bedrock) Name() string {
	return string(KindBedrock)
}

// SendPrompt invokes the model once with the Anthropic-on-Bedrock envelope.
func (b *Bedrock) SendPrompt(ctx context.Context, prompt string) (string, error) {
	requestBody := map[string]interface{}{
		"anthropic_version": "bedrock-2023-05-31",
		"max_tokens":        bedrockMaxTokens,
		"messages": []map[string]interface{}{
			{
				"role": "user",
				"content": []map[string]interface{}{
					{"type": "text", "text": prompt},
				},
			},
		},
	}

	payload, err := json.Marshal(requestBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	output, err := b.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(b.modelID),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        payload,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	var response struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
		StopReason string `json:"stop_reason"`
	}
	if err := json.Unmarshal(output.Body, &response); err != nil {
		return "", fmt.Errorf("failed to parse bedrock response: %w", err)
	}

	var content strings.Builder
	for _, block := range response.Content {
		if block.Type == "text" {
			content.WriteString(block.Text)
		}
	}
	if content.Len() == 0 {
		return "", fmt.Errorf("%w: no text content in bedrock response", ErrProviderUnavailable)
	}

	return content.String(), nil
}
