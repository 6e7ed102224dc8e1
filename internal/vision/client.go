// Package vision wraps the external image-understanding service. The
// core only depends on the Analyzer contract: an image goes in, free-form
// text comes out; everything downstream is the receipt extractor's job.
package vision

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	apperrors "tally/internal/errors"
	"tally/internal/models"
)

// Analyzer describes a receipt image in free-form text.
type Analyzer interface {
	AnalyzeReceipt(ctx context.Context, image []byte, mimeType string) (string, error)
}

// OpenAIClient is the production Analyzer, backed by an OpenAI vision
// model. The call is synchronous; the caller blocks until the model
// answers or the context is done.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

// NewOpenAIClient creates an Analyzer using the given API key and model.
func NewOpenAIClient(apiKey, model string) *OpenAIClient {
	return &OpenAIClient{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

const systemPrompt = "You are an AI assistant that analyzes images and provides detailed descriptions."

// receiptPrompt asks for exactly the JSON shape the extractor expects.
func receiptPrompt() string {
	return fmt.Sprintf(`Analyze this receipt and extract transaction details in English.
Categories = [%s].
Categorize each item into one of the Categories. If an item doesn't clearly fit any category, assign it to 'Groceries'.
Tags are sub-labels like Fruits, Dairy, Meat, Vegetables, Fastfood. If no date is printed, use the current date.
Return the answer in JSON format [{"Item": "Item Name", "Tags": "tag1, tag2", "Quantity": "X", "Amount": "Y", "Category": "Category Name", "Store Name": "Store Name", "Date": "DD-MM-YYYY"}].
Do not include any explanations or other text, only JSON.`,
		"'"+strings.Join(models.SeedCategories, "', '")+"'")
}

// AnalyzeReceipt sends the image and returns the model's raw text.
func (c *OpenAIClient) AnalyzeReceipt(ctx context.Context, image []byte, mimeType string) (string, error) {
	if len(image) == 0 {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "empty image")
	}
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(image))

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     c.model,
		MaxTokens: 800,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL:    dataURL,
							Detail: openai.ImageURLDetailAuto,
						},
					},
					{
						Type: openai.ChatMessagePartTypeText,
						Text: receiptPrompt(),
					},
				},
			},
		},
	})
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrVisionFailed, err)
	}
	if len(resp.Choices) == 0 {
		return "", apperrors.WithMessage(apperrors.ErrVisionFailed, "model returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
