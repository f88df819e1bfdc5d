package llm

import (
	"context"
	"log"

	openai "github.com/sashabaranov/go-openai"
)

// Completer sends a composed message list to a chat-completion service and
// returns the reply text. Failures are reported in-band: the returned string
// is an error description that downstream code treats like any other reply.
type Completer interface {
	Complete(ctx context.Context, messages []openai.ChatCompletionMessage) string
}

type OpenAIClient struct {
	client      *openai.Client
	model       string
	temperature float32
	topP        float32
	maxTokens   int
}

func NewOpenAIClient(apiKey, model string, temperature, topP float32, maxTokens int) *OpenAIClient {
	return &OpenAIClient{
		client:      openai.NewClient(apiKey),
		model:       model,
		temperature: temperature,
		topP:        topP,
		maxTokens:   maxTokens,
	}
}

func (c *OpenAIClient) Complete(ctx context.Context, messages []openai.ChatCompletionMessage) string {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: c.temperature,
		TopP:        c.topP,
		MaxTokens:   c.maxTokens,
		Messages:    messages,
	})
	if err != nil {
		log.Println("openai error:", err)
		return "Error contacting OpenAI API: " + err.Error()
	}
	if len(resp.Choices) == 0 {
		log.Println("openai error: empty choices")
		return "Error contacting OpenAI API: no choices returned"
	}
	return resp.Choices[0].Message.Content
}
