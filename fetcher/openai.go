package fetcher

import (
	"context"
	"fmt"
	"strings"

	"ewintr.nl/learnpath/model"
	"github.com/sashabaranov/go-openai"
)

const systemPrompt = `You are a helpful tutor who writes structured, practical study plans.
Answer in plain text with numbered section headings. Do not use markdown tables.`

type OpenAI struct {
	client *openai.Client
	model  string
}

func NewOpenAI(client *openai.Client, model string) *OpenAI {
	if model == "" {
		model = openai.GPT4
	}
	return &OpenAI{
		client: client,
		model:  model,
	}
}

func (o *OpenAI) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := o.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: o.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: systemPrompt,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
		})
	if err != nil {
		return "", fmt.Errorf("%w: %v", model.ErrGenerationUnavailable, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices returned", model.ErrGenerationUnavailable)
	}

	text := strings.TrimSpace(resp.Choices[len(resp.Choices)-1].Message.Content)
	if text == "" {
		return "", fmt.Errorf("%w: empty response", model.ErrGenerationUnavailable)
	}

	return text, nil
}
