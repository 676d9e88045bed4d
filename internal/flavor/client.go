package flavor

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jhalonen/pemberton/internal/casefile"
	"github.com/jhalonen/pemberton/internal/errors"
	"github.com/sashabaranov/go-openai"
)

const (
	maxTokens = 1024
	// maxHistory caps the per-suspect exchanges handed to the provider so
	// the context window stays bounded over a long interrogation.
	maxHistory = 10
)

// Client generates flavored answers with the OpenAI chat API. It keeps an
// in-memory conversation history per suspect so the provider can stay
// consistent across a session. The history is display state only; it never
// feeds back into the investigation engine.
type Client struct {
	c         *casefile.Case
	client    *openai.Client
	histories map[string][]openai.ChatCompletionMessage
}

// NewClient creates a flavor client for one session.
func NewClient(c *casefile.Case, apiKey string) *Client {
	return &Client{
		c:         c,
		client:    openai.NewClient(apiKey),
		histories: make(map[string][]openai.ChatCompletionMessage),
	}
}

// Flavor rephrases the scripted answer in the suspect's voice. Failures are
// reported as ErrProvider; the caller falls back to the scripted answer.
func (f *Client) Flavor(ctx context.Context, suspect casefile.Suspect, question, scripted string) (string, error) {
	userMessage := fmt.Sprintf(
		"The detective asks: %q\n\nDeliver this answer in your own voice: %q",
		question, scripted)

	history := f.histories[suspect.ID]
	messages := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: SystemPrompt(f.c, suspect),
	})
	messages = append(messages, history...)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: userMessage,
	})

	completion, err := f.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{ //nolint:exhaustruct // this is better for readability
			Model:     openai.GPT3Dot5Turbo1106,
			MaxTokens: maxTokens,
			Messages:  messages,
		},
	)
	if err != nil {
		return "", errors.Wrap(errors.Join(ErrProvider, err), "create chat completion",
			slog.String("suspect_id", suspect.ID))
	}
	if len(completion.Choices) == 0 {
		return "", errors.Wrap(ErrProvider, "completion has no choices",
			slog.String("suspect_id", suspect.ID))
	}
	answer := completion.Choices[0].Message.Content

	history = append(history,
		openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: userMessage},
		openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: answer},
	)
	if len(history) > maxHistory*2 {
		history = history[len(history)-maxHistory*2:]
	}
	f.histories[suspect.ID] = history

	return answer, nil
}
