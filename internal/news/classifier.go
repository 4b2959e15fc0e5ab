package news

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/shenikar/safety_heatmap/internal/models"
)

const classifierPrompt = `You classify news articles about crime.
Reply with a JSON object with the fields:
"relevant" (boolean, true only if the article reports a concrete crime at a concrete place),
"category" (one of: homicide, robbery, theft, siege, domestic-violence, drug-trafficking, other),
"severity" (integer 1-5),
"description" (one short sentence),
"location" (the most specific place name mentioned, including city and country).`

// OpenAIClassifier определяет тип, тяжесть и место события по тексту новости
type OpenAIClassifier struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

func NewOpenAIClassifier(client *openai.Client, model string, timeout time.Duration) *OpenAIClassifier {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIClassifier{client: client, model: model, timeout: timeout}
}

func (c *OpenAIClassifier) Classify(ctx context.Context, article Article) (*Classification, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: classifierPrompt},
			{Role: openai.ChatMessageRoleUser, Content: article.Title + "\n\n" + article.Summary},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject},
		Temperature:    0,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: classifier: %v", models.ErrUpstreamUnavailable, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: classifier returned no choices", models.ErrUpstreamUnavailable)
	}
	return ParseClassification(resp.Choices[0].Message.Content)
}

// ParseClassification разбирает JSON ответа классификатора и нормализует поля
func ParseClassification(content string) (*Classification, error) {
	c := &Classification{}
	if err := json.Unmarshal([]byte(content), c); err != nil {
		return nil, fmt.Errorf("%w: classifier response: %v", models.ErrInvalidInput, err)
	}
	c.Category = models.IncidentType(strings.ToLower(strings.TrimSpace(string(c.Category))))
	if !c.Category.Valid() {
		c.Category = models.TypeOther
	}
	// 0 - тяжесть неизвестна, значение по умолчанию выставляет сверка
	if c.Severity < models.MinSeverity {
		c.Severity = 0
	}
	if c.Severity > models.MaxSeverity {
		c.Severity = models.MaxSeverity
	}
	c.LocationText = strings.TrimSpace(c.LocationText)
	return c, nil
}
