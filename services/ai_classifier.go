package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/FinanzasVH/finanzas-api/models"
)

// AIClassifier asks Claude to classify statement labels that neither
// rule collection could match. It is optional: without an API key every
// call is skipped and the fallback heuristic stands.
type AIClassifier struct {
	apiKey string
	client *http.Client
}

func NewAIClassifier() *AIClassifier {
	return &AIClassifier{
		apiKey: os.Getenv("ANTHROPIC_API_KEY"),
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *AIClassifier) Enabled() bool {
	return s.apiKey != ""
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// AISuggestion is the structured answer expected from the model.
type AISuggestion struct {
	Type             models.TxType `json:"type"`
	Category         string        `json:"category"`
	CleanDescription string        `json:"clean_description"`
}

// Suggest asks for a {type, category, clean_description} triple for a
// raw statement label.
func (s *AIClassifier) Suggest(label string) (*AISuggestion, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("ANTHROPIC_API_KEY not set")
	}

	prompt := fmt.Sprintf(`Eres un experto en extractos bancarios peruanos. Analiza el movimiento: "%s".

Responde SOLO con un objeto JSON, sin texto adicional:
{"type": "...", "category": "...", "clean_description": "..."}

- "type" debe ser exactamente uno de: income, fixed_expense, variable_expense, debt_payment, savings
- "category" es una categoría corta en español (ej: "Alimentación", "Suscripciones", "Restaurante")
- "clean_description" es el comercio o concepto sin códigos ni ruido del extracto`, label)

	reqBody := anthropicRequest{
		Model:     "claude-3-haiku-20240307",
		MaxTokens: 120,
		Messages: []anthropicMessage{
			{Role: "user", Content: prompt},
		},
	}

	jsonData, _ := json.Marshal(reqBody)

	req, err := http.NewRequest("POST", "https://api.anthropic.com/v1/messages", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}

	req.Header.Set("x-api-key", s.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")
	req.Header.Set("content-type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("anthropic error %d: %s", resp.StatusCode, string(body))
	}

	var result anthropicResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	if len(result.Content) == 0 {
		return nil, fmt.Errorf("empty response from classifier")
	}

	return parseSuggestion(result.Content[0].Text)
}

// parseSuggestion tolerates the model wrapping the JSON in prose.
func parseSuggestion(text string) (*AISuggestion, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object in classifier response: %q", text)
	}

	var suggestion AISuggestion
	if err := json.Unmarshal([]byte(text[start:end+1]), &suggestion); err != nil {
		return nil, err
	}
	suggestion.Type = models.TxType(strings.ToLower(strings.TrimSpace(string(suggestion.Type))))
	suggestion.Category = strings.TrimSpace(suggestion.Category)
	suggestion.CleanDescription = strings.TrimSpace(suggestion.CleanDescription)
	if suggestion.Category == "" {
		return nil, fmt.Errorf("classifier returned no category")
	}
	return &suggestion, nil
}
