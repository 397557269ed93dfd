// Package gemini implementa suggestions.Suggester con la API de Gemini (google.golang.org/genai).
package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"medistock/internal/domain/suggestions"

	"google.golang.org/genai"
)

const DefaultModel = "gemini-2.0-flash"

type Client struct {
	models *genai.Models
	model  string
}

func New(ctx context.Context, apiKey, model string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("gemini: api key is required")
	}
	if strings.TrimSpace(model) == "" {
		model = DefaultModel
	}

	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	return &Client{models: c.Models, model: model}, nil
}

// responseSchema fuerza la salida {suggestedProducts: [string], reasoning: string}.
var responseSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"suggestedProducts": {
			Type:        genai.TypeArray,
			Description: "Nombres de los productos a promocionar al médico.",
			Items:       &genai.Schema{Type: genai.TypeString},
		},
		"reasoning": {
			Type:        genai.TypeString,
			Description: "Razonamiento detrás de las sugerencias.",
		},
	},
	Required: []string{"suggestedProducts", "reasoning"},
}

func (c *Client) Suggest(ctx context.Context, req suggestions.Request) (suggestions.Result, error) {
	prompt, err := buildPrompt(req)
	if err != nil {
		return suggestions.Result{}, fmt.Errorf("gemini: build prompt: %w", err)
	}

	resp, err := c.models.GenerateContent(ctx, c.model,
		[]*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)},
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   responseSchema,
		},
	)
	if err != nil {
		return suggestions.Result{}, fmt.Errorf("gemini: generate content: %w", err)
	}

	return parseResult(resp.Text())
}

func parseResult(text string) (suggestions.Result, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return suggestions.Result{}, errors.New("gemini: empty response")
	}
	var out suggestions.Result
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return suggestions.Result{}, fmt.Errorf("gemini: decode response: %w", err)
	}
	return out, nil
}
