package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// openAIProvider implements the Provider interface using the OpenAI
// chat completions API (POST /v1/chat/completions). It also implements
// VisionGenerator and ImageGenerator.
type openAIProvider struct {
	config ProviderConfig
	client *http.Client
}

// newOpenAI creates a new OpenAI provider.
func newOpenAI(cfg ProviderConfig) *openAIProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	return &openAIProvider{
		config: cfg,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

func (p *openAIProvider) Name() string { return "openai" }

// Generate sends a chat completion request to OpenAI and returns the
// assistant's response text.
func (p *openAIProvider) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	messages := []openAIMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: userPrompt},
	}

	body := openAIRequest{
		Model:    p.config.Model,
		Messages: messages,
	}

	return p.doChat(ctx, body)
}

// GenerateWithImage sends a chat completion request that includes a
// reference image as a vision content part.
func (p *openAIProvider) GenerateWithImage(ctx context.Context, systemPrompt, userPrompt, imageURL string) (string, error) {
	body := openAIVisionRequest{
		Model: p.config.Model,
		Messages: []openAIVisionMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: []openAIContentPart{
				{Type: "text", Text: userPrompt},
				{Type: "image_url", ImageURL: &openAIImageURL{URL: imageURL}},
			}},
		},
	}

	return p.doChat(ctx, body)
}

// GenerateImage creates an image via POST /images/generations and returns
// the decoded response envelope. The envelope keeps its typed shape so that
// ResolveResultURL can extract the result through the URLResolver accessor.
func (p *openAIProvider) GenerateImage(ctx context.Context, req ImageRequest) (any, error) {
	model := p.config.ModelImage
	if model == "" {
		model = "gpt-image-1"
	}

	body := openAIImageRequest{
		Model:  model,
		Prompt: req.Prompt,
		Size:   sizeForAspectRatio(req.AspectRatio),
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("openai image marshal: %w", err)
	}

	url := p.config.BaseURL + "/images/generations"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("openai image request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.config.APIKey)

	// Image generation is slow; use a longer deadline than chat.
	imgClient := &http.Client{Timeout: 180 * time.Second}
	resp, err := imgClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("openai image http: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("openai image read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("openai image API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var envelope openAIImageResponse
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return nil, fmt.Errorf("openai image unmarshal: %w", err)
	}

	return &envelope, nil
}

// sizeForAspectRatio maps the portrait/landscape/square aspect ratios the
// slide formats use onto the sizes the images API accepts.
func sizeForAspectRatio(ratio string) string {
	switch ratio {
	case "9:16", "2:3", "3:4":
		return "1024x1792"
	case "16:9", "3:2", "4:3":
		return "1792x1024"
	default:
		return "1024x1024"
	}
}

// doChat performs the HTTP call to the chat completions endpoint.
// Shared between OpenAI and Mistral (same API format). body is either an
// openAIRequest or an openAIVisionRequest.
func (p *openAIProvider) doChat(ctx context.Context, body any) (string, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("openai marshal: %w", err)
	}

	url := p.config.BaseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("openai request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.config.APIKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("openai http: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("openai read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("openai API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var result openAIResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("openai unmarshal: %w", err)
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("openai: no choices returned")
	}

	return result.Choices[0].Message.Content, nil
}

// --- OpenAI-compatible request/response types ---
// Used by both OpenAI and Mistral providers.

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIRequest struct {
	Model    string          `json:"model"`
	Messages []openAIMessage `json:"messages"`
}

type openAIResponse struct {
	Choices []openAIChoice `json:"choices"`
}

type openAIChoice struct {
	Message openAIMessage `json:"message"`
}

// --- Vision (multimodal content parts) types ---

type openAIImageURL struct {
	URL string `json:"url"`
}

type openAIContentPart struct {
	Type     string          `json:"type"`
	Text     string          `json:"text,omitempty"`
	ImageURL *openAIImageURL `json:"image_url,omitempty"`
}

type openAIVisionMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"` // string or []openAIContentPart
}

type openAIVisionRequest struct {
	Model    string                `json:"model"`
	Messages []openAIVisionMessage `json:"messages"`
}

// --- Image generation types ---

type openAIImageRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Size   string `json:"size,omitempty"`
}

type openAIImageData struct {
	URL string `json:"url"`
}

type openAIImageResponse struct {
	Data []openAIImageData `json:"data"`
}

// ResultURL returns the first URL in the response data, satisfying the
// URLResolver accessor used by ResolveResultURL.
func (r *openAIImageResponse) ResultURL() string {
	for _, d := range r.Data {
		if d.URL != "" {
			return d.URL
		}
	}
	return ""
}
